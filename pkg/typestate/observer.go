package typestate

// Change describes one completed transition.
type Change struct {
	Peripheral string
	Edge       string
	From       string
	To         string
}

// Observer is notified of transitions. Implementations run synchronously
// inside the transition and must not block.
type Observer interface {
	Observe(Change)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Change)

// Observe calls f(c).
func (f ObserverFunc) Observe(c Change) { f(c) }

// Option configures a wrapper at construction.
type Option func(*options)

type options struct {
	observers []Observer
}

// WithObserver appends observers to the wrapper. Nil observers are ignored.
// Observers are inherited by every wrapper produced from it.
func WithObserver(obs ...Observer) Option {
	return func(o *options) {
		for _, ob := range obs {
			if ob != nil {
				o.observers = append(o.observers, ob)
			}
		}
	}
}

// Compile-time interface satisfaction check.
var _ Observer = ObserverFunc(nil)
