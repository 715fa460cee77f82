package typestate

import (
	"errors"
	"fmt"
)

// Wrapper errors. Both are raised as panics: they signal misuse of the API,
// not a condition a caller can recover from.
var (
	ErrConsumed      = errors.New("typestate: wrapper already consumed by a transition")
	ErrUninitialized = errors.New("typestate: zero wrapper")
)

// cell owns the peripheral value shared by successive wrappers.
type cell[P any] struct {
	value     P
	gen       uint64
	graph     *Graph
	observers []Observer
}

// Wrapper carries a peripheral value of type P tagged with state S.
// The tag exists only at the type level.
type Wrapper[P any, S StateOf[P]] struct {
	c   *cell[P]
	gen uint64
}

// New wraps p in its initial state. S must be the tag that declares
// InitialOf(*P); any other tag fails to compile.
func New[S InitialOf[P], P any, PP peripheralPtr[P]](p P, opts ...Option) Wrapper[P, S] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	c := &cell[P]{value: p, observers: o.observers}
	c.graph = PP(&c.value).Graph()
	return Wrapper[P, S]{c: c}
}

// Transition consumes w and returns the same peripheral tagged To.
// E must declare the edge From -> To for P; this is the only way to
// change a wrapper's tag. Observers run after the tag has flipped.
func Transition[E EdgeOf[P, From, To], To StateOf[P], P any, From StateOf[P]](w Wrapper[P, From]) Wrapper[P, To] {
	c := w.cell()
	c.gen++
	next := Wrapper[P, To]{c: c, gen: c.gen}

	if len(c.observers) > 0 {
		var e E
		change := Change{
			Peripheral: c.graph.Name(),
			Edge:       e.EdgeName(),
			From:       NameOf[From](),
			To:         NameOf[To](),
		}
		for _, o := range c.observers {
			o.Observe(change)
		}
	}
	return next
}

// Expect returns w unchanged. It compiles only when w is statically tagged
// S, which makes it usable as a build-time assertion:
//
//	typestate.Expect[Stop](bus.Wrapper)
func Expect[S StateOf[P], P any](w Wrapper[P, S]) Wrapper[P, S] {
	return w
}

// Invoke runs fn exactly once with a pointer to w and returns w.
// A nil fn is skipped.
func Invoke[W any](w W, fn func(*W)) W {
	if fn != nil {
		fn(&w)
	}
	return w
}

// With gives fn mutable access to the peripheral without changing state.
func (w Wrapper[P, S]) With(fn func(*P)) Wrapper[P, S] {
	p := w.Peripheral()
	if fn != nil {
		fn(p)
	}
	return w
}

// Peripheral returns the wrapped value.
func (w Wrapper[P, S]) Peripheral() *P {
	return &w.cell().value
}

// State returns the (zero-size) tag value.
func (w Wrapper[P, S]) State() S {
	var s S
	return s
}

// Live reports whether w has not been consumed by a transition.
func (w Wrapper[P, S]) Live() bool {
	return w.c != nil && w.c.gen == w.gen
}

// Clone returns an independent wrapper holding a shallow copy of the
// peripheral in the same state. Observers are shared.
func (w Wrapper[P, S]) Clone() Wrapper[P, S] {
	c := w.cell()
	dup := &cell[P]{
		value:     c.value,
		graph:     c.graph,
		observers: c.observers,
	}
	return Wrapper[P, S]{c: dup}
}

// Graph returns the declared transition graph of the peripheral.
func (w Wrapper[P, S]) Graph() *Graph {
	return w.cell().graph
}

// String returns "Peripheral<State>".
func (w Wrapper[P, S]) String() string {
	name := "?"
	if w.c != nil && w.c.graph != nil {
		name = w.c.graph.Name()
	}
	return fmt.Sprintf("%s<%s>", name, NameOf[S]())
}

func (w Wrapper[P, S]) cell() *cell[P] {
	if w.c == nil {
		panic(ErrUninitialized)
	}
	if w.c.gen != w.gen {
		panic(fmt.Errorf("%w: %s", ErrConsumed, w))
	}
	return w.c
}
