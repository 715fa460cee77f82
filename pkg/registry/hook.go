package registry

import "context"

// HookKind identifies a lifecycle hook list.
type HookKind uint8

const (
	// HookSleep runs before a peripheral is put to sleep.
	HookSleep HookKind = iota
	// HookRestore runs when a peripheral wakes up.
	HookRestore
	// HookAccess runs before a peripheral is accessed.
	HookAccess
)

// String returns the hook kind name.
func (k HookKind) String() string {
	switch k {
	case HookSleep:
		return "sleep"
	case HookRestore:
		return "restore"
	case HookAccess:
		return "access"
	default:
		return "unknown"
	}
}

// ParseHookKind converts "sleep", "restore" or "access" to a HookKind.
func ParseHookKind(s string) (HookKind, bool) {
	for _, k := range []HookKind{HookSleep, HookRestore, HookAccess} {
		if k.String() == s {
			return k, true
		}
	}
	return 0, false
}

// HookFunc is a lifecycle hook. It receives the peripheral identifier it
// was registered for.
type HookFunc func(ctx context.Context, id string) error

// entry is the per-peripheral record.
type entry struct {
	state    string
	hasState bool
	hooks    [3][]HookFunc
	isrs     map[string]struct{}
}

func (e *entry) hookList(k HookKind) []HookFunc {
	if int(k) >= len(e.hooks) {
		return nil
	}
	return e.hooks[k]
}
