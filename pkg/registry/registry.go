package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/mash-protocol/typestate-go/pkg/log"
	"github.com/mash-protocol/typestate-go/pkg/typestate"
)

// Registry errors.
var (
	ErrClosed          = errors.New("registry closed")
	ErrUnknownHookKind = errors.New("unknown hook kind")
	ErrNilHook         = errors.New("nil hook")
)

// Registry is the shadow ledger. Create it with New.
type Registry struct {
	mu sync.RWMutex

	offState       string
	disableForgets bool
	session        string
	logger         *slog.Logger
	events         log.Logger
	onStateChange  func(id, oldState, newState string)

	entries map[string]*entry
	active  map[string]struct{}
	closed  bool
}

// New creates a Registry. Zero-valued Config fields take their defaults.
func New(cfg Config) *Registry {
	r := &Registry{
		offState:       cfg.OffState,
		disableForgets: cfg.DisableForgets,
		session:        cfg.SessionID,
		logger:         cfg.Logger,
		events:         log.OrNoop(cfg.EventLogger),
		onStateChange:  cfg.OnStateChange,
		entries:        make(map[string]*entry),
		active:         make(map[string]struct{}),
	}
	if r.offState == "" {
		r.offState = DefaultOffState
	}
	if r.session == "" {
		r.session = log.NewSessionID()
	}
	return r
}

// SessionID returns the identifier stamped on captured events.
func (r *Registry) SessionID() string { return r.session }

// OffState returns the baseline state recorded by Enroll.
func (r *Registry) OffState() string { return r.offState }

// Enroll records id at the off state, overwriting any previous state.
// Hooks and interrupt handlers already recorded for id are kept.
func (r *Registry) Enroll(id string) {
	r.setState(id, r.offState, "", "enroll")
}

// Update records state for id unconditionally. Unknown ids are created.
func (r *Registry) Update(id, state string) {
	r.setState(id, state, "", "update")
}

// Track returns an observer that records every typed transition of the
// wrapper it is attached to as the state of id.
func (r *Registry) Track(id string) typestate.Observer {
	return typestate.ObserverFunc(func(c typestate.Change) {
		r.setState(id, c.To, c.Edge, "transition")
	})
}

func (r *Registry) setState(id, state, edge, reason string) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	e := r.entry(id)
	old := e.state
	e.state = state
	e.hasState = true
	r.mu.Unlock()

	r.debugLog("state recorded", "id", id, "old", old, "new", state, "reason", reason)
	r.emit(id, log.CategoryState, func(ev *log.Event) {
		ev.StateChange = &log.StateChangeEvent{Edge: edge, OldState: old, NewState: state, Reason: reason}
	})
	if r.onStateChange != nil {
		r.onStateChange(id, old, state)
	}
}

// Check reports whether id is recorded in state expected. It returns false
// for ids that were never enrolled or updated.
func (r *Registry) Check(id, expected string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[id]
	return ok && e.hasState && e.state == expected
}

// State returns the recorded state of id.
func (r *Registry) State(id string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[id]
	if !ok || !e.hasState {
		return "", false
	}
	return e.state, true
}

// Peripherals returns every known id, sorted.
func (r *Registry) Peripherals() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// RegisterSleep appends a sleep hook for id. A nil hook, or one registered
// after Close, is dropped and logged at debug level; use RegisterHook to see
// the error.
func (r *Registry) RegisterSleep(id string, fn HookFunc) {
	r.registerLogged(HookSleep, id, fn)
}

// RegisterRestore appends a restore hook for id. Rejected hooks are dropped
// as for RegisterSleep.
func (r *Registry) RegisterRestore(id string, fn HookFunc) {
	r.registerLogged(HookRestore, id, fn)
}

// RegisterAccess appends an access hook for id. Rejected hooks are dropped
// as for RegisterSleep.
func (r *Registry) RegisterAccess(id string, fn HookFunc) {
	r.registerLogged(HookAccess, id, fn)
}

func (r *Registry) registerLogged(kind HookKind, id string, fn HookFunc) {
	if err := r.RegisterHook(kind, id, fn); err != nil {
		r.debugLog("hook dropped", "id", id, "kind", kind.String(), "error", err)
	}
}

// RegisterHook appends fn to id's list for kind. The same function may be
// registered several times; every registration runs.
func (r *Registry) RegisterHook(kind HookKind, id string, fn HookFunc) error {
	if kind > HookAccess {
		return fmt.Errorf("%w: %d", ErrUnknownHookKind, kind)
	}
	if fn == nil {
		return ErrNilHook
	}

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return ErrClosed
	}
	e := r.entry(id)
	e.hooks[kind] = append(e.hooks[kind], fn)
	index := len(e.hooks[kind]) - 1
	r.mu.Unlock()

	r.debugLog("hook registered", "id", id, "kind", kind.String(), "index", index)
	r.emit(id, log.CategoryHook, func(ev *log.Event) {
		ev.Hook = &log.HookEvent{Kind: kind.String(), Action: log.HookRegistered, Index: index}
	})
	return nil
}

// HookCount returns the number of hooks of kind registered for id.
func (r *Registry) HookCount(id string, kind HookKind) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[id]
	if !ok {
		return 0
	}
	return len(e.hookList(kind))
}

// Sleep runs id's sleep hooks.
func (r *Registry) Sleep(ctx context.Context, id string) error {
	return r.RunHooks(ctx, HookSleep, id)
}

// Restore runs id's restore hooks.
func (r *Registry) Restore(ctx context.Context, id string) error {
	return r.RunHooks(ctx, HookRestore, id)
}

// Access runs id's access hooks.
func (r *Registry) Access(ctx context.Context, id string) error {
	return r.RunHooks(ctx, HookAccess, id)
}

// RunHooks runs id's hooks of kind in registration order, without holding
// the registry lock, so hooks may call back into the registry. A failing
// hook does not stop later ones; all failures are joined. Cancelling ctx
// stops before the next hook.
func (r *Registry) RunHooks(ctx context.Context, kind HookKind, id string) error {
	if kind > HookAccess {
		return fmt.Errorf("%w: %d", ErrUnknownHookKind, kind)
	}

	r.mu.RLock()
	if r.closed {
		r.mu.RUnlock()
		return ErrClosed
	}
	var hooks []HookFunc
	if e, ok := r.entries[id]; ok {
		hooks = slices.Clone(e.hookList(kind))
	}
	r.mu.RUnlock()

	var errs []error
	for i, fn := range hooks {
		if err := ctx.Err(); err != nil {
			errs = append(errs, fmt.Errorf("%s %s: %w", kind, id, err))
			break
		}

		start := time.Now()
		err := fn(ctx, id)
		elapsed := time.Since(start)

		hook := &log.HookEvent{Kind: kind.String(), Action: log.HookRan, Index: i, Duration: &elapsed}
		if err != nil {
			hook.Error = err.Error()
			errs = append(errs, fmt.Errorf("%s hook %d for %s: %w", kind, i, id, err))
			r.debugLog("hook failed", "id", id, "kind", kind.String(), "index", i, "error", err)
		}
		r.emit(id, log.CategoryHook, func(ev *log.Event) { ev.Hook = hook })
	}
	return errors.Join(errs...)
}

// EnableISR records name as known to id and marks it globally active.
func (r *Registry) EnableISR(id, name string) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	e := r.entry(id)
	if e.isrs == nil {
		e.isrs = make(map[string]struct{})
	}
	e.isrs[name] = struct{}{}
	r.active[name] = struct{}{}
	active := len(r.active)
	r.mu.Unlock()

	r.debugLog("isr enabled", "id", id, "isr", name)
	r.emit(id, log.CategoryInterrupt, func(ev *log.Event) {
		ev.Interrupt = &log.InterruptEvent{Name: name, Enabled: true, Active: active}
	})
}

// DisableISR removes name from the global active set. Unless the registry
// was configured with DisableForgets, id keeps name in its own set.
func (r *Registry) DisableISR(id, name string) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	delete(r.active, name)
	if r.disableForgets {
		if e, ok := r.entries[id]; ok {
			delete(e.isrs, name)
		}
	}
	active := len(r.active)
	r.mu.Unlock()

	r.debugLog("isr disabled", "id", id, "isr", name)
	r.emit(id, log.CategoryInterrupt, func(ev *log.Event) {
		ev.Interrupt = &log.InterruptEvent{Name: name, Enabled: false, Active: active}
	})
}

// PeripheralISRs returns the handler names recorded for id, sorted.
func (r *Registry) PeripheralISRs(id string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[id]
	if !ok {
		return nil
	}
	return sortedKeys(e.isrs)
}

// ActiveISRs returns the globally active handler names, sorted.
func (r *Registry) ActiveISRs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.active)
}

// IsActive reports whether name is in the global active set.
func (r *Registry) IsActive(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.active[name]
	return ok
}

// Close stops the registry. Later mutations are ignored and hook runs
// return ErrClosed; queries keep answering from the final tables.
// It is safe to call Close multiple times.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

// entry returns id's record, creating it. Callers hold r.mu.
func (r *Registry) entry(id string) *entry {
	e, ok := r.entries[id]
	if !ok {
		e = &entry{}
		r.entries[id] = e
	}
	return e
}

func (r *Registry) emit(id string, cat log.Category, fill func(*log.Event)) {
	ev := log.Event{
		Timestamp:    time.Now(),
		SessionID:    r.session,
		Layer:        log.LayerRegistry,
		Category:     cat,
		PeripheralID: id,
	}
	fill(&ev)
	r.events.Log(ev)
}

// debugLog logs a debug message if logging is enabled.
func (r *Registry) debugLog(msg string, args ...any) {
	if r.logger != nil {
		r.logger.Debug(msg, args...)
	}
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
