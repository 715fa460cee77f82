package log

import (
	"strings"
	"time"
)

// Event represents one captured peripheral event.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID identifies the process run that produced the event (UUID).
	SessionID string `cbor:"2,keyasint"`

	// Layer where the event was captured.
	Layer Layer `cbor:"3,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"4,keyasint"`

	// PeripheralID is the registry identifier of the peripheral instance.
	PeripheralID string `cbor:"5,keyasint,omitempty"`

	// Peripheral is the peripheral type name (e.g. "I2CBus").
	Peripheral string `cbor:"6,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	StateChange *StateChangeEvent `cbor:"10,keyasint,omitempty"`
	Hook        *HookEvent        `cbor:"11,keyasint,omitempty"`
	Interrupt   *InterruptEvent   `cbor:"12,keyasint,omitempty"`
	Error       *ErrorEventData   `cbor:"13,keyasint,omitempty"`
}

// Layer indicates which part of the framework captured the event.
type Layer uint8

const (
	// LayerTypestate is the static layer: a generated transition method ran.
	LayerTypestate Layer = 0
	// LayerRegistry is the dynamic registry.
	LayerRegistry Layer = 1
)

// String returns the layer name.
func (l Layer) String() string {
	switch l {
	case LayerTypestate:
		return "TYPESTATE"
	case LayerRegistry:
		return "REGISTRY"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryState indicates a state change.
	CategoryState Category = 0
	// CategoryHook indicates a lifecycle hook registration or run.
	CategoryHook Category = 1
	// CategoryInterrupt indicates an interrupt handler enable or disable.
	CategoryInterrupt Category = 2
	// CategoryError indicates an error event.
	CategoryError Category = 3
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryState:
		return "STATE"
	case CategoryHook:
		return "HOOK"
	case CategoryInterrupt:
		return "INTERRUPT"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLayer converts a layer name (case-insensitive) to a Layer.
func ParseLayer(s string) (Layer, bool) {
	for _, l := range []Layer{LayerTypestate, LayerRegistry} {
		if strings.EqualFold(s, l.String()) {
			return l, true
		}
	}
	return 0, false
}

// ParseCategory converts a category name (case-insensitive) to a Category.
func ParseCategory(s string) (Category, bool) {
	for _, c := range []Category{CategoryState, CategoryHook, CategoryInterrupt, CategoryError} {
		if strings.EqualFold(s, c.String()) {
			return c, true
		}
	}
	return 0, false
}

// StateChangeEvent captures a peripheral moving between states.
type StateChangeEvent struct {
	// Edge is the transition name; empty for registry updates.
	Edge string `cbor:"1,keyasint,omitempty"`

	// OldState is the previous state (may be empty).
	OldState string `cbor:"2,keyasint,omitempty"`

	// NewState is the new state.
	NewState string `cbor:"3,keyasint"`

	// Reason for the change (e.g. "enroll", "update").
	Reason string `cbor:"4,keyasint,omitempty"`
}

// HookAction distinguishes hook registration from hook execution.
type HookAction uint8

const (
	// HookRegistered indicates a hook was appended to a peripheral.
	HookRegistered HookAction = 0
	// HookRan indicates a hook was executed.
	HookRan HookAction = 1
)

// String returns the hook action name.
func (a HookAction) String() string {
	switch a {
	case HookRegistered:
		return "REGISTERED"
	case HookRan:
		return "RAN"
	default:
		return "UNKNOWN"
	}
}

// HookEvent captures lifecycle hook activity.
type HookEvent struct {
	// Kind is the hook kind ("sleep", "restore", "access").
	Kind string `cbor:"1,keyasint"`

	// Action is what happened to the hook.
	Action HookAction `cbor:"2,keyasint"`

	// Index is the hook's position in registration order.
	Index int `cbor:"3,keyasint"`

	// Duration is how long a run took (runs only).
	Duration *time.Duration `cbor:"4,keyasint,omitempty"`

	// Error is the message returned by a failed run.
	Error string `cbor:"5,keyasint,omitempty"`
}

// InterruptEvent captures interrupt handler bookkeeping.
type InterruptEvent struct {
	// Name is the interrupt handler name.
	Name string `cbor:"1,keyasint"`

	// Enabled is true for enable, false for disable.
	Enabled bool `cbor:"2,keyasint"`

	// Active is the size of the global active set after the change.
	Active int `cbor:"3,keyasint"`
}

// ErrorEventData captures errors at any layer.
type ErrorEventData struct {
	// Layer where the error occurred.
	Layer Layer `cbor:"1,keyasint"`

	// Message is the error message.
	Message string `cbor:"2,keyasint"`

	// Context describes what operation was being performed.
	Context string `cbor:"3,keyasint,omitempty"`
}
