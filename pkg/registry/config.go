package registry

import (
	"log/slog"

	"github.com/mash-protocol/typestate-go/pkg/log"
)

// DefaultOffState is the state recorded by Enroll unless configured.
const DefaultOffState = "Off"

// Config configures a Registry.
type Config struct {
	// OffState is the baseline state recorded by Enroll.
	OffState string

	// DisableForgets makes DisableISR also remove the handler from the
	// peripheral's own set. By default the peripheral keeps every handler
	// it has ever enabled and only the global active set shrinks.
	DisableForgets bool

	// SessionID tags captured events. A random UUID is used if empty.
	SessionID string

	// Logger is the optional logger for debug output.
	// If nil, logging is disabled.
	Logger *slog.Logger

	// EventLogger receives structured registry events.
	// If nil, no events are captured.
	EventLogger log.Logger

	// OnStateChange is called after every recorded state change, outside
	// the registry lock.
	OnStateChange func(id, oldState, newState string)
}

// DefaultConfig returns a Config with the "Off" baseline and asymmetric
// interrupt bookkeeping.
func DefaultConfig() Config {
	return Config{
		OffState: DefaultOffState,
	}
}
