package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes events to an slog.Logger.
// Useful during development to watch peripheral activity on the console.
type SlogAdapter struct {
	logger *slog.Logger
	level  slog.Level
}

// NewSlogAdapter creates a SlogAdapter logging at Debug level.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger, level: slog.LevelDebug}
}

// WithLevel returns a copy of the adapter logging at level.
func (a *SlogAdapter) WithLevel(level slog.Level) *SlogAdapter {
	return &SlogAdapter{logger: a.logger, level: level}
}

// Log writes the event to the slog logger.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("session", event.SessionID),
		slog.String("layer", event.Layer.String()),
		slog.String("category", event.Category.String()),
	}

	if event.PeripheralID != "" {
		attrs = append(attrs, slog.String("peripheral_id", event.PeripheralID))
	}
	if event.Peripheral != "" {
		attrs = append(attrs, slog.String("peripheral", event.Peripheral))
	}

	switch {
	case event.StateChange != nil:
		if event.StateChange.Edge != "" {
			attrs = append(attrs, slog.String("edge", event.StateChange.Edge))
		}
		attrs = append(attrs,
			slog.String("old_state", event.StateChange.OldState),
			slog.String("new_state", event.StateChange.NewState),
		)
		if event.StateChange.Reason != "" {
			attrs = append(attrs, slog.String("reason", event.StateChange.Reason))
		}
	case event.Hook != nil:
		attrs = append(attrs,
			slog.String("hook_kind", event.Hook.Kind),
			slog.String("hook_action", event.Hook.Action.String()),
			slog.Int("hook_index", event.Hook.Index),
		)
		if event.Hook.Duration != nil {
			attrs = append(attrs, slog.Duration("hook_duration", *event.Hook.Duration))
		}
		if event.Hook.Error != "" {
			attrs = append(attrs, slog.String("hook_error", event.Hook.Error))
		}
	case event.Interrupt != nil:
		attrs = append(attrs,
			slog.String("isr", event.Interrupt.Name),
			slog.Bool("enabled", event.Interrupt.Enabled),
			slog.Int("active", event.Interrupt.Active),
		)
	case event.Error != nil:
		attrs = append(attrs,
			slog.String("error_layer", event.Error.Layer.String()),
			slog.String("error_msg", event.Error.Message),
			slog.String("error_context", event.Error.Context),
		)
	}

	a.logger.LogAttrs(context.Background(), a.level, "peripheral", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
