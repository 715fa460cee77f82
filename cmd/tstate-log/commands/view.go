// Package commands implements the tstate-log CLI commands.
package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mash-protocol/typestate-go/pkg/log"
)

const timeLayout = "2006-01-02T15:04:05.000000Z"

// ViewFilter specifies criteria for filtering events in the view command.
type ViewFilter struct {
	Layer        *log.Layer
	Category     *log.Category
	PeripheralID string
}

// toLogFilter converts the view criteria to a reader filter.
func (f ViewFilter) toLogFilter() log.Filter {
	return log.Filter{
		Layer:        f.Layer,
		Category:     f.Category,
		PeripheralID: f.PeripheralID,
	}
}

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	// Header line: timestamp [session] LAYER Type peripheral
	ts := event.Timestamp.UTC().Format(timeLayout)

	fmt.Fprintf(w, "%s [%s] %-9s %s", ts, shortenID(event.SessionID), event.Layer.String(), typeLabel(event))
	if event.PeripheralID != "" {
		fmt.Fprintf(w, " %s", event.PeripheralID)
	}
	if event.Peripheral != "" {
		fmt.Fprintf(w, " (%s)", event.Peripheral)
	}
	fmt.Fprintln(w)

	switch {
	case event.StateChange != nil:
		formatStateChangeDetails(w, event.StateChange)
	case event.Hook != nil:
		formatHookDetails(w, event.Hook)
	case event.Interrupt != nil:
		formatInterruptDetails(w, event.Interrupt)
	case event.Error != nil:
		formatErrorDetails(w, event.Error)
	}

	fmt.Fprintln(w) // Blank line between events
}

// typeLabel names the event's payload.
func typeLabel(event log.Event) string {
	switch {
	case event.StateChange != nil:
		if event.StateChange.Edge != "" {
			return "Transition"
		}
		return "State"
	case event.Hook != nil:
		return "Hook"
	case event.Interrupt != nil:
		return "Interrupt"
	case event.Error != nil:
		return "Error"
	default:
		return "Unknown"
	}
}

// shortenID returns the first 8 characters of a session ID.
func shortenID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

func formatStateChangeDetails(w io.Writer, sc *log.StateChangeEvent) {
	if sc.Edge != "" {
		fmt.Fprintf(w, "  Edge: %s\n", sc.Edge)
	}
	if sc.OldState != "" {
		fmt.Fprintf(w, "  %s -> %s\n", sc.OldState, sc.NewState)
	} else {
		fmt.Fprintf(w, "  -> %s\n", sc.NewState)
	}
	if sc.Reason != "" {
		fmt.Fprintf(w, "  Reason: %s\n", sc.Reason)
	}
}

func formatHookDetails(w io.Writer, h *log.HookEvent) {
	fmt.Fprintf(w, "  %s #%d %s\n", h.Kind, h.Index, h.Action.String())
	if h.Duration != nil {
		fmt.Fprintf(w, "  Duration: %s\n", formatDuration(*h.Duration))
	}
	if h.Error != "" {
		fmt.Fprintf(w, "  Error: %s\n", h.Error)
	}
}

func formatInterruptDetails(w io.Writer, in *log.InterruptEvent) {
	action := "disabled"
	if in.Enabled {
		action = "enabled"
	}
	fmt.Fprintf(w, "  %s %s (active: %d)\n", in.Name, action, in.Active)
}

func formatErrorDetails(w io.Writer, err *log.ErrorEventData) {
	fmt.Fprintf(w, "  Layer: %s\n", err.Layer.String())
	fmt.Fprintf(w, "  Message: %s\n", err.Message)
	if err.Context != "" {
		fmt.Fprintf(w, "  Context: %s\n", err.Context)
	}
}

// formatDuration formats a duration for display.
func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%.3fus", float64(d.Nanoseconds())/1000)
	}
	if d < time.Second {
		return fmt.Sprintf("%.3fms", float64(d.Microseconds())/1000)
	}
	return fmt.Sprintf("%.3fs", d.Seconds())
}

// ParseLayerFlag parses a layer string from a command-line flag (case-insensitive).
func ParseLayerFlag(s string) (log.Layer, error) {
	l, ok := log.ParseLayer(s)
	if !ok {
		return 0, fmt.Errorf("invalid layer: %s (must be typestate or registry)", s)
	}
	return l, nil
}

// ParseCategoryFlag parses a category string from a command-line flag (case-insensitive).
func ParseCategoryFlag(s string) (log.Category, error) {
	c, ok := log.ParseCategory(strings.TrimSpace(s))
	if !ok {
		return 0, fmt.Errorf("invalid category: %s (must be state, hook, interrupt, or error)", s)
	}
	return c, nil
}

// RunView executes the view command.
func RunView(path string, filter ViewFilter, output io.Writer) error {
	reader, err := log.NewFilteredReader(path, filter.toLogFilter())
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(output, event)
	}
	return nil
}
