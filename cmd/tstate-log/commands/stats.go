package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/mash-protocol/typestate-go/pkg/log"
)

// Stats holds aggregate statistics about a log file.
type Stats struct {
	TotalEvents      int
	EventsByLayer    map[log.Layer]int
	EventsByCategory map[log.Category]int
	Peripherals      map[string]*PeripheralStats
	Sessions         map[string]int
	Errors           int
	TimeRange        struct {
		Start time.Time
		End   time.Time
	}
}

// PeripheralStats holds statistics for a single peripheral instance.
type PeripheralStats struct {
	FirstSeen   time.Time
	LastSeen    time.Time
	Events      int
	Type        string
	LastState   string
	Transitions int
	HookRuns    int
	HookErrors  int
	Interrupts  int
}

// RunStats analyzes the log file and prints statistics.
func RunStats(path string, w io.Writer) error {
	stats, err := collectStats(path)
	if err != nil {
		return err
	}
	printStats(w, stats)
	return nil
}

func collectStats(path string) (*Stats, error) {
	reader, err := log.NewReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	stats := &Stats{
		EventsByLayer:    make(map[log.Layer]int),
		EventsByCategory: make(map[log.Category]int),
		Peripherals:      make(map[string]*PeripheralStats),
		Sessions:         make(map[string]int),
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read event: %w", err)
		}

		stats.TotalEvents++
		stats.EventsByLayer[event.Layer]++
		stats.EventsByCategory[event.Category]++
		stats.Sessions[event.SessionID]++

		if stats.TimeRange.Start.IsZero() || event.Timestamp.Before(stats.TimeRange.Start) {
			stats.TimeRange.Start = event.Timestamp
		}
		if event.Timestamp.After(stats.TimeRange.End) {
			stats.TimeRange.End = event.Timestamp
		}

		if event.Error != nil {
			stats.Errors++
		}

		if event.PeripheralID == "" {
			continue
		}
		ps, ok := stats.Peripherals[event.PeripheralID]
		if !ok {
			ps = &PeripheralStats{FirstSeen: event.Timestamp, LastSeen: event.Timestamp}
			stats.Peripherals[event.PeripheralID] = ps
		}
		ps.Events++
		if event.Timestamp.After(ps.LastSeen) {
			ps.LastSeen = event.Timestamp
		}
		if event.Peripheral != "" && ps.Type == "" {
			ps.Type = event.Peripheral
		}

		switch {
		case event.StateChange != nil:
			ps.LastState = event.StateChange.NewState
			if event.StateChange.Edge != "" && event.Layer == log.LayerTypestate {
				ps.Transitions++
			}
		case event.Hook != nil && event.Hook.Action == log.HookRan:
			ps.HookRuns++
			if event.Hook.Error != "" {
				ps.HookErrors++
			}
		case event.Interrupt != nil:
			ps.Interrupts++
		}
	}
	return stats, nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== Peripheral Event Log Statistics ===")
	fmt.Fprintln(w)

	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Second))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintf(w, "Sessions:     %d\n", len(stats.Sessions))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Layer:")
	for _, layer := range []log.Layer{log.LayerTypestate, log.LayerRegistry} {
		if count := stats.EventsByLayer[layer]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", layer.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Category:")
	for _, cat := range []log.Category{log.CategoryState, log.CategoryHook, log.CategoryInterrupt, log.CategoryError} {
		if count := stats.EventsByCategory[cat]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", cat.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Peripherals: %d\n", len(stats.Peripherals))
	if len(stats.Peripherals) > 0 {
		ids := make([]string, 0, len(stats.Peripherals))
		for id := range stats.Peripherals {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool {
			a, b := stats.Peripherals[ids[i]], stats.Peripherals[ids[j]]
			if a.FirstSeen.Equal(b.FirstSeen) {
				return ids[i] < ids[j]
			}
			return a.FirstSeen.Before(b.FirstSeen)
		})

		fmt.Fprintln(w)
		for _, id := range ids {
			ps := stats.Peripherals[id]
			name := id
			if ps.Type != "" {
				name += " (" + ps.Type + ")"
			}
			fmt.Fprintf(w, "  %s: %d events, last state %q\n", name, ps.Events, ps.LastState)
			if ps.Transitions > 0 {
				fmt.Fprintf(w, "           Transitions: %d\n", ps.Transitions)
			}
			if ps.HookRuns > 0 {
				fmt.Fprintf(w, "           Hook runs: %d (%d failed)\n", ps.HookRuns, ps.HookErrors)
			}
			if ps.Interrupts > 0 {
				fmt.Fprintf(w, "           Interrupt changes: %d\n", ps.Interrupts)
			}
		}
	}

	if stats.Errors > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Errors: %d\n", stats.Errors)
	}
}
