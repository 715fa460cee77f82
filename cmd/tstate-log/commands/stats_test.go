package commands

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/mash-protocol/typestate-go/pkg/log"
)

func TestStatsCountsByLayerAndCategory(t *testing.T) {
	ts := time.Date(2026, 1, 28, 10, 0, 0, 0, time.UTC)
	events := []log.Event{
		{Timestamp: ts, Layer: log.LayerTypestate, Category: log.CategoryState},
		{Timestamp: ts, Layer: log.LayerRegistry, Category: log.CategoryHook},
		{Timestamp: ts, Layer: log.LayerRegistry, Category: log.CategoryInterrupt},
		{Timestamp: ts, Layer: log.LayerRegistry, Category: log.CategoryError, Error: &log.ErrorEventData{Message: "test"}},
	}

	path := createTestLogFile(t, events)

	var buf bytes.Buffer
	if err := RunStats(path, &buf); err != nil {
		t.Fatalf("RunStats failed: %v", err)
	}
	output := buf.String()

	for _, want := range []string{"TYPESTATE:", "REGISTRY:", "STATE:", "HOOK:", "INTERRUPT:", "ERROR:", "Total Events: 4", "Errors: 1"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
}

func TestStatsPerPeripheral(t *testing.T) {
	ts := time.Date(2026, 1, 28, 10, 0, 0, 0, time.UTC)
	events := []log.Event{
		{Timestamp: ts, SessionID: "s1", Layer: log.LayerTypestate, PeripheralID: "i2c0", Peripheral: "I2CBus",
			StateChange: &log.StateChangeEvent{Edge: "start", OldState: "Stop", NewState: "Idle"}},
		{Timestamp: ts.Add(time.Second), SessionID: "s1", Layer: log.LayerRegistry, PeripheralID: "i2c0",
			StateChange: &log.StateChangeEvent{Edge: "start", OldState: "Stop", NewState: "Idle", Reason: "transition"}},
		{Timestamp: ts.Add(2 * time.Second), SessionID: "s1", Layer: log.LayerRegistry, PeripheralID: "i2c0",
			Hook: &log.HookEvent{Kind: "sleep", Action: log.HookRan}},
		{Timestamp: ts.Add(3 * time.Second), SessionID: "s1", Layer: log.LayerRegistry, PeripheralID: "i2c0",
			Hook: &log.HookEvent{Kind: "sleep", Action: log.HookRan, Index: 1, Error: "busy"}},
		{Timestamp: ts.Add(4 * time.Second), SessionID: "s2", Layer: log.LayerRegistry, PeripheralID: "spi0",
			Interrupt: &log.InterruptEvent{Name: "spi_rx", Enabled: true, Active: 1}},
	}

	path := createTestLogFile(t, events)

	stats, err := collectStats(path)
	if err != nil {
		t.Fatalf("collectStats failed: %v", err)
	}

	if len(stats.Sessions) != 2 {
		t.Errorf("expected 2 sessions, got %d", len(stats.Sessions))
	}
	i2c := stats.Peripherals["i2c0"]
	if i2c == nil {
		t.Fatal("expected stats for i2c0")
	}
	if i2c.Type != "I2CBus" || i2c.LastState != "Idle" {
		t.Errorf("unexpected i2c0 stats: %+v", i2c)
	}
	if i2c.Transitions != 1 {
		t.Errorf("expected 1 typed transition, got %d", i2c.Transitions)
	}
	if i2c.HookRuns != 2 || i2c.HookErrors != 1 {
		t.Errorf("expected 2 hook runs with 1 failure, got %d/%d", i2c.HookRuns, i2c.HookErrors)
	}
	if stats.Peripherals["spi0"].Interrupts != 1 {
		t.Errorf("expected 1 interrupt change for spi0")
	}

	var buf bytes.Buffer
	printStats(&buf, stats)
	output := buf.String()
	if !strings.Contains(output, `i2c0 (I2CBus): 4 events, last state "Idle"`) {
		t.Errorf("missing i2c0 summary:\n%s", output)
	}
	if !strings.Contains(output, "Hook runs: 2 (1 failed)") {
		t.Errorf("missing hook summary:\n%s", output)
	}
	if strings.Index(output, "i2c0") > strings.Index(output, "spi0") {
		t.Errorf("peripherals should be ordered by first appearance:\n%s", output)
	}
}

func TestStatsEmptyFile(t *testing.T) {
	path := createTestLogFile(t, nil)

	var buf bytes.Buffer
	if err := RunStats(path, &buf); err != nil {
		t.Fatalf("RunStats failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Total Events: 0") {
		t.Errorf("expected zero events, got:\n%s", buf.String())
	}
}
