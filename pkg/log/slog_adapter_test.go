package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
	"time"
)

func logJSON(t *testing.T, adapter func(*slog.Logger) Logger, event Event) map[string]any {
	t.Helper()
	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	adapter(slog.New(handler)).Log(event)

	if buf.Len() == 0 {
		t.Fatal("no output produced")
	}
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse log output: %v", err)
	}
	return entry
}

func debugAdapter(l *slog.Logger) Logger { return NewSlogAdapter(l) }

func TestSlogAdapterLogsStateChange(t *testing.T) {
	entry := logJSON(t, debugAdapter, Event{
		Timestamp:    time.Now(),
		SessionID:    "session-123",
		Layer:        LayerTypestate,
		Category:     CategoryState,
		PeripheralID: "i2c0",
		Peripheral:   "I2CBus",
		StateChange:  &StateChangeEvent{Edge: "run", OldState: "Configured", NewState: "Running"},
	})

	want := map[string]any{
		"msg":           "peripheral",
		"level":         "DEBUG",
		"session":       "session-123",
		"layer":         "TYPESTATE",
		"category":      "STATE",
		"peripheral_id": "i2c0",
		"peripheral":    "I2CBus",
		"edge":          "run",
		"old_state":     "Configured",
		"new_state":     "Running",
	}
	for k, v := range want {
		if entry[k] != v {
			t.Errorf("%s: got %v, want %v", k, entry[k], v)
		}
	}
	if _, ok := entry["reason"]; ok {
		t.Error("reason should be omitted when empty")
	}
}

func TestSlogAdapterLogsHook(t *testing.T) {
	d := 2 * time.Millisecond
	entry := logJSON(t, debugAdapter, Event{
		Layer:    LayerRegistry,
		Category: CategoryHook,
		Hook:     &HookEvent{Kind: "restore", Action: HookRan, Index: 1, Duration: &d, Error: "timeout"},
	})

	if entry["hook_kind"] != "restore" {
		t.Errorf("hook_kind: got %v", entry["hook_kind"])
	}
	if entry["hook_action"] != "RAN" {
		t.Errorf("hook_action: got %v", entry["hook_action"])
	}
	if entry["hook_index"] != float64(1) {
		t.Errorf("hook_index: got %v", entry["hook_index"])
	}
	if entry["hook_error"] != "timeout" {
		t.Errorf("hook_error: got %v", entry["hook_error"])
	}
	if _, ok := entry["hook_duration"]; !ok {
		t.Error("hook_duration missing")
	}
}

func TestSlogAdapterLogsInterrupt(t *testing.T) {
	entry := logJSON(t, debugAdapter, Event{
		Layer:     LayerRegistry,
		Category:  CategoryInterrupt,
		Interrupt: &InterruptEvent{Name: "I2C0_EV", Enabled: true, Active: 2},
	})

	if entry["isr"] != "I2C0_EV" || entry["enabled"] != true || entry["active"] != float64(2) {
		t.Errorf("interrupt attrs: got %v", entry)
	}
}

func TestSlogAdapterLogsError(t *testing.T) {
	entry := logJSON(t, debugAdapter, Event{
		Layer:    LayerRegistry,
		Category: CategoryError,
		Error:    &ErrorEventData{Layer: LayerRegistry, Message: "boom", Context: "sleep i2c0"},
	})

	if entry["error_msg"] != "boom" || entry["error_context"] != "sleep i2c0" || entry["error_layer"] != "REGISTRY" {
		t.Errorf("error attrs: got %v", entry)
	}
}

func TestSlogAdapterWithLevel(t *testing.T) {
	entry := logJSON(t, func(l *slog.Logger) Logger {
		return NewSlogAdapter(l).WithLevel(slog.LevelInfo)
	}, Event{Layer: LayerRegistry})

	if entry["level"] != "INFO" {
		t.Errorf("level: got %v, want INFO", entry["level"])
	}
}

func TestSlogAdapterRespectsHandlerLevel(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})
	NewSlogAdapter(slog.New(handler)).Log(Event{Layer: LayerRegistry})

	if buf.Len() != 0 {
		t.Errorf("debug event should be suppressed at info level, got %q", buf.String())
	}
}
