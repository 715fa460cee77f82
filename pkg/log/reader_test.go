package log

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func createTestLogFile(t *testing.T, events []Event) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "test"+FileExt)

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create test log: %v", err)
	}
	for _, e := range events {
		logger.Log(e)
	}
	logger.Close()

	return path
}

func readFiltered(t *testing.T, path string, filter Filter) []Event {
	t.Helper()
	reader, err := NewFilteredReader(path, filter)
	if err != nil {
		t.Fatalf("NewFilteredReader failed: %v", err)
	}
	defer reader.Close()

	events, err := reader.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	return events
}

func TestReaderIteratesEvents(t *testing.T) {
	events := []Event{
		{Timestamp: time.Now(), PeripheralID: "dev-1", Layer: LayerTypestate, Category: CategoryState},
		{Timestamp: time.Now(), PeripheralID: "dev-2", Layer: LayerRegistry, Category: CategoryHook},
		{Timestamp: time.Now(), PeripheralID: "dev-3", Layer: LayerRegistry, Category: CategoryInterrupt},
	}
	path := createTestLogFile(t, events)

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	var read []Event
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		read = append(read, event)
	}

	if len(read) != 3 {
		t.Fatalf("got %d events, want 3", len(read))
	}
	if read[0].PeripheralID != "dev-1" {
		t.Errorf("first event PeripheralID = %q, want %q", read[0].PeripheralID, "dev-1")
	}
	if read[2].PeripheralID != "dev-3" {
		t.Errorf("last event PeripheralID = %q, want %q", read[2].PeripheralID, "dev-3")
	}
}

func TestReaderHandlesEmptyFile(t *testing.T) {
	path := createTestLogFile(t, nil)

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	if _, err := reader.Next(); err != io.EOF {
		t.Errorf("expected io.EOF for empty file, got %v", err)
	}
}

func TestReaderMissingFile(t *testing.T) {
	if _, err := NewReader(filepath.Join(t.TempDir(), "missing"+FileExt)); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestReaderCorruptTail(t *testing.T) {
	path := createTestLogFile(t, []Event{{Timestamp: time.Now(), PeripheralID: "dev-1"}})

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatal(err)
	}
	// A map header promising more entries than follow.
	if _, err := f.Write([]byte{0xa5, 0x01}); err != nil {
		t.Fatal(err)
	}
	f.Close()

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	if _, err := reader.Next(); err != nil {
		t.Fatalf("first Next failed: %v", err)
	}
	if _, err := reader.Next(); err == nil || err == io.EOF {
		t.Errorf("expected decode error for truncated event, got %v", err)
	}
}

func TestReaderFilterByPeripheralID(t *testing.T) {
	path := createTestLogFile(t, []Event{
		{Timestamp: time.Now(), PeripheralID: "i2c0"},
		{Timestamp: time.Now(), PeripheralID: "spi0"},
		{Timestamp: time.Now(), PeripheralID: "i2c0"},
	})

	got := readFiltered(t, path, Filter{PeripheralID: "i2c0"})
	if len(got) != 2 {
		t.Fatalf("got %d events, want 2", len(got))
	}
	for _, e := range got {
		if e.PeripheralID != "i2c0" {
			t.Errorf("unexpected PeripheralID %q", e.PeripheralID)
		}
	}
}

func TestReaderFilterByLayerAndCategory(t *testing.T) {
	path := createTestLogFile(t, []Event{
		{Timestamp: time.Now(), Layer: LayerTypestate, Category: CategoryState},
		{Timestamp: time.Now(), Layer: LayerRegistry, Category: CategoryState},
		{Timestamp: time.Now(), Layer: LayerRegistry, Category: CategoryHook},
	})

	layer := LayerRegistry
	if got := readFiltered(t, path, Filter{Layer: &layer}); len(got) != 2 {
		t.Errorf("layer filter: got %d events, want 2", len(got))
	}

	cat := CategoryState
	if got := readFiltered(t, path, Filter{Category: &cat}); len(got) != 2 {
		t.Errorf("category filter: got %d events, want 2", len(got))
	}

	got := readFiltered(t, path, Filter{Layer: &layer, Category: &cat})
	if len(got) != 1 {
		t.Errorf("combined filter: got %d events, want 1", len(got))
	}
}

func TestReaderFilterByTimeRange(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	path := createTestLogFile(t, []Event{
		{Timestamp: base, PeripheralID: "a"},
		{Timestamp: base.Add(time.Second), PeripheralID: "b"},
		{Timestamp: base.Add(2 * time.Second), PeripheralID: "c"},
	})

	start := base.Add(time.Second)
	end := base.Add(2 * time.Second)
	got := readFiltered(t, path, Filter{TimeStart: &start, TimeEnd: &end})
	if len(got) != 1 || got[0].PeripheralID != "b" {
		t.Errorf("time filter: got %+v, want only b", got)
	}
}

func TestFilterMatchesSessionAndPeripheral(t *testing.T) {
	e := Event{SessionID: "s-1", Peripheral: "I2CBus"}

	tests := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{"empty", Filter{}, true},
		{"session match", Filter{SessionID: "s-1"}, true},
		{"session mismatch", Filter{SessionID: "s-2"}, false},
		{"peripheral match", Filter{Peripheral: "I2CBus"}, true},
		{"peripheral mismatch", Filter{Peripheral: "SPIBus"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Matches(e); got != tt.want {
				t.Errorf("Matches = %v, want %v", got, tt.want)
			}
		})
	}
}
