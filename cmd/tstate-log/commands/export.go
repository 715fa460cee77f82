package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mash-protocol/typestate-go/pkg/log"
)

// RunExport exports the log file to the specified format.
func RunExport(path, format, output string) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch format {
	case "jsonl":
		return exportJSONL(reader, w)
	case "csv":
		return exportCSV(reader, w)
	default:
		return fmt.Errorf("unknown format: %s (supported: jsonl, csv)", format)
	}
}

func exportJSONL(reader *log.Reader, w io.Writer) error {
	encoder := json.NewEncoder(w)
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		if err := encoder.Encode(event); err != nil {
			return fmt.Errorf("failed to encode event: %w", err)
		}
	}
	return nil
}

func exportCSV(reader *log.Reader, w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"timestamp", "session_id", "layer", "category", "peripheral_id", "peripheral", "type", "detail"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		row := []string{
			event.Timestamp.UTC().Format(timeLayout),
			event.SessionID,
			event.Layer.String(),
			event.Category.String(),
			event.PeripheralID,
			event.Peripheral,
			strings.ToLower(typeLabel(event)),
			detail(event),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	return nil
}

// detail summarises the payload in one cell.
func detail(event log.Event) string {
	switch {
	case event.StateChange != nil:
		sc := event.StateChange
		s := sc.OldState + "->" + sc.NewState
		if sc.Edge != "" {
			s = sc.Edge + " " + s
		}
		return s
	case event.Hook != nil:
		s := fmt.Sprintf("%s#%d %s", event.Hook.Kind, event.Hook.Index, event.Hook.Action)
		if event.Hook.Error != "" {
			s += ": " + event.Hook.Error
		}
		return s
	case event.Interrupt != nil:
		if event.Interrupt.Enabled {
			return event.Interrupt.Name + " enabled"
		}
		return event.Interrupt.Name + " disabled"
	case event.Error != nil:
		return event.Error.Message
	}
	return ""
}
