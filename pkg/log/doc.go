// Package log provides structured event capture for typestate peripherals.
//
// It defines the Logger interface and the Event type for recording what
// happened to a peripheral: typed transitions taken through generated
// methods, shadow state updates in the registry, lifecycle hook activity
// and interrupt handler bookkeeping. It is separate from operational
// logging (slog): event capture produces a machine-readable trace that the
// tstate-log tool can view, filter and export.
//
// # Basic Usage
//
//	// For development: log to console via slog
//	cfg.Logger = log.NewSlogAdapter(slog.Default())
//
//	// For later analysis: write to a binary file
//	fl, _ := log.NewFileLogger("/var/log/bus.tlog")
//	cfg.Logger = fl
//
//	// Both
//	cfg.Logger = log.NewMultiLogger(log.NewSlogAdapter(slog.Default()), fl)
//
// Typed transitions are captured by attaching an observer at construction:
//
//	bus := i2cbus.NewI2CBus(0, typestate.WithObserver(log.NewObserver(fl, session, "i2c0")))
//
// # File Format
//
// Log files are a stream of CBOR-encoded events with integer keys, using
// the .tlog extension.
package log
