// Command tstate-shell is an interactive shell over a peripheral registry.
//
// It records peripheral states, registers printing lifecycle hooks, tracks
// interrupt handlers and can drive the generated I2CBus example through its
// typed API while mirroring each transition into the registry.
//
// Usage:
//
//	tstate-shell [flags]
//
// Flags:
//
//	-log-level string     Log level: debug, info, warn, error (default "info")
//	-event-log string     Write a CBOR event log to this file
//	-off-state string     State recorded by enroll (default "Off")
//	-disable-forgets      Disabling an interrupt also drops it from the peripheral
//
// Examples:
//
//	# Start with debug logging and an event log
//	tstate-shell -log-level debug -event-log session.tlog
//
//	# Inspect the captured events afterwards
//	tstate-log view session.tlog
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mash-protocol/typestate-go/cmd/tstate-shell/interactive"
	"github.com/mash-protocol/typestate-go/pkg/log"
	"github.com/mash-protocol/typestate-go/pkg/registry"
)

// Config holds the shell configuration.
type Config struct {
	LogLevel       string
	EventLog       string
	OffState       string
	DisableForgets bool
}

func main() {
	var config Config
	flag.StringVar(&config.LogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flag.StringVar(&config.EventLog, "event-log", "", "Write a CBOR event log to this file")
	flag.StringVar(&config.OffState, "off-state", registry.DefaultOffState, "State recorded by enroll")
	flag.BoolVar(&config.DisableForgets, "disable-forgets", false, "Disabling an interrupt also drops it from the peripheral")
	flag.Parse()

	if err := run(config); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(config Config) error {
	level, err := parseLevel(config.LogLevel)
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	eventLogger, closeLog, err := setupEventLog(config.EventLog, logger)
	if err != nil {
		return err
	}
	defer closeLog()

	reg := registry.New(registry.Config{
		OffState:       config.OffState,
		DisableForgets: config.DisableForgets,
		Logger:         logger,
		EventLogger:    eventLogger,
	})
	defer reg.Close()

	logger.Info("registry ready", "session", reg.SessionID(), "off_state", reg.OffState())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigCh:
			logger.Info("received signal", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	return interactive.New(reg, eventLogger).Run(ctx, cancel)
}

// setupEventLog returns the event sink for the session. With a path, events
// go to the file and, at debug level, to the operational log as well.
func setupEventLog(path string, logger *slog.Logger) (log.Logger, func(), error) {
	if path == "" {
		if logger.Enabled(context.Background(), slog.LevelDebug) {
			return log.NewSlogAdapter(logger), func() {}, nil
		}
		return nil, func() {}, nil
	}

	fileLogger, err := log.NewFileLogger(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open event log: %w", err)
	}
	closeFn := func() {
		if err := fileLogger.Close(); err != nil {
			logger.Warn("close event log", "error", err)
			return
		}
		logger.Info("event log written", "path", fileLogger.Path(), "events", fileLogger.Count())
	}
	return log.NewMultiLogger(fileLogger, log.NewSlogAdapter(logger)), closeFn, nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}
