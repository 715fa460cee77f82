// Command tstate-log is a tool for viewing and analyzing peripheral event logs.
//
// Log files are written by a log.FileLogger, typically wired into a registry
// through registry.Config.EventLogger or into typed wrappers through
// log.NewObserver. tstate-shell writes one with the -event-log flag.
//
// Usage:
//
//	tstate-log <command> [flags] <file.tlog>
//
// Commands:
//
//	view     View log file in human-readable format
//	export   Export log file to JSON or CSV format
//	filter   Filter log file and write to new file
//	stats    Show statistics about the log file
//
// Examples:
//
//	# View all events
//	tstate-log view bus.tlog
//
//	# View only hook activity
//	tstate-log view -category hook bus.tlog
//
//	# Export to CSV
//	tstate-log export -format csv bus.tlog
//
//	# Keep one peripheral and save to new file
//	tstate-log filter -peripheral-id i2c0 -o i2c0.tlog bus.tlog
//
//	# Show statistics
//	tstate-log stats bus.tlog
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mash-protocol/typestate-go/cmd/tstate-log/commands"
)

const usage = `tstate-log - Peripheral Event Log Analyzer

Usage:
  tstate-log <command> [flags] <file.tlog>

Commands:
  view     View log file in human-readable format
  export   Export log file to JSON or CSV format
  filter   Filter log file and write to new file
  stats    Show statistics about the log file

Use "tstate-log <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "view":
		runView(args)
	case "export":
		runExport(args)
	case "filter":
		runFilter(args)
	case "stats":
		runStats(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// parseWithPath parses args and returns the single log file argument.
func parseWithPath(fs *flag.FlagSet, args []string) string {
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: log file path required")
		fs.Usage()
		os.Exit(1)
	}
	return fs.Arg(0)
}

func runView(args []string) {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `tstate-log view - View log file in human-readable format

Usage:
  tstate-log view [flags] <file.tlog>

Flags:
`)
		fs.PrintDefaults()
	}

	layer := fs.String("layer", "", "Filter by layer (typestate, registry)")
	category := fs.String("category", "", "Filter by category (state, hook, interrupt, error)")
	peripheralID := fs.String("peripheral-id", "", "Filter by registry peripheral ID")

	path := parseWithPath(fs, args)

	filter := commands.ViewFilter{PeripheralID: *peripheralID}

	if *layer != "" {
		l, err := commands.ParseLayerFlag(*layer)
		if err != nil {
			fail(err)
		}
		filter.Layer = &l
	}

	if *category != "" {
		c, err := commands.ParseCategoryFlag(*category)
		if err != nil {
			fail(err)
		}
		filter.Category = &c
	}

	if err := commands.RunView(path, filter, os.Stdout); err != nil {
		fail(err)
	}
}

func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `tstate-log export - Export log file to JSON or CSV format

Usage:
  tstate-log export [flags] <file.tlog>

Flags:
`)
		fs.PrintDefaults()
	}

	format := fs.String("format", "jsonl", "Output format (jsonl, csv)")
	output := fs.String("o", "", "Output file (default: stdout)")

	path := parseWithPath(fs, args)

	if err := commands.RunExport(path, *format, *output); err != nil {
		fail(err)
	}
}

func runFilter(args []string) {
	fs := flag.NewFlagSet("filter", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `tstate-log filter - Filter log file and write to new file

Usage:
  tstate-log filter [flags] <file.tlog>

Flags:
`)
		fs.PrintDefaults()
	}

	output := fs.String("o", "", "Output file (required)")
	session := fs.String("session", "", "Filter by session ID")
	peripheralID := fs.String("peripheral-id", "", "Filter by registry peripheral ID")
	peripheral := fs.String("peripheral", "", "Filter by peripheral type name")
	timeStart := fs.String("time-start", "", "Filter by start time (RFC3339)")
	timeEnd := fs.String("time-end", "", "Filter by end time (RFC3339)")
	layer := fs.String("layer", "", "Filter by layer (typestate, registry)")
	category := fs.String("category", "", "Filter by category (state, hook, interrupt, error)")

	path := parseWithPath(fs, args)

	if *output == "" {
		fmt.Fprintln(os.Stderr, "Error: output file (-o) required")
		fs.Usage()
		os.Exit(1)
	}

	opts := commands.FilterOptions{
		Output:       *output,
		SessionID:    *session,
		PeripheralID: *peripheralID,
		Peripheral:   *peripheral,
		TimeStart:    *timeStart,
		TimeEnd:      *timeEnd,
		Layer:        *layer,
		Category:     *category,
	}

	n, err := commands.RunFilter(path, opts)
	if err != nil {
		fail(err)
	}
	fmt.Printf("Filtered %d events to %s\n", n, *output)
}

func runStats(args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `tstate-log stats - Show statistics about the log file

Usage:
  tstate-log stats <file.tlog>

`)
	}

	path := parseWithPath(fs, args)

	if err := commands.RunStats(path, os.Stdout); err != nil {
		fail(err)
	}
}
