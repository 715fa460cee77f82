// Package interactive provides the interactive command-line interface
// for the peripheral registry.
package interactive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/mash-protocol/typestate-go/internal/examples/i2cbus"
	"github.com/mash-protocol/typestate-go/pkg/log"
	"github.com/mash-protocol/typestate-go/pkg/registry"
	"github.com/mash-protocol/typestate-go/pkg/typestate"
)

// ErrHookFailed is returned by hooks registered with the "fail" flag.
var ErrHookFailed = errors.New("hook failed on request")

// Shell handles interactive mode for tstate-shell.
type Shell struct {
	reg         *registry.Registry
	eventLogger log.Logger
	rl          *readline.Instance
}

// New creates a shell over reg. Typed transitions driven by the "demo"
// command are also captured through eventLogger, which may be nil.
func New(reg *registry.Registry, eventLogger log.Logger) *Shell {
	return &Shell{reg: reg, eventLogger: log.OrNoop(eventLogger)}
}

// Run starts the interactive command loop.
func (s *Shell) Run(ctx context.Context, cancel context.CancelFunc) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "registry> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    completer(),
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	s.rl = rl
	defer rl.Close()

	printHelp(rl.Stdout())

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		line, err := rl.Readline()
		if err != nil {
			// EOF or interrupt
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(rl.Stdout(), "Exiting...")
			cancel()
			return nil
		}

		if !s.Execute(ctx, line, rl.Stdout()) {
			fmt.Fprintln(rl.Stdout(), "Exiting...")
			cancel()
			return nil
		}
	}
}

// Execute runs one command line and writes its output to w. It returns
// false when the line asks the shell to exit.
func (s *Shell) Execute(ctx context.Context, line string, w io.Writer) bool {
	input := strings.TrimSpace(line)
	if input == "" || strings.HasPrefix(input, "#") {
		return true
	}

	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		printHelp(w)

	case "enroll", "e":
		s.cmdEnroll(w, args)

	case "update", "u":
		s.cmdUpdate(w, args)

	case "check", "c":
		s.cmdCheck(w, args)

	case "state", "s":
		s.cmdState(w, args)

	case "list", "ls":
		s.cmdList(w)

	case "isr":
		s.cmdISR(w, args)

	case "isrs":
		s.cmdISRs(w, args)

	case "hook":
		s.cmdHook(w, args)

	case "run":
		s.cmdRun(ctx, w, args)

	case "demo":
		s.cmdDemo(w, args)

	case "quit", "exit", "q":
		return false

	default:
		fmt.Fprintf(w, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return true
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, `
Registry Commands:
  Peripherals:
    enroll <id>               - Record <id> in the off state
    update <id> <state>       - Record <id> in <state>
    check <id> <state>        - Check the recorded state of <id>
    state <id>                - Show the recorded state of <id>
    list                      - List known peripherals

  Interrupts:
    isr enable <id> <name>    - Enable an interrupt handler for <id>
    isr disable <id> <name>   - Disable an interrupt handler for <id>
    isrs [id]                 - Show active handlers (or handlers of <id>)

  Hooks:
    hook <kind> <id> [fail]   - Register a printing sleep|restore|access hook
    run <kind> <id>           - Run the hooks of <kind> for <id>

  Typed API:
    demo <id>                 - Drive an I2CBus through its legal sequence,
                                mirroring every transition into the registry

  General:
    help                      - Show this help
    quit                      - Exit shell`)
}

func completer() *readline.PrefixCompleter {
	kinds := []readline.PrefixCompleterInterface{
		readline.PcItem(registry.HookSleep.String()),
		readline.PcItem(registry.HookRestore.String()),
		readline.PcItem(registry.HookAccess.String()),
	}
	return readline.NewPrefixCompleter(
		readline.PcItem("help"),
		readline.PcItem("enroll"),
		readline.PcItem("update"),
		readline.PcItem("check"),
		readline.PcItem("state"),
		readline.PcItem("list"),
		readline.PcItem("isr", readline.PcItem("enable"), readline.PcItem("disable")),
		readline.PcItem("isrs"),
		readline.PcItem("hook", kinds...),
		readline.PcItem("run", kinds...),
		readline.PcItem("demo"),
		readline.PcItem("quit"),
	)
}

func (s *Shell) cmdEnroll(w io.Writer, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(w, "Usage: enroll <id>")
		return
	}
	s.reg.Enroll(args[0])
	fmt.Fprintf(w, "%s enrolled in %s\n", args[0], s.reg.OffState())
}

func (s *Shell) cmdUpdate(w io.Writer, args []string) {
	if len(args) != 2 {
		fmt.Fprintln(w, "Usage: update <id> <state>")
		return
	}
	s.reg.Update(args[0], args[1])
	fmt.Fprintf(w, "%s -> %s\n", args[0], args[1])
}

func (s *Shell) cmdCheck(w io.Writer, args []string) {
	if len(args) != 2 {
		fmt.Fprintln(w, "Usage: check <id> <state>")
		return
	}
	if s.reg.Check(args[0], args[1]) {
		fmt.Fprintln(w, "ok")
		return
	}
	fmt.Fprintln(w, "mismatch")
}

func (s *Shell) cmdState(w io.Writer, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(w, "Usage: state <id>")
		return
	}
	state, ok := s.reg.State(args[0])
	if !ok {
		fmt.Fprintf(w, "%s: unknown peripheral\n", args[0])
		return
	}
	fmt.Fprintf(w, "%s: %s\n", args[0], state)
}

func (s *Shell) cmdList(w io.Writer) {
	ids := s.reg.Peripherals()
	if len(ids) == 0 {
		fmt.Fprintln(w, "No peripherals")
		return
	}
	for _, id := range ids {
		state, _ := s.reg.State(id)
		fmt.Fprintf(w, "  %-16s %-12s sleep=%d restore=%d access=%d\n", id, state,
			s.reg.HookCount(id, registry.HookSleep),
			s.reg.HookCount(id, registry.HookRestore),
			s.reg.HookCount(id, registry.HookAccess))
	}
}

func (s *Shell) cmdISR(w io.Writer, args []string) {
	if len(args) != 3 {
		fmt.Fprintln(w, "Usage: isr enable|disable <id> <name>")
		return
	}
	switch strings.ToLower(args[0]) {
	case "enable", "on":
		s.reg.EnableISR(args[1], args[2])
		fmt.Fprintf(w, "%s enabled for %s\n", args[2], args[1])
	case "disable", "off":
		s.reg.DisableISR(args[1], args[2])
		fmt.Fprintf(w, "%s disabled for %s\n", args[2], args[1])
	default:
		fmt.Fprintf(w, "Unknown isr action: %s (use enable or disable)\n", args[0])
	}
}

func (s *Shell) cmdISRs(w io.Writer, args []string) {
	var names []string
	if len(args) > 0 {
		names = s.reg.PeripheralISRs(args[0])
	} else {
		names = s.reg.ActiveISRs()
	}
	if len(names) == 0 {
		fmt.Fprintln(w, "No handlers")
		return
	}
	for _, name := range names {
		marker := " "
		if s.reg.IsActive(name) {
			marker = "*"
		}
		fmt.Fprintf(w, "  %s %s\n", marker, name)
	}
}

func (s *Shell) cmdHook(w io.Writer, args []string) {
	if len(args) < 2 || len(args) > 3 {
		fmt.Fprintln(w, "Usage: hook sleep|restore|access <id> [fail]")
		return
	}
	kind, ok := registry.ParseHookKind(args[0])
	if !ok {
		fmt.Fprintf(w, "Unknown hook kind: %s\n", args[0])
		return
	}
	fail := len(args) == 3 && strings.EqualFold(args[2], "fail")
	n := s.reg.HookCount(args[1], kind) + 1

	err := s.reg.RegisterHook(kind, args[1], func(_ context.Context, id string) error {
		fmt.Fprintf(w, "  %s hook #%d for %s\n", kind, n, id)
		if fail {
			return ErrHookFailed
		}
		return nil
	})
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(w, "%s hook #%d registered for %s\n", kind, n, args[1])
}

func (s *Shell) cmdRun(ctx context.Context, w io.Writer, args []string) {
	if len(args) != 2 {
		fmt.Fprintln(w, "Usage: run sleep|restore|access <id>")
		return
	}
	kind, ok := registry.ParseHookKind(args[0])
	if !ok {
		fmt.Fprintf(w, "Unknown hook kind: %s\n", args[0])
		return
	}
	if err := s.reg.RunHooks(ctx, kind, args[1]); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(w, "%s hooks for %s done\n", kind, args[1])
}

// cmdDemo runs the typed I2C sequence. Each generated method consumes the
// previous wrapper, so the chain below is the only order that builds.
func (s *Shell) cmdDemo(w io.Writer, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(w, "Usage: demo <id>")
		return
	}
	id := args[0]
	defer i2cbus.SetOutput(w)()

	s.reg.Update(id, i2cbus.Stop{}.StateName())
	bus := i2cbus.NewI2CBus(0,
		typestate.WithObserver(
			s.reg.Track(id),
			log.NewObserver(s.eventLogger, s.reg.SessionID(), id),
		))

	configured := bus.Start(nil).Configure(1000, nil)
	fmt.Fprintf(w, "%s configured with number %d\n", id, configured.CheckNum())

	stopped := configured.Run(nil).Idle(nil).Stop(nil)
	state, _ := s.reg.State(id)
	fmt.Fprintf(w, "%s finished as %s (registry: %s)\n", id, stopped, state)
}
