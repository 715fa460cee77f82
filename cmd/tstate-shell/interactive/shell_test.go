package interactive

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mash-protocol/typestate-go/pkg/log"
	"github.com/mash-protocol/typestate-go/pkg/registry"
)

type recordingLogger struct {
	events []log.Event
}

func (r *recordingLogger) Log(e log.Event) { r.events = append(r.events, e) }

func newShell(t *testing.T) (*Shell, *registry.Registry) {
	t.Helper()
	reg := registry.New(registry.DefaultConfig())
	t.Cleanup(func() { reg.Close() })
	return New(reg, nil), reg
}

// exec runs each line and returns everything written.
func exec(t *testing.T, s *Shell, lines ...string) string {
	t.Helper()
	var buf bytes.Buffer
	for _, line := range lines {
		require.True(t, s.Execute(context.Background(), line, &buf), "line %q ended the shell", line)
	}
	return buf.String()
}

func TestEnrollUpdateCheck(t *testing.T) {
	s, reg := newShell(t)

	out := exec(t, s, "enroll i2c0", "check i2c0 Off", "update i2c0 Idle", "check i2c0 Off", "state i2c0")

	assert.Contains(t, out, "i2c0 enrolled in Off")
	assert.Contains(t, out, "ok\n")
	assert.Contains(t, out, "mismatch\n")
	assert.Contains(t, out, "i2c0: Idle")
	assert.True(t, reg.Check("i2c0", "Idle"))
}

func TestStateUnknown(t *testing.T) {
	s, _ := newShell(t)
	assert.Contains(t, exec(t, s, "state ghost"), "ghost: unknown peripheral")
}

func TestList(t *testing.T) {
	s, _ := newShell(t)

	assert.Contains(t, exec(t, s, "list"), "No peripherals")

	out := exec(t, s, "enroll b", "enroll a", "hook sleep a", "list")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	last := lines[len(lines)-2:]
	assert.Contains(t, last[0], "a")
	assert.Contains(t, last[0], "sleep=1")
	assert.Contains(t, last[1], "b")
}

func TestISRCommands(t *testing.T) {
	s, reg := newShell(t)

	out := exec(t, s, "isr enable i2c0 ev", "isr enable i2c0 er", "isr disable i2c0 ev", "isrs", "isrs i2c0")

	assert.Contains(t, out, "ev enabled for i2c0")
	assert.Contains(t, out, "ev disabled for i2c0")
	assert.Equal(t, []string{"er"}, reg.ActiveISRs())
	assert.Equal(t, []string{"er", "ev"}, reg.PeripheralISRs("i2c0"))
	assert.Contains(t, out, "  * er\n")
	assert.Contains(t, out, "    ev\n")

	assert.Contains(t, exec(t, s, "isr toggle i2c0 ev"), "Unknown isr action")
}

func TestHookRegistrationAndRun(t *testing.T) {
	s, reg := newShell(t)

	out := exec(t, s, "hook sleep i2c0", "hook sleep i2c0", "run sleep i2c0")

	assert.Equal(t, 2, reg.HookCount("i2c0", registry.HookSleep))
	first := strings.Index(out, "sleep hook #1 for i2c0")
	second := strings.Index(out, "sleep hook #2 for i2c0")
	require.NotEqual(t, -1, first)
	require.NotEqual(t, -1, second)
	assert.Less(t, first, second)
	assert.Contains(t, out, "sleep hooks for i2c0 done")
}

func TestHookFailureIsReported(t *testing.T) {
	s, _ := newShell(t)

	out := exec(t, s, "hook restore uart0 fail", "hook restore uart0", "run restore uart0")

	assert.Contains(t, out, "restore hook #2 for uart0")
	assert.Contains(t, out, "Error:")
	assert.Contains(t, out, ErrHookFailed.Error())
}

func TestHookBadKind(t *testing.T) {
	s, _ := newShell(t)
	assert.Contains(t, exec(t, s, "hook wake i2c0"), "Unknown hook kind: wake")
	assert.Contains(t, exec(t, s, "run wake i2c0"), "Unknown hook kind: wake")
}

func TestDemoMirrorsTransitions(t *testing.T) {
	rec := &recordingLogger{}
	reg := registry.New(registry.DefaultConfig())
	t.Cleanup(func() { reg.Close() })
	s := New(reg, rec)

	out := exec(t, s, "demo i2c0")

	assert.Contains(t, out, "started\nconfigured with number 1000\ni2c0 configured with number 1000\n")
	assert.Contains(t, out, "running\nidling\nstopped\ni2c0 finished as I2CBus<Stop> (registry: Stop)")
	assert.True(t, reg.Check("i2c0", "Stop"))

	var edges []string
	for _, e := range rec.events {
		if e.StateChange != nil {
			edges = append(edges, e.StateChange.Edge)
		}
	}
	assert.Equal(t, []string{"start", "configure", "run", "idle", "stop"}, edges)
}

func TestUsageAndUnknown(t *testing.T) {
	s, _ := newShell(t)

	out := exec(t, s, "enroll", "update x", "check x", "frobnicate", "", "# comment")
	assert.Contains(t, out, "Usage: enroll <id>")
	assert.Contains(t, out, "Usage: update <id> <state>")
	assert.Contains(t, out, "Usage: check <id> <state>")
	assert.Contains(t, out, "Unknown command: frobnicate")
}

func TestHelpAndQuit(t *testing.T) {
	s, _ := newShell(t)

	assert.Contains(t, exec(t, s, "help"), "Registry Commands:")

	var buf bytes.Buffer
	assert.False(t, s.Execute(context.Background(), "quit", &buf))
	assert.False(t, s.Execute(context.Background(), "EXIT", &buf))
}
