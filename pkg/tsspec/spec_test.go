package tsspec

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const i2cYAML = `
package: i2cbus
peripheral: I2CBus
description: Stand-in I2C bus controller.
fields:
  - {name: num, type: uint32}
states: [Stop, Idle, Configured, Running]
initial: Stop
transitions:
  - {name: start, from: Stop, to: Idle, body: 'fmt.Println("started")'}
  - name: configure
    from: Idle
    to: Configured
    params:
      - {name: num, type: uint32}
    body: |
      fmt.Printf("configured with number %d\n", num)
      p.num = num
  - {name: run, from: Configured, to: Running}
  - {name: idle, from: Running, to: Idle}
  - {name: stop, from: Idle, to: Stop}
methods:
  - state: Configured
    name: checkNum
    returns: uint32
    body: return p.num
`

func TestParse(t *testing.T) {
	spec, err := Parse([]byte(i2cYAML))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if spec.Package != "i2cbus" {
		t.Errorf("package = %q, want i2cbus", spec.Package)
	}
	if spec.Peripheral != "I2CBus" {
		t.Errorf("peripheral = %q, want I2CBus", spec.Peripheral)
	}
	if len(spec.Fields) != 1 || spec.Fields[0].Type != "uint32" {
		t.Errorf("fields = %+v, want [num uint32]", spec.Fields)
	}
	if len(spec.States) != 4 {
		t.Errorf("len(states) = %d, want 4", len(spec.States))
	}
	if spec.Initial != "Stop" {
		t.Errorf("initial = %q, want Stop", spec.Initial)
	}
	if len(spec.Transitions) != 5 {
		t.Fatalf("len(transitions) = %d, want 5", len(spec.Transitions))
	}

	cfg := spec.Transitions[1]
	if cfg.Name != "configure" || cfg.From != "Idle" || cfg.To != "Configured" {
		t.Errorf("transitions[1] = %+v", cfg)
	}
	if len(cfg.Params) != 1 || cfg.Params[0].Name != "num" {
		t.Errorf("configure params = %+v", cfg.Params)
	}
	if !strings.Contains(cfg.Body, "p.num = num") {
		t.Errorf("configure body = %q", cfg.Body)
	}

	if len(spec.Methods) != 1 || spec.Methods[0].Returns != "uint32" {
		t.Errorf("methods = %+v", spec.Methods)
	}

	if err := spec.Validate(); err != nil {
		t.Errorf("Validate failed: %v", err)
	}
}

func TestParseInvalidYAML(t *testing.T) {
	_, err := Parse([]byte("{{not yaml"))
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "i2cbus.yaml")
	if err := os.WriteFile(path, []byte(i2cYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	spec, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if spec.Peripheral != "I2CBus" {
		t.Errorf("peripheral = %q", spec.Peripheral)
	}
}

func TestLoadRejectsInvalidSpec(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("package: x\nperipheral: P\nstates: [A]\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for spec without initial state")
	}
	if !strings.Contains(err.Error(), "bad.yaml") {
		t.Errorf("error should name the file, got: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestGroupingHelpers(t *testing.T) {
	spec, err := Parse([]byte(i2cYAML))
	if err != nil {
		t.Fatal(err)
	}

	from := spec.TransitionsFrom("Idle")
	if len(from) != 2 || from[0].Name != "configure" || from[1].Name != "stop" {
		t.Errorf("TransitionsFrom(Idle) = %+v", from)
	}
	if got := spec.MethodsIn("Configured"); len(got) != 1 {
		t.Errorf("MethodsIn(Configured) = %+v", got)
	}
	if got := spec.MethodsIn("Stop"); len(got) != 0 {
		t.Errorf("MethodsIn(Stop) = %+v", got)
	}
}

func TestSpecGraph(t *testing.T) {
	spec, err := Parse([]byte(i2cYAML))
	if err != nil {
		t.Fatal(err)
	}
	g, err := spec.Graph()
	if err != nil {
		t.Fatalf("Graph failed: %v", err)
	}
	if !g.Allows("Running", "Idle") {
		t.Error("expected Running -> Idle")
	}
	if g.Allows("Stop", "Configured") {
		t.Error("Stop -> Configured must not be declared")
	}
}
