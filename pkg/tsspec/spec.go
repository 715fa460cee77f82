// Package tsspec parses and validates declarative peripheral specifications
// consumed by tstategen. A specification names a peripheral, its fields, its
// states and initial state, the legal transitions between them and methods
// that only exist in one state.
package tsspec

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RawSpec is a peripheral specification loaded from YAML.
type RawSpec struct {
	Package     string          `yaml:"package"`
	Peripheral  string          `yaml:"peripheral"`
	Description string          `yaml:"description"`
	StatePrefix string          `yaml:"statePrefix"` // optional prefix for state tag type names
	Fields      []RawParam      `yaml:"fields"`
	States      []string        `yaml:"states"`
	Initial     string          `yaml:"initial"`
	Transitions []RawTransition `yaml:"transitions"`
	Methods     []RawMethod     `yaml:"methods"`
}

// RawParam is a named, typed value: a peripheral field or a parameter.
type RawParam struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"` // Go type expression, e.g. "uint32", "[]byte"
}

// RawTransition declares one legal edge From -> To.
type RawTransition struct {
	Name        string     `yaml:"name"`
	From        string     `yaml:"from"`
	To          string     `yaml:"to"`
	Description string     `yaml:"description"`
	Params      []RawParam `yaml:"params"`
	Body        string     `yaml:"body"` // Go statements run before the tag flips; p is *Peripheral
}

// RawMethod declares a method available in a single state.
type RawMethod struct {
	State       string     `yaml:"state"`
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Params      []RawParam `yaml:"params"`
	Returns     string     `yaml:"returns"` // "", "uint32", "(int, error)"
	Body        string     `yaml:"body"`
}

// Parse parses a specification from YAML bytes. It does not validate;
// call Validate before generating code.
func Parse(data []byte) (*RawSpec, error) {
	var spec RawSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parsing peripheral spec: %w", err)
	}
	return &spec, nil
}

// ReadFile reads and parses a specification file without validating it,
// so callers can apply overrides first.
func ReadFile(path string) (*RawSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	spec, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return spec, nil
}

// Load reads, parses and validates a specification file.
func Load(path string) (*RawSpec, error) {
	spec, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return spec, nil
}

// MethodsIn returns the per-state methods declared for state, in order.
func (s *RawSpec) MethodsIn(state string) []RawMethod {
	var out []RawMethod
	for _, m := range s.Methods {
		if m.State == state {
			out = append(out, m)
		}
	}
	return out
}

// TransitionsFrom returns the transitions leaving state, in order.
func (s *RawSpec) TransitionsFrom(state string) []RawTransition {
	var out []RawTransition
	for _, t := range s.Transitions {
		if t.From == state {
			out = append(out, t)
		}
	}
	return out
}
