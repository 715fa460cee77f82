package tsspec

import (
	"errors"
	"fmt"
	"go/parser"
	"go/token"
	"go/types"
	"strings"

	"github.com/mash-protocol/typestate-go/pkg/typestate"
)

// Validation errors. Validate wraps them with the offending item so callers
// can match with errors.Is and still print a useful message.
var (
	ErrMissing         = errors.New("required value missing")
	ErrBadIdentifier   = errors.New("not a valid Go identifier")
	ErrBadType         = errors.New("not a valid Go type")
	ErrBadBody         = errors.New("body does not parse")
	ErrMissingBody     = errors.New("method returns a value but has no body")
	ErrReservedName    = errors.New("name is reserved")
	ErrDuplicateMember = errors.New("duplicate name")
	ErrPredeclared     = errors.New("shadows a predeclared Go identifier")
)

// wrapperMembers are promoted from typestate.Wrapper or generated on every
// per-state wrapper; transitions and methods must not reuse them.
var wrapperMembers = []string{"Wrapper", "Peripheral", "State", "Live", "With", "Clone", "Graph", "String"}

// reservedParams are used by generated code inside method bodies.
var reservedParams = []string{"p", "w", "cb", "next", "opts", "fn"}

// reservedPackages are imported by generated files or commonly used by
// bodies; a field, parameter or package-level name must not hide them.
var reservedPackages = []string{
	"typestate", "fmt", "errors", "io", "os", "strings", "strconv",
	"bytes", "time", "context", "sync", "math", "slog",
}

// Validate checks the specification and returns every problem found,
// joined. The transition graph itself is checked with typestate.Builder so
// the generator and the generated package agree on what is legal.
func (s *RawSpec) Validate() error {
	v := &validator{spec: s}
	v.run()
	if len(v.errs) > 0 {
		return fmt.Errorf("invalid spec for %q: %w", s.Peripheral, errors.Join(v.errs...))
	}
	return nil
}

// Graph builds the runtime graph described by the specification.
func (s *RawSpec) Graph() (*typestate.Graph, error) {
	b := typestate.NewBuilder(s.Peripheral).States(s.States...).Initial(s.Initial)
	for _, t := range s.Transitions {
		b.Edge(t.Name, t.From, t.To)
	}
	return b.Build()
}

type validator struct {
	spec *RawSpec
	errs []error
}

func (v *validator) fail(err error, format string, args ...any) {
	v.errs = append(v.errs, fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err))
}

func (v *validator) run() {
	s := v.spec

	if s.Package == "" {
		v.fail(ErrMissing, "package")
	} else {
		v.ident(s.Package, "package")
	}
	if s.Peripheral == "" {
		v.fail(ErrMissing, "peripheral")
	} else {
		v.ident(s.Peripheral, "peripheral")
	}

	if _, err := s.Graph(); err != nil {
		v.errs = append(v.errs, err)
	}

	for _, st := range s.States {
		v.ident(s.TagName(st), "state %s", st)
	}

	v.topLevel()
	v.peripheralMembers()
	v.fields()
	v.transitions()
	v.methods()
}

func (v *validator) ident(name, format string, args ...any) bool {
	if !token.IsIdentifier(name) {
		v.fail(ErrBadIdentifier, "%s %q", fmt.Sprintf(format, args...), name)
		return false
	}
	return true
}

func (v *validator) typeExpr(expr, format string, args ...any) {
	if strings.TrimSpace(expr) == "" {
		v.fail(ErrMissing, "%s type", fmt.Sprintf(format, args...))
		return
	}
	if _, err := parser.ParseExpr(expr); err != nil {
		v.fail(ErrBadType, "%s %q", fmt.Sprintf(format, args...), expr)
	}
}

func (v *validator) body(body, format string, args ...any) {
	if body == "" {
		return
	}
	src := "package p\nfunc _() {\n" + body + "\n}\n"
	if _, err := parser.ParseFile(token.NewFileSet(), "", src, parser.SkipObjectResolution); err != nil {
		v.fail(ErrBadBody, "%s: %v", fmt.Sprintf(format, args...), err)
	}
}

// topLevel checks that generated package-level names do not collide.
func (v *validator) topLevel() {
	s := v.spec
	seen := map[string]string{}
	add := func(name, what string) {
		if prev, ok := seen[name]; ok {
			v.fail(ErrDuplicateMember, "%s %s collides with %s", what, name, prev)
			return
		}
		seen[name] = what
		v.notShadowing(name, what)
	}

	add(s.Peripheral, "peripheral type")
	add(s.ConstructorName(), "constructor")
	add(s.GraphVar(), "graph variable")
	for _, st := range uniq(s.States) {
		add(s.TagName(st), "state tag")
		add(s.WrapperName(st), "state wrapper")
	}
	for _, t := range s.Transitions {
		add(s.EdgeTypeName(t), "edge type")
	}
}

// peripheralMembers checks fields and helper methods on the peripheral type.
func (v *validator) peripheralMembers() {
	s := v.spec
	seen := map[string]bool{"Graph": true}
	add := func(name, what string) {
		if seen[name] {
			v.fail(ErrDuplicateMember, "%s %s on %s", what, name, s.Peripheral)
			return
		}
		seen[name] = true
	}
	for _, f := range s.Fields {
		add(f.Name, "field")
	}
	for _, t := range s.Transitions {
		if t.Body != "" {
			add(s.EffectName(t), "effect helper")
		}
	}
	for _, m := range s.Methods {
		add(s.MethodHelperName(m), "method helper")
	}
}

func (v *validator) fields() {
	for _, f := range v.spec.Fields {
		if v.ident(f.Name, "field") {
			v.notReserved(f.Name, "field")
		}
		v.typeExpr(f.Type, "field %s", f.Name)
	}
}

func (v *validator) params(params []RawParam, owner string) {
	seen := map[string]bool{}
	for _, p := range params {
		if !v.ident(p.Name, "%s parameter", owner) {
			continue
		}
		v.notReserved(p.Name, "%s parameter", owner)
		if seen[p.Name] {
			v.fail(ErrDuplicateMember, "%s parameter %s", owner, p.Name)
		}
		seen[p.Name] = true
		v.typeExpr(p.Type, "%s parameter %s", owner, p.Name)
	}
}

func (v *validator) notReserved(name, format string, args ...any) {
	for _, r := range reservedParams {
		if name == r {
			v.fail(ErrReservedName, "%s %s", fmt.Sprintf(format, args...), name)
		}
	}
	v.notShadowing(name, fmt.Sprintf(format, args...))
}

// notShadowing rejects names that would hide an imported package or a
// predeclared identifier such as error or len in the generated file.
func (v *validator) notShadowing(name, what string) {
	for _, pkg := range reservedPackages {
		if name == pkg {
			v.fail(ErrReservedName, "%s %s hides package %s", what, name, pkg)
			return
		}
	}
	if name != "_" && types.Universe.Lookup(name) != nil {
		v.fail(ErrPredeclared, "%s %s", what, name)
	}
}

func (v *validator) transitions() {
	s := v.spec
	// Go method names are exported, so "start" and "Start" from the same
	// state would produce the same method even though the graph accepts them.
	seen := map[string]string{}
	for _, t := range s.Transitions {
		owner := fmt.Sprintf("transition %s(%s => %s)", t.Name, t.From, t.To)
		if !v.ident(t.Name, "transition") {
			continue
		}
		goName := GoName(t.Name)
		key := t.From + "." + goName
		if prev, ok := seen[key]; ok && prev != t.Name {
			v.fail(ErrDuplicateMember, "%s: method %s already generated for %s", owner, goName, prev)
		}
		seen[key] = t.Name
		v.notWrapperMember(goName, owner)
		v.params(t.Params, owner)
		v.body(t.Body, "%s body", owner)
	}
}

func (v *validator) methods() {
	s := v.spec
	known := map[string]bool{}
	for _, st := range s.States {
		known[st] = true
	}

	taken := map[string]bool{}
	for _, t := range s.Transitions {
		taken[t.From+"."+GoName(t.Name)] = true
	}

	for _, m := range s.Methods {
		owner := fmt.Sprintf("method %s in %s", m.Name, m.State)
		if !known[m.State] {
			v.fail(typestate.ErrUnknownState, "%s", owner)
		}
		if !v.ident(m.Name, "method") {
			continue
		}
		goName := GoName(m.Name)
		key := m.State + "." + goName
		if taken[key] {
			v.fail(ErrDuplicateMember, "%s: %s already declared in %s", owner, goName, m.State)
		}
		taken[key] = true
		v.notWrapperMember(goName, owner)
		v.params(m.Params, owner)
		if m.Returns != "" {
			v.typeExpr("func() "+m.Returns, "%s returns", owner)
			if strings.TrimSpace(m.Body) == "" {
				v.fail(ErrMissingBody, "%s", owner)
			}
		}
		v.body(m.Body, "%s body", owner)
	}
}

func (v *validator) notWrapperMember(goName, owner string) {
	for _, r := range wrapperMembers {
		if goName == r {
			v.fail(ErrReservedName, "%s: %s is a wrapper method", owner, goName)
		}
	}
}

func uniq(in []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
