package typestate

import (
	"errors"
	"fmt"
	"strings"
)

// Graph errors.
var (
	ErrNoName         = errors.New("peripheral name is empty")
	ErrNoStates       = errors.New("no states declared")
	ErrDuplicateState = errors.New("duplicate state")
	ErrUnknownState   = errors.New("undeclared state")
	ErrNoInitial      = errors.New("initial state not set")
	ErrDuplicateEdge  = errors.New("duplicate transition")
	ErrUnknownEdge    = errors.New("undeclared transition")
)

// EdgeInfo is the runtime description of one declared transition.
type EdgeInfo struct {
	Name string
	From string
	To   string
}

// String returns "name(From => To)".
func (e EdgeInfo) String() string {
	return fmt.Sprintf("%s(%s => %s)", e.Name, e.From, e.To)
}

// Builder collects a peripheral's states and transitions. Build validates
// the whole declaration at once so every problem is reported together.
type Builder struct {
	name    string
	states  []string
	initial string
	edges   []EdgeInfo
}

// NewBuilder starts a graph for the named peripheral.
func NewBuilder(name string) *Builder {
	return &Builder{name: name}
}

// States declares states in order.
func (b *Builder) States(names ...string) *Builder {
	b.states = append(b.states, names...)
	return b
}

// Initial sets the state New produces.
func (b *Builder) Initial(name string) *Builder {
	b.initial = name
	return b
}

// Edge declares the transition name(from => to).
func (b *Builder) Edge(name, from, to string) *Builder {
	b.edges = append(b.edges, EdgeInfo{Name: name, From: from, To: to})
	return b
}

// Build validates the declaration and returns the immutable graph.
func (b *Builder) Build() (*Graph, error) {
	var errs []error

	if b.name == "" {
		errs = append(errs, ErrNoName)
	}
	if len(b.states) == 0 {
		errs = append(errs, ErrNoStates)
	}

	g := &Graph{
		name:    b.name,
		initial: b.initial,
		states:  make([]string, 0, len(b.states)),
		known:   make(map[string]bool, len(b.states)),
		byKey:   make(map[edgeKey]int, len(b.edges)),
	}

	for _, s := range b.states {
		if g.known[s] {
			errs = append(errs, fmt.Errorf("%w: %s", ErrDuplicateState, s))
			continue
		}
		g.known[s] = true
		g.states = append(g.states, s)
	}

	switch {
	case b.initial == "":
		errs = append(errs, ErrNoInitial)
	case !g.known[b.initial]:
		errs = append(errs, fmt.Errorf("%w: initial %s", ErrUnknownState, b.initial))
	}

	for _, e := range b.edges {
		bad := false
		if !g.known[e.From] {
			errs = append(errs, fmt.Errorf("%w: %s references from-state %s", ErrUnknownState, e.Name, e.From))
			bad = true
		}
		if !g.known[e.To] {
			errs = append(errs, fmt.Errorf("%w: %s references to-state %s", ErrUnknownState, e.Name, e.To))
			bad = true
		}
		k := edgeKey{name: e.Name, from: e.From}
		if _, dup := g.byKey[k]; dup {
			errs = append(errs, fmt.Errorf("%w: %s from %s", ErrDuplicateEdge, e.Name, e.From))
			bad = true
		}
		if bad {
			continue
		}
		g.byKey[k] = len(g.edges)
		g.edges = append(g.edges, e)
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("peripheral %q: %w", b.name, errors.Join(errs...))
	}
	return g, nil
}

// MustBuild is like Build but panics on error. It is meant for package-level
// variables in generated code, where a malformed graph must stop the program
// before any peripheral is used.
func (b *Builder) MustBuild() *Graph {
	g, err := b.Build()
	if err != nil {
		panic(err)
	}
	return g
}

type edgeKey struct {
	name string
	from string
}

// Graph is the validated, read-only transition graph of one peripheral.
type Graph struct {
	name    string
	initial string
	states  []string
	edges   []EdgeInfo
	known   map[string]bool
	byKey   map[edgeKey]int
}

// Name returns the peripheral name, or "" for a nil graph.
func (g *Graph) Name() string {
	if g == nil {
		return ""
	}
	return g.name
}

// Initial returns the initial state.
func (g *Graph) Initial() string { return g.initial }

// States returns the declared states in declaration order.
func (g *Graph) States() []string {
	return append([]string(nil), g.states...)
}

// Edges returns the declared transitions in declaration order.
func (g *Graph) Edges() []EdgeInfo {
	return append([]EdgeInfo(nil), g.edges...)
}

// HasState reports whether s is declared.
func (g *Graph) HasState(s string) bool { return g.known[s] }

// Allows reports whether any declared transition leads from -> to.
func (g *Graph) Allows(from, to string) bool {
	for _, e := range g.edges {
		if e.From == from && e.To == to {
			return true
		}
	}
	return false
}

// Lookup finds the transition called name that starts in from.
func (g *Graph) Lookup(name, from string) (EdgeInfo, bool) {
	i, ok := g.byKey[edgeKey{name: name, from: from}]
	if !ok {
		return EdgeInfo{}, false
	}
	return g.edges[i], true
}

// Require is Lookup returning ErrUnknownEdge for undeclared transitions.
func (g *Graph) Require(name, from string) (EdgeInfo, error) {
	e, ok := g.Lookup(name, from)
	if !ok {
		return EdgeInfo{}, fmt.Errorf("%w: %s from %s on %s", ErrUnknownEdge, name, from, g.name)
	}
	return e, nil
}

// Outgoing returns the transitions leaving from, in declaration order.
func (g *Graph) Outgoing(from string) []EdgeInfo {
	var out []EdgeInfo
	for _, e := range g.edges {
		if e.From == from {
			out = append(out, e)
		}
	}
	return out
}

// Reachable returns the states reachable from the initial state, including
// it, in breadth-first order.
func (g *Graph) Reachable() []string {
	seen := map[string]bool{g.initial: true}
	order := []string{g.initial}
	for i := 0; i < len(order); i++ {
		for _, e := range g.Outgoing(order[i]) {
			if !seen[e.To] {
				seen[e.To] = true
				order = append(order, e.To)
			}
		}
	}
	return order
}

const mermaidFence = "```"

// Mermaid returns a fenced Mermaid stateDiagram-v2 of the graph.
func (g *Graph) Mermaid() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%smermaid\n", mermaidFence)
	b.WriteString("stateDiagram-v2\n")
	fmt.Fprintf(&b, "    [*] --> %s\n", g.initial)
	for _, e := range g.edges {
		fmt.Fprintf(&b, "    %s --> %s : %s\n", e.From, e.To, e.Name)
	}
	fmt.Fprintf(&b, "%s\n", mermaidFence)
	return b.String()
}
