package main

import (
	"fmt"
	"strings"

	"github.com/mash-protocol/typestate-go/pkg/tsspec"
)

// DefaultTypestateImport is the import path of the runtime package that
// generated code builds on.
const DefaultTypestateImport = "github.com/mash-protocol/typestate-go/pkg/typestate"

// GenerateOptions controls code generation.
type GenerateOptions struct {
	Source          string // spec file name recorded in the header
	TypestateImport string
}

// Generate expands a validated specification into Go source. The result is
// not formatted; callers pass it through writeFormatted.
func Generate(spec *tsspec.RawSpec, opts GenerateOptions) (string, error) {
	if err := spec.Validate(); err != nil {
		return "", err
	}
	if opts.TypestateImport == "" {
		opts.TypestateImport = DefaultTypestateImport
	}

	data := buildFileData(spec, opts)

	var b strings.Builder
	renderTemplate(&b, "header", data)
	renderTemplate(&b, "peripheral", data)
	renderTemplate(&b, "states", data)
	renderTemplate(&b, "constructor", data)
	renderTemplate(&b, "transitions", data)
	renderTemplate(&b, "methods", data)
	return b.String(), nil
}

// GenerateDiagram returns a Markdown document holding a Mermaid diagram of
// the specification's transition graph.
func GenerateDiagram(spec *tsspec.RawSpec) (string, error) {
	g, err := spec.Graph()
	if err != nil {
		return "", err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", spec.Peripheral)
	if spec.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", strings.TrimSpace(spec.Description))
	}
	b.WriteString(g.Mermaid())

	if len(spec.Methods) > 0 {
		b.WriteString("\n| State | Method |\n|---|---|\n")
		for _, m := range spec.Methods {
			fmt.Fprintf(&b, "| %s | %s |\n", m.State, methodSignature(m))
		}
	}
	return b.String(), nil
}

func methodSignature(m tsspec.RawMethod) string {
	sig := fmt.Sprintf("`%s(%s)", tsspec.GoName(m.Name), joinParams(m.Params))
	if m.Returns != "" {
		sig += " " + m.Returns
	}
	return sig + "`"
}

// --- Template data ---

type fileData struct {
	Source          string
	Package         string
	TypestateImport string
	Peripheral      string
	Description     string
	GraphVar        string
	Constructor     string
	Fields          []tsspec.RawParam
	States          []stateData
	Initial         stateData
	Edges           []tsspec.RawTransition
	Transitions     []transitionData
	Methods         []methodData
}

type stateData struct {
	Name    string
	Tag     string
	Wrapper string
	Initial bool
}

type transitionData struct {
	Name        string
	GoName      string
	From        stateData
	To          stateData
	EdgeType    string
	Effect      string
	Params      []tsspec.RawParam
	Body        string
	Description string
}

type methodData struct {
	State       stateData
	GoName      string
	Helper      string
	Params      []tsspec.RawParam
	Returns     string
	Body        string
	Description string
}

func buildFileData(spec *tsspec.RawSpec, opts GenerateOptions) fileData {
	states := make(map[string]stateData, len(spec.States))
	d := fileData{
		Source:          opts.Source,
		Package:         spec.Package,
		TypestateImport: opts.TypestateImport,
		Peripheral:      spec.Peripheral,
		Description:     strings.TrimSpace(spec.Description),
		GraphVar:        spec.GraphVar(),
		Constructor:     spec.ConstructorName(),
		Fields:          spec.Fields,
		Edges:           spec.Transitions,
	}

	for _, name := range spec.States {
		sd := stateData{
			Name:    name,
			Tag:     spec.TagName(name),
			Wrapper: spec.WrapperName(name),
			Initial: name == spec.Initial,
		}
		states[name] = sd
		d.States = append(d.States, sd)
		if sd.Initial {
			d.Initial = sd
		}
	}

	// Transitions and methods are grouped by owning state so each per-state
	// wrapper's API reads as one block in the generated file.
	for _, name := range spec.States {
		for _, t := range spec.TransitionsFrom(name) {
			td := transitionData{
				Name:        t.Name,
				GoName:      tsspec.GoName(t.Name),
				From:        states[t.From],
				To:          states[t.To],
				EdgeType:    spec.EdgeTypeName(t),
				Params:      t.Params,
				Body:        strings.TrimRight(t.Body, "\n"),
				Description: strings.TrimSpace(t.Description),
			}
			if td.Body != "" {
				td.Effect = spec.EffectName(t)
			}
			d.Transitions = append(d.Transitions, td)
		}
		for _, m := range spec.MethodsIn(name) {
			d.Methods = append(d.Methods, methodData{
				State:       states[m.State],
				GoName:      tsspec.GoName(m.Name),
				Helper:      spec.MethodHelperName(m),
				Params:      m.Params,
				Returns:     m.Returns,
				Body:        strings.TrimRight(m.Body, "\n"),
				Description: strings.TrimSpace(m.Description),
			})
		}
	}
	return d
}

// joinParams renders "a int, b string".
func joinParams(params []tsspec.RawParam) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.Name + " " + p.Type
	}
	return strings.Join(parts, ", ")
}

// joinArgs renders "a, b".
func joinArgs(params []tsspec.RawParam) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.Name
	}
	return strings.Join(parts, ", ")
}

// comment renders text as // lines.
func comment(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight("// "+strings.TrimSpace(l), " ")
	}
	return strings.Join(lines, "\n")
}
