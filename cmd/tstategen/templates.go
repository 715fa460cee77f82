package main

import (
	"fmt"
	"strings"
	"text/template"
)

// funcMap provides helper functions available to all templates.
var funcMap = template.FuncMap{
	"params":  joinParams,
	"args":    joinArgs,
	"comment": comment,
	"quote":   func(s string) string { return fmt.Sprintf("%q", s) },
}

// templates holds all parsed code generation templates.
var templates = template.Must(template.New("").Funcs(funcMap).Parse(
	headerTmpl +
		peripheralTmpl +
		statesTmpl +
		constructorTmpl +
		transitionsTmpl +
		methodsTmpl,
))

// renderTemplate executes a named template into the builder.
func renderTemplate(b *strings.Builder, name string, data any) {
	if err := templates.ExecuteTemplate(b, name, data); err != nil {
		panic(fmt.Sprintf("template %s: %v", name, err))
	}
}

// --- Template definitions ---

const headerTmpl = `{{define "header" -}}
// Code generated by tstategen{{if .Source}} from {{.Source}}{{end}}. DO NOT EDIT.

package {{.Package}}

import "{{.TypestateImport}}"
{{end}}`

const peripheralTmpl = `{{define "peripheral"}}
{{if .Description -}}
{{comment .Description}}
{{- else -}}
// {{.Peripheral}} is the peripheral value carried by the typestate API.
{{- end}}
type {{.Peripheral}} struct {
{{- range .Fields}}
{{.Name}} {{.Type}}
{{- end}}
}

// Graph returns the declared transition graph of {{.Peripheral}}.
func (*{{.Peripheral}}) Graph() *typestate.Graph { return {{.GraphVar}} }

var {{.GraphVar}} = typestate.NewBuilder({{quote .Peripheral}}).
States({{range $i, $s := .States}}{{if $i}}, {{end}}{{quote $s.Name}}{{end}}).
Initial({{quote .Initial.Name}}).
{{- range .Edges}}
Edge({{quote .Name}}, {{quote .From}}, {{quote .To}}).
{{- end}}
MustBuild()
{{end}}`

const statesTmpl = `{{define "states"}}
{{- $p := .Peripheral}}
{{- range .States}}
// {{.Tag}} is the {{$p}} state tag for {{.Name}}.
type {{.Tag}} struct{}

// StateName returns {{quote .Name}}.
func ({{.Tag}}) StateName() string { return {{quote .Name}} }

// String returns {{quote .Name}}.
func ({{.Tag}}) String() string { return {{quote .Name}} }

// CarriedBy declares that {{$p}} may be wrapped in {{.Tag}}.
func ({{.Tag}}) CarriedBy(*{{$p}}) {}
{{if .Initial}}
// InitialOf declares {{.Tag}} as the initial state of {{$p}}.
func ({{.Tag}}) InitialOf(*{{$p}}) {}
{{end}}
// {{.Wrapper}} is a {{$p}} statically known to be in state {{.Name}}.
type {{.Wrapper}} struct {
typestate.Wrapper[{{$p}}, {{.Tag}}]
}

// With gives fn mutable access to the peripheral without changing state.
func (w {{.Wrapper}}) With(fn func(*{{$p}})) {{.Wrapper}} {
return {{.Wrapper}}{w.Wrapper.With(fn)}
}

// Clone returns an independent copy of the peripheral in state {{.Name}}.
func (w {{.Wrapper}}) Clone() {{.Wrapper}} {
return {{.Wrapper}}{w.Wrapper.Clone()}
}
{{end}}
{{- end}}`

const constructorTmpl = `{{define "constructor"}}
// {{.Constructor}} returns a {{.Peripheral}} in its initial state {{.Initial.Name}}.
func {{.Constructor}}({{params .Fields}}{{if .Fields}}, {{end}}opts ...typestate.Option) {{.Initial.Wrapper}} {
return {{.Initial.Wrapper}}{typestate.New[{{.Initial.Tag}}]({{.Peripheral}}{ {{- range $i, $f := .Fields}}{{if $i}}, {{end}}{{$f.Name}}: {{$f.Name}}{{end -}} }, opts...)}
}
{{end}}`

const transitionsTmpl = `{{define "transitions"}}
{{- $p := .Peripheral}}
{{- range .Transitions}}
type {{.EdgeType}} struct{}

func ({{.EdgeType}}) Allow(*{{$p}}, {{.From.Tag}}, {{.To.Tag}}) {}

func ({{.EdgeType}}) EdgeName() string { return {{quote .Name}} }
{{if .Effect}}
func (p *{{$p}}) {{.Effect}}({{params .Params}}) {
{{.Body}}
}
{{end}}
// {{.GoName}} moves {{$p}} from {{.From.Name}} to {{.To.Name}}.
{{- if .Description}}
{{comment .Description}}
{{- end}}
// cb, if not nil, runs once with the new value after the transition.
func (w {{.From.Wrapper}}) {{.GoName}}({{params .Params}}{{if .Params}}, {{end}}cb func(*{{.To.Wrapper}})) {{.To.Wrapper}} {
{{- if .Effect}}
w.Peripheral().{{.Effect}}({{args .Params}})
{{- end}}
next := {{.To.Wrapper}}{typestate.Transition[{{.EdgeType}}, {{.To.Tag}}](w.Wrapper)}
return typestate.Invoke(next, cb)
}
{{end}}
{{- end}}`

const methodsTmpl = `{{define "methods"}}
{{- $p := .Peripheral}}
{{- range .Methods}}
// {{.GoName}} is only available while {{$p}} is in state {{.State.Name}}.
{{- if .Description}}
{{comment .Description}}
{{- end}}
func (w {{.State.Wrapper}}) {{.GoName}}({{params .Params}}) {{.Returns}} {
{{if .Returns}}return {{end}}w.Peripheral().{{.Helper}}({{args .Params}})
}

func (p *{{$p}}) {{.Helper}}({{params .Params}}) {{.Returns}} {
{{.Body}}
}
{{end}}
{{- end}}`
