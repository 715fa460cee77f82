package tsspec

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// ExportName converts "checkNum" to "CheckNum".
func ExportName(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}
	return string(unicode.ToUpper(r)) + name[size:]
}

// UnexportName lowers a leading initialism: "I2CBus" -> "i2cBus",
// "HTTPServer" -> "httpServer", "Lamp" -> "lamp".
func UnexportName(name string) string {
	runes := []rune(name)
	n := 0
	for n < len(runes) && (unicode.IsUpper(runes[n]) || unicode.IsDigit(runes[n])) {
		n++
	}
	if n > 1 && n < len(runes) && unicode.IsLower(runes[n]) {
		n-- // keep the first letter of the next word
	}
	for i := 0; i < n; i++ {
		runes[i] = unicode.ToLower(runes[i])
	}
	return string(runes)
}

// GoName returns the exported method name for a transition or method.
func GoName(name string) string { return ExportName(name) }

// TagName returns the state tag type name for state.
func (s *RawSpec) TagName(state string) string { return s.StatePrefix + state }

// WrapperName returns the per-state wrapper type, e.g. "I2CBusIdle".
func (s *RawSpec) WrapperName(state string) string { return s.Peripheral + state }

// ConstructorName returns "New" + peripheral.
func (s *RawSpec) ConstructorName() string { return "New" + s.Peripheral }

// GraphVar returns the package variable holding the runtime graph.
func (s *RawSpec) GraphVar() string { return UnexportName(s.Peripheral) + "Graph" }

// EdgeTypeName returns the edge tag type of t, e.g. "i2cBusStartFromStop".
func (s *RawSpec) EdgeTypeName(t RawTransition) string {
	return UnexportName(s.Peripheral) + ExportName(t.Name) + "From" + t.From
}

// EffectName returns the helper method on the peripheral running t's body.
func (s *RawSpec) EffectName(t RawTransition) string {
	return UnexportName(t.Name) + "From" + t.From
}

// MethodHelperName returns the helper method on the peripheral running m's body.
func (s *RawSpec) MethodHelperName(m RawMethod) string {
	return UnexportName(m.Name) + "In" + m.State
}

// FileBase converts "I2CBus" to "i2c_bus" for output file names.
func FileBase(name string) string {
	var result strings.Builder
	runes := []rune(UnexportName(name))
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			result.WriteByte('_')
		}
		result.WriteRune(unicode.ToLower(r))
	}
	return result.String()
}
