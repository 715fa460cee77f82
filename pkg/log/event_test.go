package log

import "testing"

func TestLayerString(t *testing.T) {
	tests := []struct {
		layer Layer
		want  string
	}{
		{LayerTypestate, "TYPESTATE"},
		{LayerRegistry, "REGISTRY"},
		{Layer(99), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.layer.String(); got != tt.want {
			t.Errorf("Layer(%d).String() = %q, want %q", tt.layer, got, tt.want)
		}
	}
}

func TestCategoryString(t *testing.T) {
	tests := []struct {
		cat  Category
		want string
	}{
		{CategoryState, "STATE"},
		{CategoryHook, "HOOK"},
		{CategoryInterrupt, "INTERRUPT"},
		{CategoryError, "ERROR"},
		{Category(99), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.cat.String(); got != tt.want {
			t.Errorf("Category(%d).String() = %q, want %q", tt.cat, got, tt.want)
		}
	}
}

func TestHookActionString(t *testing.T) {
	if got := HookRegistered.String(); got != "REGISTERED" {
		t.Errorf("HookRegistered.String() = %q", got)
	}
	if got := HookRan.String(); got != "RAN" {
		t.Errorf("HookRan.String() = %q", got)
	}
	if got := HookAction(7).String(); got != "UNKNOWN" {
		t.Errorf("HookAction(7).String() = %q", got)
	}
}

func TestParseLayer(t *testing.T) {
	if l, ok := ParseLayer("registry"); !ok || l != LayerRegistry {
		t.Errorf("ParseLayer(registry) = %v, %v", l, ok)
	}
	if l, ok := ParseLayer("TYPESTATE"); !ok || l != LayerTypestate {
		t.Errorf("ParseLayer(TYPESTATE) = %v, %v", l, ok)
	}
	if _, ok := ParseLayer("wire"); ok {
		t.Error("ParseLayer(wire) should fail")
	}
}

func TestParseCategory(t *testing.T) {
	for _, c := range []Category{CategoryState, CategoryHook, CategoryInterrupt, CategoryError} {
		got, ok := ParseCategory(c.String())
		if !ok || got != c {
			t.Errorf("ParseCategory(%q) = %v, %v", c.String(), got, ok)
		}
	}
	if _, ok := ParseCategory("message"); ok {
		t.Error("ParseCategory(message) should fail")
	}
}

// Values are part of the file format.
func TestEnumValues(t *testing.T) {
	if LayerTypestate != 0 || LayerRegistry != 1 {
		t.Error("Layer values changed")
	}
	if CategoryState != 0 || CategoryHook != 1 || CategoryInterrupt != 2 || CategoryError != 3 {
		t.Error("Category values changed")
	}
	if HookRegistered != 0 || HookRan != 1 {
		t.Error("HookAction values changed")
	}
}
