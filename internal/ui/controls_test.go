package ui

import (
	"slices"
	"testing"

	"terrafields/internal/core"
)

func TestStepValueInt(t *testing.T) {
	ctrl := core.ParameterControl{Key: "drops", Type: core.ParamTypeInt, Step: 1000, Min: 0, HasMin: true, Max: 5000, HasMax: true}
	if v, ok := stepValue(ctrl, 2000, 1); !ok || v != 3000 {
		t.Fatalf("step up = %v, %v", v, ok)
	}
	if v, ok := stepValue(ctrl, 4500, 1); !ok || v != 5000 {
		t.Fatalf("clamped step = %v, %v", v, ok)
	}
	if _, ok := stepValue(ctrl, 0, -1); ok {
		t.Fatal("step below min reported a change")
	}
	ctrl.Step = 0
	if v, _ := stepValue(ctrl, 7, -1); v != 6 {
		t.Fatalf("default int step = %v, want 6", v)
	}
}

func TestStepValueFloat(t *testing.T) {
	ctrl := core.ParameterControl{Type: core.ParamTypeFloat, Step: 0.01, Min: 0, HasMin: true, Max: 1, HasMax: true}
	v, ok := stepValue(ctrl, 0.05, -1)
	if !ok || v < 0.0399 || v > 0.0401 {
		t.Fatalf("step down = %v, %v", v, ok)
	}
	if _, ok := stepValue(ctrl, 1, 1); ok {
		t.Fatal("step above max reported a change")
	}
	if _, ok := stepValue(core.ParameterControl{Type: core.ParamTypeBool}, 0, 1); ok {
		t.Fatal("bool control stepped")
	}
}

func TestParseAndFormat(t *testing.T) {
	intCtrl := core.ParameterControl{Type: core.ParamTypeInt}
	if v, ok := parseValue(intCtrl, "42"); !ok || v != 42 {
		t.Fatalf("parse int = %v, %v", v, ok)
	}
	if _, ok := parseValue(intCtrl, "4.2"); ok {
		t.Fatal("fractional int accepted")
	}
	floatCtrl := core.ParameterControl{Type: core.ParamTypeFloat, Step: 0.005}
	if got := formatValue(floatCtrl, 0.125); got != "0.125" {
		t.Fatalf("format = %q", got)
	}
	if got := formatValue(intCtrl, 3); got != "3" {
		t.Fatalf("format int = %q", got)
	}
}

func TestStatusLines(t *testing.T) {
	snap := core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{Name: "World", Params: []core.Parameter{{Key: "w", Label: "Width", Value: "8"}}},
		{Name: "Status", Params: []core.Parameter{{Key: "passes_run", Label: "Passes run", Value: "3"}}},
	}}
	if got := statusLines(snap); !slices.Equal(got, []string{"Passes run: 3"}) {
		t.Fatalf("statusLines = %v", got)
	}
	if got := buildTitle("terrain"); got != "Terrain controls" {
		t.Fatalf("title = %q", got)
	}
}
