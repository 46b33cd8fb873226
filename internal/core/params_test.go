package core

import (
	"strings"
	"testing"
)

func TestParameterSnapshotLookupAndLines(t *testing.T) {
	snap := ParameterSnapshot{Groups: []ParameterGroup{
		{Name: "World", Params: []Parameter{{Key: "w", Value: "64"}, {Key: "seed", Value: "7"}}},
		{Name: "Hydrology", Params: []Parameter{{Key: "drops", Value: "2000"}}},
	}}
	p, ok := snap.Lookup("drops")
	if !ok || p.Value != "2000" {
		t.Fatalf("Lookup(drops) = %+v, %v", p, ok)
	}
	if _, ok := snap.Lookup("missing"); ok {
		t.Fatal("Lookup should miss unknown keys")
	}
	out := snap.String()
	if !strings.Contains(out, "[Hydrology]") || !strings.Contains(out, "seed = 7") {
		t.Fatalf("unexpected rendering:\n%s", out)
	}
}

func TestParameterControlClamp(t *testing.T) {
	c := ParameterControl{Min: 0, Max: 1, HasMin: true, HasMax: true}
	if got := c.Clamp(1.5); got != 1 {
		t.Fatalf("Clamp(1.5) = %f", got)
	}
	if got := c.Clamp(-2); got != 0 {
		t.Fatalf("Clamp(-2) = %f", got)
	}
	open := ParameterControl{}
	if got := open.Clamp(42); got != 42 {
		t.Fatalf("unbounded Clamp changed value: %f", got)
	}
}
