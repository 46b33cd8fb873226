package quantile

import (
	"errors"
	"math"
	"testing"

	"terrafields/internal/core"
	pcore "terrafields/pkg/core"
)

func TestQuantileWithinOneOverN(t *testing.T) {
	rng := pcore.NewRNG(7)
	g := core.NewGrid[float64](37, 23)
	mask := core.NewGrid[bool](37, 23)
	for i := range g.Cells() {
		// distinct values so ties cannot inflate the count
		g.Cells()[i] = float64(i) + rng.Float64()*0.5
		mask.Cells()[i] = rng.IntN(4) == 0
	}
	d, err := NewDistribution(g, mask)
	if err != nil {
		t.Fatalf("NewDistribution: %v", err)
	}
	n := float64(d.Len())
	for _, f := range []float64{0.01, 0.1, 0.25, 0.5, 0.65, 0.9, 0.97, 0.99} {
		v, err := d.Quantile(f)
		if err != nil {
			t.Fatalf("Quantile(%v): %v", f, err)
		}
		// rank of v measured over the n-1 gaps between sorted values
		got := float64(d.CountAtOrBelow(v)-1) / (n - 1)
		if math.Abs(got-f) > 1/n+1e-12 {
			t.Fatalf("f=%v: fraction at or below %v is %v, off by more than 1/n", f, v, got)
		}
	}
}

func TestQuantileIgnoresExcludedCells(t *testing.T) {
	g, _ := core.GridFrom(4, 1, []float64{100, 1, 2, 3})
	mask, _ := core.GridFrom(4, 1, []bool{true, false, false, false})
	v, err := Threshold(g, mask, 1)
	if err != nil {
		t.Fatalf("Threshold: %v", err)
	}
	if v != 3 {
		t.Fatalf("excluded value leaked into distribution, max = %v", v)
	}
	v, err = Threshold(g, mask, 0.5)
	if err != nil {
		t.Fatalf("Threshold: %v", err)
	}
	if v != 2 {
		t.Fatalf("median = %v, want 2", v)
	}
}

func TestQuantileEmptyDistribution(t *testing.T) {
	g := core.NewGrid[float64](3, 3)
	mask := core.NewGrid[bool](3, 3)
	mask.Fill(true)
	if _, err := NewDistribution(g, mask); !errors.Is(err, core.ErrEmptyDistribution) {
		t.Fatalf("expected ErrEmptyDistribution, got %v", err)
	}
}

func TestQuantileDimensionMismatch(t *testing.T) {
	g := core.NewGrid[float64](3, 3)
	mask := core.NewGrid[bool](3, 4)
	if _, err := NewDistribution(g, mask); !errors.Is(err, core.ErrInvalidDimensions) {
		t.Fatalf("expected ErrInvalidDimensions, got %v", err)
	}
}

func TestQuantileRejectsBadFraction(t *testing.T) {
	d, err := FromValues([]float64{1, 2, 3})
	if err != nil {
		t.Fatal(err)
	}
	for _, f := range []float64{-0.1, 1.1, math.NaN()} {
		if _, err := d.Quantile(f); !errors.Is(err, core.ErrInvalidFraction) {
			t.Fatalf("Quantile(%v): expected ErrInvalidFraction, got %v", f, err)
		}
	}
}

func TestTopIsComplementQuantile(t *testing.T) {
	values := make([]float64, 101)
	for i := range values {
		values[i] = float64(i)
	}
	d, _ := FromValues(values)
	top, err := d.Top(0.02)
	if err != nil {
		t.Fatal(err)
	}
	if top != 98 {
		t.Fatalf("Top(0.02) = %v, want 98", top)
	}
}

func TestFromValuesDoesNotSortCallerSlice(t *testing.T) {
	values := []float64{3, 1, 2}
	if _, err := FromValues(values); err != nil {
		t.Fatal(err)
	}
	if values[0] != 3 {
		t.Fatal("FromValues reordered the caller's slice")
	}
}
