package wind

import (
	"errors"
	"math"
	"slices"
	"testing"

	"terrafields/internal/core"
)

func TestBandBoundaries(t *testing.T) {
	const h = 100
	if got := RowAngle(0, h); got != South {
		t.Fatalf("north pole = %v, want south (%v)", got, South)
	}
	if got := RowAngle(h/2, h); got != West {
		t.Fatalf("equator = %v, want west (%v)", got, West)
	}
	if got := RowAngle(16, h); math.Abs(got-North) > 1e-12 {
		t.Fatalf("north polar circle = %v, want north", got)
	}
	if got := RowAngle(34, h); math.Abs(got-East) > 1e-12 {
		t.Fatalf("north tropic = %v, want east", got)
	}
	if got := BandAngle(1); got != 1 {
		t.Fatalf("south pole anchor = %v, want one full turn", got)
	}
}

func TestBandInterpolatesWithinBand(t *testing.T) {
	// halfway between the south polar circle (south) and the pole (north+1)
	got := BandAngle(0.92)
	if math.Abs(got-0.75) > 1e-9 {
		t.Fatalf("BandAngle(0.92) = %v, want 0.75", got)
	}
	// the first band runs backwards from south to north
	if got := BandAngle(0.08); math.Abs(got-0.25) > 1e-9 {
		t.Fatalf("BandAngle(0.08) = %v, want 0.25", got)
	}
}

func TestGenerateRangeAndDeterminism(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Amplitude = 0.6
	a, err := Generate(64, 40, 42, cfg)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for i, v := range a.Cells() {
		if v < 0 || v >= 1 || math.IsNaN(v) {
			t.Fatalf("cell %d = %v, outside [0,1)", i, v)
		}
	}
	b, err := Generate(64, 40, 42, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(a.Cells(), b.Cells()) {
		t.Fatal("same seed produced different fields")
	}
	c, err := Generate(64, 40, 43, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if slices.Equal(a.Cells(), c.Cells()) {
		t.Fatal("different seeds produced identical fields")
	}
}

func TestGenerateZeroAmplitudeIsBands(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Amplitude = 0
	f, err := Generate(8, 50, 1, cfg)
	if err != nil {
		t.Fatal(err)
	}
	for y := 0; y < f.H; y++ {
		want := wrapTurn(RowAngle(y, f.H))
		for x := 0; x < f.W; x++ {
			if got := f.At(x, y); got != want {
				t.Fatalf("(%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestSeamContinuity(t *testing.T) {
	const w, h = 48, 32
	n := newNoiseField(w, h, 7, DefaultConfig())
	for y := 0; y < h; y++ {
		if d := math.Abs(n.at(0, y) - n.raw(w, y)); d > 1e-12 {
			t.Fatalf("row %d: column 0 differs from wrapped column %d by %v", y, w, d)
		}
		// past the blend border the raw sample is used unchanged
		if n.at(w/4, y) != n.raw(w/4, y) {
			t.Fatalf("row %d: blend leaked past the border", y)
		}
	}
}

func TestWorkerCountDoesNotChangeField(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Workers = 1
	a, _ := Generate(30, 20, 5, cfg)
	cfg.Workers = 6
	b, _ := Generate(30, 20, 5, cfg)
	if !slices.Equal(a.Cells(), b.Cells()) {
		t.Fatal("field depends on worker count")
	}
}

func TestGenerateRejectsEmptyMap(t *testing.T) {
	if _, err := Generate(0, 10, 1, DefaultConfig()); !errors.Is(err, core.ErrInvalidDimensions) {
		t.Fatalf("expected ErrInvalidDimensions, got %v", err)
	}
}

func TestWrapTurn(t *testing.T) {
	cases := map[float64]float64{1: 0, 1.25: 0.25, -0.25: 0.75, -1e-18: 0}
	for in, want := range cases {
		if got := wrapTurn(in); got != want {
			t.Fatalf("wrapTurn(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestVectorPointsNorthUp(t *testing.T) {
	dx, dy := Vector(North)
	if math.Abs(dx) > 1e-12 || math.Abs(dy+1) > 1e-12 {
		t.Fatalf("north = (%v,%v), want (0,-1)", dx, dy)
	}
	dx, dy = Vector(East)
	if math.Abs(dx-1) > 1e-12 || math.Abs(dy) > 1e-12 {
		t.Fatalf("east = (%v,%v), want (1,0)", dx, dy)
	}
}

func TestConfigApply(t *testing.T) {
	c := FromMap(map[string]string{"wind_octaves": "3", "wind_amplitude": "-1", "wind_density": "4"})
	if c.Octaves != 3 || c.Density != 4 {
		t.Fatalf("overrides not applied: %+v", c)
	}
	if c.Amplitude != DefaultConfig().Amplitude {
		t.Fatalf("negative amplitude accepted: %v", c.Amplitude)
	}
}
