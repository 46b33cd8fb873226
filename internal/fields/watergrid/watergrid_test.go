package watergrid

import (
	"errors"
	"slices"
	"testing"

	"terrafields/internal/core"
	pcore "terrafields/pkg/core"
)

func coarse(t *testing.T, rows ...string) *core.Grid[State] {
	t.Helper()
	g := core.NewGrid[State](len(rows[0]), len(rows))
	for y, row := range rows {
		for x, c := range row {
			switch c {
			case 'o':
				g.Set(x, y, Ocean)
			case 'r':
				g.Set(x, y, River)
			}
		}
	}
	return g
}

func block(g *core.Grid[State], cx, cy int) [Scale][Scale]State {
	var b [Scale][Scale]State
	for dy := 0; dy < Scale; dy++ {
		for dx := 0; dx < Scale; dx++ {
			b[dy][dx] = g.At(cx*Scale+dx, cy*Scale+dy)
		}
	}
	return b
}

func randomMasks(seed int64, w, h int) (*core.Grid[bool], *core.Grid[bool]) {
	rng := pcore.NewRNG(seed)
	ocean := core.NewGrid[bool](w, h)
	river := core.NewGrid[bool](w, h)
	for i := range ocean.Cells() {
		switch rng.IntN(5) {
		case 0:
			ocean.Cells()[i] = true
		case 1, 2:
			river.Cells()[i] = true
		}
	}
	return ocean, river
}

func TestExpandRiverConnectsTowardsWater(t *testing.T) {
	g := coarse(t,
		"...",
		".rr",
		".o.",
	)
	fine := Expand(g, DefaultConfig())
	if fine.W != 9 || fine.H != 9 {
		t.Fatalf("fine grid %dx%d, want 9x9", fine.W, fine.H)
	}
	want := [Scale][Scale]State{
		{Land, Land, Land},
		{Land, River, River},
		{Land, River, Land},
	}
	if got := block(fine, 1, 1); got != want {
		t.Fatalf("river block = %v, want %v", got, want)
	}
	for _, row := range block(fine, 1, 2) {
		for _, s := range row {
			if s != Ocean {
				t.Fatalf("ocean block holds %v", s)
			}
		}
	}
	if got := block(fine, 0, 0); got != ([Scale][Scale]State{}) {
		t.Fatalf("land block = %v", got)
	}
}

func TestExpandWrapsColumns(t *testing.T) {
	g := coarse(t, "r..r")
	fine := Expand(g, DefaultConfig())
	if fine.At(0, 1) != River {
		t.Fatal("river on column 0 must connect west to the last column")
	}
	if fine.At(fine.W-1, 1) != River {
		t.Fatal("river on the last column must connect east to column 0")
	}
}

func TestLoneRiverCell(t *testing.T) {
	g := coarse(t,
		"...",
		".r.",
		"...",
	)
	fine := Expand(g, DefaultConfig())
	for i, s := range fine.Cells() {
		if s != Land {
			t.Fatalf("lone river produced water at %d", i)
		}
	}
	fine = Expand(g, Config{KeepLoneRiverCells: true})
	want := [Scale][Scale]State{{}, {Land, River, Land}, {}}
	if got := block(fine, 1, 1); got != want {
		t.Fatalf("kept lone river block = %v", got)
	}
}

func TestIsBenign(t *testing.T) {
	const (
		nw = 1 << iota
		n
		ne
		w
		e
		sw
		s
		se
	)
	pattern := func(bits int) [8]bool {
		var p [8]bool
		for i := range p {
			p[i] = bits&(1<<i) != 0
		}
		return p
	}
	benign := []int{0, n, w, e, s, n | nw | se, nw, ne, sw, se, n | w, n | e, s | w, s | e | sw | ne, 0xff}
	for _, bits := range benign {
		if !IsBenign(pattern(bits)) {
			t.Fatalf("pattern %08b should be benign", bits)
		}
	}
	ambiguous := []int{nw | se, ne | sw, n | s, w | e, n | w | e, n | w | e | s, 0xff &^ nw}
	for _, bits := range ambiguous {
		if IsBenign(pattern(bits)) {
			t.Fatalf("pattern %08b should be ambiguous", bits)
		}
	}
}

func TestRepairFillsDiagonalGap(t *testing.T) {
	fine := core.NewGrid[State](5, 5)
	fine.Set(1, 1, River)
	fine.Set(3, 3, River)
	st := Repair(fine)
	if fine.At(2, 2) != River {
		t.Fatal("cell between two diagonal touches stays land")
	}
	if st.Reclassified == 0 {
		t.Fatal("no reclassification reported")
	}
	assertBenign(t, fine)
}

func TestRepairReachesFixpoint(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		ocean, river := randomMasks(seed, 17, 11)
		fine, _, err := Resolve(ocean, river, DefaultConfig())
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		assertBenign(t, fine)
		before := slices.Clone(fine.Cells())
		st := Repair(fine)
		if st.Reclassified != 0 || !slices.Equal(before, fine.Cells()) {
			t.Fatalf("seed %d: second repair changed %d cells", seed, st.Reclassified)
		}
	}
}

func TestRepairOnlyAddsWater(t *testing.T) {
	ocean, river := randomMasks(9, 12, 12)
	c, err := Classify(ocean, river)
	if err != nil {
		t.Fatal(err)
	}
	expanded := Expand(c, DefaultConfig())
	fine := expanded.Clone()
	Repair(fine)
	for i, s := range expanded.Cells() {
		if s != Land && fine.Cells()[i] != s {
			t.Fatalf("cell %d changed from %v to %v", i, s, fine.Cells()[i])
		}
	}
}

func TestOceanStripScenario(t *testing.T) {
	ocean := core.NewGrid[bool](10, 10)
	river := core.NewGrid[bool](10, 10)
	for y := 0; y < 10; y++ {
		ocean.Set(0, y, true)
		ocean.Set(1, y, true)
	}
	fine, _, err := Resolve(ocean, river, DefaultConfig())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if fine.W != 30 || fine.H != 30 {
		t.Fatalf("fine grid %dx%d, want 30x30", fine.W, fine.H)
	}
	for y := 0; y < fine.H; y++ {
		for x := 0; x < fine.W; x++ {
			got := fine.At(x, y)
			if x < 6 && got != Ocean {
				t.Fatalf("(%d,%d) = %v, want ocean", x, y, got)
			}
			if x >= 6 && got != Land {
				t.Fatalf("(%d,%d) = %v, want land", x, y, got)
			}
		}
	}
	assertNoIsolatedWater(t, fine)
}

func TestRiversNeverIsolated(t *testing.T) {
	for seed := int64(10); seed < 14; seed++ {
		ocean, river := randomMasks(seed, 20, 14)
		fine, _, err := Resolve(ocean, river, DefaultConfig())
		if err != nil {
			t.Fatal(err)
		}
		assertNoIsolatedWater(t, fine)
	}
}

func TestClassifyRejectsMismatch(t *testing.T) {
	_, err := Classify(core.NewGrid[bool](3, 3), core.NewGrid[bool](3, 2))
	if !errors.Is(err, core.ErrInvalidDimensions) {
		t.Fatalf("expected ErrInvalidDimensions, got %v", err)
	}
	if _, _, err := Resolve(core.NewGrid[bool](3, 3), core.NewGrid[bool](2, 3), DefaultConfig()); !errors.Is(err, core.ErrInvalidDimensions) {
		t.Fatalf("Resolve: expected ErrInvalidDimensions, got %v", err)
	}
}

func TestClassifyOceanWins(t *testing.T) {
	ocean, _ := core.GridFrom(3, 1, []bool{true, false, false})
	river, _ := core.GridFrom(3, 1, []bool{true, true, false})
	g, err := Classify(ocean, river)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(g.Cells(), []State{Ocean, River, Land}) {
		t.Fatalf("Classify = %v", g.Cells())
	}
}

func assertBenign(t *testing.T, g *core.Grid[State]) {
	t.Helper()
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			if g.At(x, y) == Land && !IsBenign(Pattern(g, x, y)) {
				t.Fatalf("land cell (%d,%d) has ambiguous pattern %v", x, y, Pattern(g, x, y))
			}
		}
	}
}

func assertNoIsolatedWater(t *testing.T, g *core.Grid[State]) {
	t.Helper()
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			if !g.At(x, y).Water() {
				continue
			}
			p := Pattern(g, x, y)
			if !slices.Contains(p[:], true) {
				t.Fatalf("isolated %v pixel at (%d,%d)", g.At(x, y), x, y)
			}
		}
	}
}
