// Package watergrid turns the coarse ocean/river/land classification into a
// grid three times finer that has no ambiguous water shapes.
//
// Every coarse cell becomes a 3x3 block. Rivers draw a channel from the block
// centre towards each orthogonal neighbour that holds water. A repair pass
// then turns land pixels surrounded by an unrecognised water pattern into
// river, revisiting neighbours until nothing changes. Columns wrap around;
// rows above the top and below the bottom count as land.
package watergrid

import (
	"fmt"
	"runtime"
	"strconv"

	"golang.org/x/sync/errgroup"

	"terrafields/internal/core"
)

// Scale is the number of fine cells per coarse cell along each axis.
const Scale = 3

// State classifies one cell.
type State uint8

const (
	Land State = iota
	Ocean
	River
)

func (s State) String() string {
	switch s {
	case Land:
		return "land"
	case Ocean:
		return "ocean"
	case River:
		return "river"
	default:
		return "state(" + strconv.Itoa(int(s)) + ")"
	}
}

// Water reports whether s is ocean or river.
func (s State) Water() bool { return s != Land }

// Config tunes the resolver.
type Config struct {
	// KeepLoneRiverCells keeps a river cell without any orthogonal water
	// neighbour as a single water pixel. By default it becomes land.
	KeepLoneRiverCells bool
	// Workers bounds parallel expansion; 0 means GOMAXPROCS.
	Workers int
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config { return Config{} }

// FromMap returns DefaultConfig with overrides from a flag-style string map.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	c.Apply(cfg)
	return c
}

// Apply parses recognised keys from cfg into c, ignoring invalid values.
func (c *Config) Apply(cfg map[string]string) {
	if v, ok := cfg["keep_lone_river_cells"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.KeepLoneRiverCells = parsed
		}
	}
}

// Stats reports the work done by Repair.
type Stats struct {
	Visits       int
	Reclassified int
}

// Classify merges the ocean and river masks. Ocean wins where both are set.
func Classify(ocean, river *core.Grid[bool]) (*core.Grid[State], error) {
	if err := core.CheckSize("ocean", ocean, "river", river); err != nil {
		return nil, err
	}
	g := core.NewGrid[State](ocean.W, ocean.H)
	out := g.Cells()
	rv := river.Cells()
	for i, o := range ocean.Cells() {
		switch {
		case o:
			out[i] = Ocean
		case rv[i]:
			out[i] = River
		}
	}
	return g, nil
}

// water reports whether (x, y) holds water, wrapping x and treating rows
// outside the grid as land.
func water(g *core.Grid[State], x, y int) bool {
	if y < 0 || y >= g.H {
		return false
	}
	return g.At(g.WrapX(x), y).Water()
}

// Expand maps every coarse cell to its 3x3 block. It does not modify coarse.
func Expand(coarse *core.Grid[State], cfg Config) *core.Grid[State] {
	fine := core.NewGrid[State](coarse.W*Scale, coarse.H*Scale)
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	var g errgroup.Group
	g.SetLimit(workers)
	for y := 0; y < coarse.H; y++ {
		g.Go(func() error {
			for x := 0; x < coarse.W; x++ {
				block := expandCell(coarse, x, y, cfg.KeepLoneRiverCells)
				for dy := 0; dy < Scale; dy++ {
					for dx := 0; dx < Scale; dx++ {
						fine.Set(x*Scale+dx, y*Scale+dy, block[dy][dx])
					}
				}
			}
			return nil
		})
	}
	// rows write disjoint blocks and expandCell cannot fail
	_ = g.Wait()
	return fine
}

func expandCell(coarse *core.Grid[State], x, y int, keepLone bool) [Scale][Scale]State {
	var b [Scale][Scale]State
	switch coarse.At(x, y) {
	case Ocean:
		for dy := range b {
			for dx := range b[dy] {
				b[dy][dx] = Ocean
			}
		}
	case River:
		n := water(coarse, x, y-1)
		w := water(coarse, x-1, y)
		e := water(coarse, x+1, y)
		s := water(coarse, x, y+1)
		if !n && !w && !e && !s && !keepLone {
			return b
		}
		b[1][1] = River
		if n {
			b[0][1] = River
		}
		if w {
			b[1][0] = River
		}
		if e {
			b[1][2] = River
		}
		if s {
			b[2][1] = River
		}
	}
	return b
}

// Neighbor offsets in the order NW, N, NE, W, E, SW, S, SE.
var around = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// Pattern returns which of the eight neighbours of (x, y) hold water, in
// the order NW, N, NE, W, E, SW, S, SE.
func Pattern(g *core.Grid[State], x, y int) [8]bool {
	var p [8]bool
	for i, d := range around {
		p[i] = water(g, x+d[0], y+d[1])
	}
	return p
}

// IsBenign reports whether a land cell with neighbour pattern p may stay
// land: no water at all, water on exactly one orthogonal side, a single
// diagonal touch and nothing else, an L of two adjacent orthogonal sides, or
// water all around. Diagonals are ignored in the one-side and L cases.
func IsBenign(p [8]bool) bool {
	n, w, e, s := p[1], p[3], p[4], p[6]
	orth, diag := 0, 0
	for i, v := range p {
		if !v {
			continue
		}
		if i == 1 || i == 3 || i == 4 || i == 6 {
			orth++
		} else {
			diag++
		}
	}
	switch {
	case orth == 0 && diag <= 1:
		return true
	case orth == 1:
		return true
	case orth == 2:
		return (n || s) && (w || e)
	case orth == 4 && diag == 4:
		return true
	}
	return false
}

// Repair turns land cells with a non-benign neighbour pattern into river
// until every land cell is benign. It works in place with an explicit queue;
// a cell is queued at most once at a time.
func Repair(fine *core.Grid[State]) Stats {
	var st Stats
	cells := fine.Cells()
	pending := make([]bool, len(cells))
	queue := make([]int, len(cells))
	for i := range queue {
		queue[i] = i
		pending[i] = true
	}
	for head := 0; head < len(queue); head++ {
		idx := queue[head]
		pending[idx] = false
		st.Visits++
		if cells[idx] != Land {
			continue
		}
		x, y := fine.Coords(idx)
		if IsBenign(Pattern(fine, x, y)) {
			continue
		}
		cells[idx] = River
		st.Reclassified++
		for _, d := range around {
			ny := y + d[1]
			if ny < 0 || ny >= fine.H {
				continue
			}
			n := fine.Index(fine.WrapX(x+d[0]), ny)
			if !pending[n] {
				pending[n] = true
				queue = append(queue, n)
			}
		}
		// drop the consumed prefix once it dominates the slice
		if head > 1024 && head > len(queue)/2 {
			queue = append(queue[:0], queue[head+1:]...)
			head = -1
		}
	}
	return st
}

// Resolve classifies the coarse masks, expands them and repairs the result.
func Resolve(ocean, river *core.Grid[bool], cfg Config) (*core.Grid[State], Stats, error) {
	coarse, err := Classify(ocean, river)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("water grid: %w", err)
	}
	fine := Expand(coarse, cfg)
	st := Repair(fine)
	return fine, st, nil
}
