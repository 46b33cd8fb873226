// Package hydrology derives the ocean mask, elevation bands and a river
// network from an elevation grid by dropping water on land and letting each
// drop run downhill.
package hydrology

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"terrafields/internal/core"
	pcore "terrafields/pkg/core"
)

// Input bundles the read-only grids a simulation runs over.
type Input struct {
	Elevation *core.Grid[float64]
	Ocean     *core.Grid[bool]
	// Precipitation is optional. When set, a drop carries the precipitation
	// of its start cell instead of unit volume.
	Precipitation *core.Grid[float64]
}

func (in Input) validate() error {
	if err := core.CheckSize("elevation", in.Elevation, "ocean", in.Ocean); err != nil {
		return err
	}
	if in.Precipitation != nil {
		if err := core.CheckSize("elevation", in.Elevation, "precipitation", in.Precipitation); err != nil {
			return err
		}
	}
	return nil
}

// Stats reports what a simulation call did. Saturated counts drops stopped by
// the step cap; they are not errors.
type Stats struct {
	Drops     int
	Skipped   int
	Saturated int
	Steps     int
	Volume    float64
}

// Add accumulates other into s. Volume is taken from other since it is the
// total held by the latest field.
func (s *Stats) Add(other Stats) {
	s.Drops += other.Drops
	s.Skipped += other.Skipped
	s.Saturated += other.Saturated
	s.Steps += other.Steps
	s.Volume = other.Volume
}

// Engine runs droplet simulations with a fixed configuration.
type Engine struct {
	cfg Config
}

// New returns an Engine for cfg.
func New(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Config returns the engine configuration.
func (e *Engine) Config() Config { return e.cfg }

// Simulate drops n units of water and returns prev plus the deposited volume.
// prev is not modified; a nil prev starts from an empty field. It is the same
// as SimulateRange with first = 0.
func (e *Engine) Simulate(in Input, n int, prev *core.Grid[float64], seed int64) (*core.Grid[float64], Stats, error) {
	return e.SimulateRange(in, 0, n, prev, seed)
}

// SimulateRange simulates drops first .. first+n-1. Drop i always draws from
// its own stream of seed, so splitting a range over several calls yields the
// same field as one call over the whole range.
func (e *Engine) SimulateRange(in Input, first, n int, prev *core.Grid[float64], seed int64) (*core.Grid[float64], Stats, error) {
	if err := in.validate(); err != nil {
		return nil, Stats{}, err
	}
	if prev != nil {
		if err := core.CheckSize("elevation", in.Elevation, "flow", prev); err != nil {
			return nil, Stats{}, err
		}
	}
	if first < 0 || n < 0 {
		return nil, Stats{}, fmt.Errorf("drop range [%d, %d+%d) is negative", first, first, n)
	}

	var flow *core.Grid[float64]
	if prev != nil {
		flow = prev.Clone()
	} else {
		flow = core.NewGrid[float64](in.Elevation.W, in.Elevation.H)
	}

	land := landCells(in.Ocean)
	stats := Stats{Drops: n}
	if len(land) == 0 || n == 0 {
		stats.Skipped = n
		stats.Volume = floats.Sum(flow.Cells())
		return flow, stats, nil
	}

	paths := make([]dropPath, n)
	t := tracer{
		elev:    in.Elevation.Cells(),
		ocean:   in.Ocean.Cells(),
		w:       in.Elevation.W,
		h:       in.Elevation.H,
		rate:    e.cfg.DepositRate,
		maxStep: e.maxSteps(in.Elevation.W, in.Elevation.H),
	}
	var precip []float64
	if in.Precipitation != nil {
		precip = in.Precipitation.Cells()
	}

	workers := e.cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	chunk := (n + workers - 1) / workers
	var g errgroup.Group
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				rng := pcore.NewStream(seed, uint64(first+i))
				start := land[rng.IntN(len(land))]
				volume := 1.0
				if precip != nil {
					volume = precip[start]
				}
				if volume <= 0 {
					paths[i].skipped = true
					continue
				}
				paths[i] = t.trace(start, volume)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, Stats{}, err
	}

	// merge in drop order so the float sums are reproducible
	cells := flow.Cells()
	for _, p := range paths {
		if p.skipped {
			stats.Skipped++
			continue
		}
		if p.saturated {
			stats.Saturated++
		}
		stats.Steps += len(p.deposits) - 1
		for _, d := range p.deposits {
			cells[d.idx] += d.amount
		}
	}
	stats.Volume = floats.Sum(cells)
	return flow, stats, nil
}

// Run executes cfg.Passes passes of cfg.Drops drops starting from prev. Pass k
// covers drops [k*Drops, (k+1)*Drops). ctx is checked between passes only;
// a pass that started always completes. onPass, when non-nil, is called after
// every pass.
func (e *Engine) Run(ctx context.Context, in Input, prev *core.Grid[float64], seed int64, onPass func(pass int, flow *core.Grid[float64], stats Stats)) (*core.Grid[float64], Stats, error) {
	flow := prev
	var total Stats
	for pass := 0; pass < e.cfg.Passes; pass++ {
		if err := ctx.Err(); err != nil {
			return nil, total, fmt.Errorf("hydrology pass %d: %w", pass, err)
		}
		next, stats, err := e.SimulateRange(in, pass*e.cfg.Drops, e.cfg.Drops, flow, seed)
		if err != nil {
			return nil, total, fmt.Errorf("hydrology pass %d: %w", pass, err)
		}
		flow = next
		total.Add(stats)
		if onPass != nil {
			onPass(pass, flow, stats)
		}
	}
	if flow == nil {
		// zero passes still yield a valid field
		next, stats, err := e.SimulateRange(in, 0, 0, nil, seed)
		if err != nil {
			return nil, total, err
		}
		flow = next
		total.Add(stats)
	}
	return flow, total, nil
}

func (e *Engine) maxSteps(w, h int) int {
	if e.cfg.MaxSteps > 0 {
		return e.cfg.MaxSteps
	}
	return 4 * (w + h)
}

func landCells(ocean *core.Grid[bool]) []int {
	var land []int
	for i, o := range ocean.Cells() {
		if !o {
			land = append(land, i)
		}
	}
	return land
}

type deposit struct {
	idx    int
	amount float64
}

type dropPath struct {
	deposits  []deposit
	saturated bool
	skipped   bool
}

type tracer struct {
	elev    []float64
	ocean   []bool
	w, h    int
	rate    float64
	maxStep int
}

// trace walks a drop downhill from start. The drop stops on ocean, on a local
// minimum, or after maxStep moves, leaving its remaining volume where it
// stopped.
func (t tracer) trace(start int, volume float64) dropPath {
	var p dropPath
	cur := start
	remaining := volume
	for steps := 0; ; steps++ {
		if t.ocean[cur] {
			break
		}
		next, ok := t.lowestNeighbor(cur)
		if !ok {
			break
		}
		if steps >= t.maxStep {
			p.saturated = true
			break
		}
		left := remaining * t.rate
		p.deposits = append(p.deposits, deposit{idx: cur, amount: left})
		remaining -= left
		cur = next
	}
	p.deposits = append(p.deposits, deposit{idx: cur, amount: remaining})
	return p
}

// lowestNeighbor returns the 8-connected neighbour with the lowest elevation
// strictly below cur. Ties keep the first in row-major scan order.
func (t tracer) lowestNeighbor(cur int) (int, bool) {
	x, y := cur%t.w, cur/t.w
	best := -1
	bestElev := t.elev[cur]
	for dy := -1; dy <= 1; dy++ {
		ny := y + dy
		if ny < 0 || ny >= t.h {
			continue
		}
		for dx := -1; dx <= 1; dx++ {
			nx := x + dx
			if nx < 0 || nx >= t.w || (dx == 0 && dy == 0) {
				continue
			}
			idx := ny*t.w + nx
			if e := t.elev[idx]; e < bestElev {
				best = idx
				bestElev = e
			}
		}
	}
	return best, best >= 0
}
