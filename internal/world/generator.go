// Package world runs the terrain field pipeline over an elevation grid and
// holds the resulting layers.
package world

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"terrafields/internal/core"
	"terrafields/internal/fields/hydrology"
	"terrafields/internal/fields/quantile"
	"terrafields/internal/fields/watergrid"
	"terrafields/internal/fields/wind"
	pcore "terrafields/pkg/core"
)

// Sub-seed slots derived from the world seed. New slots go at the end so
// existing stages keep their seeds.
const (
	seedHydrology = iota
	seedWind
	seedRelief
	seedCount
)

// Seeds holds the per-stage seeds of a world.
type Seeds struct {
	Hydrology int64
	Wind      int64
	Relief    int64
}

// DeriveSeeds splits a world seed into independent stage seeds.
func DeriveSeeds(seed int64) Seeds {
	s := pcore.NewRNG(seed).SubSeeds(seedCount)
	return Seeds{Hydrology: s[seedHydrology], Wind: s[seedWind], Relief: s[seedRelief]}
}

// World is the aggregate of every derived layer for one elevation grid and
// seed.
type World struct {
	Seed  int64
	Seeds Seeds

	Elevation      *core.Grid[float64]
	SeaLevel       float64
	Ocean          *core.Grid[bool]
	ElevationBands quantile.ThresholdTable

	Flow           *core.Grid[float64]
	RiverThreshold float64
	Rivers         *core.Grid[bool]
	RiverBands     quantile.ThresholdTable

	Wind  *core.Grid[float64]
	Water *core.Grid[watergrid.State]

	Passes       int
	Hydrology    hydrology.Stats
	Reclassified int
}

// Size reports the coarse grid dimensions.
func (w *World) Size() core.Size { return w.Elevation.Size() }

// Generator runs the pipeline with a fixed configuration.
type Generator struct {
	cfg   Config
	log   *slog.Logger
	hydro *hydrology.Engine
}

// NewGenerator returns a Generator. A nil logger discards output.
func NewGenerator(cfg Config, log *slog.Logger) *Generator {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Generator{cfg: cfg, log: log, hydro: hydrology.New(cfg.Hydrology)}
}

// Config returns the generator configuration.
func (g *Generator) Config() Config { return g.cfg }

// Generate derives every layer from elevation using the configured seed.
func (g *Generator) Generate(ctx context.Context, elevation *core.Grid[float64]) (*World, error) {
	return g.GenerateSeed(ctx, elevation, g.cfg.Seed)
}

// GenerateSeed is Generate with an explicit world seed.
func (g *Generator) GenerateSeed(ctx context.Context, elevation *core.Grid[float64], seed int64) (*World, error) {
	if elevation == nil {
		return nil, errors.New("generate world: no elevation grid")
	}
	w := &World{Seed: seed, Seeds: DeriveSeeds(seed), Elevation: elevation}

	ocean, level, err := hydrology.Ocean(elevation, g.cfg.Hydrology)
	if err != nil {
		return nil, fmt.Errorf("generate world: %w", err)
	}
	w.Ocean, w.SeaLevel = ocean, level
	// bands are land-relative even when flooding keeps inland basins dry
	below := hydrology.OceanMask(elevation, level)
	w.ElevationBands, err = hydrology.ElevationThresholds(elevation, below, level, g.cfg.Hydrology)
	if err != nil {
		return nil, fmt.Errorf("generate world: %w", err)
	}
	g.log.Debug("ocean derived", "sea_level", level)

	in := w.hydrologyInput()
	flow, stats, err := g.hydro.Run(ctx, in, nil, w.Seeds.Hydrology, func(pass int, _ *core.Grid[float64], st hydrology.Stats) {
		g.log.Debug("hydrology pass", "pass", pass, "drops", st.Drops, "saturated", st.Saturated, "volume", st.Volume)
	})
	if err != nil {
		return nil, fmt.Errorf("generate world: %w", err)
	}
	w.Flow, w.Hydrology, w.Passes = flow, stats, g.cfg.Hydrology.Passes

	w.Wind, err = wind.Generate(elevation.W, elevation.H, w.Seeds.Wind, g.cfg.Wind)
	if err != nil {
		return nil, fmt.Errorf("generate world: %w", err)
	}

	if err := g.deriveWater(w); err != nil {
		return nil, err
	}
	g.log.Info("world generated",
		"w", elevation.W, "h", elevation.H, "seed", seed,
		"sea_level", w.SeaLevel, "passes", w.Passes, "drops", w.Hydrology.Drops,
		"saturated", w.Hydrology.Saturated, "river_threshold", w.RiverThreshold,
		"reclassified", w.Reclassified)
	return w, nil
}

// Wear runs one more hydrology pass over w and re-derives the rivers and the
// water grid. The pass continues the drop sequence of the earlier passes. On
// error w is left unchanged.
func (g *Generator) Wear(ctx context.Context, w *World) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("wear world: %w", err)
	}
	drops := g.cfg.Hydrology.Drops
	flow, stats, err := g.hydro.SimulateRange(w.hydrologyInput(), w.Passes*drops, drops, w.Flow, w.Seeds.Hydrology)
	if err != nil {
		return fmt.Errorf("wear world: %w", err)
	}
	next := *w
	next.Flow = flow
	next.Passes++
	next.Hydrology.Add(stats)
	if err := g.deriveWater(&next); err != nil {
		return err
	}
	*w = next
	g.log.Debug("hydrology pass", "pass", w.Passes-1, "drops", stats.Drops, "saturated", stats.Saturated,
		"river_threshold", w.RiverThreshold, "reclassified", w.Reclassified)
	return nil
}

func (g *Generator) deriveWater(w *World) error {
	rivers, th, err := hydrology.ThresholdRiver(w.Flow, w.Ocean, g.cfg.Hydrology.RiverFraction)
	if err != nil {
		return fmt.Errorf("derive rivers: %w", err)
	}
	bands, err := hydrology.RiverThresholds(w.Flow, w.Ocean, g.cfg.Hydrology)
	if err != nil {
		return fmt.Errorf("derive rivers: %w", err)
	}
	water, st, err := watergrid.Resolve(w.Ocean, rivers, g.cfg.Water)
	if err != nil {
		return fmt.Errorf("derive water grid: %w", err)
	}
	w.Rivers, w.RiverThreshold, w.RiverBands = rivers, th, bands
	w.Water, w.Reclassified = water, st.Reclassified
	return nil
}

func (w *World) hydrologyInput() hydrology.Input {
	return hydrology.Input{Elevation: w.Elevation, Ocean: w.Ocean}
}
