package world

import (
	"context"
	"log/slog"

	"terrafields/internal/core"
	"terrafields/internal/fields/watergrid"
	"terrafields/internal/fields/wind"
)

// Sim drives a World through the core.Sim contract. Reset regenerates every
// layer, Step wears the river network in by one hydrology pass. The display
// buffer always has the water grid resolution.
type Sim struct {
	cfg   Config
	log   *slog.Logger
	gen   *Generator
	world *World
	err   error

	// elevation is fixed input; nil means synthetic relief from the seed
	elevation *core.Grid[float64]

	layer   string
	display []uint8
}

// NewSim returns a sim over synthetic relief.
func NewSim(cfg Config, log *slog.Logger) *Sim {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	s := &Sim{cfg: cfg, log: log, layer: LayerBands}
	s.resize(cfg.Width, cfg.Height)
	s.gen = NewGenerator(cfg, log)
	return s
}

// NewSimWithElevation returns a sim over a fixed elevation grid.
func NewSimWithElevation(cfg Config, elevation *core.Grid[float64], log *slog.Logger) *Sim {
	cfg.Width, cfg.Height = elevation.W, elevation.H
	s := NewSim(cfg, log)
	s.elevation = elevation
	return s
}

func (s *Sim) resize(w, h int) {
	s.cfg.Width, s.cfg.Height = max(w, 1), max(h, 1)
	s.display = make([]uint8, s.cfg.Width*s.cfg.Height*watergrid.Scale*watergrid.Scale)
}

// Name returns the simulation identifier.
func (s *Sim) Name() string { return "terrain" }

// Size reports the display dimensions.
func (s *Sim) Size() core.Size {
	return core.Size{W: s.cfg.Width * watergrid.Scale, H: s.cfg.Height * watergrid.Scale}
}

// Cells exposes the current display buffer.
func (s *Sim) Cells() []uint8 { return s.display }

// World exposes the current world; nil until the first successful Reset.
func (s *Sim) World() *World { return s.world }

// Err reports the error of the last Reset or Step, if any.
func (s *Sim) Err() error { return s.err }

// Config returns the active configuration.
func (s *Sim) Config() Config { return s.cfg }

// Reset regenerates the world. A zero seed keeps the configured seed.
func (s *Sim) Reset(seed int64) {
	if seed != 0 {
		s.cfg.Seed = seed
	}
	s.gen = NewGenerator(s.cfg, s.log)
	elevation := s.elevation
	if elevation == nil {
		elevation = SyntheticElevation(s.cfg.Width, s.cfg.Height, DeriveSeeds(s.cfg.Seed).Relief, s.cfg.Relief)
	}
	w, err := s.gen.GenerateSeed(context.Background(), elevation, s.cfg.Seed)
	if err != nil {
		s.err = err
		s.log.Error("reset world", "error", err)
		return
	}
	s.world, s.err = w, nil
	s.rebuildDisplay()
}

// Step runs one more hydrology pass.
func (s *Sim) Step() {
	if s.world == nil {
		return
	}
	if err := s.gen.Wear(context.Background(), s.world); err != nil {
		s.err = err
		s.log.Error("step world", "error", err)
		return
	}
	s.err = nil
	s.rebuildDisplay()
}

// Layers lists the displayable fields.
func (s *Sim) Layers() []core.Layer {
	return []core.Layer{
		{Key: LayerBands, Label: "Elevation & rivers"},
		{Key: LayerFlow, Label: "Flow"},
		{Key: LayerWind, Label: "Wind"},
		{Key: LayerWater, Label: "Water grid"},
	}
}

// ActiveLayer returns the key of the displayed layer.
func (s *Sim) ActiveLayer() string { return s.layer }

// SetLayer switches the displayed layer.
func (s *Sim) SetLayer(key string) bool {
	for _, l := range s.Layers() {
		if l.Key == key {
			s.layer = key
			s.rebuildDisplay()
			return true
		}
	}
	return false
}

// WindVectorAt returns the unit wind vector at display coordinates (x, y),
// or zero before the first Reset.
func (s *Sim) WindVectorAt(x, y float64) (float64, float64) {
	if s.world == nil {
		return 0, 0
	}
	g := s.world.Wind
	cx := min(max(int(x)/watergrid.Scale, 0), g.W-1)
	cy := min(max(int(y)/watergrid.Scale, 0), g.H-1)
	return wind.Vector(g.At(cx, cy))
}

func (s *Sim) rebuildDisplay() {
	renderDisplay(s.display, s.world, s.layer)
}

func init() {
	core.Register("terrain", func(cfg map[string]string) core.Sim {
		return NewSim(FromMap(cfg), nil)
	})
}
