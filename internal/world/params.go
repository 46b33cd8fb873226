package world

import (
	"strconv"

	"terrafields/internal/core"
)

// Parameters returns the configuration and run state as a snapshot.
func (s *Sim) Parameters() core.ParameterSnapshot {
	snap := s.cfg.Parameters()
	if w := s.world; w != nil {
		snap.Groups = append(snap.Groups, core.ParameterGroup{
			Name: "Status",
			Params: []core.Parameter{
				floatParam("sea_level_value", "Sea level", w.SeaLevel),
				intParam("passes_run", "Passes run", w.Passes),
				intParam("drops_run", "Drops run", w.Hydrology.Drops),
				intParam("saturated", "Saturated drops", w.Hydrology.Saturated),
				floatParam("river_threshold", "River threshold", w.RiverThreshold),
				intParam("reclassified", "Reclassified pixels", w.Reclassified),
			},
		})
	}
	return snap
}

// Parameters lists every tunable of c.
func (c Config) Parameters() core.ParameterSnapshot {
	h := c.Hydrology
	groups := []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				intParam("w", "Width", c.Width),
				intParam("h", "Height", c.Height),
				int64Param("seed", "Seed", c.Seed),
				intParam("relief_octaves", "Relief octaves", int(c.Relief.Octaves)),
				floatParam("relief_frequency", "Relief frequency", c.Relief.Frequency),
				boolParam("relief_island", "Island relief", c.Relief.Island),
			},
		},
		{
			Name: "Sea",
			Params: []core.Parameter{
				floatParam("ocean_fraction", "Ocean fraction", h.OceanFraction),
				seaLevelParam(h.FixedSeaLevel, h.SeaLevel),
				boolParam("flood_from_borders", "Flood from borders", h.FloodFromBorders),
				floatParam("plain_fraction", "Plain fraction", h.PlainFraction),
				floatParam("hill_fraction", "Hill fraction", h.HillFraction),
			},
		},
		{
			Name: "Hydrology",
			Params: []core.Parameter{
				intParam("drops", "Drops per pass", h.Drops),
				intParam("passes", "Passes", h.Passes),
				floatParam("deposit_rate", "Deposit rate", h.DepositRate),
				intParam("max_steps", "Max steps", h.MaxSteps),
				floatParam("river_fraction", "River fraction", h.RiverFraction),
				floatParam("creek_fraction", "Creek fraction", h.CreekFraction),
				floatParam("main_river_fraction", "Main river fraction", h.MainRiverFraction),
			},
		},
		{
			Name: "Wind",
			Params: []core.Parameter{
				intParam("wind_octaves", "Wind octaves", int(c.Wind.Octaves)),
				floatParam("wind_density", "Wind density", c.Wind.Density),
				floatParam("wind_amplitude", "Wind amplitude", c.Wind.Amplitude),
			},
		},
		{
			Name: "Water grid",
			Params: []core.Parameter{
				boolParam("keep_lone_river_cells", "Keep lone river cells", c.Water.KeepLoneRiverCells),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the parameters adjustable from the HUD.
func (s *Sim) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "drops", Label: "Drops per pass", Type: core.ParamTypeInt, Step: 250, Min: 0, HasMin: true},
		{Key: "passes", Label: "Passes", Type: core.ParamTypeInt, Step: 1, Min: 0, Max: 200, HasMin: true, HasMax: true},
		{Key: "ocean_fraction", Label: "Ocean fraction", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, Max: 0.95, HasMin: true, HasMax: true},
		{Key: "deposit_rate", Label: "Deposit rate", Type: core.ParamTypeFloat, Step: 0.005, Min: 0, Max: 1, HasMin: true, HasMax: true},
		{Key: "river_fraction", Label: "River fraction", Type: core.ParamTypeFloat, Step: 0.005, Min: 0, Max: 0.5, HasMin: true, HasMax: true},
		{Key: "wind_amplitude", Label: "Wind amplitude", Type: core.ParamTypeFloat, Step: 0.02, Min: 0, Max: 1, HasMin: true, HasMax: true},
	}
}

// SetIntParameter updates an integer control and regenerates the world.
func (s *Sim) SetIntParameter(key string, value int) bool {
	if value < 0 {
		return false
	}
	switch key {
	case "drops":
		s.cfg.Hydrology.Drops = value
	case "passes":
		s.cfg.Hydrology.Passes = value
	default:
		return false
	}
	s.Reset(0)
	return true
}

// SetFloatParameter updates a float control and regenerates the world.
func (s *Sim) SetFloatParameter(key string, value float64) bool {
	if value < 0 {
		return false
	}
	switch key {
	case "ocean_fraction":
		if value > 1 {
			return false
		}
		s.cfg.Hydrology.OceanFraction = value
	case "deposit_rate":
		if value > 1 {
			return false
		}
		s.cfg.Hydrology.DepositRate = value
	case "river_fraction":
		if value > 1 {
			return false
		}
		s.cfg.Hydrology.RiverFraction = value
	case "wind_amplitude":
		s.cfg.Wind.Amplitude = value
	default:
		return false
	}
	s.Reset(0)
	return true
}

func seaLevelParam(fixed bool, level float64) core.Parameter {
	p := floatParam("sea_level", "Sea level", level)
	if !fixed {
		p.Value = "auto"
		p.Description = "derived from ocean_fraction"
	}
	return p
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}

func boolParam(key, label string, value bool) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeBool,
		Value: strconv.FormatBool(value),
	}
}
