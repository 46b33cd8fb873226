package hydrology

import "strconv"

// Config holds the tunables of the ocean, threshold and droplet stages.
type Config struct {
	// OceanFraction is the share of cells placed below sea level when the sea
	// level is derived from the elevation distribution.
	OceanFraction float64
	// FixedSeaLevel selects SeaLevel instead of the OceanFraction quantile.
	FixedSeaLevel bool
	SeaLevel      float64
	// FloodFromBorders keeps only below-sea cells connected to the map edge.
	FloodFromBorders bool

	// PlainFraction and HillFraction are the top shares of land elevation
	// labelled hill-or-higher and mountain respectively.
	PlainFraction float64
	HillFraction  float64

	// Drops is the number of droplets per pass, Passes the number of passes
	// that wear the river network in.
	Drops  int
	Passes int
	// DepositRate is the share of a drop's remaining volume left behind on
	// each cell it passes through.
	DepositRate float64
	// MaxSteps caps a drop's descent; 0 means 4*(W+H).
	MaxSteps int
	// Workers bounds parallel path tracing; 0 means GOMAXPROCS.
	Workers int

	RiverFraction     float64
	CreekFraction     float64
	MainRiverFraction float64
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		OceanFraction:     0.65,
		SeaLevel:          1.0,
		PlainFraction:     0.10,
		HillFraction:      0.03,
		Drops:             2000,
		Passes:            10,
		DepositRate:       0.02,
		RiverFraction:     0.02,
		CreekFraction:     0.05,
		MainRiverFraction: 0.007,
	}
}

// FromMap returns DefaultConfig with overrides from a flag-style string map.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	c.Apply(cfg)
	return c
}

// Apply parses recognised keys from cfg into c. Unparseable or out-of-range
// values are ignored.
func (c *Config) Apply(cfg map[string]string) {
	if cfg == nil {
		return
	}
	fraction := func(key string, dst *float64) {
		if v, ok := cfg[key]; ok {
			if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
				*dst = parsed
			}
		}
	}
	count := func(key string, dst *int) {
		if v, ok := cfg[key]; ok {
			if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
				*dst = parsed
			}
		}
	}

	fraction("ocean_fraction", &c.OceanFraction)
	if v, ok := cfg["sea_level"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.SeaLevel = parsed
			c.FixedSeaLevel = true
		}
	}
	if v, ok := cfg["flood_from_borders"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.FloodFromBorders = parsed
		}
	}
	fraction("plain_fraction", &c.PlainFraction)
	fraction("hill_fraction", &c.HillFraction)
	if c.HillFraction > c.PlainFraction {
		c.HillFraction = c.PlainFraction
	}
	count("drops", &c.Drops)
	count("passes", &c.Passes)
	fraction("deposit_rate", &c.DepositRate)
	count("max_steps", &c.MaxSteps)
	count("workers", &c.Workers)
	fraction("river_fraction", &c.RiverFraction)
	fraction("creek_fraction", &c.CreekFraction)
	fraction("main_river_fraction", &c.MainRiverFraction)
}
