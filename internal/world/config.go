package world

import (
	"strconv"

	"terrafields/internal/fields/hydrology"
	"terrafields/internal/fields/watergrid"
	"terrafields/internal/fields/wind"
)

// Relief shapes the synthetic elevation used when no elevation grid is
// supplied.
type Relief struct {
	Octaves int32
	// Frequency is the number of noise periods across the map width.
	Frequency float64
	// Island lowers the map towards its edges so the border drowns first.
	Island bool
}

// Config controls world generation.
type Config struct {
	Width  int
	Height int

	Seed int64

	Relief    Relief
	Hydrology hydrology.Config
	Wind      wind.Config
	Water     watergrid.Config
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:  128,
		Height: 96,
		Seed:   1337,
		Relief: Relief{
			Octaves:   6,
			Frequency: 4,
			Island:    true,
		},
		Hydrology: hydrology.DefaultConfig(),
		Wind:      wind.DefaultConfig(),
		Water:     watergrid.DefaultConfig(),
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	c.Apply(cfg)
	return c
}

// Apply parses recognised keys from cfg into c. Stage keys are delegated to
// the stage configs.
func (c *Config) Apply(cfg map[string]string) {
	if cfg == nil {
		return
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["relief_octaves"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 32); err == nil && parsed > 0 {
			c.Relief.Octaves = int32(parsed)
		}
	}
	if v, ok := cfg["relief_frequency"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.Relief.Frequency = parsed
		}
	}
	if v, ok := cfg["relief_island"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Relief.Island = parsed
		}
	}
	c.Hydrology.Apply(cfg)
	c.Wind.Apply(cfg)
	c.Water.Apply(cfg)
}
