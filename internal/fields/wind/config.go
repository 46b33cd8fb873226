package wind

import "strconv"

// Config tunes the noise layered over the latitude bands.
type Config struct {
	// Octaves is the number of noise octaves summed per sample.
	Octaves int32
	// Density is the number of noise periods spanned by the map height, so
	// the pattern looks the same at any resolution.
	Density float64
	// Amplitude scales the noise, in turns.
	Amplitude float64
	// Workers bounds parallel row sampling; 0 means GOMAXPROCS.
	Workers int
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Octaves:   8,
		Density:   8,
		Amplitude: 0.1,
	}
}

// FromMap returns DefaultConfig with overrides from a flag-style string map.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	c.Apply(cfg)
	return c
}

// Apply parses the wind_* keys of cfg into c, ignoring invalid values.
func (c *Config) Apply(cfg map[string]string) {
	if cfg == nil {
		return
	}
	if v, ok := cfg["wind_octaves"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 32); err == nil && parsed > 0 {
			c.Octaves = int32(parsed)
		}
	}
	if v, ok := cfg["wind_density"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.Density = parsed
		}
	}
	if v, ok := cfg["wind_amplitude"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Amplitude = parsed
		}
	}
	if v, ok := cfg["wind_workers"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Workers = parsed
		}
	}
}
