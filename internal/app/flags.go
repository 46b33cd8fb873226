package app

import (
	"flag"

	"terrafields/internal/core"
)

// Config represents the command-line parameters of the viewer.
type Config struct {
	Sim      string
	Scale    int
	TPS      int
	PassRate float64
	Seed     int64
	HUDWidth int
	Set      core.KVList
}

// NewConfig returns a Config populated with defaults.
func NewConfig() *Config {
	return &Config{Sim: "terrain", Scale: 2, TPS: 60, PassRate: 2, Seed: 1337, HUDWidth: 260}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "frames per second")
	fs.Float64Var(&c.PassRate, "pass-rate", c.PassRate, "hydrology passes per second while running")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset")
	fs.IntVar(&c.HUDWidth, "hud", c.HUDWidth, "width of the parameter panel, 0 hides it")
	fs.Var(&c.Set, "set", "sim parameter as key=value, repeatable")
}

// SimConfig returns the key=value overrides passed to the sim factory.
func (c *Config) SimConfig() map[string]string {
	return c.Set.Map()
}
