//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log/slog"
	"os"

	"terrafields/internal/app"
	"terrafields/internal/core"
	_ "terrafields/internal/world"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	factory, ok := core.Sims()[cfg.Sim]
	if !ok {
		log.Error("unknown sim", "sim", cfg.Sim, "available", core.SimNames())
		os.Exit(2)
	}

	sim := factory(cfg.SimConfig())
	sim.Reset(cfg.Seed)

	game := app.New(sim, cfg)
	size := sim.Size()

	ebiten.SetWindowTitle("terrafields - " + sim.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(size.W*cfg.Scale+cfg.HUDWidth, size.H*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Error("viewer stopped", "error", err)
		os.Exit(1)
	}
}
