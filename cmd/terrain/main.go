// Command terrain generates a world from an elevation map or synthetic relief
// and saves its derived layers to a JSON directory or PostgreSQL.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"terrafields/internal/core"
	"terrafields/internal/store"
	"terrafields/internal/world"
)

type options struct {
	elevation string
	width     int
	height    int
	seed      int64
	set       core.KVList
	outDir    string
	db        string
	name      string
	params    bool
	list      bool
	logLevel  string
}

func main() {
	var opts options
	flag.StringVar(&opts.elevation, "elevation", "", "elevation source: a JSON grid path or any go-getter URL; empty uses synthetic relief")
	flag.IntVar(&opts.width, "w", 0, "synthetic map width (0 keeps the default)")
	flag.IntVar(&opts.height, "h", 0, "synthetic map height (0 keeps the default)")
	flag.Int64Var(&opts.seed, "seed", 0, "world seed (0 keeps the default)")
	flag.Var(&opts.set, "set", "parameter override in key=value form (repeatable)")
	flag.StringVar(&opts.outDir, "out", "", "directory for JSON world snapshots")
	flag.StringVar(&opts.db, "db", "", "PostgreSQL connection string for world snapshots")
	flag.StringVar(&opts.name, "name", "", "snapshot name (default world-<seed>)")
	flag.BoolVar(&opts.params, "params", false, "print the parameter snapshot and exit")
	flag.BoolVar(&opts.list, "list", false, "list stored worlds and exit")
	flag.StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn or error")
	flag.Parse()

	var level slog.Level
	if err := level.UnmarshalText([]byte(opts.logLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "invalid -log-level %q\n", opts.logLevel)
		os.Exit(2)
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts, os.Stdout, log); err != nil {
		log.Error("error", "error", err)
		os.Exit(1)
	}
}

func (o options) config() world.Config {
	cfg := world.FromMap(o.set.Map())
	if o.width > 0 {
		cfg.Width = o.width
	}
	if o.height > 0 {
		cfg.Height = o.height
	}
	if o.seed != 0 {
		cfg.Seed = o.seed
	}
	return cfg
}

func run(ctx context.Context, opts options, out io.Writer, log *slog.Logger) error {
	cfg := opts.config()
	if opts.params {
		_, err := fmt.Fprintln(out, cfg.Parameters().String())
		return err
	}

	st, err := openStore(opts, log)
	if err != nil {
		return err
	}
	if st != nil {
		defer st.Close()
	}
	if opts.list {
		if st == nil {
			return fmt.Errorf("-list needs -out or -db")
		}
		names, err := st.ListWorlds()
		if err != nil {
			return err
		}
		for _, n := range names {
			fmt.Fprintln(out, n)
		}
		return nil
	}

	elevation, err := loadElevation(ctx, opts, cfg, log)
	if err != nil {
		return err
	}

	w, err := world.NewGenerator(cfg, log).Generate(ctx, elevation)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "world %dx%d seed=%d sea_level=%.4f river_threshold=%.4f passes=%d saturated=%d reclassified=%d\n",
		w.Elevation.W, w.Elevation.H, w.Seed, w.SeaLevel, w.RiverThreshold, w.Passes, w.Hydrology.Saturated, w.Reclassified)

	if st == nil {
		return nil
	}
	name := opts.name
	if name == "" {
		name = fmt.Sprintf("world-%d", w.Seed)
	}
	if err := st.SaveWorld(w.Snapshot(name, time.Now().UTC())); err != nil {
		return fmt.Errorf("save world %q: %w", name, err)
	}
	log.Info("world saved", "name", name)
	return nil
}

func openStore(opts options, log *slog.Logger) (store.Storage, error) {
	switch {
	case opts.outDir != "" && opts.db != "":
		return nil, fmt.Errorf("-out and -db are mutually exclusive")
	case opts.outDir != "":
		return store.NewJSONStore(opts.outDir, log)
	case opts.db != "":
		return store.NewPostgresStore(opts.db)
	}
	return nil, nil
}

func loadElevation(ctx context.Context, opts options, cfg world.Config, log *slog.Logger) (*core.Grid[float64], error) {
	if opts.elevation == "" {
		return world.SyntheticElevation(cfg.Width, cfg.Height, world.DeriveSeeds(cfg.Seed).Relief, cfg.Relief), nil
	}
	dir, err := os.MkdirTemp("", "terrain-elevation-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	path, err := store.Fetch(ctx, opts.elevation, dir)
	if err != nil {
		return nil, err
	}
	g, err := store.LoadElevation(path)
	if err != nil {
		return nil, err
	}
	log.Debug("elevation loaded", "source", opts.elevation, "w", g.W, "h", g.H)
	return g, nil
}
