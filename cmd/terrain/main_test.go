package main

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"terrafields/internal/core"
	"terrafields/internal/store"
	"terrafields/internal/world"
)

func quiet() *slog.Logger { return slog.New(slog.DiscardHandler) }

func smallOptions(t *testing.T) options {
	t.Helper()
	opts := options{width: 24, height: 18, seed: 5, outDir: t.TempDir()}
	for _, kv := range []string{"drops=300", "passes=2"} {
		if err := opts.set.Set(kv); err != nil {
			t.Fatalf("Set: %v", err)
		}
	}
	return opts
}

func TestRunSavesSyntheticWorld(t *testing.T) {
	opts := smallOptions(t)
	var out bytes.Buffer
	if err := run(context.Background(), opts, &out, quiet()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "world 24x18 seed=5") {
		t.Fatalf("output = %q", out.String())
	}

	js, err := store.NewJSONStore(opts.outDir, quiet())
	if err != nil {
		t.Fatalf("NewJSONStore: %v", err)
	}
	snap, err := js.LoadWorld("world-5")
	if err != nil {
		t.Fatalf("LoadWorld: %v", err)
	}
	if snap.Width != 24 || snap.Height != 18 || snap.Passes != 2 {
		t.Fatalf("snapshot = %dx%d passes=%d", snap.Width, snap.Height, snap.Passes)
	}

	out.Reset()
	opts.list = true
	if err := run(context.Background(), opts, &out, quiet()); err != nil {
		t.Fatalf("run -list: %v", err)
	}
	if strings.TrimSpace(out.String()) != "world-5" {
		t.Fatalf("list output = %q", out.String())
	}
}

func TestRunLoadsElevationFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "relief.json")
	cfg := world.DefaultConfig()
	elev := world.SyntheticElevation(20, 16, 3, cfg.Relief)
	if err := store.SaveElevation(path, elev); err != nil {
		t.Fatalf("SaveElevation: %v", err)
	}

	opts := smallOptions(t)
	opts.elevation = path
	opts.name = "fetched"
	var out bytes.Buffer
	if err := run(context.Background(), opts, &out, quiet()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "world 20x16") {
		t.Fatalf("output = %q", out.String())
	}
}

func TestRunParamsAndErrors(t *testing.T) {
	var out bytes.Buffer
	opts := options{params: true}
	if err := opts.set.Set("drops=123"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := run(context.Background(), opts, &out, quiet()); err != nil {
		t.Fatalf("run -params: %v", err)
	}
	if !strings.Contains(out.String(), "drops") || !strings.Contains(out.String(), "123") {
		t.Fatalf("params output = %q", out.String())
	}

	if err := run(context.Background(), options{list: true}, &out, quiet()); err == nil {
		t.Fatal("-list without a store accepted")
	}
	if err := run(context.Background(), options{outDir: t.TempDir(), db: "postgres://x"}, &out, quiet()); err == nil {
		t.Fatal("-out with -db accepted")
	}
}

func TestOptionsConfig(t *testing.T) {
	var set core.KVList
	if err := set.Set("w=40"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	cfg := options{set: set, height: 12}.config()
	if cfg.Width != 40 || cfg.Height != 12 || cfg.Seed != world.DefaultConfig().Seed {
		t.Fatalf("config = %+v", cfg)
	}
}
