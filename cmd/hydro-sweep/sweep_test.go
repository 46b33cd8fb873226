package main

import (
	"context"
	"testing"

	"terrafields/internal/world"
)

func TestSweepSetsDistinct(t *testing.T) {
	sets := sweepSets()
	if len(sets) != 81 {
		t.Fatalf("len = %d, want 81", len(sets))
	}
	seen := map[paramSet]bool{}
	for _, p := range sets {
		if seen[p] {
			t.Fatalf("duplicate set %s", p)
		}
		seen[p] = true
	}
}

func TestRank(t *testing.T) {
	all := []scenarioResult{
		{coverage: 0.10, reclassified: 0},
		{coverage: 0.05, reclassified: 9},
		{coverage: 0.03, reclassified: 2},
		{coverage: 0.05, reclassified: 1},
	}
	rank(all, 0.04)
	if all[0].reclassified != 1 || all[1].reclassified != 2 || all[2].reclassified != 9 || all[3].coverage != 0.10 {
		t.Fatalf("rank order = %+v", all)
	}
}

func TestMeasure(t *testing.T) {
	cfg := world.DefaultConfig()
	cfg.Width, cfg.Height = 24, 18
	elev := world.SyntheticElevation(cfg.Width, cfg.Height, 7, cfg.Relief)
	params := paramSet{drops: 300, passes: 2, depositRate: 0.02, riverFraction: 0.05}
	cfg.Hydrology.Drops, cfg.Hydrology.Passes = params.drops, params.passes

	w, err := world.NewGenerator(cfg, nil).Generate(context.Background(), elev)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	res := measure(params, w)
	if res.landCells == 0 || res.landCells > cfg.Width*cfg.Height {
		t.Fatalf("landCells = %d", res.landCells)
	}
	if res.riverCells > res.landCells || res.coverage < 0 || res.coverage > 1 {
		t.Fatalf("result = %s", res)
	}
	if res.waterPixels < (cfg.Width*cfg.Height-res.landCells)*9 {
		t.Fatalf("water pixels %d below ocean area", res.waterPixels)
	}
}
