package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"sync"
	"time"

	"terrafields/internal/core"
	"terrafields/internal/world"
)

func main() {
	width := flag.Int("w", 96, "map width")
	height := flag.Int("h", 72, "map height")
	seed := flag.Int64("seed", 1337, "world seed")
	target := flag.Float64("coverage", 0.04, "target share of land cells carrying a river")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	top := flag.Int("top", 5, "number of results to print")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	base := world.DefaultConfig()
	base.Width, base.Height, base.Seed = *width, *height, *seed
	// scenarios already run in parallel
	base.Hydrology.Workers = 1
	base.Wind.Workers = 1
	base.Water.Workers = 1
	elevation := world.SyntheticElevation(base.Width, base.Height, world.DeriveSeeds(base.Seed).Relief, base.Relief)

	sets := sweepSets()
	fmt.Printf("Sweeping %d parameter sets (%d workers, %dx%d map)\n", len(sets), *workers, base.Width, base.Height)

	jobs := make(chan paramSet)
	results := make(chan scenarioResult)
	var wg sync.WaitGroup

	for range max(*workers, 1) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for params := range jobs {
				res, err := runScenario(base, elevation, params)
				if err != nil {
					log.Error("scenario failed", "params", params.String(), "error", err)
					continue
				}
				results <- res
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, params := range sets {
			jobs <- params
		}
		close(jobs)
	}()

	start := time.Now()
	var all []scenarioResult
	for res := range results {
		all = append(all, res)
	}
	rank(all, *target)
	elapsed := time.Since(start)

	fmt.Printf("\nTop %d results for coverage %.3f (elapsed %s):\n", *top, *target, elapsed.Round(time.Millisecond))
	for i := 0; i < len(all) && i < *top; i++ {
		fmt.Printf("%2d) %s\n", i+1, all[i])
	}
}

func runScenario(base world.Config, elevation *core.Grid[float64], params paramSet) (scenarioResult, error) {
	cfg := base
	cfg.Hydrology.Drops = params.drops
	cfg.Hydrology.Passes = params.passes
	cfg.Hydrology.DepositRate = params.depositRate
	cfg.Hydrology.RiverFraction = params.riverFraction

	w, err := world.NewGenerator(cfg, nil).Generate(context.Background(), elevation)
	if err != nil {
		return scenarioResult{}, err
	}
	return measure(params, w), nil
}
