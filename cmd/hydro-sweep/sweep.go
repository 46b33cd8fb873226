package main

import (
	"fmt"
	"math"
	"sort"

	"terrafields/internal/world"
)

type paramSet struct {
	drops         int
	passes        int
	depositRate   float64
	riverFraction float64
}

func (p paramSet) String() string {
	return fmt.Sprintf("drops=%d passes=%d deposit=%.3f river=%.3f", p.drops, p.passes, p.depositRate, p.riverFraction)
}

type scenarioResult struct {
	params       paramSet
	landCells    int
	riverCells   int
	coverage     float64
	saturated    int
	reclassified int
	waterPixels  int
	threshold    float64
}

func (r scenarioResult) String() string {
	return fmt.Sprintf("coverage=%.4f rivers=%d/%d saturated=%d reclassified=%d water=%d threshold=%.3f params=%s",
		r.coverage, r.riverCells, r.landCells, r.saturated, r.reclassified, r.waterPixels, r.threshold, r.params)
}

func sweepSets() []paramSet {
	dropOptions := []int{1000, 2000, 4000}
	passOptions := []int{5, 10, 20}
	depositOptions := []float64{0.01, 0.02, 0.05}
	riverOptions := []float64{0.02, 0.04, 0.08}

	var sets []paramSet
	for _, drops := range dropOptions {
		for _, passes := range passOptions {
			for _, deposit := range depositOptions {
				for _, river := range riverOptions {
					sets = append(sets, paramSet{drops: drops, passes: passes, depositRate: deposit, riverFraction: river})
				}
			}
		}
	}
	return sets
}

func measure(params paramSet, w *world.World) scenarioResult {
	res := scenarioResult{
		params:       params,
		saturated:    w.Hydrology.Saturated,
		reclassified: w.Reclassified,
		threshold:    w.RiverThreshold,
	}
	ocean, rivers := w.Ocean.Cells(), w.Rivers.Cells()
	for i := range ocean {
		if ocean[i] {
			continue
		}
		res.landCells++
		if rivers[i] {
			res.riverCells++
		}
	}
	if res.landCells > 0 {
		res.coverage = float64(res.riverCells) / float64(res.landCells)
	}
	for _, s := range w.Water.Cells() {
		if s.Water() {
			res.waterPixels++
		}
	}
	return res
}

// rank orders results by distance to the target coverage, then by the number
// of pixels the water grid had to repair and finally by saturated drops.
func rank(all []scenarioResult, target float64) {
	sort.SliceStable(all, func(i, j int) bool {
		di := math.Abs(all[i].coverage - target)
		dj := math.Abs(all[j].coverage - target)
		if math.Abs(di-dj) > 1e-9 {
			return di < dj
		}
		if all[i].reclassified != all[j].reclassified {
			return all[i].reclassified < all[j].reclassified
		}
		return all[i].saturated < all[j].saturated
	})
}
