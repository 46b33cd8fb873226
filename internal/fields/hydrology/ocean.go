package hydrology

import (
	"fmt"

	"terrafields/internal/core"
	"terrafields/internal/fields/quantile"
)

// Band labels of the elevation threshold table.
const (
	BandSea      = "sea"
	BandPlain    = "plain"
	BandHill     = "hill"
	BandMountain = "mountain"
)

// SeaLevel returns the configured fixed level, or the OceanFraction quantile
// of the whole elevation distribution.
func SeaLevel(elevation *core.Grid[float64], c Config) (float64, error) {
	if c.FixedSeaLevel {
		return c.SeaLevel, nil
	}
	level, err := quantile.Threshold(elevation, nil, c.OceanFraction)
	if err != nil {
		return 0, fmt.Errorf("sea level: %w", err)
	}
	return level, nil
}

// OceanMask marks every cell strictly below level.
func OceanMask(elevation *core.Grid[float64], level float64) *core.Grid[bool] {
	mask := core.NewGrid[bool](elevation.W, elevation.H)
	out := mask.Cells()
	for i, e := range elevation.Cells() {
		out[i] = e < level
	}
	return mask
}

// FloodOcean marks below-level cells that are 8-connected to the map border.
// Inland basins below the level stay land.
func FloodOcean(elevation *core.Grid[float64], level float64) *core.Grid[bool] {
	w, h := elevation.W, elevation.H
	mask := core.NewGrid[bool](w, h)
	ocean := mask.Cells()
	elev := elevation.Cells()

	var stack []int
	push := func(x, y int) {
		idx := y*w + x
		if !ocean[idx] && elev[idx] < level {
			ocean[idx] = true
			stack = append(stack, idx)
		}
	}
	for x := 0; x < w; x++ {
		push(x, 0)
		push(x, h-1)
	}
	for y := 0; y < h; y++ {
		push(0, y)
		push(w-1, y)
	}
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		x, y := idx%w, idx/w
		for dy := -1; dy <= 1; dy++ {
			ny := y + dy
			if ny < 0 || ny >= h {
				continue
			}
			for dx := -1; dx <= 1; dx++ {
				nx := x + dx
				if nx < 0 || nx >= w || (dx == 0 && dy == 0) {
					continue
				}
				push(nx, ny)
			}
		}
	}
	return mask
}

// Ocean computes the sea level and the ocean mask for c.
func Ocean(elevation *core.Grid[float64], c Config) (*core.Grid[bool], float64, error) {
	level, err := SeaLevel(elevation, c)
	if err != nil {
		return nil, 0, err
	}
	if c.FloodFromBorders {
		return FloodOcean(elevation, level), level, nil
	}
	return OceanMask(elevation, level), level, nil
}

// ElevationThresholds builds the sea/plain/hill/mountain table. Plain and hill
// cutoffs are quantiles over the cells not excluded by exclude, normally the
// cells below sea level, so they are land-relative.
func ElevationThresholds(elevation *core.Grid[float64], exclude *core.Grid[bool], seaLevel float64, c Config) (quantile.ThresholdTable, error) {
	land, err := quantile.NewDistribution(elevation, exclude)
	if err != nil {
		return quantile.ThresholdTable{}, fmt.Errorf("land elevation: %w", err)
	}
	plain, err := land.Top(c.PlainFraction)
	if err != nil {
		return quantile.ThresholdTable{}, fmt.Errorf("plain cutoff: %w", err)
	}
	hill, err := land.Top(c.HillFraction)
	if err != nil {
		return quantile.ThresholdTable{}, fmt.Errorf("hill cutoff: %w", err)
	}
	return quantile.NewThresholdTable(
		quantile.Band{Label: BandSea, Cutoff: quantile.Cut(seaLevel)},
		quantile.Band{Label: BandPlain, Cutoff: quantile.Cut(max(plain, seaLevel))},
		quantile.Band{Label: BandHill, Cutoff: quantile.Cut(max(hill, plain, seaLevel))},
		quantile.Band{Label: BandMountain},
	)
}
