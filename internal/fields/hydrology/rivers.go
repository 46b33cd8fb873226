package hydrology

import (
	"fmt"

	"terrafields/internal/core"
	"terrafields/internal/fields/quantile"
)

// River band labels, driest first.
const (
	BandDry       = "dry"
	BandCreek     = "creek"
	BandRiver     = "river"
	BandMainRiver = "main_river"
)

// ThresholdRiver marks non-ocean cells whose flow lies strictly above the
// threshold that leaves the top fraction of land flow. The threshold itself
// is returned alongside the mask.
func ThresholdRiver(flow *core.Grid[float64], ocean *core.Grid[bool], fraction float64) (*core.Grid[bool], float64, error) {
	if err := core.CheckSize("flow", flow, "ocean", ocean); err != nil {
		return nil, 0, err
	}
	d, err := quantile.NewDistribution(flow, ocean)
	if err != nil {
		return nil, 0, fmt.Errorf("river threshold: %w", err)
	}
	th, err := d.Top(fraction)
	if err != nil {
		return nil, 0, fmt.Errorf("river threshold: %w", err)
	}
	mask := core.NewGrid[bool](flow.W, flow.H)
	out := mask.Cells()
	sea := ocean.Cells()
	for i, v := range flow.Cells() {
		out[i] = !sea[i] && v > th
	}
	return mask, th, nil
}

// RiverThresholds builds the dry/creek/river/main_river table from the land
// flow distribution. A cell belongs to the first band whose cutoff it is
// below, so a flow equal to the creek cutoff is already a creek.
func RiverThresholds(flow *core.Grid[float64], ocean *core.Grid[bool], c Config) (quantile.ThresholdTable, error) {
	if err := core.CheckSize("flow", flow, "ocean", ocean); err != nil {
		return quantile.ThresholdTable{}, err
	}
	d, err := quantile.NewDistribution(flow, ocean)
	if err != nil {
		return quantile.ThresholdTable{}, fmt.Errorf("river thresholds: %w", err)
	}
	creek, err := d.Top(c.CreekFraction)
	if err != nil {
		return quantile.ThresholdTable{}, fmt.Errorf("creek cutoff: %w", err)
	}
	river, err := d.Top(c.RiverFraction)
	if err != nil {
		return quantile.ThresholdTable{}, fmt.Errorf("river cutoff: %w", err)
	}
	main, err := d.Top(c.MainRiverFraction)
	if err != nil {
		return quantile.ThresholdTable{}, fmt.Errorf("main river cutoff: %w", err)
	}
	river = max(river, creek)
	return quantile.NewThresholdTable(
		quantile.Band{Label: BandDry, Cutoff: quantile.Cut(creek)},
		quantile.Band{Label: BandCreek, Cutoff: quantile.Cut(river)},
		quantile.Band{Label: BandRiver, Cutoff: quantile.Cut(max(main, river))},
		quantile.Band{Label: BandMainRiver},
	)
}
