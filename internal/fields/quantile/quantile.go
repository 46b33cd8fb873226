// Package quantile computes distribution thresholds over masked grids.
//
// A Distribution sorts the non-excluded values once; any number of quantiles
// can then be read from it in constant time.
package quantile

import (
	"fmt"
	"math"
	"slices"

	"terrafields/internal/core"
)

// Distribution is a sorted snapshot of the non-excluded cells of a grid.
type Distribution struct {
	sorted []float64
}

// NewDistribution collects the values of g whose exclude flag is false and
// sorts them. A nil exclude mask keeps every cell. It fails with
// core.ErrEmptyDistribution when nothing remains and core.ErrInvalidDimensions
// when the mask does not match the grid.
func NewDistribution(g *core.Grid[float64], exclude *core.Grid[bool]) (*Distribution, error) {
	if g == nil {
		return nil, fmt.Errorf("%w: missing values grid", core.ErrInvalidDimensions)
	}
	values := g.Cells()
	var mask []bool
	if exclude != nil {
		if err := core.CheckSize("values", g, "exclusion mask", exclude); err != nil {
			return nil, err
		}
		mask = exclude.Cells()
	}
	kept := make([]float64, 0, len(values))
	for i, v := range values {
		if mask != nil && mask[i] {
			continue
		}
		kept = append(kept, v)
	}
	return fromValues(kept)
}

// FromValues builds a distribution over a plain slice. The slice is copied.
func FromValues(values []float64) (*Distribution, error) {
	return fromValues(slices.Clone(values))
}

func fromValues(values []float64) (*Distribution, error) {
	if len(values) == 0 {
		return nil, core.ErrEmptyDistribution
	}
	slices.Sort(values)
	return &Distribution{sorted: values}, nil
}

// Len reports how many values the distribution holds.
func (d *Distribution) Len() int { return len(d.sorted) }

// Min returns the smallest value.
func (d *Distribution) Min() float64 { return d.sorted[0] }

// Max returns the largest value.
func (d *Distribution) Max() float64 { return d.sorted[len(d.sorted)-1] }

// Quantile returns the value v such that the fraction f of the values are
// less than or equal to v, read at index round(f*(n-1)).
func (d *Distribution) Quantile(f float64) (float64, error) {
	if math.IsNaN(f) || f < 0 || f > 1 {
		return 0, fmt.Errorf("%w: %v", core.ErrInvalidFraction, f)
	}
	n := len(d.sorted)
	idx := int(math.Round(f * float64(n-1)))
	return d.sorted[idx], nil
}

// Top returns the cutoff above which the top fraction of values lie. It is
// Quantile(1-fraction).
func (d *Distribution) Top(fraction float64) (float64, error) {
	if math.IsNaN(fraction) || fraction < 0 || fraction > 1 {
		return 0, fmt.Errorf("%w: %v", core.ErrInvalidFraction, fraction)
	}
	return d.Quantile(1 - fraction)
}

// CountAtOrBelow returns how many values are <= v.
func (d *Distribution) CountAtOrBelow(v float64) int {
	idx, found := slices.BinarySearch(d.sorted, v)
	if !found {
		return idx
	}
	for idx < len(d.sorted) && d.sorted[idx] <= v {
		idx++
	}
	return idx
}

// Threshold is the one-shot form of NewDistribution followed by Quantile.
func Threshold(g *core.Grid[float64], exclude *core.Grid[bool], f float64) (float64, error) {
	d, err := NewDistribution(g, exclude)
	if err != nil {
		return 0, err
	}
	return d.Quantile(f)
}
