package ui

import (
	"math"

	"terrafields/internal/core"
)

type windSample struct {
	cx, cy float64 // display cell coordinates
	sx, sy float64 // screen coordinates
}

// windSampleGrid lays out roughly targetSamples arrow anchors centred over a
// display of the given size and returns them with their screen spacing.
func windSampleGrid(size core.Size, scale int) ([]windSample, float64) {
	if size.W <= 0 || size.H <= 0 {
		return nil, 0
	}
	scale = max(scale, 1)

	const (
		targetSamples = 360.0
		minSpacing    = 6
		maxSpacing    = 24
	)
	spacing := int(math.Sqrt(float64(size.Cells()) / targetSamples))
	spacing = min(max(spacing, minSpacing), maxSpacing)

	countX := (size.W + spacing - 1) / spacing
	countY := (size.H + spacing - 1) / spacing
	startX := max((size.W-1-(countX-1)*spacing)/2, 0)
	startY := max((size.H-1-(countY-1)*spacing)/2, 0)

	samples := make([]windSample, 0, countX*countY)
	for yi := range countY {
		cy := float64(min(startY+yi*spacing, size.H-1)) + 0.5
		for xi := range countX {
			cx := float64(min(startX+xi*spacing, size.W-1)) + 0.5
			samples = append(samples, windSample{cx: cx, cy: cy, sx: cx * float64(scale), sy: cy * float64(scale)})
		}
	}
	return samples, float64(spacing * scale)
}
