package world

import (
	"image/color"
	"math"

	"terrafields/internal/fields/hydrology"
	"terrafields/internal/fields/watergrid"
)

// Display layers.
const (
	LayerBands = "bands"
	LayerFlow  = "flow"
	LayerWind  = "wind"
	LayerWater = "water"
)

// Palette index layout of the display buffer.
const (
	displayOcean = 0
	displayRiver = 1
	displayLand  = 2

	displaySea       = 3
	displayPlain     = 4
	displayHill      = 5
	displayMountain  = 6
	displayCreek     = 7
	displayChannel   = 8
	displayMainRiver = 9

	displayFlowBase  = 16
	displayFlowSteps = 32
	displayWindBase  = 64
	displayWindSteps = 64

	paletteSize = displayWindBase + displayWindSteps
)

var terrainPalette = buildTerrainPalette()

// Palette exposes the color palette used for rendering the display buffer.
func (s *Sim) Palette() []color.RGBA {
	return terrainPalette
}

func buildTerrainPalette() []color.RGBA {
	p := make([]color.RGBA, paletteSize)
	p[displayOcean] = color.RGBA{R: 24, G: 52, B: 110, A: 255}
	p[displayRiver] = color.RGBA{R: 60, G: 120, B: 210, A: 255}
	p[displayLand] = color.RGBA{R: 110, G: 140, B: 80, A: 255}

	p[displaySea] = p[displayOcean]
	p[displayPlain] = color.RGBA{R: 96, G: 150, B: 72, A: 255}
	p[displayHill] = color.RGBA{R: 150, G: 130, B: 90, A: 255}
	p[displayMountain] = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	p[displayCreek] = color.RGBA{R: 110, G: 170, B: 220, A: 255}
	p[displayChannel] = p[displayRiver]
	p[displayMainRiver] = color.RGBA{R: 30, G: 80, B: 190, A: 255}

	for i := 0; i < displayFlowSteps; i++ {
		t := float64(i) / float64(displayFlowSteps-1)
		p[displayFlowBase+i] = lerp(color.RGBA{R: 40, G: 32, B: 24, A: 255}, color.RGBA{R: 170, G: 230, B: 255, A: 255}, t)
	}
	for i := 0; i < displayWindSteps; i++ {
		p[displayWindBase+i] = hue(float64(i) / displayWindSteps)
	}
	return p
}

func lerp(a, b color.RGBA, t float64) color.RGBA {
	mix := func(x, y uint8) uint8 { return uint8(float64(x)*(1-t) + float64(y)*t + 0.5) }
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 255}
}

// hue maps a turn in [0,1) onto a fully saturated color wheel.
func hue(turn float64) color.RGBA {
	h := turn * 6
	x := uint8(255 * (1 - math.Abs(math.Mod(h, 2)-1)))
	switch int(h) {
	case 0:
		return color.RGBA{R: 255, G: x, A: 255}
	case 1:
		return color.RGBA{R: x, G: 255, A: 255}
	case 2:
		return color.RGBA{G: 255, B: x, A: 255}
	case 3:
		return color.RGBA{G: x, B: 255, A: 255}
	case 4:
		return color.RGBA{R: x, B: 255, A: 255}
	default:
		return color.RGBA{R: 255, B: x, A: 255}
	}
}

// cellValue returns the palette index of coarse cell i on a coarse layer.
func cellValue(w *World, layer string, i int, flowMax float64) uint8 {
	switch layer {
	case LayerFlow:
		if w.Ocean.Cells()[i] {
			return displayOcean
		}
		if flowMax <= 0 {
			return displayFlowBase
		}
		t := math.Log1p(w.Flow.Cells()[i]) / math.Log1p(flowMax)
		step := min(int(t*float64(displayFlowSteps-1)+0.5), displayFlowSteps-1)
		return uint8(displayFlowBase + step)
	case LayerWind:
		step := int(w.Wind.Cells()[i] * displayWindSteps)
		return uint8(displayWindBase + min(step, displayWindSteps-1))
	default:
		if w.Rivers.Cells()[i] {
			switch w.RiverBands.Band(w.Flow.Cells()[i]) {
			case hydrology.BandMainRiver:
				return displayMainRiver
			case hydrology.BandRiver:
				return displayChannel
			default:
				return displayCreek
			}
		}
		switch w.ElevationBands.Band(w.Elevation.Cells()[i]) {
		case hydrology.BandSea:
			if w.Ocean.Cells()[i] {
				return displaySea
			}
			return displayPlain
		case hydrology.BandPlain:
			return displayPlain
		case hydrology.BandHill:
			return displayHill
		default:
			return displayMountain
		}
	}
}

func waterValue(s watergrid.State) uint8 {
	switch s {
	case watergrid.Ocean:
		return displayOcean
	case watergrid.River:
		return displayRiver
	default:
		return displayLand
	}
}

// renderDisplay fills dst, sized for the fine grid, with layer. Coarse
// layers repeat each cell over its 3x3 block.
func renderDisplay(dst []uint8, w *World, layer string) {
	if w == nil {
		for i := range dst {
			dst[i] = displayOcean
		}
		return
	}
	fw := w.Water.W
	if layer == LayerWater {
		for i, s := range w.Water.Cells() {
			dst[i] = waterValue(s)
		}
		return
	}
	var flowMax float64
	if layer == LayerFlow {
		for i, v := range w.Flow.Cells() {
			if !w.Ocean.Cells()[i] {
				flowMax = max(flowMax, v)
			}
		}
	}
	cw := w.Elevation.W
	for i := range dst {
		x, y := i%fw, i/fw
		dst[i] = cellValue(w, layer, (y/watergrid.Scale)*cw+x/watergrid.Scale, flowMax)
	}
}
