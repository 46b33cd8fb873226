//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"terrafields/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
)

type windFieldProvider interface {
	WindVectorAt(x, y float64) (float64, float64)
}

var (
	arrowColor = color.RGBA{R: 235, G: 240, B: 250, A: 210}
	calmColor  = color.RGBA{R: 90, G: 130, B: 170, A: 120}
)

// Overlay draws prevailing wind arrows on top of the map.
type Overlay struct {
	sim   core.Sim
	scale int
	show  bool
	pixel *ebiten.Image

	samples   []windSample
	cacheSize core.Size
	span      float64
}

// NewOverlay constructs a hidden overlay for sim drawn at scale.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	o := &Overlay{sim: sim, scale: max(scale, 1)}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Toggle shows or hides the wind arrows.
func (o *Overlay) Toggle() { o.show = !o.show }

// Visible reports whether the arrows are drawn.
func (o *Overlay) Visible() bool { return o.show }

// Draw renders the overlay onto screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if !o.show {
		return
	}
	provider, ok := o.sim.(windFieldProvider)
	if !ok {
		return
	}
	if size := o.sim.Size(); size != o.cacheSize || o.samples == nil {
		o.samples, o.span = windSampleGrid(size, o.scale)
		o.cacheSize = size
	}

	const headAngle = math.Pi / 6
	length := o.span * 0.6
	head := math.Min(length*0.35, float64(o.scale)*4.5)
	thickness := math.Max(float64(o.scale)*0.8, 1)

	for _, s := range o.samples {
		vx, vy := provider.WindVectorAt(s.cx, s.cy)
		if math.Hypot(vx, vy) < 1e-6 {
			o.drawLine(screen, s.sx-thickness, s.sy, s.sx+thickness, s.sy, thickness*2, calmColor)
			continue
		}
		// arrows point downwind, centred on the sample
		tipX, tipY := s.sx+vx*length/2, s.sy+vy*length/2
		tailX, tailY := s.sx-vx*length/2, s.sy-vy*length/2
		o.drawLine(screen, tailX, tailY, tipX, tipY, thickness, arrowColor)

		angle := math.Atan2(vy, vx)
		for _, a := range []float64{angle + headAngle, angle - headAngle} {
			o.drawLine(screen, tipX, tipY, tipX-math.Cos(a)*head, tipY-math.Sin(a)*head, thickness*0.85, arrowColor)
		}
	}
}

func (o *Overlay) drawLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.RGBA) {
	dx, dy := x2-x1, y2-y1
	length := math.Hypot(dx, dy)
	if length <= 1e-4 || thickness <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}
