package world

import (
	"math"

	"github.com/aquilax/go-perlin"
	"gonum.org/v1/gonum/floats"

	"terrafields/internal/core"
)

// SyntheticElevation builds a normalised [0,1] elevation grid from octave
// noise. It stands in for the external tectonics stage in tools and tests.
func SyntheticElevation(w, h int, seed int64, r Relief) *core.Grid[float64] {
	g := core.NewGrid[float64](w, h)
	octaves := r.Octaves
	if octaves <= 0 {
		octaves = 1
	}
	p := perlin.NewPerlin(2, 2, octaves, seed)
	scale := r.Frequency / float64(g.W)
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			v := p.Noise2D(float64(x)*scale+0.5, float64(y)*scale+0.5)
			if r.Island {
				v += islandFalloff(x, y, g.W, g.H)
			}
			g.Set(x, y, v)
		}
	}
	normalize(g.Cells())
	return g
}

// islandFalloff is 0 in the middle of the map and -1 on its border.
func islandFalloff(x, y, w, h int) float64 {
	dx := math.Abs(2*(float64(x)+0.5)/float64(w) - 1)
	dy := math.Abs(2*(float64(y)+0.5)/float64(h) - 1)
	d := max(dx, dy)
	return -d * d
}

// normalize rescales v in place to [0,1]. A flat grid becomes all zero.
func normalize(v []float64) {
	lo, hi := floats.Min(v), floats.Max(v)
	if hi <= lo {
		for i := range v {
			v[i] = 0
		}
		return
	}
	floats.AddConst(-lo, v)
	floats.Scale(1/(hi-lo), v)
}

// Bounds returns the lowest and highest value of g.
func Bounds(g *core.Grid[float64]) (lo, hi float64) {
	return floats.Min(g.Cells()), floats.Max(g.Cells())
}
