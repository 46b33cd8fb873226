// Package wind generates a prevailing wind direction per cell. Directions are
// fractions of a full turn: 0 north, 0.25 east, 0.5 south, 0.75 west.
package wind

import (
	"fmt"
	"math"
	"runtime"

	"github.com/aquilax/go-perlin"
	"golang.org/x/sync/errgroup"

	"terrafields/internal/core"
	pcore "terrafields/pkg/core"
)

// Compass directions in turns.
const (
	North = 0.0
	East  = 0.25
	South = 0.5
	West  = 0.75
)

// Latitude band boundaries as fractions of the height, north pole first, and
// the direction anchored at each boundary. The last anchor is North plus one
// turn so the final band interpolates forward from East instead of backward.
var (
	bandEdges   = [...]float64{0, 0.16, 0.34, 0.5, 0.66, 0.84, 1.0}
	bandAnchors = [...]float64{South, North, East, West, East, South, North + 1}
)

// BandAngle returns the direction before noise at latitude lat, where 0 is
// the top row and 1 the bottom edge. The result may equal 1 at lat == 1.
func BandAngle(lat float64) float64 {
	if lat <= 0 {
		return bandAnchors[0]
	}
	last := len(bandEdges) - 1
	if lat >= 1 {
		return bandAnchors[last]
	}
	for i := 0; i < last; i++ {
		lo, hi := bandEdges[i], bandEdges[i+1]
		if lat < hi {
			t := (lat - lo) / (hi - lo)
			return bandAnchors[i] + t*(bandAnchors[i+1]-bandAnchors[i])
		}
	}
	return bandAnchors[last]
}

// RowAngle is BandAngle for row y of a map with the given height.
func RowAngle(y, height int) float64 {
	return BandAngle(float64(y) / float64(height))
}

// noiseField samples seeded octave noise for a map of a given size. Cells in
// the left quarter blend towards the sample one map width to the right so
// column 0 continues column W-1.
type noiseField struct {
	p      *perlin.Perlin
	base   float64
	scale  float64
	width  int
	border int
}

func newNoiseField(width, height int, seed int64, cfg Config) noiseField {
	rng := pcore.NewRNG(seed)
	octaves := cfg.Octaves
	if octaves <= 0 {
		octaves = 1
	}
	return noiseField{
		p:      perlin.NewPerlin(2, 2, octaves, seed),
		base:   float64(rng.IntN(4096)),
		scale:  cfg.Density / float64(height),
		width:  width,
		border: width / 4,
	}
}

func (n noiseField) raw(x, y int) float64 {
	return n.p.Noise2D(float64(x)*n.scale+n.base, float64(y)*n.scale+n.base)
}

func (n noiseField) at(x, y int) float64 {
	if x >= n.border {
		return n.raw(x, y)
	}
	b := float64(n.border)
	w := float64(x) / b
	return n.raw(x, y)*w + n.raw(x+n.width, y)*(1-w)
}

// wrapTurn maps v into [0,1).
func wrapTurn(v float64) float64 {
	r := v - math.Floor(v)
	if r >= 1 {
		return 0
	}
	return r
}

// Generate builds the wind field for a width x height map. The result depends
// only on its arguments.
func Generate(width, height int, seed int64, cfg Config) (*core.Grid[float64], error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: wind field %dx%d", core.ErrInvalidDimensions, width, height)
	}
	field := core.NewGrid[float64](width, height)
	noise := newNoiseField(width, height, seed, cfg)
	cells := field.Cells()

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	var g errgroup.Group
	g.SetLimit(workers)
	for y := 0; y < height; y++ {
		g.Go(func() error {
			band := RowAngle(y, height)
			row := cells[y*width : (y+1)*width]
			for x := range row {
				row[x] = wrapTurn(band + cfg.Amplitude*noise.at(x, y))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return field, nil
}

// Vector returns the unit vector a wind direction points to in screen
// coordinates, with y growing downwards.
func Vector(angle float64) (dx, dy float64) {
	s, c := math.Sincos(2 * math.Pi * angle)
	return s, -c
}
