package core

import "fmt"

// Grid stores a 2D grid of cell values in row-major order.
type Grid[T any] struct {
	W, H int
	data []T
}

// NewGrid allocates a zeroed grid with the given dimensions.
func NewGrid[T any](w, h int) *Grid[T] {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &Grid[T]{W: w, H: h, data: make([]T, w*h)}
}

// GridFrom wraps an existing row-major slice. The slice length must equal w*h.
func GridFrom[T any](w, h int, data []T) (*Grid[T], error) {
	if w <= 0 || h <= 0 || len(data) != w*h {
		return nil, fmt.Errorf("%w: %dx%d grid with %d cells", ErrInvalidDimensions, w, h, len(data))
	}
	return &Grid[T]{W: w, H: h, data: data}, nil
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *Grid[T]) Cells() []T { return g.data }

// Size reports the grid dimensions.
func (g *Grid[T]) Size() Size { return Size{W: g.W, H: g.H} }

// Index returns the linear slice index for coordinates (x, y).
func (g *Grid[T]) Index(x, y int) int { return y*g.W + x }

// Coords is the inverse of Index.
func (g *Grid[T]) Coords(idx int) (int, int) { return idx % g.W, idx / g.W }

// In reports whether (x, y) lies inside the grid.
func (g *Grid[T]) In(x, y int) bool { return x >= 0 && x < g.W && y >= 0 && y < g.H }

// At returns the value at (x, y).
func (g *Grid[T]) At(x, y int) T { return g.data[y*g.W+x] }

// Set stores v at (x, y).
func (g *Grid[T]) Set(x, y int, v T) { g.data[y*g.W+x] = v }

// Wrap applies toroidal wrapping to the provided coordinates.
func (g *Grid[T]) Wrap(x, y int) (int, int) {
	x = (x%g.W + g.W) % g.W
	y = (y%g.H + g.H) % g.H
	return x, y
}

// WrapX wraps only the horizontal coordinate.
func (g *Grid[T]) WrapX(x int) int { return (x%g.W + g.W) % g.W }

// Fill sets every cell to v.
func (g *Grid[T]) Fill(v T) {
	for i := range g.data {
		g.data[i] = v
	}
}

// Clone returns a deep copy of the grid.
func (g *Grid[T]) Clone() *Grid[T] {
	out := &Grid[T]{W: g.W, H: g.H, data: make([]T, len(g.data))}
	copy(out.data, g.data)
	return out
}

// SameSize reports whether both grids share the same dimensions.
func SameSize[A, B any](a *Grid[A], b *Grid[B]) bool {
	if a == nil || b == nil {
		return false
	}
	return a.W == b.W && a.H == b.H
}

// CheckSize returns ErrInvalidDimensions when b does not match a. Names are used
// in the error message.
func CheckSize[A, B any](nameA string, a *Grid[A], nameB string, b *Grid[B]) error {
	if a == nil || b == nil {
		return fmt.Errorf("%w: missing %s or %s grid", ErrInvalidDimensions, nameA, nameB)
	}
	if !SameSize(a, b) {
		return fmt.Errorf("%w: %s is %dx%d, %s is %dx%d", ErrInvalidDimensions, nameA, a.W, a.H, nameB, b.W, b.H)
	}
	return nil
}
