package core

import "sort"

// Size describes the dimensions of a grid.
type Size struct {
	W int
	H int
}

// Cells returns W*H.
func (s Size) Cells() int { return s.W * s.H }

// Sim defines the contract the viewer drives. Reset regenerates every derived
// field from the seed, Step advances the iterative part of the generation by
// one pass and Cells exposes a palette-indexed display buffer.
type Sim interface {
	Name() string
	Size() Size
	Reset(seed int64)
	Step()
	Cells() []uint8
}

// Layer names one displayable field of a layered sim.
type Layer struct {
	Key   string
	Label string
}

// Layered is implemented by sims that can switch the field shown in Cells.
type Layered interface {
	Layers() []Layer
	ActiveLayer() string
	SetLayer(key string) bool
}

// Factory constructs a Sim using an optional configuration map.
type Factory func(cfg map[string]string) Sim

var sims = map[string]Factory{}

// Register adds a simulation factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	sims[name] = f
}

// Sims exposes the registry of available simulation factories.
func Sims() map[string]Factory {
	return sims
}

// SimNames lists registered sims in lexical order.
func SimNames() []string {
	names := make([]string, 0, len(sims))
	for name := range sims {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
