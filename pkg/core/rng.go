package core

import "math/rand/v2"

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
// Every generation step constructs its own RNG; nothing in the module draws
// from a process-wide source.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// NewStream creates an RNG for an independent stream of the same seed. Streams
// with different ids never share a sequence, which lets callers give every
// drop or pass its own generator.
func NewStream(seed int64, stream uint64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), stream))}
}

// IntN returns a random int in [0, n). It returns 0 when n <= 0.
func (r *RNG) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return r.r.IntN(n)
}

// Float64 returns a random float in [0, 1).
func (r *RNG) Float64() float64 { return r.r.Float64() }

// Int64 returns a non-negative random int64.
func (r *RNG) Int64() int64 { return r.r.Int64() }

// SubSeeds derives n independent seeds. The sequence is stable for a given
// seed, so adding consumers at the end never changes earlier seeds.
func (r *RNG) SubSeeds(n int) []int64 {
	out := make([]int64, n)
	for i := range out {
		out[i] = r.r.Int64N(1 << 31)
	}
	return out
}

// Source exposes the underlying rand.Rand for advanced use.
func (r *RNG) Source() *rand.Rand { return r.r }
