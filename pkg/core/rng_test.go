package core

import (
	"slices"
	"testing"
)

func TestRNGDeterministic(t *testing.T) {
	a := NewRNG(42)
	b := NewRNG(42)
	for i := 0; i < 100; i++ {
		if a.Float64() != b.Float64() {
			t.Fatalf("sequence diverged at draw %d", i)
		}
	}
}

func TestStreamsAreIndependent(t *testing.T) {
	a := NewStream(42, 1)
	b := NewStream(42, 2)
	same := 0
	for i := 0; i < 32; i++ {
		if a.IntN(1<<30) == b.IntN(1<<30) {
			same++
		}
	}
	if same == 32 {
		t.Fatal("different streams produced identical sequences")
	}
}

func TestSubSeedsStable(t *testing.T) {
	first := NewRNG(9).SubSeeds(4)
	second := NewRNG(9).SubSeeds(8)
	if !slices.Equal(first, second[:4]) {
		t.Fatalf("prefix of sub-seeds changed: %v vs %v", first, second[:4])
	}
	for _, s := range second {
		if s < 0 {
			t.Fatalf("negative sub-seed %d", s)
		}
	}
}

func TestIntNNonPositive(t *testing.T) {
	if got := NewRNG(1).IntN(0); got != 0 {
		t.Fatalf("IntN(0) = %d", got)
	}
}
