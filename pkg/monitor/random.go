package monitor

import (
	"math/rand/v2"
)

// Rand is the random source behind every probabilistic choice.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// NewRand returns a source seeded with seed, or a randomly seeded one when seed is 0
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func pick[T any](r Rand, items []T) T {
	return items[r.IntN(len(items))]
}

// intBetween returns a uniform integer in [lo, hi]
func intBetween(r Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.IntN(hi-lo+1)
}

func chance(r Rand, p float64) bool {
	return r.Float64() < p
}
