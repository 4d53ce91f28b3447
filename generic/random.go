package generic

import (
	"math/rand/v2"
)

// =============================================================================
// RNG - Single seeded stream for the whole run
// =============================================================================

// RNG is the only source of randomness in a simulation. One seed drives
// every draw, so two runs with the same seed and config are identical as long
// as draws happen in the same order (iterate slices, never maps).
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a PCG-backed generator from a seed.
func NewRNG(seed int64) *RNG {
	s := uint64(seed)
	return &RNG{r: rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15))}
}

// Float returns a uniform draw in [0, 1).
func (g *RNG) Float() float64 { return g.r.Float64() }

// Uniform returns a uniform draw in [lo, hi).
func (g *RNG) Uniform(lo, hi float64) float64 { return lo + (hi-lo)*g.r.Float64() }

// Normal returns a draw from N(mean, sd).
func (g *RNG) Normal(mean, sd float64) float64 { return mean + sd*g.r.NormFloat64() }

// IntRange returns a uniform integer in [lo, hi].
func (g *RNG) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + g.r.IntN(hi-lo+1)
}

// IntN returns a uniform integer in [0, n).
func (g *RNG) IntN(n int) int { return g.r.IntN(n) }

// Chance reports whether a U(0,1) draw falls below p.
func (g *RNG) Chance(p float64) bool { return g.r.Float64() < p }

// Choose picks one option with probability proportional to its weight.
// It consumes exactly one draw. Panics on an empty slice.
func Choose[T any](g *RNG, options []Weighted[T]) T {
	total := 0.0
	for _, o := range options {
		total += o.Weight
	}
	x := g.Float() * total
	for _, o := range options {
		if x < o.Weight {
			return o.Value
		}
		x -= o.Weight
	}
	return options[len(options)-1].Value
}

// Pick returns a uniformly chosen element.
func Pick[T any](g *RNG, xs []T) T {
	return xs[g.IntN(len(xs))]
}
