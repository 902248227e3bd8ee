// Package sampling provides the seeded random collaborators the scenario
// generators and the evolution engine draw from.
//
// A Rand owns exactly one PCG stream. Every draw — uniform, integer,
// shuffle, Gamma — consumes that same stream, so a fixed call order yields
// a fixed value sequence and two Rands built from the same seed words
// produce identical histories. Callers that need isolation between
// concerns hold separate Rand instances rather than sharing one.
package sampling

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Rand is a deterministic random source with the distribution draws the
// simulation needs layered on top of math/rand/v2. The embedded *rand.Rand
// and the Gamma sampler share one underlying PCG, so interleaved calls
// stay on a single reproducible stream.
//
// Not safe for concurrent use.
type Rand struct {
	*rand.Rand
	src *rand.PCG
}

// New returns a Rand seeded with the two PCG seed words.
func New(seed1, seed2 uint64) *Rand {
	src := rand.NewPCG(seed1, seed2)
	return &Rand{Rand: rand.New(src), src: src}
}

// Gamma draws from the Gamma distribution with the given shape and scale.
// distuv parameterizes by rate, hence the 1/scale.
func (r *Rand) Gamma(shape, scale float64) float64 {
	return distuv.Gamma{Alpha: shape, Beta: 1 / scale, Src: r.src}.Rand()
}

// WeightedIndex draws an index with probability proportional to its weight.
// Weights need not be normalized but must be non-negative with a positive
// total; a zero or negative total panics, since a draw from an empty
// distribution has no meaningful answer.
func (r *Rand) WeightedIndex(weights []float64) int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	if !(total > 0) {
		panic(fmt.Sprintf("sampling: weighted draw from total weight %v", total))
	}
	u := r.Float64() * total
	for i, w := range weights {
		if u < w {
			return i
		}
		u -= w
	}
	// Float64 rounding can leave u a hair past the last weight.
	return len(weights) - 1
}

// Uniforms fills dst with independent uniform [0,1) draws, one per element
// in index order.
func (r *Rand) Uniforms(dst []float64) {
	for i := range dst {
		dst[i] = r.Float64()
	}
}

// SampleWithoutReplacement returns k distinct integers from [0, n), in the
// order the underlying permutation produced them.
func (r *Rand) SampleWithoutReplacement(n, k int) []int {
	if k > n {
		panic(fmt.Sprintf("sampling: %d draws without replacement from %d values", k, n))
	}
	return r.Perm(n)[:k]
}
