package sampling

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_SameSeeds_IdenticalStreams(t *testing.T) {
	// GIVEN two Rands built from the same seed words
	a := New(42, 7)
	b := New(42, 7)

	// THEN interleaved draws of every kind agree value for value
	for i := 0; i < 200; i++ {
		if got, want := a.Float64(), b.Float64(); got != want {
			t.Fatalf("Float64 draw %d: %v != %v", i, got, want)
		}
		if got, want := a.IntN(97), b.IntN(97); got != want {
			t.Fatalf("IntN draw %d: %d != %d", i, got, want)
		}
		if got, want := a.Gamma(2.0, 0.5), b.Gamma(2.0, 0.5); got != want {
			t.Fatalf("Gamma draw %d: %v != %v", i, got, want)
		}
	}
}

func TestNew_DifferentSeeds_DivergentStreams(t *testing.T) {
	a := New(42, 7)
	b := New(43, 7)

	same := 0
	for i := 0; i < 64; i++ {
		if a.Float64() == b.Float64() {
			same++
		}
	}
	assert.Less(t, same, 64, "distinct seeds should not replay the same stream")
}

func TestGamma_MatchesRequestedMoments(t *testing.T) {
	// GIVEN Gamma(shape=2, scale=0.5): mean 1.0, variance 0.5
	r := New(1, 2)
	const n = 200000

	var sum, sumSq float64
	for i := 0; i < n; i++ {
		x := r.Gamma(2.0, 0.5)
		require.Greater(t, x, 0.0, "Gamma draws are strictly positive")
		sum += x
		sumSq += x * x
	}
	mean := sum / n
	variance := sumSq/n - mean*mean

	assert.InDelta(t, 1.0, mean, 0.02)
	assert.InDelta(t, 0.5, variance, 0.03)
}

func TestWeightedIndex_FollowsWeights(t *testing.T) {
	r := New(3, 4)
	weights := []float64{1, 0, 3}

	counts := make([]int, len(weights))
	const n = 40000
	for i := 0; i < n; i++ {
		counts[r.WeightedIndex(weights)]++
	}

	assert.Zero(t, counts[1], "zero-weight index must never be drawn")
	assert.InDelta(t, 0.25, float64(counts[0])/n, 0.02)
	assert.InDelta(t, 0.75, float64(counts[2])/n, 0.02)
}

func TestWeightedIndex_UnnormalizedWeights_SameDistribution(t *testing.T) {
	// Scaling all weights by a constant must not change the draws.
	a := New(9, 9)
	b := New(9, 9)
	wa := []float64{0.2, 0.3, 0.5}
	wb := []float64{2, 3, 5}

	for i := 0; i < 1000; i++ {
		require.Equal(t, a.WeightedIndex(wa), b.WeightedIndex(wb))
	}
}

func TestWeightedIndex_NonPositiveTotal_Panics(t *testing.T) {
	r := New(1, 1)
	assert.Panics(t, func() { r.WeightedIndex([]float64{0, 0}) })
	assert.Panics(t, func() { r.WeightedIndex(nil) })
	assert.Panics(t, func() { r.WeightedIndex([]float64{math.NaN()}) })
}

func TestUniforms_FillsEveryElementInUnitInterval(t *testing.T) {
	r := New(5, 6)
	dst := make([]float64, 512)
	for i := range dst {
		dst[i] = -1
	}

	r.Uniforms(dst)

	for i, u := range dst {
		require.GreaterOrEqual(t, u, 0.0, "element %d", i)
		require.Less(t, u, 1.0, "element %d", i)
	}
}

func TestUniforms_IsPositionallyStable(t *testing.T) {
	// One block fill must equal element-wise sequential draws.
	a := New(11, 12)
	b := New(11, 12)

	block := make([]float64, 100)
	a.Uniforms(block)
	for i := range block {
		require.Equal(t, b.Float64(), block[i], "element %d", i)
	}
}

func TestSampleWithoutReplacement_DistinctAndInRange(t *testing.T) {
	r := New(7, 8)

	got := r.SampleWithoutReplacement(50, 20)
	require.Len(t, got, 20)

	seen := make(map[int]bool, len(got))
	for _, v := range got {
		require.GreaterOrEqual(t, v, 0)
		require.Less(t, v, 50)
		require.False(t, seen[v], "value %d drawn twice", v)
		seen[v] = true
	}
}

func TestSampleWithoutReplacement_KExceedsN_Panics(t *testing.T) {
	r := New(7, 8)
	assert.Panics(t, func() { r.SampleWithoutReplacement(3, 4) })
}
