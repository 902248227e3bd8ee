package sim

import (
	"math"

	"github.com/epidemic-sim/epidemic-sim/sim/sampling"
)

// ClusterLayer is one secondary-contact category: a partition of its
// age-eligible individuals into bounded groups. Groups never cross layers;
// an individual is in at most one group per layer.
type ClusterLayer struct {
	Name        string
	ContactRate float64

	// Groups holds member indices; GroupOf[n] is the group of individual n
	// within this layer, -1 for individuals the layer does not cover.
	Groups  [][]int
	GroupOf []int
}

// NumMembers returns how many individuals the layer covers.
func (l *ClusterLayer) NumMembers() int {
	total := 0
	for _, g := range l.Groups {
		total += len(g)
	}
	return total
}

// clusterSizeWeights returns the draw weights for group sizes 1..maxSize:
// weight(size) = 1/(1+size^alpha), a slow decay favoring small groups.
func clusterSizeWeights(maxSize int, alpha float64) []float64 {
	weights := make([]float64, maxSize)
	for size := 1; size <= maxSize; size++ {
		weights[size-1] = 1 / (1 + math.Pow(float64(size), alpha))
	}
	return weights
}

// BuildClusterLayer partitions the individuals inside the layer's age range
// into groups. The eligible indices are shuffled once, then consumed by
// drawing a size from the decay weights and cutting that many off the
// front; the final group truncates to whatever remains. Every eligible
// individual lands in exactly one group.
func BuildClusterLayer(rng *sampling.Rand, cfg ClusterLayerConfig, rate float64, pop *Population) *ClusterLayer {
	layer := &ClusterLayer{
		Name:        cfg.Name,
		ContactRate: rate,
		GroupOf:     make([]int, pop.N),
	}
	for n := range layer.GroupOf {
		layer.GroupOf[n] = -1
	}

	var eligible []int
	for n := 0; n < pop.N; n++ {
		if pop.Age[n] >= cfg.MinAge && pop.Age[n] <= cfg.MaxAge {
			eligible = append(eligible, n)
		}
	}
	if len(eligible) == 0 {
		return layer
	}

	rng.Shuffle(len(eligible), func(i, j int) {
		eligible[i], eligible[j] = eligible[j], eligible[i]
	})

	weights := clusterSizeWeights(cfg.MaxSize, cfg.DecayExponent)
	for pos := 0; pos < len(eligible); {
		size := rng.WeightedIndex(weights) + 1
		if size > len(eligible)-pos {
			size = len(eligible) - pos
		}

		group := eligible[pos : pos+size]
		idx := len(layer.Groups)
		layer.Groups = append(layer.Groups, group)
		for _, m := range group {
			layer.GroupOf[m] = idx
		}
		pos += size
	}

	return layer
}
