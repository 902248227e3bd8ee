package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clusterTestPopulation(t *testing.T, seed int64, population int) (*PartitionedRNG, *Population) {
	t.Helper()
	cfg := DefaultConfig()
	prng, res := generateTestResidences(t, seed, population)
	return prng, GeneratePopulation(prng.ForSubsystem(SubsystemPopulation), res, cfg)
}

func TestBuildClusterLayer_PartitionsExactlyTheEligible(t *testing.T) {
	prng, pop := clusterTestPopulation(t, 42, 5000)
	layerCfg := ClusterLayerConfig{Name: "schools", MaxSize: 30, DecayExponent: 1.2, MinAge: 4, MaxAge: 18}

	layer := BuildClusterLayer(prng.ForSubsystem(SubsystemClusters), layerCfg, 0.3, pop)

	// THEN: everyone in the age range appears in exactly one group, and
	// GroupOf agrees with the group membership lists.
	inGroup := make([]int, pop.N)
	for i := range inGroup {
		inGroup[i] = -1
	}
	for g, members := range layer.Groups {
		for _, m := range members {
			require.Equal(t, -1, inGroup[m], "individual %d in two groups", m)
			inGroup[m] = g
		}
	}
	for n := 0; n < pop.N; n++ {
		eligible := pop.Age[n] >= 4 && pop.Age[n] <= 18
		if eligible {
			assert.NotEqual(t, -1, inGroup[n], "eligible individual %d unassigned", n)
		} else {
			assert.Equal(t, -1, inGroup[n], "ineligible individual %d assigned", n)
		}
		assert.Equal(t, inGroup[n], layer.GroupOf[n], "individual %d", n)
	}
}

func TestBuildClusterLayer_GroupSizesWithinBounds(t *testing.T) {
	prng, pop := clusterTestPopulation(t, 7, 8000)
	layerCfg := ClusterLayerConfig{Name: "workplaces", MaxSize: 25, DecayExponent: 1.1, MinAge: 19, MaxAge: 65}

	layer := BuildClusterLayer(prng.ForSubsystem(SubsystemClusters), layerCfg, 0.2, pop)

	require.NotEmpty(t, layer.Groups)
	for g, members := range layer.Groups {
		assert.GreaterOrEqual(t, len(members), 1, "group %d", g)
		assert.LessOrEqual(t, len(members), 25, "group %d", g)
	}
}

func TestBuildClusterLayer_SizeDistributionDecays(t *testing.T) {
	// GIVEN a strong decay exponent, small groups must dominate large ones.
	prng, pop := clusterTestPopulation(t, 11, 20000)
	layerCfg := ClusterLayerConfig{Name: "all", MaxSize: 20, DecayExponent: 2.0, MinAge: 0, MaxAge: 200}

	layer := BuildClusterLayer(prng.ForSubsystem(SubsystemClusters), layerCfg, 0.1, pop)

	small, large := 0, 0
	for _, members := range layer.Groups {
		if len(members) <= 3 {
			small++
		}
		if len(members) >= 15 {
			large++
		}
	}
	assert.Greater(t, small, 10*large, "small groups should dominate under decay 2.0")
}

func TestBuildClusterLayer_EmptyEligibleSet(t *testing.T) {
	prng, pop := clusterTestPopulation(t, 3, 1000)
	layerCfg := ClusterLayerConfig{Name: "centenarians", MaxSize: 10, DecayExponent: 1, MinAge: 150, MaxAge: 200}

	layer := BuildClusterLayer(prng.ForSubsystem(SubsystemClusters), layerCfg, 0.5, pop)

	assert.Empty(t, layer.Groups)
	assert.Zero(t, layer.NumMembers())
	for n := 0; n < pop.N; n++ {
		require.Equal(t, -1, layer.GroupOf[n])
	}
}

func TestBuildClusterLayer_MaxSizeOne_AllSingletons(t *testing.T) {
	prng, pop := clusterTestPopulation(t, 5, 500)
	layerCfg := ClusterLayerConfig{Name: "solo", MaxSize: 1, DecayExponent: 1, MinAge: 0, MaxAge: 200}

	layer := BuildClusterLayer(prng.ForSubsystem(SubsystemClusters), layerCfg, 0.5, pop)

	assert.Equal(t, pop.N, len(layer.Groups))
	for g, members := range layer.Groups {
		assert.Len(t, members, 1, "group %d", g)
	}
}

func TestBuildClusterLayer_CarriesNameAndRate(t *testing.T) {
	prng, pop := clusterTestPopulation(t, 9, 300)
	layerCfg := ClusterLayerConfig{Name: "markets", MaxSize: 12, DecayExponent: 0.8, MinAge: 0, MaxAge: 200}

	layer := BuildClusterLayer(prng.ForSubsystem(SubsystemClusters), layerCfg, 0.15, pop)

	assert.Equal(t, "markets", layer.Name)
	assert.Equal(t, 0.15, layer.ContactRate)
}

func TestBuildClusterLayer_Deterministic(t *testing.T) {
	layerCfg := ClusterLayerConfig{Name: "schools", MaxSize: 30, DecayExponent: 1.2, MinAge: 4, MaxAge: 18}
	build := func() *ClusterLayer {
		prng, pop := clusterTestPopulation(t, 42, 4000)
		return BuildClusterLayer(prng.ForSubsystem(SubsystemClusters), layerCfg, 0.3, pop)
	}

	assert.Equal(t, build(), build())
}

func TestClusterSizeWeights_MonotoneDecreasing(t *testing.T) {
	weights := clusterSizeWeights(15, 1.5)

	require.Len(t, weights, 15)
	for i := 1; i < len(weights); i++ {
		assert.Less(t, weights[i], weights[i-1], "weight %d", i)
	}
}

func TestClusterSizeWeights_ZeroExponentIsUniform(t *testing.T) {
	weights := clusterSizeWeights(5, 0)

	for _, w := range weights {
		assert.Equal(t, 0.5, w)
	}
}
