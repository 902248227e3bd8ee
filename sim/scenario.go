package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Scenario is the static synthetic world a simulation evolves over: block
// grid, residences, population, and cluster layers. Generation fixes it;
// evolution only mutates the population's phase and schedule slices.
type Scenario struct {
	Config     Config
	Blocks     *BlockGrid
	Residences *Residences
	Pop        *Population

	// Layers holds the cluster layers in configuration order. The hazard
	// engine iterates them in this order, never over a map.
	Layers []*ClusterLayer

	// ResidenceRate is the contact rate of the residence layer, split out
	// of Config.ContactRates so the hazard path does no map lookups.
	ResidenceRate float64
}

// GenerateScenario runs the full generation pipeline: block populations,
// residence sizes and placement, individual attributes, cluster layers.
// Every stage draws from its own subsystem stream, so a (Config, key) pair
// always yields the same scenario, and changes to how one stage consumes
// randomness leave the other stages' draws untouched.
func GenerateScenario(cfg Config, rng *PartitionedRNG) (*Scenario, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	blocks := GenerateBlocks(rng.ForSubsystem(SubsystemBlocks), cfg.Population, cfg.Grid.Rows, cfg.Grid.Cols)
	logrus.Infof("generated %dx%d grid: %d individuals across %d blocks",
		cfg.Grid.Rows, cfg.Grid.Cols, blocks.Total(), blocks.NumBlocks())

	resRNG := rng.ForSubsystem(SubsystemResidences)
	table := AllocateSizes(resRNG, blocks, cfg.ResidenceSizeWeights)
	residences := BuildResidences(resRNG, blocks, table)
	logrus.Infof("placed %d residences (max size %d)", residences.Len(), cfg.MaxResidenceSize())

	pop := GeneratePopulation(rng.ForSubsystem(SubsystemPopulation), residences, cfg)

	clusterRNG := rng.ForSubsystem(SubsystemClusters)
	layers := make([]*ClusterLayer, 0, len(cfg.ClusterLayers))
	for _, layerCfg := range cfg.ClusterLayers {
		layer := BuildClusterLayer(clusterRNG, layerCfg, cfg.ContactRates[layerCfg.Name], pop)
		logrus.Infof("layer %q: %d groups over %d members",
			layer.Name, len(layer.Groups), layer.NumMembers())
		layers = append(layers, layer)
	}

	return &Scenario{
		Config:        cfg,
		Blocks:        blocks,
		Residences:    residences,
		Pop:           pop,
		Layers:        layers,
		ResidenceRate: cfg.ContactRates[LayerResidences],
	}, nil
}
