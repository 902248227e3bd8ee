package sim

import (
	"hash/fnv"

	"github.com/epidemic-sim/epidemic-sim/sim/sampling"
)

// === SimulationKey ===

// SimulationKey uniquely identifies a reproducible simulation run.
// Two simulations with the same SimulationKey and identical configuration
// MUST produce bit-for-bit identical results.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// === Subsystem Constants ===

// Each stage of the pipeline draws from its own named stream, so changing
// how one stage consumes randomness never perturbs the draws another stage
// sees for the same key.
const (
	// SubsystemBlocks is the RNG subsystem for block population counts.
	SubsystemBlocks = "blocks"

	// SubsystemResidences is the RNG subsystem for residence-size
	// allocation and residence placement.
	SubsystemResidences = "residences"

	// SubsystemPopulation is the RNG subsystem for per-individual
	// attribute draws.
	SubsystemPopulation = "population"

	// SubsystemClusters is the RNG subsystem for cluster-layer formation.
	SubsystemClusters = "clusters"

	// SubsystemEvolution is the RNG subsystem for the evolution loop:
	// infection uniforms, branch draws, and dwell draws.
	SubsystemEvolution = "evolution"
)

// === PartitionedRNG ===

// PartitionedRNG provides deterministic, isolated RNG streams per subsystem.
//
// Derivation: the stream for a subsystem is a PCG seeded with the two words
// (masterSeed, fnv1a64(subsystemName)). Streams therefore depend only on
// the key and the name, never on the order subsystems first ask for them.
//
// Thread-safety: NOT thread-safe. Must be called from a single goroutine.
type PartitionedRNG struct {
	key        SimulationKey
	subsystems map[string]*sampling.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*sampling.Rand),
	}
}

// ForSubsystem returns the deterministically-seeded RNG for the named
// subsystem. The same subsystem name always returns the same instance
// (cached). Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) *sampling.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}

	rng := sampling.New(uint64(p.key), fnv1a64(name))
	p.subsystems[name] = rng
	return rng
}

// Key returns the SimulationKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return h.Sum64()
}
