// Package sim provides the agent-based stochastic epidemic simulation core:
// scenario generation and the discrete-step evolution engine.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - scenario.go: the generation pipeline wiring blocks → residences → population → clusters
//   - evolution.go: the step loop, per-step draw order, and history recording
//   - transition.go: the phase state machine with its scheduled look-ahead
//
// # Architecture
//
// Generation builds an immutable Scenario (block grid, residences,
// individual attributes, cluster layers); evolution then advances only the
// population's phase and schedule slices, one strictly ordered step at a
// time:
//   - blocks.go / residences.go / population.go / clusters.go: the four generators
//   - hazard.go: per-step force of infection from residence and cluster co-members
//   - history.go / summary.go / report.go: dense phase record and its reductions
//   - ensemble.go: independent replicates under consecutive seeds
//   - sim/sampling/: the seeded draw collaborators (uniform, weighted, Gamma, shuffle)
//
// # Determinism
//
// Every stochastic stage draws from its own named stream derived in rng.go
// from the master SimulationKey, and every routine documents its draw
// order. A (Config, SimulationKey) pair therefore fixes the scenario and
// the full evolution trace, and changing how one stage consumes randomness
// never perturbs the draws of another.
package sim
