package sim

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/epidemic-sim/epidemic-sim/sim/sampling"
)

// Simulator evolves one generated scenario through discrete steps. All
// phase and schedule writes happen inside step; the hazard read of each
// step sees only the fully written state of the previous one.
type Simulator struct {
	Scenario *Scenario
	History  *History

	// Clock is the last completed 1-based step. Construction completes
	// step 1, the initial snapshot.
	Clock int

	rng      *sampling.Rand
	engine   *hazardEngine
	hazards  []float64
	uniforms []float64
}

// NewSimulator validates the configuration, generates the scenario, seeds
// the initially exposed individuals, and records the step-1 snapshot.
func NewSimulator(cfg Config, key SimulationKey) (*Simulator, error) {
	prng := NewPartitionedRNG(key)
	sc, err := GenerateScenario(cfg, prng)
	if err != nil {
		return nil, err
	}
	return newSimulatorFromScenario(sc, prng.ForSubsystem(SubsystemEvolution)), nil
}

// newSimulatorFromScenario wires a simulator over an already generated
// scenario, drawing all evolution randomness from rng. Initial exposure
// draws come first on the stream, then entries are applied in ascending
// index order so their schedule draws land in a fixed order too.
func newSimulatorFromScenario(sc *Scenario, rng *sampling.Rand) *Simulator {
	s := &Simulator{
		Scenario: sc,
		History:  NewHistory(sc.Pop.N),
		rng:      rng,
		engine:   newHazardEngine(sc, sc.Config.Run.Workers),
		hazards:  make([]float64, sc.Pop.N),
		uniforms: make([]float64, sc.Pop.N),
	}

	exposed := append([]int(nil), sc.Config.Run.InitialExposed...)
	if len(exposed) == 0 && sc.Config.Run.InitialExposedCount > 0 {
		exposed = rng.SampleWithoutReplacement(sc.Pop.N, sc.Config.Run.InitialExposedCount)
	}
	sort.Ints(exposed)
	for _, n := range exposed {
		applyEntry(rng, sc.Pop, n, Exposed, 1, sc.Config.Transitions)
	}
	if len(exposed) > 0 {
		logrus.Infof("seeded %d initially exposed individuals", len(exposed))
	}

	s.History.Record(sc.Pop.Phase)
	s.Clock = 1
	return s
}

// step advances the population from step k-1 to step k. Hazards are
// computed first from the pre-step snapshot and consume no randomness;
// then one uniform per individual is drawn as a block, so individual n's
// infection draw is always the n-th uniform of the step regardless of what
// happens to anyone else; then transitions are applied in index order,
// with branch and dwell draws consumed only by individuals that actually
// transition.
func (s *Simulator) step(k int) {
	s.engine.compute(s.hazards)
	s.rng.Uniforms(s.uniforms)

	pop := s.Scenario.Pop
	transitions := s.Scenario.Config.Transitions
	dt := s.Scenario.Config.Run.StepDays

	for n := 0; n < pop.N; n++ {
		switch {
		case pop.Phase[n] == Susceptible:
			p := -math.Expm1(-s.hazards[n] * pop.Susceptibility[n] * dt)
			if s.uniforms[n] < p {
				applyEntry(s.rng, pop, n, Exposed, k, transitions)
			}
		case k >= pop.NextStep[n]:
			applyEntry(s.rng, pop, n, pop.NextPhase[n], k, transitions)
		}
	}
}

// Evolve runs steps Clock+1 through the configured step count, recording a
// snapshot after each, and returns the completed history. Cancellation is
// checked at step boundaries only; a cancelled run returns the context's
// error and leaves the simulator at its last completed step. There is no
// early exit: an extinct epidemic still steps to the end.
func (s *Simulator) Evolve(ctx context.Context) (*History, error) {
	run := s.Scenario.Config.Run
	for k := s.Clock + 1; k <= run.Steps; k++ {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("evolution stopped after step %d: %w", s.Clock, ctx.Err())
		default:
		}

		s.step(k)
		s.Clock = k
		s.History.Record(s.Scenario.Pop.Phase)

		if run.ProgressEvery > 0 && k%run.ProgressEvery == 0 {
			var counts [NumPhases]int
			for _, p := range s.Scenario.Pop.Phase {
				counts[p]++
			}
			logrus.Infof("step %d/%d: susceptible=%d exposed=%d infected=%d asymptomatic=%d recovered=%d deceased=%d",
				k, run.Steps,
				counts[Susceptible], counts[Exposed], counts[Infected],
				counts[Asymptomatic], counts[Recovered], counts[Deceased])
		}
	}
	return s.History, nil
}

// Run generates and evolves one simulation: the whole pipeline for a
// (config, key) pair in a single call.
func Run(ctx context.Context, cfg Config, key SimulationKey) (*History, error) {
	s, err := NewSimulator(cfg, key)
	if err != nil {
		return nil, err
	}
	return s.Evolve(ctx)
}
