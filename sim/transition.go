package sim

import (
	"fmt"
	"math"

	"github.com/epidemic-sim/epidemic-sim/sim/sampling"
)

// NeverStep is the scheduled-transition sentinel for absorbing phases: no
// reachable step count compares past it, so a terminal individual is
// skipped by the evolution loop forever.
const NeverStep = math.MaxInt

// Dwell-time weight tables, indexed by dwell minus one step. The supports
// are fixed (incubation 1..8 steps, infectious and asymptomatic periods
// 1..16 steps) and the masses follow textbook epidemic curves: incubation
// peaking around four days, clearance around a week, with the canonical
// calibration at one day per step. The two exposed tables differ because
// the asymptomatic branch incubates slightly faster.
var (
	dwellExposedToInfected = []float64{
		0.03, 0.10, 0.19, 0.23, 0.19, 0.13, 0.08, 0.05,
	}
	dwellExposedToAsymptomatic = []float64{
		0.05, 0.14, 0.21, 0.21, 0.16, 0.12, 0.07, 0.04,
	}
	dwellInfectedExit = []float64{
		0.01, 0.02, 0.04, 0.06, 0.09, 0.11, 0.12, 0.12,
		0.11, 0.09, 0.07, 0.06, 0.04, 0.03, 0.02, 0.01,
	}
	dwellAsymptomaticExit = []float64{
		0.02, 0.05, 0.08, 0.11, 0.13, 0.13, 0.12, 0.10,
		0.08, 0.06, 0.04, 0.03, 0.02, 0.01, 0.01, 0.01,
	}
)

// nextTransition draws the scheduled outcome for an individual that just
// entered the given phase: which phase comes next and after how many
// steps. Draw counts per entered phase are fixed - exposed and infected
// consume one branch uniform then one dwell draw, asymptomatic consumes
// one dwell draw. Phases with no outgoing transition panic; callers handle
// terminal phases before coming here.
func nextTransition(rng *sampling.Rand, entered Phase, t TransitionConfig) (Phase, int) {
	switch entered {
	case Exposed:
		if rng.Float64() < t.PAsymptomatic {
			return Asymptomatic, 1 + rng.WeightedIndex(dwellExposedToAsymptomatic)
		}
		return Infected, 1 + rng.WeightedIndex(dwellExposedToInfected)

	case Infected:
		if rng.Float64() < t.PDecease {
			return Deceased, 1 + rng.WeightedIndex(dwellInfectedExit)
		}
		return Recovered, 1 + rng.WeightedIndex(dwellInfectedExit)

	case Asymptomatic:
		return Recovered, 1 + rng.WeightedIndex(dwellAsymptomaticExit)
	}

	panic(fmt.Sprintf("no transition rule for phase %s", entered))
}

// applyEntry records that individual n entered the given phase at step k
// and draws its scheduled look-ahead. Terminal phases schedule nothing:
// NextPhase pins to the phase itself and NextStep to NeverStep, which
// makes re-applying them a no-op by construction.
func applyEntry(rng *sampling.Rand, pop *Population, n int, entered Phase, k int, t TransitionConfig) {
	pop.Phase[n] = entered
	pop.PrevStep[n] = k

	if entered.Terminal() {
		pop.NextPhase[n] = entered
		pop.NextStep[n] = NeverStep
		return
	}

	next, dwell := nextTransition(rng, entered, t)
	pop.NextPhase[n] = next
	pop.NextStep[n] = k + dwell
}
