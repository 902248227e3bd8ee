package sim

import (
	"math"

	"github.com/epidemic-sim/epidemic-sim/sim/sampling"
)

// Population is the structure-of-arrays state of every individual, indexed
// 0..N-1. The static attribute slices are fixed at generation time; Phase,
// PrevStep, NextPhase, and NextStep mutate as the simulation evolves.
type Population struct {
	N int

	Phase     []Phase
	Residence []int
	X, Y      []float64
	Age       []int

	// Susceptibility scales an individual's own infection probability;
	// Infectivity scales the hazard the individual sheds on others while
	// infectious. Both are positive Gamma draws.
	Susceptibility []float64
	Infectivity    []float64

	// PrevStep is the step the current phase was entered. NextPhase and
	// NextStep are the scheduled outcome and step of the next transition,
	// drawn when the current phase was entered; terminal phases hold
	// themselves and NeverStep.
	PrevStep  []int
	NextPhase []Phase
	NextStep  []int
}

// residenceOffsetScale sets the polar offset radius of an individual around
// its residence, as a fraction of the block's placement cell size.
const residenceOffsetScale = 0.35

// GeneratePopulation instantiates every individual over the given
// residences. Individuals are visited residence by residence in member
// order, and each consumes exactly four draws: age bin, age within bin,
// susceptibility, infectivity. Positions take no draws - the k members of
// a residence sit on a ring around it at angles 2*pi*i/k, with the radius
// shrunk by the block's residence density so neighboring rings stay apart.
//
// Everyone starts susceptible with no scheduled transition.
func GeneratePopulation(rng *sampling.Rand, res *Residences, cfg Config) *Population {
	n := 0
	for i := 0; i < res.Len(); i++ {
		n += res.Size(i)
	}

	pop := &Population{
		N:              n,
		Phase:          make([]Phase, n),
		Residence:      make([]int, n),
		X:              make([]float64, n),
		Y:              make([]float64, n),
		Age:            make([]int, n),
		Susceptibility: make([]float64, n),
		Infectivity:    make([]float64, n),
		PrevStep:       make([]int, n),
		NextPhase:      make([]Phase, n),
		NextStep:       make([]int, n),
	}

	binWeights := make([]float64, len(cfg.AgePyramid))
	for i, bin := range cfg.AgePyramid {
		binWeights[i] = bin.Weight
	}

	for i := 0; i < res.Len(); i++ {
		members := res.Members[i]
		k := len(members)
		radius := residenceOffsetScale / float64(res.SubGridSide[res.Block[i]])

		for s, individual := range members {
			bin := cfg.AgePyramid[rng.WeightedIndex(binWeights)]
			pop.Age[individual] = bin.Lo + rng.IntN(bin.Hi-bin.Lo+1)
			pop.Susceptibility[individual] = rng.Gamma(cfg.Susceptibility.Shape, cfg.Susceptibility.Scale)
			pop.Infectivity[individual] = rng.Gamma(cfg.Infectivity.Shape, cfg.Infectivity.Scale)

			angle := 2 * math.Pi * float64(s) / float64(k)
			pop.Residence[individual] = i
			pop.X[individual] = res.X[i] + radius*math.Cos(angle)
			pop.Y[individual] = res.Y[i] + radius*math.Sin(angle)

			pop.Phase[individual] = Susceptible
			pop.PrevStep[individual] = 1
			pop.NextPhase[individual] = Susceptible
			pop.NextStep[individual] = NeverStep
		}
	}

	return pop
}

// CountPhase returns how many individuals are currently in phase p.
func (p *Population) CountPhase(phase Phase) int {
	count := 0
	for _, ph := range p.Phase {
		if ph == phase {
			count++
		}
	}
	return count
}
