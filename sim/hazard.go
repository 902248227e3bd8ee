package sim

import (
	"fmt"
	"math"
	"sync"
)

// hazardEngine computes the per-step force of infection for every
// individual. It works in two passes: an accumulation pass summing the
// infectivity of infectious members per residence and per cluster group,
// then a composition pass deriving each susceptible individual's hazard
// from the sums of the groups it belongs to. The composition pass is a
// pure read of the sums with a fixed per-individual accumulation order
// (residence first, then layers in configuration order), so fanning it
// out across workers changes nothing, not even the low bits.
type hazardEngine struct {
	sc      *Scenario
	workers int

	resSum   []float64
	layerSum [][]float64
}

func newHazardEngine(sc *Scenario, workers int) *hazardEngine {
	if workers < 1 {
		workers = 1
	}
	e := &hazardEngine{
		sc:       sc,
		workers:  workers,
		resSum:   make([]float64, sc.Residences.Len()),
		layerSum: make([][]float64, len(sc.Layers)),
	}
	for i, layer := range sc.Layers {
		e.layerSum[i] = make([]float64, len(layer.Groups))
	}
	return e
}

// infectiousSum adds up the infectivity of the infectious members, in
// member order.
func infectiousSum(pop *Population, members []int) float64 {
	sum := 0.0
	for _, m := range members {
		if pop.Phase[m].Infectious() {
			sum += pop.Infectivity[m]
		}
	}
	return sum
}

// compute fills dst[n] with the hazard of individual n for the current
// population state. Non-susceptible individuals get exactly zero. The
// call consumes no randomness.
func (e *hazardEngine) compute(dst []float64) {
	pop := e.sc.Pop
	for r, members := range e.sc.Residences.Members {
		e.resSum[r] = infectiousSum(pop, members)
	}
	for li, layer := range e.sc.Layers {
		for g, members := range layer.Groups {
			e.layerSum[li][g] = infectiousSum(pop, members)
		}
	}

	if e.workers == 1 {
		e.compose(dst, 0, pop.N)
		return
	}

	var wg sync.WaitGroup
	chunk := (pop.N + e.workers - 1) / e.workers
	for w := 0; w < e.workers; w++ {
		lo := w * chunk
		if lo >= pop.N {
			break
		}
		hi := lo + chunk
		if hi > pop.N {
			hi = pop.N
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			e.compose(dst, lo, hi)
		}(lo, hi)
	}
	wg.Wait()
}

// compose derives hazards for individuals [lo, hi). A group contributes
// only when the individual has at least one co-member; singleton groups
// contribute exactly zero.
func (e *hazardEngine) compose(dst []float64, lo, hi int) {
	pop := e.sc.Pop
	res := e.sc.Residences
	for n := lo; n < hi; n++ {
		if pop.Phase[n] != Susceptible {
			dst[n] = 0
			continue
		}

		hazard := 0.0
		r := pop.Residence[n]
		if size := len(res.Members[r]); size > 1 {
			hazard += e.sc.ResidenceRate * e.resSum[r] / float64(size-1)
		}
		for li, layer := range e.sc.Layers {
			g := layer.GroupOf[n]
			if g < 0 {
				continue
			}
			if size := len(layer.Groups[g]); size > 1 {
				hazard += layer.ContactRate * e.layerSum[li][g] / float64(size-1)
			}
		}

		if hazard < 0 || math.IsNaN(hazard) || math.IsInf(hazard, 0) {
			panic(fmt.Sprintf("hazard for individual %d is %v; population state is corrupt", n, hazard))
		}
		dst[n] = hazard
	}
}

// pullHazard recomputes individual n's hazard by scanning its own
// residence and groups directly, without the engine's shared sums. It is
// the reference the engine is checked against: both walk members in the
// same order, so agreement is exact, not approximate.
func pullHazard(sc *Scenario, n int) float64 {
	pop := sc.Pop
	if pop.Phase[n] != Susceptible {
		return 0
	}

	hazard := 0.0
	r := pop.Residence[n]
	if members := sc.Residences.Members[r]; len(members) > 1 {
		hazard += sc.ResidenceRate * infectiousSum(pop, members) / float64(len(members)-1)
	}
	for _, layer := range sc.Layers {
		g := layer.GroupOf[n]
		if g < 0 {
			continue
		}
		if members := layer.Groups[g]; len(members) > 1 {
			hazard += layer.ContactRate * infectiousSum(pop, members) / float64(len(members)-1)
		}
	}
	return hazard
}
