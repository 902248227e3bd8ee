package sim

import "fmt"

// Report distills a summarized run into its headline epidemic outcomes.
type Report struct {
	Population int
	Steps      int

	FinalSusceptible int
	FinalRecovered   int
	FinalDeceased    int

	// AttackRate is the fraction of the population that ever left the
	// susceptible phase.
	AttackRate float64

	// PeakInfectious is the largest simultaneous count of shedding
	// individuals, at PeakStep; both zero when nobody was ever infectious.
	PeakInfectious int
	PeakStep       int

	// ExtinctionStep is the first step with no exposed or infectious
	// individuals left, zero when the epidemic outlives the run.
	ExtinctionStep int
}

// BuildReport computes the headline outcomes of a summarized run.
func BuildReport(s *Summary) *Report {
	r := &Report{Population: s.N, Steps: s.Steps()}
	if s.Steps() == 0 {
		return r
	}

	last := s.Steps()
	r.FinalSusceptible = s.At(last, Susceptible)
	r.FinalRecovered = s.At(last, Recovered)
	r.FinalDeceased = s.At(last, Deceased)
	r.AttackRate = float64(s.EverInfected(last)) / float64(s.N)

	for k := 1; k <= last; k++ {
		if infectious := s.Infectious(k); infectious > r.PeakInfectious {
			r.PeakInfectious = infectious
			r.PeakStep = k
		}
		if r.ExtinctionStep == 0 && s.Active(k) == 0 {
			r.ExtinctionStep = k
		}
	}
	return r
}

// Print displays the report at the end of a run.
func (r *Report) Print() {
	fmt.Println("=== Epidemic Report ===")
	fmt.Printf("Population           : %d\n", r.Population)
	fmt.Printf("Steps                : %d\n", r.Steps)
	fmt.Printf("Attack Rate          : %.2f%%\n", 100*r.AttackRate)
	fmt.Printf("Final Susceptible    : %d\n", r.FinalSusceptible)
	fmt.Printf("Final Recovered      : %d\n", r.FinalRecovered)
	fmt.Printf("Final Deceased       : %d\n", r.FinalDeceased)
	if r.PeakStep > 0 {
		fmt.Printf("Peak Infectious      : %d (step %d)\n", r.PeakInfectious, r.PeakStep)
	}
	if r.ExtinctionStep > 0 {
		fmt.Printf("Extinct At Step      : %d\n", r.ExtinctionStep)
	} else {
		fmt.Println("Extinct At Step      : never (active cases at end of run)")
	}
}
