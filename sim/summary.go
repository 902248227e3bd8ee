package sim

// Summary is the per-step compartment count table of a run: Counts[k-1][p]
// is the number of individuals in phase p at 1-based step k, with the
// phase columns in enumeration order.
type Summary struct {
	N      int
	Counts [][NumPhases]int
}

// Summarize reduces a phase history to its per-step compartment counts.
// Every row sums to the population size, since each individual is in
// exactly one phase per step.
func Summarize(h *History) *Summary {
	s := &Summary{
		N:      h.N(),
		Counts: make([][NumPhases]int, h.Steps()),
	}
	for k := 1; k <= h.Steps(); k++ {
		row := &s.Counts[k-1]
		for _, p := range h.Column(k) {
			row[p]++
		}
	}
	return s
}

// Steps returns the number of recorded steps.
func (s *Summary) Steps() int {
	return len(s.Counts)
}

// At returns the count of individuals in the given phase at 1-based step k.
func (s *Summary) At(step int, p Phase) int {
	return s.Counts[step-1][p]
}

// EverInfected returns how many individuals had left the susceptible phase
// by step k.
func (s *Summary) EverInfected(step int) int {
	return s.N - s.At(step, Susceptible)
}

// Infectious returns the number of shedding individuals at step k.
func (s *Summary) Infectious(step int) int {
	return s.At(step, Infected) + s.At(step, Asymptomatic)
}

// Active returns the number of individuals carrying the disease at step k,
// shedding or not.
func (s *Summary) Active(step int) int {
	return s.At(step, Exposed) + s.Infectious(step)
}
