package sim

import "fmt"

// History is the dense phase record of a run. Column k (steps are 1-based)
// holds every individual's phase at step k; each column is authoritative
// on its own, so reading any step needs no replay. The backing store is a
// single flat slice, one byte per individual per step.
type History struct {
	n    int
	data []Phase
}

// NewHistory returns an empty history for a population of n individuals.
func NewHistory(n int) *History {
	return &History{n: n}
}

// N returns the population size the history records.
func (h *History) N() int {
	return h.n
}

// Steps returns how many step columns have been recorded.
func (h *History) Steps() int {
	if h.n == 0 {
		return 0
	}
	return len(h.data) / h.n
}

// Record appends a snapshot of the given phases as the next step column.
// The snapshot is copied; callers keep ownership of the slice.
func (h *History) Record(phases []Phase) {
	if len(phases) != h.n {
		panic(fmt.Sprintf("snapshot of %d phases recorded into history of %d individuals", len(phases), h.n))
	}
	h.data = append(h.data, phases...)
}

// At returns the phase of the given individual at the given 1-based step.
func (h *History) At(step, individual int) Phase {
	return h.data[(step-1)*h.n+individual]
}

// Column returns the phases of every individual at the given 1-based step.
// The returned slice aliases the history's storage; callers must not
// mutate it.
func (h *History) Column(step int) []Phase {
	lo := (step - 1) * h.n
	return h.data[lo : lo+h.n]
}
