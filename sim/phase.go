package sim

import "fmt"

// Phase is the epidemiological stage an individual is in. The integer
// values follow the fixed enumeration order used everywhere a phase indexes
// a table: history columns, summary counts, CSV exports.
type Phase uint8

const (
	Susceptible Phase = iota
	Exposed
	Infected
	Asymptomatic
	Recovered
	Deceased

	// NumPhases is the number of phases; valid Phase values are [0, NumPhases).
	NumPhases = 6
)

// phaseNames is indexed by Phase.
var phaseNames = [NumPhases]string{
	"susceptible",
	"exposed",
	"infected",
	"asymptomatic",
	"recovered",
	"deceased",
}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return fmt.Sprintf("phase(%d)", uint8(p))
}

// Infectious reports whether an individual in this phase sheds infection.
// Exposed individuals incubate without shedding.
func (p Phase) Infectious() bool {
	return p == Infected || p == Asymptomatic
}

// Terminal reports whether this phase is absorbing: once entered it is
// never left, and no further transition is scheduled.
func (p Phase) Terminal() bool {
	return p == Recovered || p == Deceased
}

// Phases returns all phases in enumeration order. Callers iterating
// count tables range over this rather than hand-rolling the order.
func Phases() [NumPhases]Phase {
	return [NumPhases]Phase{Susceptible, Exposed, Infected, Asymptomatic, Recovered, Deceased}
}
