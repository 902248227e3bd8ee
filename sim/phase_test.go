package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhase_EnumerationOrderIsStable(t *testing.T) {
	// The integer values are a wire-adjacent contract: history bytes,
	// summary columns, and exports all index by them.
	assert.Equal(t, Phase(0), Susceptible)
	assert.Equal(t, Phase(1), Exposed)
	assert.Equal(t, Phase(2), Infected)
	assert.Equal(t, Phase(3), Asymptomatic)
	assert.Equal(t, Phase(4), Recovered)
	assert.Equal(t, Phase(5), Deceased)
	assert.Equal(t, 6, NumPhases)
}

func TestPhase_String(t *testing.T) {
	tests := []struct {
		phase Phase
		want  string
	}{
		{Susceptible, "susceptible"},
		{Exposed, "exposed"},
		{Infected, "infected"},
		{Asymptomatic, "asymptomatic"},
		{Recovered, "recovered"},
		{Deceased, "deceased"},
		{Phase(17), "phase(17)"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.phase.String())
	}
}

func TestPhase_Infectious_OnlyInfectedAndAsymptomatic(t *testing.T) {
	for _, p := range Phases() {
		want := p == Infected || p == Asymptomatic
		assert.Equal(t, want, p.Infectious(), "phase %s", p)
	}
}

func TestPhase_Terminal_OnlyRecoveredAndDeceased(t *testing.T) {
	for _, p := range Phases() {
		want := p == Recovered || p == Deceased
		assert.Equal(t, want, p.Terminal(), "phase %s", p)
	}
}

func TestPhases_CoversEveryValueInOrder(t *testing.T) {
	all := Phases()
	assert.Len(t, all, NumPhases)
	for i, p := range all {
		assert.Equal(t, Phase(i), p)
	}
}
