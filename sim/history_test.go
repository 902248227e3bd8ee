package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistory_RecordAndReadBack(t *testing.T) {
	h := NewHistory(3)
	require.Zero(t, h.Steps())

	h.Record([]Phase{Susceptible, Susceptible, Exposed})
	h.Record([]Phase{Susceptible, Exposed, Infected})

	assert.Equal(t, 2, h.Steps())
	assert.Equal(t, 3, h.N())

	assert.Equal(t, Exposed, h.At(1, 2))
	assert.Equal(t, Susceptible, h.At(2, 0))
	assert.Equal(t, Infected, h.At(2, 2))

	assert.Equal(t, []Phase{Susceptible, Susceptible, Exposed}, h.Column(1))
	assert.Equal(t, []Phase{Susceptible, Exposed, Infected}, h.Column(2))
}

func TestHistory_RecordCopiesTheSnapshot(t *testing.T) {
	h := NewHistory(2)
	snapshot := []Phase{Susceptible, Susceptible}

	h.Record(snapshot)
	snapshot[0] = Deceased

	assert.Equal(t, Susceptible, h.At(1, 0), "later mutation must not leak into the record")
}

func TestHistory_WrongSnapshotLengthPanics(t *testing.T) {
	h := NewHistory(4)

	assert.Panics(t, func() { h.Record([]Phase{Susceptible}) })
	assert.Panics(t, func() { h.Record(make([]Phase, 5)) })
}

func TestHistory_EachColumnStandsAlone(t *testing.T) {
	// Columns are full snapshots: a phase visible at step k stays visible
	// when reading step k directly, with no reconstruction from earlier
	// steps.
	h := NewHistory(2)
	h.Record([]Phase{Susceptible, Susceptible})
	h.Record([]Phase{Exposed, Susceptible})
	h.Record([]Phase{Infected, Exposed})

	assert.Equal(t, Infected, h.At(3, 0))
	assert.Equal(t, Exposed, h.At(3, 1))
	// Earlier columns are untouched by later ones.
	assert.Equal(t, Susceptible, h.At(1, 0))
	assert.Equal(t, Exposed, h.At(2, 0))
}
