package sim

import (
	"github.com/epidemic-sim/epidemic-sim/sim/sampling"
)

// BlockGrid holds the generated per-block population of the spatial grid.
// Counts are row-major: block b covers row b/Cols, column b%Cols, and spans
// the unit square [col, col+1) x [row, row+1) in scenario coordinates.
type BlockGrid struct {
	Rows, Cols int
	Count      []int
}

// GenerateBlocks spreads population over a rows x cols grid. Blocks are
// visited in identifier order; each visited block draws a count uniformly
// from [1, 2*mean] where mean = population/blocks, capped at the remaining
// shortfall, until the population is exhausted. A shortfall surviving the
// full pass lands on one uniformly drawn block, so the grid total always
// equals population exactly.
func GenerateBlocks(rng *sampling.Rand, population, rows, cols int) *BlockGrid {
	nblocks := rows * cols
	grid := &BlockGrid{
		Rows:  rows,
		Cols:  cols,
		Count: make([]int, nblocks),
	}

	mean := float64(population) / float64(nblocks)
	upper := int(2 * mean)
	if upper < 1 {
		upper = 1
	}

	remaining := population
	for b := 0; b < nblocks && remaining > 0; b++ {
		count := 1 + rng.IntN(upper)
		if count > remaining {
			count = remaining
		}
		grid.Count[b] = count
		remaining -= count
	}
	if remaining > 0 {
		grid.Count[rng.IntN(nblocks)] += remaining
	}

	return grid
}

// NumBlocks returns the number of blocks in the grid.
func (g *BlockGrid) NumBlocks() int {
	return g.Rows * g.Cols
}

// Total returns the summed population over all blocks.
func (g *BlockGrid) Total() int {
	total := 0
	for _, c := range g.Count {
		total += c
	}
	return total
}

// At returns the population of the block at (row, col).
func (g *BlockGrid) At(row, col int) int {
	return g.Count[row*g.Cols+col]
}
