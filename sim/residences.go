package sim

import (
	"fmt"
	"math"

	"github.com/epidemic-sim/epidemic-sim/sim/sampling"
)

// SizeTable is the per-block residence composition: Counts[b][j] is the
// number of residences with j+1 members in block b. For every block the
// counts weighted by size sum exactly to the block's population.
type SizeTable struct {
	MaxSize int
	Counts  [][]int
}

// ResidentsInBlock returns the population covered by block b's residences.
func (t *SizeTable) ResidentsInBlock(b int) int {
	total := 0
	for j, c := range t.Counts[b] {
		total += c * (j + 1)
	}
	return total
}

// NumResidences returns the total residence count across all blocks.
func (t *SizeTable) NumResidences() int {
	total := 0
	for _, counts := range t.Counts {
		for _, c := range counts {
			total += c
		}
	}
	return total
}

// AllocateSizes converts block populations into an exact residence-size
// table. Per block, provisional counts are floor(m*p_j) residences of each
// size j, where m is the block population over the weighted mean size and
// p_j the normalized weight; the unhoused remainder is then covered one
// residence at a time, each size drawn from the weights restricted to
// sizes the remainder can still fill. The loop terminates with the block
// exactly covered; anything else panics, since no input reachable through
// a validated Config can produce it.
func AllocateSizes(rng *sampling.Rand, blocks *BlockGrid, weights []float64) *SizeTable {
	maxSize := len(weights)

	var weightSum, meanSize float64
	for j, w := range weights {
		weightSum += w
		meanSize += w * float64(j+1)
	}
	meanSize /= weightSum

	table := &SizeTable{
		MaxSize: maxSize,
		Counts:  make([][]int, blocks.NumBlocks()),
	}
	for b, population := range blocks.Count {
		counts := make([]int, maxSize)
		table.Counts[b] = counts
		if population == 0 {
			continue
		}

		m := float64(population) / meanSize
		housed := 0
		for j, w := range weights {
			counts[j] = int(m * (w / weightSum))
			housed += counts[j] * (j + 1)
		}

		for housed < population {
			shortfall := population - housed
			limit := maxSize
			if shortfall < limit {
				limit = shortfall
			}
			size := rng.WeightedIndex(weights[:limit]) + 1
			counts[size-1]++
			housed += size
		}

		if housed != population {
			panic(fmt.Sprintf("block %d: residence table covers %d of %d residents", b, housed, population))
		}
	}

	return table
}

// Residences holds every generated residence: its block, its position in
// scenario coordinates, and the indices of its members. Member indices are
// contiguous per residence and assigned in generation order, so residence
// i+1 continues exactly where residence i stopped.
type Residences struct {
	Block   []int
	X, Y    []float64
	Members [][]int

	// SubGridSide[b] is the side length of block b's placement sub-grid,
	// zero for blocks without residences. Population placement reuses it
	// as the local density scale.
	SubGridSide []int
}

// Len returns the number of residences.
func (r *Residences) Len() int {
	return len(r.Block)
}

// Size returns the member count of residence i.
func (r *Residences) Size(i int) int {
	return len(r.Members[i])
}

// BuildResidences instantiates the residences of every block. Each block
// lays a sub-grid of ceil(2*sqrt(count)) cells per axis over its unit
// square and draws one distinct cell per residence, so no two residences
// of a block share a position; a residence sits at the center of its cell.
// Residences are created smallest size first within each block, blocks in
// identifier order.
func BuildResidences(rng *sampling.Rand, blocks *BlockGrid, table *SizeTable) *Residences {
	res := &Residences{
		SubGridSide: make([]int, blocks.NumBlocks()),
	}

	next := 0
	for b := range blocks.Count {
		counts := table.Counts[b]
		nres := 0
		for _, c := range counts {
			nres += c
		}
		if nres == 0 {
			continue
		}

		side := int(math.Ceil(2 * math.Sqrt(float64(nres))))
		res.SubGridSide[b] = side
		cells := rng.SampleWithoutReplacement(side*side, nres)

		row, col := b/blocks.Cols, b%blocks.Cols
		cellIdx := 0
		for j, c := range counts {
			size := j + 1
			for k := 0; k < c; k++ {
				cell := cells[cellIdx]
				cellIdx++

				members := make([]int, size)
				for s := range members {
					members[s] = next
					next++
				}

				res.Block = append(res.Block, b)
				res.X = append(res.X, float64(col)+(float64(cell%side)+0.5)/float64(side))
				res.Y = append(res.Y, float64(row)+(float64(cell/side)+0.5)/float64(side))
				res.Members = append(res.Members, members)
			}
		}
	}

	return res
}
