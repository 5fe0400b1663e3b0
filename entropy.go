// entropy.go
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf.

// This file implements minimum-entropy cell selection: weighted Shannon
// entropy over a cell's remaining possibilities, with a degree bonus that
// favours cells with more collapsed neighbours and a small jitter term to
// break exact ties.

package wfc

import (
	"math"
	"math/rand"
)

// possibleTiles returns the tile ids set in mask, in ascending order.
func possibleTiles(mask uint64) []int {
	out := make([]int, 0, popcount(mask))
	for id := 0; mask != 0; id++ {
		if mask&1 != 0 {
			out = append(out, id)
		}
		mask >>= 1
	}
	return out
}

// cellEntropy computes the weighted Shannon entropy of a cell's
// possibility set, plus the degree bonus and jitter term described in
// the entropy selector design.
func cellEntropy(g *Grid, c *Cell, ts *TileSet, mode WeightMode, degreeBonus float64, jitterScale float64, rng *rand.Rand) float64 {
	var sum, weightedLogSum float64
	for _, id := range possibleTiles(c.Possible) {
		w := ts.Weight(id, mode)
		if w <= 0 {
			w = 1e-9
		}
		sum += w
		weightedLogSum += w * math.Log(w)
	}
	if sum <= 0 {
		return math.Inf(1)
	}
	h := math.Log(sum) - weightedLogSum/sum

	collapsedNeighbours := 0
	for _, d := range []Dir{Up, Down, Left, Right} {
		if n := g.Neighbour(c, d); n != nil && n.Collapsed {
			collapsedNeighbours++
		}
	}
	h += degreeBonus * float64(collapsedNeighbours)
	h += rng.Float64() * jitterScale
	return h
}

// selectMinEntropyCell scans every uncollapsed cell and returns the one
// with the lowest weighted entropy, or nil if every cell is collapsed.
func selectMinEntropyCell(g *Grid, ts *TileSet, cfg *solverConfig, rng *rand.Rand) *Cell {
	var best *Cell
	bestH := math.Inf(1)
	for _, c := range g.Cells {
		if c.Collapsed {
			continue
		}
		h := cellEntropy(g, c, ts, cfg.weightMode, cfg.degreeBonus, cfg.jitterScale, rng)
		if h < bestH {
			bestH = h
			best = c
		}
	}
	return best
}
