// collapse.go
// Copyright (C) 2018 Vilhjálmur Þorsteinsson
// This file implements the Collapse Chooser: picking a tile id to commit
// an uncollapsed cell to.

package wfc

import (
	"math/rand"
	"sort"
)

// Chooser picks a tile id to collapse a cell to, given the grid state.
// Implementations may use look-ahead, pure weight, or any other strategy;
// the solver's correctness does not depend on which one is installed.
type Chooser interface {
	Choose(g *Grid, c *Cell, ts *TileSet, mode WeightMode, rng *rand.Rand) int
}

// candidate pairs a tile id with its roulette priority for ranking.
type candidate struct {
	id       int
	priority float64
}

// byPriority implements sort.Interface, ranking candidates from highest
// weighted-random priority to lowest.
type byPriority []candidate

func (b byPriority) Len() int           { return len(b) }
func (b byPriority) Less(i, j int) bool { return b[i].priority > b[j].priority }
func (b byPriority) Swap(i, j int)      { b[i], b[j] = b[j], b[i] }

// LookaheadChooser orders candidates by weighted-random priority and
// accepts the first one that survives a one-step look-ahead: for every
// uncollapsed orthogonal neighbour, the intersection of the neighbour's
// possibilities with the candidate's adjacency set in that direction must
// be non-empty. If no candidate survives, the first (highest-priority)
// candidate is accepted anyway; the resulting contradiction, if any, is
// left for propagation and the backtracker to surface and resolve.
type LookaheadChooser struct{}

func (LookaheadChooser) Choose(g *Grid, c *Cell, ts *TileSet, mode WeightMode, rng *rand.Rand) int {
	ids := possibleTiles(c.Possible)
	cands := make([]candidate, len(ids))
	for i, id := range ids {
		w := ts.Weight(id, mode)
		if w <= 0 {
			w = 1e-9
		}
		cands[i] = candidate{id: id, priority: rng.Float64() * w}
	}
	sort.Sort(byPriority(cands))

	for _, cand := range cands {
		if survivesLookahead(g, c, ts, cand.id) {
			return cand.id
		}
	}
	return cands[0].id
}

func survivesLookahead(g *Grid, c *Cell, ts *TileSet, tileID int) bool {
	for _, d := range []Dir{Up, Down, Left, Right} {
		n := g.Neighbour(c, d)
		if n == nil || n.Collapsed {
			continue
		}
		if n.Possible&ts.Adjacency[tileID][d] == 0 {
			return false
		}
	}
	return true
}

// WeightedChooser ignores look-ahead and always accepts the
// highest-weighted-random candidate. It mirrors a simpler, greedier
// strategy a host may prefer when look-ahead's extra neighbour scan is
// too costly for very large grids.
type WeightedChooser struct{}

func (WeightedChooser) Choose(g *Grid, c *Cell, ts *TileSet, mode WeightMode, rng *rand.Rand) int {
	ids := possibleTiles(c.Possible)
	best := ids[0]
	bestPriority := -1.0
	for _, id := range ids {
		w := ts.Weight(id, mode)
		if w <= 0 {
			w = 1e-9
		}
		p := rng.Float64() * w
		if p > bestPriority {
			bestPriority = p
			best = id
		}
	}
	return best
}
