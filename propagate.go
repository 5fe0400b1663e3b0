// propagate.go
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf.

// This file implements the Propagator: a worklist algorithm that narrows
// every affected cell's possibility set to stay arc-consistent with
// already-collapsed neighbours. Uncollapsed neighbours contribute no
// constraint at this step; this is AC-2-style, not full AC-3 over all
// superpositions, by design.

package wfc

// propagate seeds the worklist with the orthogonal neighbours of seed and
// narrows outward. It returns the first cell found empty (a
// contradiction), or nil if propagation completed without one.
func propagate(g *Grid, ts *TileSet, seed *Cell) *Cell {
	queued := make(map[*Cell]bool)
	worklist := make([]*Cell, 0, 8)

	enqueue := func(c *Cell) {
		if c == nil || c.Collapsed || queued[c] {
			return
		}
		queued[c] = true
		worklist = append(worklist, c)
	}

	for _, d := range []Dir{Up, Down, Left, Right} {
		enqueue(g.Neighbour(seed, d))
	}

	for len(worklist) > 0 {
		c := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		if c.Collapsed {
			continue
		}

		narrowed, changed := narrow(g, ts, c)
		if !changed {
			continue
		}
		c.Possible = narrowed
		if c.Possible == 0 {
			return c
		}
		for _, d := range []Dir{Up, Down, Left, Right} {
			enqueue(g.Neighbour(c, d))
		}
	}
	return nil
}

// narrow computes the new possibility set for c given only its collapsed
// neighbours' adjacency constraints, and reports whether it differs from
// c's current possibilities.
func narrow(g *Grid, ts *TileSet, c *Cell) (uint64, bool) {
	newPossible := c.Possible
	for _, d := range []Dir{Up, Down, Left, Right} {
		n := g.Neighbour(c, d)
		if n == nil || !n.Collapsed {
			continue
		}
		newPossible &= ts.Adjacency[n.TileID][d.Opposite()]
	}
	return newPossible, newPossible != c.Possible
}
