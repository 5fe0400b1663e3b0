// grid.go
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf.

// This file implements the Superposition Grid: a 2D array of Cells, each
// holding a bitset of still-possible tile ids, with a cached pointer to
// each cell's four orthogonal neighbours (adapted from the board's
// cached-adjacency pattern).

package wfc

// Cell is one slot in the output grid.
type Cell struct {
	X, Y      int
	Possible  uint64
	Collapsed bool
	TileID    int // meaningful only when Collapsed

	// neighbours[d] is the cell in direction d, or nil at the border.
	neighbours [dirCount]*Cell
}

// Empty reports whether the cell has no remaining possibilities: a
// contradiction.
func (c *Cell) Empty() bool {
	return !c.Collapsed && c.Possible == 0
}

// Grid is the width x height array of Cells being solved.
type Grid struct {
	Width, Height int
	Cells         []*Cell // row-major, Cells[y*Width+x]
	ts            *TileSet
}

// NewGrid allocates a Grid of the given dimensions, every cell initialized
// to the full possibility set of ts, with neighbour pointers wired once
// up front.
func NewGrid(ts *TileSet, width, height int) *Grid {
	g := &Grid{Width: width, Height: height, ts: ts}
	g.Cells = make([]*Cell, width*height)
	all := ts.AllMask()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			g.Cells[y*width+x] = &Cell{X: x, Y: y, Possible: all}
		}
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := g.At(x, y)
			for _, d := range []Dir{Up, Down, Left, Right} {
				nx, ny := x+d.DX(), y+d.DY()
				if nx >= 0 && nx < width && ny >= 0 && ny < height {
					c.neighbours[d] = g.At(nx, ny)
				}
			}
		}
	}
	return g
}

// At returns the cell at (x, y).
func (g *Grid) At(x, y int) *Cell {
	return g.Cells[y*g.Width+x]
}

// Neighbour returns the cell in direction d from c, or nil at the border.
func (g *Grid) Neighbour(c *Cell, d Dir) *Cell {
	return c.neighbours[d]
}

// Reset restores every cell to the full possibility set and clears all
// collapse state. Neighbour pointers are untouched since grid dimensions
// never change within an attempt.
func (g *Grid) Reset() {
	all := g.ts.AllMask()
	for _, c := range g.Cells {
		c.Possible = all
		c.Collapsed = false
		c.TileID = 0
	}
}

// Clone deep-copies the grid's cell state (not the neighbour topology,
// which is immutable for a given width/height) for use as a Snapshot.
func (g *Grid) Clone() []Cell {
	out := make([]Cell, len(g.Cells))
	for i, c := range g.Cells {
		out[i] = Cell{X: c.X, Y: c.Y, Possible: c.Possible, Collapsed: c.Collapsed, TileID: c.TileID}
	}
	return out
}

// Restore overwrites the grid's cell state from a previously captured
// Clone.
func (g *Grid) Restore(snap []Cell) {
	for i, c := range g.Cells {
		c.Possible = snap[i].Possible
		c.Collapsed = snap[i].Collapsed
		c.TileID = snap[i].TileID
	}
}

// Uncollapsed returns every cell that has not yet been committed to a
// single tile.
func (g *Grid) Uncollapsed() []*Cell {
	out := make([]*Cell, 0, len(g.Cells))
	for _, c := range g.Cells {
		if !c.Collapsed {
			out = append(out, c)
		}
	}
	return out
}

// AllCollapsed reports whether every cell has been committed.
func (g *Grid) AllCollapsed() bool {
	for _, c := range g.Cells {
		if !c.Collapsed {
			return false
		}
	}
	return true
}

// TileIDs materializes the solved grid as a width x height array of tile
// ids, for Solution.Grid. It does not check for uncollapsed cells, which
// are reported with whatever TileID they hold (0 after Reset); callers
// must only call this after a successful attempt.
func (g *Grid) TileIDs() [][]int {
	out := make([][]int, g.Height)
	for y := 0; y < g.Height; y++ {
		row := make([]int, g.Width)
		for x := 0; x < g.Width; x++ {
			row[x] = g.At(x, y).TileID
		}
		out[y] = row
	}
	return out
}
