// grid_test.go
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf.

package wfc

import "testing"

func TestNewGridNeighbourWiring(t *testing.T) {
	ts := buildCheckerTileSet(t)
	g := NewGrid(ts, 3, 3)

	corner := g.At(0, 0)
	if g.Neighbour(corner, Up) != nil || g.Neighbour(corner, Left) != nil {
		t.Errorf("top-left corner must have nil Up/Left neighbours")
	}
	if g.Neighbour(corner, Right) != g.At(1, 0) {
		t.Errorf("top-left corner's Right neighbour must be (1,0)")
	}
	if g.Neighbour(corner, Down) != g.At(0, 1) {
		t.Errorf("top-left corner's Down neighbour must be (0,1)")
	}
}

func TestGridCollapsedInvariant(t *testing.T) {
	ts := buildCheckerTileSet(t)
	g := NewGrid(ts, 3, 3)
	c := g.At(1, 1)
	c.Collapsed = true
	c.TileID = 2
	c.Possible = uint64(1) << 2

	if popcount(c.Possible) != 1 {
		t.Errorf("a collapsed cell must have exactly one possibility")
	}
}

func TestGridCloneRestoreRoundTrip(t *testing.T) {
	ts := buildCheckerTileSet(t)
	g := NewGrid(ts, 3, 3)
	g.At(0, 0).Collapsed = true
	g.At(0, 0).TileID = 1
	g.At(0, 0).Possible = 1 << 1

	snap := g.Clone()
	g.At(0, 0).Collapsed = false
	g.At(0, 0).Possible = ts.AllMask()

	g.Restore(snap)
	if !g.At(0, 0).Collapsed || g.At(0, 0).TileID != 1 {
		t.Errorf("Restore did not recover the cloned cell state")
	}
}

func TestGridResetClearsAllCells(t *testing.T) {
	ts := buildCheckerTileSet(t)
	g := NewGrid(ts, 3, 3)
	g.At(1, 1).Collapsed = true
	g.At(1, 1).Possible = 1

	g.Reset()
	for _, c := range g.Cells {
		if c.Collapsed || c.Possible != ts.AllMask() {
			t.Fatalf("Reset did not restore cell (%d,%d) to the full possibility set", c.X, c.Y)
		}
	}
}
