// entropy_test.go
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf.

package wfc

import (
	"math/rand"
	"testing"
)

func TestSelectMinEntropyCellPrefersFewerPossibilities(t *testing.T) {
	ts := buildCheckerTileSet(t)
	g := NewGrid(ts, 3, 3)
	rng := rand.New(rand.NewSource(1))
	cfg := defaultConfig()

	// Narrow one cell down to a single possibility; it should be picked
	// over the rest, which still hold the full set.
	constrained := g.At(1, 1)
	constrained.Possible = 1

	best := selectMinEntropyCell(g, ts, cfg, rng)
	if best != constrained {
		t.Errorf("expected the most-constrained cell to be selected, got (%d,%d)", best.X, best.Y)
	}
}

func TestSelectMinEntropyCellSkipsCollapsed(t *testing.T) {
	ts := buildCheckerTileSet(t)
	g := NewGrid(ts, 3, 3)
	rng := rand.New(rand.NewSource(1))
	cfg := defaultConfig()

	for _, c := range g.Cells {
		c.Collapsed = true
	}
	g.At(2, 2).Collapsed = false
	g.At(2, 2).Possible = 1

	best := selectMinEntropyCell(g, ts, cfg, rng)
	if best != g.At(2, 2) {
		t.Errorf("expected the sole uncollapsed cell to be selected")
	}
}

func TestSelectMinEntropyCellReturnsNilWhenAllCollapsed(t *testing.T) {
	ts := buildCheckerTileSet(t)
	g := NewGrid(ts, 3, 3)
	rng := rand.New(rand.NewSource(1))
	cfg := defaultConfig()

	for _, c := range g.Cells {
		c.Collapsed = true
	}
	if best := selectMinEntropyCell(g, ts, cfg, rng); best != nil {
		t.Errorf("expected nil when every cell is collapsed, got (%d,%d)", best.X, best.Y)
	}
}
