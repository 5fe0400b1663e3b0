// adjacency_test.go
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf.

package wfc

import "testing"

func TestAdjacencySymmetry(t *testing.T) {
	red := Pixel{R: 255, A: 255}
	green := Pixel{G: 255, A: 255}
	s := NewSample(2, 2)
	s.Set(0, 0, red)
	s.Set(1, 0, green)
	s.Set(0, 1, green)
	s.Set(1, 1, red)

	ts, err := ExtractTiles(s, 2)
	if err != nil {
		t.Fatalf("ExtractTiles failed: %v", err)
	}
	BuildAdjacency(ts)

	dirs := []Dir{Up, Down, Left, Right}
	for a := 0; a < ts.Count(); a++ {
		for _, d := range dirs {
			mask := ts.Adjacency[a][d]
			for b := 0; mask != 0; b++ {
				if mask&1 != 0 {
					opp := ts.Adjacency[b][d.Opposite()]
					if opp&(uint64(1)<<uint(a)) == 0 {
						t.Errorf("adjacency not symmetric: %d in adj[%d][%v] but %d not in adj[%d][%v]", b, a, d, a, b, d.Opposite())
					}
				}
				mask >>= 1
			}
		}
	}
}

func TestAdjacencySelfLoopOnUniformTile(t *testing.T) {
	blue := Pixel{B: 255, A: 255}
	s := uniformSample(3, 3, blue)
	ts, err := ExtractTiles(s, 2)
	if err != nil {
		t.Fatalf("ExtractTiles failed: %v", err)
	}
	BuildAdjacency(ts)

	if ts.Count() != 1 {
		t.Fatalf("expected 1 tile for a uniform sample, got %d", ts.Count())
	}
	for _, d := range []Dir{Up, Down, Left, Right} {
		if ts.Adjacency[0][d]&1 == 0 {
			t.Errorf("the sole tile must be self-adjacent in direction %v", d)
		}
	}
}

func TestOppositeIsInvolution(t *testing.T) {
	for _, d := range []Dir{Up, Down, Left, Right} {
		if d.Opposite().Opposite() != d {
			t.Errorf("Opposite should be its own inverse, failed for %v", d)
		}
	}
}
