// backtrack_test.go
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf.

package wfc

import "testing"

func TestRollbackDepthSchedule(t *testing.T) {
	cases := []struct {
		recent, historyLen, want int
	}{
		{0, 100, 2},
		{1, 100, 2},
		{2, 100, 4},
		{3, 100, 4},
		{4, 100, 8},
		{6, 100, 8},
		{7, 100, 32},
		{10, 100, 32},
	}
	for _, c := range cases {
		got := rollbackDepth(c.recent, c.historyLen, 32)
		if got != c.want {
			t.Errorf("rollbackDepth(%d, %d, 32) = %d, want %d", c.recent, c.historyLen, got, c.want)
		}
	}
}

func TestRollbackDepthNeverExceedsHistoryLen(t *testing.T) {
	got := rollbackDepth(10, 3, 32)
	if got > 3 {
		t.Errorf("rollbackDepth must not exceed the available history length, got %d for historyLen=3", got)
	}
}

func TestBacktrackerReplaysSurvivingHistory(t *testing.T) {
	ts := buildCheckerTileSet(t)
	g := NewGrid(ts, 4, 4)
	h := newHistory(10, 5)
	bt := newBacktracker(g, ts, h, 32)

	c1 := g.At(0, 0)
	commit(g, ts, h, c1, 0)
	propagate(g, ts, c1)

	c2 := g.At(1, 0)
	ids := possibleTiles(c2.Possible)
	if len(ids) == 0 {
		t.Fatalf("expected at least one possibility at (1,0) after one collapse")
	}
	commit(g, ts, h, c2, ids[0])
	propagate(g, ts, c2)

	bt.noteContradiction()
	if !bt.backtrack() {
		t.Fatalf("backtrack on a consistent history should not itself contradict")
	}
	if len(h.entries) > 2 {
		t.Errorf("backtrack must not grow the history, got length %d", len(h.entries))
	}
}
