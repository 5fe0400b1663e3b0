// history.go
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf.

// This file implements the append-only decision log and the periodic
// full-grid snapshots used to recover from contradictions. Propagation-
// induced narrowings are not recorded here; they are reconstructed by
// replaying the log against a restored snapshot.

package wfc

// HistoryEntry is one deliberate collapse decision (not a propagation
// outcome).
type HistoryEntry struct {
	X, Y   int
	TileID int
}

// Snapshot is a full grid copy taken after a given number of history
// entries, used as a fast rewind point.
type Snapshot struct {
	HistoryLen int
	Cells      []Cell
}

// history tracks collapse decisions and periodic snapshots for one
// synthesis attempt.
type history struct {
	entries       []HistoryEntry
	snapshots     []Snapshot
	snapshotEvery int
	maxSnapshots  int
}

func newHistory(snapshotEvery, maxSnapshots int) *history {
	return &history{snapshotEvery: snapshotEvery, maxSnapshots: maxSnapshots}
}

func (h *history) reset() {
	h.entries = h.entries[:0]
	h.snapshots = h.snapshots[:0]
}

// record appends a decision and, if the decision count has reached a
// snapshot boundary, captures the grid. At most maxSnapshots are kept,
// oldest discarded first (FIFO).
func (h *history) record(g *Grid, x, y, tileID int) {
	h.entries = append(h.entries, HistoryEntry{X: x, Y: y, TileID: tileID})
	if h.snapshotEvery > 0 && len(h.entries)%h.snapshotEvery == 0 {
		snap := Snapshot{HistoryLen: len(h.entries), Cells: g.Clone()}
		h.snapshots = append(h.snapshots, snap)
		if len(h.snapshots) > h.maxSnapshots {
			h.snapshots = h.snapshots[1:]
		}
	}
}

// truncate drops history entries beyond newLen and discards any snapshot
// captured past that point.
func (h *history) truncate(newLen int) {
	if newLen < len(h.entries) {
		h.entries = h.entries[:newLen]
	}
	for len(h.snapshots) > 0 && h.snapshots[len(h.snapshots)-1].HistoryLen > newLen {
		h.snapshots = h.snapshots[:len(h.snapshots)-1]
	}
}

// latestSnapshot returns the most recent snapshot whose HistoryLen is at
// most maxLen, or nil if none qualifies.
func (h *history) latestSnapshot(maxLen int) *Snapshot {
	for i := len(h.snapshots) - 1; i >= 0; i-- {
		if h.snapshots[i].HistoryLen <= maxLen {
			return &h.snapshots[i]
		}
	}
	return nil
}
