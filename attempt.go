// attempt.go
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf.

// This file implements the Attempt Controller: the outer retry loop that
// seeds a grid, runs the collapse/propagate/backtrack cycle to
// completion or exhaustion, and retries with fresh seeding up to a
// bounded number of attempts.

package wfc

import (
	"context"
	"math"
	"math/rand"
)

// Stats accumulates diagnostics about a Synthesize call, mirroring the
// per-rejection-reason counters a worker-pool retry loop would keep.
type Stats struct {
	Attempts       int
	Contradictions int
	Backtracks     int
	Cancelled      bool
	FromCache      bool
}

// Solution is the result of a successful Synthesize call.
type Solution struct {
	Grid  [][]int // Grid[y][x] = tile id
	Seed  int64
	Stats Stats
}

// Synthesize collapses a width x height grid over the given tile set,
// seeded deterministically by seed, and returns the solved tile-id grid.
// It retries with fresh random seeding up to a bounded number of
// attempts before failing with GenerationFailed. The supplied context is
// checked at yield boundaries (after each propagation pass), mirroring a
// worker-pool candidate generator's cooperative cancellation.
//
// Synthesize holds no state of its own between calls: TileSet is shared
// read-only, and the only caching is an explicit Cache a caller opts
// into with WithCache.
func Synthesize(ctx context.Context, ts *TileSet, width, height int, seed int64, opts ...Option) (*Solution, error) {
	if ts == nil || ts.Count() == 0 {
		return nil, invalidInputf("tile set must contain at least one tile")
	}
	if ts.Adjacency == nil {
		return nil, invalidInputf("tile set adjacency has not been built; call BuildAdjacency first")
	}
	if width < 3 || width > 50 || height < 3 || height > 50 {
		return nil, invalidInputf("grid dimensions must be in [3, 50], got %dx%d", width, height)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.cache != nil {
		key := synthCacheKey(ts, width, height, seed, cfg.weightMode, cfg.chooser)
		sol, err, hit := cfg.cache.Lookup(key, func() (*Solution, error) {
			return synthesizeUncached(ctx, ts, width, height, seed, cfg)
		})
		if err != nil {
			return nil, err
		}
		if hit {
			sol.Stats.FromCache = true
		}
		return sol, nil
	}
	return synthesizeUncached(ctx, ts, width, height, seed, cfg)
}

func synthesizeUncached(ctx context.Context, ts *TileSet, width, height int, seed int64, cfg *solverConfig) (*Solution, error) {
	cells := width * height
	maxAttempts := minInt(12, 4+ceilDiv(cells, 15))
	maxBacktracksPerAttempt := minInt(500, cells*10)
	maxIterationsPerAttempt := 3 * cells

	rng := rand.New(rand.NewSource(seed))
	grid := NewGrid(ts, width, height)
	stats := Stats{}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		stats.Attempts = attempt
		grid.Reset()
		h := newHistory(cfg.snapshotEvery, cfg.maxSnapshots)
		bt := newBacktracker(grid, ts, h, 32)

		if ctx.Err() != nil {
			stats.Cancelled = true
			return nil, cancelledErr(ctx.Err())
		}

		if !seedAttempt(grid, ts, h, rng, cells) {
			continue // seeding itself hit a contradiction; retry fresh
		}

		ok, cancelled := runAttempt(ctx, grid, ts, h, bt, cfg, rng, &stats,
			maxBacktracksPerAttempt, maxIterationsPerAttempt, attempt, maxAttempts)
		if cancelled {
			stats.Cancelled = true
			return nil, cancelledErr(ctx.Err())
		}
		if ok {
			return &Solution{Grid: grid.TileIDs(), Seed: seed, Stats: stats}, nil
		}
	}

	return nil, generationFailedf(&stats,
		"exhausted %d attempts for a %dx%d grid over %d tiles", maxAttempts, width, height, ts.Count())
}

// seedAttempt force-collapses an initial scatter of cells before the main
// loop begins, per the density-scaled seeding schedule. It returns false
// if any seed placement immediately contradicts.
func seedAttempt(g *Grid, ts *TileSet, h *history, rng *rand.Rand, cells int) bool {
	var seedCells []*Cell
	var seedIdx []int

	addSeed := func(c *Cell) {
		idx := c.Y*g.Width + c.X
		if containsInt(seedIdx, idx) {
			return
		}
		seedIdx = append(seedIdx, idx)
		seedCells = append(seedCells, c)
	}

	addSeed(randomCell(g, rng))

	if cells > 50 {
		addSeed(g.At(0, 0))
		addSeed(g.At(g.Width-1, 0))
		addSeed(g.At(0, g.Height-1))
		addSeed(g.At(g.Width-1, g.Height-1))
	}
	if cells >= 100 && cells < 400 {
		n := int(math.Sqrt(float64(cells)) / 2)
		for i := 0; i < n; i++ {
			addSeed(randomCell(g, rng))
		}
	} else if cells >= 400 {
		spacing := int(math.Sqrt(float64(cells)) / 5)
		if spacing < 1 {
			spacing = 1
		}
		for y := 0; y < g.Height; y += spacing {
			for x := 0; x < g.Width; x += spacing {
				addSeed(g.At(x, y))
			}
		}
	}

	for _, c := range seedCells {
		if c.Collapsed {
			continue
		}
		ids := possibleTiles(c.Possible)
		if len(ids) == 0 {
			return false
		}
		tileID := ids[rng.Intn(len(ids))]
		commit(g, ts, h, c, tileID)
		if contradiction := propagate(g, ts, c); contradiction != nil {
			return false
		}
	}
	return true
}

// runAttempt executes the collapse/propagate/backtrack main loop until
// the grid is fully collapsed (success), a budget is exhausted
// (failure, caller retries), or the context is cancelled.
func runAttempt(ctx context.Context, g *Grid, ts *TileSet, h *history, bt *backtracker, cfg *solverConfig,
	rng *rand.Rand, stats *Stats, maxBacktracks, maxIterations, attempt, maxAttempts int) (ok bool, cancelled bool) {

	backtracks := 0
	for iter := 0; iter < maxIterations; iter++ {
		if ctx.Err() != nil {
			return false, true
		}

		c := selectMinEntropyCell(g, ts, cfg, rng)
		if c == nil {
			return true, false // every cell collapsed
		}

		tileID := cfg.chooser.Choose(g, c, ts, cfg.weightMode, rng)
		commit(g, ts, h, c, tileID)
		contradiction := propagate(g, ts, c)

		if contradiction == nil {
			bt.noteSuccess()
		} else {
			stats.Contradictions++
			bt.noteContradiction()
			backtracks++
			stats.Backtracks++
			if backtracks > maxBacktracks || !bt.backtrack() {
				return false, false
			}
		}

		if cfg.observer != nil {
			cfg.observer(ObserverEvent{
				Attempt:        attempt,
				MaxAttempts:    maxAttempts,
				CollapsedCells: len(g.Cells) - len(g.Uncollapsed()),
				TotalCells:     len(g.Cells),
				Grid:           g,
			})
		}
	}
	return g.AllCollapsed(), false
}

// commit collapses c to tileID and records the decision in history.
func commit(g *Grid, ts *TileSet, h *history, c *Cell, tileID int) {
	c.Collapsed = true
	c.TileID = tileID
	c.Possible = uint64(1) << uint(tileID)
	h.record(g, c.X, c.Y, tileID)
}

func randomCell(g *Grid, rng *rand.Rand) *Cell {
	return g.At(rng.Intn(g.Width), rng.Intn(g.Height))
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func ceilDiv(numerator, denom int) int {
	return (numerator + denom - 1) / denom
}
