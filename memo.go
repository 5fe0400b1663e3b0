// memo.go
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf.

// This file implements a bounded memoization cache over Synthesize
// results, keyed by (tile-set fingerprint, width, height, seed, weight
// mode, chooser). Repeated identical synthesis requests are common when
// a host re-renders the same seed, and are served from cache instead of
// re-running the solver. A Cache is caller-owned: Synthesize holds no
// package-level cache of its own, so two callers passing distinct Cache
// values (or none) never see each other's entries.

package wfc

import (
	"fmt"
	"sync"

	"github.com/hashicorp/golang-lru/simplelru"
)

// Cache wraps an LRU of bounded size behind a mutex, mirroring the
// lookup-or-compute shape of a DAWG cross-check cache. Pass one to
// Synthesize via WithCache to memoize repeated synthesis requests; a
// Cache may be shared across goroutines and across multiple Synthesize
// call sites.
type Cache struct {
	mux sync.Mutex
	lru *simplelru.LRU
}

// NewCache creates a cache holding up to size recent results. size <= 0
// returns nil, which disables caching: Synthesize given WithCache(nil)
// runs the solver directly. Lookup must not be called on a nil Cache.
func NewCache(size int) *Cache {
	if size <= 0 {
		return nil
	}
	lru, err := simplelru.NewLRU(size, nil)
	if err != nil {
		// Only returned by simplelru for a non-positive size, which is
		// already excluded above.
		panic(err)
	}
	return &Cache{lru: lru}
}

// synthCacheKey incorporates the configured Chooser's concrete type so
// that two Synthesize calls differing only by WithChooser(...) land in
// distinct cache entries instead of colliding.
func synthCacheKey(ts *TileSet, width, height int, seed int64, mode WeightMode, chooser Chooser) string {
	return fmt.Sprintf("%s|%d|%d|%d|%d|%T", ts.Fingerprint(), width, height, seed, mode, chooser)
}

// Lookup returns the cached Solution for key if present, else calls
// fetchFunc, caches, and returns its result. fetchFunc's error results
// are never cached. The Solution returned to the caller, and the one
// retained in the cache, never share Grid backing arrays: a caller that
// mutates a returned grid cannot corrupt a cached entry or another
// holder's copy.
func (sc *Cache) Lookup(key string, fetchFunc func() (*Solution, error)) (*Solution, error, bool) {
	sc.mux.Lock()
	if cached, ok := sc.lru.Get(key); ok {
		sc.mux.Unlock()
		return cloneSolution(cached.(*Solution)), nil, true
	}
	sc.mux.Unlock()

	sol, err := fetchFunc()
	if err != nil {
		return nil, err, false
	}

	sc.mux.Lock()
	sc.lru.Add(key, cloneSolution(sol))
	sc.mux.Unlock()
	return sol, nil, false
}

// cloneSolution deep-copies sol's Grid so the returned Solution shares no
// row backing arrays with the one being cached (or previously cached).
func cloneSolution(sol *Solution) *Solution {
	clone := *sol
	clone.Grid = make([][]int, len(sol.Grid))
	for y, row := range sol.Grid {
		clone.Grid[y] = append([]int(nil), row...)
	}
	return &clone
}
