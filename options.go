// options.go
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf.

// This file defines the functional options accepted by Synthesize.

package wfc

// WeightMode selects how tile selection weight is derived from a tile's
// sample frequency and connectivity. WeightBlend is the default and
// always weights frequency at least as heavily as connectivity.
type WeightMode int

const (
	WeightBlend WeightMode = iota
	WeightFrequencyOnly
	WeightConnectivityOnly
)

// ObserverEvent is passed to an Observer at each yield point.
type ObserverEvent struct {
	Attempt        int
	MaxAttempts    int
	CollapsedCells int
	TotalCells     int
	Grid           *Grid // the solver's live grid, not a copy
}

// Observer is invoked at well-defined yield boundaries (after a
// propagation pass completes, never mid-propagation) so a host can render
// partial progress. The solver's behaviour is identical whether or not an
// Observer is supplied.
type Observer func(ObserverEvent)

// Option configures a Synthesize call.
type Option func(*solverConfig)

type solverConfig struct {
	observer      Observer
	weightMode    WeightMode
	chooser       Chooser
	cache         *Cache
	snapshotEvery int
	maxSnapshots  int
	degreeBonus   float64
	jitterScale   float64
}

func defaultConfig() *solverConfig {
	return &solverConfig{
		weightMode:    WeightBlend,
		chooser:       &LookaheadChooser{},
		snapshotEvery: 10,
		maxSnapshots:  5,
		degreeBonus:   -0.1,
		jitterScale:   0.001,
	}
}

// WithObserver registers a callback invoked at yield points during
// synthesis.
func WithObserver(o Observer) Option {
	return func(c *solverConfig) { c.observer = o }
}

// WithWeightMode overrides how tile selection weight is computed.
func WithWeightMode(m WeightMode) Option {
	return func(c *solverConfig) { c.weightMode = m }
}

// WithChooser overrides the collapse strategy.
func WithChooser(ch Chooser) Option {
	return func(c *solverConfig) { c.chooser = ch }
}

// WithCache memoizes Synthesize results in cache, keyed by tile set,
// dimensions, seed, weight mode, and chooser. Without this option,
// Synthesize caches nothing and keeps no state between calls; the same
// Cache value may be shared across goroutines and across call sites that
// want to see each other's cached results.
func WithCache(cache *Cache) Option {
	return func(c *solverConfig) { c.cache = cache }
}
