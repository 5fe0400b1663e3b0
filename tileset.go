// tileset.go
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf.

// This file implements the Pattern Extractor: a periodic NxN window scan
// of a Sample, deduplicated by exact pixel equality, with per-pattern
// frequency tallying.

package wfc

import (
	"crypto/sha1"
	"encoding/binary"
	"encoding/hex"
)

// MaxTiles is the largest number of distinct patterns a TileSet can hold.
// The solver addresses possibility sets as uint64 bitsets, so a run that
// would need more than 64 tile ids is rejected at extraction time rather
// than silently truncated.
const MaxTiles = 64

// Pattern is one distinct NxN window extracted from a Sample.
type Pattern struct {
	ID     int
	Pixels []Pixel // row-major, Size*Size entries
}

// TileSet is the immutable alphabet of patterns extracted from a sample,
// together with their sample frequency and (once BuildAdjacency has run)
// their directional adjacency bitsets.
type TileSet struct {
	Size      int // tile side length N
	Tiles     []*Pattern
	Frequency []int // Frequency[id], parallel to Tiles

	// Adjacency[id][dir] is the bitset of tile ids permitted in
	// direction dir relative to tile id. Populated by BuildAdjacency.
	Adjacency [][4]uint64

	// ConnectivityWeight[id] = 1 + popcount of all four adjacency sets.
	ConnectivityWeight []int

	allMask uint64 // bitset with bits 0..len(Tiles)-1 set
}

// Count returns the number of distinct tiles in the set.
func (ts *TileSet) Count() int {
	return len(ts.Tiles)
}

// AllMask returns a bitset with every tile id's bit set.
func (ts *TileSet) AllMask() uint64 {
	return ts.allMask
}

// Weight returns the blended selection weight for a tile, per WeightMode.
func (ts *TileSet) Weight(id int, mode WeightMode) float64 {
	freq := float64(ts.Frequency[id])
	conn := float64(ts.ConnectivityWeight[id])
	switch mode {
	case WeightFrequencyOnly:
		return freq
	case WeightConnectivityOnly:
		return conn
	default: // WeightBlend
		return (3*freq + conn) / 4
	}
}

// patternKey builds a stable comparable key from a window's raw pixel
// bytes, used to dedupe patterns during extraction.
func patternKey(pixels []Pixel) string {
	buf := make([]byte, len(pixels)*4)
	for i, p := range pixels {
		buf[i*4] = p.R
		buf[i*4+1] = p.G
		buf[i*4+2] = p.B
		buf[i*4+3] = p.A
	}
	return string(buf)
}

// ExtractTiles scans sample with a toroidal NxN window at every origin
// (x, y), deduplicating patterns by exact pixel equality and tallying
// occurrence frequency. Patterns are assigned ids in first-seen scan
// order (y-major, then x).
func ExtractTiles(sample *Sample, tileSize int) (*TileSet, error) {
	if tileSize < 1 {
		return nil, invalidInputf("tile size must be >= 1, got %d", tileSize)
	}
	if sample == nil || sample.Width < 1 || sample.Height < 1 {
		return nil, invalidInputf("sample must have positive dimensions")
	}

	ts := &TileSet{Size: tileSize}
	index := make(map[string]int, 64)

	for y := 0; y < sample.Height; y++ {
		for x := 0; x < sample.Width; x++ {
			window := make([]Pixel, tileSize*tileSize)
			for dy := 0; dy < tileSize; dy++ {
				for dx := 0; dx < tileSize; dx++ {
					window[dy*tileSize+dx] = sample.At(x+dx, y+dy)
				}
			}
			key := patternKey(window)
			if id, ok := index[key]; ok {
				ts.Frequency[id]++
				continue
			}
			id := len(ts.Tiles)
			if id >= MaxTiles {
				return nil, invalidInputf(
					"sample yields more than %d distinct %dx%d patterns; reduce tile size or simplify the sample",
					MaxTiles, tileSize, tileSize)
			}
			index[key] = id
			ts.Tiles = append(ts.Tiles, &Pattern{ID: id, Pixels: window})
			ts.Frequency = append(ts.Frequency, 1)
		}
	}

	ts.allMask = (uint64(1) << uint(len(ts.Tiles))) - 1
	return ts, nil
}

// Fingerprint returns a stable content hash of the tile set, used as part
// of the synthesis memoization cache key and reported by wfcserve's
// /extract endpoint.
func (ts *TileSet) Fingerprint() string {
	h := sha1.New()
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(ts.Size))
	h.Write(buf[:])
	for _, t := range ts.Tiles {
		h.Write([]byte(patternKey(t.Pixels)))
	}
	return hex.EncodeToString(h.Sum(nil))
}
