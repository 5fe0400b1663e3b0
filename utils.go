// utils.go
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf.

// This file contains general utility functions, adapted from the rune
// helpers of the same name in the original package to operate on ints
// and bitsets instead.

package wfc

import "math/bits"

// popcount returns the number of set bits in a possibility bitset.
func popcount(mask uint64) int {
	return bits.OnesCount64(mask)
}

// containsInt returns true if a slice of ints contains a given value.
func containsInt(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
