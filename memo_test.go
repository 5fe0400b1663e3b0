// memo_test.go
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf.

package wfc

import (
	"errors"
	"testing"
)

func TestSynthCacheLookupCachesResult(t *testing.T) {
	sc := NewCache(4)
	calls := 0
	fetch := func() (*Solution, error) {
		calls++
		return &Solution{Seed: 1, Grid: [][]int{{0, 1}, {1, 0}}}, nil
	}

	sol1, err, hit1 := sc.Lookup("k", fetch)
	if err != nil || hit1 {
		t.Fatalf("first lookup should miss and succeed, got hit=%v err=%v", hit1, err)
	}
	sol2, err, hit2 := sc.Lookup("k", fetch)
	if err != nil || !hit2 {
		t.Fatalf("second lookup should hit the cache, got hit=%v err=%v", hit2, err)
	}
	if sol1 == sol2 || &sol1.Grid[0][0] == &sol2.Grid[0][0] {
		t.Errorf("cached lookup must return an independent Solution, not an alias of the stored one")
	}
	if sol2.Seed != sol1.Seed {
		t.Errorf("cached lookup should return equivalent data, got seed %d want %d", sol2.Seed, sol1.Seed)
	}
	sol1.Grid[0][0] = 99
	if sol2.Grid[0][0] == 99 {
		t.Errorf("mutating one returned Solution's Grid must not affect another")
	}
	if calls != 1 {
		t.Errorf("fetchFunc should only run once, ran %d times", calls)
	}
}

func TestSynthCacheDoesNotCacheErrors(t *testing.T) {
	sc := NewCache(4)
	wantErr := errors.New("boom")
	calls := 0
	fetch := func() (*Solution, error) {
		calls++
		return nil, wantErr
	}

	_, err1, _ := sc.Lookup("k", fetch)
	if !errors.Is(err1, wantErr) {
		t.Fatalf("expected the fetch error to propagate, got %v", err1)
	}
	_, err2, _ := sc.Lookup("k", fetch)
	if !errors.Is(err2, wantErr) {
		t.Fatalf("expected the fetch error to propagate on retry, got %v", err2)
	}
	if calls != 2 {
		t.Errorf("a failed fetch must not be cached, expected 2 calls, got %d", calls)
	}
}

func TestNewCacheDisabled(t *testing.T) {
	sc := NewCache(0)
	if sc != nil {
		t.Errorf("size <= 0 should disable the cache")
	}
}
