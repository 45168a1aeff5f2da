// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// hash_table.go implements the transposition table: a single-probe table
// of fixed size, replacement driven by a generation counter and depth,
// storing the upper 32 bits of the Zobrist key as a verification tag.

package engine

import "unsafe"

const (
	// BoundLower marks a fail-high score: the true value is >= the
	// stored score.
	BoundLower = 1
	// BoundUpper marks a fail-low score: the true value is <= the
	// stored score.
	BoundUpper = 2
	// BoundExact marks an exact score from a non-cutoff search.
	BoundExact = BoundLower | BoundUpper
)

type transEntry struct {
	key   uint32
	move  Move
	date  uint16
	score int16
	depth int8
	bound uint8
}

// TransTable is a fixed-size transposition table indexed by
// key % len(entries), one entry per bucket.
type TransTable struct {
	megabytes int
	entries   []transEntry
	date      uint16
}

// NewTransTable allocates a transposition table of the given size.
func NewTransTable(megabytes int) *TransTable {
	size := 1024 * 1024 * megabytes / int(unsafe.Sizeof(transEntry{}))
	if size < 1 {
		size = 1
	}
	return &TransTable{
		megabytes: megabytes,
		entries:   make([]transEntry, size),
	}
}

// Size returns the table's configured size in megabytes.
func (tt *TransTable) Size() int { return tt.megabytes }

// IncDate advances the table's generation counter, called once per search.
func (tt *TransTable) IncDate() { tt.date++ }

// Clear resets every entry and the generation counter.
func (tt *TransTable) Clear() {
	tt.date = 0
	for i := range tt.entries {
		tt.entries[i] = transEntry{}
	}
}

// Update stores a search result for key. An entry for the same key is
// replaced when the new depth is at least its depth minus 3 or the new
// bound is exact; an entry for a different key is replaced when it is
// from an older generation or the new depth is at least its depth.
func (tt *TransTable) Update(key uint64, depth, score int, bound uint8, move Move) {
	index := key % uint64(len(tt.entries))
	e := &tt.entries[index]
	tag := uint32(key >> 32)

	replace := false
	if e.key == tag {
		replace = depth >= int(e.depth)-3 || bound == BoundExact
	} else {
		replace = e.date != tt.date || depth >= int(e.depth)
	}
	if !replace {
		return
	}

	e.date = tt.date
	e.key = tag
	e.depth = int8(depth)
	e.score = int16(score)
	e.bound = bound
	e.move = move
}

// Read looks up key, returning ok=false on a miss.
func (tt *TransTable) Read(key uint64) (depth, score int, bound uint8, move Move, ok bool) {
	index := key % uint64(len(tt.entries))
	e := &tt.entries[index]
	// Every stored entry has a non-zero bound; a zero bound is an empty slot.
	if e.bound == 0 || e.key != uint32(key>>32) {
		return 0, 0, 0, NullMove, false
	}
	e.date = tt.date
	return int(e.depth), int(e.score), e.bound, e.move, true
}

// valueToTT adjusts a mate score found at ply plies from the search root
// into a ply-independent score suitable for storage: mate distances are
// stored relative to the position itself, not the root.
func valueToTT(value, ply int) int {
	if value >= WinScore {
		return value + ply
	}
	if value <= -WinScore {
		return value - ply
	}
	return value
}

// valueFromTT reverses valueToTT when a stored score is read back at ply
// plies from the root.
func valueFromTT(value, ply int) int {
	if value >= WinScore {
		return value - ply
	}
	if value <= -WinScore {
		return value + ply
	}
	return value
}
