// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// history.go implements the history heuristic used to order quiet moves:
// a main table indexed by side/from/to plus two continuation tables
// indexed by the previous one and two plies' piece/to-square, each
// updated as an exponential moving average toward +-historyMax.

package engine

const (
	historyMax          = 1 << 14
	continuationTableLen = 1024
)

// moveOrderContext carries the indices a history lookup or update needs
// in addition to the move itself: the side to move and the
// continuation-history slots for the previous ply (counter move) and the
// ply before that (follow-up move), if any.
type moveOrderContext struct {
	side         Color
	counterIndex int // -1 if unavailable
	followIndex  int // -1 if unavailable
}

// historyTable is the history heuristic: a main side/from/to table plus
// per-previous-move continuation tables.
type historyTable struct {
	main           [ColorArraySize * 64 * 64]int16
	continuation   [continuationTableLen][continuationTableLen]int16
}

func newHistoryTable() *historyTable {
	return &historyTable{}
}

func (h *historyTable) clear() {
	for i := range h.main {
		h.main[i] = 0
	}
	for i := range h.continuation {
		for j := range h.continuation[i] {
			h.continuation[i][j] = 0
		}
	}
}

func sideFromToIndex(side Color, m Move) int {
	return int(side)<<12 ^ int(m.From())<<6 ^ int(m.To())
}

// pieceSquareIndex indexes the continuation-history tables by the
// moving side, the figure that moved and the destination square.
func pieceSquareIndex(side Color, m Move) int {
	return int(side-White)<<9 ^ int(m.Piece().Figure())<<6 ^ int(m.To())
}

// ReadTotal returns the combined history score for m under context.
func (h *historyTable) ReadTotal(context moveOrderContext, m Move) int {
	result := int(h.main[sideFromToIndex(context.side, m)])
	pi := pieceSquareIndex(context.side, m)
	if context.counterIndex >= 0 {
		result += int(h.continuation[context.counterIndex][pi])
	}
	if context.followIndex >= 0 {
		result += int(h.continuation[context.followIndex][pi])
	}
	return result
}

// Update rewards bestMove and penalizes every quiet move searched before
// it, scaling the bonus with depth^2 capped at 400.
func (h *historyTable) Update(context moveOrderContext, quietsSearched []Move, bestMove Move, depth int) {
	bonus := depth * depth
	if bonus > 400 {
		bonus = 400
	}

	for _, m := range quietsSearched {
		if m == bestMove {
			break
		}
		updateHistoryEntry(&h.main[sideFromToIndex(context.side, m)], bonus, false)
		pi := pieceSquareIndex(context.side, m)
		if context.counterIndex >= 0 {
			updateHistoryEntry(&h.continuation[context.counterIndex][pi], bonus, false)
		}
		if context.followIndex >= 0 {
			updateHistoryEntry(&h.continuation[context.followIndex][pi], bonus, false)
		}
	}

	updateHistoryEntry(&h.main[sideFromToIndex(context.side, bestMove)], bonus, true)
	pi := pieceSquareIndex(context.side, bestMove)
	if context.counterIndex >= 0 {
		updateHistoryEntry(&h.continuation[context.counterIndex][pi], bonus, true)
	}
	if context.followIndex >= 0 {
		updateHistoryEntry(&h.continuation[context.followIndex][pi], bonus, true)
	}
}

func updateHistoryEntry(v *int16, bonus int, good bool) {
	newVal := -historyMax
	if good {
		newVal = historyMax
	}
	*v += int16((newVal - int(*v)) * bonus / 512)
}
