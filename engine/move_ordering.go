// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// move_ordering.go assigns each pseudo-legal move an ordering key so the
// search tries the move most likely to cause a cutoff first: the TT
// move, then winning captures by MVV/LVA, then killers, then quiets by
// history. Losing captures are keyed by MVV/LVA alone, so they sort among
// the quiets according to the quiets' history values.

package engine

import "sort"

const (
	orderTransMove    = 102000
	orderGoodCapture  = 101000
	orderKiller1      = 100001
	orderKiller2      = 100000
)

var figureOrderValue = [FigureArraySize]int{0, 1, 2, 3, 4, 5, 6}

// mvvlva scores a capture/promotion by most-valuable-victim,
// least-valuable-attacker: heavier victims and promotions sort first,
// heavier attackers sort a capture of equal victim later.
func mvvlva(m Move) int {
	return 8*(figureOrderValue[m.Capture().Figure()]+figureOrderValue[m.Promotion().Figure()]) - figureOrderValue[m.Piece().Figure()]
}

// scoredMove pairs a move with its ordering key.
type scoredMove struct {
	move Move
	key  int
}

// moveOrderer scores and yields pseudo-legal moves best-first for the
// main search.
type moveOrderer struct {
	context moveOrderContext
	transMove, killer1, killer2 Move
	history *historyTable
}

func newMoveOrderer(side Color, transMove, killer1, killer2, counterMove, followMove Move, history *historyTable) *moveOrderer {
	ctx := moveOrderContext{side: side, counterIndex: -1, followIndex: -1}
	if counterMove != NullMove {
		ctx.counterIndex = pieceSquareIndex(side.Opposite(), counterMove)
	}
	if followMove != NullMove {
		ctx.followIndex = pieceSquareIndex(side, followMove)
	}
	return &moveOrderer{
		context:   ctx,
		transMove: transMove,
		killer1:   killer1,
		killer2:   killer2,
		history:   history,
	}
}

// Order scores every move in moves and returns them sorted best-first.
func (mo *moveOrderer) Order(pos *Position, moves []Move) []scoredMove {
	scored := make([]scoredMove, len(moves))
	for i, m := range moves {
		var key int
		switch {
		case m == mo.transMove:
			key = orderTransMove
		case m.IsViolent():
			if SeeGE(pos, m, 0) {
				key = orderGoodCapture + mvvlva(m)
			} else {
				key = mvvlva(m)
			}
		case m == mo.killer1:
			key = orderKiller1
		case m == mo.killer2:
			key = orderKiller2
		default:
			key = mo.history.ReadTotal(mo.context, m)
		}
		scored[i] = scoredMove{move: m, key: key}
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].key > scored[j].key })
	return scored
}

// orderCaptures scores and sorts a quiescence-search move list by
// MVV/LVA alone, quiets pushed to the back.
func orderCaptures(moves []Move) []scoredMove {
	scored := make([]scoredMove, len(moves))
	for i, m := range moves {
		key := -100000
		if m.IsViolent() {
			key = mvvlva(m)
		}
		scored[i] = scoredMove{move: m, key: key}
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].key > scored[j].key })
	return scored
}

// killers tracks the two most recent quiet moves that caused a beta
// cutoff at each search height, used as a move-ordering hint below the
// TT move.
type killers struct {
	table [][2]Move
}

func newKillers(maxHeight int) *killers {
	return &killers{table: make([][2]Move, maxHeight+1)}
}

func (k *killers) Get(height int) (Move, Move) {
	return k.table[height][0], k.table[height][1]
}

func (k *killers) Update(height int, m Move) {
	if k.table[height][0] == m {
		return
	}
	k.table[height][1] = k.table[height][0]
	k.table[height][0] = m
}
