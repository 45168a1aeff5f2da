// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// engine.go wires together the transposition table, move ordering state
// and evaluator into the top-level search driver: iterative deepening
// with aspiration windows around the previous iteration's score.

package engine

import (
	"math"
	"time"

	"github.com/zurichess/nnue-counter/internal/logging"
)

var log = logging.GetLog("engine")

// Mate/infinity bookkeeping, shared by the search core and the TT.
const (
	MateScore      = 30000
	InfinityScore  = MateScore + 1
	MaxHeight      = 127
	WinScore       = MateScore - 2*MaxHeight
	LossScore      = -WinScore
	drawScore      = 0
)

func lossIn(height int) int { return -MateScore + height }
func winIn(height int) int  { return MateScore - height }

// IEvaluator produces leaf scores and is kept in lockstep with the
// position by the search: every DoMove/DoNullMove is mirrored by a
// MakeMove call and every UndoMove/UndoNullMove by UnmakeMove.
type IEvaluator interface {
	Init(pos *Position)
	MakeMove(update *netUpdate)
	UnmakeMove()
	QuickEvaluate(pos *Position) int
}

// SearchInfo summarizes one completed (or aborted) iterative-deepening
// iteration.
type SearchInfo struct {
	Depth    int
	Score    int
	Nodes    uint64
	Duration time.Duration
	MainLine []Move
}

// ITimeManager decides when a search must stop. Tournament, fixed-time
// and tactic-solving implementations share this contract.
type ITimeManager interface {
	Elapsed() time.Duration
	CheckTimeout() bool
	IterationComplete(info SearchInfo)
}

const (
	nodeTypeNormal int8 = 0
	nodeTypeCut    int8 = 1
	nodeTypeAll    int8 = -1
)

// searchStack is per-height scratch state, indexed by search height
// (ply from the search root, not the game ply).
type searchStack struct {
	currentMove Move
	staticEval  int
	key         uint64
	pv          []Move
}

// Engine runs alpha-beta search against a single position, driven by
// iterative deepening with aspiration windows.
type Engine struct {
	tt          *TransTable
	history     *historyTable
	killerTable *killers
	evaluator   IEvaluator
	timeManager ITimeManager

	stack     [MaxHeight + 2]searchStack
	reductions [64][64]int

	nodes     uint64
	rootDepth int
	repeats   map[uint64]struct{}
	options   *Options
}

// NewEngine builds an Engine around the given transposition table and
// evaluator. repeats is the caller-supplied two-time-repeat set (game
// history positions that have already occurred twice).
func NewEngine(tt *TransTable, evaluator IEvaluator, timeManager ITimeManager, repeats map[uint64]struct{}) *Engine {
	e := &Engine{
		tt:          tt,
		history:     newHistoryTable(),
		killerTable: newKillers(MaxHeight + 2),
		evaluator:   evaluator,
		timeManager: timeManager,
		repeats:     repeats,
		options:     NewOptions(),
	}
	e.initReductions()
	return e
}

// Options returns the engine's configurable parameters, for a dispatcher
// to list and update via "setoption".
func (e *Engine) Options() *Options { return e.options }

func (e *Engine) initReductions() {
	for d := 1; d < 64; d++ {
		for m := 1; m < 64; m++ {
			r := lirp(math.Log(float64(d))*math.Log(float64(m)), math.Log(5)*math.Log(22), math.Log(63)*math.Log(63), 3, 8)
			e.reductions[d][m] = int(r)
		}
	}
}

func lirp(x, x0, x1, y0, y1 float64) float64 {
	t := (x - x0) / (x1 - x0)
	y := y0 + t*(y1-y0)
	if y < y0 {
		y = y0
	}
	if y > y1 {
		y = y1
	}
	return y
}

// NewGame resets the transposition table and history heuristics for a
// fresh game, as required by the "ucinewgame" command.
func (e *Engine) NewGame() {
	e.tt.Clear()
	e.history.clear()
	e.killerTable = newKillers(MaxHeight + 2)
}

// Search runs iterative deepening on pos until the time manager cancels
// or maxDepth is reached, whichever comes first. maxDepth <= 0 means no
// depth limit.
func (e *Engine) Search(pos *Position, maxDepth int) SearchInfo {
	e.nodes = 0
	e.tt.IncDate()
	e.evaluator.Init(pos)

	legalMoves := pos.GenerateLegalMoves()
	result := SearchInfo{}
	if len(legalMoves) >= 1 {
		result.MainLine = []Move{legalMoves[0]}
	}
	if len(legalMoves) <= 1 {
		return result
	}

	for h := 0; h < 3 && h < len(e.stack); h++ {
		e.stack[h].pv = nil
	}
	e.stack[0].key = pos.Zobrist()

	limit := MaxHeight
	if maxDepth > 0 && maxDepth < limit {
		limit = maxDepth
	}

	prevScore := 0
	for depth := 1; depth <= limit; depth++ {
		if e.timeManager.CheckTimeout() {
			break
		}
		e.rootDepth = depth

		var score int
		var ok bool
		if depth >= 5 && prevScore > -WinScore && prevScore < WinScore {
			score, ok = e.aspirate(pos, depth, prevScore)
		} else {
			score, ok = e.alphaBeta(pos, -InfinityScore, InfinityScore, depth, 0, NullMove, nodeTypeNormal)
		}

		if !ok {
			break
		}
		prevScore = score
		result = SearchInfo{
			Depth:    depth,
			Score:    score,
			Nodes:    e.nodes,
			Duration: e.timeManager.Elapsed(),
			MainLine: append([]Move(nil), e.stack[0].pv...),
		}
		e.timeManager.IterationComplete(result)
		if v, ok := e.options.Get("AnalyseMode"); ok && v.Bool {
			log.Infof("depth %d score %v nodes %d pv %v", result.Depth, ScoreToUCI(result.Score), result.Nodes, result.MainLine)
		} else {
			log.Debugf("depth %d score %d nodes %d", result.Depth, result.Score, result.Nodes)
		}
	}
	return result
}

// aspirate searches depth with a narrow window around prev, widening and
// re-searching once on failure before falling back to an infinite
// window.
func (e *Engine) aspirate(pos *Position, depth, prev int) (int, bool) {
	alpha, beta := prev-25, prev+25
	score, ok := e.alphaBeta(pos, alpha, beta, depth, 0, NullMove, nodeTypeNormal)
	if !ok {
		return 0, false
	}
	if score <= alpha {
		score, ok = e.alphaBeta(pos, -InfinityScore, beta, depth, 0, NullMove, nodeTypeNormal)
		if !ok {
			return 0, false
		}
	} else if score >= beta {
		score, ok = e.alphaBeta(pos, alpha, InfinityScore, depth, 0, NullMove, nodeTypeNormal)
		if !ok {
			return 0, false
		}
	} else {
		return score, true
	}
	if score <= alpha || score >= beta {
		return e.alphaBeta(pos, -InfinityScore, InfinityScore, depth, 0, NullMove, nodeTypeNormal)
	}
	return score, true
}

// checkTimeout increments the node counter and polls the time manager
// every 2^11 nodes.
func (e *Engine) checkTimeout() bool {
	e.nodes++
	if e.nodes&2047 == 0 {
		return e.timeManager.CheckTimeout()
	}
	return false
}

// checkTimeoutLeaf increments the node counter and polls the time
// manager unconditionally, used at quiescence leaves.
func (e *Engine) checkTimeoutLeaf() bool {
	e.nodes++
	return e.timeManager.CheckTimeout()
}

// evaluate computes the static score of pos from the evaluator's point
// of view of the side to move, scaled by remaining material and the
// fifty-move counter.
func (e *Engine) evaluate(pos *Position) int {
	const maxStaticEval = 15000
	v := e.evaluator.QuickEvaluate(pos)
	if v > maxStaticEval {
		v = maxStaticEval
	}
	if v < -maxStaticEval {
		v = -maxStaticEval
	}

	materialCoeff := 4*(pos.ByFigure[Knight]|pos.ByFigure[Bishop]).Count() +
		6*pos.ByFigure[Rook].Count() + 12*pos.ByFigure[Queen].Count()
	v = v * (160 + materialCoeff) / 160
	v = v * (200 - pos.curr.Rule50) / 200

	if pos.SideToMove == Black {
		v = -v
	}
	const tempo = 10
	return v + tempo
}

// isRepeat reports whether the position at height has already occurred
// since the last irreversible move (pawn move or capture), either on
// the current search path or in the caller-supplied repeat set.
func (e *Engine) isRepeat(height int) bool {
	key := e.stack[height].key
	for h := height - 1; h >= 0; h-- {
		mv := e.stack[h].currentMove
		if mv == NullMove || mv.Piece().Figure() == Pawn || mv.Capture() != NoPiece {
			return false
		}
		if e.stack[h].key == key {
			return true
		}
	}
	if e.repeats != nil {
		if _, ok := e.repeats[key]; ok {
			return true
		}
	}
	return false
}
