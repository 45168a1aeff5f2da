// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// search.go is the negamax/PVS core: transposition table cutoffs,
// null-move and ProbCut pruning, singular extensions, late-move
// reductions and pruning, then quiescence search at the leaves.

package engine

// alphaBeta searches pos to depth, returning (score, true) on a
// completed search or (0, false) if the time manager cancelled the
// search partway through. skipMove excludes a move from consideration,
// used only by singular-extension verification.
func (e *Engine) alphaBeta(pos *Position, alpha, beta, depth, height int, skipMove Move, nodeType int8) (int, bool) {
	if depth <= 0 {
		return e.qs(pos, alpha, beta, height)
	}

	e.stack[height].pv = nil
	rootNode := height == 0
	pvNode := beta != alpha+1
	inCheck := pos.IsChecked(pos.SideToMove)

	if !rootNode {
		if height >= MaxHeight {
			return e.evaluate(pos), true
		}
		if pos.IsDraw() {
			return drawScore, true
		}
		if e.isRepeat(height) {
			return drawScore, true
		}
		if a := lossIn(height); alpha < a {
			alpha = a
		}
		if b := winIn(height + 1); beta > b {
			beta = b
		}
		if alpha >= beta {
			return alpha, true
		}
	}

	var ttDepth, ttValue int
	var ttBound uint8
	ttMove := NullMove
	ttHit := false
	if skipMove == NullMove {
		ttDepth, ttValue, ttBound, ttMove, ttHit = e.tt.Read(pos.Zobrist())
	}
	if ttHit {
		v := valueFromTT(ttValue, height)
		if ttDepth >= depth && !pvNode && !rootNode {
			if v >= beta && ttBound&BoundLower != 0 {
				return v, true
			}
			if v <= alpha && ttBound&BoundUpper != 0 {
				return v, true
			}
		}
		ttValue = v
	}

	staticEval := e.evaluate(pos)
	e.stack[height].staticEval = staticEval
	improving := height < 2 || staticEval > e.stack[height-2].staticEval

	ttMoveIsSingular := false

	if !rootNode && skipMove == NullMove {
		if !pvNode && !inCheck && beta > LossScore && beta < WinScore {
			if depth <= 8 && staticEval-100*depth >= beta {
				return staticEval, true
			}

		if depth >= 2 && e.stack[height-1].currentMove != NullMove &&
			!(ttHit && ttValue < beta && ttBound&BoundUpper != 0) &&
			allowNullMove(pos) && staticEval >= beta {
			r := 4 + depth/6
			if d := (staticEval - beta) / 200; d < 2 {
				r += d
			} else {
				r += 2
			}

			pos.DoNullMove()
			e.stack[height].currentMove = NullMove
			e.stack[height+1].key = pos.Zobrist()
			e.evaluator.MakeMove(pos.LastUpdate())
			if e.checkTimeout() {
				e.evaluator.UnmakeMove()
				pos.UndoNullMove()
				return 0, false
			}
			score, ok := e.alphaBeta(pos, -beta, 1-beta, depth-r, height+1, NullMove, -nodeType)
			e.evaluator.UnmakeMove()
			pos.UndoNullMove()
			if !ok {
				return 0, false
			}
			score = -score
			if score >= beta {
				if score >= WinScore {
					return beta, true
				}
				return score, true
			}
		}

		pcBeta := beta + 150
		if pcBeta > WinScore-1 {
			pcBeta = WinScore - 1
		}
		if depth >= 5 && !(ttHit && ttValue < pcBeta && ttBound&BoundUpper != 0) {
			var noisy []Move
			pos.GenerateMoves(Violent, &noisy)
			scored := orderCaptures(noisy)
			for _, sm := range scored {
				mv := sm.move
				if !SeeGE(pos, mv, 0) {
					continue
				}
				us := pos.SideToMove
				pos.DoMove(mv)
				if pos.IsChecked(us) {
					pos.UndoMove(mv)
					continue
				}
				e.stack[height].currentMove = mv
				e.stack[height+1].key = pos.Zobrist()
				e.evaluator.MakeMove(pos.LastUpdate())
				if e.checkTimeout() {
					e.evaluator.UnmakeMove()
					pos.UndoMove(mv)
					return 0, false
				}

				score, ok := e.qs(pos, -pcBeta, -(pcBeta - 1), height+1)
				if !ok {
					e.evaluator.UnmakeMove()
					pos.UndoMove(mv)
					return 0, false
				}
				score = -score
				if score >= pcBeta {
					score, ok = e.alphaBeta(pos, -pcBeta, -(pcBeta - 1), depth-4, height+1, NullMove, -nodeType)
					if !ok {
						e.evaluator.UnmakeMove()
						pos.UndoMove(mv)
						return 0, false
					}
					score = -score
				}
				e.evaluator.UnmakeMove()
				pos.UndoMove(mv)

				if score >= pcBeta {
					if !(ttHit && ttDepth >= depth-3) {
						e.tt.Update(pos.Zobrist(), depth-3, valueToTT(score, height), BoundLower, mv)
					}
					return score, true
				}
			}
		}
		}

		if ttMove == NullMove && depth >= 5 && nodeType != nodeTypeAll {
			depth--
		}

		if depth >= 8 && height < 2*e.rootDepth && ttHit && ttMove != NullMove &&
			ttBound&BoundLower != 0 && ttDepth >= depth-3 && ttValue > LossScore && ttValue < WinScore {
			singularBeta := ttValue - depth
			if singularBeta < -InfinityScore {
				singularBeta = -InfinityScore
			}
			score, ok := e.alphaBeta(pos, singularBeta-1, singularBeta, depth/2, height, ttMove, nodeType)
			if !ok {
				return 0, false
			}
			ttMoveIsSingular = score < singularBeta
		}
	}

	killer1, killer2 := e.killerTable.Get(height)
	counterMove := NullMove
	if height >= 1 {
		counterMove = e.stack[height-1].currentMove
	}
	followMove := NullMove
	if height >= 2 {
		followMove = e.stack[height-2].currentMove
	}

	var moves []Move
	pos.GenerateMoves(All, &moves)
	orderer := newMoveOrderer(pos.SideToMove, ttMove, killer1, killer2, counterMove, followMove, e.history)
	scored := orderer.Order(pos, moves)

	hasLegalMove := false
	movesSearched := 0
	quietsSeen := 0
	var quiets []Move

	lmp := 5 + (depth-1)*depth
	if !improving {
		lmp /= 2
	}

	oldAlpha := alpha
	bestMove := ttMove
	best := lossIn(height)

	for _, sm := range scored {
		mv := sm.move
		if mv == skipMove {
			continue
		}

		isNoisy := mv.IsViolent()
		if !isNoisy {
			quietsSeen++
		}

		if !rootNode && best > LossScore && hasLegalMove && !inCheck && depth <= 8 {
			if !isNoisy && mv != killer1 && mv != killer2 {
				if quietsSeen > lmp {
					continue
				}
				if staticEval+100+100*depth <= alpha && movesSearched >= 2 && !isPawnAdvanceTo7th2nd(mv, pos.SideToMove) {
					if staticEval > best {
						best = staticEval
					}
					continue
				}
			}
			seeMargin := depth
			if !isNoisy {
				seeMargin = depth / 2
			}
			if !SeeGE(pos, mv, -seeMargin) {
				continue
			}
		}

		us := pos.SideToMove
		pos.DoMove(mv)
		if pos.IsChecked(us) {
			pos.UndoMove(mv)
			continue
		}
		e.evaluator.MakeMove(pos.LastUpdate())
		e.stack[height].currentMove = mv
		e.stack[height+1].key = pos.Zobrist()
		if e.checkTimeout() {
			e.evaluator.UnmakeMove()
			pos.UndoMove(mv)
			return 0, false
		}
		hasLegalMove = true
		movesSearched++

		givesCheck := pos.IsChecked(pos.SideToMove)

		extension := 0
		if mv == ttMove && ttMoveIsSingular {
			extension = 1
		} else if givesCheck && depth >= 3 && height < 2*e.rootDepth {
			extension = 1
		}

		newDepth := depth - 1 + extension
		reduction := 0
		if depth >= 3 && newDepth >= 2 && movesSearched > 1 && !isNoisy {
			d, m := depth, movesSearched
			if d > 63 {
				d = 63
			}
			if m > 63 {
				m = 63
			}
			reduction = e.reductions[d][m]
			if mv == killer1 || mv == killer2 {
				reduction--
			}
			if inCheck || givesCheck {
				reduction--
			}
			if pvNode {
				reduction -= 2
			}
			h := e.history.ReadTotal(orderer.context, mv) / 5000
			if h > 2 {
				h = 2
			}
			if h < -2 {
				h = -2
			}
			reduction -= h
			if !improving {
				reduction++
			}
			if nodeType == nodeTypeCut {
				reduction++
			}
			if reduction > newDepth-1 {
				reduction = newDepth - 1
			}
			if reduction < 0 {
				reduction = 0
			}
		}

		if !isNoisy {
			quiets = append(quiets, mv)
		}

		var score int
		var ok bool
		if movesSearched == 1 || newDepth <= 0 {
			score, ok = e.alphaBeta(pos, -beta, -alpha, newDepth, height+1, NullMove, -nodeType)
		} else {
			score, ok = e.alphaBeta(pos, -(alpha + 1), -alpha, newDepth-reduction, height+1, NullMove, nodeTypeCut)
			if ok && reduction > 0 && -score > alpha {
				score, ok = e.alphaBeta(pos, -(alpha + 1), -alpha, newDepth, height+1, NullMove, -nodeType)
			}
			if ok && pvNode && -score > alpha {
				score, ok = e.alphaBeta(pos, -beta, -alpha, newDepth, height+1, NullMove, -nodeType)
			}
		}
		e.evaluator.UnmakeMove()
		pos.UndoMove(mv)
		if !ok {
			return 0, false
		}
		score = -score

		if score > best {
			best = score
		}
		if score > alpha {
			alpha = score
			bestMove = mv
			e.stack[height].pv = append([]Move{mv}, e.stack[height+1].pv...)
			if alpha >= beta {
				if !isNoisy {
					e.killerTable.Update(height, mv)
					e.history.Update(orderer.context, quiets, bestMove, depth)
				}
				break
			}
		}
	}

	if !hasLegalMove {
		if !inCheck && skipMove == NullMove {
			return drawScore, true
		}
		return lossIn(height), true
	}

	if skipMove == NullMove {
		bound := uint8(BoundUpper)
		if best >= beta {
			bound = BoundLower
		} else if best > oldAlpha {
			bound = BoundExact
		}
		if !(rootNode && bound == BoundUpper) {
			e.tt.Update(pos.Zobrist(), depth, valueToTT(best, height), bound, bestMove)
		}
	}

	return best, true
}

// qs is the quiescence search: captures and queen promotions only once
// out of check, with a stand-pat cutoff.
func (e *Engine) qs(pos *Position, alpha, beta, height int) (int, bool) {
	e.stack[height].pv = nil
	if pos.IsDraw() {
		return drawScore, true
	}
	if height >= MaxHeight {
		return e.evaluate(pos), true
	}
	if e.isRepeat(height) {
		return drawScore, true
	}

	_, ttValue, ttBound, ttMove, ttHit := e.tt.Read(pos.Zobrist())
	if ttHit {
		v := valueFromTT(ttValue, height)
		if v >= beta && ttBound&BoundLower != 0 {
			return v, true
		}
		if v <= alpha && ttBound&BoundUpper != 0 {
			return v, true
		}
	}

	inCheck := pos.IsChecked(pos.SideToMove)
	best := lossIn(height)
	var moves []Move
	var scored []scoredMove

	if inCheck {
		pos.GenerateMoves(All, &moves)
		orderer := newMoveOrderer(pos.SideToMove, ttMove, NullMove, NullMove, NullMove, NullMove, e.history)
		scored = orderer.Order(pos, moves)
	} else {
		staticEval := e.evaluate(pos)
		if staticEval > best {
			best = staticEval
		}
		if staticEval >= alpha {
			alpha = staticEval
			if alpha >= beta {
				return alpha, true
			}
		}
		pos.GenerateMoves(Violent, &moves)
		scored = orderCaptures(moves)
	}

	hasLegalMove := false
	for _, sm := range scored {
		mv := sm.move
		if best > LossScore && !inCheck && !SeeGE(pos, mv, 0) {
			continue
		}

		us := pos.SideToMove
		pos.DoMove(mv)
		if pos.IsChecked(us) {
			pos.UndoMove(mv)
			continue
		}
		e.evaluator.MakeMove(pos.LastUpdate())
		e.stack[height].currentMove = mv
		e.stack[height+1].key = pos.Zobrist()
		if e.checkTimeoutLeaf() {
			e.evaluator.UnmakeMove()
			pos.UndoMove(mv)
			return 0, false
		}
		hasLegalMove = true

		score, ok := e.qs(pos, -beta, -alpha, height+1)
		e.evaluator.UnmakeMove()
		pos.UndoMove(mv)
		if !ok {
			return 0, false
		}
		score = -score

		if score > best {
			best = score
		}
		if score > alpha {
			alpha = score
			e.stack[height].pv = append([]Move{mv}, e.stack[height+1].pv...)
			if alpha >= beta {
				e.tt.Update(pos.Zobrist(), 0, valueToTT(alpha, height), BoundLower, mv)
				break
			}
		}
	}

	if inCheck && !hasLegalMove {
		return lossIn(height), true
	}
	return best, true
}

func allowNullMove(pos *Position) bool {
	own := pos.ByColor[pos.SideToMove]
	majors := (pos.ByFigure[Rook] | pos.ByFigure[Queen]) & own
	minors := (pos.ByFigure[Knight] | pos.ByFigure[Bishop]) & own
	return majors != 0 || minors.Count() > 1
}

// isPawnAdvanceTo7th2nd reports whether mv moves a pawn of side to its
// seventh rank (or beyond); such moves are exempt from futility pruning.
func isPawnAdvanceTo7th2nd(mv Move, side Color) bool {
	if mv.Piece().Figure() != Pawn {
		return false
	}
	rank := mv.To().Rank()
	if side == White {
		return rank >= 6
	}
	return rank <= 1
}
