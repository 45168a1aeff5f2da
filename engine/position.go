// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// Move generation kinds, combined with bitwise or.
const (
	Quiet   int = 1 << iota // no capture, no castling, no promotion
	Tactical                // castling and underpromotions
	Violent                 // captures and queen promotions
	All     = Quiet | Tactical | Violent
)

// FENStartPos is the FEN of the initial position.
const FENStartPos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// lostCastleRights[sq] is the castling rights lost when a piece leaves or
// arrives on sq (a king or rook move, or a rook being captured).
var lostCastleRights [64]Castle

func init() {
	lostCastleRights[SquareA1] = WhiteOOO
	lostCastleRights[SquareE1] = WhiteOOO | WhiteOO
	lostCastleRights[SquareH1] = WhiteOO
	lostCastleRights[SquareA8] = BlackOOO
	lostCastleRights[SquareE8] = BlackOOO | BlackOO
	lostCastleRights[SquareH8] = BlackOO
}

// netUpdate records the piece-square changes a single move makes, so an
// incremental evaluator (the NNUE accumulator) can be pushed forward and
// popped back in lockstep with DoMove/UndoMove without Position knowing
// anything about evaluation.
type netUpdate struct {
	removed   [2]int
	added     [2]int
	nRemoved  int8
	nAdded    int8
}

func (u *netUpdate) remove(pi Piece, sq Square) {
	u.removed[u.nRemoved] = nnueInputIndex(pi, sq)
	u.nRemoved++
}

func (u *netUpdate) add(pi Piece, sq Square) {
	u.added[u.nAdded] = nnueInputIndex(pi, sq)
	u.nAdded++
}

// state is per-ply information that must be restored on UndoMove.
type state struct {
	CastlingAbility Castle
	EnpassantSquare Square // SquareA1 ("no square") when not set
	Rule50          int
	Zobrist         uint64
	Update          netUpdate
}

// Position encodes a chess position as a set of bitboards plus the
// minimal state needed to make and unmake moves.
type Position struct {
	ByFigure   [FigureArraySize]Bitboard
	ByColor    [ColorArraySize]Bitboard
	SideToMove Color

	FullMoveNumber int
	Ply            int

	states []state
	curr   *state
}

// NewPosition returns an empty position (no pieces placed).
func NewPosition() *Position {
	pos := &Position{
		FullMoveNumber: 1,
		states:         make([]state, 1),
	}
	pos.curr = &pos.states[0]
	return pos
}

// PositionFromFEN parses fen (Forsyth-Edwards Notation) into a Position.
func PositionFromFEN(fen string) (*Position, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return nil, fmt.Errorf("fen has too few fields")
	}

	pos := NewPosition()
	if err := parsePiecePlacement(fields[0], pos); err != nil {
		return nil, err
	}
	if err := parseSideToMove(fields[1], pos); err != nil {
		return nil, err
	}
	if err := parseCastlingAbility(fields[2], pos); err != nil {
		return nil, err
	}
	if err := parseEnpassantSquare(fields[3], pos); err != nil {
		return nil, err
	}
	if len(fields) > 4 {
		r50, err := strconv.Atoi(fields[4])
		if err != nil {
			return nil, err
		}
		pos.curr.Rule50 = r50
	}
	if len(fields) > 5 {
		n, err := strconv.Atoi(fields[5])
		if err != nil {
			return nil, err
		}
		pos.FullMoveNumber = n
	}
	return pos, nil
}

// String returns the position in FEN format.
func (pos *Position) String() string {
	s := formatPiecePlacement(pos)
	s += " " + pos.SideToMove.String()
	s += " " + pos.CastlingAbility().String()
	s += " " + formatEnpassantSquare(pos)
	s += " " + strconv.Itoa(pos.Rule50())
	s += " " + strconv.Itoa(pos.FullMoveNumber)
	return s
}

func (pos *Position) prev() *state { return &pos.states[pos.Ply-1] }

func (pos *Position) popState() {
	pos.states = pos.states[:pos.Ply]
	pos.Ply--
	pos.curr = &pos.states[pos.Ply]
}

func (pos *Position) pushState() {
	pos.states = append(pos.states, pos.states[pos.Ply])
	pos.Ply++
	pos.curr = &pos.states[pos.Ply]
	pos.curr.Update = netUpdate{}
}

// EnpassantSquare returns the current en passant target square, or
// SquareA1 if none is set.
func (pos *Position) EnpassantSquare() Square { return pos.curr.EnpassantSquare }

// IsEnpassantSquare returns whether sq is the current en passant target.
func (pos *Position) IsEnpassantSquare(sq Square) bool {
	return sq != SquareA1 && sq == pos.curr.EnpassantSquare
}

// CastlingAbility returns the remaining castling rights.
func (pos *Position) CastlingAbility() Castle { return pos.curr.CastlingAbility }

// Rule50 returns the half-move clock used for the fifty-move rule.
func (pos *Position) Rule50() int { return pos.curr.Rule50 }

// Zobrist returns the position's hash key.
func (pos *Position) Zobrist() uint64 { return pos.curr.Zobrist }

// LastUpdate returns the piece-square changes the most recently played
// move made, for driving an incremental evaluator.
func (pos *Position) LastUpdate() *netUpdate { return &pos.curr.Update }

// Us returns the side to move. Them returns the opponent.
func (pos *Position) Us() Color   { return pos.SideToMove }
func (pos *Position) Them() Color { return pos.SideToMove.Opposite() }

// ByPiece is a shortcut for ByColor[col]&ByFigure[fig].
func (pos *Position) ByPiece(col Color, fig Figure) Bitboard {
	return pos.ByColor[col] & pos.ByFigure[fig]
}

// AllPieces returns the occupancy of both sides combined.
func (pos *Position) AllPieces() Bitboard {
	return pos.ByColor[White] | pos.ByColor[Black]
}

// IsEmpty returns true if there is no piece on sq.
func (pos *Position) IsEmpty(sq Square) bool {
	return !pos.AllPieces().Has(sq)
}

// Get returns the piece occupying sq, or NoPiece.
func (pos *Position) Get(sq Square) Piece {
	var col Color
	if pos.ByColor[White].Has(sq) {
		col = White
	} else if pos.ByColor[Black].Has(sq) {
		col = Black
	} else {
		return NoPiece
	}
	for fig := FigureMinValue; fig <= FigureMaxValue; fig++ {
		if pos.ByFigure[fig].Has(sq) {
			return ColorFigure(col, fig)
		}
	}
	panic("square marked occupied but no figure found")
}

func (pos *Position) setCastlingAbility(castle Castle) {
	if pos.curr.CastlingAbility == castle {
		return
	}
	pos.curr.Zobrist ^= zobristCastle[pos.curr.CastlingAbility]
	pos.curr.CastlingAbility = castle
	pos.curr.Zobrist ^= zobristCastle[pos.curr.CastlingAbility]
}

func (pos *Position) setSideToMove(col Color) {
	pos.curr.Zobrist ^= zobristColor[pos.SideToMove]
	pos.SideToMove = col
	pos.curr.Zobrist ^= zobristColor[pos.SideToMove]
}

// setEnpassantSquare sets the en passant target unconditionally: a
// two-square pawn push always sets it, whether or not an enemy pawn is
// actually placed to capture. This matches the reference engine, whose
// make_move never checks capturability before assigning ep_square.
func (pos *Position) setEnpassantSquare(sq Square) {
	if sq == pos.curr.EnpassantSquare {
		return
	}
	pos.curr.Zobrist ^= zobristEnpassant[pos.curr.EnpassantSquare]
	pos.curr.EnpassantSquare = sq
	pos.curr.Zobrist ^= zobristEnpassant[pos.curr.EnpassantSquare]
}

// put places pi on sq, maintaining bitboards, Zobrist key and the
// incremental-evaluator update list. No-op for NoPiece.
func (pos *Position) put(sq Square, pi Piece) {
	if pi == NoPiece {
		return
	}
	pos.curr.Zobrist ^= zobristPiece[pi][sq]
	pos.ByColor[pi.Color()] |= sq.Bitboard()
	pos.ByFigure[pi.Figure()] |= sq.Bitboard()
	pos.curr.Update.add(pi, sq)
}

// remove takes pi off sq. No-op for NoPiece.
func (pos *Position) remove(sq Square, pi Piece) {
	if pi == NoPiece {
		return
	}
	pos.curr.Zobrist ^= zobristPiece[pi][sq]
	pos.ByColor[pi.Color()] &^= sq.Bitboard()
	pos.ByFigure[pi.Figure()] &^= sq.Bitboard()
	pos.curr.Update.remove(pi, sq)
}

// IsChecked returns whether side's king is attacked.
func (pos *Position) IsChecked(side Color) bool {
	king := pos.ByPiece(side, King)
	if king == 0 {
		return false
	}
	return pos.attackersTo(king.AsSquare(), side.Opposite()) != 0
}

// attackersTo returns the squares occupied by 'them' pieces that attack
// sq, given the current board occupancy.
func (pos *Position) attackersTo(sq Square, them Color) Bitboard {
	occ := pos.AllPieces()
	enemy := pos.ByColor[them]
	attackers := pawnAttackersTo(them, sq) & enemy & pos.ByFigure[Pawn]
	attackers |= knightAttacks(sq) & enemy & pos.ByFigure[Knight]
	attackers |= kingAttacks(sq) & enemy & pos.ByFigure[King]
	attackers |= bishopAttacks(sq, occ) & enemy & (pos.ByFigure[Bishop] | pos.ByFigure[Queen])
	attackers |= rookAttacks(sq, occ) & enemy & (pos.ByFigure[Rook] | pos.ByFigure[Queen])
	return attackers
}

// GetAttacker returns the smallest figure of color them attacking sq, or
// NoFigure.
func (pos *Position) GetAttacker(sq Square, them Color) Figure {
	attackers := pos.attackersTo(sq, them)
	if attackers == 0 {
		return NoFigure
	}
	for fig := Pawn; fig <= King; fig++ {
		if attackers&pos.ByFigure[fig] != 0 {
			return fig
		}
	}
	panic("unreachable")
}

// IsDraw returns whether the fifty-move counter or insufficient
// material forces a draw.
func (pos *Position) IsDraw() bool {
	if pos.curr.Rule50 > 100 {
		return true
	}
	noMajors := pos.ByFigure[Pawn]|pos.ByFigure[Rook]|pos.ByFigure[Queen] == 0
	minors := pos.ByFigure[Knight] | pos.ByFigure[Bishop]
	return noMajors && minors.Count() <= 1
}

// DoMove applies a pseudo-legal move, pushing a new state frame.
func (pos *Position) DoMove(move Move) {
	pos.pushState()

	pi := move.Piece()
	if pi != NoPiece {
		pos.setCastlingAbility(pos.curr.CastlingAbility &^ lostCastleRights[move.From()] &^ lostCastleRights[move.To()])
	}
	if move.Capture() != NoPiece || pi.Figure() == Pawn {
		pos.curr.Rule50 = 0
	} else {
		pos.curr.Rule50++
	}
	if move.MoveType() == Castling {
		rook, start, end := CastlingRook(move.To())
		pos.remove(start, rook)
		pos.put(end, rook)
	}

	if pi.Figure() == Pawn && move.From().Bitboard()&BbPawnStartRank != 0 && move.To().Bitboard()&BbPawnDoubleRank != 0 {
		pos.setEnpassantSquare((move.From() + move.To()) / 2)
	} else {
		pos.setEnpassantSquare(SquareA1)
	}

	pos.remove(move.From(), pi)
	pos.remove(move.CaptureSquare(), move.Capture())
	pos.put(move.To(), move.Target())
	pos.setSideToMove(pos.SideToMove.Opposite())

	if pos.SideToMove == White {
		pos.FullMoveNumber++
	}
}

// UndoMove takes back the last move played.
func (pos *Position) UndoMove(move Move) {
	pos.setSideToMove(pos.SideToMove.Opposite())
	if pos.SideToMove == Black {
		pos.FullMoveNumber--
	}

	// The state frame is discarded below; clear its update list so the
	// restoring puts/removes have room to record into.
	pos.curr.Update = netUpdate{}
	pi := move.Piece()
	pos.put(move.From(), pi)
	pos.remove(move.To(), move.Target())
	pos.put(move.CaptureSquare(), move.Capture())

	if move.MoveType() == Castling {
		rook, start, end := CastlingRook(move.To())
		pos.put(start, rook)
		pos.remove(end, rook)
	}

	pos.popState()
}

// DoNullMove passes the turn without moving a piece, used by null-move
// pruning. Clears the en passant square and bumps the half-move clock.
func (pos *Position) DoNullMove() {
	pos.pushState()
	pos.setEnpassantSquare(SquareA1)
	pos.curr.Rule50++
	pos.setSideToMove(pos.SideToMove.Opposite())
}

// UndoNullMove undoes DoNullMove.
func (pos *Position) UndoNullMove() {
	pos.setSideToMove(pos.SideToMove.Opposite())
	pos.popState()
}

// IsPseudoLegal returns whether m could plausibly be played in pos: it
// does not check whether the side to move's king ends up in check.
func (pos *Position) IsPseudoLegal(m Move) bool {
	if m == NullMove {
		return false
	}
	if pos.Get(m.From()) != m.Piece() {
		return false
	}
	if m.Capture() != NoPiece && m.MoveType() != Enpassant && pos.Get(m.CaptureSquare()) != m.Capture() {
		return false
	}
	return true
}
