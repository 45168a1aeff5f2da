// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// moves.go generates pseudo-legal and legal moves, and converts moves to
// and from UCI long algebraic notation and SAN.

package engine

import "fmt"

var (
	errorWrongLength   = fmt.Errorf("uci move string has wrong length")
	errorUnknownFigure = fmt.Errorf("unknown figure symbol")
	errorNoSuchMove    = fmt.Errorf("no such move")
)

func (pos *Position) pawnThreats(side Color) Bitboard {
	pawns := Forward(side, pos.ByPiece(side, Pawn))
	return West(pawns) | East(pawns)
}

func (pos *Position) genPawnPromotions(kind int, moves *[]Move) {
	if kind&(Violent|Tactical) == 0 {
		return
	}
	pMin, pMax := Queen, Rook
	if kind&Violent != 0 {
		pMax = Queen
	}
	if kind&Tactical != 0 {
		pMin = Knight
	}

	us, them := pos.SideToMove, pos.SideToMove.Opposite()
	all := pos.AllPieces()
	ours := pos.ByPiece(us, Pawn)
	theirs := pos.ByColor[them]

	forward := Square(0)
	if us == White {
		ours &= BbRank7
		forward = RankFile(+1, 0)
	} else {
		ours &= BbRank2
		forward = RankFile(-1, 0)
	}

	for ours != 0 {
		from := ours.Pop()
		to := from + forward
		if !all.Has(to) {
			for p := pMin; p <= pMax; p++ {
				*moves = append(*moves, MakeMove(Promotion, from, to, NoPiece, ColorFigure(us, p)))
			}
		}
		if to.File() != 0 && theirs.Has(to-1) {
			capt := pos.Get(to - 1)
			for p := pMin; p <= pMax; p++ {
				*moves = append(*moves, MakeMove(Promotion, from, to-1, capt, ColorFigure(us, p)))
			}
		}
		if to.File() != 7 && theirs.Has(to+1) {
			capt := pos.Get(to + 1)
			for p := pMin; p <= pMax; p++ {
				*moves = append(*moves, MakeMove(Promotion, from, to+1, capt, ColorFigure(us, p)))
			}
		}
	}
}

func (pos *Position) genPawnAdvanceMoves(kind int, moves *[]Move) {
	if kind&Quiet == 0 {
		return
	}
	ours := pos.ByPiece(pos.SideToMove, Pawn)
	occu := pos.AllPieces()
	pawn := ColorFigure(pos.SideToMove, Pawn)

	var forward Square
	if pos.SideToMove == White {
		ours = ours &^ South(occu) &^ BbRank7
		forward = RankFile(+1, 0)
	} else {
		ours = ours &^ North(occu) &^ BbRank2
		forward = RankFile(-1, 0)
	}
	for ours != 0 {
		from := ours.Pop()
		*moves = append(*moves, MakeMove(Normal, from, from+forward, NoPiece, pawn))
	}
}

func (pos *Position) genPawnDoubleAdvanceMoves(kind int, moves *[]Move) {
	if kind&Quiet == 0 {
		return
	}
	ours := pos.ByPiece(pos.SideToMove, Pawn)
	occu := pos.AllPieces()
	pawn := ColorFigure(pos.SideToMove, Pawn)

	var forward Square
	if pos.SideToMove == White {
		ours &= RankBb(1) &^ South(occu) &^ South(South(occu))
		forward = RankFile(+2, 0)
	} else {
		ours &= RankBb(6) &^ North(occu) &^ North(North(occu))
		forward = RankFile(-2, 0)
	}
	for ours != 0 {
		from := ours.Pop()
		*moves = append(*moves, MakeMove(Normal, from, from+forward, NoPiece, pawn))
	}
}

func (pos *Position) pawnCapture(to Square) (MoveType, Piece) {
	if pos.IsEnpassantSquare(to) {
		return Enpassant, ColorFigure(pos.SideToMove.Opposite(), Pawn)
	}
	return Normal, pos.Get(to)
}

func (pos *Position) genPawnAttackMoves(kind int, moves *[]Move) {
	if kind&Violent == 0 {
		return
	}
	theirs := pos.ByColor[pos.SideToMove.Opposite()]
	if pos.curr.EnpassantSquare != SquareA1 {
		theirs |= pos.curr.EnpassantSquare.Bitboard()
	}

	forward := 0
	pawn := ColorFigure(pos.SideToMove, Pawn)
	ours := pos.ByPiece(pos.SideToMove, Pawn)
	if pos.SideToMove == White {
		ours = ours &^ BbRank7
		theirs = South(theirs)
		forward = +1
	} else {
		ours = ours &^ BbRank2
		theirs = North(theirs)
		forward = -1
	}

	att := RankFile(forward, -1)
	for bb := ours & East(theirs); bb > 0; {
		from := bb.Pop()
		to := from + att
		mt, capt := pos.pawnCapture(to)
		*moves = append(*moves, MakeMove(mt, from, to, capt, pawn))
	}
	att = RankFile(forward, +1)
	for bb := ours & West(theirs); bb > 0; {
		from := bb.Pop()
		to := from + att
		mt, capt := pos.pawnCapture(to)
		*moves = append(*moves, MakeMove(mt, from, to, capt, pawn))
	}
}

func (pos *Position) genBitboardMoves(pi Piece, from Square, att Bitboard, moves *[]Move) {
	for att != 0 {
		to := att.Pop()
		*moves = append(*moves, MakeMove(Normal, from, to, pos.Get(to), pi))
	}
}

func (pos *Position) getMask(kind int) Bitboard {
	mask := Bitboard(0)
	if kind&Violent != 0 {
		mask |= pos.ByColor[pos.SideToMove.Opposite()]
	}
	if kind&Quiet != 0 {
		mask |= ^pos.AllPieces()
	}
	return mask
}

func (pos *Position) genKnightMoves(kind int, moves *[]Move) {
	mask := pos.getMask(kind)
	pi := ColorFigure(pos.SideToMove, Knight)
	for bb := pos.ByPiece(pos.SideToMove, Knight); bb != 0; {
		from := bb.Pop()
		pos.genBitboardMoves(pi, from, knightAttacks(from)&mask, moves)
	}
}

func (pos *Position) genBishopMoves(fig Figure, kind int, moves *[]Move) {
	mask := pos.getMask(kind)
	pi := ColorFigure(pos.SideToMove, fig)
	occ := pos.AllPieces()
	for bb := pos.ByPiece(pos.SideToMove, fig); bb != 0; {
		from := bb.Pop()
		pos.genBitboardMoves(pi, from, bishopAttacks(from, occ)&mask, moves)
	}
}

func (pos *Position) genRookMoves(fig Figure, kind int, moves *[]Move) {
	mask := pos.getMask(kind)
	pi := ColorFigure(pos.SideToMove, fig)
	occ := pos.AllPieces()
	for bb := pos.ByPiece(pos.SideToMove, fig); bb != 0; {
		from := bb.Pop()
		pos.genBitboardMoves(pi, from, rookAttacks(from, occ)&mask, moves)
	}
}

func (pos *Position) genKingMovesNear(kind int, moves *[]Move) {
	mask := pos.getMask(kind)
	pi := ColorFigure(pos.SideToMove, King)
	from := pos.ByPiece(pos.SideToMove, King).AsSquare()
	pos.genBitboardMoves(pi, from, kingAttacks(from)&mask, moves)
}

func (pos *Position) genKingCastles(kind int, moves *[]Move) {
	if kind&Tactical == 0 {
		return
	}
	rank := pos.SideToMove.KingHomeRank()
	oo, ooo := WhiteOO, WhiteOOO
	if pos.SideToMove == Black {
		oo, ooo = BlackOO, BlackOOO
	}
	other := pos.SideToMove.Opposite()

	if pos.curr.CastlingAbility&oo != 0 {
		r5, r6 := RankFile(rank, 5), RankFile(rank, 6)
		if pos.IsEmpty(r5) && pos.IsEmpty(r6) {
			r4 := RankFile(rank, 4)
			if pos.GetAttacker(r4, other) == NoFigure && pos.GetAttacker(r5, other) == NoFigure && pos.GetAttacker(r6, other) == NoFigure {
				*moves = append(*moves, MakeMove(Castling, r4, r6, NoPiece, ColorFigure(pos.SideToMove, King)))
			}
		}
	}
	if pos.curr.CastlingAbility&ooo != 0 {
		r3, r2, r1 := RankFile(rank, 3), RankFile(rank, 2), RankFile(rank, 1)
		if pos.IsEmpty(r3) && pos.IsEmpty(r2) && pos.IsEmpty(r1) {
			r4 := RankFile(rank, 4)
			if pos.GetAttacker(r4, other) == NoFigure && pos.GetAttacker(r3, other) == NoFigure && pos.GetAttacker(r2, other) == NoFigure {
				*moves = append(*moves, MakeMove(Castling, r4, r2, NoPiece, ColorFigure(pos.SideToMove, King)))
			}
		}
	}
}

// GenerateMoves appends to moves all pseudo-legal moves of kind (a
// combination of Quiet, Tactical, Violent). Pseudo-legal moves may leave
// the mover's own king in check.
func (pos *Position) GenerateMoves(kind int, moves *[]Move) {
	pos.genKingMovesNear(kind, moves)
	pos.genPawnDoubleAdvanceMoves(kind, moves)
	pos.genRookMoves(Rook, kind, moves)
	pos.genBishopMoves(Queen, kind, moves)
	pos.genPawnAttackMoves(kind, moves)
	pos.genPawnAdvanceMoves(kind, moves)
	pos.genPawnPromotions(kind, moves)
	pos.genKnightMoves(kind, moves)
	pos.genBishopMoves(Bishop, kind, moves)
	pos.genKingCastles(kind, moves)
	pos.genRookMoves(Queen, kind, moves)
}

// GenerateFigureMoves generates pseudo-legal moves for a single figure
// kind, used by SAN disambiguation.
func (pos *Position) GenerateFigureMoves(fig Figure, kind int, moves *[]Move) {
	switch fig {
	case Pawn:
		pos.genPawnAdvanceMoves(kind, moves)
		pos.genPawnAttackMoves(kind, moves)
		pos.genPawnDoubleAdvanceMoves(kind, moves)
		pos.genPawnPromotions(kind, moves)
	case Knight:
		pos.genKnightMoves(kind, moves)
	case Bishop:
		pos.genBishopMoves(Bishop, kind, moves)
	case Rook:
		pos.genRookMoves(Rook, kind, moves)
	case Queen:
		pos.genBishopMoves(Queen, kind, moves)
		pos.genRookMoves(Queen, kind, moves)
	case King:
		pos.genKingMovesNear(kind, moves)
		pos.genKingCastles(kind, moves)
	}
}

// IsLegal verifies a pseudo-legal move does not leave the mover's own
// king in check, by trial application.
func (pos *Position) IsLegal(m Move) bool {
	us := pos.SideToMove
	pos.DoMove(m)
	ok := !pos.IsChecked(us)
	pos.UndoMove(m)
	return ok
}

// GenerateLegalMoves returns every fully legal move available in pos.
func (pos *Position) GenerateLegalMoves() []Move {
	var pseudo []Move
	pos.GenerateMoves(All, &pseudo)
	legal := make([]Move, 0, len(pseudo))
	for _, m := range pseudo {
		if pos.IsLegal(m) {
			legal = append(legal, m)
		}
	}
	return legal
}

// UCIToMove parses a move given in UCI coordinate notation, e.g. "e2e4"
// or "h7h8q" for a promotion.
func (pos *Position) UCIToMove(s string) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return NullMove, errorWrongLength
	}
	from, err := SquareFromString(s[0:2])
	if err != nil {
		return NullMove, err
	}
	to, err := SquareFromString(s[2:4])
	if err != nil {
		return NullMove, err
	}

	pi := pos.Get(from)
	moveType := Normal
	capt := pos.Get(to)
	target := pi

	if pi.Figure() == Pawn && pos.IsEnpassantSquare(to) {
		moveType = Enpassant
		capt = ColorFigure(pos.SideToMove.Opposite(), Pawn)
	}
	if pi.Figure() == King && from.File() == 4 && (to.File() == 6 || to.File() == 2) && from.Rank() == to.Rank() {
		moveType = Castling
	}
	if pi.Figure() == Pawn && len(s) == 5 {
		moveType = Promotion
		fig, ok := symbolToFigure[rune(s[4])]
		if !ok {
			return NullMove, errorUnknownFigure
		}
		target = ColorFigure(pos.SideToMove, fig)
	}
	return MakeMove(moveType, from, to, capt, target), nil
}

var symbolToFigure = map[rune]Figure{
	'p': Pawn, 'n': Knight, 'b': Bishop, 'r': Rook, 'q': Queen, 'k': King,
	'P': Pawn, 'N': Knight, 'B': Bishop, 'R': Rook, 'Q': Queen, 'K': King,
}

// SAN renders m in standard algebraic notation, disambiguating against
// other legal moves of the same figure to the same square.
func (pos *Position) SAN(m Move) string {
	if m.MoveType() == Castling {
		if m.To().File() == 6 {
			return "O-O"
		}
		return "O-O-O"
	}

	fig := m.Piece().Figure()
	s := ""
	if fig != Pawn {
		s += fig.String()

		var others []Move
		pos.GenerateFigureMoves(fig, All, &others)
		sameFile, sameRank := false, false
		for _, o := range others {
			if o.To() != m.To() || o.From() == m.From() || !pos.IsLegal(o) {
				continue
			}
			if o.From().File() == m.From().File() {
				sameFile = true
			}
			if o.From().Rank() == m.From().Rank() {
				sameRank = true
			}
		}
		switch {
		case sameFile && sameRank:
			s += m.From().String()
		case sameFile:
			s += fmt.Sprintf("%c", '1'+m.From().Rank())
		case sameRank:
			s += fmt.Sprintf("%c", 'a'+m.From().File())
		}
	} else if m.IsViolent() {
		s += fmt.Sprintf("%c", 'a'+m.From().File())
	}

	if m.Capture() != NoPiece {
		s += "x"
	}
	s += m.To().String()
	if m.MoveType() == Promotion {
		s += "=" + m.Promotion().Figure().String()
	}

	pos.DoMove(m)
	if pos.IsChecked(pos.SideToMove) {
		if len(pos.GenerateLegalMoves()) == 0 {
			s += "#"
		} else {
			s += "+"
		}
	}
	pos.UndoMove(m)
	return s
}
