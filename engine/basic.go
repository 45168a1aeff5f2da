// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import "fmt"

var errorInvalidSquare = fmt.Errorf("invalid square")

// Square identifies a location on the board. 0 is A1, 63 is H8.
type Square uint8

const (
	SquareA1 Square = iota
	SquareB1
	SquareC1
	SquareD1
	SquareE1
	SquareF1
	SquareG1
	SquareH1
	SquareA2
	SquareB2
	SquareC2
	SquareD2
	SquareE2
	SquareF2
	SquareG2
	SquareH2
	SquareA3
	SquareB3
	SquareC3
	SquareD3
	SquareE3
	SquareF3
	SquareG3
	SquareH3
	SquareA4
	SquareB4
	SquareC4
	SquareD4
	SquareE4
	SquareF4
	SquareG4
	SquareH4
	SquareA5
	SquareB5
	SquareC5
	SquareD5
	SquareE5
	SquareF5
	SquareG5
	SquareH5
	SquareA6
	SquareB6
	SquareC6
	SquareD6
	SquareE6
	SquareF6
	SquareG6
	SquareH6
	SquareA7
	SquareB7
	SquareC7
	SquareD7
	SquareE7
	SquareF7
	SquareG7
	SquareH7
	SquareA8
	SquareB8
	SquareC8
	SquareD8
	SquareE8
	SquareF8
	SquareG8
	SquareH8

	SquareArraySize = int(iota)
	SquareMinValue  = SquareA1
	SquareMaxValue  = SquareH8
)

// RankFile returns the square at rank r, file f. r and f are 0..7.
func RankFile(r, f int) Square {
	return Square(r*8 + f)
}

// SquareFromString parses a square in [a-h][1-8] format.
func SquareFromString(s string) (Square, error) {
	if len(s) != 2 {
		return SquareA1, errorInvalidSquare
	}
	f, r := -1, -1
	if 'a' <= s[0] && s[0] <= 'h' {
		f = int(s[0] - 'a')
	}
	if '1' <= s[1] && s[1] <= '8' {
		r = int(s[1] - '1')
	}
	if f == -1 || r == -1 {
		return SquareA1, errorInvalidSquare
	}
	return RankFile(r, f), nil
}

// Bitboard returns a bitboard with only sq set.
func (sq Square) Bitboard() Bitboard { return 1 << uint(sq) }

// Relative returns the square dr ranks and df files away from sq.
func (sq Square) Relative(dr, df int) Square { return sq + Square(dr*8+df) }

// Rank returns a number 0..7, the rank of sq.
func (sq Square) Rank() int { return int(sq / 8) }

// File returns a number 0..7, the file of sq.
func (sq Square) File() int { return int(sq % 8) }

// POV flips sq vertically for side, so that rank 0 is always the side's
// home rank. Used to evaluate king/pawn features symmetrically.
func (sq Square) POV(side Color) Square {
	if side == Black {
		return sq ^ 56
	}
	return sq
}

func (sq Square) String() string {
	return string([]byte{byte(sq.File() + 'a'), byte(sq.Rank() + '1')})
}

// Color is one of the two sides.
type Color uint

const (
	NoColor Color = iota
	White
	Black

	ColorArraySize = int(iota)
	ColorMinValue  = White
	ColorMaxValue  = Black
)

var kingHomeRank = [ColorArraySize]int{0, 0, 7}

// Opposite returns the other color. Undefined unless c is White or Black.
func (c Color) Opposite() Color { return White + Black - c }

// KingHomeRank returns the rank the king starts on for c.
func (c Color) KingHomeRank() int { return kingHomeRank[c] }

func (c Color) String() string {
	switch c {
	case White:
		return "w"
	case Black:
		return "b"
	}
	return "-"
}

// Figure is a piece kind without a color.
type Figure uint

const (
	NoFigure Figure = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King

	FigureArraySize = int(iota)
	FigureMinValue  = Pawn
	FigureMaxValue  = King
)

var figureToSymbol = [FigureArraySize]string{"", "P", "N", "B", "R", "Q", "K"}

func (f Figure) String() string { return figureToSymbol[f] }

// Piece is a figure owned by one side.
type Piece uint8

const (
	NoPiece Piece = iota
)

// ColorFigure builds a piece from a color and a figure.
func ColorFigure(col Color, fig Figure) Piece {
	return Piece(fig<<2) + Piece(col)
}

// Color returns the piece's color.
func (pi Piece) Color() Color { return Color(pi & 3) }

// Figure returns the piece's figure.
func (pi Piece) Figure() Figure { return Figure(pi >> 2) }

func (pi Piece) String() string {
	if pi == NoPiece {
		return "."
	}
	s := pi.Figure().String()
	if pi.Color() == Black {
		s = string(s[0] + 'a' - 'A')
	}
	return s
}

const (
	PieceMinValue = Piece(FigureMinValue<<2) + Piece(ColorMinValue)
	PieceMaxValue = Piece(FigureMaxValue<<2) + Piece(ColorMaxValue)
)

// Castle is a bitmask of remaining castling rights.
type Castle uint8

const (
	WhiteOO Castle = 1 << iota
	WhiteOOO
	BlackOO
	BlackOOO

	NoCastle  Castle = 0
	AnyCastle Castle = WhiteOO | WhiteOOO | BlackOO | BlackOOO

	CastleArraySize = int(AnyCastle) + 1
	CastleMinValue  = NoCastle
	CastleMaxValue  = AnyCastle
)

var castleToSymbol = map[Castle]byte{WhiteOO: 'K', WhiteOOO: 'Q', BlackOO: 'k', BlackOOO: 'q'}

func (c Castle) String() string {
	if c == 0 {
		return "-"
	}
	var r []byte
	for c > 0 {
		k := c & (-c)
		r = append(r, castleToSymbol[k])
		c -= k
	}
	return string(r)
}

// CastlingRook returns the rook piece moved during castling together with
// the square it starts on and the square it ends on, given the square the
// king ends on.
func CastlingRook(kingEnd Square) (Piece, Square, Square) {
	piece := Piece(Rook<<2) + 1 + Piece(kingEnd>>5)
	rookStart := kingEnd&^3 | (kingEnd & 4 >> 1) | (kingEnd & 4 >> 2)
	rookEnd := kingEnd ^ (kingEnd&4)>>1 | 1
	return piece, rookStart, rookEnd
}

// MoveType distinguishes move kinds that need special handling when
// applied to a position.
type MoveType uint8

const (
	NoMove MoveType = iota
	Normal
	Promotion
	Castling
	Enpassant
)

// Move is a position-dependent move. Fields are private; the accessor
// methods below match the packed-move API the rest of the package uses,
// independent of how a move happens to be stored.
type Move struct {
	from, to       Square
	capture        Piece
	target         Piece // piece on 'to' after the move; king for castling
	moveType       MoveType
	savedEnpassant Square
	savedCastle    Castle
	savedRule50    int
}

// MakeMove builds a move. target is the piece landing on 'to' -- for a
// quiet or capturing move this is the moving piece, for a promotion this
// is the promoted piece.
func MakeMove(mt MoveType, from, to Square, capture, target Piece) Move {
	return Move{from: from, to: to, capture: capture, target: target, moveType: mt}
}

// NullMove is the move that passes the turn without changing the board.
var NullMove = Move{}

func (m Move) From() Square       { return m.from }
func (m Move) To() Square         { return m.to }
func (m Move) Capture() Piece     { return m.capture }
func (m Move) Target() Piece      { return m.target }
func (m Move) MoveType() MoveType { return m.moveType }

// CaptureSquare returns the square the captured piece sat on. For an en
// passant capture this differs from To().
func (m Move) CaptureSquare() Square {
	if m.moveType == Enpassant {
		return m.from&0x38 + m.to&0x7
	}
	return m.to
}

// Piece returns the piece that was standing on From() before the move.
func (m Move) Piece() Piece {
	if m.moveType != Promotion {
		return m.target
	}
	return ColorFigure(m.target.Color(), Pawn)
}

// Promotion returns the promoted-to piece, or NoPiece if this isn't a
// promotion.
func (m Move) Promotion() Piece {
	if m.moveType != Promotion {
		return NoPiece
	}
	return m.target
}

// IsQuiet returns true for moves that neither capture nor promote.
func (m Move) IsQuiet() bool {
	return m.capture == NoPiece && m.moveType != Promotion
}

// IsViolent returns true for moves that can change the position's score
// significantly: captures and promotions.
func (m Move) IsViolent() bool {
	return m.capture != NoPiece || m.moveType == Promotion
}

// IsCastle reports whether m is a castling move.
func (m Move) IsCastle() bool { return m.moveType == Castling }

// UCI renders m in UCI long algebraic form, e.g. "e2e4" or "a7a8q".
func (m Move) UCI() string {
	s := m.from.String() + m.to.String()
	if m.moveType == Promotion {
		s += string(m.target.Figure().String()[0] + 'a' - 'A')
	}
	return s
}

func (m Move) String() string { return m.UCI() }
