// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// fen.go converts a Position to and from Forsyth-Edwards Notation.

package engine

import "fmt"

var symbolToPiece = map[rune]Piece{
	'p': ColorFigure(Black, Pawn),
	'n': ColorFigure(Black, Knight),
	'b': ColorFigure(Black, Bishop),
	'r': ColorFigure(Black, Rook),
	'q': ColorFigure(Black, Queen),
	'k': ColorFigure(Black, King),
	'P': ColorFigure(White, Pawn),
	'N': ColorFigure(White, Knight),
	'B': ColorFigure(White, Bishop),
	'R': ColorFigure(White, Rook),
	'Q': ColorFigure(White, Queen),
	'K': ColorFigure(White, King),
}

func parsePiecePlacement(s string, pos *Position) error {
	ranks := make([]string, 0, 8)
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == '/' {
			ranks = append(ranks, s[start:i])
			start = i + 1
		}
	}
	if len(ranks) != 8 {
		return fmt.Errorf("fen: expected 8 ranks, got %d", len(ranks))
	}

	for i, rank := range ranks {
		r := 7 - i
		f := 0
		for _, c := range rank {
			if c >= '1' && c <= '8' {
				f += int(c - '0')
				continue
			}
			pi, ok := symbolToPiece[c]
			if !ok {
				return fmt.Errorf("fen: unknown piece symbol %q", c)
			}
			if f >= 8 {
				return fmt.Errorf("fen: rank %d overflows", r+1)
			}
			pos.put(RankFile(r, f), pi)
			// Setting up a board is not a move: the evaluator is
			// initialized from scratch, so no update list is kept.
			pos.curr.Update = netUpdate{}
			f++
		}
		if f != 8 {
			return fmt.Errorf("fen: rank %d has %d squares, want 8", r+1, f)
		}
	}
	return nil
}

func parseSideToMove(s string, pos *Position) error {
	switch s {
	case "w":
		pos.setSideToMove(White)
	case "b":
		pos.setSideToMove(Black)
	default:
		return fmt.Errorf("fen: unknown side to move %q", s)
	}
	return nil
}

func parseCastlingAbility(s string, pos *Position) error {
	if s == "-" {
		pos.setCastlingAbility(NoCastle)
		return nil
	}
	var c Castle
	for _, r := range s {
		switch r {
		case 'K':
			c |= WhiteOO
		case 'Q':
			c |= WhiteOOO
		case 'k':
			c |= BlackOO
		case 'q':
			c |= BlackOOO
		default:
			return fmt.Errorf("fen: unknown castling symbol %q", r)
		}
	}
	pos.setCastlingAbility(c)
	return nil
}

func parseEnpassantSquare(s string, pos *Position) error {
	if s == "-" {
		pos.setEnpassantSquare(SquareA1)
		return nil
	}
	sq, err := SquareFromString(s)
	if err != nil {
		return fmt.Errorf("fen: bad en passant square %q", s)
	}
	pos.setEnpassantSquare(sq)
	return nil
}

func formatPiecePlacement(pos *Position) string {
	s := ""
	for r := 7; r >= 0; r-- {
		empty := 0
		for f := 0; f < 8; f++ {
			pi := pos.Get(RankFile(r, f))
			if pi == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				s += fmt.Sprintf("%d", empty)
				empty = 0
			}
			s += pi.String()
		}
		if empty > 0 {
			s += fmt.Sprintf("%d", empty)
		}
		if r > 0 {
			s += "/"
		}
	}
	return s
}

func formatEnpassantSquare(pos *Position) string {
	sq := pos.curr.EnpassantSquare
	if sq == SquareA1 {
		return "-"
	}
	return sq.String()
}
