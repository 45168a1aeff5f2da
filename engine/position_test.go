package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPositionFromFENStartPos(t *testing.T) {
	pos, err := PositionFromFEN(FENStartPos)
	require.NoError(t, err)

	assert.Equal(t, SquareA1.Bitboard()|SquareH1.Bitboard()|SquareA8.Bitboard()|SquareH8.Bitboard(),
		pos.ByPiece(White, Rook)|pos.ByPiece(Black, Rook))
	assert.Equal(t, BbRank2|BbRank7, pos.ByPiece(White, Pawn)|pos.ByPiece(Black, Pawn))
	assert.Equal(t, White, pos.SideToMove)
	assert.Equal(t, WhiteOO|WhiteOOO|BlackOO|BlackOOO, pos.CastlingAbility())
	assert.False(t, pos.IsChecked(White))
}

func TestDoUndoMoveRoundTrips(t *testing.T) {
	pos, err := PositionFromFEN(FENStartPos)
	require.NoError(t, err)

	before := pos.Zobrist()
	m := MakeMove(Normal, SquareE2, SquareE4, NoPiece, ColorFigure(White, Pawn))
	pos.DoMove(m)
	assert.NotEqual(t, before, pos.Zobrist())
	assert.Equal(t, Black, pos.SideToMove)
	assert.Equal(t, SquareE3, pos.EnpassantSquare())

	pos.UndoMove(m)
	assert.Equal(t, before, pos.Zobrist())
	assert.Equal(t, White, pos.SideToMove)
	assert.Equal(t, SquareA1, pos.EnpassantSquare())
}

func TestIsDrawFiftyMoveRule(t *testing.T) {
	pos, err := PositionFromFEN("7k/8/8/8/8/8/8/K6R w - - 100 60")
	require.NoError(t, err)
	m := MakeMove(Normal, SquareH1, SquareH2, NoPiece, ColorFigure(White, Rook))
	pos.DoMove(m)
	assert.True(t, pos.IsDraw())
}
