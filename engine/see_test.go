package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeeGEWinningCapture(t *testing.T) {
	// White rook takes an undefended black knight: a pure material gain,
	// true at threshold 0 but false once the threshold exceeds the gain.
	pos, err := PositionFromFEN("4k3/8/8/3n4/3R4/8/3P4/4K3 w - - 0 1")
	require.NoError(t, err)

	m := MakeMove(Normal, SquareD4, SquareD5, ColorFigure(Black, Knight), ColorFigure(White, Rook))
	assert.True(t, SeeGE(pos, m, 0))
	assert.False(t, SeeGE(pos, m, seeValue[Knight]+1))
}

func TestSeeGELosingCapture(t *testing.T) {
	// White queen takes a pawn defended by a black rook on the same
	// file: the rook recaptures, netting white a pawn for a queen.
	pos, err := PositionFromFEN("3rk3/8/8/3p4/8/8/3Q4/4K3 w - - 0 1")
	require.NoError(t, err)
	m := MakeMove(Normal, SquareD2, SquareD5, ColorFigure(Black, Pawn), ColorFigure(White, Queen))
	assert.False(t, SeeGE(pos, m, 0))
}

func TestSeeGEQuietMoveIsFree(t *testing.T) {
	pos, err := PositionFromFEN(FENStartPos)
	require.NoError(t, err)
	m := MakeMove(Normal, SquareE2, SquareE4, NoPiece, ColorFigure(White, Pawn))
	assert.True(t, SeeGE(pos, m, 0))
}
