package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateLegalMovesStartPosCount(t *testing.T) {
	pos, err := PositionFromFEN(FENStartPos)
	require.NoError(t, err)
	moves := pos.GenerateLegalMoves()
	assert.Len(t, moves, 20)
}

func TestGenerateLegalMovesPinnedPieceCannotMove(t *testing.T) {
	// Black rook on e8 pins the white rook on e2 to the king on e1: the
	// pinned rook may only move along the e-file.
	pos, err := PositionFromFEN("4r3/8/8/8/8/8/4R3/4K3 w - - 0 1")
	require.NoError(t, err)
	moves := pos.GenerateLegalMoves()
	found := false
	for _, m := range moves {
		if m.From() == SquareE2 {
			found = true
			assert.Equal(t, 4, m.To().File(), "pinned rook must stay on the e-file")
		}
	}
	assert.True(t, found, "pinned rook should still have moves along the pin line")
}

func TestUCIToMoveAndBackRoundTrips(t *testing.T) {
	pos, err := PositionFromFEN(FENStartPos)
	require.NoError(t, err)

	m, err := pos.UCIToMove("e2e4")
	require.NoError(t, err)
	assert.Equal(t, SquareE2, m.From())
	assert.Equal(t, SquareE4, m.To())
	assert.Equal(t, "e2e4", m.UCI())
}

func TestUCIToMovePromotion(t *testing.T) {
	pos, err := PositionFromFEN("8/P6k/8/8/8/8/7K/8 w - - 0 1")
	require.NoError(t, err)
	m, err := pos.UCIToMove("a7a8q")
	require.NoError(t, err)
	assert.Equal(t, Promotion, m.MoveType())
	assert.Equal(t, Queen, m.Promotion().Figure())
}

func TestSANStartingKnightMove(t *testing.T) {
	pos, err := PositionFromFEN(FENStartPos)
	require.NoError(t, err)
	m, err := pos.UCIToMove("g1f3")
	require.NoError(t, err)
	assert.Equal(t, "Nf3", pos.SAN(m))
}
