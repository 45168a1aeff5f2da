package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoveOrdererPutsTransMoveFirst(t *testing.T) {
	pos, err := PositionFromFEN(FENStartPos)
	require.NoError(t, err)

	var moves []Move
	pos.GenerateMoves(All, &moves)
	require.NotEmpty(t, moves)

	trans := moves[len(moves)-1]
	mo := newMoveOrderer(White, trans, NullMove, NullMove, NullMove, NullMove, newHistoryTable())
	scored := mo.Order(pos, moves)
	assert.Equal(t, trans, scored[0].move)
}

func TestMoveOrdererKillersOutrankQuiets(t *testing.T) {
	pos, err := PositionFromFEN(FENStartPos)
	require.NoError(t, err)

	var moves []Move
	pos.GenerateMoves(All, &moves)
	require.NotEmpty(t, moves)

	var killer, other Move
	for _, m := range moves {
		if m.IsViolent() {
			continue
		}
		if killer == NullMove {
			killer = m
		} else if other == NullMove && m != killer {
			other = m
		}
	}
	require.NotEqual(t, NullMove, killer)
	require.NotEqual(t, NullMove, other)

	mo := newMoveOrderer(White, NullMove, killer, NullMove, NullMove, NullMove, newHistoryTable())
	scored := mo.Order(pos, []Move{other, killer})
	assert.Equal(t, killer, scored[0].move)
}

func TestKillersTwoSlot(t *testing.T) {
	k := newKillers(4)
	m1 := MakeMove(Normal, SquareA2, SquareA3, NoPiece, ColorFigure(White, Pawn))
	m2 := MakeMove(Normal, SquareB2, SquareB3, NoPiece, ColorFigure(White, Pawn))

	k.Update(0, m1)
	k.Update(0, m2)
	got1, got2 := k.Get(0)
	assert.Equal(t, m2, got1)
	assert.Equal(t, m1, got2)
}

func TestHistoryUpdateIncreasesReadTotal(t *testing.T) {
	h := newHistoryTable()
	ctx := moveOrderContext{side: White, counterIndex: -1, followIndex: -1}
	m := MakeMove(Normal, SquareD2, SquareD4, NoPiece, ColorFigure(White, Pawn))

	before := h.ReadTotal(ctx, m)
	h.Update(ctx, nil, m, 6)
	after := h.ReadTotal(ctx, m)
	assert.Greater(t, after, before)
}
