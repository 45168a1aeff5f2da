package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNnueInputIndexDisjointPlanes(t *testing.T) {
	wp := nnueInputIndex(ColorFigure(White, Pawn), SquareA1)
	bp := nnueInputIndex(ColorFigure(Black, Pawn), SquareA1)
	assert.NotEqual(t, wp, bp)
	assert.Equal(t, wp+6*64, bp)

	// Same piece on a different square only changes the low 6 bits.
	wp2 := nnueInputIndex(ColorFigure(White, Pawn), SquareH8)
	assert.Equal(t, wp&^63, wp2&^63)
	assert.Equal(t, int(SquareH8), wp2&63)
}

func TestNnueInputIndexRange(t *testing.T) {
	for _, fig := range []Figure{Pawn, Knight, Bishop, Rook, Queen, King} {
		for _, col := range []Color{White, Black} {
			idx := nnueInputIndex(ColorFigure(col, fig), SquareD4)
			assert.GreaterOrEqual(t, idx, 0)
			assert.Less(t, idx, nnueInputSize)
		}
	}
}

func TestNnueEvaluatorMakeUnmakeRestoresAccumulator(t *testing.T) {
	weights := &NNUEWeights{HiddenWeights: make([]float32, nnueInputSize*nnueHiddenSize)}
	for i := range weights.HiddenWeights {
		weights.HiddenWeights[i] = float32(i%7) - 3
	}
	weights.OutputWeights[0] = 1

	pos, err := PositionFromFEN(FENStartPos)
	if err != nil {
		t.Fatal(err)
	}
	ev := NewNNUEEvaluator(weights)
	ev.Init(pos)
	before := ev.accum[0]

	m := MakeMove(Normal, SquareE2, SquareE4, NoPiece, ColorFigure(White, Pawn))
	pos.DoMove(m)
	ev.MakeMove(pos.LastUpdate())
	assert.NotEqual(t, before, ev.accum[ev.current])

	pos.UndoMove(m)
	ev.UnmakeMove()
	assert.Equal(t, before, ev.accum[ev.current])
}
