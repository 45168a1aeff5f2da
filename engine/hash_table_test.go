package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransTableUpdateAndRead(t *testing.T) {
	tt := NewTransTable(1)
	key := uint64(0x0123456789abcdef)
	m := MakeMove(Normal, SquareE2, SquareE4, NoPiece, ColorFigure(White, Pawn))

	tt.Update(key, 6, 123, BoundExact, m)
	depth, score, bound, move, ok := tt.Read(key)
	assert.True(t, ok)
	assert.Equal(t, 6, depth)
	assert.Equal(t, 123, score)
	assert.Equal(t, uint8(BoundExact), bound)
	assert.Equal(t, m, move)
}

func TestTransTableMissOnDifferentKey(t *testing.T) {
	tt := NewTransTable(1)
	tt.Update(1, 4, 10, BoundLower, NullMove)
	_, _, _, _, ok := tt.Read(2)
	assert.False(t, ok)
}

func TestTransTableShallowerSameGenerationNotReplaced(t *testing.T) {
	tt := NewTransTable(1)
	key := uint64(42)
	tt.Update(key, 10, 50, BoundExact, NullMove)
	// Same generation, shallower, non-exact bound: keeps the old entry's
	// depth-10 stored result instead of the depth-1 write.
	tt.Update(key, 1, 999, BoundLower, NullMove)
	depth, score, _, _, ok := tt.Read(key)
	assert.True(t, ok)
	assert.Equal(t, 10, depth)
	assert.Equal(t, 50, score)
}

func TestValueToFromTTRoundTrip(t *testing.T) {
	ply := 4
	mate := winIn(7)
	stored := valueToTT(mate, ply)
	assert.Equal(t, mate, valueFromTT(stored, ply))

	cp := 35
	assert.Equal(t, cp, valueFromTT(valueToTT(cp, ply), ply))
}
