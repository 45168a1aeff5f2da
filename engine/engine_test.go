package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// zeroEvaluator is a stub IEvaluator returning a constant score, enough
// to exercise the search's control flow and mate detection without real
// NNUE weights.
type zeroEvaluator struct{}

func (zeroEvaluator) Init(pos *Position)            {}
func (zeroEvaluator) MakeMove(update *netUpdate)    {}
func (zeroEvaluator) UnmakeMove()                   {}
func (zeroEvaluator) QuickEvaluate(pos *Position) int { return 0 }

// fixedDepthTimeManager never times out and ignores iteration progress.
type fixedDepthTimeManager struct{ start time.Time }

func newFixedDepthTimeManager() *fixedDepthTimeManager {
	return &fixedDepthTimeManager{start: time.Now()}
}
func (tm *fixedDepthTimeManager) Elapsed() time.Duration       { return time.Since(tm.start) }
func (tm *fixedDepthTimeManager) CheckTimeout() bool           { return false }
func (tm *fixedDepthTimeManager) IterationComplete(SearchInfo) {}

func TestSearchFindsBackRankMateInOne(t *testing.T) {
	// White rook delivers mate on the back rank: 1. Ra8#. The black king
	// is boxed in by its own untouched pawns and can't reach the rook.
	pos, err := PositionFromFEN("6k1/5ppp/8/8/8/8/8/R3K3 w - - 0 1")
	require.NoError(t, err)

	eng := NewEngine(NewTransTable(1), zeroEvaluator{}, newFixedDepthTimeManager(), nil)
	info := eng.Search(pos, 4)

	require.NotEmpty(t, info.MainLine)
	assert.Equal(t, "a1a8", info.MainLine[0].UCI())
	assert.Greater(t, info.Score, WinScore-10)
}

func TestSearchSingleLegalMoveReturnsImmediately(t *testing.T) {
	// Black king on h8 is in check from the rook on a8 and has exactly
	// one legal move, Kh7: g8 and g7 are both attacked.
	pos, err := PositionFromFEN("R6k/5K2/8/8/8/8/8/8 b - - 0 1")
	require.NoError(t, err)
	eng := NewEngine(NewTransTable(1), zeroEvaluator{}, newFixedDepthTimeManager(), nil)
	info := eng.Search(pos, 4)
	require.Len(t, info.MainLine, 1)
	assert.Equal(t, "h8h7", info.MainLine[0].UCI())
}

func TestNewGameResetsTables(t *testing.T) {
	pos, err := PositionFromFEN(FENStartPos)
	require.NoError(t, err)
	eng := NewEngine(NewTransTable(1), zeroEvaluator{}, newFixedDepthTimeManager(), nil)
	eng.Search(pos, 2)
	eng.NewGame()
	_, _, _, _, ok := eng.tt.Read(pos.Zobrist())
	assert.False(t, ok)
}
