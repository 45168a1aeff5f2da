package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOptionsDefaultsAndSetInt(t *testing.T) {
	o := NewOptions()
	hash, ok := o.Get("Hash")
	assert.True(t, ok)
	assert.Equal(t, 64, hash.Int)

	assert.NoError(t, o.SetInt("Hash", 128))
	hash, _ = o.Get("Hash")
	assert.Equal(t, 128, hash.Int)

	assert.Error(t, o.SetInt("Hash", 5000))
	assert.Error(t, o.SetInt("Threads", 2))
	assert.Error(t, o.SetInt("NoSuchOption", 1))
}

func TestOptionsSetBool(t *testing.T) {
	o := NewOptions()
	assert.NoError(t, o.SetBool("AnalyseMode", true))
	v, _ := o.Get("AnalyseMode")
	assert.True(t, v.Bool)
}

func TestScoreToUCI(t *testing.T) {
	cp := ScoreToUCI(35)
	assert.Equal(t, UCICentipawns, cp.Kind)
	assert.Equal(t, 35, cp.Value)
	assert.Equal(t, "cp 35", cp.String())

	mateIn3 := ScoreToUCI(winIn(5))
	assert.Equal(t, UCIMate, mateIn3.Kind)
	assert.Greater(t, mateIn3.Value, 0)

	gettingMated := ScoreToUCI(lossIn(5))
	assert.Equal(t, UCIMate, gettingMated.Kind)
	assert.Less(t, gettingMated.Value, 0)
}
