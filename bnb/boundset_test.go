package bnb_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvknap/bnb"
)

func TestBoundSet_RootBox(t *testing.T) {
	b := bnb.Root(3)
	assert.Equal(t, 3, b.N())
	assert.Equal(t, []float64{0, 0, 0}, b.Lower())
	assert.Equal(t, []float64{1, 1, 1}, b.Upper())
	assert.Zero(t, b.Depth())
	assert.False(t, b.Empty())
}

func TestBoundSet_TightenIsCopyOnWrite(t *testing.T) {
	root := bnb.Root(4)

	up, err := root.Tighten(1, bnb.Upper)
	require.NoError(t, err)
	lo, err := up.Tighten(3, bnb.Lower)
	require.NoError(t, err)

	assert.Equal(t, []float64{1, 1, 1, 1}, root.Upper(), "root untouched")
	assert.Equal(t, []float64{1, 0, 1, 1}, up.Upper())
	assert.Equal(t, []float64{0, 0, 0, 0}, up.Lower(), "parent untouched")
	assert.Equal(t, []float64{0, 0, 0, 1}, lo.Lower())
	assert.Equal(t, 0.0, lo.UpperAt(1))
	assert.Equal(t, 1.0, lo.LowerAt(3))
	assert.Equal(t, 2, lo.Depth())
	assert.Equal(t, []int{1}, lo.Excluded())
	assert.Equal(t, []int{3}, lo.Included())
}

func TestBoundSet_EmptyBoxAndErrors(t *testing.T) {
	b, err := bnb.Root(2).Tighten(0, bnb.Upper)
	require.NoError(t, err)
	b, err = b.Tighten(0, bnb.Lower)
	require.NoError(t, err)
	assert.True(t, b.Empty(), "x0 fixed to both 0 and 1")

	_, err = bnb.Root(2).Tighten(2, bnb.Upper)
	require.ErrorIs(t, err, bnb.ErrIndexOutOfRange)
	_, err = bnb.Root(2).Tighten(-1, bnb.Lower)
	require.ErrorIs(t, err, bnb.ErrIndexOutOfRange)
}

func TestPathAndOutcomeStrings(t *testing.T) {
	p := bnb.Path{{Index: 2, Kind: bnb.Upper}, {Index: 0, Kind: bnb.Lower}}
	assert.Equal(t, "[x2=0 x0=1]", p.String())
	assert.Equal(t, "[]", bnb.Path(nil).String())

	assert.Equal(t, "infeasible", bnb.Outcome{Kind: bnb.InfeasibleChild}.String())
	assert.Equal(t, "pruned", bnb.Outcome{Kind: bnb.Pruned, Objective: 3}.String())
	assert.Equal(t, "12.5", bnb.Outcome{Kind: bnb.Enqueued, Objective: 12.5}.String())
	assert.Equal(t, "upper", bnb.Upper.String())
	assert.Equal(t, "terminated", bnb.Terminated.String())
}
