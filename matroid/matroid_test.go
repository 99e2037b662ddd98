package matroid_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fairmatroid/matroid"
)

// newLaminar builds groups: g0 = {0,1,2,3} (bound 3), g1 = {0,1} (bound 1),
// g2 = {2,3} (bound 2); element 4 is unconstrained.
func newLaminar(t *testing.T) *matroid.Laminar {
	t.Helper()
	m, err := matroid.NewLaminar(map[int][]int{
		0: {0, 1},
		1: {0, 1},
		2: {0, 2},
		3: {0, 2},
		4: {},
	}, []int{3, 1, 2})
	require.NoError(t, err)
	return m
}

func TestLaminar_AddAndSwap(t *testing.T) {
	m := newLaminar(t)
	require.True(t, m.CanAdd(0))
	m.Add(0)
	require.False(t, m.CanAdd(1), "g1 saturated")
	require.True(t, m.CanSwap(1, 0), "0 shares the saturated group")
	m.Add(2)
	m.Add(3)
	require.False(t, m.CanAdd(1), "g0 and g1 saturated")
	require.True(t, m.CanAdd(4), "element without groups is free")
	require.Equal(t, []int{0}, m.AllSwaps(1), "only 0 lies in both saturated groups")
	m.Swap(1, 0)
	require.Equal(t, []int{1, 2, 3}, m.Current())
	require.True(t, m.CurrentIsFeasible())
	require.Equal(t, []int{0, 1}, m.Groups(1))
	require.Equal(t, 3, m.NumGroups())
}

func TestLaminar_Feasibility(t *testing.T) {
	m := newLaminar(t)
	require.True(t, m.IsFeasible([]int{0, 2, 3, 4}))
	require.False(t, m.IsFeasible([]int{0, 1}))
	require.False(t, m.IsFeasible([]int{0, 2, 3, 1}))
	m.Add(0)
	m.Add(1)
	require.False(t, m.CurrentIsFeasible())
	m.Remove(1)
	require.True(t, m.CurrentIsFeasible())
	c := m.Clone()
	c.Reset()
	require.Equal(t, []int{0}, m.Current())
	require.Empty(t, c.Current())
}

func TestLaminar_Errors(t *testing.T) {
	_, err := matroid.NewLaminar(map[int][]int{0: {0}, 1: {0, 1}, 2: {1}}, []int{1, 1})
	require.ErrorIs(t, err, matroid.ErrNotLaminar)

	_, err = matroid.NewLaminar(map[int][]int{0: {5}}, []int{1})
	require.ErrorIs(t, err, matroid.ErrGroupOutOfRange)

	_, err = matroid.NewLaminar(nil, []int{-2})
	require.ErrorIs(t, err, matroid.ErrNegativeBound)

	m := newLaminar(t)
	m.Add(2)
	requirePanicIs(t, matroid.ErrPrecondition, func() { m.Add(2) })
	requirePanicIs(t, matroid.ErrPrecondition, func() { m.Remove(3) })
	requirePanicIs(t, matroid.ErrPrecondition, func() { m.CanSwap(2, 3) })
}

func TestUniform(t *testing.T) {
	_, err := matroid.NewUniform(-1)
	require.ErrorIs(t, err, matroid.ErrNegativeBound)

	u, err := matroid.NewUniform(2)
	require.NoError(t, err)
	require.Equal(t, 2, u.Rank())
	u.Add(5)
	u.Add(1)
	require.False(t, u.CanAdd(7))
	require.True(t, u.CanSwap(7, 5))
	require.Equal(t, []int{1, 5}, u.AllSwaps(7))
	u.Swap(7, 5)
	require.Equal(t, []int{1, 7}, u.Current())
	require.True(t, u.IsFeasible([]int{1, 2}))
	require.False(t, u.IsFeasible([]int{1, 2, 3}))
	require.True(t, u.CurrentIsFeasible())
	requirePanicIs(t, matroid.ErrPrecondition, func() { u.CanAdd(1) })
}

func TestConditioned_Baseline(t *testing.T) {
	base, err := matroid.NewPartition(map[int]int{0: 0, 1: 0, 2: 0, 3: 1, 4: 1}, []int{2, 1})
	require.NoError(t, err)
	base.Add(4) // state of the wrapped matroid is not inherited

	c, err := matroid.NewConditioned(base, []int{0, 0})
	require.NoError(t, err)
	require.Equal(t, []int{0}, c.Baseline())
	require.Empty(t, c.Current())

	require.False(t, c.CanAdd(0), "baseline element is never addable")
	require.False(t, c.InCurrent(0))
	require.True(t, c.CanAdd(1))
	c.Add(1)
	require.False(t, c.CanAdd(2), "group 0 holds baseline 0 and addition 1")
	require.Equal(t, []int{1}, c.AllSwaps(2), "baseline 0 is not offered as a swap")
	require.False(t, c.CanSwap(2, 0))
	require.Nil(t, c.AllSwaps(0))

	require.True(t, c.IsFeasible([]int{1}))
	require.False(t, c.IsFeasible([]int{1, 2}), "baseline counts towards the bound")
	require.True(t, c.IsFeasible([]int{0, 1}), "baseline is not double counted")

	c.Swap(2, 1)
	require.Equal(t, []int{2}, c.Current())
	require.True(t, c.CurrentIsFeasible())

	cl := c.Clone()
	c.Reset()
	require.Empty(t, c.Current())
	require.Equal(t, []int{2}, cl.Current())
	require.True(t, c.CanAdd(1), "reset keeps only the baseline")
	require.Equal(t, []int{4}, base.Current(), "wrapped matroid is untouched")

	requirePanicIs(t, matroid.ErrPrecondition, func() { c.Add(0) })
	requirePanicIs(t, matroid.ErrPrecondition, func() { c.Remove(0) })
}

func TestConditioned_InfeasibleBaseline(t *testing.T) {
	u, err := matroid.NewUniform(1)
	require.NoError(t, err)
	_, err = matroid.NewConditioned(u, []int{1, 2})
	require.ErrorIs(t, err, matroid.ErrInfeasibleBaseline)
}
