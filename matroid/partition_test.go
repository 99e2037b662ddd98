package matroid_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/fairmatroid/matroid"
)

// requirePanicIs asserts fn panics with an error matching target.
func requirePanicIs(t *testing.T, target error, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected a panic")
		err, ok := r.(error)
		require.True(t, ok, "panic value must be an error, got %T", r)
		require.True(t, errors.Is(err, target), "panic %v must wrap %v", err, target)
	}()
	fn()
}

// PartitionSuite groups tests for the partition matroid.
type PartitionSuite struct {
	suite.Suite
	m *matroid.Partition
}

// SetupTest builds three groups {0,1,2} {3,4,5} {6,7,8} with bounds [2,1,0].
func (s *PartitionSuite) SetupTest() {
	groups := map[int]int{}
	for e := 0; e < 9; e++ {
		groups[e] = e / 3
	}
	m, err := matroid.NewPartition(groups, []int{2, 1, 0})
	require.NoError(s.T(), err)
	s.m = m
}

func (s *PartitionSuite) TestCanAddRespectsBounds() {
	s.True(s.m.CanAdd(0))
	s.m.Add(0)
	s.True(s.m.CanAdd(1))
	s.m.Add(1)
	s.False(s.m.CanAdd(2), "group 0 is saturated")
	s.True(s.m.CanAdd(3))
	s.False(s.m.CanAdd(6), "group 2 has zero capacity")
	s.Equal([]int{2, 0, 0}, s.m.Counts())
}

func (s *PartitionSuite) TestSwapShortCircuit() {
	s.m.Add(0)
	s.m.Add(1)
	s.m.Add(3)
	s.True(s.m.CanSwap(2, 0), "same group swap keeps counts")
	s.False(s.m.CanSwap(2, 3), "other group swap leaves group 0 saturated")
	s.Equal([]int{0, 1}, s.m.AllSwaps(2))
	s.Equal([]int{3}, s.m.AllSwaps(4))
}

func (s *PartitionSuite) TestAllSwapsWhenAddable() {
	s.m.Add(0)
	s.m.Add(3)
	s.Equal([]int{0, 3}, s.m.AllSwaps(1), "addable element may replace anything")
}

func (s *PartitionSuite) TestSwapAndRemove() {
	s.m.Add(0)
	s.m.Swap(1, 0)
	s.Equal([]int{1}, s.m.Current())
	s.True(s.m.InCurrent(1))
	s.False(s.m.InCurrent(0))
	s.m.Remove(1)
	s.Empty(s.m.Current())
	s.Equal([]int{0, 0, 0}, s.m.Counts())
}

func (s *PartitionSuite) TestFeasibility() {
	s.True(s.m.IsFeasible([]int{0, 1, 3}))
	s.False(s.m.IsFeasible([]int{0, 1, 2}))
	s.False(s.m.IsFeasible([]int{6}))
	s.True(s.m.IsFeasible(nil))

	// Add does not enforce bounds; the live check does.
	s.m.Add(3)
	s.m.Add(4)
	s.False(s.m.CurrentIsFeasible())
}

func (s *PartitionSuite) TestCloneIsIndependent() {
	s.m.Add(0)
	c := s.m.Clone()
	c.Add(3)
	s.Equal([]int{0}, s.m.Current())
	s.Equal([]int{0, 3}, c.Current())
}

func (s *PartitionSuite) TestResetReplayIdempotent() {
	seq := []int{4, 0, 1}
	for _, e := range seq {
		s.m.Add(e)
	}
	first := s.m.Current()
	s.m.Reset()
	s.Empty(s.m.Current())
	for i := len(seq) - 1; i >= 0; i-- {
		s.m.Add(seq[i])
	}
	s.Equal(first, s.m.Current())
}

func (s *PartitionSuite) TestPreconditions() {
	s.m.Add(0)
	requirePanicIs(s.T(), matroid.ErrPrecondition, func() { s.m.Add(0) })
	requirePanicIs(s.T(), matroid.ErrPrecondition, func() { s.m.CanAdd(0) })
	requirePanicIs(s.T(), matroid.ErrPrecondition, func() { s.m.Remove(5) })
	requirePanicIs(s.T(), matroid.ErrPrecondition, func() { s.m.CanSwap(1, 5) })
	requirePanicIs(s.T(), matroid.ErrPrecondition, func() { s.m.Swap(1, 5) })
	requirePanicIs(s.T(), matroid.ErrUnknownElement, func() { s.m.CanAdd(42) })
}

func TestPartitionSuite(t *testing.T) {
	suite.Run(t, new(PartitionSuite))
}

// TestNewPartition_Errors covers construction validation.
func TestNewPartition_Errors(t *testing.T) {
	_, err := matroid.NewPartition(map[int]int{0: 0}, []int{-1})
	require.ErrorIs(t, err, matroid.ErrNegativeBound)

	_, err = matroid.NewPartition(map[int]int{0: 3}, []int{1})
	require.ErrorIs(t, err, matroid.ErrGroupOutOfRange)

	m, err := matroid.NewPartition(map[int]int{0: 0, 1: 1}, []int{1, 1})
	require.NoError(t, err)
	require.Equal(t, 2, m.NumGroups())
	require.Equal(t, 1, m.Group(1))
	require.Equal(t, []int{1, 1}, m.Bounds())
}
