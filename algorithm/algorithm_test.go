package algorithm_test

import (
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fairmatroid/algorithm"
	"github.com/katalvlaran/fairmatroid/fairness"
	"github.com/katalvlaran/fairmatroid/intersection"
	"github.com/katalvlaran/fairmatroid/matroid"
	"github.com/katalvlaran/fairmatroid/rng"
	"github.com/katalvlaran/fairmatroid/submodular"
)

func quiet() algorithm.Option {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return algorithm.WithLogger(l)
}

type instance struct {
	m  matroid.Matroid
	fc *fairness.Constraint
	o  *submodular.Oracle
}

// skewed: one group of capacity 3 over 0..5. Color 0 = {0,1,2} in [0,3]
// carries the value (10, 9, 8), color 1 = {3,4,5} in [2,3] weighs 1 each.
func skewed(t *testing.T) instance {
	t.Helper()
	groups := map[int]int{}
	colors := map[int]int{}
	for e := 0; e < 6; e++ {
		groups[e] = 0
		colors[e] = e / 3
	}
	m, err := matroid.NewPartition(groups, []int{3})
	require.NoError(t, err)
	fc, err := fairness.New(colors, []fairness.Bounds{{Lower: 0, Upper: 3}, {Lower: 2, Upper: 3}})
	require.NoError(t, err)
	f, err := submodular.NewAdditive(map[int]float64{0: 10, 1: 9, 2: 8, 3: 1, 4: 1, 5: 1})
	require.NoError(t, err)
	return instance{m: m, fc: fc, o: submodular.NewOracle(f)}
}

// run drives alg through the full protocol, inserting 0..5 once per pass.
func run(t *testing.T, in instance, alg algorithm.Algorithm) (float64, []int) {
	t.Helper()
	alg.Init(in.o, in.fc, in.m)
	for pass := 0; pass < alg.NumberOfPasses(); pass++ {
		if pass > 0 {
			require.NoError(t, alg.BeginNextPass())
		}
		for e := 0; e < 6; e++ {
			alg.Insert(e)
		}
	}
	v, err := alg.SolutionValue()
	require.NoError(t, err)
	sol, err := alg.SolutionVector()
	require.NoError(t, err)
	return v, sol
}

func TestProtocolErrors(t *testing.T) {
	in := skewed(t)
	alg := algorithm.NewUpperBound(true, quiet())

	_, err := alg.SolutionValue()
	require.ErrorIs(t, err, algorithm.ErrNotInitialized)

	alg.Init(in.o, in.fc, in.m)
	_, err = alg.SolutionVector()
	require.ErrorIs(t, err, algorithm.ErrNotComputed)
	require.ErrorIs(t, alg.BeginNextPass(), algorithm.ErrSinglePass)
	require.Equal(t, 1, alg.NumberOfPasses())

	_, err = alg.SolutionValue()
	require.NoError(t, err)
	_, err = alg.SolutionValue()
	require.ErrorIs(t, err, algorithm.ErrAlreadyComputed)

	tp := algorithm.NewTwoPass(true, quiet())
	tp.Init(in.o, in.fc, in.m)
	for e := 0; e < 6; e++ {
		tp.Insert(e)
	}
	require.NoError(t, tp.BeginNextPass())
	require.ErrorIs(t, tp.BeginNextPass(), algorithm.ErrPassOrder)
}

func TestInitLeavesInputsUntouched(t *testing.T) {
	in := skewed(t)
	run(t, in, algorithm.NewLowerBound(algorithm.PostGreedy, quiet()))

	assert.Empty(t, in.m.Current())
	assert.Empty(t, in.fc.Current())
	assert.Equal(t, 10.0, in.o.Delta(0))
	assert.Positive(t, in.o.Calls(), "clones share the call counter")
}

func TestNames(t *testing.T) {
	assert.Equal(t, "Random algorithm", algorithm.NewRandom(rng.New(1)).Name())
	assert.Equal(t, "Lower bound matroid intersection algorithm (postprocessing=FAST_GREEDY)",
		algorithm.NewLowerBound(algorithm.PostFastGreedy).Name())
	assert.Equal(t, "Upper bound matroid intersection algorithm (swapping)",
		algorithm.NewUpperBound(false).Name())
	assert.Equal(t, "Two pass algorithm (greedy)", algorithm.NewTwoPass(true).Name())
	assert.Equal(t, "Approximate Fairness Algorithm (epsilon=0.25)",
		algorithm.NewApproximateFairness(0.25, rng.New(1)).Name())
}

func TestUpperBound(t *testing.T) {
	for _, useGreedy := range []bool{true, false} {
		in := skewed(t)
		v, sol := run(t, in, algorithm.NewUpperBound(useGreedy, quiet()))
		require.Equal(t, []int{0, 1, 2}, sol, "greedy=%v", useGreedy)
		require.Equal(t, 27.0, v)
		require.Equal(t, 2, in.fc.Violation(sol))
	}
}

func TestLowerBound(t *testing.T) {
	cases := []struct {
		post  algorithm.Postprocessing
		want  []int
		value float64
	}{
		{algorithm.PostNone, []int{3, 4}, 2},
		{algorithm.PostFastGreedy, []int{0, 3, 4}, 12},
		{algorithm.PostGreedy, []int{0, 3, 4}, 12},
	}
	for _, tc := range cases {
		t.Run(tc.post.String(), func(t *testing.T) {
			in := skewed(t)
			v, sol := run(t, in, algorithm.NewLowerBound(tc.post, quiet()))
			require.Equal(t, tc.want, sol)
			require.Equal(t, tc.value, v)
			require.True(t, in.fc.IsFeasible(sol))
		})
	}
}

func TestLowerBound_NoFairSet(t *testing.T) {
	in := skewed(t)
	tight, err := fairness.New(map[int]int{0: 0, 1: 0, 2: 0, 3: 1, 4: 1, 5: 1},
		[]fairness.Bounds{{Lower: 2, Upper: 3}, {Lower: 2, Upper: 3}})
	require.NoError(t, err)

	alg := algorithm.NewLowerBound(algorithm.PostNone, quiet())
	alg.Init(in.o, tight, in.m)
	for e := 0; e < 6; e++ {
		alg.Insert(e)
	}
	_, err = alg.SolutionValue()
	require.ErrorIs(t, err, intersection.ErrNoFairSet)
}

// TestTwoPass: the fair set {3,4} splits into {3} and {4}; each half keeps
// room for 0 and 1 and is then restored. Both halves are worth 20 and the
// later one wins the tie.
func TestTwoPass(t *testing.T) {
	for _, useGreedy := range []bool{true, false} {
		in := skewed(t)
		alg := algorithm.NewTwoPass(useGreedy, quiet())
		require.Equal(t, 2, alg.NumberOfPasses())
		v, sol := run(t, in, alg)
		require.Equal(t, []int{0, 1, 4}, sol, "greedy=%v", useGreedy)
		require.Equal(t, 20.0, v)
		require.True(t, in.m.IsFeasible(sol))
	}
}

func TestTwoPass_WithoutSecondPass(t *testing.T) {
	in := skewed(t)
	alg := algorithm.NewTwoPass(true, quiet())
	alg.Init(in.o, in.fc, in.m)
	for e := 0; e < 6; e++ {
		alg.Insert(e)
	}
	v, err := alg.SolutionValue()
	require.NoError(t, err)
	require.Equal(t, 20.0, v)
}

func TestRandom_Reproducible(t *testing.T) {
	in := skewed(t)
	src := rng.New(5)
	_, first := run(t, in, algorithm.NewRandom(src, quiet()))

	src.Seed(5)
	_, second := run(t, in, algorithm.NewRandom(src, quiet()))

	require.Empty(t, cmp.Diff(first, second))
	require.Len(t, first, 3)
	require.True(t, in.m.IsFeasible(first))
	require.True(t, in.fc.UpperBoundsMatroid().IsFeasible(first))
}

func TestApproximateFairness(t *testing.T) {
	in := skewed(t)
	alg := algorithm.NewApproximateFairness(0, rng.New(7), quiet())
	v, sol := run(t, in, alg)
	require.Equal(t, []int{0, 3, 4}, sol)
	require.Equal(t, 12.0, v)
	require.NotNil(t, alg.Report())
	require.Equal(t, 2, alg.Report().Applied)
	require.Equal(t, rng.New(7).CurrentSeed(), alg.Source().CurrentSeed())
}

func TestApproximateFairness_NeedsPartition(t *testing.T) {
	in := skewed(t)
	u, err := matroid.NewUniform(3)
	require.NoError(t, err)
	in.m = u

	alg := algorithm.NewApproximateFairness(0.5, rng.New(1), quiet())
	alg.Init(in.o, in.fc, in.m)
	_, err = alg.SolutionValue()
	require.ErrorIs(t, err, algorithm.ErrUnsupportedMatroid)
}

func TestRandomizedMarker(t *testing.T) {
	algs := []algorithm.Algorithm{
		algorithm.NewRandom(rng.New(1)),
		algorithm.NewLowerBound(algorithm.PostNone),
		algorithm.NewUpperBound(true),
		algorithm.NewTwoPass(false),
		algorithm.NewApproximateFairness(0.5, rng.New(1)),
	}
	var randomized []string
	for _, a := range algs {
		if _, ok := a.(algorithm.Randomized); ok {
			randomized = append(randomized, a.Name())
		}
	}
	require.Equal(t, []string{"Random algorithm", "Approximate Fairness Algorithm (epsilon=0.5)"}, randomized)
}

// TestCardinality: every algorithm reaches the matroid rank when f(S) = |S|
// and the bounds are loose.
func TestCardinality(t *testing.T) {
	groups := map[int]int{0: 0, 1: 0, 2: 0, 3: 0, 4: 0, 5: 0}
	m, err := matroid.NewPartition(groups, []int{3})
	require.NoError(t, err)
	colors := map[int]int{0: 0, 1: 0, 2: 0, 3: 1, 4: 1, 5: 1}
	fc, err := fairness.New(colors, []fairness.Bounds{{Lower: 1, Upper: 2}, {Lower: 1, Upper: 2}})
	require.NoError(t, err)
	in := instance{m: m, fc: fc, o: submodular.NewOracle(submodular.NewCardinality([]int{0, 1, 2, 3, 4, 5}))}

	for _, alg := range []algorithm.Algorithm{
		algorithm.NewLowerBound(algorithm.PostGreedy, quiet()),
		algorithm.NewLowerBound(algorithm.PostFastGreedy, quiet()),
		algorithm.NewUpperBound(true, quiet()),
		algorithm.NewApproximateFairness(0.3, rng.New(0), quiet()),
	} {
		v, sol := run(t, in, alg)
		assert.Equal(t, 3.0, v, alg.Name())
		assert.True(t, fc.IsFeasible(sol), alg.Name())
	}
}

// dependent reports every current set as dependent, so each engine
// post-check fails while the sets themselves stay valid.
type dependent struct{ matroid.Matroid }

func (d dependent) CurrentIsFeasible() bool { return false }

func (d dependent) Clone() matroid.Matroid { return dependent{d.Matroid.Clone()} }

func dependentUniform(t *testing.T, rank int) matroid.Matroid {
	t.Helper()
	u, err := matroid.NewUniform(rank)
	require.NoError(t, err)
	return dependent{u}
}

// drive runs alg over 0..5 without requiring a clean SolutionValue.
func drive(in instance, alg algorithm.Algorithm) (float64, error) {
	alg.Init(in.o, in.fc, in.m)
	for pass := 0; pass < alg.NumberOfPasses(); pass++ {
		if pass > 0 {
			if err := alg.BeginNextPass(); err != nil {
				return 0, err
			}
		}
		for e := 0; e < 6; e++ {
			alg.Insert(e)
		}
	}
	return alg.SolutionValue()
}

func TestFailedPostCheckKeepsSolution(t *testing.T) {
	cases := []struct {
		name  string
		alg   algorithm.Algorithm
		want  []int
		value float64
	}{
		{"upper bound", algorithm.NewUpperBound(true, quiet()), []int{0, 1}, 19},
		{"lower bound", algorithm.NewLowerBound(algorithm.PostNone, quiet()), []int{3, 4}, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := skewed(t)
			in.m = dependentUniform(t, 2)

			v, err := drive(in, tc.alg)
			require.ErrorIs(t, err, intersection.ErrInvariant)
			require.Equal(t, tc.value, v)

			sol, err := tc.alg.SolutionVector()
			require.NoError(t, err)
			require.Equal(t, tc.want, sol)
		})
	}
}

func TestTwoPass_FailedPostCheckKeepsSolution(t *testing.T) {
	in := skewed(t)
	in.m = dependentUniform(t, 3)
	alg := algorithm.NewTwoPass(true, quiet())

	v, err := drive(in, alg)
	require.ErrorIs(t, err, intersection.ErrInvariant)
	sol, err := alg.SolutionVector()
	require.NoError(t, err)
	require.NotEmpty(t, sol)
	require.Equal(t, in.o.Objective(sol), v)
}
