package intersection_test

import (
	"io"
	"math/bits"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fairmatroid/fairness"
	"github.com/katalvlaran/fairmatroid/intersection"
	"github.com/katalvlaran/fairmatroid/matroid"
	"github.com/katalvlaran/fairmatroid/rng"
)

// quiet silences engine diagnostics in tests.
func quiet() intersection.Option {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return intersection.WithLogger(l)
}

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// subsets calls fn with every subset of elements (len ≤ 16).
func subsets(elements []int, fn func(set []int)) {
	n := len(elements)
	for mask := 0; mask < 1<<n; mask++ {
		set := make([]int, 0, bits.OnesCount(uint(mask)))
		for i := 0; i < n; i++ {
			if mask&(1<<i) != 0 {
				set = append(set, elements[i])
			}
		}
		fn(set)
	}
}

// randomPartition maps n elements to up to k groups with bounds in [0, maxBound].
func randomPartition(t testing.TB, src *rng.Source, n, k, maxBound int) *matroid.Partition {
	t.Helper()
	groups := make(map[int]int, n)
	for e := 0; e < n; e++ {
		groups[e] = src.Intn(k)
	}
	bounds := make([]int, k)
	for g := range bounds {
		bounds[g] = src.Intn(maxBound + 1)
	}
	m, err := matroid.NewPartition(groups, bounds)
	require.NoError(t, err)
	return m
}

// randomLaminar builds evens ⊃ multiples of four, and odds, with random
// bounds; elements ≥ n-1 are left without a group.
func randomLaminar(t testing.TB, src *rng.Source, n int) *matroid.Laminar {
	t.Helper()
	groups := make(map[int][]int, n)
	for e := 0; e < n-1; e++ {
		switch {
		case e%4 == 0:
			groups[e] = []int{0, 1}
		case e%2 == 0:
			groups[e] = []int{0}
		default:
			groups[e] = []int{2}
		}
	}
	bounds := []int{src.Intn(4), src.Intn(3), src.Intn(4)}
	m, err := matroid.NewLaminar(groups, bounds)
	require.NoError(t, err)
	return m
}

// randomFairness colors n elements with k colors and bounds Lower ∈ [0,2],
// Upper ∈ [Lower, Lower+2].
func randomFairness(t testing.TB, src *rng.Source, n, k int) *fairness.Constraint {
	t.Helper()
	colors := make(map[int]int, n)
	for e := 0; e < n; e++ {
		colors[e] = src.Intn(k)
	}
	bounds := make([]fairness.Bounds, k)
	for c := range bounds {
		lo := src.Intn(3)
		bounds[c] = fairness.Bounds{Lower: lo, Upper: lo + src.Intn(3)}
	}
	fc, err := fairness.New(colors, bounds)
	require.NoError(t, err)
	return fc
}
