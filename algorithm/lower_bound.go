package algorithm

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/katalvlaran/fairmatroid/intersection"
)

// Postprocessing selects how LowerBound extends the lower-bound intersection.
type Postprocessing int

const (
	// PostNone returns the intersection as is.
	PostNone Postprocessing = iota
	// PostFastGreedy ranks the remaining elements once by marginal gain and
	// adds them in that order while the matroid and the upper bounds allow.
	PostFastGreedy
	// PostGreedy runs Greedy under the upper-bound matroid on top of the
	// intersection.
	PostGreedy
)

// String returns the upper-case name used in algorithm names and configs.
func (p Postprocessing) String() string {
	switch p {
	case PostNone:
		return "NONE"
	case PostFastGreedy:
		return "FAST_GREEDY"
	case PostGreedy:
		return "GREEDY"
	default:
		return fmt.Sprintf("Postprocessing(%d)", int(p))
	}
}

// LowerBound intersects the matroid with the fairness lower-bound matroid and
// optionally grows the result.
type LowerBound struct {
	base
	post Postprocessing
}

// NewLowerBound returns the lower-bound intersection algorithm.
func NewLowerBound(post Postprocessing, opts ...Option) *LowerBound {
	return &LowerBound{base: newBase(opts), post: post}
}

// Name implements Algorithm.
func (l *LowerBound) Name() string {
	return fmt.Sprintf("Lower bound matroid intersection algorithm (postprocessing=%s)", l.post)
}

// SolutionValue implements Algorithm. It fails with an error wrapping
// intersection.ErrNoFairSet when the lower bounds cannot be met. On an
// ErrInvariant error the matroid's current set is kept as the solution.
func (l *LowerBound) SolutionValue() (float64, error) {
	if err := l.start(); err != nil {
		return 0, err
	}
	lower := l.fc.LowerBoundsMatroid()
	if err := intersection.MaxIntersection(l.m, lower, l.universe, l.engine()...); err != nil {
		return l.keep(l.m.Current(), err)
	}
	solution := l.m.Current()
	if want := l.fc.LowerBoundSum(); len(solution) != want {
		return 0, fmt.Errorf("%w: lower bounds met by %d of %d elements",
			intersection.ErrNoFairSet, len(solution), want)
	}

	switch l.post {
	case PostFastGreedy:
		l.fastGreedy(solution)
	case PostGreedy:
		upper := l.fc.UpperBoundsMatroid()
		for _, e := range solution {
			upper.Add(e)
			l.oracle.Add(e)
		}
		if _, err := intersection.Greedy(l.m, upper, l.oracle, l.universe, l.engine()...); err != nil {
			return l.keep(l.m.Current(), err)
		}
	}
	return l.finish(l.m.Current()), nil
}

// fastGreedy queries each remaining element's gain over solution once.
func (l *LowerBound) fastGreedy(solution []int) {
	for _, e := range solution {
		l.fc.Add(e)
		l.oracle.Add(e)
	}
	gains := make(map[int]float64, len(l.universe))
	var rest []int
	for _, e := range l.universe {
		if l.m.InCurrent(e) {
			continue
		}
		if _, ok := gains[e]; ok {
			continue
		}
		gains[e] = l.oracle.CountedDelta(e)
		rest = append(rest, e)
	}
	slices.SortStableFunc(rest, func(x, y int) int { return cmp.Compare(gains[y], gains[x]) })

	for _, e := range rest {
		if l.fc.CanAdd(e) && l.m.CanAdd(e) {
			l.m.Add(e)
			l.fc.Add(e)
			l.oracle.Add(e)
		}
	}
}
