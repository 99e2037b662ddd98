package algorithm

import "fmt"

// UpperBound maximizes under the matroid and the fairness upper bounds only.
// Its solution may miss lower bounds.
type UpperBound struct {
	base
	greedy bool
}

// NewUpperBound returns the upper-bound algorithm. useGreedy selects Greedy
// over the single-pass swapping heuristic.
func NewUpperBound(useGreedy bool, opts ...Option) *UpperBound {
	return &UpperBound{base: newBase(opts), greedy: useGreedy}
}

// Name implements Algorithm.
func (u *UpperBound) Name() string {
	return fmt.Sprintf("Upper bound matroid intersection algorithm (%s)", variant(u.greedy))
}

// SolutionValue implements Algorithm. A failed post-check still records the
// matroid's current set.
func (u *UpperBound) SolutionValue() (float64, error) {
	if err := u.start(); err != nil {
		return 0, err
	}
	u.m.Reset()
	if err := u.maximize(u.greedy, u.m, u.fc.UpperBoundsMatroid(), u.universe); err != nil {
		return u.keep(u.m.Current(), err)
	}
	return u.finish(u.m.Current()), nil
}
