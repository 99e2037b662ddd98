package algorithm

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/fairmatroid/intersection"
	"github.com/katalvlaran/fairmatroid/matroid"
	"github.com/katalvlaran/fairmatroid/rng"
)

// ApproximateFairness interpolates from the greedy solution towards a fair
// one. It requires a partition matroid.
type ApproximateFairness struct {
	base
	epsilon float64
	src     *rng.Source
	report  *intersection.ApproxReport
}

var _ Randomized = (*ApproximateFairness)(nil)

// NewApproximateFairness returns the interpolating algorithm with the given
// epsilon in [0, 1].
func NewApproximateFairness(epsilon float64, src *rng.Source, opts ...Option) *ApproximateFairness {
	return &ApproximateFairness{base: newBase(opts), epsilon: epsilon, src: src}
}

// Source returns the generator the paths are shuffled with.
func (x *ApproximateFairness) Source() *rng.Source { return x.src }

// Name implements Algorithm.
func (x *ApproximateFairness) Name() string {
	return fmt.Sprintf("Approximate Fairness Algorithm (epsilon=%g)", x.epsilon)
}

// Report returns the interpolation details of the last run, or nil.
func (x *ApproximateFairness) Report() *intersection.ApproxReport { return x.report }

// SolutionValue implements Algorithm. When the interpolation fails its
// post-check, the report and its solution are kept and the error returned.
func (x *ApproximateFairness) SolutionValue() (float64, error) {
	if err := x.start(); err != nil {
		return 0, err
	}
	p, ok := x.m.(*matroid.Partition)
	if !ok {
		return 0, fmt.Errorf("%w: %T, need a partition matroid", ErrUnsupportedMatroid, x.m)
	}
	r, err := intersection.ApproximateFairSubmodularMaximization(
		p, x.fc, x.oracle, x.universe, x.epsilon, x.src, x.engine()...)
	if err != nil && (r == nil || !errors.Is(err, intersection.ErrInvariant)) {
		return 0, err
	}
	x.report = r
	if err != nil {
		x.opts.Logger.WithError(err).Warn("keeping best-effort solution")
	}
	return x.record(r.Solution, r.Value), err
}
