package algorithm

import (
	"slices"

	"github.com/katalvlaran/fairmatroid/rng"
)

// Random shuffles the inserted elements and keeps every element that both the
// matroid and the fairness upper bounds still accept.
type Random struct {
	base
	src *rng.Source
}

var _ Randomized = (*Random)(nil)

// NewRandom returns the random baseline drawing from src.
func NewRandom(src *rng.Source, opts ...Option) *Random {
	return &Random{base: newBase(opts), src: src}
}

// Source returns the generator the algorithm shuffles with.
func (r *Random) Source() *rng.Source { return r.src }

// Name implements Algorithm.
func (r *Random) Name() string { return "Random algorithm" }

// SolutionValue implements Algorithm.
func (r *Random) SolutionValue() (float64, error) {
	if err := r.start(); err != nil {
		return 0, err
	}
	r.m.Reset()
	upper := r.fc.UpperBoundsMatroid()

	order := slices.Clone(r.universe)
	rng.Shuffle(r.src, order)
	var solution []int
	for _, e := range order {
		if r.m.InCurrent(e) {
			continue
		}
		if r.m.CanAdd(e) && upper.CanAdd(e) {
			r.m.Add(e)
			upper.Add(e)
			solution = append(solution, e)
		}
	}
	return r.finish(solution), nil
}
