package intersection

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/fairmatroid/fairness"
	"github.com/katalvlaran/fairmatroid/matroid"
)

// MaxIntersection computes a maximum-cardinality common independent set of
// a and b over elements and leaves it as the current set of both.
//
// Steps:
//  1. Reset a and b.
//  2. Add every element both matroids accept, in elements order.
//  3. Build the exchange graph and search it breadth-first from every
//     element a accepts outright; the first dequeued element b accepts
//     outright ends the search.
//  4. No such element: the common set is maximum, stop.
//  5. Otherwise swap along the parent chain on both matroids, add the
//     source, and go back to 2.
//
// Returns an error wrapping ErrInvariant when the final sets are not
// independent or differ; the sets are left in place. A cancelled
// Options.Ctx returns its error.
//
// Complexity: O(r · |E| · cost(AllSwaps)) for r = final rank.
func MaxIntersection(a, b matroid.Matroid, elements []int, opts ...Option) error {
	o := buildOptions(opts)
	a.Reset()
	b.Reset()
	if err := augment(a, b, elements, o); err != nil {
		return err
	}
	if err := checkCommon(a, b); err != nil {
		o.Logger.WithError(err).Error("max intersection post-check failed")
		return err
	}
	return nil
}

// FairMaxIntersection returns a maximum set that is independent in a, meets
// every lower bound of fc and violates no upper bound.
//
// It first intersects a with fc's lower-bound matroid. If that falls short
// of the lower-bound sum no fair set exists and ErrNoFairSet is returned with
// a nil slice. Otherwise the set seeds fc's upper-bound matroid and the
// augmenting loop continues, without a reset, against it. fc's own current
// set is not touched; a holds the result on return. A failed post-check in
// either stage returns a's current set with the ErrInvariant-wrapped error.
func FairMaxIntersection(a matroid.Matroid, fc *fairness.Constraint, elements []int, opts ...Option) ([]int, error) {
	o := buildOptions(opts)
	lower := fc.LowerBoundsMatroid()
	if err := MaxIntersection(a, lower, elements, opts...); err != nil {
		if errors.Is(err, ErrInvariant) {
			return a.Current(), err
		}
		return nil, err
	}

	base := lower.Current()
	if want := fc.LowerBoundSum(); len(base) != want {
		o.Logger.WithFields(logrus.Fields{
			"found":  len(base),
			"needed": want,
		}).Warn("no fair set exists")
		return nil, fmt.Errorf("%w: lower bounds met by %d of %d elements", ErrNoFairSet, len(base), want)
	}

	upper := fc.UpperBoundsMatroid()
	for _, e := range base {
		upper.Add(e)
	}
	if err := augment(a, upper, elements, o); err != nil {
		return nil, err
	}
	if err := checkCommon(a, upper); err != nil {
		o.Logger.WithError(err).Error("fair max intersection post-check failed")
		return a.Current(), err
	}
	return a.Current(), nil
}
