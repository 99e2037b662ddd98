package intersection

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/fairmatroid/fairness"
	"github.com/katalvlaran/fairmatroid/matroid"
	"github.com/katalvlaran/fairmatroid/rng"
	"github.com/katalvlaran/fairmatroid/submodular"
)

// ApproxReport describes one run of ApproximateFairSubmodularMaximization.
type ApproxReport struct {
	// Greedy is Y, the greedy set under a and the fairness upper bounds.
	Greedy []int
	// Fair is P, the maximum fair set.
	Fair []int
	// Solution is the final set, also left in a, fc and the oracle.
	Solution []int

	// Paths is the number of decomposed paths, Applied how many were used.
	Paths   int
	Applied int

	GreedyValue float64
	FairValue   float64
	Value       float64

	// GreedyIsFair reports whether Y already met every bound.
	GreedyIsFair bool
}

// ApproximateFairSubmodularMaximization interpolates between a greedy set and
// a maximum fair set.
//
//  1. P = FairMaxIntersection(a, fc, universe); ErrNoFairSet is returned as is.
//  2. Y = Greedy over a and fc's upper-bound matroid, from an empty oracle.
//  3. Decompose Y △ P with ReturnPaths.
//  4. Load Y into a, fc and oracle, shuffle the paths with src and apply the
//     first src.RoundUpOrDown((1−epsilon)·|paths|) of them.
//
// After each applied path the solution is checked against a and the upper
// bounds; a violation is logged and returned as an ErrInvariant-wrapped error
// together with the report. Failed post-checks in steps 1 and 2 are carried
// the same way. epsilon outside [0, 1] yields ErrEpsilonRange.
func ApproximateFairSubmodularMaximization(
	a *matroid.Partition,
	fc *fairness.Constraint,
	oracle *submodular.Oracle,
	universe []int,
	epsilon float64,
	src *rng.Source,
	opts ...Option,
) (*ApproxReport, error) {
	if math.IsNaN(epsilon) || epsilon < 0 || epsilon > 1 {
		return nil, fmt.Errorf("%w: %g", ErrEpsilonRange, epsilon)
	}
	o := buildOptions(opts)

	var invErr error
	setP, err := FairMaxIntersection(a, fc, universe, opts...)
	if err != nil {
		if !errors.Is(err, ErrInvariant) {
			return nil, err
		}
		invErr = err
	}

	a.Reset()
	oracle.Reset()
	setY, err := Greedy(a, fc.UpperBoundsMatroid(), oracle, universe, opts...)
	if err != nil {
		if !errors.Is(err, ErrInvariant) {
			return nil, err
		}
		invErr = errors.Join(invErr, err)
	}

	dec := ReturnPaths(a, fc, setY, setP, opts...)

	a.Reset()
	fc.Reset()
	oracle.Reset()
	for _, e := range setY {
		a.Add(e)
		fc.Add(e)
		oracle.Add(e)
	}

	paths := slices.Clone(dec.Paths)
	rng.Shuffle(src, paths)
	n := src.RoundUpOrDown((1 - epsilon) * float64(len(paths)))

	report := &ApproxReport{
		Greedy:       setY,
		Fair:         setP,
		Paths:        len(paths),
		Applied:      n,
		GreedyIsFair: fc.IsFeasible(setY),
	}
	o.Logger.WithFields(logrus.Fields{
		"greedy":   len(setY),
		"fair":     len(setP),
		"paths":    len(paths),
		"applying": n,
		"fair_y":   report.GreedyIsFair,
	}).Debug("interpolating greedy towards fair set")

	upper := fc.UpperBoundsMatroid()
	for _, path := range paths[:n] {
		applyToSolution(a, fc, oracle, path)
		if cur := a.Current(); !a.CurrentIsFeasible() || !upper.IsFeasible(cur) {
			err := fmt.Errorf("%w: infeasible set %v after path %v", ErrInvariant, cur, path)
			o.Logger.WithError(err).Error("approximate fairness post-check failed")
			invErr = errors.Join(invErr, err)
		}
	}

	report.Solution = a.Current()
	report.GreedyValue = oracle.CountedObjective(setY)
	report.Value = oracle.CountedObjective(report.Solution)
	report.FairValue = oracle.CountedObjective(setP)
	return report, invErr
}

// applyToSolution adds the even-position elements of path and removes the
// odd-position ones on a, fc and oracle.
func applyToSolution(a matroid.Matroid, fc *fairness.Constraint, oracle *submodular.Oracle, path []int) {
	for i, e := range path {
		if i%2 == 0 {
			a.Add(e)
			fc.Add(e)
			oracle.Add(e)
			continue
		}
		a.Remove(e)
		fc.Remove(e)
		oracle.Remove(e)
	}
}
