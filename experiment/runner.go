package experiment

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/fairmatroid/algorithm"
	"github.com/katalvlaran/fairmatroid/fairness"
	"github.com/katalvlaran/fairmatroid/intersection"
	"github.com/katalvlaran/fairmatroid/matroid"
	"github.com/katalvlaran/fairmatroid/rng"
)

// Runner drives algorithms through their protocol. It owns the random
// source shared by the randomized algorithms and re-seeds it before each
// algorithm so every algorithm sees the same stream.
type Runner struct {
	src  *rng.Source
	opts Options
}

// NewRunner returns a Runner re-seeding src. It fails with
// ErrOptionViolation on an invalid option.
func NewRunner(src *rng.Source, opts ...Option) (*Runner, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if src == nil {
		src = rng.New(o.Seed)
	}
	return &Runner{src: src, opts: o}, nil
}

// Source returns the runner's random source.
func (r *Runner) Source() *rng.Source { return r.src }

// FeasibleSolutionExists reports whether some set independent in m meets
// every lower bound of fc. It works on clones, so m and fc are untouched.
func (r *Runner) FeasibleSolutionExists(m matroid.Matroid, fc *fairness.Constraint, universe []int) (bool, error) {
	mc := m.Clone()
	if err := intersection.MaxIntersection(mc, fc.LowerBoundsMatroid(), universe,
		intersection.WithContext(r.opts.Ctx), intersection.WithLogger(r.opts.Logger)); err != nil {
		if !errors.Is(err, intersection.ErrInvariant) {
			return false, err
		}
		r.opts.Logger.WithError(err).Warn("feasibility check on a best-effort set")
	}
	solution := mc.Current()
	ok := fc.IsFeasible(solution)
	r.opts.Logger.WithFields(logrus.Fields{
		"independent": mc.IsFeasible(solution),
		"fair":        ok,
	}).Debug("feasibility check")
	return ok, nil
}

// Run checks feasibility and then runs every algorithm on inst. Randomized
// algorithms run Options.Repeats times, the others once. The oracle call
// counter is reset before and after each algorithm.
//
// An infeasible instance yields ErrInfeasibleInstance. A failed engine
// post-check is logged and the best-effort solution is kept; any other
// algorithm error stops the run and is returned with the results gathered
// so far.
func (r *Runner) Run(inst Instance, algs []algorithm.Algorithm) ([]Result, error) {
	if err := inst.validate(); err != nil {
		return nil, err
	}
	universe := inst.Oracle.Universe()
	ok, err := r.FeasibleSolutionExists(inst.Matroid, inst.Fairness, universe)
	if err != nil {
		return nil, err
	}
	if !ok {
		r.opts.Logger.WithField("label", inst.Label).Warn("skipping infeasible instance")
		return nil, fmt.Errorf("%w: %s", ErrInfeasibleInstance, inst.Label)
	}

	inst.Oracle.ResetCalls()
	results := make([]Result, 0, len(algs))
	for _, alg := range algs {
		res, err := r.runOne(inst, universe, alg)
		if err != nil {
			return results, fmt.Errorf("experiment: %s on %q: %w", alg.Name(), inst.Label, err)
		}
		results = append(results, res)
	}
	return results, nil
}

func (r *Runner) runOne(inst Instance, universe []int, alg algorithm.Algorithm) (Result, error) {
	r.src.Seed(r.opts.Seed)
	defer inst.Oracle.ResetCalls()

	reps := 1
	if _, ok := alg.(algorithm.Randomized); ok {
		reps = r.opts.Repeats
	}
	res := Result{
		RunID:     uuid.New(),
		Label:     inst.Label,
		Algorithm: alg.Name(),
	}
	log := r.opts.Logger.WithFields(logrus.Fields{
		"algorithm": res.Algorithm,
		"label":     res.Label,
		"run":       res.RunID.String(),
	})

	for j := 0; j < reps; j++ {
		if err := r.opts.Ctx.Err(); err != nil {
			return res, err
		}
		solution, value, err := drive(alg, inst, universe)
		if err != nil {
			if !errors.Is(err, intersection.ErrInvariant) {
				return res, err
			}
			res.PostCheckFailures++
			log.WithError(err).WithField("repeat", j).Error("post-check failed, keeping best-effort solution")
		}
		violation := inst.Fairness.Violation(solution)
		ratio := inst.Fairness.LowerBoundRatio(solution)
		res.Distribution = inst.Fairness.Distribution(solution)

		res.Values = append(res.Values, value)
		res.Violations = append(res.Violations, violation)
		res.Ratios = append(res.Ratios, ratio)
		if r.opts.Solutions {
			res.Solutions = append(res.Solutions, solution)
		}
		log.WithFields(logrus.Fields{
			"repeat":       j,
			"value":        value,
			"violation":    violation,
			"ratio":        ratio,
			"distribution": res.Distribution,
		}).Debug("run done")
	}

	res.Runs = reps
	res.Value, res.ValueStdDev = mean(res.Values), sampleStdDev(res.Values)
	violations := toFloats(res.Violations)
	res.Violation, res.ViolationStdDev = mean(violations), sampleStdDev(violations)
	res.Ratio, res.RatioStdDev = mean(res.Ratios), sampleStdDev(res.Ratios)
	res.OracleCalls = inst.Oracle.Calls()

	log.WithFields(logrus.Fields{
		"value":        res.Value,
		"violation":    res.Violation,
		"oracle_calls": res.OracleCalls,
	}).Info("algorithm done")
	return res, nil
}

// drive runs the Init, Insert, SolutionValue, SolutionVector protocol once,
// streaming universe once per pass. An ErrInvariant error from
// SolutionValue comes back with the recorded solution.
func drive(alg algorithm.Algorithm, inst Instance, universe []int) ([]int, float64, error) {
	alg.Init(inst.Oracle, inst.Fairness, inst.Matroid)
	for pass := 0; pass < alg.NumberOfPasses(); pass++ {
		if pass > 0 {
			if err := alg.BeginNextPass(); err != nil {
				return nil, 0, err
			}
		}
		for _, e := range universe {
			alg.Insert(e)
		}
	}
	value, postErr := alg.SolutionValue()
	if postErr != nil && !errors.Is(postErr, intersection.ErrInvariant) {
		return nil, 0, postErr
	}
	solution, err := alg.SolutionVector()
	if err != nil {
		return nil, 0, err
	}
	return solution, value, postErr
}
