package config

import (
	"fmt"

	"github.com/katalvlaran/fairmatroid/algorithm"
	"github.com/katalvlaran/fairmatroid/experiment"
	"github.com/katalvlaran/fairmatroid/fairness"
	"github.com/katalvlaran/fairmatroid/matroid"
	"github.com/katalvlaran/fairmatroid/rng"
	"github.com/katalvlaran/fairmatroid/submodular"
)

// Build constructs the instance and the algorithms. Randomized algorithms
// draw from src; opts are passed to every algorithm.
func (c *Config) Build(src *rng.Source, opts ...algorithm.Option) (experiment.Instance, []algorithm.Algorithm, error) {
	f, err := c.Oracle.build()
	if err != nil {
		return experiment.Instance{}, nil, err
	}
	m, err := c.Matroid.build()
	if err != nil {
		return experiment.Instance{}, nil, err
	}
	fc, err := c.Fairness.build()
	if err != nil {
		return experiment.Instance{}, nil, err
	}

	algs := make([]algorithm.Algorithm, 0, len(c.Algorithms))
	for i, a := range c.Algorithms {
		alg, err := a.build(src, opts)
		if err != nil {
			return experiment.Instance{}, nil, fmt.Errorf("algorithms[%d]: %w", i, err)
		}
		algs = append(algs, alg)
	}

	inst := experiment.Instance{
		Label:    c.Name,
		Oracle:   submodular.NewOracle(f),
		Fairness: fc,
		Matroid:  m,
	}
	return inst, algs, nil
}

func (o OracleConfig) build() (submodular.Function, error) {
	switch o.Kind {
	case OracleCardinality:
		return submodular.NewCardinality(o.Universe), nil
	case OracleAdditive:
		f, err := submodular.NewAdditive(o.Weights)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		return f, nil
	case OracleCoverage:
		return submodular.NewCoverage(o.Neighbors), nil
	}
	return nil, invalid("unknown oracle kind %q", o.Kind)
}

func (m MatroidConfig) build() (matroid.Matroid, error) {
	var (
		mat matroid.Matroid
		err error
	)
	switch m.Kind {
	case MatroidPartition:
		mat, err = matroid.NewPartition(m.Groups, m.Bounds)
	case MatroidLaminar:
		mat, err = matroid.NewLaminar(m.LaminarGroups, m.Bounds)
	case MatroidUniform:
		mat, err = matroid.NewUniform(m.Rank)
	default:
		return nil, invalid("unknown matroid kind %q", m.Kind)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return mat, nil
}

func (f FairnessConfig) build() (*fairness.Constraint, error) {
	bounds := make([]fairness.Bounds, len(f.Bounds))
	for i, b := range f.Bounds {
		bounds[i] = fairness.Bounds{Lower: b.Lower, Upper: b.Upper}
	}
	fc, err := fairness.New(f.Colors, bounds)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return fc, nil
}

func (a AlgorithmConfig) build(src *rng.Source, opts []algorithm.Option) (algorithm.Algorithm, error) {
	switch a.Kind {
	case AlgRandom:
		return algorithm.NewRandom(src, opts...), nil
	case AlgLowerBound:
		post, err := parsePostprocessing(a.Postprocessing)
		if err != nil {
			return nil, err
		}
		return algorithm.NewLowerBound(post, opts...), nil
	case AlgUpperBound:
		return algorithm.NewUpperBound(a.UseGreedy(), opts...), nil
	case AlgTwoPass:
		return algorithm.NewTwoPass(a.UseGreedy(), opts...), nil
	case AlgApproximate:
		return algorithm.NewApproximateFairness(a.Epsilon, src, opts...), nil
	}
	return nil, invalid("unknown algorithm kind %q", a.Kind)
}

func parsePostprocessing(s string) (algorithm.Postprocessing, error) {
	switch s {
	case "", "none":
		return algorithm.PostNone, nil
	case "fast_greedy":
		return algorithm.PostFastGreedy, nil
	case "greedy":
		return algorithm.PostGreedy, nil
	}
	return 0, invalid("unknown postprocessing %q", s)
}
