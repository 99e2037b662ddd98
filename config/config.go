// Package config loads experiment instances from YAML files.
//
// A file names one instance (function, matroid, fairness constraint) and the
// algorithms to compare on it:
//
//	name: movies-k3
//	seed: 1
//	repeats: 10
//	oracle:
//	  kind: additive            # cardinality | additive | coverage
//	  weights: {0: 10, 1: 9}
//	matroid:
//	  kind: partition           # partition | laminar | uniform
//	  groups: {0: 0, 1: 0}
//	  bounds: [1]
//	fairness:
//	  colors: {0: 0, 1: 1}
//	  bounds: [{lower: 0, upper: 1}, {lower: 1, upper: 1}]
//	algorithms:
//	  - kind: lower_bound       # random | lower_bound | upper_bound | two_pass | approximate
//	    postprocessing: greedy  # none | fast_greedy | greedy
//	  - kind: approximate
//	    epsilon: 0.5
package config

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Oracle kinds.
const (
	OracleCardinality = "cardinality"
	OracleAdditive    = "additive"
	OracleCoverage    = "coverage"
)

// Matroid kinds.
const (
	MatroidPartition = "partition"
	MatroidLaminar   = "laminar"
	MatroidUniform   = "uniform"
)

// Algorithm kinds.
const (
	AlgRandom      = "random"
	AlgLowerBound  = "lower_bound"
	AlgUpperBound  = "upper_bound"
	AlgTwoPass     = "two_pass"
	AlgApproximate = "approximate"
)

// Config is the root of an instance file.
type Config struct {
	Name       string            `yaml:"name"`
	Seed       int64             `yaml:"seed"`
	Repeats    int               `yaml:"repeats"`
	Oracle     OracleConfig      `yaml:"oracle"`
	Matroid    MatroidConfig     `yaml:"matroid"`
	Fairness   FairnessConfig    `yaml:"fairness"`
	Algorithms []AlgorithmConfig `yaml:"algorithms"`
}

// OracleConfig selects the submodular function.
type OracleConfig struct {
	Kind      string          `yaml:"kind"`
	Universe  []int           `yaml:"universe"`
	Weights   map[int]float64 `yaml:"weights"`
	Neighbors map[int][]int   `yaml:"neighbors"`
}

// MatroidConfig selects the matroid. Groups is used by partition matroids,
// LaminarGroups by laminar ones and Rank by uniform ones.
type MatroidConfig struct {
	Kind          string        `yaml:"kind"`
	Groups        map[int]int   `yaml:"groups"`
	LaminarGroups map[int][]int `yaml:"laminar_groups"`
	Bounds        []int         `yaml:"bounds"`
	Rank          int           `yaml:"rank"`
}

// FairnessConfig maps elements to colors and colors to bounds.
type FairnessConfig struct {
	Colors map[int]int    `yaml:"colors"`
	Bounds []BoundsConfig `yaml:"bounds"`
}

// BoundsConfig is one color's [lower, upper] range.
type BoundsConfig struct {
	Lower int `yaml:"lower"`
	Upper int `yaml:"upper"`
}

// AlgorithmConfig selects one algorithm. Greedy defaults to true.
type AlgorithmConfig struct {
	Kind           string  `yaml:"kind"`
	Postprocessing string  `yaml:"postprocessing"`
	Greedy         *bool   `yaml:"greedy"`
	Epsilon        float64 `yaml:"epsilon"`
}

// UseGreedy resolves the Greedy default.
func (a AlgorithmConfig) UseGreedy() bool { return a.Greedy == nil || *a.Greedy }

// Load reads and validates the file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes and validates YAML data. Unknown fields are rejected.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks kinds and value ranges. Structural checks of groups and
// bounds are left to the constructors Build calls.
func (c *Config) Validate() error {
	if c.Repeats < 0 {
		return invalid("repeats must not be negative, got %d", c.Repeats)
	}

	switch c.Oracle.Kind {
	case OracleCardinality:
		if len(c.Oracle.Universe) == 0 {
			return invalid("cardinality oracle needs a universe")
		}
	case OracleAdditive:
		if len(c.Oracle.Weights) == 0 {
			return invalid("additive oracle needs weights")
		}
	case OracleCoverage:
		if len(c.Oracle.Neighbors) == 0 {
			return invalid("coverage oracle needs neighbors")
		}
	default:
		return invalid("unknown oracle kind %q", c.Oracle.Kind)
	}

	switch c.Matroid.Kind {
	case MatroidPartition:
		if len(c.Matroid.Groups) == 0 || len(c.Matroid.Bounds) == 0 {
			return invalid("partition matroid needs groups and bounds")
		}
	case MatroidLaminar:
		if len(c.Matroid.LaminarGroups) == 0 || len(c.Matroid.Bounds) == 0 {
			return invalid("laminar matroid needs laminar_groups and bounds")
		}
	case MatroidUniform:
		if c.Matroid.Rank < 0 {
			return invalid("uniform rank must not be negative, got %d", c.Matroid.Rank)
		}
	default:
		return invalid("unknown matroid kind %q", c.Matroid.Kind)
	}

	if len(c.Fairness.Colors) == 0 || len(c.Fairness.Bounds) == 0 {
		return invalid("fairness needs colors and bounds")
	}

	if len(c.Algorithms) == 0 {
		return invalid("no algorithms listed")
	}
	for i, a := range c.Algorithms {
		if err := a.validate(); err != nil {
			return fmt.Errorf("algorithms[%d]: %w", i, err)
		}
	}
	return nil
}

func (a AlgorithmConfig) validate() error {
	switch a.Kind {
	case AlgRandom, AlgUpperBound, AlgTwoPass:
	case AlgLowerBound:
		if _, err := parsePostprocessing(a.Postprocessing); err != nil {
			return err
		}
	case AlgApproximate:
		if math.IsNaN(a.Epsilon) || a.Epsilon < 0 || a.Epsilon > 1 {
			return invalid("epsilon must lie in [0, 1], got %g", a.Epsilon)
		}
	default:
		return invalid("unknown algorithm kind %q", a.Kind)
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}
