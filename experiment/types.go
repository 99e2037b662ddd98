// Package experiment runs algorithms side by side on one instance and
// aggregates value, fairness violation and oracle usage per algorithm.
package experiment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/fairmatroid/fairness"
	"github.com/katalvlaran/fairmatroid/matroid"
	"github.com/katalvlaran/fairmatroid/submodular"
)

// Sentinel errors for experiment runs.
var (
	// ErrInfeasibleInstance is returned when no set meets the lower bounds.
	ErrInfeasibleInstance = errors.New("experiment: instance has no fair solution")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("experiment: invalid option supplied")

	// ErrNilInstance is returned when a required instance part is missing.
	ErrNilInstance = errors.New("experiment: incomplete instance")
)

// DefaultRepeats is the number of runs for randomized algorithms.
const DefaultRepeats = 10

// DefaultSeed is the seed the source is reset to before every algorithm.
const DefaultSeed int64 = 1

// Instance is one problem: a function, a fairness constraint and a matroid
// over the function's universe.
type Instance struct {
	// Label names the instance in results, e.g. the matroid rank.
	Label    string
	Oracle   *submodular.Oracle
	Fairness *fairness.Constraint
	Matroid  matroid.Matroid
}

func (in Instance) validate() error {
	switch {
	case in.Oracle == nil:
		return fmt.Errorf("%w: oracle is nil", ErrNilInstance)
	case in.Fairness == nil:
		return fmt.Errorf("%w: fairness constraint is nil", ErrNilInstance)
	case in.Matroid == nil:
		return fmt.Errorf("%w: matroid is nil", ErrNilInstance)
	}
	return nil
}

// Result aggregates the runs of one algorithm on one instance.
type Result struct {
	RunID     uuid.UUID
	Label     string
	Algorithm string
	Runs      int

	Values     []float64
	Violations []int
	Ratios     []float64

	// Means and sample standard deviations over Runs; deviations are zero
	// for a single run.
	Value, ValueStdDev         float64
	Violation, ViolationStdDev float64
	Ratio, RatioStdDev         float64

	// OracleCalls counts the calls of all runs together.
	OracleCalls int64

	// Distribution is the color distribution of the last run.
	Distribution []int

	// Solutions holds every run's set when WithSolutions is on.
	Solutions [][]int

	// PostCheckFailures counts the runs whose engine post-check failed; their
	// best-effort solutions are included above.
	PostCheckFailures int
}

// Option configures a Runner via functional arguments.
// An invalid Option is recorded and surfaced by NewRunner as
// ErrOptionViolation.
type Option func(*Options)

// Options holds the runner settings.
type Options struct {
	// Ctx is checked between runs.
	Ctx context.Context

	// Repeats is the number of runs for Randomized algorithms.
	Repeats int

	// Seed is applied to the source before every algorithm.
	Seed int64

	// Logger receives per-run diagnostics.
	Logger logrus.FieldLogger

	// Solutions keeps every solution set in the results.
	Solutions bool

	err error
}

// DefaultOptions returns Options with DefaultRepeats, DefaultSeed, a
// background context and the standard logrus logger.
func DefaultOptions() Options {
	return Options{
		Ctx:     context.Background(),
		Repeats: DefaultRepeats,
		Seed:    DefaultSeed,
		Logger:  logrus.StandardLogger(),
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithRepeats sets the number of runs for randomized algorithms (n ≥ 1).
func WithRepeats(n int) Option {
	return func(o *Options) {
		if n < 1 {
			o.err = fmt.Errorf("%w: repeats must be positive, got %d", ErrOptionViolation, n)
			return
		}
		o.Repeats = n
	}
}

// WithSeed sets the per-algorithm seed.
func WithSeed(seed int64) Option {
	return func(o *Options) { o.Seed = seed }
}

// WithLogger replaces the logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithSolutions keeps every solution set in the results.
func WithSolutions(keep bool) Option {
	return func(o *Options) { o.Solutions = keep }
}
