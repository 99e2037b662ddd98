package algorithm

import (
	"errors"
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/fairmatroid/fairness"
	"github.com/katalvlaran/fairmatroid/intersection"
	"github.com/katalvlaran/fairmatroid/matroid"
	"github.com/katalvlaran/fairmatroid/rng"
	"github.com/katalvlaran/fairmatroid/submodular"
)

// Protocol errors.
var (
	// ErrNotInitialized is returned when SolutionValue runs before Init.
	ErrNotInitialized = errors.New("algorithm: Init was not called")

	// ErrNotComputed is returned by SolutionVector before SolutionValue.
	ErrNotComputed = errors.New("algorithm: solution not computed yet")

	// ErrAlreadyComputed is returned by a second SolutionValue call.
	ErrAlreadyComputed = errors.New("algorithm: solution already computed")

	// ErrSinglePass is returned by BeginNextPass on a single-pass algorithm.
	ErrSinglePass = errors.New("algorithm: single-pass algorithm has no next pass")

	// ErrPassOrder is returned when BeginNextPass is called more than once.
	ErrPassOrder = errors.New("algorithm: no pass left to begin")

	// ErrUnsupportedMatroid is returned when an algorithm needs a matroid
	// variant other than the one it was initialized with.
	ErrUnsupportedMatroid = errors.New("algorithm: unsupported matroid variant")
)

// Algorithm is the streaming contract the experiment runner drives:
// Init, Insert every element (per pass), then SolutionValue exactly once and
// SolutionVector any number of times.
type Algorithm interface {
	// Init binds the algorithm to reset clones of o, fc and m. The oracle
	// clone shares o's call counter.
	Init(o *submodular.Oracle, fc *fairness.Constraint, m matroid.Matroid)
	// Insert feeds one ground-set element.
	Insert(e int)
	// SolutionValue computes the solution and returns its value.
	SolutionValue() (float64, error)
	// SolutionVector returns the solution computed by SolutionValue.
	SolutionVector() ([]int, error)
	// Name describes the algorithm and its parameters.
	Name() string
	// NumberOfPasses is 1 or 2.
	NumberOfPasses() int
	// BeginNextPass separates the two insertion passes of a two-pass algorithm.
	BeginNextPass() error
}

// Randomized is implemented by algorithms drawing from a Source. The runner
// re-seeds the source before every algorithm and repeats their runs.
type Randomized interface {
	Algorithm
	Source() *rng.Source
}

// Option configures an algorithm.
type Option func(*Options)

// Options holds algorithm settings.
type Options struct {
	// Logger is handed to the intersection engine.
	Logger logrus.FieldLogger
}

// DefaultOptions uses the standard logrus logger.
func DefaultOptions() Options {
	return Options{Logger: logrus.StandardLogger()}
}

// WithLogger replaces the logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// base carries the state and protocol checks every algorithm shares.
type base struct {
	opts     Options
	oracle   *submodular.Oracle
	fc       *fairness.Constraint
	m        matroid.Matroid
	universe []int
	solution []int
	value    float64
	computed bool
}

func newBase(opts []Option) base {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return base{opts: o}
}

// Init stores reset clones.
func (b *base) Init(o *submodular.Oracle, fc *fairness.Constraint, m matroid.Matroid) {
	b.oracle = o.Clone()
	b.oracle.Reset()
	b.fc = fc.Clone()
	b.fc.Reset()
	b.m = m.Clone()
	b.m.Reset()
	b.universe = nil
	b.solution = nil
	b.value = 0
	b.computed = false
}

// Insert records e.
func (b *base) Insert(e int) { b.universe = append(b.universe, e) }

// NumberOfPasses is 1 unless overridden.
func (b *base) NumberOfPasses() int { return 1 }

// BeginNextPass fails for single-pass algorithms.
func (b *base) BeginNextPass() error { return ErrSinglePass }

// SolutionVector returns a copy of the computed solution.
func (b *base) SolutionVector() ([]int, error) {
	if !b.computed {
		return nil, ErrNotComputed
	}
	return slices.Clone(b.solution), nil
}

// start guards SolutionValue.
func (b *base) start() error {
	if b.oracle == nil {
		return ErrNotInitialized
	}
	if b.computed {
		return ErrAlreadyComputed
	}
	return nil
}

// finish records solution and evaluates it with one counted oracle call.
func (b *base) finish(solution []int) float64 {
	return b.record(solution, b.oracle.CountedObjective(solution))
}

// keep records the best-effort solution an engine post-check failed on and
// returns its value along with err. Any other error yields a zero value and
// leaves the run uncomputed.
func (b *base) keep(solution []int, err error) (float64, error) {
	if !errors.Is(err, intersection.ErrInvariant) {
		return 0, err
	}
	b.opts.Logger.WithError(err).Warn("keeping best-effort solution")
	return b.finish(solution), err
}

func (b *base) record(solution []int, value float64) float64 {
	b.solution = solution
	b.value = value
	b.computed = true
	return value
}

// maximize runs Greedy or the swapping pass over x and y.
func (b *base) maximize(useGreedy bool, x, y matroid.Matroid, universe []int) error {
	if useGreedy {
		_, err := intersection.Greedy(x, y, b.oracle, universe, b.engine()...)
		return err
	}
	return intersection.SubMaxIntersectionSwapping(x, y, b.oracle, universe, b.engine()...)
}

func variant(useGreedy bool) string {
	if useGreedy {
		return "greedy"
	}
	return "swapping"
}

func (b *base) engine() []intersection.Option {
	return []intersection.Option{intersection.WithLogger(b.opts.Logger)}
}
