package algorithm

import (
	"errors"
	"fmt"
	"slices"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/fairmatroid/fairness"
	"github.com/katalvlaran/fairmatroid/intersection"
	"github.com/katalvlaran/fairmatroid/matroid"
	"github.com/katalvlaran/fairmatroid/submodular"
)

// TwoPass finds a fair set in the first pass, splits it per color into two
// halves and, in the second pass, grows each half as a conditioned baseline.
// The better of the two grown sets wins.
type TwoPass struct {
	base
	greedy bool
	pass   int
	seen   mapset.Set[int]
	first  []int
	// postErr collects failed engine post-checks; the run goes on with the
	// best-effort sets.
	postErr error
}

// NewTwoPass returns the two-pass algorithm. useGreedy selects Greedy over
// the swapping heuristic for the second pass.
func NewTwoPass(useGreedy bool, opts ...Option) *TwoPass {
	return &TwoPass{base: newBase(opts), greedy: useGreedy}
}

// Name implements Algorithm.
func (t *TwoPass) Name() string {
	return fmt.Sprintf("Two pass algorithm (%s)", variant(t.greedy))
}

// NumberOfPasses implements Algorithm.
func (t *TwoPass) NumberOfPasses() int { return 2 }

// Init implements Algorithm.
func (t *TwoPass) Init(o *submodular.Oracle, fc *fairness.Constraint, m matroid.Matroid) {
	t.base.Init(o, fc, m)
	t.pass = 0
	t.seen = mapset.NewThreadUnsafeSet[int]()
	t.first = nil
	t.postErr = nil
}

// Insert implements Algorithm. Elements already seen in the first pass are
// ignored when streamed again.
func (t *TwoPass) Insert(e int) {
	if t.seen.Contains(e) {
		return
	}
	t.seen.Add(e)
	t.base.Insert(e)
}

// BeginNextPass ends the first pass by computing the fair starting set.
func (t *TwoPass) BeginNextPass() error {
	if t.pass > 0 {
		return ErrPassOrder
	}
	t.pass++
	return t.firstPass()
}

// SolutionValue implements Algorithm. Without a BeginNextPass call both
// passes run over the elements inserted so far. When an engine post-check
// fails the better half is still recorded and the error returned with it.
func (t *TwoPass) SolutionValue() (float64, error) {
	if err := t.start(); err != nil {
		return 0, err
	}
	if t.pass == 0 {
		t.pass++
		if err := t.firstPass(); err != nil {
			return 0, err
		}
	}

	halves := t.divide(t.first)
	var best []int
	bestValue := 0.0
	for i, half := range halves {
		sol, err := t.secondPass(half)
		if err != nil {
			return 0, err
		}
		v := t.oracle.CountedObjective(sol)
		t.opts.Logger.WithFields(logrus.Fields{
			"half":  i,
			"start": len(half),
			"size":  len(sol),
			"value": v,
		}).Debug("two pass half done")
		// On a tie the later half wins.
		if best == nil || v >= bestValue {
			best, bestValue = sol, v
		}
	}
	if t.postErr != nil {
		t.opts.Logger.WithError(t.postErr).Warn("keeping best-effort solution")
	}
	return t.record(best, bestValue), t.postErr
}

// tolerate absorbs an ErrInvariant error into postErr and returns any other
// error unchanged.
func (t *TwoPass) tolerate(err error) error {
	if err == nil || !errors.Is(err, intersection.ErrInvariant) {
		return err
	}
	t.postErr = errors.Join(t.postErr, err)
	return nil
}

func (t *TwoPass) firstPass() error {
	lower := t.fc.LowerBoundsMatroid()
	if err := t.tolerate(intersection.MaxIntersection(t.m, lower, t.universe, t.engine()...)); err != nil {
		return err
	}
	t.first = t.m.Current()
	if want := t.fc.LowerBoundSum(); len(t.first) != want {
		return fmt.Errorf("%w: lower bounds met by %d of %d elements",
			intersection.ErrNoFairSet, len(t.first), want)
	}
	return nil
}

// divide deals the elements of each color alternately into two halves.
func (t *TwoPass) divide(solution []int) [2][]int {
	var halves [2][]int
	picked := make([]int, t.fc.NumColors())
	for _, e := range solution {
		c := t.fc.Color(e)
		halves[picked[c]%2] = append(halves[picked[c]%2], e)
		picked[c]++
	}
	return halves
}

// secondPass maximizes on top of start under the matroid and the upper
// bounds, then restores as much of start as the upper bounds allow.
func (t *TwoPass) secondPass(start []int) ([]int, error) {
	t.m.Reset()
	t.fc.Reset()
	t.oracle.Reset()

	cond, err := matroid.NewConditioned(t.m, start)
	if err != nil {
		return nil, err
	}
	colors := t.fc.UpperBoundsMatroid()
	if err := t.tolerate(t.maximize(t.greedy, cond, colors, t.universe)); err != nil {
		return nil, err
	}
	chosen := colors.Current()

	var rest []int
	for _, e := range start {
		if !slices.Contains(chosen, e) {
			rest = append(rest, e)
		}
	}
	free, err := matroid.NewUniform(len(rest))
	if err != nil {
		return nil, err
	}
	fair, err := matroid.NewConditioned(colors, chosen)
	if err != nil {
		return nil, err
	}
	if err := t.tolerate(t.maximize(t.greedy, free, fair, rest)); err != nil {
		return nil, err
	}

	solution := append(chosen, fair.Current()...)
	slices.Sort(solution)
	return solution, nil
}
