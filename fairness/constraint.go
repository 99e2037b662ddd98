package fairness

import (
	"errors"
	"fmt"
	"math"
	"slices"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/katalvlaran/fairmatroid/matroid"
)

// Sentinel errors for constraint construction and contract checks.
var (
	// ErrInvalidBounds is returned when a color has Lower < 0 or Lower > Upper.
	ErrInvalidBounds = errors.New("fairness: invalid bounds")

	// ErrColorOutOfRange is returned when an element is mapped to a color
	// outside [0, len(bounds)).
	ErrColorOutOfRange = errors.New("fairness: color out of range")

	// ErrUnknownElement is wrapped by the panic value when an element has no color.
	ErrUnknownElement = errors.New("fairness: unknown element")

	// ErrPrecondition is wrapped by the panic value of a contract violation.
	ErrPrecondition = errors.New("fairness: precondition violated")
)

// Bounds is the allowed [Lower, Upper] count range of one color.
type Bounds struct {
	Lower int
	Upper int
}

// Constraint tracks a current set against per-color bounds.
type Constraint struct {
	colors  map[int]int
	bounds  []Bounds
	counts  []int
	current mapset.Set[int]
}

// New validates the bounds and color map and returns an empty constraint.
func New(colors map[int]int, bounds []Bounds) (*Constraint, error) {
	for c, b := range bounds {
		if b.Lower < 0 || b.Lower > b.Upper {
			return nil, fmt.Errorf("%w: color %d has [%d, %d]", ErrInvalidBounds, c, b.Lower, b.Upper)
		}
	}
	cm := make(map[int]int, len(colors))
	for e, c := range colors {
		if c < 0 || c >= len(bounds) {
			return nil, fmt.Errorf("%w: element %d has color %d of %d", ErrColorOutOfRange, e, c, len(bounds))
		}
		cm[e] = c
	}
	return &Constraint{
		colors:  cm,
		bounds:  slices.Clone(bounds),
		counts:  make([]int, len(bounds)),
		current: mapset.NewThreadUnsafeSet[int](),
	}, nil
}

// Reset empties the current set.
func (f *Constraint) Reset() {
	clear(f.counts)
	f.current.Clear()
}

// Color returns the color of e. Panics for elements without a color.
func (f *Constraint) Color(e int) int {
	c, ok := f.colors[e]
	if !ok {
		panic(fmt.Errorf("%w: %d", ErrUnknownElement, e))
	}
	return c
}

// NumColors returns the number of colors.
func (f *Constraint) NumColors() int { return len(f.bounds) }

// Bounds returns a copy of the per-color bounds.
func (f *Constraint) Bounds() []Bounds { return slices.Clone(f.bounds) }

// LowerBoundSum returns Σ Lower over all colors.
func (f *Constraint) LowerBoundSum() int {
	sum := 0
	for _, b := range f.bounds {
		sum += b.Lower
	}
	return sum
}

// CanAdd reports whether e fits under the upper bound of its color.
func (f *Constraint) CanAdd(e int) bool {
	if f.current.Contains(e) {
		f.violate("CanAdd(%d): element already present", e)
	}
	c := f.Color(e)
	return f.counts[c]+1 <= f.bounds[c].Upper
}

// Add inserts e. The upper bound is not checked.
func (f *Constraint) Add(e int) {
	if f.current.Contains(e) {
		f.violate("Add(%d): element already present", e)
	}
	f.counts[f.Color(e)]++
	f.current.Add(e)
}

// CanRemove reports whether removing e keeps its color at or above the lower bound.
func (f *Constraint) CanRemove(e int) bool {
	if !f.current.Contains(e) {
		f.violate("CanRemove(%d): element not present", e)
	}
	c := f.Color(e)
	return f.counts[c]-1 >= f.bounds[c].Lower
}

// Remove deletes e. The lower bound is not checked.
func (f *Constraint) Remove(e int) {
	if !f.current.Contains(e) {
		f.violate("Remove(%d): element not present", e)
	}
	f.counts[f.Color(e)]--
	f.current.Remove(e)
}

// InCurrent reports membership of e.
func (f *Constraint) InCurrent(e int) bool { return f.current.Contains(e) }

// Current returns the current set in ascending order.
func (f *Constraint) Current() []int {
	out := f.current.ToSlice()
	slices.Sort(out)
	return out
}

// Distribution counts the elements of set per color.
func (f *Constraint) Distribution(set []int) []int {
	dist := make([]int, len(f.bounds))
	for _, e := range set {
		dist[f.Color(e)]++
	}
	return dist
}

// IsFeasible reports whether every color count of set lies in [Lower, Upper].
func (f *Constraint) IsFeasible(set []int) bool {
	for c, n := range f.Distribution(set) {
		if n < f.bounds[c].Lower || n > f.bounds[c].Upper {
			return false
		}
	}
	return true
}

// Violation sums, over colors, how far the count of set lies outside
// [Lower, Upper]. Zero iff IsFeasible(set).
func (f *Constraint) Violation(set []int) int {
	total := 0
	for c, n := range f.Distribution(set) {
		total += max(0, n-f.bounds[c].Upper) + max(0, f.bounds[c].Lower-n)
	}
	return total
}

// LowerBoundRatio returns the worst count/(Lower/2) over colors, capped at 1.
// Colors whose halved lower bound is zero are skipped.
func (f *Constraint) LowerBoundRatio(set []int) float64 {
	ratio := 1.0
	for c, n := range f.Distribution(set) {
		half := f.bounds[c].Lower / 2
		if half == 0 {
			continue
		}
		ratio = math.Min(ratio, float64(n)/float64(half))
	}
	return ratio
}

// LowerBoundsMatroid returns a fresh partition matroid with the colors as
// groups and the lower bounds as capacities.
func (f *Constraint) LowerBoundsMatroid() *matroid.Partition {
	return f.toMatroid(func(b Bounds) int { return b.Lower })
}

// UpperBoundsMatroid returns a fresh partition matroid with the colors as
// groups and the upper bounds as capacities.
func (f *Constraint) UpperBoundsMatroid() *matroid.Partition {
	return f.toMatroid(func(b Bounds) int { return b.Upper })
}

func (f *Constraint) toMatroid(pick func(Bounds) int) *matroid.Partition {
	caps := make([]int, len(f.bounds))
	for c, b := range f.bounds {
		caps[c] = pick(b)
	}
	m, err := matroid.NewPartition(f.colors, caps)
	if err != nil {
		// New already validated colors and bounds.
		panic(fmt.Errorf("fairness: building partition matroid: %w", err))
	}
	return m
}

// Clone deep-copies the live state; the color map and bounds are shared.
func (f *Constraint) Clone() *Constraint {
	return &Constraint{
		colors:  f.colors,
		bounds:  f.bounds,
		counts:  slices.Clone(f.counts),
		current: f.current.Clone(),
	}
}

func (f *Constraint) violate(format string, args ...any) {
	panic(fmt.Errorf("%w: "+format, append([]any{ErrPrecondition}, args...)...))
}
