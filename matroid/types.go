package matroid

import (
	"errors"
	"fmt"
	"slices"

	mapset "github.com/deckarep/golang-set/v2"
)

// Sentinel errors for matroid construction and contract checks.
var (
	// ErrPrecondition is wrapped by the panic value of any contract violation
	// (adding a present element, removing an absent one, swapping against a
	// non-member).
	ErrPrecondition = errors.New("matroid: precondition violated")

	// ErrUnknownElement is wrapped by the panic value when an element has no
	// group assignment in a Partition matroid.
	ErrUnknownElement = errors.New("matroid: unknown element")

	// ErrNegativeBound is returned when a group or cardinality bound is negative.
	ErrNegativeBound = errors.New("matroid: negative bound")

	// ErrGroupOutOfRange is returned when an element is mapped to a group
	// index outside [0, len(bounds)).
	ErrGroupOutOfRange = errors.New("matroid: group index out of range")

	// ErrNotLaminar is returned when two groups of a Laminar matroid cross,
	// i.e. they intersect while neither contains the other.
	ErrNotLaminar = errors.New("matroid: groups are not laminar")

	// ErrInfeasibleBaseline is returned when the baseline of a Conditioned
	// matroid is not independent in the wrapped matroid.
	ErrInfeasibleBaseline = errors.New("matroid: baseline set is not independent")
)

// Matroid is an independence system that owns a current set.
//
// Contract (violations panic, see package doc):
//   - CanAdd(e): e is not in the current set.
//   - CanSwap(e, s): e is absent and s is present.
//   - Add(e): e is absent. Bounds are not enforced.
//   - Remove(e): e is present.
type Matroid interface {
	// Reset empties the current set.
	Reset()

	// CanAdd reports whether current ∪ {e} is independent.
	CanAdd(e int) bool

	// CanSwap reports whether current − {s} ∪ {e} is independent.
	CanSwap(e, s int) bool

	// AllSwaps returns the present elements whose removal makes e addable.
	AllSwaps(e int) []int

	// Add inserts e into the current set.
	Add(e int)

	// Swap removes s and inserts e.
	Swap(e, s int)

	// Remove deletes e from the current set.
	Remove(e int)

	// IsFeasible reports whether elements form an independent set.
	IsFeasible(elements []int) bool

	// CurrentIsFeasible reports whether the current set is independent.
	CurrentIsFeasible() bool

	// Current returns the current set in ascending order.
	Current() []int

	// InCurrent reports whether e is in the current set.
	InCurrent(e int) bool

	// Clone returns an independent deep copy with identical state.
	Clone() Matroid
}

// ScanSwaps is the generic AllSwaps: it tests every present element of m
// with CanSwap. Variants with structural knowledge short-circuit it.
//
// Complexity: O(|current| · cost(CanSwap)).
func ScanSwaps(m Matroid, e int) []int {
	var swaps []int
	for _, s := range m.Current() {
		if m.CanSwap(e, s) {
			swaps = append(swaps, s)
		}
	}
	return swaps
}

// SwapByRemoveAdd is the generic Swap: Remove(s) followed by Add(e).
func SwapByRemoveAdd(m Matroid, e, s int) {
	if !m.InCurrent(s) {
		violate("Swap(%d, %d): %d is not in the current set", e, s, s)
	}
	m.Remove(s)
	m.Add(e)
}

// violate panics with an error wrapping ErrPrecondition.
func violate(format string, args ...any) {
	panic(fmt.Errorf("%w: "+format, append([]any{ErrPrecondition}, args...)...))
}

// newSet returns an empty single-goroutine set.
func newSet() mapset.Set[int] {
	return mapset.NewThreadUnsafeSet[int]()
}

// sorted materializes s in ascending order.
func sorted(s mapset.Set[int]) []int {
	out := s.ToSlice()
	slices.Sort(out)
	return out
}

// validateBounds rejects negative bounds.
func validateBounds(bounds []int) error {
	for i, b := range bounds {
		if b < 0 {
			return fmt.Errorf("%w: bounds[%d] = %d", ErrNegativeBound, i, b)
		}
	}
	return nil
}
