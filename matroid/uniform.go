package matroid

import (
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"
)

// Uniform is the uniform matroid of rank k: any set of at most k elements
// is independent.
type Uniform struct {
	k       int
	current mapset.Set[int]
}

var _ Matroid = (*Uniform)(nil)

// NewUniform returns a uniform matroid of rank k (ErrNegativeBound if k<0).
func NewUniform(k int) (*Uniform, error) {
	if k < 0 {
		return nil, fmt.Errorf("%w: rank %d", ErrNegativeBound, k)
	}
	return &Uniform{k: k, current: newSet()}, nil
}

// Rank returns k.
func (u *Uniform) Rank() int { return u.k }

// Reset empties the current set.
func (u *Uniform) Reset() { u.current.Clear() }

// CanAdd reports whether the set is below rank.
func (u *Uniform) CanAdd(e int) bool {
	if u.current.Contains(e) {
		violate("uniform: CanAdd(%d): element already present", e)
	}
	return u.current.Cardinality()+1 <= u.k
}

// CanSwap is always true: a swap never changes the cardinality.
func (u *Uniform) CanSwap(e, s int) bool {
	if u.current.Contains(e) {
		violate("uniform: CanSwap(%d, %d): element already present", e, s)
	}
	if !u.current.Contains(s) {
		violate("uniform: CanSwap(%d, %d): swap not present", e, s)
	}
	return true
}

// AllSwaps returns the whole current set.
func (u *Uniform) AllSwaps(int) []int { return u.Current() }

// Add inserts e.
func (u *Uniform) Add(e int) {
	if u.current.Contains(e) {
		violate("uniform: Add(%d): element already present", e)
	}
	u.current.Add(e)
}

// Swap removes s and inserts e.
func (u *Uniform) Swap(e, s int) { SwapByRemoveAdd(u, e, s) }

// Remove deletes e.
func (u *Uniform) Remove(e int) {
	if !u.current.Contains(e) {
		violate("uniform: Remove(%d): element not present", e)
	}
	u.current.Remove(e)
}

// IsFeasible reports len(elements) <= k.
func (u *Uniform) IsFeasible(elements []int) bool { return len(elements) <= u.k }

// CurrentIsFeasible reports |current| <= k.
func (u *Uniform) CurrentIsFeasible() bool { return u.current.Cardinality() <= u.k }

// Current returns the current set in ascending order.
func (u *Uniform) Current() []int { return sorted(u.current) }

// InCurrent reports membership of e.
func (u *Uniform) InCurrent(e int) bool { return u.current.Contains(e) }

// Clone deep-copies u.
func (u *Uniform) Clone() Matroid {
	return &Uniform{k: u.k, current: u.current.Clone()}
}
