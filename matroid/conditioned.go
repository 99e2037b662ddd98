package matroid

import (
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"
)

// Conditioned restricts a matroid to additions on top of a fixed baseline.
//
// The wrapped matroid (a private clone) always holds baseline ∪ current, so
// every feasibility question is answered relative to the baseline. The
// baseline itself is invisible to callers: it is never reported by Current,
// never addable, and never offered as a swap.
type Conditioned struct {
	inner    Matroid
	baseline mapset.Set[int]
	start    []int
	current  mapset.Set[int]
}

var _ Matroid = (*Conditioned)(nil)

// NewConditioned clones m, resets the clone and loads start into it.
// Duplicates in start are ignored. Returns ErrInfeasibleBaseline when start
// is not independent in m.
func NewConditioned(m Matroid, start []int) (*Conditioned, error) {
	inner := m.Clone()
	inner.Reset()
	baseline := newSet()
	for _, e := range start {
		if baseline.Contains(e) {
			continue
		}
		if !inner.CanAdd(e) {
			return nil, fmt.Errorf("%w: cannot add %d", ErrInfeasibleBaseline, e)
		}
		inner.Add(e)
		baseline.Add(e)
	}
	return &Conditioned{
		inner:    inner,
		baseline: baseline,
		start:    sorted(baseline),
		current:  newSet(),
	}, nil
}

// Baseline returns the baseline in ascending order.
func (c *Conditioned) Baseline() []int { return append([]int(nil), c.start...) }

// Reset removes every addition and keeps the baseline.
func (c *Conditioned) Reset() {
	for _, e := range c.Current() {
		c.inner.Remove(e)
	}
	c.current.Clear()
}

// CanAdd is false for baseline elements and otherwise defers to the wrapped matroid.
func (c *Conditioned) CanAdd(e int) bool {
	if c.baseline.Contains(e) {
		return false
	}
	if c.current.Contains(e) {
		violate("conditioned: CanAdd(%d): element already present", e)
	}
	return c.inner.CanAdd(e)
}

// CanSwap is false when e or s belongs to the baseline.
func (c *Conditioned) CanSwap(e, s int) bool {
	if c.baseline.Contains(e) || c.baseline.Contains(s) {
		return false
	}
	if c.current.Contains(e) {
		violate("conditioned: CanSwap(%d, %d): element already present", e, s)
	}
	if !c.current.Contains(s) {
		violate("conditioned: CanSwap(%d, %d): swap not present", e, s)
	}
	return c.inner.CanSwap(e, s)
}

// AllSwaps scans the additions only.
func (c *Conditioned) AllSwaps(e int) []int {
	if c.baseline.Contains(e) {
		return nil
	}
	return ScanSwaps(c, e)
}

// Add inserts e on top of the baseline.
func (c *Conditioned) Add(e int) {
	if c.baseline.Contains(e) || c.current.Contains(e) {
		violate("conditioned: Add(%d): element already present", e)
	}
	c.inner.Add(e)
	c.current.Add(e)
}

// Swap removes s and inserts e.
func (c *Conditioned) Swap(e, s int) { SwapByRemoveAdd(c, e, s) }

// Remove deletes an addition; baseline elements cannot be removed.
func (c *Conditioned) Remove(e int) {
	if !c.current.Contains(e) {
		violate("conditioned: Remove(%d): element not present", e)
	}
	c.inner.Remove(e)
	c.current.Remove(e)
}

// IsFeasible checks elements ∪ baseline in the wrapped matroid.
func (c *Conditioned) IsFeasible(elements []int) bool {
	seen := mapset.NewThreadUnsafeSet(elements...)
	union := append([]int(nil), elements...)
	for _, e := range c.start {
		if !seen.Contains(e) {
			union = append(union, e)
		}
	}
	return c.inner.IsFeasible(union)
}

// CurrentIsFeasible checks baseline ∪ current.
func (c *Conditioned) CurrentIsFeasible() bool { return c.inner.CurrentIsFeasible() }

// Current returns the additions in ascending order.
func (c *Conditioned) Current() []int { return sorted(c.current) }

// InCurrent reports whether e is an addition.
func (c *Conditioned) InCurrent(e int) bool { return c.current.Contains(e) }

// Clone deep-copies the wrapped matroid and both sets.
func (c *Conditioned) Clone() Matroid {
	return &Conditioned{
		inner:    c.inner.Clone(),
		baseline: c.baseline.Clone(),
		start:    c.start,
		current:  c.current.Clone(),
	}
}
