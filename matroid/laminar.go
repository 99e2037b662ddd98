package matroid

import (
	"fmt"
	"slices"

	mapset "github.com/deckarep/golang-set/v2"
)

// Laminar is a laminar matroid: each element belongs to any number of groups
// forming a laminar family (two groups are either disjoint or nested), and a
// set is independent iff every group g holds at most bounds[g] of its elements.
// Elements listed with no group, or absent from the map, are unconstrained.
type Laminar struct {
	groups  map[int][]int
	bounds  []int
	counts  []int
	current mapset.Set[int]
}

var _ Matroid = (*Laminar)(nil)

// NewLaminar builds a laminar matroid. Returns ErrNegativeBound,
// ErrGroupOutOfRange, or ErrNotLaminar when two groups cross.
//
// Complexity: O(G²·n) for the laminarity check, G = len(bounds).
func NewLaminar(groups map[int][]int, bounds []int) (*Laminar, error) {
	if err := validateBounds(bounds); err != nil {
		return nil, err
	}
	members := make([]mapset.Set[int], len(bounds))
	for g := range members {
		members[g] = newSet()
	}
	gm := make(map[int][]int, len(groups))
	for e, gs := range groups {
		for _, g := range gs {
			if g < 0 || g >= len(bounds) {
				return nil, fmt.Errorf("%w: element %d in group %d of %d", ErrGroupOutOfRange, e, g, len(bounds))
			}
			members[g].Add(e)
		}
		gm[e] = slices.Clone(gs)
	}
	if err := checkLaminar(members); err != nil {
		return nil, err
	}
	return &Laminar{
		groups:  gm,
		bounds:  slices.Clone(bounds),
		counts:  make([]int, len(bounds)),
		current: newSet(),
	}, nil
}

// checkLaminar rejects any pair of groups that intersect without nesting.
func checkLaminar(members []mapset.Set[int]) error {
	for i := 0; i < len(members); i++ {
		for j := i + 1; j < len(members); j++ {
			a, b := members[i], members[j]
			if a.Intersect(b).Cardinality() == 0 {
				continue
			}
			if a.IsSubset(b) || b.IsSubset(a) {
				continue
			}
			return fmt.Errorf("%w: groups %d and %d cross", ErrNotLaminar, i, j)
		}
	}
	return nil
}

// Groups returns a copy of the groups e belongs to.
func (l *Laminar) Groups(e int) []int { return slices.Clone(l.groups[e]) }

// NumGroups returns the number of groups.
func (l *Laminar) NumGroups() int { return len(l.bounds) }

// Reset empties the current set.
func (l *Laminar) Reset() {
	clear(l.counts)
	l.current.Clear()
}

// CanAdd reports whether every group of e has spare capacity.
func (l *Laminar) CanAdd(e int) bool {
	if l.current.Contains(e) {
		violate("laminar: CanAdd(%d): element already present", e)
	}
	for _, g := range l.groups[e] {
		if l.counts[g]+1 > l.bounds[g] {
			return false
		}
	}
	return true
}

// CanSwap holds iff every saturated group of e also contains s.
func (l *Laminar) CanSwap(e, s int) bool {
	if l.current.Contains(e) {
		violate("laminar: CanSwap(%d, %d): element already present", e, s)
	}
	if !l.current.Contains(s) {
		violate("laminar: CanSwap(%d, %d): swap not present", e, s)
	}
	swapGroups := l.groups[s]
	for _, g := range l.groups[e] {
		if l.counts[g]+1 > l.bounds[g] && !slices.Contains(swapGroups, g) {
			return false
		}
	}
	return true
}

// AllSwaps scans the current set.
func (l *Laminar) AllSwaps(e int) []int { return ScanSwaps(l, e) }

// Add inserts e without checking bounds.
func (l *Laminar) Add(e int) {
	if l.current.Contains(e) {
		violate("laminar: Add(%d): element already present", e)
	}
	for _, g := range l.groups[e] {
		l.counts[g]++
	}
	l.current.Add(e)
}

// Swap removes s and inserts e.
func (l *Laminar) Swap(e, s int) { SwapByRemoveAdd(l, e, s) }

// Remove deletes e.
func (l *Laminar) Remove(e int) {
	if !l.current.Contains(e) {
		violate("laminar: Remove(%d): element not present", e)
	}
	for _, g := range l.groups[e] {
		l.counts[g]--
	}
	l.current.Remove(e)
}

// IsFeasible counts elements per group and compares with the bounds.
func (l *Laminar) IsFeasible(elements []int) bool {
	cards := make([]int, len(l.bounds))
	for _, e := range elements {
		for _, g := range l.groups[e] {
			cards[g]++
			if cards[g] > l.bounds[g] {
				return false
			}
		}
	}
	return true
}

// CurrentIsFeasible compares the live counts with the bounds.
func (l *Laminar) CurrentIsFeasible() bool {
	for g, c := range l.counts {
		if c > l.bounds[g] {
			return false
		}
	}
	return true
}

// Current returns the current set in ascending order.
func (l *Laminar) Current() []int { return sorted(l.current) }

// InCurrent reports membership of e.
func (l *Laminar) InCurrent(e int) bool { return l.current.Contains(e) }

// Clone deep-copies the live state; the group map and bounds are shared.
func (l *Laminar) Clone() Matroid {
	return &Laminar{
		groups:  l.groups,
		bounds:  l.bounds,
		counts:  slices.Clone(l.counts),
		current: l.current.Clone(),
	}
}
