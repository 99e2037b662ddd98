package matroid

import (
	"fmt"
	"slices"

	mapset "github.com/deckarep/golang-set/v2"
)

// Partition is a partition matroid: each element belongs to exactly one
// group g and a set is independent iff it holds at most bounds[g] elements
// of every group g.
type Partition struct {
	// groups maps elements to their group; shared read-only between clones.
	groups map[int]int
	// bounds[g] is the capacity of group g; shared read-only between clones.
	bounds []int
	// counts[g] is the number of current elements in group g.
	counts  []int
	current mapset.Set[int]
}

var _ Matroid = (*Partition)(nil)

// NewPartition builds a partition matroid over the elements of groups.
// Returns ErrNegativeBound or ErrGroupOutOfRange on malformed input.
//
// Complexity: O(|groups| + |bounds|).
func NewPartition(groups map[int]int, bounds []int) (*Partition, error) {
	if err := validateBounds(bounds); err != nil {
		return nil, err
	}
	gm := make(map[int]int, len(groups))
	for e, g := range groups {
		if g < 0 || g >= len(bounds) {
			return nil, fmt.Errorf("%w: element %d in group %d of %d", ErrGroupOutOfRange, e, g, len(bounds))
		}
		gm[e] = g
	}
	return &Partition{
		groups:  gm,
		bounds:  slices.Clone(bounds),
		counts:  make([]int, len(bounds)),
		current: newSet(),
	}, nil
}

// Group returns the group of e. Panics (ErrUnknownElement) for unmapped elements.
func (p *Partition) Group(e int) int {
	g, ok := p.groups[e]
	if !ok {
		panic(fmt.Errorf("%w: %d has no group", ErrUnknownElement, e))
	}
	return g
}

// NumGroups returns the number of groups.
func (p *Partition) NumGroups() int { return len(p.bounds) }

// Bounds returns a copy of the per-group capacities.
func (p *Partition) Bounds() []int { return slices.Clone(p.bounds) }

// Counts returns a copy of the per-group counts of the current set.
func (p *Partition) Counts() []int { return slices.Clone(p.counts) }

// Reset empties the current set.
func (p *Partition) Reset() {
	clear(p.counts)
	p.current.Clear()
}

// CanAdd reports whether e's group has spare capacity.
func (p *Partition) CanAdd(e int) bool {
	if p.current.Contains(e) {
		violate("partition: CanAdd(%d): element already present", e)
	}
	g := p.Group(e)
	return p.counts[g]+1 <= p.bounds[g]
}

// CanSwap short-circuits on group equality: trading s for e inside the same
// group leaves every count unchanged.
func (p *Partition) CanSwap(e, s int) bool {
	if p.current.Contains(e) {
		violate("partition: CanSwap(%d, %d): element already present", e, s)
	}
	if !p.current.Contains(s) {
		violate("partition: CanSwap(%d, %d): swap not present", e, s)
	}
	return p.CanAdd(e) || p.Group(e) == p.Group(s)
}

// AllSwaps returns the whole current set when e fits outright, otherwise
// the current members of e's group.
func (p *Partition) AllSwaps(e int) []int {
	if p.CanAdd(e) {
		return p.Current()
	}
	g := p.Group(e)
	var swaps []int
	for _, s := range p.Current() {
		if p.groups[s] == g {
			swaps = append(swaps, s)
		}
	}
	return swaps
}

// Add inserts e without checking its group bound.
func (p *Partition) Add(e int) {
	if p.current.Contains(e) {
		violate("partition: Add(%d): element already present", e)
	}
	p.counts[p.Group(e)]++
	p.current.Add(e)
}

// Swap removes s and inserts e.
func (p *Partition) Swap(e, s int) { SwapByRemoveAdd(p, e, s) }

// Remove deletes e.
func (p *Partition) Remove(e int) {
	if !p.current.Contains(e) {
		violate("partition: Remove(%d): element not present", e)
	}
	p.counts[p.Group(e)]--
	p.current.Remove(e)
}

// IsFeasible counts elements per group and compares with the bounds.
func (p *Partition) IsFeasible(elements []int) bool {
	cards := make([]int, len(p.bounds))
	for _, e := range elements {
		g := p.Group(e)
		cards[g]++
		if cards[g] > p.bounds[g] {
			return false
		}
	}
	return true
}

// CurrentIsFeasible compares the live counts with the bounds.
func (p *Partition) CurrentIsFeasible() bool {
	for g, c := range p.counts {
		if c > p.bounds[g] {
			return false
		}
	}
	return true
}

// Current returns the current set in ascending order.
func (p *Partition) Current() []int { return sorted(p.current) }

// InCurrent reports membership of e.
func (p *Partition) InCurrent(e int) bool { return p.current.Contains(e) }

// Clone deep-copies the live state; the group map and bounds are shared.
func (p *Partition) Clone() Matroid {
	return &Partition{
		groups:  p.groups,
		bounds:  p.bounds,
		counts:  slices.Clone(p.counts),
		current: p.current.Clone(),
	}
}
