package submodular

import (
	"fmt"
	"slices"

	mapset "github.com/deckarep/golang-set/v2"
)

// Cardinality is f(S) = |S|.
type Cardinality struct {
	universe []int
	current  mapset.Set[int]
}

var _ Function = (*Cardinality)(nil)

// NewCardinality returns the cardinality function over universe.
func NewCardinality(universe []int) *Cardinality {
	u := slices.Clone(universe)
	slices.Sort(u)
	return &Cardinality{universe: slices.Compact(u), current: newSet()}
}

// Reset empties the current set.
func (c *Cardinality) Reset() { c.current.Clear() }

// Add inserts e into the current set.
func (c *Cardinality) Add(e int) { c.current.Add(e) }

// Remove deletes e from the current set.
func (c *Cardinality) Remove(e int) { c.current.Remove(e) }

// Delta is 1 for an element outside the current set, 0 otherwise.
func (c *Cardinality) Delta(e int) float64 {
	if c.current.Contains(e) {
		return 0
	}
	return 1
}

// RemovalDelta is 1 for a present element, 0 otherwise.
func (c *Cardinality) RemovalDelta(e int) float64 {
	if c.current.Contains(e) {
		return 1
	}
	return 0
}

// Objective counts the distinct elements of set.
func (c *Cardinality) Objective(set []int) float64 {
	return float64(mapset.NewThreadUnsafeSet(set...).Cardinality())
}

// Universe returns the ground set in ascending order.
func (c *Cardinality) Universe() []int { return c.universe }

// Name implements Function.
func (c *Cardinality) Name() string { return "cardinality" }

// Clone copies the current set and shares the universe.
func (c *Cardinality) Clone() Function {
	return &Cardinality{universe: c.universe, current: c.current.Clone()}
}

// Additive is a modular function: f(S) = Σ weight(e) over e ∈ S.
type Additive struct {
	weights  map[int]float64
	universe []int
	current  mapset.Set[int]
}

var _ Function = (*Additive)(nil)

// NewAdditive returns the additive function with the given element weights.
// The universe is the key set of weights.
func NewAdditive(weights map[int]float64) (*Additive, error) {
	w := make(map[int]float64, len(weights))
	for e, x := range weights {
		if x < 0 {
			return nil, fmt.Errorf("%w: element %d has %g", ErrNegativeWeight, e, x)
		}
		w[e] = x
	}
	return &Additive{weights: w, universe: universeOf(w), current: newSet()}, nil
}

// Reset empties the current set.
func (a *Additive) Reset() { a.current.Clear() }

// Add inserts e into the current set.
func (a *Additive) Add(e int) { a.current.Add(e) }

// Remove deletes e from the current set.
func (a *Additive) Remove(e int) { a.current.Remove(e) }

// Delta is the weight of e unless e is already present.
func (a *Additive) Delta(e int) float64 {
	if a.current.Contains(e) {
		return 0
	}
	return a.weights[e]
}

// RemovalDelta is the weight of a present e, 0 otherwise.
func (a *Additive) RemovalDelta(e int) float64 {
	if !a.current.Contains(e) {
		return 0
	}
	return a.weights[e]
}

// Objective sums the weights of the distinct elements of set.
func (a *Additive) Objective(set []int) float64 {
	total := 0.0
	for e := range mapset.NewThreadUnsafeSet(set...).Iter() {
		total += a.weights[e]
	}
	return total
}

// Universe returns the weighted elements in ascending order.
func (a *Additive) Universe() []int { return a.universe }

// Name implements Function.
func (a *Additive) Name() string { return "additive" }

// Clone copies the current set and shares the weights.
func (a *Additive) Clone() Function {
	return &Additive{weights: a.weights, universe: a.universe, current: a.current.Clone()}
}

// Coverage counts the distinct items covered by the chosen elements, where
// element e covers neighbors[e].
type Coverage struct {
	neighbors map[int][]int
	universe  []int
	// covered[x] is how many current elements cover item x.
	covered map[int]int
	current mapset.Set[int]
}

var _ Function = (*Coverage)(nil)

// NewCoverage returns the coverage function; the universe is the key set of
// neighbors.
func NewCoverage(neighbors map[int][]int) *Coverage {
	n := make(map[int][]int, len(neighbors))
	for e, xs := range neighbors {
		u := slices.Clone(xs)
		slices.Sort(u)
		n[e] = slices.Compact(u)
	}
	return &Coverage{
		neighbors: n,
		universe:  universeOf(n),
		covered:   make(map[int]int),
		current:   newSet(),
	}
}

// Reset empties the current set and the coverage counts.
func (c *Coverage) Reset() {
	clear(c.covered)
	c.current.Clear()
}

// Add inserts e and counts the items it covers. Adding a present element is a no-op.
func (c *Coverage) Add(e int) {
	if !c.current.Add(e) {
		return
	}
	for _, x := range c.neighbors[e] {
		c.covered[x]++
	}
}

// Remove deletes e and releases the items only it covered.
func (c *Coverage) Remove(e int) {
	if !c.current.Contains(e) {
		return
	}
	c.current.Remove(e)
	for _, x := range c.neighbors[e] {
		if c.covered[x]--; c.covered[x] == 0 {
			delete(c.covered, x)
		}
	}
}

// Delta counts the items of e not covered yet.
func (c *Coverage) Delta(e int) float64 {
	if c.current.Contains(e) {
		return 0
	}
	gain := 0
	for _, x := range c.neighbors[e] {
		if c.covered[x] == 0 {
			gain++
		}
	}
	return float64(gain)
}

// RemovalDelta counts the items covered by e alone.
func (c *Coverage) RemovalDelta(e int) float64 {
	if !c.current.Contains(e) {
		return 0
	}
	loss := 0
	for _, x := range c.neighbors[e] {
		if c.covered[x] == 1 {
			loss++
		}
	}
	return float64(loss)
}

// Objective counts the distinct items covered by set.
func (c *Coverage) Objective(set []int) float64 {
	items := newSet()
	for _, e := range set {
		items.Append(c.neighbors[e]...)
	}
	return float64(items.Cardinality())
}

// Universe returns the covering elements in ascending order.
func (c *Coverage) Universe() []int { return c.universe }

// Name implements Function.
func (c *Coverage) Name() string { return "coverage" }

// Clone copies the coverage counts and shares the neighbor lists.
func (c *Coverage) Clone() Function {
	covered := make(map[int]int, len(c.covered))
	for x, n := range c.covered {
		covered[x] = n
	}
	return &Coverage{
		neighbors: c.neighbors,
		universe:  c.universe,
		covered:   covered,
		current:   c.current.Clone(),
	}
}
