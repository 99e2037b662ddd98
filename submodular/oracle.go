package submodular

import (
	"errors"
	"slices"

	mapset "github.com/deckarep/golang-set/v2"
)

// ErrNegativeWeight is returned when an Additive function receives a weight < 0.
var ErrNegativeWeight = errors.New("submodular: negative weight")

// Function is an incremental submodular set function over int elements.
type Function interface {
	// Reset empties the current set.
	Reset()
	// Add inserts e into the current set.
	Add(e int)
	// Remove deletes e from the current set.
	Remove(e int)
	// Delta returns the marginal gain of adding e to the current set.
	Delta(e int) float64
	// RemovalDelta returns the loss of removing e from the current set.
	RemovalDelta(e int) float64
	// Objective evaluates f on an arbitrary set.
	Objective(set []int) float64
	// Universe lists the ground set in ascending order.
	Universe() []int
	// Name describes the function for reports.
	Name() string
	// Clone returns an independent copy with the same current set.
	Clone() Function
}

// Counter counts oracle calls. The zero value is ready to use.
type Counter struct {
	n int64
}

// Inc adds one call.
func (c *Counter) Inc() { c.n++ }

// Load returns the number of calls so far.
func (c *Counter) Load() int64 { return c.n }

// Reset sets the count to zero.
func (c *Counter) Reset() { c.n = 0 }

// Oracle is a Function plus a call counter shared with its clones.
type Oracle struct {
	f     Function
	calls *Counter
}

// NewOracle wraps f with a fresh counter.
func NewOracle(f Function) *Oracle {
	return &Oracle{f: f, calls: &Counter{}}
}

// Function returns the wrapped function.
func (o *Oracle) Function() Function { return o.f }

// Reset empties the current set of the wrapped function.
func (o *Oracle) Reset() { o.f.Reset() }

// Add inserts e.
func (o *Oracle) Add(e int) { o.f.Add(e) }

// Remove deletes e without counting a call.
func (o *Oracle) Remove(e int) { o.f.Remove(e) }

// Delta returns the marginal gain of e without counting a call.
func (o *Oracle) Delta(e int) float64 { return o.f.Delta(e) }

// RemovalDelta returns the removal loss of e without counting a call.
func (o *Oracle) RemovalDelta(e int) float64 { return o.f.RemovalDelta(e) }

// Objective evaluates set without counting a call.
func (o *Oracle) Objective(set []int) float64 { return o.f.Objective(set) }

// Universe returns the ground set.
func (o *Oracle) Universe() []int { return o.f.Universe() }

// Name returns the function name.
func (o *Oracle) Name() string { return o.f.Name() }

// CountedDelta is Delta plus one oracle call.
func (o *Oracle) CountedDelta(e int) float64 {
	o.calls.Inc()
	return o.f.Delta(e)
}

// CountedRemovalDelta is RemovalDelta plus one oracle call.
func (o *Oracle) CountedRemovalDelta(e int) float64 {
	o.calls.Inc()
	return o.f.RemovalDelta(e)
}

// CountedRemove removes e, counts one call and returns the value lost.
func (o *Oracle) CountedRemove(e int) float64 {
	o.calls.Inc()
	loss := o.f.RemovalDelta(e)
	o.f.Remove(e)
	return loss
}

// CountedObjective is Objective plus one oracle call.
func (o *Oracle) CountedObjective(set []int) float64 {
	o.calls.Inc()
	return o.f.Objective(set)
}

// Calls returns the shared call count.
func (o *Oracle) Calls() int64 { return o.calls.Load() }

// ResetCalls zeroes the shared call count.
func (o *Oracle) ResetCalls() { o.calls.Reset() }

// Clone copies the wrapped function; the counter is shared.
func (o *Oracle) Clone() *Oracle {
	return &Oracle{f: o.f.Clone(), calls: o.calls}
}

// universeOf returns the keys of m in ascending order.
func universeOf[V any](m map[int]V) []int {
	out := make([]int, 0, len(m))
	for e := range m {
		out = append(out, e)
	}
	slices.Sort(out)
	return out
}

func newSet() mapset.Set[int] { return mapset.NewThreadUnsafeSet[int]() }
