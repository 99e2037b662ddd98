package intersection

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/fairmatroid/matroid"
)

// noParent marks BFS roots; elements are non-negative.
const noParent = -1

// exchangeGraph maps an element to the elements reachable by one exchange
// step. Rebuilt every round and never reused.
type exchangeGraph map[int][]int

// buildExchangeGraph adds, for every e outside the common current set,
// edges s→e for s in a.AllSwaps(e) and e→s for s in b.AllSwaps(e).
//
// Complexity: O(|elements| · cost(AllSwaps)).
func buildExchangeGraph(a, b matroid.Matroid, elements []int) exchangeGraph {
	g := make(exchangeGraph)
	for _, e := range elements {
		if a.InCurrent(e) {
			continue
		}
		for _, s := range a.AllSwaps(e) {
			g[s] = append(g[s], e)
		}
		for _, s := range b.AllSwaps(e) {
			g[e] = append(g[e], s)
		}
	}
	return g
}

// walker encapsulates the state of one augmenting-path search.
type walker struct {
	a, b   matroid.Matroid
	graph  exchangeGraph
	queue  []int
	parent map[int]int
}

func newWalker(a, b matroid.Matroid, g exchangeGraph) *walker {
	return &walker{a: a, b: b, graph: g, parent: make(map[int]int)}
}

// seed enqueues, in elements order, every non-current element a accepts
// outright.
func (w *walker) seed(elements []int) {
	for _, e := range elements {
		if w.a.InCurrent(e) {
			continue
		}
		if _, seen := w.parent[e]; seen {
			continue
		}
		if w.a.CanAdd(e) {
			w.enqueue(e, noParent)
		}
	}
}

func (w *walker) enqueue(e, parent int) {
	w.parent[e] = parent
	w.queue = append(w.queue, e)
}

// search runs BFS until it dequeues an element b accepts outright.
func (w *walker) search() (sink int, found bool) {
	for len(w.queue) > 0 {
		e := w.queue[0]
		w.queue = w.queue[1:]
		if !w.b.InCurrent(e) && w.b.CanAdd(e) {
			return e, true
		}
		for _, next := range w.graph[e] {
			if _, seen := w.parent[next]; !seen {
				w.enqueue(next, e)
			}
		}
	}
	return 0, false
}

// path follows parent links back from sink and returns the chain source first.
func (w *walker) path(sink int) []int {
	var p []int
	for v := sink; v != noParent; v = w.parent[v] {
		p = append(p, v)
	}
	slices.Reverse(p)
	return p
}

// applyPath walks path from the sink back to the source, swapping each
// non-current element in for its predecessor on both matroids, then adds
// the source to both.
func applyPath(a, b matroid.Matroid, path []int) {
	i := len(path) - 1
	for ; i > 0; i -= 2 {
		a.Swap(path[i], path[i-1])
		b.Swap(path[i], path[i-1])
	}
	a.Add(path[0])
	b.Add(path[0])
}

// addCommon greedily adds, in elements order, everything both matroids accept.
func addCommon(a, b matroid.Matroid, elements []int) {
	for _, e := range elements {
		if a.InCurrent(e) {
			continue
		}
		if a.CanAdd(e) && b.CanAdd(e) {
			a.Add(e)
			b.Add(e)
		}
	}
}

// augment alternates greedy additions and single augmentations until no
// augmenting path remains. It never resets a or b.
func augment(a, b matroid.Matroid, elements []int, o Options) error {
	for round := 0; ; round++ {
		if err := o.Ctx.Err(); err != nil {
			return err
		}
		addCommon(a, b, elements)

		w := newWalker(a, b, buildExchangeGraph(a, b, elements))
		w.seed(elements)
		sink, found := w.search()
		if !found {
			o.Logger.WithField("rounds", round).Debug("no augmenting path left")
			return nil
		}
		path := w.path(sink)
		o.Logger.WithField("path", path).Debug("applying augmenting path")
		applyPath(a, b, path)
		o.OnAugment(path)
	}
}

// checkFeasible verifies that both current sets are independent.
func checkFeasible(a, b matroid.Matroid) error {
	if !a.CurrentIsFeasible() {
		return fmt.Errorf("%w: first matroid holds an infeasible set %v", ErrInvariant, a.Current())
	}
	if !b.CurrentIsFeasible() {
		return fmt.Errorf("%w: second matroid holds an infeasible set %v", ErrInvariant, b.Current())
	}
	return nil
}

// checkCommon verifies that a and b hold the same independent set.
func checkCommon(a, b matroid.Matroid) error {
	if err := checkFeasible(a, b); err != nil {
		return err
	}
	if ca, cb := a.Current(), b.Current(); !slices.Equal(ca, cb) {
		return fmt.Errorf("%w: current sets diverged: %v vs %v", ErrInvariant, ca, cb)
	}
	return nil
}
