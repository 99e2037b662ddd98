package intersection

import (
	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/fairmatroid/matroid"
	"github.com/katalvlaran/fairmatroid/submodular"
)

// Greedy repeatedly adds the element with the largest positive marginal gain
// among those outside both current sets that both matroids accept. Ties go
// to the first such element in universe. The chosen element is added to a, b
// and oracle. Nothing is reset on entry.
//
// Every marginal query is counted on the oracle. Returns a's current set; on
// a failed feasibility post-check the set is returned with an error wrapping
// ErrInvariant.
//
// Complexity: O(r · |universe|) oracle calls for r = final size.
func Greedy(a, b matroid.Matroid, oracle *submodular.Oracle, universe []int, opts ...Option) ([]int, error) {
	o := buildOptions(opts)
	for {
		if err := o.Ctx.Err(); err != nil {
			return a.Current(), err
		}
		best, bestGain := noParent, 0.0
		for _, e := range universe {
			if a.InCurrent(e) || b.InCurrent(e) {
				continue
			}
			if !a.CanAdd(e) || !b.CanAdd(e) {
				continue
			}
			if gain := oracle.CountedDelta(e); gain > bestGain {
				best, bestGain = e, gain
			}
		}
		if best == noParent {
			break
		}
		a.Add(best)
		b.Add(best)
		oracle.Add(best)
	}

	if err := checkFeasible(a, b); err != nil {
		o.Logger.WithError(err).Error("greedy post-check failed")
		return a.Current(), err
	}
	return a.Current(), nil
}

// eviction outcomes of minWeightSwap besides a concrete element.
const (
	evictNone       = -1
	evictImpossible = -2
)

// minWeightSwap returns evictNone when m accepts e outright, evictImpossible
// when no single removal admits e, and otherwise the first member of
// m.AllSwaps(e) with the smallest recorded weight.
func minWeightSwap(m matroid.Matroid, weight map[int]float64, e int) int {
	if m.CanAdd(e) {
		return evictNone
	}
	best := evictImpossible
	for _, s := range m.AllSwaps(e) {
		if best < 0 || weight[s] < weight[best] {
			best = s
		}
	}
	return best
}

// SubMaxIntersectionSwapping makes one pass over universe. For each element
// it finds the cheapest eviction in each matroid and swaps the element in
// when twice the evicted weight does not exceed its marginal gain. The
// weight of an element is the gain it had when it was admitted; elements
// already present when the pass starts weigh zero.
//
// Nothing is reset, so a and b may already hold a set (for instance a
// Conditioned baseline). Returns an error wrapping ErrInvariant when the
// final sets are not independent.
func SubMaxIntersectionSwapping(a, b matroid.Matroid, oracle *submodular.Oracle, universe []int, opts ...Option) error {
	o := buildOptions(opts)
	weight := make(map[int]float64)
	swaps := 0
	for _, e := range universe {
		if a.InCurrent(e) || b.InCurrent(e) {
			continue
		}
		first := minWeightSwap(a, weight, e)
		second := minWeightSwap(b, weight, e)
		if first == evictImpossible || second == evictImpossible {
			continue
		}
		gain := oracle.CountedDelta(e)
		if 2*(weight[first]+weight[second]) > gain {
			continue
		}
		for _, s := range evictions(first, second) {
			a.Remove(s)
			b.Remove(s)
			oracle.Remove(s)
			delete(weight, s)
			swaps++
		}
		a.Add(e)
		b.Add(e)
		oracle.Add(e)
		weight[e] = gain
	}

	o.Logger.WithFields(logrus.Fields{
		"size":      len(a.Current()),
		"evictions": swaps,
	}).Debug("swapping pass done")
	if err := checkFeasible(a, b); err != nil {
		o.Logger.WithError(err).Error("swapping post-check failed")
		return err
	}
	return nil
}

// evictions lists the distinct concrete elements among first and second.
func evictions(first, second int) []int {
	var out []int
	if first >= 0 {
		out = append(out, first)
	}
	if second >= 0 && second != first {
		out = append(out, second)
	}
	return out
}
