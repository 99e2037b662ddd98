package intersection

import (
	"slices"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/fairmatroid/fairness"
	"github.com/katalvlaran/fairmatroid/matroid"
)

// Decomposition is the result of ReturnPaths.
type Decomposition struct {
	// Paths holds one element sequence per augmenting or alternating path.
	// Applying a path to Y adds the elements at even positions (taken from
	// P) and removes those at odd positions (taken from Y).
	Paths [][]int

	// Sources is the number of walks started, one per unit of color excess.
	Sources int

	// Augmenting and Alternating count the recorded paths ending on a group
	// vertex and on a color vertex. Cycles counts discarded cycles.
	Augmenting  int
	Alternating int
	Cycles      int

	// EdgesTotal is the size of the initial graph (|Y △ P|). EdgesRemoved
	// counts edges deleted by recorded paths and discarded cycles.
	EdgesTotal   int
	EdgesRemoved int

	// Unbalanced lists colors whose residual in-degree differs from their
	// residual out-degree.
	Unbalanced []int
}

// colorVertex and groupVertex place colors on odd and groups on even
// vertex ids so both sides share one id space.
func colorVertex(c int) int { return 2*c + 1 }
func groupVertex(g int) int { return 2*g + 2 }

// step is one edge of a walk: the element labelling it and its head vertex.
type step struct {
	edge int
	to   int
}

// pathGraph maps vertex → element → head vertex.
type pathGraph map[int]map[int]int

func (g pathGraph) add(from, edge, to int) {
	if g[from] == nil {
		g[from] = make(map[int]int)
	}
	g[from][edge] = to
}

// first returns the outgoing edge of v with the smallest element.
func (g pathGraph) first(v int) (step, bool) {
	out := g[v]
	if len(out) == 0 {
		return step{}, false
	}
	edge := -1
	for e := range out {
		if edge == -1 || e < edge {
			edge = e
		}
	}
	return step{edge: edge, to: out[edge]}, true
}

// remove deletes the edges of walk starting at tail and reports how many
// existed.
func (g pathGraph) remove(tail int, walk []step) int {
	n := 0
	for _, s := range walk {
		if _, ok := g[tail][s.edge]; ok {
			delete(g[tail], s.edge)
			n++
		}
		tail = s.to
	}
	return n
}

// ReturnPaths decomposes the symmetric difference of setY and setP into
// augmenting paths, alternating paths and cycles.
//
// The graph is bipartite between colors of fc and groups of a. An element
// only in setP is an edge color→group, an element only in setY an edge
// group→color. Each color is a source once per unit of excess out-degree.
// From a source the walk always takes the outgoing edge with the smallest
// element until it reaches a vertex without outgoing edges or revisits a
// vertex:
//   - group sink: augmenting path, recorded;
//   - color sink: alternating path, recorded;
//   - revisit: the cycle part of the walk is deleted, nothing is recorded,
//     and the same source is walked again.
//
// Recorded paths have their edges deleted too, so no edge is used twice.
// a and fc are reset; only their group and color maps are read. Mismatched
// post-conditions (paths ≠ sources, unbalanced colors) are logged and
// reported in the Decomposition.
func ReturnPaths(a *matroid.Partition, fc *fairness.Constraint, setY, setP []int, opts ...Option) *Decomposition {
	o := buildOptions(opts)
	fc.Reset()
	a.Reset()

	inY := mapset.NewThreadUnsafeSet(setY...)
	inP := mapset.NewThreadUnsafeSet(setP...)
	union := inY.Union(inP).ToSlice()
	slices.Sort(union)

	d := &Decomposition{}
	g := make(pathGraph)
	for _, e := range union {
		y, p := inY.Contains(e), inP.Contains(e)
		if y && p {
			continue
		}
		c, grp := colorVertex(fc.Color(e)), groupVertex(a.Group(e))
		if p {
			g.add(c, e, grp)
		} else {
			g.add(grp, e, c)
		}
		d.EdgesTotal++
	}

	excess := make([]int, fc.NumColors())
	for e := range inP.Iter() {
		excess[fc.Color(e)]++
	}
	for e := range inY.Iter() {
		excess[fc.Color(e)]--
	}
	var sources []int
	for c, x := range excess {
		for ; x > 0; x-- {
			sources = append(sources, colorVertex(c))
		}
	}
	d.Sources = len(sources)

	for i := 0; i < len(sources); i++ {
		source := sources[i]
		if _, ok := g.first(source); !ok {
			o.Logger.WithField("vertex", source).Error("source has no outgoing edge")
			continue
		}

		head := source
		visited := map[int]bool{}
		var walk []step
		cycle, sink := false, false
		for !cycle && !sink {
			visited[head] = true
			s, _ := g.first(head)
			walk = append(walk, s)
			head = s.to
			cycle = visited[head]
			_, more := g.first(head)
			sink = !more
		}

		if sink {
			path := make([]int, len(walk))
			for k, s := range walk {
				path[k] = s.edge
			}
			d.Paths = append(d.Paths, path)
			if head%2 == 0 {
				d.Augmenting++
			} else {
				d.Alternating++
			}
			d.EdgesRemoved += g.remove(source, walk)
			continue
		}

		// Cycle: drop the part of the walk after the first visit of head.
		k := 0
		if head != source {
			for walk[k].to != head {
				k++
			}
			k++
		}
		d.Cycles++
		d.EdgesRemoved += g.remove(head, walk[k:])
		i--
	}

	for c := 0; c < fc.NumColors(); c++ {
		cv := colorVertex(c)
		in := 0
		for grp := 0; grp < a.NumGroups(); grp++ {
			for _, to := range g[groupVertex(grp)] {
				if to == cv {
					in++
				}
			}
		}
		if in != len(g[cv]) {
			d.Unbalanced = append(d.Unbalanced, c)
		}
	}

	entry := o.Logger.WithFields(logrus.Fields{
		"sources":     d.Sources,
		"augmenting":  d.Augmenting,
		"alternating": d.Alternating,
		"cycles":      d.Cycles,
	})
	if len(d.Paths) != d.Sources {
		entry.Errorf("found %d paths for %d sources", len(d.Paths), d.Sources)
	}
	if len(d.Unbalanced) > 0 {
		entry.WithField("colors", d.Unbalanced).Error("in-degree differs from out-degree")
	}
	entry.Debug("path decomposition done")
	return d
}
