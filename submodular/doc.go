// Package submodular defines the valuation oracle consumed by the solvers.
//
// A Function is an incremental monotone submodular set function: it keeps its
// own current set S and answers marginal queries against it.
//
//	Delta(e)        = f(S ∪ {e}) − f(S)
//	RemovalDelta(e) = f(S) − f(S \ {e})
//	Objective(X)    = f(X), independent of S
//
// Oracle wraps a Function with a call Counter. The Counted* methods are the
// ones algorithms use; each increments the counter once, which is the cost
// metric reported by the experiment runner. Clones of an Oracle share the
// same Counter, so a harness reading its own Oracle sees the calls made by
// every algorithm run on a clone of it.
//
// Three functions ship with the package: Cardinality (f(S) = |S|), Additive
// (a non-negative weight per element) and Coverage (number of distinct items
// covered by the neighborhoods of S).
package submodular
