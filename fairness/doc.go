// Package fairness implements per-color cardinality bounds over a colored
// ground set.
//
// A Constraint maps every element to a color and keeps one Bounds{Lower,
// Upper} pair per color. Like the matroids in package matroid it owns a
// current set together with per-color counts:
//
//	CanAdd(e)    count(color(e)) + 1 ≤ Upper
//	CanRemove(e) count(color(e)) − 1 ≥ Lower
//	IsFeasible   Lower ≤ count(c) ≤ Upper for every color c
//
// Add and Remove do not enforce the bounds; callers check first. Adding an
// element twice or removing an absent one panics with an error wrapping
// ErrPrecondition.
//
// LowerBoundsMatroid and UpperBoundsMatroid reduce fairness to matroid
// feasibility: both return a fresh *matroid.Partition whose groups are the
// colors and whose capacities are the lower or upper bounds. The intersection
// engine then treats the constraint as just another matroid.
//
// Distribution, Violation and LowerBoundRatio are the per-solution metrics
// reported by the experiment runner.
package fairness
