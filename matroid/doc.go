// Package matroid defines the independence-system abstraction used by the
// intersection engine, together with its concrete variants:
//
//   - Partition  : every element belongs to exactly one group; a set is
//     independent iff each group holds at most its bound.
//   - Laminar    : elements belong to any number of nested groups; a set is
//     independent iff every group holds at most its bound.
//   - Uniform    : a single global cardinality bound.
//   - Conditioned: wraps another matroid and a fixed baseline set that is
//     counted as already present; used to stitch two algorithm phases together.
//
// Every Matroid owns a *current set*. Add and Remove only check membership
// (the element must be absent / present); they never reject an addition that
// would exceed a bound, because callers apply multi-step exchanges in which
// the set is transiently dependent. Feasibility is asked through CanAdd,
// CanSwap, IsFeasible and CurrentIsFeasible.
//
// # Errors
//
// Construction returns sentinel errors (ErrNegativeBound, ErrGroupOutOfRange,
// ErrNotLaminar, ErrInfeasibleBaseline). Misuse of a live matroid (adding a
// present element, removing an absent one, querying an element without a
// group) is a programmer error and panics with an error wrapping
// ErrPrecondition or ErrUnknownElement.
//
// All accessors that expose sets return ascending []int, so callers that
// iterate them are deterministic.
package matroid
