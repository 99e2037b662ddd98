// Package intersection is the matroid-intersection engine behind the fair
// submodular maximization algorithms.
//
// What:
//
//   - MaxIntersection: maximum-cardinality common independent set of two
//     matroids by repeated shortest augmenting paths in the exchange graph.
//   - FairMaxIntersection: the same loop, first against the lower-bound
//     matroid of a fairness constraint and then, without a reset, against its
//     upper-bound matroid. Returns ErrNoFairSet when the lower bounds cannot
//     all be met.
//   - Greedy and SubMaxIntersectionSwapping: value-driven heuristics under
//     two matroids, using a submodular.Oracle for marginal gains.
//   - ReturnPaths: decomposition of the symmetric difference of two sets into
//     augmenting paths, alternating paths and cycles over a bipartite
//     color/group graph.
//   - ApproximateFairSubmodularMaximization: randomized interpolation from
//     the greedy set towards the maximum fair set by applying a (1−ε)
//     fraction of the decomposed paths.
//
// Exchange graph:
//
// For every element e outside the common current set there is an edge s→e
// for each s in a.AllSwaps(e) and an edge e→s for each s in b.AllSwaps(e).
// The search starts from every element a accepts outright, in the order of
// the elements slice, and stops at the first dequeued element b accepts
// outright. Swapping along the parent chain on both matroids and adding the
// source grows the common set by one.
//
// Both matroids always hold the same current set while the loop runs.
//
// Errors:
//
//   - ErrNoFairSet: the instance has no fair feasible set.
//   - ErrInvariant: a post-condition failed; the accompanying result is
//     best effort and the failure is logged at Error level.
//   - ErrEpsilonRange: epsilon outside [0, 1].
//
// Options:
//
//   - WithLogger: logrus.FieldLogger for diagnostics (default: the standard
//     logger).
//   - WithContext: cancellation checked between rounds.
//   - WithOnAugment: hook receiving every applied augmenting path.
package intersection
