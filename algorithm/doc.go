// Package algorithm wraps the intersection engine into streaming algorithms
// with a common protocol, so an experiment harness can compare them on the
// same instance.
//
// # Protocol
//
//	alg.Init(oracle, fc, m)      // stores reset clones; the oracle shares its counter
//	for _, e := range universe {
//	    alg.Insert(e)
//	}
//	// two-pass algorithms: alg.BeginNextPass(), then Insert everything again
//	value, err := alg.SolutionValue() // exactly once
//	set, err := alg.SolutionVector()  // any number of times afterwards
//
// Violations return ErrNotInitialized, ErrNotComputed, ErrAlreadyComputed,
// ErrSinglePass or ErrPassOrder.
//
// # Algorithms
//
//   - Random: shuffled insertion under the matroid and the upper bounds.
//   - LowerBound: maximum intersection with the lower-bound matroid, grown
//     by PostFastGreedy or PostGreedy.
//   - UpperBound: Greedy or swapping under the upper bounds alone.
//   - TwoPass: a fair set split into two conditioned baselines.
//   - ApproximateFairness: greedy solution moved towards a fair one along a
//     random (1−ε) share of alternating paths. Partition matroids only.
//
// Random and ApproximateFairness implement Randomized.
package algorithm
