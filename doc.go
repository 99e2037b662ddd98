// Package fairmatroid maximizes monotone submodular functions under a matroid
// constraint and per-color fairness bounds.
//
// What is fairmatroid?
//
//	Every element of the ground set has a color; a solution must be
//	independent in the matroid and hold between Lower and Upper elements of
//	each color. The library brings together:
//		• Matroids: partition, laminar, uniform, conditioned on a baseline
//		• Fairness constraints and the partition matroids their bounds induce
//		• Submodular oracles with a shared call counter
//		• Matroid intersection: augmenting paths, greedy, swapping
//		• Alternating-path decomposition and the approximate-fairness
//		  interpolation between a greedy and a fair solution
//		• Streaming algorithms and an experiment runner to compare them
//
// Packages:
//
//	matroid/     : Matroid interface and its variants
//	fairness/    : color bounds, feasibility, induced matroids
//	submodular/  : Function interface, Oracle, cardinality/additive/coverage
//	intersection/: MaxIntersection, FairMaxIntersection, Greedy, ReturnPaths, ApproximateFair…
//	algorithm/   : the streaming Algorithm protocol and its implementations
//	experiment/  : runner, statistics and result tables
//	config/      : YAML instance files
//	rng/         : seedable random source
//	cmd/fairsub  : command line: run and check
//
// Quick example:
//
//	m, _ := matroid.NewPartition(groups, []int{3})
//	fc, _ := fairness.New(colors, []fairness.Bounds{{Lower: 0, Upper: 3}, {Lower: 2, Upper: 3}})
//	set, err := intersection.FairMaxIntersection(m, fc, universe)
//
// finds a largest independent set meeting every color bound, or reports
// intersection.ErrNoFairSet.
//
//	go install github.com/katalvlaran/fairmatroid/cmd/fairsub@latest
package fairmatroid
