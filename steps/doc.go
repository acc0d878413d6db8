// Package steps partitions piecewise-constant 1-D recordings into level
// segments ("steps") and optionally merges spurious adjacent segments.
//
// The pipeline is strictly forward: the raw signal is smoothed, transition
// candidates are located on the gradient and clustered into boundaries,
// each boundary pair becomes a Step whose stable sub-region is estimated
// from second- and third-derivative zero crossings, and an optional merge
// strategy coarsens the resulting list. Every stage is a pure function of
// its inputs; the package holds no state between runs and never returns
// slices that alias the caller's signal buffer.
//
// Typical use:
//
//	res, err := steps.Detect(signal, steps.DefaultDetectionParams())
//	if err != nil { ... }
//	merged := steps.AdjacentTolerance{LevelTolerance: 0.05}.Merge(res.Steps)
//
// Four merge strategies are provided: AdjacentTolerance (level distance),
// Clustering (density clustering of levels, merging index-contiguous runs
// only), DTWShape (dynamic-time-warping shape comparison), and
// AdaptiveHybrid (confidence-weighted adaptive tolerance). All are
// non-destructive and produce fresh records.
package steps
