// Package lloyd clusters two-dimensional points into k groups with Lloyd's
// algorithm (k-means).
//
// Two engines share one iteration loop and differ only in how the work of
// each iteration is distributed:
//
//   - Sequential: the reference implementation on a single goroutine.
//   - Parallel: a fixed worker pool; points are split into contiguous
//     partitions, each partition builds a private per-cluster accumulator,
//     and the accumulators are merged pairwise before centroids are
//     recomputed.
//
// Given the same initial centroids both engines produce the same
// assignments, and centroids equal up to floating-point summation order.
//
// # Semantics
//
//   - Assignment: every point goes to its nearest centroid by Euclidean
//     distance; ties go to the lowest cluster index.
//   - Update: a cluster's new centroid is the mean of its points. A cluster
//     that received no points keeps its previous centroid unchanged.
//   - Convergence: a run stops after the first iteration whose largest
//     centroid shift is strictly below the tolerance, or after the
//     iteration cap.
//
// # Quick Start
//
//	points := []geom.Point{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 10, Y: 0}, {X: 10, Y: 1}}
//
//	res, err := lloyd.Parallel(points, 2,
//	    lloyd.WithInitialCentroids([]geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}),
//	    lloyd.WithTolerance(0.001),
//	    lloyd.WithWorkers(4),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Centroids, res.Assignments) // [{0 0.5} {10 0.5}] [0 0 1 1]
//
// # Reproducibility
//
// Without WithInitialCentroids the starting centroids are sampled without
// replacement from the input. Pass WithRand with a seeded source to make
// that sampling deterministic.
//
// # Diagnostics
//
// WithHistory records the centroid set (and the assignment vector) of every
// iteration for replay; package trace persists such histories. WithObserver,
// WithLogger and WithMetricsCollector expose per-iteration progress without
// the engine performing any I/O itself.
package lloyd
