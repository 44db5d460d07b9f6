// Package testutil provides testing utilities for lloyd.
//
// This package is intended for use in tests and benchmarks only.
// It provides seeded point generators and brute-force references.
//
// # Random Points
//
//	rng := testutil.NewRNG(seed)
//	points := rng.UniformPoints(1000, 0, 100)
//	blobs := rng.GridBlobs(600, centers, 5)
//	res, _ := lloyd.Sequential(points, 4, lloyd.WithRand(rng.Rand()))
//
// # Ground Truth
//
//	want := testutil.ExactAssign(points, res.Centroids)
//	ok := testutil.IsFixedPoint(points, res.Centroids, res.Assignments, 1e-9)
package testutil
