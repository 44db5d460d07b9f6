// Package accum implements the per-cluster accumulator used by the update
// step of Lloyd's algorithm.
//
// An Accumulator holds a running coordinate sum and a point count for each
// cluster. Partitions fill private accumulators, which are then combined
// with Merge (element-wise addition, associative and commutative) and
// finally turned into the next centroid set with Centroids.
package accum
