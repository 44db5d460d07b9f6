// Package pool provides a fixed-size worker pool with fork-join helpers for
// data-parallel loops over contiguous index ranges.
package pool
