package accum

import (
	"github.com/hupe1980/lloyd/geom"
)

// Accumulator holds per-cluster coordinate sums and point counts.
type Accumulator struct {
	Sums   []geom.Point
	Counts []int
}

// New returns a zeroed accumulator for k clusters.
func New(k int) *Accumulator {
	return &Accumulator{
		Sums:   make([]geom.Point, k),
		Counts: make([]int, k),
	}
}

// K returns the number of cluster slots.
func (a *Accumulator) K() int {
	return len(a.Counts)
}

// Reset zeroes every slot so the accumulator can be reused.
func (a *Accumulator) Reset() {
	clear(a.Sums)
	clear(a.Counts)
}

// Add accounts point p to cluster j.
func (a *Accumulator) Add(j int, p geom.Point) {
	a.Sums[j] = a.Sums[j].Add(p)
	a.Counts[j]++
}

// AddAll accounts every points[i] to cluster assignments[i].
// Both slices must have the same length.
func (a *Accumulator) AddAll(points []geom.Point, assignments []int) {
	for i, p := range points {
		a.Add(assignments[i], p)
	}
}

// Merge adds every slot of other into a.
// Both accumulators must have the same number of slots.
func (a *Accumulator) Merge(other *Accumulator) {
	for j := range a.Counts {
		a.Sums[j] = a.Sums[j].Add(other.Sums[j])
		a.Counts[j] += other.Counts[j]
	}
}

// Total returns the number of points accounted across all clusters.
func (a *Accumulator) Total() int {
	n := 0
	for _, c := range a.Counts {
		n += c
	}
	return n
}

// Reduce combines partial accumulators pairwise until one remains and
// returns it. Partials are merged in place; the first element of each pair
// receives the result, so the inputs must not be reused afterwards.
// Returns nil for an empty slice.
func Reduce(parts []*Accumulator) *Accumulator {
	if len(parts) == 0 {
		return nil
	}
	for stride := 1; stride < len(parts); stride *= 2 {
		for i := 0; i+stride < len(parts); i += 2 * stride {
			parts[i].Merge(parts[i+stride])
		}
	}
	return parts[0]
}

// Centroids derives the next centroid set from the accumulated sums.
//
// Clusters with a non-zero count move to the mean of their points.
// Clusters with no points keep their previous position unchanged.
// It returns the new centroids, the largest Euclidean shift between prev
// and the result, and the number of empty clusters.
func (a *Accumulator) Centroids(prev []geom.Point) (next []geom.Point, maxShift float64, empty int) {
	next = make([]geom.Point, len(prev))
	for j, old := range prev {
		if a.Counts[j] == 0 {
			next[j] = old
			empty++
			continue
		}
		c := a.Sums[j].Scale(1 / float64(a.Counts[j]))
		if shift := geom.Distance(old, c); shift > maxShift {
			maxShift = shift
		}
		next[j] = c
	}
	return next, maxShift, empty
}
