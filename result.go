package lloyd

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/lloyd/geom"
)

// Snapshot is the state of a run after one iteration.
type Snapshot struct {
	// Iteration is 0 for the initial state.
	Iteration int
	// Centroids holds the centroid set after the update step.
	Centroids []geom.Point
	// Assignments holds the assignment computed in this iteration.
	// It is nil for the initial state.
	Assignments []int
	// Shift is the largest centroid movement in this iteration.
	Shift float64
}

// Result is the outcome of a clustering run.
type Result struct {
	// Centroids holds the final centroid set; index j identifies cluster j.
	Centroids []geom.Point
	// Assignments maps every input point index to its cluster index.
	Assignments []int
	// Iterations is the number of iterations that ran.
	Iterations int
	// Converged reports whether the run stopped because the largest shift
	// fell below the tolerance rather than by reaching the iteration cap.
	Converged bool
	// Shift is the largest centroid movement of the last iteration.
	Shift float64
	// History is only populated when WithHistory is set. It holds
	// Iterations+1 snapshots, starting with the initial centroids.
	History []Snapshot
}

// K returns the number of clusters.
func (r *Result) K() int {
	return len(r.Centroids)
}

// Sizes returns the number of points assigned to each cluster.
func (r *Result) Sizes() []int {
	sizes := make([]int, len(r.Centroids))
	for _, j := range r.Assignments {
		sizes[j]++
	}
	return sizes
}

// Members returns, for each cluster, the set of point indices assigned to it.
// Point indices must fit in a uint32.
func (r *Result) Members() []*roaring.Bitmap {
	members := make([]*roaring.Bitmap, len(r.Centroids))
	for j := range members {
		members[j] = roaring.New()
	}
	for i, j := range r.Assignments {
		members[j].Add(uint32(i))
	}
	for _, bm := range members {
		bm.RunOptimize()
	}
	return members
}

// Inertia returns the sum of squared distances between every point and the
// centroid of its cluster. points must be the slice the run was given.
func (r *Result) Inertia(points []geom.Point) float64 {
	var sse float64
	for i, p := range points {
		sse += geom.SquaredDistance(p, r.Centroids[r.Assignments[i]])
	}
	return sse
}

// Predict returns the cluster whose final centroid is nearest to p.
func (r *Result) Predict(p geom.Point) int {
	return nearest(p, r.Centroids)
}
