package testutil

import (
	"math"
	"math/rand/v2"
	"sync"

	"github.com/hupe1980/lloyd/geom"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed uint64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed uint64) *RNG {
	return &RNG{
		rand: newRand(seed),
		seed: seed,
	}
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand = newRand(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() uint64 {
	return r.seed
}

// Rand returns an independent generator seeded from this one, suitable for
// lloyd.WithRand. Callers own the returned value.
func (r *RNG) Rand() *rand.Rand {
	r.mu.Lock()
	defer r.mu.Unlock()
	return rand.New(rand.NewPCG(r.rand.Uint64(), r.rand.Uint64()))
}

// IntN returns a non-negative pseudo-random number in [0,n).
func (r *RNG) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.IntN(n)
}

// UniformPoints returns n points uniformly distributed in [minVal, maxVal)².
func (r *RNG) UniformPoints(n int, minVal, maxVal float64) []geom.Point {
	r.mu.Lock()
	defer r.mu.Unlock()

	span := maxVal - minVal
	points := make([]geom.Point, n)
	for i := range points {
		points[i] = geom.Point{X: minVal + r.rand.Float64()*span, Y: minVal + r.rand.Float64()*span}
	}
	return points
}

// GridBlobs returns n points with integer offsets in [-spread, spread]
// around the given centers, dealt round-robin.
func (r *RNG) GridBlobs(n int, centers []geom.Point, spread int) []geom.Point {
	r.mu.Lock()
	defer r.mu.Unlock()
	return GridBlobs(r.rand, n, centers, spread)
}

// GridBlobs returns points with integer coordinates scattered around the
// given centers. With integer centers every partial sum is exact, so
// clustering results do not depend on summation order.
func GridBlobs(r *rand.Rand, n int, centers []geom.Point, spread int) []geom.Point {
	points := make([]geom.Point, n)
	for i := range points {
		c := centers[i%len(centers)]
		points[i] = geom.Point{
			X: c.X + float64(r.IntN(2*spread+1)-spread),
			Y: c.Y + float64(r.IntN(2*spread+1)-spread),
		}
	}
	return points
}

// Square returns the four corners of a 10x1 rectangle. With initial
// centroids (0,0) and (10,0) and k=2, Lloyd's algorithm converges in two
// iterations to (0,0.5) and (10,0.5).
func Square() []geom.Point {
	return []geom.Point{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 10, Y: 0}, {X: 10, Y: 1}}
}

// ExactAssign computes the nearest centroid of every point by brute force.
// Ties go to the lowest index.
func ExactAssign(points, centroids []geom.Point) []int {
	out := make([]int, len(points))
	for i, p := range points {
		best, bestDist := 0, math.Inf(1)
		for j, c := range centroids {
			if d := geom.Distance(p, c); d < bestDist {
				best, bestDist = j, d
			}
		}
		out[i] = best
	}
	return out
}

// IsFixedPoint reports whether centroids equal the means of their assigned
// points to within tol. Clusters without points are ignored.
func IsFixedPoint(points, centroids []geom.Point, assignments []int, tol float64) bool {
	sums := make([]geom.Point, len(centroids))
	counts := make([]int, len(centroids))
	for i, j := range assignments {
		sums[j] = sums[j].Add(points[i])
		counts[j]++
	}
	for j, c := range centroids {
		if counts[j] == 0 {
			continue
		}
		if geom.Distance(sums[j].Scale(1/float64(counts[j])), c) > tol {
			return false
		}
	}
	return true
}
