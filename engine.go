package lloyd

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/hupe1980/lloyd/geom"
	"github.com/hupe1980/lloyd/internal/accum"
)

const (
	engineSequential = "sequential"
	engineParallel   = "parallel"
)

// Func is the signature shared by Sequential and Parallel, so callers such
// as benchmark harnesses can be handed either engine.
type Func func(points []geom.Point, k int, opts ...Option) (*Result, error)

var (
	_ Func = Sequential
	_ Func = Parallel
)

// stepper distributes the per-iteration work. The iteration loop,
// convergence test and centroid recomputation are shared by all engines.
type stepper interface {
	// assign writes the nearest centroid index of every point.
	assign(centroids []geom.Point, assignments []int) error
	// accumulate returns the per-cluster sums and counts for assignments.
	accumulate(assignments []int) (*accum.Accumulator, error)
	close()
}

func execute(engine string, points []geom.Point, k int, opts []Option, build func(o *options) (stepper, int)) (*Result, error) {
	ctx := context.Background()
	start := time.Now()

	o := defaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	log := o.logger.WithEngine(engine).WithK(k)

	centroids, err := initialize(points, k, &o)
	if err != nil {
		o.metricsCollector.RecordRun(engine, 0, 0, false, time.Since(start), err)
		log.LogRun(ctx, len(points), 0, false, time.Since(start), err)
		return nil, err
	}

	step, workers := build(&o)
	defer step.close()
	log = log.WithWorkers(workers)

	res, err := iterate(ctx, engine, points, centroids, &o, step, log)
	elapsed := time.Since(start)
	if err != nil {
		o.metricsCollector.RecordRun(engine, workers, 0, false, elapsed, err)
		log.LogRun(ctx, len(points), 0, false, elapsed, err)
		return nil, err
	}

	o.metricsCollector.RecordRun(engine, workers, res.Iterations, res.Converged, elapsed, nil)
	log.LogRun(ctx, len(points), res.Iterations, res.Converged, elapsed, nil)
	return res, nil
}

// initialize validates the configuration and returns the starting centroids.
func initialize(points []geom.Point, k int, o *options) ([]geom.Point, error) {
	switch {
	case k < 1:
		return nil, invalid("k", "must be at least 1, got %d", k)
	case k > len(points):
		return nil, invalid("k", "%d exceeds the number of points (%d)", k, len(points))
	case o.maxIters < 0:
		return nil, invalid("max_iters", "must not be negative, got %d", o.maxIters)
	case o.tolerance < 0 || math.IsNaN(o.tolerance):
		return nil, invalid("tolerance", "must be a non-negative number, got %v", o.tolerance)
	case o.workers < 0:
		return nil, invalid("workers", "must not be negative, got %d", o.workers)
	}

	if o.initialCentroids != nil {
		if len(o.initialCentroids) != k {
			return nil, invalid("initial_centroids", "expected %d centroids, got %d", k, len(o.initialCentroids))
		}
		return slices.Clone(o.initialCentroids), nil
	}

	return sampleCentroids(points, k, o.rng), nil
}

// SampleCentroids picks k distinct input points uniformly at random, the way
// the engines do when WithInitialCentroids is not given. Passing the result
// to several runs makes them start from the same state.
func SampleCentroids(points []geom.Point, k int, r *rand.Rand) ([]geom.Point, error) {
	if k < 1 || k > len(points) {
		return nil, invalid("k", "must be between 1 and %d, got %d", len(points), k)
	}
	return sampleCentroids(points, k, r), nil
}

// sampleCentroids picks k distinct input positions uniformly at random.
func sampleCentroids(points []geom.Point, k int, r *rand.Rand) []geom.Point {
	if r == nil {
		r = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	perm := r.Perm(len(points))
	centroids := make([]geom.Point, k)
	for i := range centroids {
		centroids[i] = points[perm[i]]
	}
	return centroids
}

func iterate(ctx context.Context, engine string, points, centroids []geom.Point, o *options, step stepper, log *Logger) (*Result, error) {
	res := &Result{
		Assignments: make([]int, len(points)),
	}
	if o.history {
		res.History = append(res.History, Snapshot{Centroids: slices.Clone(centroids)})
	}

	if o.maxIters == 0 {
		if err := step.assign(centroids, res.Assignments); err != nil {
			return nil, fmt.Errorf("assignment step: %w", err)
		}
		res.Centroids = centroids
		return res, nil
	}

	for it := 1; it <= o.maxIters; it++ {
		t0 := time.Now()

		if err := step.assign(centroids, res.Assignments); err != nil {
			return nil, fmt.Errorf("iteration %d: assignment step: %w", it, err)
		}
		acc, err := step.accumulate(res.Assignments)
		if err != nil {
			return nil, fmt.Errorf("iteration %d: update step: %w", it, err)
		}

		next, shift, empty := acc.Centroids(centroids)
		centroids = next

		stats := IterationStats{
			Iteration:     it,
			Shift:         shift,
			EmptyClusters: empty,
			Duration:      time.Since(t0),
		}
		res.Iterations = it
		res.Shift = shift

		if o.history {
			res.History = append(res.History, Snapshot{
				Iteration:   it,
				Centroids:   slices.Clone(centroids),
				Assignments: slices.Clone(res.Assignments),
				Shift:       shift,
			})
		}
		if o.observer != nil {
			o.observer(stats)
		}
		log.LogIteration(ctx, stats)
		o.metricsCollector.RecordIteration(engine, shift, stats.Duration)

		if shift < o.tolerance {
			res.Converged = true
			break
		}
	}

	res.Centroids = centroids
	return res, nil
}

// nearest returns the index of the centroid closest to p.
// Ties go to the lowest index.
func nearest(p geom.Point, centroids []geom.Point) int {
	best, bestDist := 0, math.Inf(1)
	for j, c := range centroids {
		if d := geom.Distance(p, c); d < bestDist {
			best, bestDist = j, d
		}
	}
	return best
}

func assignRange(points, centroids []geom.Point, assignments []int) {
	for i, p := range points {
		assignments[i] = nearest(p, centroids)
	}
}
