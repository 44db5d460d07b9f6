package lloyd

import (
	"github.com/hupe1980/lloyd/geom"
	"github.com/hupe1980/lloyd/internal/accum"
	"github.com/hupe1980/lloyd/internal/pool"
)

// Parallel clusters points into k groups using a fixed pool of worker
// goroutines (see WithWorkers).
//
// Each iteration forks twice over contiguous partitions of the input:
// once to assign points to their nearest centroid, once to build a private
// per-partition accumulator. The partial accumulators are then merged
// pairwise into a single global one, so no accumulator slot is ever written
// by more than one goroutine.
//
// Validation and the returned errors are identical to Sequential. With a
// single worker the result is bit-identical to Sequential.
func Parallel(points []geom.Point, k int, opts ...Option) (*Result, error) {
	return execute(engineParallel, points, k, opts, func(o *options) (stepper, int) {
		workers := min(o.workers, len(points))
		ranges := pool.Partition(len(points), workers)

		parts := make([]*accum.Accumulator, len(ranges))
		for i := range parts {
			parts[i] = accum.New(k)
		}

		return &parallelStep{
			points: points,
			pool:   pool.New(workers),
			ranges: ranges,
			parts:  parts,
		}, workers
	})
}

type parallelStep struct {
	points []geom.Point
	pool   *pool.Pool
	ranges []pool.Range
	parts  []*accum.Accumulator
}

func (s *parallelStep) assign(centroids []geom.Point, assignments []int) error {
	return s.pool.ForkJoin(s.ranges, func(_ int, r pool.Range) {
		assignRange(s.points[r.Lo:r.Hi], centroids, assignments[r.Lo:r.Hi])
	})
}

func (s *parallelStep) accumulate(assignments []int) (*accum.Accumulator, error) {
	err := s.pool.ForkJoin(s.ranges, func(i int, r pool.Range) {
		acc := s.parts[i]
		acc.Reset()
		acc.AddAll(s.points[r.Lo:r.Hi], assignments[r.Lo:r.Hi])
	})
	if err != nil {
		return nil, err
	}
	return accum.Reduce(s.parts), nil
}

func (s *parallelStep) close() {
	s.pool.Close()
}
