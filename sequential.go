package lloyd

import (
	"github.com/hupe1980/lloyd/geom"
	"github.com/hupe1980/lloyd/internal/accum"
)

// Sequential clusters points into k groups on the calling goroutine.
//
// It is the reference implementation: Parallel with identical initial
// centroids produces the same assignments and, up to floating-point
// summation order, the same centroids.
//
// Returns an error satisfying errors.Is(err, ErrInvalidConfiguration) when
// k is zero, k exceeds len(points), or the initial centroid count is not k.
func Sequential(points []geom.Point, k int, opts ...Option) (*Result, error) {
	return execute(engineSequential, points, k, opts, func(*options) (stepper, int) {
		return &sequentialStep{points: points, acc: accum.New(k)}, 1
	})
}

type sequentialStep struct {
	points []geom.Point
	acc    *accum.Accumulator
}

func (s *sequentialStep) assign(centroids []geom.Point, assignments []int) error {
	assignRange(s.points, centroids, assignments)
	return nil
}

func (s *sequentialStep) accumulate(assignments []int) (*accum.Accumulator, error) {
	s.acc.Reset()
	s.acc.AddAll(s.points, assignments)
	return s.acc, nil
}

func (s *sequentialStep) close() {}
