package dataset

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/hupe1980/lloyd/geom"
)

// ErrInvalidArgument is returned for non-positive sizes or inverted ranges.
var ErrInvalidArgument = errors.New("dataset: invalid argument")

// Uniform returns n points drawn uniformly from the square [min, max)².
func Uniform(r *rand.Rand, n int, min, max float64) ([]geom.Point, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: n=%d", ErrInvalidArgument, n)
	}
	if !(min < max) {
		return nil, fmt.Errorf("%w: range [%g, %g)", ErrInvalidArgument, min, max)
	}
	r = orDefault(r)

	span := max - min
	points := make([]geom.Point, n)
	for i := range points {
		points[i] = geom.Point{
			X: min + r.Float64()*span,
			Y: min + r.Float64()*span,
		}
	}
	return points, nil
}

// Blobs returns n points scattered around the given centers with isotropic
// Gaussian noise of the given standard deviation. Points are dealt to centers
// round-robin, so every center receives n/len(centers) points (±1).
func Blobs(r *rand.Rand, n int, centers []geom.Point, stddev float64) ([]geom.Point, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: n=%d", ErrInvalidArgument, n)
	}
	if len(centers) == 0 {
		return nil, fmt.Errorf("%w: no centers", ErrInvalidArgument)
	}
	if stddev < 0 {
		return nil, fmt.Errorf("%w: stddev=%g", ErrInvalidArgument, stddev)
	}
	r = orDefault(r)

	points := make([]geom.Point, n)
	for i := range points {
		c := centers[i%len(centers)]
		points[i] = geom.Point{
			X: c.X + r.NormFloat64()*stddev,
			Y: c.Y + r.NormFloat64()*stddev,
		}
	}
	return points, nil
}

// RandomCenters returns k centers drawn uniformly from [min, max)².
func RandomCenters(r *rand.Rand, k int, min, max float64) ([]geom.Point, error) {
	return Uniform(r, k, min, max)
}

func orDefault(r *rand.Rand) *rand.Rand {
	if r != nil {
		return r
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}
