package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hupe1980/lloyd/geom"
)

func TestUniformPoints(t *testing.T) {
	rng := NewRNG(4711)

	points := rng.UniformPoints(256, -1, 1)

	assert.Len(t, points, 256)
	lo, hi := geom.Bounds(points)
	assert.GreaterOrEqual(t, lo.X, -1.0)
	assert.GreaterOrEqual(t, lo.Y, -1.0)
	assert.Less(t, hi.X, 1.0)
	assert.Less(t, hi.Y, 1.0)
}

func TestReset(t *testing.T) {
	rng := NewRNG(4711)
	a := rng.UniformPoints(16, 0, 1)
	rng.Reset()
	b := rng.UniformPoints(16, 0, 1)

	assert.Equal(t, a, b)
	assert.Equal(t, uint64(4711), rng.Seed())
}

func TestRandIsIndependent(t *testing.T) {
	a := NewRNG(1).Rand()
	b := NewRNG(1).Rand()
	assert.Equal(t, a.Uint64(), b.Uint64())
}

func TestGridBlobs(t *testing.T) {
	centers := []geom.Point{{X: 0, Y: 0}, {X: 100, Y: 100}}
	points := NewRNG(3).GridBlobs(100, centers, 2)

	for i, p := range points {
		c := centers[i%2]
		assert.LessOrEqual(t, p.X-c.X, 2.0)
		assert.GreaterOrEqual(t, p.X-c.X, -2.0)
		assert.Equal(t, p.X, float64(int(p.X)))
		assert.Equal(t, p.Y, float64(int(p.Y)))
	}
}

func TestExactAssign(t *testing.T) {
	got := ExactAssign(Square(), []geom.Point{{X: 0, Y: 0.5}, {X: 10, Y: 0.5}})
	assert.Equal(t, []int{0, 0, 1, 1}, got)

	// Equidistant: lowest index wins.
	got = ExactAssign([]geom.Point{{X: 5, Y: 0}}, []geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}})
	assert.Equal(t, []int{0}, got)
}

func TestIsFixedPoint(t *testing.T) {
	points := Square()
	assign := []int{0, 0, 1, 1}

	assert.True(t, IsFixedPoint(points, []geom.Point{{X: 0, Y: 0.5}, {X: 10, Y: 0.5}}, assign, 1e-12))
	assert.False(t, IsFixedPoint(points, []geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0.5}}, assign, 1e-12))
	assert.True(t, IsFixedPoint(points, []geom.Point{{X: 0, Y: 0.5}, {X: 10, Y: 0.5}, {X: 99, Y: 99}}, assign, 1e-12))
}
