package trace

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/lloyd"
	"github.com/hupe1980/lloyd/geom"
)

var square = []geom.Point{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 10, Y: 0}, {X: 10, Y: 1}}

func run(t *testing.T, opts ...lloyd.Option) *lloyd.Result {
	t.Helper()
	opts = append([]lloyd.Option{
		lloyd.WithInitialCentroids([]geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}),
		lloyd.WithHistory(),
	}, opts...)
	res, err := lloyd.Sequential(square, 2, opts...)
	require.NoError(t, err)
	return res
}

func TestFromResult(t *testing.T) {
	res := run(t)

	tr, err := FromResult(square, res, Meta{Engine: "sequential", MaxIters: 100, Tolerance: 1e-4})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, tr.ID)
	assert.Equal(t, 2, tr.K)
	assert.Equal(t, "sequential", tr.Engine)
	assert.True(t, tr.Converged)
	assert.Equal(t, [][2]float64{{0, 0}, {0, 1}, {10, 0}, {10, 1}}, tr.Points)
	assert.Equal(t, [][2]float64{{0, 0}, {10, 0}}, tr.Initial)
	require.Len(t, tr.Iterations, res.Iterations)

	first := tr.Iterations[0]
	assert.Equal(t, []int{0, 0, 1, 1}, first.Labels)
	assert.Equal(t, [][2]float64{{0, 0.5}, {10, 0.5}}, first.Centroids)
	assert.InDelta(t, 0.5, first.Shift, 1e-12)

	assert.Equal(t, square, tr.PointSet())
	assert.Equal(t, res.Centroids, tr.Final())
}

func TestFromResult_LabelsNotAliased(t *testing.T) {
	res := run(t)
	tr, err := FromResult(square, res, Meta{})
	require.NoError(t, err)

	tr.Iterations[0].Labels[0] = 1
	assert.Equal(t, 0, res.History[1].Assignments[0])
}

func TestFromResult_NoHistory(t *testing.T) {
	res, err := lloyd.Sequential(square, 2)
	require.NoError(t, err)

	_, err = FromResult(square, res, Meta{})
	assert.ErrorIs(t, err, ErrNoHistory)

	_, err = FromResult(square, nil, Meta{})
	assert.ErrorIs(t, err, ErrNoHistory)
}

func TestFromResult_ZeroIterations(t *testing.T) {
	res := run(t, lloyd.WithMaxIters(0))
	tr, err := FromResult(square, res, Meta{})
	require.NoError(t, err)

	assert.Empty(t, tr.Iterations)
	assert.Equal(t, []geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}, tr.Final())
}
