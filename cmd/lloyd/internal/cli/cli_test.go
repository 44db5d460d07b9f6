package cli

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/lloyd"
	"github.com/hupe1980/lloyd/blobstore"
	"github.com/hupe1980/lloyd/geom"
	"github.com/hupe1980/lloyd/internal/config"
)

func parse(t *testing.T, args ...string) *ClusterFlags {
	t.Helper()
	var f ClusterFlags
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	f.Register(fs)
	require.NoError(t, fs.Parse(args))
	return &f
}

func TestClusterFlags_Defaults(t *testing.T) {
	f := parse(t)
	assert.Equal(t, 10_000, f.N)
	assert.Equal(t, 3, f.K)
	assert.Equal(t, lloyd.DefaultMaxIters, f.MaxIters)
	assert.Equal(t, lloyd.DefaultTolerance, f.Tol)
	assert.Equal(t, "par", f.EngineName)
}

func TestClusterFlags_Points(t *testing.T) {
	f := parse(t, "-n", "50", "-seed", "3")
	points, err := f.Points(f.Rand())
	require.NoError(t, err)
	assert.Len(t, points, 50)

	f = parse(t, "-n", "40", "-blobs", "2", "-seed", "3")
	points, err = f.Points(f.Rand())
	require.NoError(t, err)
	assert.Len(t, points, 40)

	path := filepath.Join(t.TempDir(), "points.csv")
	require.NoError(t, os.WriteFile(path, []byte("x,y\n1,2\n3,4\n"), 0o600))
	f = parse(t, "-input", path)
	points, err = f.Points(f.Rand())
	require.NoError(t, err)
	assert.Equal(t, []geom.Point{{X: 1, Y: 2}, {X: 3, Y: 4}}, points)
}

func TestClusterFlags_Engine(t *testing.T) {
	name, fn, err := parse(t, "-engine", "seq").Engine()
	require.NoError(t, err)
	assert.Equal(t, "sequential", name)
	assert.NotNil(t, fn)

	name, _, err = parse(t).Engine()
	require.NoError(t, err)
	assert.Equal(t, "parallel", name)

	_, _, err = parse(t, "-engine", "gpu").Engine()
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&buf, true, true)
	log.Debug("hello", "k", 3)
	assert.Contains(t, buf.String(), `"msg":"hello"`)

	buf.Reset()
	log = NewLogger(&buf, false, false)
	log.Debug("hidden")
	assert.Empty(t, buf.String())
}

func TestSummarize(t *testing.T) {
	points := []geom.Point{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 10, Y: 0}, {X: 10, Y: 1}}
	res, err := lloyd.Sequential(points, 2, lloyd.WithInitialCentroids([]geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}))
	require.NoError(t, err)

	var buf bytes.Buffer
	Summarize(&buf, "sequential", points, res)
	out := buf.String()
	assert.Contains(t, out, "converged after 2 iterations")
	assert.Contains(t, out, "cluster 0: (0.0000, 0.5000) 2 points")
	assert.Contains(t, out, "cluster 1: (10.0000, 0.5000) 2 points")
	assert.Contains(t, out, "bounds: (0.0000, 0.0000) to (10.0000, 1.0000), inertia 1.00")
	assert.Equal(t, 4, strings.Count(out, "\n"))
}

func TestOpenStore(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := OpenStore(ctx, dir, config.StorageConfig{})
	require.NoError(t, err)
	assert.Equal(t, dir, s.(*blobstore.LocalStore).Root())

	s, err = OpenStore(ctx, "file://"+dir, config.StorageConfig{})
	require.NoError(t, err)
	assert.Equal(t, dir, s.(*blobstore.LocalStore).Root())

	s, err = OpenStore(ctx, "mem://", config.StorageConfig{})
	require.NoError(t, err)
	assert.IsType(t, &blobstore.MemoryStore{}, s)

	for _, bad := range []string{"ftp://host/x", "minio:///prefix", "s3:///prefix", "file://"} {
		_, err := OpenStore(ctx, bad, config.StorageConfig{})
		assert.Error(t, err, bad)
	}
}
