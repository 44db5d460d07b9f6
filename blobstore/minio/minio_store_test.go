package minio

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/lloyd/blobstore"
)

func TestStripPrefix(t *testing.T) {
	assert.Equal(t, "kmeans_log.json", stripPrefix("traces/kmeans_log.json", "traces/"))
	assert.Equal(t, "kmeans_log.json", stripPrefix("traces/kmeans_log.json", "traces"))
	assert.Equal(t, "a/b.csv", stripPrefix("a/b.csv", ""))
}

func TestMapError(t *testing.T) {
	notFound := minio.ErrorResponse{Code: "NoSuchKey", StatusCode: http.StatusNotFound}
	assert.True(t, errors.Is(mapError(notFound), blobstore.ErrNotFound))

	denied := minio.ErrorResponse{Code: "AccessDenied", StatusCode: http.StatusForbidden}
	assert.False(t, errors.Is(mapError(denied), blobstore.ErrNotFound))
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "application/json", contentType("runs/kmeans_log.json"))
	assert.Equal(t, "text/csv", contentType("strong.csv"))
	assert.Equal(t, "application/octet-stream", contentType("kmeans_log.json.zst"))
}

// TestMinioStore_Integration requires a running MinIO instance.
// Skip if not available.
func TestMinioStore_Integration(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := Dial(ctx, Config{
		Endpoint:  "localhost:9000",
		AccessKey: "minioadmin",
		SecretKey: "minioadmin",
	}, "test-lloyd", fmt.Sprintf("run-%d/", time.Now().UnixNano()))
	if err != nil {
		t.Skipf("MinIO not available: %v", err)
	}

	data := []byte("hello minio world")
	require.NoError(t, store.Put(ctx, "test.json", data))

	got, err := store.Get(ctx, "test.json")
	require.NoError(t, err)
	assert.Equal(t, data, got)

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"test.json"}, names)

	_, err = store.Get(ctx, "missing.json")
	assert.True(t, errors.Is(err, blobstore.ErrNotFound))

	require.NoError(t, store.Delete(ctx, "test.json"))
	names, err = store.List(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, names)
}
