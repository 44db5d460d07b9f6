package trace

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/lloyd/blobstore"
	"github.com/hupe1980/lloyd/codec"
	"github.com/hupe1980/lloyd/internal/resource"
)

func sample(t *testing.T) *Trace {
	t.Helper()
	tr, err := FromResult(square, run(t), Meta{Engine: "parallel", Workers: 2})
	require.NoError(t, err)
	return tr
}

func TestWriter_SaveLoad(t *testing.T) {
	ctx := context.Background()
	tr := sample(t)

	for _, comp := range []Compression{"", None, LZ4, Zstd} {
		for _, c := range []codec.Codec{nil, codec.JSON{}, codec.GoJSON{}} {
			name := fmt.Sprintf("%s/%v", comp, c)
			t.Run(name, func(t *testing.T) {
				store := blobstore.NewMemoryStore()
				w := &Writer{Store: store, Codec: c, Compression: comp}

				info, err := w.Save(ctx, "kmeans_log.json", tr)
				require.NoError(t, err)
				want := comp
				if want == "" {
					want = None
				}
				assert.Equal(t, "kmeans_log.json"+want.Ext(), info.Name)
				assert.Equal(t, want, info.Compression)
				assert.Positive(t, info.Size)

				got, err := Load(ctx, store, info.Name, c)
				require.NoError(t, err)
				assert.Equal(t, tr.ID, got.ID)
				assert.True(t, tr.CreatedAt.Equal(got.CreatedAt))
				assert.Equal(t, tr.Points, got.Points)
				assert.Equal(t, tr.Initial, got.Initial)
				assert.Equal(t, tr.Iterations, got.Iterations)
				assert.Equal(t, tr.Workers, got.Workers)

				require.NoError(t, Verify(ctx, store, info))
			})
		}
	}
}

func TestWriter_SaveKeepsExistingSuffix(t *testing.T) {
	store := blobstore.NewMemoryStore()
	w := &Writer{Store: store, Compression: Zstd}

	info, err := w.Save(context.Background(), "kmeans_log.json.zst", sample(t))
	require.NoError(t, err)
	assert.Equal(t, "kmeans_log.json.zst", info.Name)
}

func TestWriter_JSONLayout(t *testing.T) {
	store := blobstore.NewMemoryStore()
	w := &Writer{Store: store, Codec: codec.JSON{}}
	info, err := w.Save(context.Background(), "t.json", sample(t))
	require.NoError(t, err)

	raw, err := store.Get(context.Background(), info.Name)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, codec.JSON{}.Unmarshal(raw, &doc))
	assert.Contains(t, doc, "points")
	assert.Contains(t, doc, "iterations")
	iters := doc["iterations"].([]any)
	first := iters[0].(map[string]any)
	assert.Contains(t, first, "centroids")
	assert.Contains(t, first, "labels")
}

func TestVerify_Mismatch(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	w := &Writer{Store: store, Compression: LZ4}

	info, err := w.Save(ctx, "kmeans_log.json", sample(t))
	require.NoError(t, err)

	data, err := store.Get(ctx, info.Name)
	require.NoError(t, err)
	data[len(data)-1] ^= 0xff
	require.NoError(t, store.Put(ctx, info.Name, data))
	assert.ErrorIs(t, Verify(ctx, store, info), ErrChecksumMismatch)

	require.NoError(t, store.Put(ctx, info.Name, data[:len(data)-1]))
	assert.ErrorIs(t, Verify(ctx, store, info), ErrChecksumMismatch)

	err = Verify(ctx, store, Info{Name: "missing.json"})
	assert.True(t, errors.Is(err, blobstore.ErrNotFound))
}

func TestLoad_Errors(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	_, err := Load(ctx, store, "missing.json", nil)
	assert.True(t, errors.Is(err, blobstore.ErrNotFound))

	require.NoError(t, store.Put(ctx, "bad.json", []byte("{")))
	_, err = Load(ctx, store, "bad.json", nil)
	assert.Error(t, err)

	require.NoError(t, store.Put(ctx, "bad.json.zst", []byte("not zstd")))
	_, err = Load(ctx, store, "bad.json.zst", nil)
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestWriter_SaveAll(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	w := &Writer{
		Store:       store,
		Compression: Zstd,
		Controller:  resource.NewController(resource.Config{MaxConcurrentUploads: 2}),
	}

	traces := make(map[string]*Trace)
	for i := range 6 {
		traces[fmt.Sprintf("run-%d/kmeans_log.json", i)] = sample(t)
	}

	infos, err := w.SaveAll(ctx, traces)
	require.NoError(t, err)
	require.Len(t, infos, 6)
	for i, info := range infos {
		assert.Equal(t, fmt.Sprintf("run-%d/kmeans_log.json.zst", i), info.Name)
		require.NoError(t, Verify(ctx, store, info))
	}
	assert.Equal(t, 6, store.Len())
}

func TestWriter_SaveCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w := &Writer{Store: blobstore.NewMemoryStore()}
	_, err := w.Save(ctx, "kmeans_log.json", sample(t))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNextName(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	name, err := NextName(ctx, store, "")
	require.NoError(t, err)
	assert.Equal(t, "kmeans_log.json", name)

	require.NoError(t, store.Put(ctx, "kmeans_log.json", nil))
	name, err = NextName(ctx, store, "")
	require.NoError(t, err)
	assert.Equal(t, "kmeans_log2.json", name)

	require.NoError(t, store.Put(ctx, "kmeans_log2.json.zst", nil))
	name, err = NextName(ctx, store, "")
	require.NoError(t, err)
	assert.Equal(t, "kmeans_log3.json", name)

	name, err = NextName(ctx, store, "runs/")
	require.NoError(t, err)
	assert.Equal(t, "runs/kmeans_log.json", name)
}

func TestNextName_FillsGaps(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	require.NoError(t, store.Put(ctx, "kmeans_log.json", nil))
	require.NoError(t, store.Put(ctx, "kmeans_log3.json", nil))

	name, err := NextName(ctx, store, "")
	require.NoError(t, err)
	assert.Equal(t, "kmeans_log2.json", name)
}
