package trace

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/lloyd/blobstore"
	"github.com/hupe1980/lloyd/codec"
	"github.com/hupe1980/lloyd/internal/resource"
)

// ErrChecksumMismatch is returned by Verify when a stored trace differs from
// what was written.
var ErrChecksumMismatch = errors.New("trace: checksum mismatch")

// BaseName is the name of the first trace in a directory. Later traces are
// numbered from 2: kmeans_log2.json, kmeans_log3.json and so on.
const BaseName = "kmeans_log"

// Info describes a stored trace.
type Info struct {
	Name        string      `json:"name"`
	Size        int64       `json:"size"`
	Checksum    uint64      `json:"checksum"`
	Compression Compression `json:"compression"`
}

// Writer encodes traces and writes them to a Store.
// The zero value of every field except Store is usable.
type Writer struct {
	Store blobstore.Store
	// Codec defaults to codec.Default.
	Codec codec.Codec
	// Compression defaults to None.
	Compression Compression
	// Controller optionally bounds upload concurrency and throughput.
	Controller *resource.Controller
}

func (w *Writer) codec() codec.Codec { return codec.OrDefault(w.Codec) }

// Save encodes t and stores it under name. The compression suffix is
// appended to name when missing; Info.Name holds the final blob name.
func (w *Writer) Save(ctx context.Context, name string, t *Trace) (Info, error) {
	comp := w.Compression
	if comp == "" {
		comp = None
	}
	if ext := comp.Ext(); !strings.HasSuffix(name, ext) {
		name += ext
	}

	data, err := w.codec().Marshal(t)
	if err != nil {
		return Info{}, fmt.Errorf("trace: encode %s: %w", name, err)
	}
	data, err = comp.compress(data)
	if err != nil {
		return Info{}, fmt.Errorf("trace: compress %s: %w", name, err)
	}

	if err := w.Controller.AcquireUpload(ctx); err != nil {
		return Info{}, err
	}
	defer w.Controller.ReleaseUpload()

	if err := w.Controller.AcquireIO(ctx, len(data)); err != nil {
		return Info{}, err
	}
	if err := w.Store.Put(ctx, name, data); err != nil {
		return Info{}, fmt.Errorf("trace: put %s: %w", name, err)
	}

	return Info{
		Name:        name,
		Size:        int64(len(data)),
		Checksum:    xxhash.Sum64(data),
		Compression: comp,
	}, nil
}

// SaveAll stores several traces concurrently. The returned infos are sorted
// by name. On error, traces that were already stored are left in place.
func (w *Writer) SaveAll(ctx context.Context, traces map[string]*Trace) ([]Info, error) {
	names := make([]string, 0, len(traces))
	for name := range traces {
		names = append(names, name)
	}
	slices.Sort(names)

	infos := make([]Info, len(names))
	g, gctx := errgroup.WithContext(ctx)
	if limit := w.Controller.Config().MaxConcurrentUploads; limit > 0 {
		g.SetLimit(int(limit))
	}
	for i, name := range names {
		g.Go(func() error {
			info, err := w.Save(gctx, name, traces[name])
			if err != nil {
				return err
			}
			infos[i] = info
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return infos, nil
}

// Load reads a trace, inferring the compression from the blob name.
// A nil codec selects codec.Default.
func Load(ctx context.Context, store blobstore.Store, name string, c codec.Codec) (*Trace, error) {
	c = codec.OrDefault(c)

	data, err := store.Get(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("trace: get %s: %w", name, err)
	}
	data, err = compressionOf(name).decompress(data)
	if err != nil {
		return nil, fmt.Errorf("trace: %s: %w", name, err)
	}

	var t Trace
	if err := c.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("trace: decode %s: %w", name, err)
	}
	return &t, nil
}

// Verify re-reads a stored trace and compares its size and checksum with
// the Info returned by Save.
func Verify(ctx context.Context, store blobstore.Store, info Info) error {
	data, err := store.Get(ctx, info.Name)
	if err != nil {
		return fmt.Errorf("trace: get %s: %w", info.Name, err)
	}
	if int64(len(data)) != info.Size {
		return fmt.Errorf("%w: %s has %d bytes, want %d", ErrChecksumMismatch, info.Name, len(data), info.Size)
	}
	if sum := xxhash.Sum64(data); sum != info.Checksum {
		return fmt.Errorf("%w: %s has %016x, want %016x", ErrChecksumMismatch, info.Name, sum, info.Checksum)
	}
	return nil
}

// NextName returns the first unused trace name under prefix:
// kmeans_log.json, then kmeans_log2.json, kmeans_log3.json and so on.
// A name counts as used whatever compression suffix it was stored with.
func NextName(ctx context.Context, store blobstore.Store, prefix string) (string, error) {
	names, err := store.List(ctx, prefix+BaseName)
	if err != nil {
		return "", fmt.Errorf("trace: list %q: %w", prefix, err)
	}

	used := make(map[string]struct{}, len(names))
	for _, n := range names {
		n = strings.TrimSuffix(n, compressionOf(n).Ext())
		used[n] = struct{}{}
	}

	for i := 1; ; i++ {
		name := prefix + BaseName + ".json"
		if i > 1 {
			name = prefix + BaseName + strconv.Itoa(i) + ".json"
		}
		if _, ok := used[name]; !ok {
			return name, nil
		}
	}
}
