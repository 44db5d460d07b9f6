package cli

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/hupe1980/lloyd/blobstore"
	"github.com/hupe1980/lloyd/blobstore/minio"
	"github.com/hupe1980/lloyd/blobstore/s3"
	"github.com/hupe1980/lloyd/internal/config"
)

// OpenStore resolves a storage URI:
//
//	results, ./out, file:///tmp/out   local directory
//	minio://bucket/prefix             MinIO with the credentials in cfg
//	s3://bucket/prefix                Amazon S3 with the default AWS chain
//	mem://                            in-process store (testing)
func OpenStore(ctx context.Context, uri string, cfg config.StorageConfig) (blobstore.Store, error) {
	if !strings.Contains(uri, "://") {
		return blobstore.NewLocalStore(uri), nil
	}

	u, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("store uri %q: %w", uri, err)
	}
	prefix := strings.TrimPrefix(u.Path, "/")

	switch u.Scheme {
	case "file":
		dir := u.Host + u.Path
		if dir == "" {
			return nil, fmt.Errorf("store uri %q: missing directory", uri)
		}
		return blobstore.NewLocalStore(dir), nil
	case "mem":
		return blobstore.NewMemoryStore(), nil
	case "minio":
		if u.Host == "" {
			return nil, fmt.Errorf("store uri %q: missing bucket", uri)
		}
		return minio.Dial(ctx, minio.Config{
			Endpoint:  cfg.MinIO.Endpoint,
			AccessKey: cfg.MinIO.AccessKey,
			SecretKey: cfg.MinIO.SecretKey,
			UseSSL:    cfg.MinIO.UseSSL,
			Region:    cfg.MinIO.Region,
		}, u.Host, prefix)
	case "s3":
		if u.Host == "" {
			return nil, fmt.Errorf("store uri %q: missing bucket", uri)
		}
		return s3.New(ctx, u.Host, prefix)
	default:
		return nil, fmt.Errorf("store uri %q: unsupported scheme %q", uri, u.Scheme)
	}
}
