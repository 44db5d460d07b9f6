// Package resource bounds the IO done when persisting traces and reports.
//
// Two limits are managed:
//
//   - Uploads: a weighted semaphore caps the number of blobs written at once
//   - IO: a token bucket caps bytes per second across all uploads
//
// Usage:
//
//	rc := resource.NewController(resource.Config{
//	    MaxConcurrentUploads: 4,
//	    IOLimitBytesPerSec:   50 * 1024 * 1024,
//	})
//
//	if err := rc.AcquireUpload(ctx); err != nil {
//	    return err
//	}
//	defer rc.ReleaseUpload()
//
//	if err := rc.AcquireIO(ctx, len(payload)); err != nil {
//	    return err
//	}
//
// All methods handle a nil Controller gracefully; they become no-ops.
package resource
