package resource

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestController_Defaults(t *testing.T) {
	c := NewController(Config{})
	assert.Equal(t, int64(4), c.Config().MaxConcurrentUploads)
	assert.Zero(t, c.Config().IOLimitBytesPerSec)
}

func TestController_Uploads(t *testing.T) {
	c := NewController(Config{MaxConcurrentUploads: 2})

	require.NoError(t, c.AcquireUpload(context.Background()))
	require.NoError(t, c.AcquireUpload(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, c.AcquireUpload(ctx), context.DeadlineExceeded)

	c.ReleaseUpload()
	require.NoError(t, c.AcquireUpload(context.Background()))
	c.ReleaseUpload()
	c.ReleaseUpload()
}

func TestController_UploadConcurrencyBound(t *testing.T) {
	c := NewController(Config{MaxConcurrentUploads: 3})

	var active, peak atomic.Int64
	var wg sync.WaitGroup
	for range 12 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if !assert.NoError(t, c.AcquireUpload(context.Background())) {
				return
			}
			defer c.ReleaseUpload()

			n := active.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(2 * time.Millisecond)
			active.Add(-1)
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, peak.Load(), int64(3))
}

func TestController_IO(t *testing.T) {
	c := NewController(Config{IOLimitBytesPerSec: 1000})

	require.NoError(t, c.AcquireIO(context.Background(), 1000))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.Error(t, c.AcquireIO(ctx, 500))
}

func TestController_IOLargerThanBurst(t *testing.T) {
	c := NewController(Config{IOLimitBytesPerSec: 1 << 20})

	start := time.Now()
	require.NoError(t, c.AcquireIO(context.Background(), (1<<20)+1024))
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestController_Nil(t *testing.T) {
	var c *Controller

	assert.NoError(t, c.AcquireUpload(context.Background()))
	c.ReleaseUpload()
	assert.NoError(t, c.AcquireIO(context.Background(), 1<<30))
	assert.Equal(t, Config{}, c.Config())
}

func TestController_Unlimited(t *testing.T) {
	c := NewController(Config{})
	assert.NoError(t, c.AcquireIO(context.Background(), 1<<30))
}
