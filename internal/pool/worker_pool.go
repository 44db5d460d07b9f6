package pool

import (
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
)

// ErrClosed is returned when submitting to a closed pool.
var ErrClosed = errors.New("pool: closed")

// Range is a half-open index interval [Lo, Hi).
type Range struct {
	Lo, Hi int
}

// Len returns the number of indices in the range.
func (r Range) Len() int {
	return r.Hi - r.Lo
}

// Partition splits [0, n) into at most parts contiguous ranges whose sizes
// differ by at most one. Empty ranges are never returned.
func Partition(n, parts int) []Range {
	if n <= 0 {
		return nil
	}
	if parts <= 0 {
		parts = 1
	}
	if parts > n {
		parts = n
	}

	ranges := make([]Range, parts)
	base, rem := n/parts, n%parts
	lo := 0
	for i := range ranges {
		size := base
		if i < rem {
			size++
		}
		ranges[i] = Range{Lo: lo, Hi: lo + size}
		lo += size
	}
	return ranges
}

// Pool manages a fixed set of goroutines that execute submitted closures.
// Workers live until Close, so a single pool serves every fork-join of a
// clustering run without spawning goroutines per iteration.
type Pool struct {
	numWorkers int
	workCh     chan func()
	stopCh     chan struct{}
	wg         sync.WaitGroup
	closed     atomic.Bool
	submitMu   sync.RWMutex
}

// New creates a pool with numWorkers goroutines.
// If numWorkers <= 0, runtime.GOMAXPROCS(0) is used.
func New(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		numWorkers: numWorkers,
		workCh:     make(chan func(), numWorkers*2),
		stopCh:     make(chan struct{}),
	}

	p.wg.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go p.worker()
	}

	return p
}

// Size returns the number of worker goroutines.
func (p *Pool) Size() int {
	return p.numWorkers
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.stopCh:
			// Drain remaining work before exiting
			for {
				select {
				case task, ok := <-p.workCh:
					if !ok {
						return
					}
					task()
				default:
					return
				}
			}
		case task, ok := <-p.workCh:
			if !ok {
				return
			}
			task()
		}
	}
}

// Submit enqueues task and returns once it has been accepted.
// It blocks while the queue is full.
func (p *Pool) Submit(task func()) error {
	p.submitMu.RLock()
	defer p.submitMu.RUnlock()

	if p.closed.Load() {
		return ErrClosed
	}

	select {
	case p.workCh <- task:
		return nil
	case <-p.stopCh:
		return ErrClosed
	}
}

// ForkJoin runs fn once per range on the pool and waits for all of them.
// fn receives the range's position in ranges along with the range itself.
func (p *Pool) ForkJoin(ranges []Range, fn func(i int, r Range)) error {
	var wg sync.WaitGroup
	wg.Add(len(ranges))
	for i, r := range ranges {
		if err := p.Submit(func() {
			defer wg.Done()
			fn(i, r)
		}); err != nil {
			// account for the tasks that were never enqueued
			for range ranges[i:] {
				wg.Done()
			}
			wg.Wait()
			return err
		}
	}
	wg.Wait()
	return nil
}

// Close stops the workers after draining queued tasks.
// It is safe to call Close more than once.
func (p *Pool) Close() {
	if !p.closed.CompareAndSwap(false, true) {
		return
	}

	p.submitMu.Lock()
	close(p.stopCh)
	close(p.workCh)
	p.submitMu.Unlock()

	p.wg.Wait()
}
