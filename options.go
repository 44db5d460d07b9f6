package lloyd

import (
	"math/rand/v2"
	"runtime"
	"time"

	"github.com/hupe1980/lloyd/geom"
)

const (
	// DefaultMaxIters is the iteration cap used when WithMaxIters is not given.
	DefaultMaxIters = 100

	// DefaultTolerance is the shift threshold used when WithTolerance is not given.
	DefaultTolerance = 1e-4
)

// IterationStats is passed to the observer after every iteration.
type IterationStats struct {
	// Iteration is the 1-based iteration number.
	Iteration int
	// Shift is the largest centroid movement in this iteration.
	Shift float64
	// EmptyClusters counts clusters that received no points.
	EmptyClusters int
	// Duration is the wall time spent in this iteration.
	Duration time.Duration
}

type options struct {
	maxIters         int
	tolerance        float64
	initialCentroids []geom.Point
	rng              *rand.Rand
	workers          int
	history          bool
	observer         func(IterationStats)
	logger           *Logger
	metricsCollector MetricsCollector
}

func defaultOptions() options {
	return options{
		maxIters:         DefaultMaxIters,
		tolerance:        DefaultTolerance,
		workers:          runtime.GOMAXPROCS(0),
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
	}
}

// Option configures a clustering run.
type Option func(*options)

// WithMaxIters caps the number of iterations. Zero runs only the
// assignment step against the initial centroids.
func WithMaxIters(n int) Option {
	return func(o *options) {
		o.maxIters = n
	}
}

// WithTolerance sets the convergence threshold. A run stops after the
// first iteration whose largest centroid shift is strictly below tol, so
// a tolerance of zero always runs the full iteration cap.
func WithTolerance(tol float64) Option {
	return func(o *options) {
		o.tolerance = tol
	}
}

// WithInitialCentroids uses c as the starting centroid set instead of
// sampling from the input. len(c) must equal k. The slice is copied.
//
// Supplying initial centroids makes a run fully deterministic; both
// engines then produce the same result.
func WithInitialCentroids(c []geom.Point) Option {
	return func(o *options) {
		o.initialCentroids = c
	}
}

// WithRand sets the random source used to sample initial centroids.
// Ignored when WithInitialCentroids is given.
//
// Example:
//
//	res, err := lloyd.Sequential(points, 4,
//	    lloyd.WithRand(rand.New(rand.NewPCG(42, 0))),
//	)
func WithRand(r *rand.Rand) Option {
	return func(o *options) {
		o.rng = r
	}
}

// WithWorkers sets the number of worker goroutines used by Parallel.
// Zero selects runtime.GOMAXPROCS(0). Sequential ignores it.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n == 0 {
			n = runtime.GOMAXPROCS(0)
		}
		o.workers = n
	}
}

// WithHistory records a centroid snapshot for the initial state and for
// every completed iteration in Result.History.
func WithHistory() Option {
	return func(o *options) {
		o.history = true
	}
}

// WithObserver registers fn to be called synchronously after each
// iteration. It must not retain or modify engine state.
func WithObserver(fn func(IterationStats)) Option {
	return func(o *options) {
		o.observer = fn
	}
}

// WithLogger configures structured logging for runs.
// If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector configures a metrics collector for runs.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &lloyd.BasicMetricsCollector{}
//	res, err := lloyd.Parallel(points, k, lloyd.WithMetricsCollector(metrics))
//	fmt.Println(metrics.RunCount.Load())
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}
