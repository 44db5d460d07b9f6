package lloyd

import (
	"math"
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems; package
// metrics ships a Prometheus implementation.
type MetricsCollector interface {
	// RecordRun is called once per run, after it finished or was rejected.
	// engine is "sequential" or "parallel".
	RecordRun(engine string, workers, iterations int, converged bool, duration time.Duration, err error)

	// RecordIteration is called after every completed iteration.
	RecordIteration(engine string, shift float64, duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordRun(string, int, int, bool, time.Duration, error) {}
func (NoopMetricsCollector) RecordIteration(string, float64, time.Duration)         {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and tests without external dependencies.
type BasicMetricsCollector struct {
	RunCount            atomic.Int64
	RunErrors           atomic.Int64
	ConvergedRuns       atomic.Int64
	RunTotalNanos       atomic.Int64
	IterationCount      atomic.Int64
	IterationTotalNanos atomic.Int64
	lastShiftBits       atomic.Uint64
}

// RecordRun implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRun(_ string, _ int, _ int, converged bool, duration time.Duration, err error) {
	b.RunCount.Add(1)
	b.RunTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.RunErrors.Add(1)
		return
	}
	if converged {
		b.ConvergedRuns.Add(1)
	}
}

// RecordIteration implements MetricsCollector.
func (b *BasicMetricsCollector) RecordIteration(_ string, shift float64, duration time.Duration) {
	b.IterationCount.Add(1)
	b.IterationTotalNanos.Add(duration.Nanoseconds())
	b.lastShiftBits.Store(math.Float64bits(shift))
}

// LastShift returns the shift reported by the most recent iteration.
func (b *BasicMetricsCollector) LastShift() float64 {
	return math.Float64frombits(b.lastShiftBits.Load())
}

// AverageRunTime returns the mean run duration.
func (b *BasicMetricsCollector) AverageRunTime() time.Duration {
	n := b.RunCount.Load()
	if n == 0 {
		return 0
	}
	return time.Duration(b.RunTotalNanos.Load() / n)
}
