// Package metrics provides a Prometheus implementation of
// lloyd.MetricsCollector.
package metrics

import (
	"math"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/hupe1980/lloyd"
)

const namespace = "lloyd"

// Collector records engine runs as Prometheus metrics.
type Collector struct {
	runs              *prometheus.CounterVec
	runDuration       *prometheus.HistogramVec
	iterations        *prometheus.HistogramVec
	iterationDuration *prometheus.HistogramVec
	lastShift         *prometheus.GaugeVec
}

var _ lloyd.MetricsCollector = (*Collector)(nil)

// New registers the collector's metrics with reg. A nil reg uses
// prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Collector{
		runs: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "runs_total",
				Help:      "Total clustering runs",
			},
			[]string{"engine", "status"}, // status: converged/capped/error
		),
		runDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "run_duration_seconds",
				Help:      "Clustering run latency in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 16),
			},
			[]string{"engine"},
		),
		iterations: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "iterations",
				Help:      "Iterations per clustering run",
				Buckets:   []float64{1, 2, 5, 10, 20, 50, 100, 200, 500},
			},
			[]string{"engine"},
		),
		iterationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "iteration_duration_seconds",
				Help:      "Assignment plus update step latency in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.00005, 2, 16),
			},
			[]string{"engine"},
		),
		lastShift: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "last_shift",
				Help:      "Largest centroid movement of the most recent iteration",
			},
			[]string{"engine"},
		),
	}
}

// RecordRun implements lloyd.MetricsCollector.
func (c *Collector) RecordRun(engine string, _ int, iterations int, converged bool, duration time.Duration, err error) {
	status := "capped"
	switch {
	case err != nil:
		status = "error"
	case converged:
		status = "converged"
	}
	c.runs.WithLabelValues(engine, status).Inc()
	if err != nil {
		return
	}
	c.runDuration.WithLabelValues(engine).Observe(duration.Seconds())
	c.iterations.WithLabelValues(engine).Observe(float64(iterations))
}

// RecordIteration implements lloyd.MetricsCollector.
func (c *Collector) RecordIteration(engine string, shift float64, duration time.Duration) {
	c.iterationDuration.WithLabelValues(engine).Observe(duration.Seconds())
	if !math.IsNaN(shift) {
		c.lastShift.WithLabelValues(engine).Set(shift)
	}
}
