package harness

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/hupe1980/lloyd"
	"github.com/hupe1980/lloyd/dataset"
)

// Row is the measurement for one worker count. Times are in seconds.
type Row struct {
	Workers    int     `json:"workers"`
	Points     int     `json:"points"`
	MeanSeq    float64 `json:"mean_seq"`
	StdSeq     float64 `json:"std_seq"`
	MeanPar    float64 `json:"mean_par"`
	StdPar     float64 `json:"std_par"`
	Speedup    float64 `json:"speedup"`
	Efficiency float64 `json:"efficiency"`
	Predicted  float64 `json:"predicted"`
}

// StrongScaling runs the fixed-size experiment for 1..MaxWorkers workers.
func StrongScaling(ctx context.Context, cfg Config) ([]Row, error) {
	return Run(ctx, Strong, cfg)
}

// WeakScaling runs the scaled-size experiment for 1..MaxWorkers workers.
func WeakScaling(ctx context.Context, cfg Config) ([]Row, error) {
	return Run(ctx, Weak, cfg)
}

// Run executes the experiment for the given mode. Every trial draws a fresh
// point set uniformly from [0,100)² and times both engines from the same
// initial centroids. ctx is checked between trials only; a running trial is
// never interrupted.
func Run(ctx context.Context, mode Mode, cfg Config) ([]Row, error) {
	if _, err := ParseMode(string(mode)); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log := cfg.logger().With("mode", string(mode))
	r := cfg.rand()

	rows := make([]Row, 0, cfg.MaxWorkers)
	for w := 1; w <= cfg.MaxWorkers; w++ {
		n := cfg.Points
		if mode == Weak {
			n = cfg.BasePoints * w
		}

		seq := make([]float64, 0, cfg.Runs)
		par := make([]float64, 0, cfg.Runs)
		for range cfg.Runs {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			s, p, err := trial(r, cfg, n, w)
			if err != nil {
				return nil, err
			}
			seq = append(seq, s.Seconds())
			par = append(par, p.Seconds())
		}

		row := newRow(w, n, seq, par)
		row.Predicted = mode.Predict(cfg.ParallelFraction, w)
		rows = append(rows, row)

		log.InfoContext(ctx, "scaling step completed",
			"workers", w,
			"points", n,
			"mean_seq", row.MeanSeq,
			"mean_par", row.MeanPar,
			"speedup", row.Speedup,
			"efficiency", row.Efficiency,
		)
	}
	return rows, nil
}

func trial(r *rand.Rand, cfg Config, n, workers int) (seq, par time.Duration, err error) {
	points, err := dataset.Uniform(r, n, 0, 100)
	if err != nil {
		return 0, 0, err
	}
	initial, err := lloyd.SampleCentroids(points, cfg.K, r)
	if err != nil {
		return 0, 0, err
	}

	opts := []lloyd.Option{
		lloyd.WithMaxIters(cfg.MaxIters),
		lloyd.WithTolerance(cfg.Tolerance),
		lloyd.WithInitialCentroids(initial),
		lloyd.WithMetricsCollector(cfg.Metrics),
	}

	start := time.Now()
	if _, err := lloyd.Sequential(points, cfg.K, opts...); err != nil {
		return 0, 0, err
	}
	seq = time.Since(start)

	start = time.Now()
	if _, err := lloyd.Parallel(points, cfg.K, append(opts, lloyd.WithWorkers(workers))...); err != nil {
		return 0, 0, err
	}
	par = time.Since(start)

	return seq, par, nil
}

func newRow(workers, points int, seq, par []float64) Row {
	row := Row{Workers: workers, Points: points}
	row.MeanSeq, row.StdSeq = MeanStd(seq)
	row.MeanPar, row.StdPar = MeanStd(par)
	if row.MeanPar > 0 {
		row.Speedup = row.MeanSeq / row.MeanPar
	}
	row.Efficiency = row.Speedup / float64(workers)
	return row
}
