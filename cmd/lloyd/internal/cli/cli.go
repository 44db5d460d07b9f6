// Package cli holds flag sets and helpers shared by the lloyd subcommands.
package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/hupe1980/lloyd"
	"github.com/hupe1980/lloyd/dataset"
	"github.com/hupe1980/lloyd/geom"
)

// ClusterFlags are the data and engine flags common to run and trace.
type ClusterFlags struct {
	N          int
	Blobs      int
	Stddev     float64
	Input      string
	K          int
	MaxIters   int
	Tol        float64
	Workers    int
	Seed       uint64
	EngineName string
	Verbose    bool
	JSONLogs   bool
}

// Register adds the flags to fs.
func (f *ClusterFlags) Register(fs *flag.FlagSet) {
	fs.IntVar(&f.N, "n", 10_000, "Number of synthetic points")
	fs.IntVar(&f.Blobs, "blobs", 0, "Generate Gaussian blobs around this many centers instead of a uniform square")
	fs.Float64Var(&f.Stddev, "stddev", 2, "Standard deviation of the blobs")
	fs.StringVar(&f.Input, "input", "", "CSV file with x,y rows (overrides -n)")
	fs.IntVar(&f.K, "k", 3, "Number of clusters")
	fs.IntVar(&f.MaxIters, "max-iters", lloyd.DefaultMaxIters, "Maximum number of iterations")
	fs.Float64Var(&f.Tol, "tol", lloyd.DefaultTolerance, "Convergence tolerance on the largest centroid shift")
	fs.IntVar(&f.Workers, "workers", 0, "Parallel workers (0 = GOMAXPROCS)")
	fs.Uint64Var(&f.Seed, "seed", 0, "Random seed (0 = random)")
	fs.StringVar(&f.EngineName, "engine", "par", "Engine: seq or par")
	fs.BoolVar(&f.Verbose, "v", false, "Log every iteration")
	fs.BoolVar(&f.JSONLogs, "json-logs", false, "Emit logs as JSON")
}

// Rand returns the generator selected by -seed.
func (f *ClusterFlags) Rand() *rand.Rand {
	seed := f.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed))
}

// Points loads -input or generates the synthetic data set.
func (f *ClusterFlags) Points(r *rand.Rand) ([]geom.Point, error) {
	if f.Input != "" {
		file, err := os.Open(f.Input)
		if err != nil {
			return nil, err
		}
		defer file.Close()
		return dataset.ReadCSV(file)
	}

	if f.Blobs > 0 {
		centers, err := dataset.RandomCenters(r, f.Blobs, 0, 100)
		if err != nil {
			return nil, err
		}
		return dataset.Blobs(r, f.N, centers, f.Stddev)
	}
	return dataset.Uniform(r, f.N, 0, 100)
}

// Engine resolves -engine.
func (f *ClusterFlags) Engine() (name string, fn lloyd.Func, err error) {
	switch f.EngineName {
	case "seq", "sequential":
		return "sequential", lloyd.Sequential, nil
	case "par", "parallel":
		return "parallel", lloyd.Parallel, nil
	default:
		return "", nil, fmt.Errorf("unknown engine %q (want seq or par)", f.EngineName)
	}
}

// Options translates the flags into engine options.
func (f *ClusterFlags) Options(r *rand.Rand, log *lloyd.Logger) []lloyd.Option {
	return []lloyd.Option{
		lloyd.WithMaxIters(f.MaxIters),
		lloyd.WithTolerance(f.Tol),
		lloyd.WithWorkers(f.Workers),
		lloyd.WithRand(r),
		lloyd.WithLogger(log),
	}
}

// Logger builds the process logger on w.
func (f *ClusterFlags) Logger(w io.Writer) *lloyd.Logger {
	return NewLogger(w, f.Verbose, f.JSONLogs)
}

// NewLogger returns an Info (or Debug when verbose) logger on w.
func NewLogger(w io.Writer, verbose, json bool) *lloyd.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if json {
		return lloyd.NewLogger(slog.NewJSONHandler(w, opts))
	}
	return lloyd.NewLogger(slog.NewTextHandler(w, opts))
}

// Summarize prints a human readable description of res.
func Summarize(w io.Writer, engine string, points []geom.Point, res *lloyd.Result) {
	status := "hit the iteration cap"
	if res.Converged {
		status = "converged"
	}
	fmt.Fprintf(w, "%s: %s points, k=%d, %s after %d iterations (shift %.3g)\n",
		engine, humanize.Comma(int64(len(points))), res.K(), status, res.Iterations, res.Shift)
	lo, hi := geom.Bounds(points)
	fmt.Fprintf(w, "bounds: (%.4f, %.4f) to (%.4f, %.4f), inertia %s\n",
		lo.X, lo.Y, hi.X, hi.Y, humanize.FormatFloat("#,###.##", res.Inertia(points)))

	members := res.Members()
	for j, c := range res.Centroids {
		size := members[j].GetCardinality()
		fmt.Fprintf(w, "  cluster %d: (%.4f, %.4f) %s points (%s)\n",
			j, c.X, c.Y, humanize.Comma(int64(size)), humanize.Bytes(members[j].GetSizeInBytes()))
	}
}
