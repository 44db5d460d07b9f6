// Package run implements the "lloyd run" subcommand.
package run

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/hupe1980/lloyd"
	"github.com/hupe1980/lloyd/cmd/lloyd/internal/cli"
	"github.com/hupe1980/lloyd/dataset"
	"github.com/hupe1980/lloyd/geom"
)

// Run executes the run subcommand.
func Run(args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, args, os.Stdout, os.Stderr); err != nil {
		log.Fatalf("run: %v", err)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var flags cli.ClusterFlags
	flags.Register(fs)
	output := fs.String("output", "", "Write labelled points as CSV to this file")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	name, engine, err := flags.Engine()
	if err != nil {
		return err
	}

	r := flags.Rand()
	points, err := flags.Points(r)
	if err != nil {
		return fmt.Errorf("load points: %w", err)
	}

	logger := flags.Logger(stderr)
	metrics := &lloyd.BasicMetricsCollector{}
	opts := append(flags.Options(r, logger), lloyd.WithMetricsCollector(metrics))

	if err := ctx.Err(); err != nil {
		return err
	}

	start := time.Now()
	res, err := engine(points, flags.K, opts...)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)
	logger.Debug("run metrics", "avg_run_time", metrics.AverageRunTime(), "last_shift", metrics.LastShift())

	cli.Summarize(stdout, name, points, res)
	fmt.Fprintf(stdout, "elapsed: %s\n", elapsed.Round(time.Microsecond))

	if *output != "" {
		if err := writeLabels(*output, points, res); err != nil {
			return err
		}
		logger.Info("labels written", "path", *output)
	}
	return nil
}

func writeLabels(path string, points []geom.Point, res *lloyd.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := dataset.WriteLabeledCSV(f, points, res.Assignments); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
