// Package scale implements the "lloyd scale" subcommand, which runs a strong
// or weak scaling experiment and publishes the resulting table.
package scale

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hupe1980/lloyd/cmd/lloyd/internal/cli"
	"github.com/hupe1980/lloyd/harness"
	"github.com/hupe1980/lloyd/internal/config"
	"github.com/hupe1980/lloyd/metrics"
)

// Run executes the scale subcommand.
func Run(args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, args, os.Stdout, os.Stderr); err != nil {
		log.Fatalf("scale: %v", err)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("scale", flag.ContinueOnError)
	fs.SetOutput(stderr)

	configPath := fs.String("config", "", "Configuration file (defaults to $LLOYD_CONFIG)")
	mode := fs.String("mode", "", "strong or weak (overrides experiment.mode)")
	storeURI := fs.String("store", "", "Store URI (overrides storage.uri)")
	prefix := fs.String("prefix", "", "Report name prefix (default <mode>_scaling)")
	maxWorkers := fs.Int("max-workers", 0, "Largest worker count (overrides experiment.max_workers)")
	runs := fs.Int("runs", 0, "Trials per worker count (overrides experiment.runs)")
	points := fs.Int("points", 0, "Strong scaling problem size (overrides experiment.points)")
	seed := fs.Uint64("seed", 0, "Random seed (overrides experiment.seed)")
	metricsAddr := fs.String("metrics-addr", "", "Serve Prometheus metrics on this address while running, e.g. :9090")
	verbose := fs.Bool("v", false, "Debug logging")
	jsonLogs := fs.Bool("json-logs", false, "Emit logs as JSON")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	exp := &cfg.Experiment
	if *mode != "" {
		exp.Mode = *mode
	}
	if *storeURI != "" {
		cfg.Storage.URI = *storeURI
	}
	if *maxWorkers > 0 {
		exp.MaxWorkers = *maxWorkers
	}
	if *runs > 0 {
		exp.Runs = *runs
	}
	if *points > 0 {
		exp.Points = *points
	}
	if *seed != 0 {
		exp.Seed = *seed
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := cli.NewLogger(stderr, *verbose, *jsonLogs)

	reg := prometheus.NewRegistry()
	exp.Logger = logger
	exp.Metrics = metrics.New(reg)

	if *metricsAddr != "" {
		shutdown, err := serveMetrics(*metricsAddr, reg)
		if err != nil {
			return err
		}
		defer shutdown()
		logger.Info("serving metrics", "addr", *metricsAddr)
	}

	store, err := cli.OpenStore(ctx, cfg.Storage.URI, cfg.Storage)
	if err != nil {
		return err
	}

	m := cfg.Mode()
	logger.Info("scaling experiment started", "mode", m, "max_workers", exp.MaxWorkers, "runs", exp.Runs)

	rows, err := harness.Run(ctx, m, exp.Config)
	if err != nil {
		return err
	}
	if err := harness.WriteCSV(stdout, rows); err != nil {
		return err
	}

	name := *prefix
	if name == "" {
		name = fmt.Sprintf("%s_scaling", m)
	}
	names, err := harness.Publish(ctx, store, name, harness.NewReport(m, exp.Config, rows), nil)
	if err != nil {
		return err
	}
	logger.Info("report published", "store", cfg.Storage.URI, "names", names)
	return nil
}

func serveMetrics(addr string, reg *prometheus.Registry) (func(), error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("metrics listener: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("metrics server: %v", err)
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}, nil
}
