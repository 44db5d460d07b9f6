// Package trace implements the "lloyd trace" subcommand, which records the
// full iteration history of a run to a blob store or prints a stored one.
package trace

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/hupe1980/lloyd"
	"github.com/hupe1980/lloyd/blobstore"
	"github.com/hupe1980/lloyd/cmd/lloyd/internal/cli"
	"github.com/hupe1980/lloyd/codec"
	"github.com/hupe1980/lloyd/internal/config"
	ktrace "github.com/hupe1980/lloyd/trace"
)

// Run executes the trace subcommand.
func Run(args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, args, os.Stdout, os.Stderr); err != nil {
		log.Fatalf("trace: %v", err)
	}
}

type traceFlags struct {
	cli.ClusterFlags
	configPath  string
	storeURI    string
	prefix      string
	compression string
	codecName   string
	load        string
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("trace", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var f traceFlags
	f.Register(fs)
	fs.StringVar(&f.configPath, "config", "", "Configuration file (defaults to $LLOYD_CONFIG)")
	fs.StringVar(&f.storeURI, "store", "", "Store URI (overrides storage.uri)")
	fs.StringVar(&f.prefix, "prefix", "", "Name prefix inside the store, e.g. traces/")
	fs.StringVar(&f.compression, "compression", "", "none, lz4 or zstd (overrides storage.compression)")
	fs.StringVar(&f.codecName, "codec", "go-json", "Encoding: "+strings.Join(codec.Names(), " or "))
	fs.StringVar(&f.load, "load", "", "Print a stored trace instead of running")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := config.Load(f.configPath)
	if err != nil {
		return err
	}
	if f.storeURI != "" {
		cfg.Storage.URI = f.storeURI
	}
	if f.compression != "" {
		cfg.Storage.Compression = f.compression
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	c, err := codec.Lookup(f.codecName)
	if err != nil {
		return err
	}

	store, err := cli.OpenStore(ctx, cfg.Storage.URI, cfg.Storage)
	if err != nil {
		return err
	}

	if f.load != "" {
		t, err := ktrace.Load(ctx, store, f.load, c)
		if err != nil {
			return err
		}
		describe(stdout, f.load, t)
		return nil
	}
	return record(ctx, &f, cfg, store, c, stdout, stderr)
}

func record(ctx context.Context, f *traceFlags, cfg *config.Config, store blobstore.Store, c codec.Codec, stdout, stderr io.Writer) error {
	name, engine, err := f.Engine()
	if err != nil {
		return err
	}

	r := f.Rand()
	points, err := f.Points(r)
	if err != nil {
		return fmt.Errorf("load points: %w", err)
	}

	logger := f.Logger(stderr)
	opts := append(f.Options(r, logger), lloyd.WithHistory())

	res, err := engine(points, f.K, opts...)
	if err != nil {
		return err
	}
	cli.Summarize(stdout, name, points, res)

	t, err := ktrace.FromResult(points, res, ktrace.Meta{
		Engine:    name,
		Workers:   f.Workers,
		MaxIters:  f.MaxIters,
		Tolerance: f.Tol,
	})
	if err != nil {
		return err
	}

	blob, err := ktrace.NextName(ctx, store, f.prefix)
	if err != nil {
		return err
	}

	w := &ktrace.Writer{
		Store:       store,
		Codec:       c,
		Compression: cfg.Compression(),
		Controller:  cfg.Controller(),
	}
	info, err := w.Save(ctx, blob, t)
	if err != nil {
		return err
	}
	if err := ktrace.Verify(ctx, store, info); err != nil {
		return err
	}

	logger.Info("trace written", "name", info.Name, "size", info.Size, "compression", info.Compression)
	fmt.Fprintf(stdout, "trace: %s (%s, xxhash %016x)\n", info.Name, humanize.Bytes(uint64(info.Size)), info.Checksum)
	return nil
}

func describe(w io.Writer, name string, t *ktrace.Trace) {
	status := "hit the iteration cap"
	if t.Converged {
		status = "converged"
	}
	fmt.Fprintf(w, "%s: id %s, recorded %s\n", name, t.ID, humanize.Time(t.CreatedAt))
	fmt.Fprintf(w, "%s engine, %s points, k=%d, %s after %d iterations\n",
		t.Engine, humanize.Comma(int64(len(t.Points))), t.K, status, len(t.Iterations))
	for i, it := range t.Iterations {
		fmt.Fprintf(w, "  iteration %d: shift %.4g\n", i+1, it.Shift)
	}
	for j, c := range t.Final() {
		fmt.Fprintf(w, "  centroid %d: (%.4f, %.4f)\n", j, c.X, c.Y)
	}
}
