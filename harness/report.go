package harness

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sys/cpu"

	"github.com/hupe1980/lloyd/blobstore"
	"github.com/hupe1980/lloyd/codec"
)

// HostInfo describes the machine an experiment ran on.
type HostInfo struct {
	Hostname   string   `json:"hostname,omitempty"`
	GOOS       string   `json:"goos"`
	GOARCH     string   `json:"goarch"`
	GoVersion  string   `json:"go_version"`
	NumCPU     int      `json:"num_cpu"`
	GOMAXPROCS int      `json:"gomaxprocs"`
	Features   []string `json:"cpu_features,omitempty"`
}

// Host collects HostInfo for the current process.
func Host() HostInfo {
	name, _ := os.Hostname()
	return HostInfo{
		Hostname:   name,
		GOOS:       runtime.GOOS,
		GOARCH:     runtime.GOARCH,
		GoVersion:  runtime.Version(),
		NumCPU:     runtime.NumCPU(),
		GOMAXPROCS: runtime.GOMAXPROCS(0),
		Features:   cpuFeatures(),
	}
}

func cpuFeatures() []string {
	var out []string
	add := func(ok bool, name string) {
		if ok {
			out = append(out, name)
		}
	}
	add(cpu.X86.HasSSE42, "sse4.2")
	add(cpu.X86.HasAVX, "avx")
	add(cpu.X86.HasAVX2, "avx2")
	add(cpu.X86.HasFMA, "fma")
	add(cpu.X86.HasAVX512F, "avx512f")
	add(cpu.ARM64.HasASIMD, "asimd")
	add(cpu.ARM64.HasSVE, "sve")
	return out
}

// Report is the persisted outcome of one experiment.
type Report struct {
	ID        uuid.UUID `json:"id"`
	Mode      Mode      `json:"mode"`
	CreatedAt time.Time `json:"created_at"`
	Host      HostInfo  `json:"host"`
	Config    Config    `json:"config"`
	Rows      []Row     `json:"rows"`
}

// NewReport wraps rows measured with cfg.
func NewReport(mode Mode, cfg Config, rows []Row) *Report {
	return &Report{
		ID:        uuid.New(),
		Mode:      mode,
		CreatedAt: time.Now().UTC(),
		Host:      Host(),
		Config:    cfg,
		Rows:      rows,
	}
}

// Publish stores the report as <prefix>.csv and <prefix>.json concurrently
// and returns the blob names. A nil codec selects codec.Default.
func Publish(ctx context.Context, store blobstore.Store, prefix string, r *Report, c codec.Codec) ([]string, error) {
	c = codec.OrDefault(c)

	var buf bytes.Buffer
	if err := WriteCSV(&buf, r.Rows); err != nil {
		return nil, fmt.Errorf("harness: encode csv: %w", err)
	}
	doc, err := c.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("harness: encode report: %w", err)
	}

	names := []string{prefix + ".csv", prefix + ".json"}
	payloads := [][]byte{buf.Bytes(), doc}

	g, gctx := errgroup.WithContext(ctx)
	for i := range names {
		g.Go(func() error {
			if err := store.Put(gctx, names[i], payloads[i]); err != nil {
				return fmt.Errorf("harness: put %s: %w", names[i], err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return names, nil
}
