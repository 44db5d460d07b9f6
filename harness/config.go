package harness

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/hupe1980/lloyd"
)

// ErrInvalidConfig is wrapped by every Config.Validate failure.
var ErrInvalidConfig = errors.New("harness: invalid config")

// Mode selects the scaling experiment.
type Mode string

const (
	// Strong keeps the point count fixed.
	Strong Mode = "strong"
	// Weak uses BasePoints points per worker.
	Weak Mode = "weak"
)

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case Strong, Weak:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, s)
	}
}

// Predict returns the speedup the mode's scaling law expects on n workers.
func (m Mode) Predict(p float64, n int) float64 {
	if m == Weak {
		return Gustafson(p, n)
	}
	return Amdahl(p, n)
}

// Config describes a scaling experiment.
type Config struct {
	K         int     `json:"k" yaml:"k"`
	MaxIters  int     `json:"max_iters" yaml:"max_iters"`
	Tolerance float64 `json:"tolerance" yaml:"tolerance"`

	// Points is the problem size for strong scaling.
	Points int `json:"points" yaml:"points"`
	// BasePoints is the per-worker problem size for weak scaling.
	BasePoints int `json:"base_points" yaml:"base_points"`

	MaxWorkers int `json:"max_workers" yaml:"max_workers"`
	Runs       int `json:"runs" yaml:"runs"`

	// ParallelFraction is the p used for the Amdahl and Gustafson predictions.
	ParallelFraction float64 `json:"parallel_fraction" yaml:"parallel_fraction"`

	// Seed makes point sets and initial centroids reproducible. 0 picks a
	// random seed.
	Seed uint64 `json:"seed" yaml:"seed"`

	Logger  *lloyd.Logger          `json:"-" yaml:"-"`
	Metrics lloyd.MetricsCollector `json:"-" yaml:"-"`
}

// DefaultConfig returns the settings of the reference experiments.
func DefaultConfig() Config {
	return Config{
		K:                4,
		MaxIters:         100,
		Tolerance:        1e-3,
		Points:           100_000,
		BasePoints:       200_000,
		MaxWorkers:       8,
		Runs:             2,
		ParallelFraction: 0.9,
	}
}

// Validate checks the experiment parameters.
func (c Config) Validate() error {
	switch {
	case c.K < 1:
		return fmt.Errorf("%w: k must be at least 1, got %d", ErrInvalidConfig, c.K)
	case c.MaxIters < 0:
		return fmt.Errorf("%w: max_iters must not be negative, got %d", ErrInvalidConfig, c.MaxIters)
	case c.Tolerance < 0:
		return fmt.Errorf("%w: tolerance must not be negative, got %g", ErrInvalidConfig, c.Tolerance)
	case c.Points < c.K:
		return fmt.Errorf("%w: points (%d) must be at least k (%d)", ErrInvalidConfig, c.Points, c.K)
	case c.BasePoints < c.K:
		return fmt.Errorf("%w: base_points (%d) must be at least k (%d)", ErrInvalidConfig, c.BasePoints, c.K)
	case c.MaxWorkers < 1:
		return fmt.Errorf("%w: max_workers must be at least 1, got %d", ErrInvalidConfig, c.MaxWorkers)
	case c.Runs < 1:
		return fmt.Errorf("%w: runs must be at least 1, got %d", ErrInvalidConfig, c.Runs)
	case c.ParallelFraction < 0 || c.ParallelFraction > 1:
		return fmt.Errorf("%w: parallel_fraction must be in [0, 1], got %g", ErrInvalidConfig, c.ParallelFraction)
	}
	return nil
}

func (c Config) logger() *lloyd.Logger {
	if c.Logger == nil {
		return lloyd.NoopLogger()
	}
	return c.Logger
}

func (c Config) rand() *rand.Rand {
	seed := c.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed))
}
