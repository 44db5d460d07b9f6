// Package config loads experiment and storage settings for the lloyd CLI.
//
// Values are resolved in order: defaults, then the YAML file named by the
// path argument or LLOYD_CONFIG, then LLOYD_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/hupe1980/lloyd/harness"
	"github.com/hupe1980/lloyd/internal/resource"
	"github.com/hupe1980/lloyd/trace"
)

// Config is the root of the configuration file.
type Config struct {
	Experiment ExperimentConfig `yaml:"experiment"`
	Storage    StorageConfig    `yaml:"storage"`
}

// ExperimentConfig holds the scaling experiment parameters.
type ExperimentConfig struct {
	harness.Config `yaml:",inline"`
	// Mode is "strong" or "weak".
	Mode string `yaml:"mode"`
}

// StorageConfig selects where traces and reports are written.
type StorageConfig struct {
	// URI is a path, file://dir, minio://bucket/prefix or s3://bucket/prefix.
	URI string `yaml:"uri"`
	// Compression for traces: none, lz4 or zstd.
	Compression string      `yaml:"compression"`
	MinIO       MinIOConfig `yaml:"minio"`
	// IOLimitBytesPerSec caps upload throughput. 0 means unlimited.
	IOLimitBytesPerSec int64 `yaml:"io_limit_bytes_per_sec"`
	// UploadConcurrency caps parallel uploads. 0 means the default (4).
	UploadConcurrency int64 `yaml:"upload_concurrency"`
}

// MinIOConfig holds credentials for minio:// URIs.
type MinIOConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Region    string `yaml:"region"`
	UseSSL    bool   `yaml:"use_ssl"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Experiment: ExperimentConfig{
			Config: harness.DefaultConfig(),
			Mode:   string(harness.Strong),
		},
		Storage: StorageConfig{
			URI:         "results",
			Compression: string(trace.None),
			MinIO: MinIOConfig{
				Endpoint: "localhost:9000",
			},
		},
	}
}

// Load reads the configuration. An empty path falls back to LLOYD_CONFIG;
// if both are empty only defaults and environment overrides apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("LLOYD_CONFIG")
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if env := os.Getenv("LLOYD_STORE_URI"); env != "" {
		c.Storage.URI = env
	}
	if env := os.Getenv("LLOYD_COMPRESSION"); env != "" {
		c.Storage.Compression = env
	}
	if env := os.Getenv("LLOYD_MINIO_ENDPOINT"); env != "" {
		c.Storage.MinIO.Endpoint = env
	}
	if env := os.Getenv("LLOYD_MINIO_ACCESS_KEY"); env != "" {
		c.Storage.MinIO.AccessKey = env
	}
	if env := os.Getenv("LLOYD_MINIO_SECRET_KEY"); env != "" {
		c.Storage.MinIO.SecretKey = env
	}
	if env := os.Getenv("LLOYD_MINIO_USE_SSL"); env != "" {
		c.Storage.MinIO.UseSSL = env == "true" || env == "1"
	}
	if env := os.Getenv("LLOYD_MODE"); env != "" {
		c.Experiment.Mode = env
	}
	if env := os.Getenv("LLOYD_MAX_WORKERS"); env != "" {
		n, err := strconv.Atoi(env)
		if err != nil {
			return fmt.Errorf("config: LLOYD_MAX_WORKERS: %w", err)
		}
		c.Experiment.MaxWorkers = n
	}
	if env := os.Getenv("LLOYD_RUNS"); env != "" {
		n, err := strconv.Atoi(env)
		if err != nil {
			return fmt.Errorf("config: LLOYD_RUNS: %w", err)
		}
		c.Experiment.Runs = n
	}
	if env := os.Getenv("LLOYD_SEED"); env != "" {
		n, err := strconv.ParseUint(env, 10, 64)
		if err != nil {
			return fmt.Errorf("config: LLOYD_SEED: %w", err)
		}
		c.Experiment.Seed = n
	}
	return nil
}

// Validate checks every section.
func (c *Config) Validate() error {
	var errs []error
	if err := c.Experiment.Validate(); err != nil {
		errs = append(errs, err)
	}
	if _, err := harness.ParseMode(c.Experiment.Mode); err != nil {
		errs = append(errs, err)
	}
	if c.Storage.URI == "" {
		errs = append(errs, errors.New("config: storage.uri must not be empty"))
	}
	if _, err := trace.ParseCompression(c.Storage.Compression); err != nil {
		errs = append(errs, err)
	}
	if c.Storage.IOLimitBytesPerSec < 0 {
		errs = append(errs, fmt.Errorf("config: storage.io_limit_bytes_per_sec must not be negative, got %d", c.Storage.IOLimitBytesPerSec))
	}
	if c.Storage.UploadConcurrency < 0 {
		errs = append(errs, fmt.Errorf("config: storage.upload_concurrency must not be negative, got %d", c.Storage.UploadConcurrency))
	}
	return errors.Join(errs...)
}

// Mode returns the parsed experiment mode. Call after Validate.
func (c *Config) Mode() harness.Mode {
	return harness.Mode(c.Experiment.Mode)
}

// Compression returns the parsed trace compression. Call after Validate.
func (c *Config) Compression() trace.Compression {
	comp, _ := trace.ParseCompression(c.Storage.Compression)
	return comp
}

// Controller builds the upload limiter described by the storage section.
func (c *Config) Controller() *resource.Controller {
	return resource.NewController(resource.Config{
		MaxConcurrentUploads: c.Storage.UploadConcurrency,
		IOLimitBytesPerSec:   c.Storage.IOLimitBytesPerSec,
	})
}
