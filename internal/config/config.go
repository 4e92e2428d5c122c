// Package config loads runtime settings from the environment and an optional
// .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvCatalog       = "GRB_CATALOG"
	EnvSeed          = "GRB_SEED"
	EnvLogLevel      = "GRB_LOG_LEVEL"
	EnvCoverageOrder = "GRB_COVERAGE_ORDER"
	EnvSamples       = "GRB_SAMPLES"
	EnvTrials        = "GRB_TRIALS"
	EnvMaxEvents     = "GRB_MAX_EVENTS"
	EnvResample      = "GRB_RESAMPLE_PER_TRIAL"
)

// HEALPix orders above this produce hit maps too large to be useful here.
const maxCoverageOrder = 12

type Config struct {
	Catalog  CatalogConfig
	Sim      SimulationConfig
	Coverage CoverageConfig
	Logging  LoggingConfig
}

type CatalogConfig struct {
	Path string // empty selects the bundled catalog
}

type SimulationConfig struct {
	Seed             uint64
	Trials           int
	MaxEvents        int
	ResamplePerTrial bool
}

type CoverageConfig struct {
	Order   int
	Samples int
}

type LoggingConfig struct {
	Level string
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() *Config {
	return &Config{
		Sim: SimulationConfig{
			Trials:           10_000,
			MaxEvents:        50,
			ResamplePerTrial: true,
		},
		Coverage: CoverageConfig{
			Order:   4,
			Samples: 100_000,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads envFiles (default ".env") if present, then overlays GRB_*
// variables on DefaultConfig. A missing .env is not an error.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read env file: %w", err)
	}

	cfg, err := load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func load() (*Config, error) {
	cfg := DefaultConfig()
	var errs []error

	cfg.Catalog.Path = getEnv(EnvCatalog, cfg.Catalog.Path)
	cfg.Logging.Level = getEnv(EnvLogLevel, cfg.Logging.Level)

	if v, ok := os.LookupEnv(EnvSeed); ok && v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvSeed, err))
		}
		cfg.Sim.Seed = seed
	}

	ints := []struct {
		key string
		dst *int
	}{
		{EnvTrials, &cfg.Sim.Trials},
		{EnvMaxEvents, &cfg.Sim.MaxEvents},
		{EnvCoverageOrder, &cfg.Coverage.Order},
		{EnvSamples, &cfg.Coverage.Samples},
	}
	for _, f := range ints {
		v, ok := os.LookupEnv(f.key)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", f.key, err))
			continue
		}
		*f.dst = n
	}

	if v, ok := os.LookupEnv(EnvResample); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvResample, err))
		}
		cfg.Sim.ResamplePerTrial = b
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return cfg, nil
}

// Validate reports settings that cannot be run.
func (c *Config) Validate() error {
	if c.Sim.Trials < 0 {
		return fmt.Errorf("%s must not be negative", EnvTrials)
	}
	if c.Sim.MaxEvents <= 0 {
		return fmt.Errorf("%s must be positive", EnvMaxEvents)
	}
	if c.Coverage.Order < 0 || c.Coverage.Order > maxCoverageOrder {
		return fmt.Errorf("%s must be in [0, %d]", EnvCoverageOrder, maxCoverageOrder)
	}
	if c.Coverage.Samples <= 0 {
		return fmt.Errorf("%s must be positive", EnvSamples)
	}
	return nil
}

// UsesBundledCatalog reports whether no catalog path was configured.
func (c *Config) UsesBundledCatalog() bool {
	return c.Catalog.Path == ""
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
