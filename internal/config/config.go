// Package config carries the ambient knobs both binaries share. The CLI
// contract is positional arguments only; everything here has a sane default
// and can be overridden through the environment or an optional .env file.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Defaults for the training stage.
const (
	DefaultLogLevel    = "info"
	DefaultWorkers     = 4
	DefaultTestSplit   = 0.2
	DefaultSeed        = 42
	DefaultBoostRounds = 50
	DefaultFolds       = 3
)

type Config struct {
	LogLevel       string
	Workers        int
	TestSplit      float64
	Seed           int64
	BoostRounds    int
	Folds          int
	CheckpointPath string
}

// Load reads an optional .env file, then applies environment overrides on
// top of the defaults. Unparseable overrides are ignored in favor of the
// default rather than failing the run.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:       DefaultLogLevel,
		Workers:        DefaultWorkers,
		TestSplit:      DefaultTestSplit,
		Seed:           DefaultSeed,
		BoostRounds:    DefaultBoostRounds,
		Folds:          DefaultFolds,
		CheckpointPath: os.Getenv("PIPELINE_CHECKPOINT"),
	}

	if v := os.Getenv("PIPELINE_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v, err := strconv.Atoi(os.Getenv("PIPELINE_WORKERS")); err == nil && v > 0 {
		cfg.Workers = v
	}
	if v, err := strconv.ParseFloat(os.Getenv("PIPELINE_TEST_SPLIT"), 64); err == nil && v > 0 && v < 1 {
		cfg.TestSplit = v
	}
	if v, err := strconv.ParseInt(os.Getenv("PIPELINE_SEED"), 10, 64); err == nil {
		cfg.Seed = v
	}
	if v, err := strconv.Atoi(os.Getenv("PIPELINE_BOOST_ROUNDS")); err == nil && v > 0 {
		cfg.BoostRounds = v
	}
	if v, err := strconv.Atoi(os.Getenv("PIPELINE_FOLDS")); err == nil && v >= 2 {
		cfg.Folds = v
	}
	return cfg
}
