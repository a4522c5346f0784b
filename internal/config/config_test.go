package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"PIPELINE_LOG_LEVEL", "PIPELINE_WORKERS", "PIPELINE_TEST_SPLIT",
		"PIPELINE_SEED", "PIPELINE_BOOST_ROUNDS", "PIPELINE_FOLDS", "PIPELINE_CHECKPOINT",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.LogLevel != DefaultLogLevel || cfg.Workers != DefaultWorkers ||
		cfg.TestSplit != DefaultTestSplit || cfg.Seed != DefaultSeed ||
		cfg.BoostRounds != DefaultBoostRounds || cfg.Folds != DefaultFolds {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.CheckpointPath != "" {
		t.Errorf("checkpoint path = %q, want empty", cfg.CheckpointPath)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PIPELINE_LOG_LEVEL", "debug")
	t.Setenv("PIPELINE_WORKERS", "8")
	t.Setenv("PIPELINE_TEST_SPLIT", "0.3")
	t.Setenv("PIPELINE_SEED", "7")
	t.Setenv("PIPELINE_BOOST_ROUNDS", "25")
	t.Setenv("PIPELINE_FOLDS", "5")
	t.Setenv("PIPELINE_CHECKPOINT", "/tmp/grid.db")

	cfg := Load()
	if cfg.LogLevel != "debug" || cfg.Workers != 8 || cfg.TestSplit != 0.3 ||
		cfg.Seed != 7 || cfg.BoostRounds != 25 || cfg.Folds != 5 ||
		cfg.CheckpointPath != "/tmp/grid.db" {
		t.Errorf("overrides not applied: %+v", cfg)
	}
}

func TestLoadIgnoresUnparseableOverrides(t *testing.T) {
	t.Setenv("PIPELINE_WORKERS", "lots")
	t.Setenv("PIPELINE_TEST_SPLIT", "2.0")
	t.Setenv("PIPELINE_FOLDS", "1")

	cfg := Load()
	if cfg.Workers != DefaultWorkers {
		t.Errorf("workers = %d, want default %d", cfg.Workers, DefaultWorkers)
	}
	if cfg.TestSplit != DefaultTestSplit {
		t.Errorf("test split = %v, want default %v", cfg.TestSplit, DefaultTestSplit)
	}
	if cfg.Folds != DefaultFolds {
		t.Errorf("folds = %d, want default %d", cfg.Folds, DefaultFolds)
	}
}
