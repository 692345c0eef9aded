package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults apply without a config file", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "ecommerce-return-mlops", cfg.App.Name)
		assert.Equal(t, "8000", cfg.HTTP.Port)
		assert.Equal(t, "data/raw", cfg.Paths.RawDir)
		assert.Equal(t, "data/processed", cfg.Paths.ProcessedDir)
		assert.Equal(t, "models/return_model.json", cfg.Paths.ModelPath)
		assert.Equal(t, "experiments.db", cfg.Experiment.StorePath)
		assert.Equal(t, "ecommerce-product-return", cfg.Experiment.ExperimentName)
		assert.Equal(t, 0.2, cfg.Training.TestFraction)
		assert.Equal(t, int64(42), cfg.Training.Seed)
		assert.Equal(t, 0.1, cfg.Drift.Threshold)
		assert.Equal(t, 0.5, cfg.Drift.DatasetShare)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, 15*time.Second, cfg.HTTP.ReadTimeout)
	})

	t.Run("environment variables override defaults", func(t *testing.T) {
		t.Setenv("RETURNS_HTTP_PORT", "9000")
		t.Setenv("RETURNS_PATHS_RAW_DIR", "/tmp/raw")
		t.Setenv("RETURNS_LOG_LEVEL", "debug")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "9000", cfg.HTTP.Port)
		assert.Equal(t, "/tmp/raw", cfg.Paths.RawDir)
		assert.Equal(t, "debug", cfg.Log.Level)
	})

	t.Run("invalid test fraction is rejected", func(t *testing.T) {
		t.Setenv("RETURNS_TRAINING_TEST_FRACTION", "1.5")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "test_fraction")
	})

	t.Run("invalid drift threshold is rejected", func(t *testing.T) {
		t.Setenv("RETURNS_DRIFT_THRESHOLD", "2")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "drift.threshold")
	})
}

func TestApplyDefaults(t *testing.T) {
	t.Run("format tracks environment", func(t *testing.T) {
		cfg := &Config{}
		cfg.App.Env = "production"
		applyDefaults(cfg)
		assert.Equal(t, "json", cfg.Log.Format)

		cfg = &Config{}
		applyDefaults(cfg)
		assert.Equal(t, "console", cfg.Log.Format)
	})
}
