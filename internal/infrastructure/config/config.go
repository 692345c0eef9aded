package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App        AppConfig
	HTTP       HTTPConfig
	Paths      PathsConfig
	Experiment ExperimentConfig
	Training   TrainingConfig
	Drift      DriftConfig
	Log        LogConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
}

// HTTPConfig holds the serving endpoint configuration
type HTTPConfig struct {
	Port              string
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	MaxBodySize       int64
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration
}

// PathsConfig enumerates every file location the pipeline reads or writes.
// Components receive paths from here; nothing hard-codes a location.
type PathsConfig struct {
	RawDir          string // directory holding the five raw CSV tables
	ProcessedDir    string // directory for train/test partitions
	ModelPath       string // model artifact bundle
	PredictionsPath string // batch prediction output
	ReportPath      string // drift report HTML
}

// ExperimentConfig holds the experiment-tracking store settings
type ExperimentConfig struct {
	StorePath      string // sqlite file backing the run log
	ExperimentName string
}

// TrainingConfig holds split and fit hyperparameters
type TrainingConfig struct {
	TestFraction float64
	Seed         int64
	LearningRate float64
	Iterations   int
	L2           float64
}

// DriftConfig holds drift-detection thresholds
type DriftConfig struct {
	Threshold    float64 // per-column KS statistic threshold
	DatasetShare float64 // drifted-column share for a dataset-level verdict
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level      string // debug, info, warn, error
	Format     string // json, console
	Output     string // stdout, stderr, or file path
	MaxSizeMB  int    // rotation size for file output
	MaxBackups int
	MaxAgeDays int
}

// Load reads configuration from config.toml (if present) and environment
// variables prefixed with RETURNS_, then applies defaults and validates.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("RETURNS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
		},
		HTTP: HTTPConfig{
			Port:              v.GetString("http.port"),
			ReadTimeout:       v.GetDuration("http.read_timeout"),
			WriteTimeout:      v.GetDuration("http.write_timeout"),
			IdleTimeout:       v.GetDuration("http.idle_timeout"),
			MaxBodySize:       v.GetInt64("http.max_body_size"),
			RateLimitEnabled:  v.GetBool("http.rate_limit_enabled"),
			RateLimitRequests: v.GetInt("http.rate_limit_requests"),
			RateLimitWindow:   v.GetDuration("http.rate_limit_window"),
		},
		Paths: PathsConfig{
			RawDir:          v.GetString("paths.raw_dir"),
			ProcessedDir:    v.GetString("paths.processed_dir"),
			ModelPath:       v.GetString("paths.model_path"),
			PredictionsPath: v.GetString("paths.predictions_path"),
			ReportPath:      v.GetString("paths.report_path"),
		},
		Experiment: ExperimentConfig{
			StorePath:      v.GetString("experiment.store_path"),
			ExperimentName: v.GetString("experiment.name"),
		},
		Training: TrainingConfig{
			TestFraction: v.GetFloat64("training.test_fraction"),
			Seed:         v.GetInt64("training.seed"),
			LearningRate: v.GetFloat64("training.learning_rate"),
			Iterations:   v.GetInt("training.iterations"),
			L2:           v.GetFloat64("training.l2"),
		},
		Drift: DriftConfig{
			Threshold:    v.GetFloat64("drift.threshold"),
			DatasetShare: v.GetFloat64("drift.dataset_share"),
		},
		Log: LogConfig{
			Level:      v.GetString("log.level"),
			Format:     v.GetString("log.format"),
			Output:     v.GetString("log.output"),
			MaxSizeMB:  v.GetInt("log.max_size_mb"),
			MaxBackups: v.GetInt("log.max_backups"),
			MaxAgeDays: v.GetInt("log.max_age_days"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "ecommerce-return-mlops"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.HTTP.Port == "" {
		cfg.HTTP.Port = "8000"
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 15 * time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.HTTP.MaxBodySize == 0 {
		cfg.HTTP.MaxBodySize = 1 << 20 // 1 MB
	}
	if cfg.HTTP.RateLimitRequests == 0 {
		cfg.HTTP.RateLimitRequests = 100
	}
	if cfg.HTTP.RateLimitWindow == 0 {
		cfg.HTTP.RateLimitWindow = time.Minute
	}
	if cfg.Paths.RawDir == "" {
		cfg.Paths.RawDir = "data/raw"
	}
	if cfg.Paths.ProcessedDir == "" {
		cfg.Paths.ProcessedDir = "data/processed"
	}
	if cfg.Paths.ModelPath == "" {
		cfg.Paths.ModelPath = "models/return_model.json"
	}
	if cfg.Paths.PredictionsPath == "" {
		cfg.Paths.PredictionsPath = "data/predictions.csv"
	}
	if cfg.Paths.ReportPath == "" {
		cfg.Paths.ReportPath = "monitoring/drift_report.html"
	}
	if cfg.Experiment.StorePath == "" {
		cfg.Experiment.StorePath = "experiments.db"
	}
	if cfg.Experiment.ExperimentName == "" {
		cfg.Experiment.ExperimentName = "ecommerce-product-return"
	}
	if cfg.Training.TestFraction == 0 {
		cfg.Training.TestFraction = 0.2
	}
	if cfg.Training.Seed == 0 {
		cfg.Training.Seed = 42
	}
	if cfg.Training.LearningRate == 0 {
		cfg.Training.LearningRate = 0.1
	}
	if cfg.Training.Iterations == 0 {
		cfg.Training.Iterations = 500
	}
	if cfg.Training.L2 == 0 {
		cfg.Training.L2 = 0.001
	}
	if cfg.Drift.Threshold == 0 {
		cfg.Drift.Threshold = 0.1
	}
	if cfg.Drift.DatasetShare == 0 {
		cfg.Drift.DatasetShare = 0.5
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		if cfg.App.Env == "production" {
			cfg.Log.Format = "json"
		} else {
			cfg.Log.Format = "console"
		}
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.Log.MaxSizeMB == 0 {
		cfg.Log.MaxSizeMB = 100
	}
	if cfg.Log.MaxBackups == 0 {
		cfg.Log.MaxBackups = 3
	}
	if cfg.Log.MaxAgeDays == 0 {
		cfg.Log.MaxAgeDays = 28
	}
}

// validate checks configuration invariants that defaults cannot repair
func (c *Config) validate() error {
	if c.Training.TestFraction <= 0 || c.Training.TestFraction >= 1 {
		return fmt.Errorf("training.test_fraction must be in (0, 1), got %v", c.Training.TestFraction)
	}
	if c.Training.LearningRate <= 0 {
		return fmt.Errorf("training.learning_rate must be positive, got %v", c.Training.LearningRate)
	}
	if c.Training.Iterations < 1 {
		return fmt.Errorf("training.iterations must be at least 1, got %d", c.Training.Iterations)
	}
	if c.Drift.Threshold <= 0 || c.Drift.Threshold >= 1 {
		return fmt.Errorf("drift.threshold must be in (0, 1), got %v", c.Drift.Threshold)
	}
	if c.Drift.DatasetShare <= 0 || c.Drift.DatasetShare > 1 {
		return fmt.Errorf("drift.dataset_share must be in (0, 1], got %v", c.Drift.DatasetShare)
	}
	return nil
}
