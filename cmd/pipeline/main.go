package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Shrikant-Ganji/ecommerce-return-mlops/internal/application/pipeline"
	"github.com/Shrikant-Ganji/ecommerce-return-mlops/internal/infrastructure/config"
	"github.com/Shrikant-Ganji/ecommerce-return-mlops/internal/infrastructure/logger"
	"github.com/Shrikant-Ganji/ecommerce-return-mlops/internal/infrastructure/persistence"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting pipeline run",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("raw_dir", cfg.Paths.RawDir),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(cfg.Experiment.StorePath, gormLog)
	if err != nil {
		log.Fatal("Failed to open experiment store", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing experiment store", zap.Error(err))
		}
	}()

	experimentRepo := persistence.NewGormExperimentRepository(db.DB)
	p := pipeline.New(cfg, experimentRepo, log)

	result, err := p.Run(context.Background())
	if err != nil {
		log.Fatal("Pipeline run failed", zap.Error(err))
	}

	log.Info("Pipeline run succeeded",
		zap.Int("feature_rows", result.Stats.FeatureRows),
		zap.Int("train_rows", result.TrainRows),
		zap.Int("test_rows", result.TestRows),
		zap.Float64("accuracy", result.Accuracy),
		zap.Float64("f1_score", result.F1),
		zap.Int("predicted", result.Predicted),
	)
}
