package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Shrikant-Ganji/ecommerce-return-mlops/internal/application/features"
	"github.com/Shrikant-Ganji/ecommerce-return-mlops/internal/application/training"
	"github.com/Shrikant-Ganji/ecommerce-return-mlops/internal/domain/dataset"
	"github.com/Shrikant-Ganji/ecommerce-return-mlops/internal/infrastructure/config"
	"github.com/Shrikant-Ganji/ecommerce-return-mlops/internal/infrastructure/logger"
	"github.com/Shrikant-Ganji/ecommerce-return-mlops/internal/infrastructure/persistence"
	"github.com/Shrikant-Ganji/ecommerce-return-mlops/internal/infrastructure/storage"
)

func main() {
	var dataDir, modelPath string
	flag.StringVar(&dataDir, "data", "", "Processed partitions directory (default: configured paths.processed_dir)")
	flag.StringVar(&modelPath, "model", "", "Model artifact output path (default: configured paths.model_path)")
	flag.Parse()

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

	if dataDir == "" {
		dataDir = cfg.Paths.ProcessedDir
	}
	if modelPath == "" {
		modelPath = cfg.Paths.ModelPath
	}

	schema, err := features.LoadSchema(dataDir)
	if err != nil {
		log.Fatal("Failed to load schema", zap.Error(err))
	}
	trainRows, err := storage.ReadTable[dataset.FeatureRow](filepath.Join(dataDir, features.TrainFile))
	if err != nil {
		log.Fatal("Failed to read training partition", zap.Error(err))
	}
	testRows, err := storage.ReadTable[dataset.FeatureRow](filepath.Join(dataDir, features.TestFile))
	if err != nil {
		log.Fatal("Failed to read held-out partition", zap.Error(err))
	}

	trainer := training.NewTrainer(cfg.Training, log)
	artifact, err := trainer.Train(trainRows, schema)
	if err != nil {
		log.Fatal("Training failed", zap.Error(err))
	}
	if err := artifact.Save(modelPath); err != nil {
		log.Fatal("Failed to save artifact", zap.Error(err))
	}
	log.Info("Artifact saved", zap.String("path", modelPath))

	// Evaluation needs the experiment store; open it with the zap-backed
	// gorm logger the way the HTTP server does.
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
	evaluator := training.NewEvaluator(experimentRepo, cfg.Experiment.ExperimentName, log)
	metrics, err := evaluator.Evaluate(context.Background(), artifact, testRows)
	if err != nil {
		log.Fatal("Evaluation failed", zap.Error(err))
	}

	log.Info("Training complete",
		zap.Int("train_rows", len(trainRows)),
		zap.Int("test_rows", len(testRows)),
		zap.Float64("accuracy", metrics.Accuracy),
		zap.Float64("f1_score", metrics.F1),
	)
}
