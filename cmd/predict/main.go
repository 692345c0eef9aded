package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Shrikant-Ganji/ecommerce-return-mlops/internal/application/features"
	"github.com/Shrikant-Ganji/ecommerce-return-mlops/internal/application/predicting"
	"github.com/Shrikant-Ganji/ecommerce-return-mlops/internal/domain/model"
	"github.com/Shrikant-Ganji/ecommerce-return-mlops/internal/infrastructure/config"
	"github.com/Shrikant-Ganji/ecommerce-return-mlops/internal/infrastructure/logger"
)

func main() {
	var modelPath, inputPath, outputPath string
	flag.StringVar(&modelPath, "model", "", "Model artifact path (default: configured paths.model_path)")
	flag.StringVar(&inputPath, "input", "", "Feature table to score (default: test partition under paths.processed_dir)")
	flag.StringVar(&outputPath, "output", "", "Predictions output path (default: configured paths.predictions_path)")
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

	if modelPath == "" {
		modelPath = cfg.Paths.ModelPath
	}
	if inputPath == "" {
		inputPath = filepath.Join(cfg.Paths.ProcessedDir, features.TestFile)
	}
	if outputPath == "" {
		outputPath = cfg.Paths.PredictionsPath
	}

	artifact, err := model.LoadArtifact(modelPath)
	if err != nil {
		log.Fatal("Failed to load model artifact", zap.Error(err))
	}

	predictor := predicting.NewPredictor(artifact, log)
	n, err := predictor.PredictFile(inputPath, outputPath)
	if err != nil {
		log.Fatal("Batch prediction failed", zap.Error(err))
	}

	log.Info("Predictions written",
		zap.Int("rows", n),
		zap.String("input", inputPath),
		zap.String("output", outputPath),
	)
}
