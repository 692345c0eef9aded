package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Shrikant-Ganji/ecommerce-return-mlops/internal/application/features"
	"github.com/Shrikant-Ganji/ecommerce-return-mlops/internal/infrastructure/config"
	"github.com/Shrikant-Ganji/ecommerce-return-mlops/internal/infrastructure/logger"
)

func main() {
	var rawDir, outDir string
	flag.StringVar(&rawDir, "raw", "", "Raw tables directory (default: configured paths.raw_dir)")
	flag.StringVar(&outDir, "out", "", "Processed output directory (default: configured paths.processed_dir)")
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

	if rawDir == "" {
		rawDir = cfg.Paths.RawDir
	}
	if outDir == "" {
		outDir = cfg.Paths.ProcessedDir
	}

	log.Info("Preparing dataset",
		zap.String("raw_dir", rawDir),
		zap.String("out_dir", outDir),
	)

	raw, err := features.LoadRawTables(rawDir)
	if err != nil {
		log.Fatal("Failed to load raw tables", zap.Error(err))
	}

	builder := features.NewBuilder(log)
	rows, schema, stats, err := builder.Build(raw)
	if err != nil {
		log.Fatal("Feature building failed", zap.Error(err))
	}
	if len(rows) == 0 {
		log.Fatal("No delivered orders with complete features; nothing to write")
	}

	splitter := features.NewSplitter(cfg.Training.TestFraction, cfg.Training.Seed)
	train, test := splitter.Split(rows)
	if err := splitter.WritePartitions(outDir, train, test); err != nil {
		log.Fatal("Failed to write partitions", zap.Error(err))
	}
	if err := features.SaveSchema(outDir, schema); err != nil {
		log.Fatal("Failed to write schema", zap.Error(err))
	}

	log.Info("Dataset prepared",
		zap.Int("feature_rows", stats.FeatureRows),
		zap.Int("dropped_null", stats.DroppedNull),
		zap.Int("defaulted_labels", stats.DefaultedLabels),
		zap.Int("train_rows", len(train)),
		zap.Int("test_rows", len(test)),
		zap.Int("categories", len(schema.Categories)),
	)
}
