package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Shrikant-Ganji/ecommerce-return-mlops/internal/application/features"
	"github.com/Shrikant-Ganji/ecommerce-return-mlops/internal/application/monitoring"
	"github.com/Shrikant-Ganji/ecommerce-return-mlops/internal/infrastructure/config"
	"github.com/Shrikant-Ganji/ecommerce-return-mlops/internal/infrastructure/logger"
)

func main() {
	var referencePath, currentPath, reportPath string
	flag.StringVar(&referencePath, "reference", "", "Reference feature table (default: train partition under paths.processed_dir)")
	flag.StringVar(&currentPath, "current", "", "Current feature table (default: test partition under paths.processed_dir)")
	flag.StringVar(&reportPath, "report", "", "HTML report output path (default: configured paths.report_path)")
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

	if referencePath == "" {
		referencePath = filepath.Join(cfg.Paths.ProcessedDir, features.TrainFile)
	}
	if currentPath == "" {
		currentPath = filepath.Join(cfg.Paths.ProcessedDir, features.TestFile)
	}
	if reportPath == "" {
		reportPath = cfg.Paths.ReportPath
	}

	monitor := monitoring.NewMonitor(cfg.Drift, log)
	report, err := monitor.Run(referencePath, currentPath, reportPath)
	if err != nil {
		log.Fatal("Drift monitoring failed", zap.Error(err))
	}

	log.Info("Drift report written",
		zap.String("report", reportPath),
		zap.Int("columns", len(report.Columns)),
		zap.Int("drifted_columns", report.DriftedColumns),
		zap.Bool("dataset_drift", report.DatasetDrift),
	)
}
