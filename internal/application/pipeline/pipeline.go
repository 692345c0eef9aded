// Package pipeline sequences the batch steps: load raw tables, build
// features, split, train, evaluate, batch-predict. Each step's output is
// the next step's sole input; the first failure aborts the remainder with
// the step name attached. Artifacts from completed steps stay on disk.
package pipeline

import (
	"context"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Shrikant-Ganji/ecommerce-return-mlops/internal/application/features"
	"github.com/Shrikant-Ganji/ecommerce-return-mlops/internal/application/predicting"
	"github.com/Shrikant-Ganji/ecommerce-return-mlops/internal/application/training"
	"github.com/Shrikant-Ganji/ecommerce-return-mlops/internal/domain/dataset"
	"github.com/Shrikant-Ganji/ecommerce-return-mlops/internal/infrastructure/config"
)

// Step names, used for error attribution and logging.
const (
	StepLoad     = "load"
	StepBuild    = "build_features"
	StepSplit    = "split"
	StepTrain    = "train"
	StepEvaluate = "evaluate"
	StepPredict  = "predict"
)

// Result summarizes a completed run.
type Result struct {
	Stats     features.BuildStats
	TrainRows int
	TestRows  int
	Accuracy  float64
	F1        float64
	Predicted int
}

// Pipeline owns the full batch sequence.
type Pipeline struct {
	cfg       *config.Config
	builder   *features.Builder
	splitter  *features.Splitter
	trainer   *training.Trainer
	evaluator *training.Evaluator
	logger    *zap.Logger
}

// New wires the pipeline from its step services.
func New(cfg *config.Config, experimentLog training.ExperimentLog, logger *zap.Logger) *Pipeline {
	log := logger.Named("pipeline")
	return &Pipeline{
		cfg:       cfg,
		builder:   features.NewBuilder(logger),
		splitter:  features.NewSplitter(cfg.Training.TestFraction, cfg.Training.Seed),
		trainer:   training.NewTrainer(cfg.Training, logger),
		evaluator: training.NewEvaluator(experimentLog, cfg.Experiment.ExperimentName, logger),
		logger:    log,
	}
}

// Run executes every step in strict sequence and returns the run summary.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	var result Result

	p.logger.Info("step started", zap.String("step", StepLoad))
	raw, err := features.LoadRawTables(p.cfg.Paths.RawDir)
	if err != nil {
		return nil, stepErr(StepLoad, err)
	}

	p.logger.Info("step started", zap.String("step", StepBuild))
	rows, schema, stats, err := p.builder.Build(raw)
	if err != nil {
		return nil, stepErr(StepBuild, err)
	}
	result.Stats = stats
	// The builder propagates an empty table silently; the pipeline is the
	// caller responsible for refusing to train on one.
	if len(rows) == 0 {
		return nil, stepErr(StepBuild, fmt.Errorf("%w: no delivered orders with complete features", dataset.ErrEmptyTable))
	}

	p.logger.Info("step started", zap.String("step", StepSplit))
	train, test := p.splitter.Split(rows)
	if err := p.splitter.WritePartitions(p.cfg.Paths.ProcessedDir, train, test); err != nil {
		return nil, stepErr(StepSplit, err)
	}
	if err := features.SaveSchema(p.cfg.Paths.ProcessedDir, schema); err != nil {
		return nil, stepErr(StepSplit, err)
	}
	result.TrainRows, result.TestRows = len(train), len(test)

	p.logger.Info("step started", zap.String("step", StepTrain))
	artifact, err := p.trainer.Train(train, schema)
	if err != nil {
		return nil, stepErr(StepTrain, err)
	}
	if err := artifact.Save(p.cfg.Paths.ModelPath); err != nil {
		return nil, stepErr(StepTrain, err)
	}

	p.logger.Info("step started", zap.String("step", StepEvaluate))
	metrics, err := p.evaluator.Evaluate(ctx, artifact, test)
	if err != nil {
		return nil, stepErr(StepEvaluate, err)
	}
	result.Accuracy, result.F1 = metrics.Accuracy, metrics.F1

	p.logger.Info("step started", zap.String("step", StepPredict))
	predictor := predicting.NewPredictor(artifact, p.logger)
	predicted, err := predictor.PredictFile(
		filepath.Join(p.cfg.Paths.ProcessedDir, features.TestFile),
		p.cfg.Paths.PredictionsPath,
	)
	if err != nil {
		return nil, stepErr(StepPredict, err)
	}
	result.Predicted = predicted

	p.logger.Info("pipeline complete",
		zap.Int("train_rows", result.TrainRows),
		zap.Int("test_rows", result.TestRows),
		zap.Float64("accuracy", result.Accuracy),
		zap.Float64("f1_score", result.F1),
		zap.Int("predicted", result.Predicted),
	)
	return &result, nil
}

func stepErr(step string, err error) error {
	return fmt.Errorf("step %s: %w", step, err)
}
