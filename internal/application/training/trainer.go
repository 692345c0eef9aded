// Package training fits the return classifier and records evaluation runs
// in the experiment log.
package training

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Shrikant-Ganji/ecommerce-return-mlops/internal/domain/dataset"
	"github.com/Shrikant-Ganji/ecommerce-return-mlops/internal/domain/model"
	"github.com/Shrikant-Ganji/ecommerce-return-mlops/internal/infrastructure/config"
)

// Trainer fits the default classifier on a training partition and bundles
// it with the frozen schema into an artifact.
type Trainer struct {
	cfg    config.TrainingConfig
	logger *zap.Logger
}

// NewTrainer creates a Trainer.
func NewTrainer(cfg config.TrainingConfig, logger *zap.Logger) *Trainer {
	return &Trainer{cfg: cfg, logger: logger.Named("trainer")}
}

// Train fits on the training partition. The partition must be non-empty;
// identical rows and configuration always reproduce the same artifact
// weights.
func (t *Trainer) Train(rows []dataset.FeatureRow, schema dataset.Schema) (*model.Artifact, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: training partition", dataset.ErrEmptyPartition)
	}

	params := model.LogisticRegressionParams{
		LearningRate: t.cfg.LearningRate,
		Iterations:   t.cfg.Iterations,
		L2:           t.cfg.L2,
		Seed:         t.cfg.Seed,
	}
	clf := model.NewLogisticRegression(params)

	x, y := dataset.Matrix(rows)
	if err := clf.Fit(x, y); err != nil {
		return nil, fmt.Errorf("fitting %s: %w", model.AlgorithmLogisticRegression, err)
	}

	t.logger.Info("model fitted",
		zap.String("algorithm", model.AlgorithmLogisticRegression),
		zap.Int("rows", len(rows)),
		zap.Int("features", len(schema.FeatureNames)),
		zap.Float64("learning_rate", params.LearningRate),
		zap.Int("iterations", params.Iterations),
	)
	return model.NewArtifact(clf, schema), nil
}
