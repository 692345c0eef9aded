package training

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/Shrikant-Ganji/ecommerce-return-mlops/internal/domain/dataset"
	"github.com/Shrikant-Ganji/ecommerce-return-mlops/internal/domain/model"
	"github.com/Shrikant-Ganji/ecommerce-return-mlops/internal/infrastructure/persistence"
)

// ExperimentLog is the append-only run log the evaluator writes to.
type ExperimentLog interface {
	Append(ctx context.Context, run *persistence.ExperimentRun) error
}

// Evaluator scores a fitted artifact on the held-out partition and appends
// the result to the experiment log. It never mutates the artifact.
type Evaluator struct {
	log            ExperimentLog
	experimentName string
	logger         *zap.Logger
}

// NewEvaluator creates an Evaluator.
func NewEvaluator(log ExperimentLog, experimentName string, logger *zap.Logger) *Evaluator {
	return &Evaluator{
		log:            log,
		experimentName: experimentName,
		logger:         logger.Named("evaluator"),
	}
}

// Evaluate computes accuracy and F1 over the held-out partition and records
// the run. An empty partition is a fatal error, never a zero or NaN metric.
func (e *Evaluator) Evaluate(ctx context.Context, artifact *model.Artifact, heldOut []dataset.FeatureRow) (model.Metrics, error) {
	if len(heldOut) == 0 {
		return model.Metrics{}, fmt.Errorf("%w: held-out partition", dataset.ErrEmptyPartition)
	}

	clf := artifact.Classifier()
	yTrue := make([]int, len(heldOut))
	yPred := make([]int, len(heldOut))
	for i, row := range heldOut {
		yTrue[i] = row.IsReturned
		yPred[i] = clf.PredictRow(row.Vector())
	}

	metrics, err := model.Score(yTrue, yPred)
	if err != nil {
		return model.Metrics{}, err
	}

	params, err := json.Marshal(artifact.Params)
	if err != nil {
		return model.Metrics{}, fmt.Errorf("encoding run parameters: %w", err)
	}
	run := &persistence.ExperimentRun{
		ExperimentName: e.experimentName,
		ModelType:      artifact.Algorithm,
		Params:         string(params),
		Accuracy:       metrics.Accuracy,
		F1Score:        metrics.F1,
	}
	if err := e.log.Append(ctx, run); err != nil {
		return model.Metrics{}, fmt.Errorf("recording experiment run: %w", err)
	}

	e.logger.Info("evaluation recorded",
		zap.String("run_id", run.ID),
		zap.String("experiment", e.experimentName),
		zap.Int("held_out_rows", len(heldOut)),
		zap.Float64("accuracy", metrics.Accuracy),
		zap.Float64("f1_score", metrics.F1),
	)
	return metrics, nil
}
