// Package predicting scores feature tables with a persisted model
// artifact. Scoring is pure: no training state is read or written.
package predicting

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Shrikant-Ganji/ecommerce-return-mlops/internal/domain/dataset"
	"github.com/Shrikant-Ganji/ecommerce-return-mlops/internal/domain/model"
	"github.com/Shrikant-Ganji/ecommerce-return-mlops/internal/infrastructure/storage"
)

// Prediction is one scored row of the batch output table.
type Prediction struct {
	OrderID    string `csv:"order_id"`
	Prediction int    `csv:"prediction"`
}

// Predictor scores rows against one immutable artifact. It is safe for
// concurrent use: the artifact and its schema are never mutated.
type Predictor struct {
	artifact *model.Artifact
	logger   *zap.Logger
}

// NewPredictor creates a Predictor over a loaded artifact.
func NewPredictor(artifact *model.Artifact, logger *zap.Logger) *Predictor {
	return &Predictor{artifact: artifact, logger: logger.Named("predictor")}
}

// Schema exposes the artifact's frozen train/serve contract.
func (p *Predictor) Schema() dataset.Schema {
	return p.artifact.Schema
}

// ValidateColumns checks an input table's columns against the artifact
// schema before any row is scored.
func (p *Predictor) ValidateColumns(columns []string) error {
	return p.artifact.Schema.Validate(columns)
}

// PredictRows scores feature rows in input order.
func (p *Predictor) PredictRows(rows []dataset.FeatureRow) []Prediction {
	clf := p.artifact.Classifier()
	out := make([]Prediction, len(rows))
	for i, row := range rows {
		out[i] = Prediction{
			OrderID:    row.OrderID,
			Prediction: clf.PredictRow(row.Vector()),
		}
	}
	return out
}

// PredictRecord scores a single record given the raw category label. The
// label is encoded with the training-time mapping; an unseen label is
// rejected, never silently defaulted.
func (p *Predictor) PredictRecord(deliveryDelay, deliveryTime int, paymentValue float64, category string) (int, error) {
	code, err := p.artifact.Schema.EncodeCategory(category)
	if err != nil {
		return 0, err
	}
	row := dataset.FeatureRow{
		DeliveryDelay: deliveryDelay,
		DeliveryTime:  deliveryTime,
		PaymentValue:  paymentValue,
		CategoryCode:  code,
	}
	return p.artifact.Classifier().PredictRow(row.Vector()), nil
}

// PredictFile scores a feature table file and writes the prediction table,
// returning the number of rows scored. The file's header is validated
// against the artifact schema first; a missing column fails before any
// prediction is produced.
func (p *Predictor) PredictFile(featuresPath, outputPath string) (int, error) {
	header, err := storage.ReadHeader(featuresPath)
	if err != nil {
		return 0, err
	}
	if err := p.ValidateColumns(header); err != nil {
		return 0, fmt.Errorf("%s: %w", featuresPath, err)
	}

	rows, err := storage.ReadTable[dataset.FeatureRow](featuresPath)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, fmt.Errorf("%w: %s", dataset.ErrEmptyTable, featuresPath)
	}

	predictions := p.PredictRows(rows)
	if err := storage.WriteTable(outputPath, predictions); err != nil {
		return 0, err
	}

	p.logger.Info("batch predictions written",
		zap.String("input", featuresPath),
		zap.String("output", outputPath),
		zap.Int("rows", len(predictions)),
	)
	return len(predictions), nil
}
