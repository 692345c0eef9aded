package training

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Shrikant-Ganji/ecommerce-return-mlops/internal/domain/dataset"
	"github.com/Shrikant-Ganji/ecommerce-return-mlops/internal/domain/model"
	"github.com/Shrikant-Ganji/ecommerce-return-mlops/internal/infrastructure/config"
)

func testTrainingConfig() config.TrainingConfig {
	return config.TrainingConfig{
		TestFraction: 0.2,
		Seed:         42,
		LearningRate: 0.1,
		Iterations:   500,
		L2:           0.001,
	}
}

// syntheticRows returns rows where late deliveries with low review-driven
// payment values are returned, giving the model signal to learn.
func syntheticRows(n int) []dataset.FeatureRow {
	rows := make([]dataset.FeatureRow, n)
	for i := range rows {
		returned := i%2 == 1
		row := dataset.FeatureRow{
			OrderID:      fmt.Sprintf("o%03d", i),
			CategoryCode: i % 3,
		}
		if returned {
			row.DeliveryDelay = 6 + i%4
			row.DeliveryTime = 20 + i%5
			row.PaymentValue = 200 + float64(i)
			row.IsReturned = 1
		} else {
			row.DeliveryDelay = -3 - i%4
			row.DeliveryTime = 4 + i%3
			row.PaymentValue = 30 + float64(i)
		}
		rows[i] = row
	}
	return rows
}

func TestTrainer_Train(t *testing.T) {
	schema := dataset.NewSchema([]string{"a", "b", "c"})

	t.Run("produces a fitted artifact", func(t *testing.T) {
		trainer := NewTrainer(testTrainingConfig(), zap.NewNop())
		artifact, err := trainer.Train(syntheticRows(40), schema)
		require.NoError(t, err)

		assert.Equal(t, model.AlgorithmLogisticRegression, artifact.Algorithm)
		assert.True(t, artifact.Model.Fitted())
		assert.True(t, artifact.Schema.Matches(schema))
		assert.Equal(t, 0.1, artifact.Params.LearningRate)
	})

	t.Run("identical input reproduces identical weights", func(t *testing.T) {
		trainer := NewTrainer(testTrainingConfig(), zap.NewNop())
		rows := syntheticRows(40)

		a, err := trainer.Train(rows, schema)
		require.NoError(t, err)
		b, err := trainer.Train(rows, schema)
		require.NoError(t, err)

		assert.Equal(t, a.Model.Weights, b.Model.Weights)
		assert.Equal(t, a.Model.Bias, b.Model.Bias)
	})

	t.Run("empty partition errors", func(t *testing.T) {
		trainer := NewTrainer(testTrainingConfig(), zap.NewNop())
		_, err := trainer.Train(nil, schema)
		assert.ErrorIs(t, err, dataset.ErrEmptyPartition)
	})
}
