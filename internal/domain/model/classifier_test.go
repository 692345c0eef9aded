package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shrikant-Ganji/ecommerce-return-mlops/internal/domain/dataset"
)

// separableData returns a linearly separable binary problem: positives sit
// well above the decision boundary on the first feature.
func separableData() ([][]float64, []int) {
	x := [][]float64{
		{-5, 1, 10, 0},
		{-4, 2, 12, 1},
		{-6, 1, 9, 0},
		{-5, 3, 11, 1},
		{5, 8, 200, 0},
		{6, 9, 210, 1},
		{4, 7, 190, 0},
		{5, 8, 205, 1},
	}
	y := []int{0, 0, 0, 0, 1, 1, 1, 1}
	return x, y
}

func TestLogisticRegression_Fit(t *testing.T) {
	t.Run("separates a linearly separable problem", func(t *testing.T) {
		x, y := separableData()
		m := NewLogisticRegression(DefaultLogisticRegressionParams())
		require.NoError(t, m.Fit(x, y))
		require.True(t, m.Fitted())

		for i, row := range x {
			assert.Equal(t, y[i], m.PredictRow(row), "row %d", i)
		}
	})

	t.Run("identical inputs produce identical weights", func(t *testing.T) {
		x, y := separableData()
		a := NewLogisticRegression(DefaultLogisticRegressionParams())
		b := NewLogisticRegression(DefaultLogisticRegressionParams())
		require.NoError(t, a.Fit(x, y))
		require.NoError(t, b.Fit(x, y))

		assert.Equal(t, a.Weights, b.Weights)
		assert.Equal(t, a.Bias, b.Bias)
		assert.Equal(t, a.Means, b.Means)
		assert.Equal(t, a.Stds, b.Stds)
	})

	t.Run("empty matrix errors", func(t *testing.T) {
		m := NewLogisticRegression(DefaultLogisticRegressionParams())
		err := m.Fit(nil, nil)
		assert.ErrorIs(t, err, dataset.ErrEmptyPartition)
	})

	t.Run("misaligned labels error", func(t *testing.T) {
		m := NewLogisticRegression(DefaultLogisticRegressionParams())
		err := m.Fit([][]float64{{1, 2, 3, 4}}, []int{0, 1})
		assert.Error(t, err)
	})

	t.Run("constant column does not divide by zero", func(t *testing.T) {
		x := [][]float64{
			{0, 7, 1, 0},
			{0, 7, 2, 1},
			{0, 7, 100, 0},
			{0, 7, 110, 1},
		}
		y := []int{0, 0, 1, 1}
		m := NewLogisticRegression(DefaultLogisticRegressionParams())
		require.NoError(t, m.Fit(x, y))

		p := m.Probability([]float64{0, 7, 50, 0})
		assert.False(t, p != p, "probability must not be NaN")
	})
}

func TestLogisticRegression_Probability(t *testing.T) {
	x, y := separableData()
	m := NewLogisticRegression(DefaultLogisticRegressionParams())
	require.NoError(t, m.Fit(x, y))

	for _, row := range x {
		p := m.Probability(row)
		assert.GreaterOrEqual(t, p, 0.0)
		assert.LessOrEqual(t, p, 1.0)
	}
}

func TestLogisticRegression_PredictRow(t *testing.T) {
	x, y := separableData()
	m := NewLogisticRegression(DefaultLogisticRegressionParams())
	require.NoError(t, m.Fit(x, y))

	for _, row := range x {
		pred := m.PredictRow(row)
		assert.Contains(t, []int{0, 1}, pred)
	}
}
