package model

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/Shrikant-Ganji/ecommerce-return-mlops/internal/domain/dataset"
)

// Classifier is the capability set the trainer requires. Any algorithm that
// can fit a row-aligned design matrix against binary labels and score new
// rows is acceptable; the concrete choice is configuration.
type Classifier interface {
	// Fit trains on x and y, which must be row-aligned by position.
	Fit(x [][]float64, y []int) error
	// PredictRow scores one feature vector, returning a class in {0, 1}.
	PredictRow(x []float64) int
}

// AlgorithmLogisticRegression names the default classifier.
const AlgorithmLogisticRegression = "logistic_regression"

// LogisticRegressionParams are the hyperparameters of the default
// classifier. Seed is plumbed so stochastic variants stay reproducible; the
// default trainer is fully deterministic (zero initialization, fixed
// iteration count) and ignores it.
type LogisticRegressionParams struct {
	LearningRate float64 `json:"learning_rate"`
	Iterations   int     `json:"iterations"`
	L2           float64 `json:"l2"`
	Seed         int64   `json:"seed"`
}

// DefaultLogisticRegressionParams returns the stable default configuration.
func DefaultLogisticRegressionParams() LogisticRegressionParams {
	return LogisticRegressionParams{
		LearningRate: 0.1,
		Iterations:   500,
		L2:           0.001,
		Seed:         42,
	}
}

// LogisticRegression is a binary logistic-regression classifier fitted by
// batch gradient descent on standardized features.
type LogisticRegression struct {
	Params  LogisticRegressionParams `json:"params"`
	Weights []float64                `json:"weights"`
	Bias    float64                  `json:"bias"`
	// Means and Stds hold the per-column standardization fitted on the
	// training matrix and reapplied verbatim at prediction time.
	Means []float64 `json:"means"`
	Stds  []float64 `json:"stds"`
}

// NewLogisticRegression creates an unfitted classifier with the given
// hyperparameters.
func NewLogisticRegression(params LogisticRegressionParams) *LogisticRegression {
	return &LogisticRegression{Params: params}
}

// Fit trains the classifier. Identical inputs and parameters always produce
// identical weights.
func (m *LogisticRegression) Fit(x [][]float64, y []int) error {
	if len(x) == 0 {
		return dataset.ErrEmptyPartition
	}
	if len(x) != len(y) {
		return dataset.NewDomainError("ROW_MISMATCH", "Design matrix and labels are not row-aligned")
	}
	cols := len(x[0])

	m.fitScaler(x, cols)
	scaled := make([][]float64, len(x))
	for i, row := range x {
		scaled[i] = m.scale(row)
	}

	m.Weights = make([]float64, cols)
	m.Bias = 0
	n := float64(len(scaled))
	grad := make([]float64, cols)

	for iter := 0; iter < m.Params.Iterations; iter++ {
		for j := range grad {
			grad[j] = 0
		}
		gradBias := 0.0
		for i, row := range scaled {
			p := sigmoid(floats.Dot(m.Weights, row) + m.Bias)
			err := p - float64(y[i])
			floats.AddScaled(grad, err, row)
			gradBias += err
		}
		for j := range m.Weights {
			m.Weights[j] -= m.Params.LearningRate * (grad[j]/n + m.Params.L2*m.Weights[j])
		}
		m.Bias -= m.Params.LearningRate * gradBias / n
	}
	return nil
}

// PredictRow scores one feature vector at the 0.5 decision threshold.
func (m *LogisticRegression) PredictRow(x []float64) int {
	if m.Probability(x) >= 0.5 {
		return 1
	}
	return 0
}

// Probability returns the positive-class probability for one vector.
func (m *LogisticRegression) Probability(x []float64) float64 {
	return sigmoid(floats.Dot(m.Weights, m.scale(x)) + m.Bias)
}

// Fitted reports whether the classifier carries trained weights.
func (m *LogisticRegression) Fitted() bool {
	return len(m.Weights) > 0
}

func (m *LogisticRegression) fitScaler(x [][]float64, cols int) {
	m.Means = make([]float64, cols)
	m.Stds = make([]float64, cols)
	n := float64(len(x))
	for _, row := range x {
		floats.Add(m.Means, row)
	}
	floats.Scale(1/n, m.Means)
	for _, row := range x {
		for j, v := range row {
			d := v - m.Means[j]
			m.Stds[j] += d * d
		}
	}
	for j := range m.Stds {
		m.Stds[j] = math.Sqrt(m.Stds[j] / n)
		// Constant columns carry no signal; a unit deviation keeps the
		// scaled value at zero instead of dividing by zero.
		if m.Stds[j] == 0 {
			m.Stds[j] = 1
		}
	}
}

func (m *LogisticRegression) scale(x []float64) []float64 {
	out := make([]float64, len(x))
	for j, v := range x {
		out[j] = (v - m.Means[j]) / m.Stds[j]
	}
	return out
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}
