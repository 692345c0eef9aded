package model

import "github.com/Shrikant-Ganji/ecommerce-return-mlops/internal/domain/dataset"

// Metrics holds the evaluation scores over a held-out partition.
type Metrics struct {
	Accuracy float64 `json:"accuracy"`
	F1       float64 `json:"f1_score"`
}

// Score computes accuracy and F1 for the positive class. An empty or
// misaligned input is an error, never a NaN metric.
func Score(yTrue, yPred []int) (Metrics, error) {
	if len(yTrue) == 0 {
		return Metrics{}, dataset.ErrEmptyPartition
	}
	if len(yTrue) != len(yPred) {
		return Metrics{}, dataset.NewDomainError("ROW_MISMATCH", "Labels and predictions are not row-aligned")
	}

	var tp, fp, fn, correct float64
	for i, truth := range yTrue {
		pred := yPred[i]
		if truth == pred {
			correct++
		}
		switch {
		case pred == 1 && truth == 1:
			tp++
		case pred == 1 && truth == 0:
			fp++
		case pred == 0 && truth == 1:
			fn++
		}
	}

	m := Metrics{Accuracy: correct / float64(len(yTrue))}
	// F1 is defined as 0 when the positive class is never predicted and
	// never present, matching the evaluator the source system used.
	if tp > 0 {
		precision := tp / (tp + fp)
		recall := tp / (tp + fn)
		m.F1 = 2 * precision * recall / (precision + recall)
	}
	return m, nil
}
