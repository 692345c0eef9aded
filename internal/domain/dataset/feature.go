package dataset

import "fmt"

// Canonical feature and label column names. The model matrix uses exactly
// the four feature columns, in this order; order_id is carried in partition
// files for traceability only.
const (
	ColumnOrderID       = "order_id"
	ColumnDeliveryDelay = "delivery_delay"
	ColumnDeliveryTime  = "delivery_time"
	ColumnPaymentValue  = "payment_value"
	ColumnCategory      = "product_category_name"
	ColumnLabel         = "is_returned"
)

// FeatureNames returns the canonical feature-column ordering.
func FeatureNames() []string {
	return []string{
		ColumnDeliveryDelay,
		ColumnDeliveryTime,
		ColumnPaymentValue,
		ColumnCategory,
	}
}

// FeatureRow is one derived record: four predictors plus the binary label,
// produced only for delivered orders whose joins are complete.
type FeatureRow struct {
	OrderID       string  `csv:"order_id" json:"order_id"`
	DeliveryDelay int     `csv:"delivery_delay" json:"delivery_delay"`
	DeliveryTime  int     `csv:"delivery_time" json:"delivery_time"`
	PaymentValue  float64 `csv:"payment_value" json:"payment_value"`
	CategoryCode  int     `csv:"product_category_name" json:"product_category_name"`
	IsReturned    int     `csv:"is_returned" json:"is_returned"`
}

// Vector returns the predictor values in canonical column order.
func (r FeatureRow) Vector() []float64 {
	return []float64{
		float64(r.DeliveryDelay),
		float64(r.DeliveryTime),
		r.PaymentValue,
		float64(r.CategoryCode),
	}
}

// Matrix converts feature rows into a row-aligned design matrix and label
// vector, both in input order.
func Matrix(rows []FeatureRow) (x [][]float64, y []int) {
	x = make([][]float64, len(rows))
	y = make([]int, len(rows))
	for i, r := range rows {
		x[i] = r.Vector()
		y[i] = r.IsReturned
	}
	return x, y
}

// Column extracts one feature column as a float slice, for distribution
// comparison. The label column is addressable as well.
func Column(rows []FeatureRow, name string) ([]float64, error) {
	out := make([]float64, len(rows))
	for i, r := range rows {
		switch name {
		case ColumnDeliveryDelay:
			out[i] = float64(r.DeliveryDelay)
		case ColumnDeliveryTime:
			out[i] = float64(r.DeliveryTime)
		case ColumnPaymentValue:
			out[i] = r.PaymentValue
		case ColumnCategory:
			out[i] = float64(r.CategoryCode)
		case ColumnLabel:
			out[i] = float64(r.IsReturned)
		default:
			return nil, fmt.Errorf("unknown feature column %q", name)
		}
	}
	return out, nil
}
