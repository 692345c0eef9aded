// Package features turns the five raw order tables into the model's
// feature table and partitions it for training.
package features

import (
	"math"
	"path/filepath"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Shrikant-Ganji/ecommerce-return-mlops/internal/domain/dataset"
	"github.com/Shrikant-Ganji/ecommerce-return-mlops/internal/infrastructure/storage"
)

// Raw table file names under the raw-data directory.
const (
	RawFileOrders   = "olist_orders.csv"
	RawFileItems    = "olist_order_items.csv"
	RawFileProducts = "olist_products.csv"
	RawFilePayments = "olist_order_payments.csv"
	RawFileReviews  = "olist_order_reviews.csv"
)

// Partition file names under the processed-data directory.
const (
	TrainFile  = "train.csv"
	TestFile   = "test.csv"
	SchemaFile = "schema.json"
)

// LoadRawTables reads the five raw source tables from rawDir. The first
// missing file aborts the load with an error naming its path.
func LoadRawTables(rawDir string) (dataset.RawTables, error) {
	var raw dataset.RawTables
	var err error

	if raw.Orders, err = storage.ReadTable[dataset.Order](filepath.Join(rawDir, RawFileOrders)); err != nil {
		return dataset.RawTables{}, err
	}
	if raw.Items, err = storage.ReadTable[dataset.OrderItem](filepath.Join(rawDir, RawFileItems)); err != nil {
		return dataset.RawTables{}, err
	}
	if raw.Products, err = storage.ReadTable[dataset.Product](filepath.Join(rawDir, RawFileProducts)); err != nil {
		return dataset.RawTables{}, err
	}
	if raw.Payments, err = storage.ReadTable[dataset.Payment](filepath.Join(rawDir, RawFilePayments)); err != nil {
		return dataset.RawTables{}, err
	}
	if raw.Reviews, err = storage.ReadTable[dataset.Review](filepath.Join(rawDir, RawFileReviews)); err != nil {
		return dataset.RawTables{}, err
	}
	return raw, nil
}

// BuildStats makes the builder's row accounting observable: how many rows
// each stage produced and how many were dropped or defaulted.
type BuildStats struct {
	JoinedRows      int `json:"joined_rows"`
	DeliveredRows   int `json:"delivered_rows"`
	DroppedNull     int `json:"dropped_null"`
	DefaultedLabels int `json:"defaulted_labels"` // null review score mapped to "not returned"
	FeatureRows     int `json:"feature_rows"`
}

// Builder derives the feature table from the raw tables.
type Builder struct {
	logger *zap.Logger
}

// NewBuilder creates a Builder.
func NewBuilder(logger *zap.Logger) *Builder {
	return &Builder{logger: logger.Named("features")}
}

// joinedRow is one row of the joined raw tables before derivation. Nil
// pointers mark values missing after the left joins.
type joinedRow struct {
	orderID     string
	status      string
	purchasedAt dataset.NullTime
	estimated   dataset.NullTime
	delivered   dataset.NullTime
	category    *string
	payment     *decimal.Decimal
	reviewScore *int
}

// Build joins, filters, derives, drops and encodes, in that fixed order.
// An empty result is not an error here; callers that need rows must check.
func (b *Builder) Build(raw dataset.RawTables) ([]dataset.FeatureRow, dataset.Schema, BuildStats, error) {
	joined := join(raw)

	stats := BuildStats{JoinedRows: len(joined)}

	// Keep only delivered orders.
	delivered := joined[:0]
	for _, row := range joined {
		if row.status == dataset.OrderStatusDelivered {
			delivered = append(delivered, row)
		}
	}
	stats.DeliveredRows = len(delivered)

	// Derive columns and drop rows with any null predictor. The label can
	// never be null: a missing review score is, by policy, "not returned".
	type pending struct {
		row      dataset.FeatureRow
		category string
	}
	kept := make([]pending, 0, len(delivered))
	for _, row := range delivered {
		delay, delayOK := dayDiff(row.delivered, row.estimated)
		elapsed, elapsedOK := dayDiff(row.delivered, row.purchasedAt)
		if !delayOK || !elapsedOK || row.category == nil || row.payment == nil {
			stats.DroppedNull++
			continue
		}

		label := 0
		if row.reviewScore == nil {
			stats.DefaultedLabels++
		} else if *row.reviewScore == 1 || *row.reviewScore == 2 {
			label = 1
		}

		payment, _ := row.payment.Float64()
		kept = append(kept, pending{
			row: dataset.FeatureRow{
				OrderID:       row.orderID,
				DeliveryDelay: delay,
				DeliveryTime:  elapsed,
				PaymentValue:  payment,
				IsReturned:    label,
			},
			category: *row.category,
		})
	}

	// The category mapping is assigned over the labels that survive the
	// drop, so the schema reflects exactly what the model will see.
	labels := make([]string, len(kept))
	for i, p := range kept {
		labels[i] = p.category
	}
	schema := dataset.NewSchema(labels)

	rows := make([]dataset.FeatureRow, len(kept))
	for i, p := range kept {
		code, err := schema.EncodeCategory(p.category)
		if err != nil {
			return nil, dataset.Schema{}, stats, err
		}
		p.row.CategoryCode = code
		rows[i] = p.row
	}
	stats.FeatureRows = len(rows)

	b.logger.Info("feature table built",
		zap.Int("joined_rows", stats.JoinedRows),
		zap.Int("delivered_rows", stats.DeliveredRows),
		zap.Int("dropped_null", stats.DroppedNull),
		zap.Int("defaulted_labels", stats.DefaultedLabels),
		zap.Int("feature_rows", stats.FeatureRows),
		zap.Int("categories", len(schema.Categories)),
	)
	return rows, schema, stats, nil
}

// join inner-joins orders to items, then left-joins products, payments and
// reviews. Multiple payments or reviews for one order expand the row set,
// matching relational join semantics; an unmatched side contributes nulls.
func join(raw dataset.RawTables) []joinedRow {
	ordersByID := make(map[string]dataset.Order, len(raw.Orders))
	for _, o := range raw.Orders {
		ordersByID[o.OrderID] = o
	}
	categoryByProduct := make(map[string]string, len(raw.Products))
	for _, p := range raw.Products {
		categoryByProduct[p.ProductID] = p.CategoryName
	}
	paymentsByOrder := make(map[string][]decimal.Decimal)
	for _, p := range raw.Payments {
		paymentsByOrder[p.OrderID] = append(paymentsByOrder[p.OrderID], p.Value)
	}
	reviewsByOrder := make(map[string][]dataset.NullInt)
	for _, r := range raw.Reviews {
		reviewsByOrder[r.OrderID] = append(reviewsByOrder[r.OrderID], r.Score)
	}

	var out []joinedRow
	for _, item := range raw.Items {
		order, ok := ordersByID[item.OrderID]
		if !ok {
			continue // inner join: items without an order are dropped
		}

		base := joinedRow{
			orderID:     order.OrderID,
			status:      order.Status,
			purchasedAt: order.PurchasedAt,
			estimated:   order.EstimatedDelivery,
			delivered:   order.DeliveredAt,
		}
		if category, ok := categoryByProduct[item.ProductID]; ok && category != "" {
			base.category = &category
		}

		payments := paymentsByOrder[order.OrderID]
		reviews := reviewsByOrder[order.OrderID]
		if len(payments) == 0 {
			payments = []decimal.Decimal{{}}
		}
		if len(reviews) == 0 {
			reviews = []dataset.NullInt{{}}
		}

		hasPayment := len(paymentsByOrder[order.OrderID]) > 0
		for pi := range payments {
			row := base
			if hasPayment {
				row.payment = &payments[pi]
			}
			for ri := range reviews {
				expanded := row
				if reviews[ri].Valid {
					score := reviews[ri].Int
					expanded.reviewScore = &score
				}
				out = append(out, expanded)
			}
		}
	}
	return out
}

// dayDiff returns the whole-day difference between two timestamps, floored
// toward negative infinity the way the source system's date arithmetic
// behaved. Either side being null makes the result underivable.
func dayDiff(a, b dataset.NullTime) (int, bool) {
	if !a.Valid || !b.Valid {
		return 0, false
	}
	return int(math.Floor(a.Time.Sub(b.Time).Hours() / 24)), true
}
