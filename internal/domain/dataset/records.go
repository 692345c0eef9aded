package dataset

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatusDelivered is the only order status that produces feature rows.
const OrderStatusDelivered = "delivered"

// timestampLayouts are the accepted layouts for raw order timestamps,
// most specific first.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02",
}

// NullTime is a timestamp column that may be empty in the raw CSV,
// e.g. the delivered date of an order still in transit.
type NullTime struct {
	Time  time.Time
	Valid bool
}

// UnmarshalCSV parses a raw timestamp cell, treating an empty cell as null.
func (t *NullTime) UnmarshalCSV(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		t.Time, t.Valid = time.Time{}, false
		return nil
	}
	var lastErr error
	for _, layout := range timestampLayouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			t.Time, t.Valid = parsed, true
			return nil
		}
		lastErr = err
	}
	return lastErr
}

// MarshalCSV renders the timestamp, or an empty cell when null.
func (t NullTime) MarshalCSV() (string, error) {
	if !t.Valid {
		return "", nil
	}
	return t.Time.Format(timestampLayouts[0]), nil
}

// NullInt is an integer column that may be empty in the raw CSV.
type NullInt struct {
	Int   int
	Valid bool
}

// UnmarshalCSV parses an integer cell, treating an empty cell as null.
func (n *NullInt) UnmarshalCSV(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		n.Int, n.Valid = 0, false
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	n.Int, n.Valid = v, true
	return nil
}

// MarshalCSV renders the integer, or an empty cell when null.
func (n NullInt) MarshalCSV() (string, error) {
	if !n.Valid {
		return "", nil
	}
	return strconv.Itoa(n.Int), nil
}

// Order is one row of the raw orders table.
type Order struct {
	OrderID           string   `csv:"order_id"`
	Status            string   `csv:"order_status"`
	PurchasedAt       NullTime `csv:"order_purchase_timestamp"`
	EstimatedDelivery NullTime `csv:"order_estimated_delivery_date"`
	DeliveredAt       NullTime `csv:"order_delivered_customer_date"`
}

// OrderItem is one row of the raw order-items table.
type OrderItem struct {
	OrderID   string `csv:"order_id"`
	ProductID string `csv:"product_id"`
}

// Product is one row of the raw products table.
type Product struct {
	ProductID    string `csv:"product_id"`
	CategoryName string `csv:"product_category_name"`
}

// Payment is one row of the raw payments table. Payment values are money
// and are kept as decimals until they cross the feature boundary.
type Payment struct {
	OrderID string          `csv:"order_id"`
	Value   decimal.Decimal `csv:"payment_value"`
}

// Review is one row of the raw reviews table.
type Review struct {
	OrderID string  `csv:"order_id"`
	Score   NullInt `csv:"review_score"`
}

// RawTables bundles the five raw source tables the feature builder joins.
type RawTables struct {
	Orders   []Order
	Items    []OrderItem
	Products []Product
	Payments []Payment
	Reviews  []Review
}
