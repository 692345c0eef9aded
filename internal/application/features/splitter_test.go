package features

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shrikant-Ganji/ecommerce-return-mlops/internal/domain/dataset"
	"github.com/Shrikant-Ganji/ecommerce-return-mlops/internal/infrastructure/storage"
)

func featureRows(n int) []dataset.FeatureRow {
	rows := make([]dataset.FeatureRow, n)
	for i := range rows {
		rows[i] = dataset.FeatureRow{
			OrderID:      fmt.Sprintf("o%03d", i),
			DeliveryTime: i,
			PaymentValue: float64(i) * 1.5,
		}
	}
	return rows
}

func TestSplitter_Split(t *testing.T) {
	t.Run("size arithmetic", func(t *testing.T) {
		s := NewSplitter(0.2, 42)
		train, test := s.Split(featureRows(10))
		assert.Len(t, train, 8)
		assert.Len(t, test, 2)
	})

	t.Run("rounds the train size", func(t *testing.T) {
		// 7 rows at 0.2 hold-out: round(5.6) = 6 train rows.
		s := NewSplitter(0.2, 42)
		train, test := s.Split(featureRows(7))
		assert.Len(t, train, 6)
		assert.Len(t, test, 1)
	})

	t.Run("same seed and input produce identical partitions", func(t *testing.T) {
		a := NewSplitter(0.2, 42)
		b := NewSplitter(0.2, 42)
		rows := featureRows(50)

		trainA, testA := a.Split(rows)
		trainB, testB := b.Split(rows)
		assert.Equal(t, trainA, trainB)
		assert.Equal(t, testA, testB)
	})

	t.Run("different seeds shuffle differently", func(t *testing.T) {
		rows := featureRows(50)
		trainA, _ := NewSplitter(0.2, 1).Split(rows)
		trainB, _ := NewSplitter(0.2, 2).Split(rows)
		assert.NotEqual(t, trainA, trainB)
	})

	t.Run("partitions cover the input exactly once", func(t *testing.T) {
		rows := featureRows(25)
		train, test := NewSplitter(0.2, 42).Split(rows)

		seen := make(map[string]int)
		for _, r := range train {
			seen[r.OrderID]++
		}
		for _, r := range test {
			seen[r.OrderID]++
		}
		require.Len(t, seen, 25)
		for id, count := range seen {
			assert.Equal(t, 1, count, "order %s", id)
		}
	})

	t.Run("invalid fraction falls back to default", func(t *testing.T) {
		s := NewSplitter(0, 42)
		assert.Equal(t, 0.2, s.TestFraction)
	})
}

func TestSplitter_WritePartitions(t *testing.T) {
	dir := t.TempDir()
	s := NewSplitter(0.2, 42)
	train, test := s.Split(featureRows(10))

	require.NoError(t, s.WritePartitions(dir, train, test))

	gotTrain, err := storage.ReadTable[dataset.FeatureRow](filepath.Join(dir, TrainFile))
	require.NoError(t, err)
	assert.Equal(t, train, gotTrain)

	gotTest, err := storage.ReadTable[dataset.FeatureRow](filepath.Join(dir, TestFile))
	require.NoError(t, err)
	assert.Equal(t, test, gotTest)
}

func TestSchemaPersistence(t *testing.T) {
	t.Run("round-trips through disk", func(t *testing.T) {
		dir := t.TempDir()
		schema := dataset.NewSchema([]string{"books", "electronics"})

		require.NoError(t, SaveSchema(dir, schema))

		loaded, err := LoadSchema(dir)
		require.NoError(t, err)
		assert.True(t, schema.Matches(loaded))
	})

	t.Run("missing schema file errors", func(t *testing.T) {
		_, err := LoadSchema(t.TempDir())
		assert.ErrorIs(t, err, dataset.ErrMissingSource)
	})

	t.Run("version mismatch is rejected", func(t *testing.T) {
		dir := t.TempDir()
		schema := dataset.NewSchema([]string{"books"})
		schema.Version = dataset.SchemaVersion + 1
		require.NoError(t, SaveSchema(dir, schema))

		_, err := LoadSchema(dir)
		assert.ErrorIs(t, err, dataset.ErrSchemaMismatch)
	})
}
