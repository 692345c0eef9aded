package drift

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shrikant-Ganji/ecommerce-return-mlops/internal/domain/dataset"
)

func sample(seed int64, n int, offset float64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, n)
	for i := range out {
		out[i] = rng.NormFloat64() + offset
	}
	return out
}

func TestCompare(t *testing.T) {
	t.Run("stable columns are not drifted", func(t *testing.T) {
		reference := map[string][]float64{
			"payment_value": sample(1, 500, 0),
			"delivery_time": sample(2, 500, 0),
		}
		current := map[string][]float64{
			"payment_value": sample(3, 500, 0),
			"delivery_time": sample(4, 500, 0),
		}

		report, err := Compare(reference, current, DefaultThreshold, DefaultDatasetShare)
		require.NoError(t, err)
		require.Len(t, report.Columns, 2)
		for _, col := range report.Columns {
			assert.False(t, col.Drifted, "column %s", col.Column)
		}
		assert.Equal(t, 0, report.DriftedColumns)
		assert.False(t, report.DatasetDrift)
	})

	t.Run("shifted columns drift the dataset", func(t *testing.T) {
		reference := map[string][]float64{
			"payment_value": sample(1, 500, 0),
			"delivery_time": sample(2, 500, 0),
		}
		current := map[string][]float64{
			"payment_value": sample(3, 500, 3),
			"delivery_time": sample(4, 500, 3),
		}

		report, err := Compare(reference, current, DefaultThreshold, DefaultDatasetShare)
		require.NoError(t, err)
		assert.Equal(t, 2, report.DriftedColumns)
		assert.True(t, report.DatasetDrift)
	})

	t.Run("columns in only one table are schema mismatches", func(t *testing.T) {
		reference := map[string][]float64{
			"payment_value": sample(1, 100, 0),
			"only_ref":      sample(2, 100, 0),
		}
		current := map[string][]float64{
			"payment_value": sample(3, 100, 0),
			"only_cur":      sample(4, 100, 0),
		}

		report, err := Compare(reference, current, DefaultThreshold, DefaultDatasetShare)
		require.NoError(t, err)
		assert.Equal(t, []string{"only_ref"}, report.MissingInCurrent)
		assert.Equal(t, []string{"only_cur"}, report.MissingInReference)
		require.Len(t, report.Columns, 1)
		assert.Equal(t, "payment_value", report.Columns[0].Column)
	})

	t.Run("row counts survive a full schema mismatch", func(t *testing.T) {
		reference := map[string][]float64{"only_ref": sample(1, 40, 0)}
		current := map[string][]float64{"only_cur": sample(2, 60, 0)}

		report, err := Compare(reference, current, DefaultThreshold, DefaultDatasetShare)
		require.NoError(t, err)
		assert.Empty(t, report.Columns)
		assert.Equal(t, 40, report.ReferenceRows)
		assert.Equal(t, 60, report.CurrentRows)
	})

	t.Run("empty table errors", func(t *testing.T) {
		_, err := Compare(nil, map[string][]float64{"a": {1}}, 0, 0)
		assert.ErrorIs(t, err, dataset.ErrEmptyTable)
	})

	t.Run("column results are sorted by name", func(t *testing.T) {
		reference := map[string][]float64{
			"b": sample(1, 50, 0),
			"a": sample(2, 50, 0),
		}
		current := map[string][]float64{
			"b": sample(3, 50, 0),
			"a": sample(4, 50, 0),
		}

		report, err := Compare(reference, current, DefaultThreshold, DefaultDatasetShare)
		require.NoError(t, err)
		require.Len(t, report.Columns, 2)
		assert.Equal(t, "a", report.Columns[0].Column)
		assert.Equal(t, "b", report.Columns[1].Column)
	})
}

func TestKSStatistic(t *testing.T) {
	t.Run("identical samples have zero statistic", func(t *testing.T) {
		a := []float64{3, 1, 2, 5, 4}
		b := []float64{1, 2, 3, 4, 5}
		assert.InDelta(t, 0, ksStatistic(a, b), 1e-12)
	})

	t.Run("disjoint samples have statistic one", func(t *testing.T) {
		a := []float64{1, 2, 3}
		b := []float64{100, 101, 102}
		assert.InDelta(t, 1, ksStatistic(a, b), 1e-12)
	})

	t.Run("inputs stay unsorted", func(t *testing.T) {
		a := []float64{3, 1, 2}
		b := []float64{2, 1, 3}
		ksStatistic(a, b)
		assert.Equal(t, []float64{3, 1, 2}, a)
		assert.Equal(t, []float64{2, 1, 3}, b)
	})
}
