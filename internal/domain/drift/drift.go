// Package drift compares the column-wise distribution of a reference
// feature table against a current one. It is purely observational: nothing
// in the pipeline consumes its verdicts.
package drift

import (
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/Shrikant-Ganji/ecommerce-return-mlops/internal/domain/dataset"
)

// Default thresholds, matching the report the source system generated.
const (
	// DefaultThreshold is the KS statistic above which a column counts as
	// drifted.
	DefaultThreshold = 0.1
	// DefaultDatasetShare is the drifted-column share at which the whole
	// dataset is declared drifted.
	DefaultDatasetShare = 0.5
)

// ColumnResult is the drift signal for one shared column.
type ColumnResult struct {
	Column    string  `json:"column"`
	Statistic float64 `json:"statistic"`
	Drifted   bool    `json:"drifted"`
}

// Report is the aggregate drift verdict over two feature tables.
type Report struct {
	GeneratedAt        time.Time      `json:"generated_at"`
	Threshold          float64        `json:"threshold"`
	DatasetShare       float64        `json:"dataset_share"`
	ReferenceRows      int            `json:"reference_rows"`
	CurrentRows        int            `json:"current_rows"`
	Columns            []ColumnResult `json:"columns"`
	MissingInCurrent   []string       `json:"missing_in_current,omitempty"`
	MissingInReference []string       `json:"missing_in_reference,omitempty"`
	DriftedColumns     int            `json:"drifted_columns"`
	DatasetDrift       bool           `json:"dataset_drift"`
}

// Compare computes the per-column two-sample Kolmogorov–Smirnov statistic
// over the columns both tables share. Columns present in only one table are
// reported as schema mismatches, never silently ignored. Either table being
// empty is an error.
func Compare(reference, current map[string][]float64, threshold, datasetShare float64) (Report, error) {
	if len(reference) == 0 || len(current) == 0 {
		return Report{}, dataset.ErrEmptyTable
	}
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	if datasetShare <= 0 {
		datasetShare = DefaultDatasetShare
	}

	report := Report{
		GeneratedAt:   time.Now().UTC(),
		Threshold:     threshold,
		DatasetShare:  datasetShare,
		ReferenceRows: rowCount(reference),
		CurrentRows:   rowCount(current),
	}

	shared := make([]string, 0, len(reference))
	for name := range reference {
		if _, ok := current[name]; ok {
			shared = append(shared, name)
		} else {
			report.MissingInCurrent = append(report.MissingInCurrent, name)
		}
	}
	for name := range current {
		if _, ok := reference[name]; !ok {
			report.MissingInReference = append(report.MissingInReference, name)
		}
	}
	sort.Strings(shared)
	sort.Strings(report.MissingInCurrent)
	sort.Strings(report.MissingInReference)

	for _, name := range shared {
		ref, cur := reference[name], current[name]
		statistic := ksStatistic(ref, cur)
		result := ColumnResult{
			Column:    name,
			Statistic: statistic,
			Drifted:   statistic > threshold,
		}
		if result.Drifted {
			report.DriftedColumns++
		}
		report.Columns = append(report.Columns, result)
	}

	if len(report.Columns) > 0 {
		share := float64(report.DriftedColumns) / float64(len(report.Columns))
		report.DatasetDrift = share >= datasetShare
	}
	return report, nil
}

// rowCount reports the length of any column; all columns in a table read
// from one CSV have the same length.
func rowCount(table map[string][]float64) int {
	for _, column := range table {
		return len(column)
	}
	return 0
}

// ksStatistic computes the two-sample KS statistic on sorted copies; the
// inputs themselves are left untouched.
func ksStatistic(a, b []float64) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	as := append([]float64(nil), a...)
	bs := append([]float64(nil), b...)
	sort.Float64s(as)
	sort.Float64s(bs)
	return stat.KolmogorovSmirnov(as, nil, bs, nil)
}
