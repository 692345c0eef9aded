// Package storage reads and writes the pipeline's on-disk tables. All
// tables are CSV files with a header row; struct mapping is by csv tag.
package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gocarina/gocsv"

	"github.com/Shrikant-Ganji/ecommerce-return-mlops/internal/domain/dataset"
)

// ReadTable reads a whole CSV table into tagged structs. A missing file is
// reported as a missing-source error naming the path, so a misconfigured
// pipeline fails on its first read.
func ReadTable[T any](path string) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", dataset.ErrMissingSource, path)
		}
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var rows []T
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return rows, nil
}

// WriteTable writes tagged structs as a CSV table, creating parent
// directories. An existing file is replaced wholesale.
func WriteTable[T any](path string, rows []T) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := gocsv.MarshalFile(&rows, f); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// ReadHeader returns a CSV table's column names without reading its rows.
func ReadHeader(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", dataset.ErrMissingSource, path)
		}
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	header, err := csv.NewReader(f).Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: %s", dataset.ErrEmptyTable, path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading header of %s: %w", path, err)
	}
	return header, nil
}

// ReadNumericColumns reads a CSV table into per-column float slices, keyed
// by header name. Columns named in skip, and columns with any non-numeric
// cell, are left out. Used by the drift monitor, which must accept feature
// tables whose column sets may disagree.
func ReadNumericColumns(path string, skip ...string) (map[string][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", dataset.ErrMissingSource, path)
		}
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: %s", dataset.ErrEmptyTable, path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading header of %s: %w", path, err)
	}

	skipped := make(map[string]bool, len(skip))
	for _, name := range skip {
		skipped[name] = true
	}

	columns := make(map[string][]float64, len(header))
	nonNumeric := make(map[string]bool)
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		for i, cell := range record {
			name := header[i]
			if skipped[name] || nonNumeric[name] {
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				nonNumeric[name] = true
				delete(columns, name)
				continue
			}
			columns[name] = append(columns[name], v)
		}
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: %s has no numeric columns", dataset.ErrEmptyTable, path)
	}
	return columns, nil
}
