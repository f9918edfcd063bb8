// SPDX-License-Identifier: MIT

// Package dataset holds the tabular training data consumed by scores and
// parameter estimators: a column-oriented DataFrame of continuous variables.
//
// Columns are stored as independent []float64 slices so estimators can read a
// variable and its evidence without copying. A DataFrame is immutable after
// construction; Column returns the backing slice and callers must not write to it.
package dataset

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

// Sentinel errors for dataset construction and access.
var (
	// ErrEmpty indicates a DataFrame without columns or rows.
	ErrEmpty = errors.New("dataset: empty data frame")

	// ErrShapeMismatch indicates ragged columns or a names/columns length mismatch.
	ErrShapeMismatch = errors.New("dataset: shape mismatch")

	// ErrDuplicateColumn indicates the same column name was used twice.
	ErrDuplicateColumn = errors.New("dataset: duplicate column")

	// ErrUnknownColumn indicates a lookup of a column that does not exist.
	ErrUnknownColumn = errors.New("dataset: unknown column")

	// ErrMissingValue indicates a NaN/Inf cell; estimators require complete data.
	ErrMissingValue = errors.New("dataset: missing or non-finite value")

	// ErrParse wraps CSV decoding failures.
	ErrParse = errors.New("dataset: parse error")

	// ErrBadFraction indicates a holdout fraction outside (0,1).
	ErrBadFraction = errors.New("dataset: holdout fraction must be in (0,1)")
)

// DataFrame is an immutable, column-oriented table of float64 variables.
type DataFrame struct {
	names []string
	index map[string]int
	cols  [][]float64
	rows  int
}

// New builds a DataFrame from column names and column data. Column slices are
// copied so later mutations by the caller do not leak in.
//
// Errors:
//   - ErrEmpty, ErrShapeMismatch, ErrDuplicateColumn, ErrMissingValue.
func New(names []string, cols [][]float64) (*DataFrame, error) {
	if len(names) == 0 || len(cols) == 0 {
		return nil, ErrEmpty
	}
	if len(names) != len(cols) {
		return nil, fmt.Errorf("New: %d names, %d columns: %w", len(names), len(cols), ErrShapeMismatch)
	}
	rows := len(cols[0])
	if rows == 0 {
		return nil, ErrEmpty
	}
	df := &DataFrame{
		names: make([]string, len(names)),
		index: make(map[string]int, len(names)),
		cols:  make([][]float64, len(cols)),
		rows:  rows,
	}
	for j, name := range names {
		if _, dup := df.index[name]; dup {
			return nil, fmt.Errorf("New: %q: %w", name, ErrDuplicateColumn)
		}
		if len(cols[j]) != rows {
			return nil, fmt.Errorf("New: column %q has %d rows, want %d: %w", name, len(cols[j]), rows, ErrShapeMismatch)
		}
		for i, v := range cols[j] {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("New: column %q row %d: %w", name, i, ErrMissingValue)
			}
		}
		df.names[j] = name
		df.index[name] = j
		df.cols[j] = append([]float64(nil), cols[j]...)
	}

	return df, nil
}

// NumRows returns the number of observations.
func (df *DataFrame) NumRows() int { return df.rows }

// NumColumns returns the number of variables.
func (df *DataFrame) NumColumns() int { return len(df.names) }

// Names returns a copy of the column names in order.
func (df *DataFrame) Names() []string { return append([]string(nil), df.names...) }

// Index returns the position of column name.
func (df *DataFrame) Index(name string) (int, bool) {
	j, ok := df.index[name]

	return j, ok
}

// Column returns the backing slice of column j (read-only), or nil if out of range.
func (df *DataFrame) Column(j int) []float64 {
	if j < 0 || j >= len(df.cols) {
		return nil
	}

	return df.cols[j]
}

// ColumnByName returns the backing slice of the named column.
func (df *DataFrame) ColumnByName(name string) ([]float64, error) {
	j, ok := df.index[name]
	if !ok {
		return nil, fmt.Errorf("ColumnByName(%q): %w", name, ErrUnknownColumn)
	}

	return df.cols[j], nil
}

// Mean returns the sample mean of column j.
func (df *DataFrame) Mean(j int) float64 {
	sum := 0.0
	for _, v := range df.cols[j] {
		sum += v
	}

	return sum / float64(df.rows)
}

// Std returns the sample standard deviation (N-1 denominator) of column j.
// A single-row frame has zero spread.
func (df *DataFrame) Std(j int) float64 {
	if df.rows < 2 {
		return 0
	}
	mu := df.Mean(j)
	ss := 0.0
	for _, v := range df.cols[j] {
		ss += (v - mu) * (v - mu)
	}

	return math.Sqrt(ss / float64(df.rows-1))
}

// Rows returns a new DataFrame with the selected row indices, in the given order.
func (df *DataFrame) Rows(idx []int) (*DataFrame, error) {
	if len(idx) == 0 {
		return nil, ErrEmpty
	}
	cols := make([][]float64, len(df.cols))
	for j, col := range df.cols {
		out := make([]float64, len(idx))
		for k, i := range idx {
			if i < 0 || i >= df.rows {
				return nil, fmt.Errorf("Rows: row %d of %d: %w", i, df.rows, ErrShapeMismatch)
			}
			out[k] = col[i]
		}
		cols[j] = out
	}

	return New(df.names, cols)
}

// HoldoutSplit shuffles rows with a seeded source and returns (train, test),
// where test holds round(fraction·N) rows (at least one, at most N-1).
//
// Errors:
//   - ErrBadFraction, ErrEmpty (fewer than two rows).
func (df *DataFrame) HoldoutSplit(fraction float64, seed int64) (*DataFrame, *DataFrame, error) {
	if !(fraction > 0 && fraction < 1) {
		return nil, nil, ErrBadFraction
	}
	if df.rows < 2 {
		return nil, nil, fmt.Errorf("HoldoutSplit: %w", ErrEmpty)
	}
	nTest := int(math.Round(fraction * float64(df.rows)))
	nTest = max(1, min(nTest, df.rows-1))

	perm := rand.New(rand.NewSource(seed)).Perm(df.rows)
	test, err := df.Rows(perm[:nTest])
	if err != nil {
		return nil, nil, err
	}
	train, err := df.Rows(perm[nTest:])
	if err != nil {
		return nil, nil, err
	}

	return train, test, nil
}
