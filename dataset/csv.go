// SPDX-License-Identifier: MIT

package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ReadCSV decodes a comma-separated table with a header row of column names.
// Every cell must parse as a finite float64.
//
// Errors:
//   - ErrParse (wrapping the csv/strconv cause), plus any New error.
func ReadCSV(r io.Reader) (*DataFrame, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmpty
		}
		return nil, fmt.Errorf("%w: header: %v", ErrParse, err)
	}
	names := make([]string, len(header))
	for j, h := range header {
		names[j] = strings.TrimSpace(h)
	}
	cols := make([][]float64, len(names))

	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrParse, line, err)
		}
		for j, cell := range rec {
			v, perr := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if perr != nil {
				return nil, fmt.Errorf("%w: line %d column %q: %v", ErrParse, line, names[j], perr)
			}
			cols[j] = append(cols[j], v)
		}
	}

	return New(names, cols)
}

// ReadCSVFile opens path and decodes it with ReadCSV.
func ReadCSVFile(path string) (*DataFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: open %s: %w", path, err)
	}
	defer f.Close()

	return ReadCSV(f)
}
