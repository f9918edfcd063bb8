// SPDX-License-Identifier: MIT

package dataset_test

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/bnsearch/dataset"
)

func TestNew_Validation(t *testing.T) {
	_, err := dataset.New(nil, nil)
	assert.ErrorIs(t, err, dataset.ErrEmpty)

	_, err = dataset.New([]string{"a"}, [][]float64{{1}, {2}})
	assert.ErrorIs(t, err, dataset.ErrShapeMismatch)

	_, err = dataset.New([]string{"a", "b"}, [][]float64{{1, 2}, {3}})
	assert.ErrorIs(t, err, dataset.ErrShapeMismatch)

	_, err = dataset.New([]string{"a", "a"}, [][]float64{{1}, {2}})
	assert.ErrorIs(t, err, dataset.ErrDuplicateColumn)

	_, err = dataset.New([]string{"a"}, [][]float64{{1, math.NaN()}})
	assert.ErrorIs(t, err, dataset.ErrMissingValue)
}

func TestDataFrame_Accessors(t *testing.T) {
	src := []float64{1, 2, 3, 4}
	df, err := dataset.New([]string{"x", "y"}, [][]float64{src, {2, 2, 2, 2}})
	require.NoError(t, err)
	src[0] = 100 // constructor copies

	assert.Equal(t, 4, df.NumRows())
	assert.Equal(t, 2, df.NumColumns())
	assert.Equal(t, []string{"x", "y"}, df.Names())
	assert.Equal(t, []float64{1, 2, 3, 4}, df.Column(0))
	assert.Nil(t, df.Column(5))

	j, ok := df.Index("y")
	assert.True(t, ok)
	assert.Equal(t, 1, j)
	_, err = df.ColumnByName("z")
	assert.ErrorIs(t, err, dataset.ErrUnknownColumn)

	assert.InDelta(t, 2.5, df.Mean(0), 1e-12)
	assert.InDelta(t, math.Sqrt(5.0/3.0), df.Std(0), 1e-12)
	assert.Equal(t, 0.0, df.Std(1))
}

func TestReadCSV(t *testing.T) {
	in := "a, b\n1, 2.5\n-3,4e1\n"
	df, err := dataset.ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, df.Names())
	col, err := df.ColumnByName("b")
	require.NoError(t, err)
	assert.Equal(t, []float64{2.5, 40}, col)

	_, err = dataset.ReadCSV(strings.NewReader("a,b\n1,x\n"))
	assert.ErrorIs(t, err, dataset.ErrParse)

	_, err = dataset.ReadCSV(strings.NewReader(""))
	assert.ErrorIs(t, err, dataset.ErrEmpty)

	_, err = dataset.ReadCSV(strings.NewReader("a,b\n"))
	assert.ErrorIs(t, err, dataset.ErrEmpty)
}

func TestHoldoutSplit(t *testing.T) {
	n := 10
	col := make([]float64, n)
	for i := range col {
		col[i] = float64(i)
	}
	df, err := dataset.New([]string{"x"}, [][]float64{col})
	require.NoError(t, err)

	train, test, err := df.HoldoutSplit(0.3, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, train.NumRows())
	assert.Equal(t, 3, test.NumRows())

	seen := map[float64]bool{}
	for _, v := range append(append([]float64{}, train.Column(0)...), test.Column(0)...) {
		seen[v] = true
	}
	assert.Len(t, seen, n, "split must partition the rows")

	train2, _, err := df.HoldoutSplit(0.3, 7)
	require.NoError(t, err)
	assert.Equal(t, train.Column(0), train2.Column(0), "same seed, same split")

	_, _, err = df.HoldoutSplit(1.0, 7)
	assert.ErrorIs(t, err, dataset.ErrBadFraction)
}
