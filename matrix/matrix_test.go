// SPDX-License-Identifier: MIT

package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/bnsearch/matrix"
)

const tol = 1e-9

// TestNewDense_InvalidShape verifies that non-positive shapes are rejected.
func TestNewDense_InvalidShape(t *testing.T) {
	_, err := matrix.NewDense(0, 3)
	assert.ErrorIs(t, err, matrix.ErrInvalidDimensions)
	_, err = matrix.NewDense(2, -1)
	assert.ErrorIs(t, err, matrix.ErrInvalidDimensions)
	_, err = matrix.NewDenseFrom(2, 2, []float64{1, 2, 3})
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

// TestDense_At checks bounds handling of the safe accessor.
func TestDense_At(t *testing.T) {
	m, err := matrix.NewDenseFrom(2, 3, []float64{1, 2, 3, 4, 5, 7.5})
	require.NoError(t, err)
	assert.Equal(t, 2, m.Rows())
	assert.Equal(t, 3, m.Cols())

	v, err := m.At(1, 2)
	require.NoError(t, err)
	assert.Equal(t, 7.5, v)

	_, err = m.At(2, 0)
	assert.ErrorIs(t, err, matrix.ErrOutOfRange)
	_, err = m.At(0, -1)
	assert.ErrorIs(t, err, matrix.ErrOutOfRange)
}

// TestGram_MulTVec checks XᵀX and Xᵀy against hand-computed values.
func TestGram_MulTVec(t *testing.T) {
	x, _ := matrix.NewDenseFrom(4, 2, []float64{1, 0.5, 1, -1, 1, 2, 1, 3})
	g, err := matrix.Gram(x)
	require.NoError(t, err)

	want := [2][2]float64{{4, 4.5}, {4.5, 14.25}}
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			gv, _ := g.At(i, j)
			assert.InDelta(t, want[i][j], gv, tol)
		}
	}

	xty, err := matrix.MulTVec(x, []float64{1, 2, 3, 4})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{10, 16.5}, xty, tol)

	_, err = matrix.MulTVec(x, []float64{1})
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.Gram(nil)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)
}

// TestSolve_Inverse checks Solve and Inverse on a small SPD system.
func TestSolve_Inverse(t *testing.T) {
	a, _ := matrix.NewDenseFrom(3, 3, []float64{
		4, 1, 2,
		1, 3, 0,
		2, 0, 5,
	})
	x, err := matrix.Solve(a, []float64{7, 4, 7})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 1, 1}, x, tol)

	// adj(A)/det(A) with det(A) = 43.
	want := [3][3]float64{
		{15, -5, -6},
		{-5, 16, 2},
		{-6, 2, 11},
	}
	inv, err := matrix.Inverse(a)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			v, _ := inv.At(i, j)
			assert.InDelta(t, want[i][j]/43, v, tol)
		}
	}
}

// TestLU_Singular verifies the pivot guard.
func TestLU_Singular(t *testing.T) {
	a, _ := matrix.NewDenseFrom(2, 2, []float64{1, 2, 2, 4})
	_, _, err := matrix.LU(a)
	assert.ErrorIs(t, err, matrix.ErrSingular)

	_, err = matrix.Solve(a, []float64{1, 1})
	assert.ErrorIs(t, err, matrix.ErrSingular)

	ns, _ := matrix.NewDense(2, 3)
	_, err = matrix.Inverse(ns)
	assert.ErrorIs(t, err, matrix.ErrNonSquare)
	_, err = matrix.Solve(nil, nil)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)
}
