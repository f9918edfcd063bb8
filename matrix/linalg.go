// SPDX-License-Identifier: MIT

// Package matrix - linear-algebra kernels on *Dense.
//
// All kernels validate operands first (nil -> shape) and wrap failures with
// the operation tag via matrixErrorf, so callers can still match sentinels
// with errors.Is. Loop orders are fixed; identical inputs give identical bits.

package matrix

import (
	"fmt"
	"math"
)

// Operation tags for uniform error wrapping.
const (
	opGram    = "Gram"
	opMulTVec = "MulTVec"
	opLU      = "LU"
	opSolve   = "Solve"
	opInverse = "Inverse"
)

// PivotTolerance is the relative threshold under which an LU pivot is treated
// as zero: |U[i,i]| <= PivotTolerance * max_k |A[k,k]|.
const PivotTolerance = 1e-12

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Only call with err != nil.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// Gram computes XᵀX (c×c) for an r×c design matrix X without forming Xᵀ.
// Only the upper triangle is accumulated; the lower triangle is mirrored so
// the result is exactly symmetric.
//
// Complexity:
//   - Time O(r·c²), Space O(c²).
func Gram(x *Dense) (*Dense, error) {
	if x == nil {
		return nil, matrixErrorf(opGram, ErrNilMatrix)
	}
	c := x.c
	out, err := NewDense(c, c)
	if err != nil {
		return nil, matrixErrorf(opGram, err)
	}
	var (
		row  []float64
		i, j int
	)
	for r := 0; r < x.r; r++ {
		row = x.data[r*c : (r+1)*c]
		for i = 0; i < c; i++ {
			if row[i] == 0 {
				continue
			}
			for j = i; j < c; j++ {
				out.data[i*c+j] += row[i] * row[j]
			}
		}
	}
	for i = 0; i < c; i++ {
		for j = 0; j < i; j++ {
			out.data[i*c+j] = out.data[j*c+i]
		}
	}

	return out, nil
}

// MulTVec computes Xᵀy for an r×c matrix X and a vector y of length r.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (len(y) != X.Rows).
func MulTVec(x *Dense, y []float64) ([]float64, error) {
	if x == nil {
		return nil, matrixErrorf(opMulTVec, ErrNilMatrix)
	}
	if len(y) != x.r {
		return nil, matrixErrorf(opMulTVec, ErrDimensionMismatch)
	}
	out := make([]float64, x.c)
	for r := 0; r < x.r; r++ {
		yr := y[r]
		base := r * x.c
		for j := 0; j < x.c; j++ {
			out[j] += x.data[base+j] * yr
		}
	}

	return out, nil
}

// LU computes the Doolittle factorization A = L·U with unit diagonal on L (no pivoting).
//
// Implementation:
//   - Stage 1: Validate m (not nil, square); allocate L,U; set diag(L)=1.
//   - Stage 2: For i=0..n-1, build row i of U then column i of L in fixed order.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrSingular (|U[i,i]| under PivotTolerance).
//
// Complexity:
//   - Time O(n³), Space O(n²).
//
// Notes:
//   - Without pivoting this is only safe for matrices whose leading minors are
//     non-singular, which holds for the SPD Gram matrices of full-rank designs.
func LU(m *Dense) (*Dense, *Dense, error) {
	if m == nil {
		return nil, nil, matrixErrorf(opLU, ErrNilMatrix)
	}
	if m.r != m.c {
		return nil, nil, matrixErrorf(opLU, ErrNonSquare)
	}
	n := m.r
	l, _ := Identity(n)
	u, _ := NewDense(n, n)

	scale := 0.0
	for i := 0; i < n; i++ {
		scale = math.Max(scale, math.Abs(m.data[i*n+i]))
	}
	tol := PivotTolerance * scale

	var (
		i, j, k int
		sum     float64
		pivot   float64
	)
	for i = 0; i < n; i++ {
		for j = i; j < n; j++ {
			sum = 0
			for k = 0; k < i; k++ {
				sum += l.data[i*n+k] * u.data[k*n+j]
			}
			u.data[i*n+j] = m.data[i*n+j] - sum
		}
		pivot = u.data[i*n+i]
		if math.Abs(pivot) <= tol || math.IsNaN(pivot) {
			return nil, nil, matrixErrorf(opLU, ErrSingular)
		}
		for j = i + 1; j < n; j++ {
			sum = 0
			for k = 0; k < i; k++ {
				sum += l.data[j*n+k] * u.data[k*n+i]
			}
			l.data[j*n+i] = (m.data[j*n+i] - sum) / pivot
		}
	}

	return l, u, nil
}

// Solve returns x such that A·x = b, using LU followed by forward and
// backward substitution.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrDimensionMismatch (len(b) != n), ErrSingular.
func Solve(a *Dense, b []float64) ([]float64, error) {
	if a == nil {
		return nil, matrixErrorf(opSolve, ErrNilMatrix)
	}
	if a.r != a.c {
		return nil, matrixErrorf(opSolve, ErrNonSquare)
	}
	if len(b) != a.r {
		return nil, matrixErrorf(opSolve, ErrDimensionMismatch)
	}
	l, u, err := LU(a)
	if err != nil {
		return nil, matrixErrorf(opSolve, err)
	}

	return substitute(l, u, b), nil
}

// substitute solves L·y = b then U·x = y. L is unit lower triangular.
func substitute(l, u *Dense, b []float64) []float64 {
	n := l.r
	y := make([]float64, n)
	x := make([]float64, n)
	var (
		i, k int
		sum  float64
	)
	for i = 0; i < n; i++ {
		sum = 0
		for k = 0; k < i; k++ {
			sum += l.data[i*n+k] * y[k]
		}
		y[i] = b[i] - sum
	}
	for i = n - 1; i >= 0; i-- {
		sum = 0
		for k = i + 1; k < n; k++ {
			sum += u.data[i*n+k] * x[k]
		}
		x[i] = (y[i] - sum) / u.data[i*n+i]
	}

	return x
}

// Inverse returns A⁻¹ by solving A·x = e_col for every column of the identity.
// Prefer Solve when only A⁻¹·b is needed.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrSingular.
//
// Complexity:
//   - Time O(n³), Space O(n²).
func Inverse(m *Dense) (*Dense, error) {
	if m == nil {
		return nil, matrixErrorf(opInverse, ErrNilMatrix)
	}
	if m.r != m.c {
		return nil, matrixErrorf(opInverse, ErrNonSquare)
	}
	l, u, err := LU(m)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	n := m.r
	inv, _ := NewDense(n, n)
	e := make([]float64, n)
	for col := 0; col < n; col++ {
		for i := range e {
			e[i] = 0
		}
		e[col] = 1
		x := substitute(l, u, e)
		for i := 0; i < n; i++ {
			inv.data[i*n+col] = x[i]
		}
	}

	return inv, nil
}
