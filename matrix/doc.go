// SPDX-License-Identifier: MIT

// Package matrix provides the small dense linear-algebra kernel used by the
// parameter estimators: a row-major Dense matrix plus Gram, MulTVec, LU,
// Solve and Inverse.
//
// What:
//
//   - Dense: contiguous row-major float64 storage (offset = i*cols + j).
//   - Gram(X) = XᵀX computed directly, without materializing Xᵀ.
//   - LU: Doolittle factorization without pivoting (deterministic).
//   - Solve: A·x = b via LU + forward/backward substitution.
//   - Inverse: column-by-column solves against the identity; the diagonal of
//     (XᵀX)⁻¹ gives coefficient standard errors.
//
// Why:
//
//   - Linear Gaussian CPDs are fitted by ordinary least squares through the
//     normal equations (XᵀX)·β = Xᵀy. XᵀX is symmetric positive definite for
//     a full-rank design, so Doolittle without pivoting is numerically adequate
//     and keeps results bit-for-bit reproducible across runs.
//
// Errors:
//
//   - ErrInvalidDimensions  non-positive shape at construction
//   - ErrOutOfRange         At outside bounds
//   - ErrDimensionMismatch  incompatible operand shapes
//   - ErrNonSquare          LU/Solve/Inverse on a non-square matrix
//   - ErrSingular           (near-)zero pivot during factorization
//
// Complexity:
//
//   - Gram: O(r·c²), MulTVec: O(r·c), LU/Inverse: O(n³), Solve: O(n³) + O(n²).
package matrix
