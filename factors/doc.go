// SPDX-License-Identifier: MIT

// Package factors provides the conditional probability distributions a
// semiparametric Bayesian network can place on a node, and their estimators.
//
// Two node types exist:
//
//   - LinearGaussianType: x | pa ~ N(β₀ + Σ βᵢ·paᵢ, σ²), fitted by ordinary
//     least squares over the normal equations (matrix.Gram, matrix.Solve).
//   - CKDEType: a conditional kernel density estimate f(x|pa) = f(x,pa)/f(pa),
//     both terms product-Gaussian KDEs sharing one normal-reference bandwidth.
//
// Every fitted factor implements CPD, so scores can fit a node of either type
// and evaluate its log-likelihood on held-out data without a type switch.
//
// Fitting fails with ErrDegenerate when the data cannot support the factor
// (singular design, zero residual variance, constant KDE column); callers in
// learning/scores translate that into a -Inf local score.
package factors
