// SPDX-License-Identifier: MIT

// Package testutil generates deterministic synthetic data sets for tests,
// examples and benchmarks.
package testutil

import (
	"math"
	"math/rand"

	"github.com/katalvlaran/bnsearch/dataset"
)

// ChainNames is the column order produced by Chain.
var ChainNames = []string{"a", "b", "c", "d"}

// Chain samples n rows of the linear Gaussian network a → b → c with an
// isolated node d:
//
//	a ~ N(0, 1)
//	b = 1 + 2·a + N(0, 1)
//	c = -1 + 1.5·b + N(0, 1)
//	d ~ N(3, 1)
//
// The same seed always yields the same frame. It panics if n < 1.
func Chain(n int, seed int64) *dataset.DataFrame {
	rng := rand.New(rand.NewSource(seed))
	a := make([]float64, n)
	b := make([]float64, n)
	c := make([]float64, n)
	d := make([]float64, n)
	for i := 0; i < n; i++ {
		a[i] = rng.NormFloat64()
		b[i] = 1 + 2*a[i] + rng.NormFloat64()
		c[i] = -1 + 1.5*b[i] + rng.NormFloat64()
		d[i] = 3 + rng.NormFloat64()
	}
	df, err := dataset.New(ChainNames, [][]float64{a, b, c, d})
	if err != nil {
		panic(err)
	}

	return df
}

// Nonlinear samples n rows where y is a step function of x, so a kernel
// estimate of y|x fits markedly better than a linear one:
//
//	x ~ N(0, 1)
//	y = 3·sign(x) + N(0, 0.3²)
//
// It panics if n < 1.
func Nonlinear(n int, seed int64) *dataset.DataFrame {
	rng := rand.New(rand.NewSource(seed))
	x := make([]float64, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		x[i] = rng.NormFloat64()
		y[i] = 3*math.Copysign(1, x[i]) + 0.3*rng.NormFloat64()
	}
	df, err := dataset.New([]string{"x", "y"}, [][]float64{x, y})
	if err != nil {
		panic(err)
	}

	return df
}
