// SPDX-License-Identifier: MIT

package scores

import (
	"math"

	"github.com/katalvlaran/bnsearch/dataset"
	"github.com/katalvlaran/bnsearch/factors"
	"github.com/katalvlaran/bnsearch/models"
)

// BIC is the Bayesian information criterion for Gaussian networks:
//
//	local(v, pa) = loglik(v | pa) − ½·log(N)·(|pa| + 2)
//
// where loglik is evaluated on the training data at the least-squares fit and
// |pa|+2 counts the intercept, the coefficients and the variance.
type BIC struct {
	df *dataset.DataFrame
}

// NewBIC returns a BIC score over df.
func NewBIC(df *dataset.DataFrame) *BIC { return &BIC{df: df} }

// LocalScore fits a LinearGaussian CPD for node | parents.
//
// Complexity: O(N·k² + k³) for k parents.
func (b *BIC) LocalScore(m models.BayesianNetwork, node int, parents []int) float64 {
	cpd, err := factors.FitLinearGaussian(b.df, m.Name(node), parentNames(m, parents))
	if err != nil {
		return math.Inf(-1)
	}
	ll, err := cpd.LogLikelihood(b.df)
	penalty := 0.5 * math.Log(float64(b.df.NumRows())) * float64(len(parents)+2)

	return finite(ll, err) - penalty
}

// Compatible accepts Gaussian networks only.
func (b *BIC) Compatible(k models.Kind) bool { return k == models.Gaussian }

// Validate checks the data covers every node.
func (b *BIC) Validate(m models.BayesianNetwork) error { return validate(m, b.df) }

// String returns "BIC".
func (b *BIC) String() string { return "BIC" }
