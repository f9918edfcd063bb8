// SPDX-License-Identifier: MIT

package scores

import (
	"fmt"

	"github.com/katalvlaran/bnsearch/dataset"
	"github.com/katalvlaran/bnsearch/factors"
	"github.com/katalvlaran/bnsearch/models"
)

// HoldoutLikelihood fits each CPD on a training split and scores it by its
// log-likelihood on a held-out test split. It supports both node types and
// therefore both model kinds.
type HoldoutLikelihood struct {
	train *dataset.DataFrame
	test  *dataset.DataFrame
}

// NewHoldoutLikelihood splits df with dataset.HoldoutSplit.
//
// Errors: dataset.ErrBadFraction, dataset.ErrEmpty.
func NewHoldoutLikelihood(df *dataset.DataFrame, testFraction float64, seed int64) (*HoldoutLikelihood, error) {
	train, test, err := df.HoldoutSplit(testFraction, seed)
	if err != nil {
		return nil, fmt.Errorf("NewHoldoutLikelihood: %w", err)
	}

	return &HoldoutLikelihood{train: train, test: test}, nil
}

// NewHoldoutLikelihoodFrom uses caller-provided splits.
func NewHoldoutLikelihoodFrom(train, test *dataset.DataFrame) *HoldoutLikelihood {
	return &HoldoutLikelihood{train: train, test: test}
}

// Train returns the training split.
func (h *HoldoutLikelihood) Train() *dataset.DataFrame { return h.train }

// Test returns the held-out split.
func (h *HoldoutLikelihood) Test() *dataset.DataFrame { return h.test }

// LocalScore evaluates node under its current type.
func (h *HoldoutLikelihood) LocalScore(m models.BayesianNetwork, node int, parents []int) float64 {
	return h.LocalScoreWithType(m, nodeType(m, node), node, parents)
}

// LocalScoreWithType fits a CPD of type t on the training split and returns
// its test log-likelihood.
//
// Complexity: LinearGaussian O(N·k²); CKDE O(N_test·N_train·k).
func (h *HoldoutLikelihood) LocalScoreWithType(m models.BayesianNetwork, t factors.NodeType, node int, parents []int) float64 {
	cpd, err := factors.Fit(t, h.train, m.Name(node), parentNames(m, parents))
	if err != nil {
		return finite(0, err)
	}

	return finite(cpd.LogLikelihood(h.test))
}

// Compatible accepts every model kind.
func (h *HoldoutLikelihood) Compatible(models.Kind) bool { return true }

// Validate checks both splits cover every node.
func (h *HoldoutLikelihood) Validate(m models.BayesianNetwork) error {
	return validate(m, h.train, h.test)
}

// String returns "HoldoutLikelihood".
func (h *HoldoutLikelihood) String() string { return "HoldoutLikelihood" }
