// SPDX-License-Identifier: MIT

// Package scores implements decomposable network scores: the score of a
// network is the sum over nodes of a local score that depends only on the
// node and its parent set. Structure search relies on that decomposition to
// re-evaluate only the nodes an operator touches.
//
// A local score never fails. A parent set the data cannot support (singular
// design, zero variance) scores math.Inf(-1), so it is never preferred over a
// finite alternative. Contract problems (model variables missing from the
// data, score/model kind mismatch) are reported once by Validate and
// Compatible, before the search starts.
package scores

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/bnsearch/dataset"
	"github.com/katalvlaran/bnsearch/factors"
	"github.com/katalvlaran/bnsearch/models"
)

// ErrMissingVariable indicates a model node without a data column.
var ErrMissingVariable = errors.New("scores: model variable missing from data")

// Score is a decomposable structure score.
type Score interface {
	// LocalScore returns the contribution of node with the given parents.
	LocalScore(m models.BayesianNetwork, node int, parents []int) float64
	// Compatible reports whether the score supports models of kind k.
	Compatible(k models.Kind) bool
	// Validate checks that every node of m has data.
	Validate(m models.BayesianNetwork) error
	String() string
}

// NodeTypeScore is the capability of scores that can evaluate a node under a
// node type other than its current one.
type NodeTypeScore interface {
	Score
	LocalScoreWithType(m models.BayesianNetwork, t factors.NodeType, node int, parents []int) float64
}

// TotalScore sums the local scores of every node of m from scratch.
//
// Complexity: O(V) local score evaluations.
func TotalScore(m models.BayesianNetwork, s Score) float64 {
	total := 0.0
	for i := 0; i < m.NumNodes(); i++ {
		total += s.LocalScore(m, i, m.Parents(i))
	}

	return total
}

// nodeType returns the current type of node, LinearGaussian for untyped models.
func nodeType(m models.BayesianNetwork, node int) factors.NodeType {
	if tn, ok := m.(models.TypedNetwork); ok {
		return tn.NodeType(node)
	}

	return factors.LinearGaussianType
}

// parentNames maps parent indices to names.
func parentNames(m models.BayesianNetwork, parents []int) []string {
	out := make([]string, len(parents))
	for i, p := range parents {
		out[i] = m.Name(p)
	}

	return out
}

// validate checks that every node name of m is a column of each frame.
func validate(m models.BayesianNetwork, frames ...*dataset.DataFrame) error {
	for _, df := range frames {
		for _, name := range m.Names() {
			if _, ok := df.Index(name); !ok {
				return fmt.Errorf("%w: %q", ErrMissingVariable, name)
			}
		}
	}

	return nil
}

// finite maps a failed fit or a NaN to -Inf.
func finite(v float64, err error) float64 {
	if err != nil || math.IsNaN(v) {
		return math.Inf(-1)
	}

	return v
}
