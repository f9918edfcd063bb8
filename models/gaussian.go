// SPDX-License-Identifier: MIT

package models

import "github.com/katalvlaran/bnsearch/dag"

// GaussianNetwork is a Bayesian network whose nodes are all linear Gaussian.
type GaussianNetwork struct {
	*dag.Dag
}

// NewGaussianNetwork builds the network over names with the given arcs.
//
// Errors: any dag.FromArcs error (ErrNoNodes, ErrDuplicateName, ErrCycle, ...).
func NewGaussianNetwork(names []string, arcs dag.ArcList) (*GaussianNetwork, error) {
	g, err := dag.FromArcs(names, arcs)
	if err != nil {
		return nil, err
	}

	return &GaussianNetwork{Dag: g}, nil
}

// Kind returns Gaussian.
func (n *GaussianNetwork) Kind() Kind { return Gaussian }

// Graph returns the underlying graph.
func (n *GaussianNetwork) Graph() *dag.Dag { return n.Dag }

// Clone returns a deep copy.
func (n *GaussianNetwork) Clone() BayesianNetwork {
	return &GaussianNetwork{Dag: n.Dag.Clone()}
}

// String renders e.g. "GaussianNetwork[a -> b, b -> c]".
func (n *GaussianNetwork) String() string {
	return Gaussian.String() + "[" + arcString(n.Arcs()) + "]"
}
