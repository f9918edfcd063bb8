// SPDX-License-Identifier: MIT

package models

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/bnsearch/dag"
	"github.com/katalvlaran/bnsearch/factors"
)

// SemiparametricBN is a Bayesian network whose nodes are either linear
// Gaussian or CKDE. types[i] is the type of node i.
type SemiparametricBN struct {
	*dag.Dag
	types []factors.NodeType
}

// NewSemiparametricBN builds the network; nodes absent from types default to
// factors.LinearGaussianType.
//
// Errors: any dag.FromArcs error, dag.ErrUnknownNode for an unknown key in
// types, ErrInvalidNodeType for an out-of-enum value.
func NewSemiparametricBN(names []string, arcs dag.ArcList, types map[string]factors.NodeType) (*SemiparametricBN, error) {
	g, err := dag.FromArcs(names, arcs)
	if err != nil {
		return nil, err
	}
	n := &SemiparametricBN{Dag: g, types: make([]factors.NodeType, g.NumNodes())}
	for name, t := range types {
		idx, ok := g.Index(name)
		if !ok {
			return nil, fmt.Errorf("NewSemiparametricBN: %q: %w", name, dag.ErrUnknownNode)
		}
		if err = n.SetNodeType(idx, t); err != nil {
			return nil, err
		}
	}

	return n, nil
}

// Kind returns Semiparametric.
func (n *SemiparametricBN) Kind() Kind { return Semiparametric }

// Graph returns the underlying graph.
func (n *SemiparametricBN) Graph() *dag.Dag { return n.Dag }

// NodeType returns the type of node idx. It panics on an invalid index.
func (n *SemiparametricBN) NodeType(idx int) factors.NodeType { return n.types[idx] }

// SetNodeType changes the type of node idx.
//
// Errors: dag.ErrUnknownNode, ErrInvalidNodeType.
func (n *SemiparametricBN) SetNodeType(idx int, t factors.NodeType) error {
	if idx < 0 || idx >= len(n.types) {
		return fmt.Errorf("SetNodeType(%d): %w", idx, dag.ErrUnknownNode)
	}
	if !t.Valid() {
		return fmt.Errorf("SetNodeType(%d, %v): %w", idx, t, ErrInvalidNodeType)
	}
	n.types[idx] = t

	return nil
}

// NodeTypes returns the node types keyed by name.
func (n *SemiparametricBN) NodeTypes() map[string]factors.NodeType {
	out := make(map[string]factors.NodeType, len(n.types))
	for i, t := range n.types {
		out[n.Name(i)] = t
	}

	return out
}

// Clone returns a deep copy.
func (n *SemiparametricBN) Clone() BayesianNetwork {
	return &SemiparametricBN{
		Dag:   n.Dag.Clone(),
		types: append([]factors.NodeType(nil), n.types...),
	}
}

// String renders e.g. "SemiparametricBN[a -> b; b:CKDE]", listing only the
// nodes that are not LinearGaussian.
func (n *SemiparametricBN) String() string {
	var ck []string
	for i, t := range n.types {
		if t != factors.LinearGaussianType {
			ck = append(ck, n.Name(i)+":"+t.String())
		}
	}
	s := Semiparametric.String() + "[" + arcString(n.Arcs())
	if len(ck) > 0 {
		s += "; " + strings.Join(ck, ", ")
	}

	return s + "]"
}
