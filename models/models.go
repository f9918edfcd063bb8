// SPDX-License-Identifier: MIT

// Package models defines the Bayesian network structures searched by
// learning/operators: a shared BayesianNetwork interface over an
// index-addressed dag.Dag, and two concrete networks.
//
//   - GaussianNetwork: every node is linear Gaussian; only the graph varies.
//   - SemiparametricBN: every node carries a factors.NodeType that the search
//     may switch, exposed through the TypedNetwork capability.
//
// Capabilities are checked with a type assertion (TypedNetwork) or with Kind
// (score compatibility), never by inspecting concrete types.
package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/bnsearch/dag"
	"github.com/katalvlaran/bnsearch/factors"
)

// Sentinel errors for model construction and node-type edits.
var (
	// ErrUnknownKind indicates a model kind value or name outside the enum.
	ErrUnknownKind = errors.New("models: unknown model kind")

	// ErrInvalidNodeType indicates a node type outside factors.NodeType.
	ErrInvalidNodeType = errors.New("models: invalid node type")
)

// Kind identifies the model family; scores declare which kinds they support.
type Kind int

const (
	// Gaussian is a Gaussian Bayesian network.
	Gaussian Kind = iota
	// Semiparametric is a semiparametric Bayesian network (per-node types).
	Semiparametric
)

// String returns "GaussianNetwork" or "SemiparametricBN".
func (k Kind) String() string {
	switch k {
	case Gaussian:
		return "GaussianNetwork"
	case Semiparametric:
		return "SemiparametricBN"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind accepts "gbn"/"gaussian" and "spbn"/"semiparametric" (any case).
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "gbn", "gaussian", "gaussiannetwork":
		return Gaussian, nil
	case "spbn", "semiparametric", "semiparametricbn":
		return Semiparametric, nil
	default:
		return 0, fmt.Errorf("ParseKind(%q): %w", s, ErrUnknownKind)
	}
}

// BayesianNetwork is the structure a search edits. Index arguments follow the
// node order given at construction.
type BayesianNetwork interface {
	Kind() Kind

	NumNodes() int
	Name(idx int) string
	Index(name string) (int, bool)
	Names() []string

	HasEdge(source, target int) bool
	HasArc(source, target string) bool
	NumParents(idx int) int
	Parents(idx int) []int
	CanAddEdge(source, target int) bool
	CanFlipEdge(source, target int) bool

	AddArc(source, target string) error
	RemoveArc(source, target string) error
	FlipArc(source, target string) error

	NumArcs() int
	Arcs() dag.ArcList

	// Graph exposes the underlying graph; callers must not mutate it.
	Graph() *dag.Dag
	// Clone returns an independent deep copy.
	Clone() BayesianNetwork
	String() string
}

// TypedNetwork is the capability of networks whose nodes carry a node type.
type TypedNetwork interface {
	BayesianNetwork
	NodeType(idx int) factors.NodeType
	SetNodeType(idx int, t factors.NodeType) error
}

// New builds an arc-set network of the given kind. SemiparametricBN nodes start
// as LinearGaussian.
func New(kind Kind, names []string, arcs dag.ArcList) (BayesianNetwork, error) {
	switch kind {
	case Gaussian:
		return NewGaussianNetwork(names, arcs)
	case Semiparametric:
		return NewSemiparametricBN(names, arcs, nil)
	default:
		return nil, fmt.Errorf("New(%v): %w", kind, ErrUnknownKind)
	}
}

// arcString renders the arc list as "a -> b, b -> c".
func arcString(arcs dag.ArcList) string {
	parts := make([]string, len(arcs))
	for i, a := range arcs {
		parts[i] = a.String()
	}

	return strings.Join(parts, ", ")
}
