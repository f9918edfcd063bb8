// SPDX-License-Identifier: MIT

package operators

import (
	"fmt"

	"github.com/katalvlaran/bnsearch/factors"
	"github.com/katalvlaran/bnsearch/models"
)

// Kind discriminates the Operator variants.
type Kind int

const (
	// AddArc inserts source→target.
	AddArc Kind = iota
	// RemoveArc deletes source→target.
	RemoveArc
	// FlipArc reverses source→target into target→source.
	FlipArc
	// ChangeNodeType sets the type of a node.
	ChangeNodeType
)

// String returns the variant name.
func (k Kind) String() string {
	switch k {
	case AddArc:
		return "AddArc"
	case RemoveArc:
		return "RemoveArc"
	case FlipArc:
		return "FlipArc"
	case ChangeNodeType:
		return "ChangeNodeType"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Operator is one edit of a network plus the score change it produces.
// For ChangeNodeType, source holds the node and nodeType the new type.
//
// Operators are plain values: copying one yields an independent operator.
type Operator struct {
	kind     Kind
	source   string
	target   string
	nodeType factors.NodeType
	delta    float64
}

// Key is the structural identity of an operator. It never includes the delta.
type Key struct {
	Kind     Kind
	Source   string
	Target   string
	NodeType factors.NodeType
}

// NewAddArc returns AddArc(source, target).
func NewAddArc(source, target string, delta float64) Operator {
	return Operator{kind: AddArc, source: source, target: target, delta: delta}
}

// NewRemoveArc returns RemoveArc(source, target).
func NewRemoveArc(source, target string, delta float64) Operator {
	return Operator{kind: RemoveArc, source: source, target: target, delta: delta}
}

// NewFlipArc returns FlipArc(source, target): the existing arc source→target
// becomes target→source.
func NewFlipArc(source, target string, delta float64) Operator {
	return Operator{kind: FlipArc, source: source, target: target, delta: delta}
}

// NewChangeNodeType returns ChangeNodeType(node, t), where t is the new type.
func NewChangeNodeType(node string, t factors.NodeType, delta float64) Operator {
	return Operator{kind: ChangeNodeType, source: node, nodeType: t, delta: delta}
}

// Kind returns the variant.
func (o Operator) Kind() Kind { return o.kind }

// Source returns the arc source (the node, for ChangeNodeType).
func (o Operator) Source() string { return o.source }

// Target returns the arc target ("" for ChangeNodeType).
func (o Operator) Target() string { return o.target }

// Node returns the edited node of a ChangeNodeType operator.
func (o Operator) Node() string { return o.source }

// NodeType returns the new type of a ChangeNodeType operator.
func (o Operator) NodeType() factors.NodeType { return o.nodeType }

// Delta returns the score change computed when the operator was proposed.
func (o Operator) Delta() float64 { return o.delta }

// Copy returns an identical, independent operator.
func (o Operator) Copy() Operator { return o }

// SetKind returns the operator family that proposes o.
func (o Operator) SetKind() SetKind {
	if o.kind == ChangeNodeType {
		return NodeTypeSet
	}

	return ArcSet
}

// Key returns the structural identity used by TabuSet.
func (o Operator) Key() Key {
	if o.kind == ChangeNodeType {
		return Key{Kind: o.kind, Source: o.source, NodeType: o.nodeType}
	}

	return Key{Kind: o.kind, Source: o.source, Target: o.target}
}

// Equal reports structural equality (delta ignored).
func (o Operator) Equal(other Operator) bool { return o.Key() == other.Key() }

// Opposite returns the operator that undoes o, with the delta negated:
//
//	AddArc(s,t)            ↔ RemoveArc(s,t)
//	FlipArc(s,t)           → FlipArc(t,s)
//	ChangeNodeType(n,T)    → ChangeNodeType(n,T.Opposite())
//
// It panics on an operator outside the enum.
func (o Operator) Opposite() Operator {
	switch o.kind {
	case AddArc:
		return NewRemoveArc(o.source, o.target, -o.delta)
	case RemoveArc:
		return NewAddArc(o.source, o.target, -o.delta)
	case FlipArc:
		return NewFlipArc(o.target, o.source, -o.delta)
	case ChangeNodeType:
		return NewChangeNodeType(o.source, o.nodeType.Opposite(), -o.delta)
	default:
		panic(fmt.Sprintf("operators: Opposite of %v", o.kind))
	}
}

// Apply performs the edit on m.
//
// Errors:
//   - any dag error from the arc edit (dag.ErrCycle, dag.ErrEdgeNotFound, ...).
//   - ErrIncompatibleModel: ChangeNodeType on a model that is not a TypedNetwork.
//   - ErrUnknownNode: ChangeNodeType naming a missing node.
func (o Operator) Apply(m models.BayesianNetwork) error {
	switch o.kind {
	case AddArc:
		return m.AddArc(o.source, o.target)
	case RemoveArc:
		return m.RemoveArc(o.source, o.target)
	case FlipArc:
		return m.FlipArc(o.source, o.target)
	case ChangeNodeType:
		tn, ok := m.(models.TypedNetwork)
		if !ok {
			return fmt.Errorf("Apply(%v) on %v: %w", o, m.Kind(), ErrIncompatibleModel)
		}
		idx, ok := tn.Index(o.source)
		if !ok {
			return fmt.Errorf("Apply(%v): %q: %w", o, o.source, ErrUnknownNode)
		}
		return tn.SetNodeType(idx, o.nodeType)
	default:
		panic(fmt.Sprintf("operators: Apply of %v", o.kind))
	}
}

// AffectedNodes returns the nodes whose parent set or type o changes:
// the target for add/remove, source and target for flip, the node for
// ChangeNodeType. Their local scores are the only ones o invalidates.
func (o Operator) AffectedNodes() []string {
	switch o.kind {
	case AddArc, RemoveArc:
		return []string{o.target}
	case FlipArc:
		return []string{o.source, o.target}
	case ChangeNodeType:
		return []string{o.source}
	default:
		panic(fmt.Sprintf("operators: AffectedNodes of %v", o.kind))
	}
}

// affectedIndices resolves AffectedNodes against m. An unknown name means the
// operator was built for another network; that is a contract violation.
func (o Operator) affectedIndices(m models.BayesianNetwork) []int {
	names := o.AffectedNodes()
	out := make([]int, len(names))
	for i, name := range names {
		idx, ok := m.Index(name)
		if !ok {
			panic(fmt.Sprintf("operators: %v references unknown node %q", o, name))
		}
		out[i] = idx
	}

	return out
}

// String renders e.g. "AddArc(a -> b; 1.250000)" or
// "ChangeNodeType(c -> CKDE; -0.500000)".
func (o Operator) String() string {
	if o.kind == ChangeNodeType {
		return fmt.Sprintf("%v(%s -> %v; %f)", o.kind, o.source, o.nodeType, o.delta)
	}

	return fmt.Sprintf("%v(%s -> %s; %f)", o.kind, o.source, o.target, o.delta)
}
