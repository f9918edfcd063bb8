// SPDX-License-Identifier: MIT

package operators

import (
	"fmt"
	"slices"

	"github.com/bits-and-blooms/bitset"

	"github.com/katalvlaran/bnsearch/factors"
	"github.com/katalvlaran/bnsearch/learning/scores"
	"github.com/katalvlaran/bnsearch/models"
)

// NodeTypeAssignment pins a node to a type.
type NodeTypeAssignment struct {
	Node string           `yaml:"node" json:"node"`
	Type factors.NodeType `yaml:"type" json:"type"`
}

// ChangeNodeTypeSet keeps, for every node, the delta of switching it to the
// opposite type under its current parents:
//
//	delta(v) = local_{opposite(type(v))}(v, pa(v)) − cached(v)
type ChangeNodeTypeSet struct {
	cacheRef
	score scores.NodeTypeScore
	n     int
	valid *bitset.BitSet
	delta []float64
	order []int
}

// NewChangeNodeTypeSet builds the set. Nodes named in fixed are excluded from
// the search; applying those types to the start network is the caller's job.
//
// Errors:
//   - ErrIncompatibleModel: m is not a models.TypedNetwork.
//   - ErrIncompatibleScore: score lacks scores.NodeTypeScore or does not support m.Kind().
//   - ErrUnknownNode: fixed names a missing node.
func NewChangeNodeTypeSet(m models.BayesianNetwork, score scores.Score, fixed ...NodeTypeAssignment) (*ChangeNodeTypeSet, error) {
	if _, ok := m.(models.TypedNetwork); !ok {
		return nil, fmt.Errorf("NewChangeNodeTypeSet: %v: %w", m.Kind(), ErrIncompatibleModel)
	}
	nts, ok := score.(scores.NodeTypeScore)
	if !ok || !score.Compatible(m.Kind()) {
		return nil, fmt.Errorf("NewChangeNodeTypeSet: %v with %v: %w", score, m.Kind(), ErrIncompatibleScore)
	}

	n := m.NumNodes()
	s := &ChangeNodeTypeSet{
		score: nts,
		n:     n,
		valid: bitset.New(uint(n)),
		delta: make([]float64, n),
		order: make([]int, 0, n),
	}
	s.valid.FlipRange(0, uint(n))
	for _, a := range fixed {
		idx, ok := m.Index(a.Node)
		if !ok {
			return nil, fmt.Errorf("NewChangeNodeTypeSet: %q: %w", a.Node, ErrUnknownNode)
		}
		s.valid.Clear(uint(idx))
	}

	return s, nil
}

// Valid reports whether node idx is searched.
func (s *ChangeNodeTypeSet) Valid(idx int) bool { return idx >= 0 && s.valid.Test(uint(idx)) }

// Delta returns the stored delta of node idx.
func (s *ChangeNodeTypeSet) Delta(idx int) float64 { return s.delta[idx] }

// CacheScores recomputes every valid delta.
func (s *ChangeNodeTypeSet) CacheScores(m models.BayesianNetwork) {
	s.ensure(m)
	if s.owned {
		s.cache.CacheLocalScores(m, s.score)
	}
	for v, ok := s.valid.NextSet(0); ok; v, ok = s.valid.NextSet(v + 1) {
		s.delta[v] = s.nodeDelta(m, int(v))
	}
}

func (s *ChangeNodeTypeSet) nodeDelta(m models.BayesianNetwork, v int) float64 {
	t := m.(models.TypedNetwork).NodeType(v).Opposite()

	return sanitize(s.score.LocalScoreWithType(m, t, v, m.Parents(v)) - s.cache.LocalScore(v))
}

func (s *ChangeNodeTypeSet) operator(m models.BayesianNetwork, v int) Operator {
	t := m.(models.TypedNetwork).NodeType(v).Opposite()

	return NewChangeNodeType(m.Name(v), t, s.delta[v])
}

// FindMax returns the valid node with the largest delta (lowest index on ties).
func (s *ChangeNodeTypeSet) FindMax(m models.BayesianNetwork) (Operator, bool) {
	best, found := 0, false
	for v, ok := s.valid.NextSet(0); ok; v, ok = s.valid.NextSet(v + 1) {
		if !found || s.delta[v] > s.delta[best] {
			best, found = int(v), true
		}
	}
	if !found {
		return Operator{}, false
	}

	return s.operator(m, best), true
}

// FindMaxTabu returns the best valid node whose type switch is not in tabu.
func (s *ChangeNodeTypeSet) FindMaxTabu(m models.BayesianNetwork, tabu *TabuSet) (Operator, bool) {
	if tabu.Empty() {
		return s.FindMax(m)
	}
	s.order = s.order[:0]
	for v, ok := s.valid.NextSet(0); ok; v, ok = s.valid.NextSet(v + 1) {
		s.order = append(s.order, int(v))
	}
	slices.SortFunc(s.order, descending(s.delta))
	for _, v := range s.order {
		if op := s.operator(m, v); !tabu.Contains(op) {
			return op, true
		}
	}

	return Operator{}, false
}

// UpdateScores refreshes the deltas op invalidated. A ChangeNodeType on v
// exactly reverses the stored difference, so its delta is negated.
func (s *ChangeNodeTypeSet) UpdateScores(m models.BayesianNetwork, op Operator) {
	s.ensure(m)
	if s.owned {
		s.cache.UpdateOperator(m, s.score, op)
	}
	for _, v := range op.affectedIndices(m) {
		if !s.valid.Test(uint(v)) {
			continue
		}
		if op.Kind() == ChangeNodeType {
			s.delta[v] = -s.delta[v]
		} else {
			s.delta[v] = s.nodeDelta(m, v)
		}
	}
}

// Kind returns NodeTypeSet.
func (s *ChangeNodeTypeSet) Kind() SetKind { return NodeTypeSet }

// String returns "ChangeNodeTypeSet".
func (s *ChangeNodeTypeSet) String() string { return "ChangeNodeTypeSet" }
