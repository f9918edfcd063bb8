// SPDX-License-Identifier: MIT

package operators

import (
	"fmt"
	"slices"

	"github.com/bits-and-blooms/bitset"

	"github.com/katalvlaran/bnsearch/dag"
	"github.com/katalvlaran/bnsearch/learning/scores"
	"github.com/katalvlaran/bnsearch/models"
)

// arcOptions collects ArcOperatorSet configuration.
type arcOptions struct {
	whitelist   dag.ArcList
	blacklist   dag.ArcList
	maxIndegree int
}

// ArcOption configures NewArcOperatorSet.
type ArcOption func(*arcOptions)

// WithWhitelist fixes arcs: neither direction of a whitelisted pair is ever
// proposed for addition, removal or reversal. The search driver is expected to
// insert the arcs into the start network.
func WithWhitelist(arcs dag.ArcList) ArcOption {
	return func(o *arcOptions) { o.whitelist = append(o.whitelist, arcs...) }
}

// WithBlacklist forbids adding the listed directions.
func WithBlacklist(arcs dag.ArcList) ArcOption {
	return func(o *arcOptions) { o.blacklist = append(o.blacklist, arcs...) }
}

// WithMaxIndegree bounds the number of parents per node; k <= 0 is unbounded.
func WithMaxIndegree(k int) ArcOption {
	return func(o *arcOptions) { o.maxIndegree = k }
}

// ArcOperatorSet keeps the delta of one arc edit per ordered node pair.
//
// Cell (s,d) of the n×n table holds:
//
//	s→d present: RemoveArc(s,d)  local(d, pa(d)−s) − cached(d)
//	d→s present: FlipArc(d,s)    local(s, pa(s)−d) + local(d, pa(d)+s) − cached(s) − cached(d)
//	otherwise:   AddArc(s,d)     local(d, pa(d)+s) − cached(d)
//
// In both add and flip cases d is the node that gains a parent.
type ArcOperatorSet struct {
	cacheRef
	score       scores.Score
	n           int
	maxIndegree int
	valid       *bitset.BitSet // bit s*n+d
	candidates  []int          // valid cells, ascending
	order       []int          // sort scratch
	delta       []float64
}

// NewArcOperatorSet builds the candidate table for m.
//
// Errors:
//   - ErrIncompatibleScore: score does not support m.Kind().
//   - ErrUnknownNode: a whitelist/blacklist arc names a missing node.
//   - ErrListConflict: the same direction is whitelisted and blacklisted.
//
// Complexity: O(V² + |whitelist| + |blacklist|).
func NewArcOperatorSet(m models.BayesianNetwork, score scores.Score, opts ...ArcOption) (*ArcOperatorSet, error) {
	if !score.Compatible(m.Kind()) {
		return nil, fmt.Errorf("NewArcOperatorSet: %v with %v: %w", score, m.Kind(), ErrIncompatibleScore)
	}
	var cfg arcOptions
	for _, opt := range opts {
		opt(&cfg)
	}

	n := m.NumNodes()
	s := &ArcOperatorSet{
		score:       score,
		n:           n,
		maxIndegree: cfg.maxIndegree,
		valid:       bitset.New(uint(n * n)),
		delta:       make([]float64, n*n),
	}
	for src := 0; src < n; src++ {
		for dst := 0; dst < n; dst++ {
			if src != dst {
				s.valid.Set(uint(src*n + dst))
			}
		}
	}

	black := make(map[dag.Arc]struct{}, len(cfg.blacklist))
	for _, a := range cfg.blacklist {
		src, dst, err := resolveArc(m, a)
		if err != nil {
			return nil, fmt.Errorf("NewArcOperatorSet: blacklist: %w", err)
		}
		black[a] = struct{}{}
		s.valid.Clear(uint(src*n + dst))
	}
	for _, a := range cfg.whitelist {
		src, dst, err := resolveArc(m, a)
		if err != nil {
			return nil, fmt.Errorf("NewArcOperatorSet: whitelist: %w", err)
		}
		if _, clash := black[a]; clash {
			return nil, fmt.Errorf("NewArcOperatorSet: %v: %w", a, ErrListConflict)
		}
		s.valid.Clear(uint(src*n + dst))
		s.valid.Clear(uint(dst*n + src))
	}

	s.candidates = make([]int, 0, s.valid.Count())
	for i, ok := s.valid.NextSet(0); ok; i, ok = s.valid.NextSet(i + 1) {
		s.candidates = append(s.candidates, int(i))
	}
	s.order = make([]int, len(s.candidates))

	return s, nil
}

func resolveArc(m models.BayesianNetwork, a dag.Arc) (int, int, error) {
	src, ok := m.Index(a.Source)
	if !ok {
		return 0, 0, fmt.Errorf("%q: %w", a.Source, ErrUnknownNode)
	}
	dst, ok := m.Index(a.Target)
	if !ok {
		return 0, 0, fmt.Errorf("%q: %w", a.Target, ErrUnknownNode)
	}

	return src, dst, nil
}

// MaxIndegree returns the indegree bound (<= 0 means unbounded).
func (s *ArcOperatorSet) MaxIndegree() int { return s.maxIndegree }

// Valid reports whether cell (src,dst) is a candidate.
func (s *ArcOperatorSet) Valid(src, dst int) bool {
	if src < 0 || dst < 0 || src >= s.n || dst >= s.n {
		return false
	}

	return s.valid.Test(uint(src*s.n + dst))
}

// Delta returns the stored delta of cell (src,dst). Invalid cells hold 0.
func (s *ArcOperatorSet) Delta(src, dst int) float64 { return s.delta[src*s.n+dst] }

// CacheScores recomputes every valid cell.
//
// Complexity: O(V²) local score evaluations.
func (s *ArcOperatorSet) CacheScores(m models.BayesianNetwork) {
	s.ensure(m)
	if s.owned {
		s.cache.CacheLocalScores(m, s.score)
	}
	for _, cell := range s.candidates {
		s.delta[cell] = s.cellDelta(m, cell/s.n, cell%s.n)
	}
}

// cellDelta evaluates the single edit represented by cell (src,dst).
func (s *ArcOperatorSet) cellDelta(m models.BayesianNetwork, src, dst int) float64 {
	switch {
	case m.HasEdge(src, dst):
		parents := withoutParent(m.Parents(dst), src)
		return sanitize(s.score.LocalScore(m, dst, parents) - s.cache.LocalScore(dst))
	case m.HasEdge(dst, src):
		pSrc := withoutParent(m.Parents(src), dst)
		pDst := withParent(m.Parents(dst), src)
		return sanitize(s.score.LocalScore(m, src, pSrc) + s.score.LocalScore(m, dst, pDst) -
			s.cache.LocalScore(src) - s.cache.LocalScore(dst))
	default:
		parents := withParent(m.Parents(dst), src)
		return sanitize(s.score.LocalScore(m, dst, parents) - s.cache.LocalScore(dst))
	}
}

// FindMax returns the best legal arc edit.
func (s *ArcOperatorSet) FindMax(m models.BayesianNetwork) (Operator, bool) {
	return s.findMax(m, nil)
}

// FindMaxTabu returns the best legal arc edit not contained in tabu.
func (s *ArcOperatorSet) FindMaxTabu(m models.BayesianNetwork, tabu *TabuSet) (Operator, bool) {
	return s.findMax(m, tabu)
}

// findMax scans candidates by descending delta (ties: ascending cell) and
// returns the first edit that respects the indegree bound, is not tabu and
// keeps the graph acyclic.
//
// Complexity: O(C·log C) for the sort plus O(V+E) per rejected acyclicity check.
func (s *ArcOperatorSet) findMax(m models.BayesianNetwork, tabu *TabuSet) (Operator, bool) {
	s.order = append(s.order[:0], s.candidates...)
	slices.SortFunc(s.order, descending(s.delta))

	var op Operator
	for _, cell := range s.order {
		src, dst := cell/s.n, cell%s.n
		d := s.delta[cell]

		if m.HasEdge(src, dst) {
			op = NewRemoveArc(m.Name(src), m.Name(dst), d)
			if tabu.Empty() || !tabu.Contains(op) {
				return op, true
			}
			continue
		}
		if s.maxIndegree > 0 && m.NumParents(dst) >= s.maxIndegree {
			continue
		}
		if m.HasEdge(dst, src) {
			op = NewFlipArc(m.Name(dst), m.Name(src), d)
			if (tabu.Empty() || !tabu.Contains(op)) && m.CanFlipEdge(dst, src) {
				return op, true
			}
			continue
		}
		op = NewAddArc(m.Name(src), m.Name(dst), d)
		if (tabu.Empty() || !tabu.Contains(op)) && m.CanAddEdge(src, dst) {
			return op, true
		}
	}

	return Operator{}, false
}

// UpdateScores recomputes the row and column of every node op affected.
//
// Complexity: O(V) local score evaluations per affected node.
func (s *ArcOperatorSet) UpdateScores(m models.BayesianNetwork, op Operator) {
	s.ensure(m)
	if s.owned {
		s.cache.UpdateOperator(m, s.score, op)
	}
	for _, v := range op.affectedIndices(m) {
		s.updateNode(m, v)
	}
}

func (s *ArcOperatorSet) updateNode(m models.BayesianNetwork, v int) {
	var cell int
	for i := 0; i < s.n; i++ {
		if cell = i*s.n + v; s.valid.Test(uint(cell)) {
			s.delta[cell] = s.cellDelta(m, i, v)
		}
		if cell = v*s.n + i; s.valid.Test(uint(cell)) {
			s.delta[cell] = s.cellDelta(m, v, i)
		}
	}
}

// Kind returns ArcSet.
func (s *ArcOperatorSet) Kind() SetKind { return ArcSet }

// String returns "ArcOperatorSet".
func (s *ArcOperatorSet) String() string { return "ArcOperatorSet" }
