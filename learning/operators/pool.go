// SPDX-License-Identifier: MIT

package operators

import (
	"fmt"

	"github.com/katalvlaran/bnsearch/learning/scores"
	"github.com/katalvlaran/bnsearch/models"
)

// OperatorPool owns the LocalScoreCache shared by its operator sets and picks
// the best edit across them.
type OperatorPool struct {
	score scores.Score
	cache *LocalScoreCache
	sets  []OperatorSet
}

// NewOperatorPool builds a pool for m. The sets are queried in the given
// order; on equal deltas the earlier set wins.
//
// Errors:
//   - ErrNoOperatorSets: no sets given.
//   - ErrIncompatibleScore: score does not support m.Kind().
//   - scores.ErrMissingVariable: the score has no data for a node of m.
func NewOperatorPool(m models.BayesianNetwork, score scores.Score, sets ...OperatorSet) (*OperatorPool, error) {
	if len(sets) == 0 {
		return nil, ErrNoOperatorSets
	}
	if !score.Compatible(m.Kind()) {
		return nil, fmt.Errorf("NewOperatorPool: %v with %v: %w", score, m.Kind(), ErrIncompatibleScore)
	}
	if err := score.Validate(m); err != nil {
		return nil, fmt.Errorf("NewOperatorPool: %w", err)
	}

	p := &OperatorPool{
		score: score,
		cache: NewLocalScoreCache(m),
		sets:  append([]OperatorSet(nil), sets...),
	}
	for _, s := range p.sets {
		s.SetLocalScoreCache(p.cache)
	}

	return p, nil
}

// CacheScores refreshes the cache, then every set.
func (p *OperatorPool) CacheScores(m models.BayesianNetwork) {
	p.cache.CacheLocalScores(m, p.score)
	for _, s := range p.sets {
		s.CacheScores(m)
	}
}

// FindMax returns the best edit over all sets.
func (p *OperatorPool) FindMax(m models.BayesianNetwork) (Operator, bool) {
	return p.best(func(s OperatorSet) (Operator, bool) { return s.FindMax(m) })
}

// FindMaxTabu returns the best edit over all sets that is not in tabu. An
// empty or nil tabu set falls back to FindMax.
func (p *OperatorPool) FindMaxTabu(m models.BayesianNetwork, tabu *TabuSet) (Operator, bool) {
	if tabu.Empty() {
		return p.FindMax(m)
	}

	return p.best(func(s OperatorSet) (Operator, bool) { return s.FindMaxTabu(m, tabu) })
}

func (p *OperatorPool) best(find func(OperatorSet) (Operator, bool)) (Operator, bool) {
	var (
		best  Operator
		found bool
	)
	for _, s := range p.sets {
		op, ok := find(s)
		if ok && (!found || op.Delta() > best.Delta()) {
			best, found = op, true
		}
	}

	return best, found
}

// UpdateScores refreshes the cache entries op affected, then forwards op to
// every set. Call it after op has been applied to m.
func (p *OperatorPool) UpdateScores(m models.BayesianNetwork, op Operator) {
	p.cache.UpdateOperator(m, p.score, op)
	for _, s := range p.sets {
		s.UpdateScores(m, op)
	}
}

// Score returns the cached total score. O(V); trusts the cache is fresh.
func (p *OperatorPool) Score() float64 { return p.cache.Sum() }

// ScoreModel computes the total score of m from scratch.
func (p *OperatorPool) ScoreModel(m models.BayesianNetwork) float64 {
	return scores.TotalScore(m, p.score)
}

// LocalCache returns the shared cache.
func (p *OperatorPool) LocalCache() *LocalScoreCache { return p.cache }

// Sets returns the operator sets in registration order.
func (p *OperatorPool) Sets() []OperatorSet { return append([]OperatorSet(nil), p.sets...) }
