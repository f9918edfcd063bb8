// SPDX-License-Identifier: MIT

package operators

import (
	"github.com/katalvlaran/bnsearch/learning/scores"
	"github.com/katalvlaran/bnsearch/models"
)

// LocalScoreCache stores the local score of every node of one network,
// indexed like the network's nodes. It is valid only while every entry has
// been refreshed after each edit; node insertion or removal invalidates it.
type LocalScoreCache struct {
	local []float64
}

// NewLocalScoreCache allocates a zeroed cache sized for m.
func NewLocalScoreCache(m models.BayesianNetwork) *LocalScoreCache {
	return &LocalScoreCache{local: make([]float64, m.NumNodes())}
}

// CacheLocalScores recomputes every entry from m's current parent sets.
//
// Complexity: O(V) local score evaluations.
func (c *LocalScoreCache) CacheLocalScores(m models.BayesianNetwork, s scores.Score) {
	if len(c.local) != m.NumNodes() {
		c.local = make([]float64, m.NumNodes())
	}
	for i := range c.local {
		c.local[i] = s.LocalScore(m, i, m.Parents(i))
	}
}

// UpdateLocalScore recomputes the entry of node idx.
func (c *LocalScoreCache) UpdateLocalScore(m models.BayesianNetwork, s scores.Score, idx int) {
	c.local[idx] = s.LocalScore(m, idx, m.Parents(idx))
}

// UpdateOperator recomputes the entries of the nodes op affected. Call it
// after op has been applied to m.
func (c *LocalScoreCache) UpdateOperator(m models.BayesianNetwork, s scores.Score, op Operator) {
	for _, idx := range op.affectedIndices(m) {
		c.UpdateLocalScore(m, s, idx)
	}
}

// LocalScore returns the cached entry of node idx.
func (c *LocalScoreCache) LocalScore(idx int) float64 { return c.local[idx] }

// Sum returns the total score of the cached network.
func (c *LocalScoreCache) Sum() float64 {
	total := 0.0
	for _, v := range c.local {
		total += v
	}

	return total
}

// Len returns the number of entries.
func (c *LocalScoreCache) Len() int { return len(c.local) }
