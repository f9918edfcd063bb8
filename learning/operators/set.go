// SPDX-License-Identifier: MIT

package operators

import (
	"fmt"
	"math"

	"github.com/katalvlaran/bnsearch/models"
)

// SetKind names a family of operators.
type SetKind int

const (
	// ArcSet proposes AddArc, RemoveArc and FlipArc.
	ArcSet SetKind = iota
	// NodeTypeSet proposes ChangeNodeType.
	NodeTypeSet
)

// String returns "arcs" or "node_type".
func (k SetKind) String() string {
	switch k {
	case ArcSet:
		return "arcs"
	case NodeTypeSet:
		return "node_type"
	default:
		return fmt.Sprintf("SetKind(%d)", int(k))
	}
}

// OperatorSet maintains the deltas of one family of edits.
//
// A set reads node scores from a LocalScoreCache. When it runs inside an
// OperatorPool, the pool owns that cache and keeps it fresh. A set used on its
// own creates and maintains a private cache on the first CacheScores call.
type OperatorSet interface {
	// CacheScores recomputes every delta from scratch for m.
	CacheScores(m models.BayesianNetwork)
	// FindMax returns the best legal edit, or false when none qualifies.
	FindMax(m models.BayesianNetwork) (Operator, bool)
	// FindMaxTabu is FindMax skipping edits structurally present in tabu.
	FindMaxTabu(m models.BayesianNetwork, tabu *TabuSet) (Operator, bool)
	// UpdateScores refreshes the deltas invalidated by op, already applied to m.
	UpdateScores(m models.BayesianNetwork, op Operator)
	// SetLocalScoreCache shares an externally owned cache with the set.
	SetLocalScoreCache(c *LocalScoreCache)
	// Kind reports which operator family the set proposes.
	Kind() SetKind
	String() string
}

// cacheRef is the cache handle embedded by the concrete sets.
type cacheRef struct {
	cache *LocalScoreCache
	owned bool
}

// SetLocalScoreCache shares c; the owner is responsible for refreshing it.
func (r *cacheRef) SetLocalScoreCache(c *LocalScoreCache) {
	r.cache = c
	r.owned = false
}

// ensure allocates a private cache when none was shared.
func (r *cacheRef) ensure(m models.BayesianNetwork) {
	if r.cache == nil {
		r.cache = NewLocalScoreCache(m)
		r.owned = true
	}
}

// sanitize maps NaN (e.g. -Inf minus -Inf) to -Inf so deltas stay totally
// ordered.
func sanitize(v float64) float64 {
	if math.IsNaN(v) {
		return math.Inf(-1)
	}

	return v
}

// withParent returns parents plus p, kept ascending.
func withParent(parents []int, p int) []int {
	out := make([]int, 0, len(parents)+1)
	inserted := false
	for _, x := range parents {
		if !inserted && p < x {
			out = append(out, p)
			inserted = true
		}
		out = append(out, x)
	}
	if !inserted {
		out = append(out, p)
	}

	return out
}

// withoutParent returns parents minus p.
func withoutParent(parents []int, p int) []int {
	out := make([]int, 0, len(parents))
	for _, x := range parents {
		if x != p {
			out = append(out, x)
		}
	}

	return out
}

// descending orders candidate ids by delta, largest first, ties by id.
func descending(delta []float64) func(a, b int) int {
	return func(a, b int) int {
		switch {
		case delta[a] > delta[b]:
			return -1
		case delta[a] < delta[b]:
			return 1
		case a < b:
			return -1
		case a > b:
			return 1
		default:
			return 0
		}
	}
}
