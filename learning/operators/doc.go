// SPDX-License-Identifier: MIT

// Package operators is the incremental local-search engine behind score-based
// structure learning.
//
// An Operator is one edit of a network (add, remove or flip an arc, or switch
// a node's type) carrying the score change it would produce. Operator sets
// keep a table of those deltas for every candidate edit and answer "best edit
// now" in O(candidates·log candidates) without evaluating the score. After an
// edit is applied, UpdateScores refreshes only the deltas that depend on the
// nodes whose parent set or type changed: O(V) local score evaluations instead
// of O(V²).
//
// Components:
//
//   - Operator: closed sum type over Kind, with Apply, Opposite and a
//     structural Key used by TabuSet.
//   - TabuSet: structural set of recently applied edits and their reversals.
//   - LocalScoreCache: per-node local scores of the current network.
//   - ArcOperatorSet: add/remove/flip deltas over an n×n table, constrained by
//     whitelist, blacklist and a maximum indegree.
//   - ChangeNodeTypeSet: per-node type-switch deltas for TypedNetwork models.
//   - OperatorPool: owns the cache, fans out to the sets, picks the winner.
//
// Typical loop:
//
//	pool.CacheScores(m)
//	for {
//		op, ok := pool.FindMaxTabu(m, tabu)
//		if !ok || op.Delta() <= eps {
//			break
//		}
//		_ = op.Apply(m)
//		tabu.Insert(op)
//		tabu.Insert(op.Opposite())
//		pool.UpdateScores(m, op)
//	}
//
// Concurrency: single-threaded. A pool, its sets, its cache and the network it
// was built for must be used from one goroutine; run independent searches on
// independent instances.
package operators
