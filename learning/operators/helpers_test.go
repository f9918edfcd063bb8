// SPDX-License-Identifier: MIT

package operators_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/bnsearch/dag"
	"github.com/katalvlaran/bnsearch/internal/testutil"
	"github.com/katalvlaran/bnsearch/learning/operators"
	"github.com/katalvlaran/bnsearch/learning/scores"
	"github.com/katalvlaran/bnsearch/models"
)

const tol = 1e-6

// chainFixture returns an arc-less Gaussian network over a,b,c,d and a BIC
// score on 500 rows of a→b→c plus isolated d.
func chainFixture(tb testing.TB) (*models.GaussianNetwork, *scores.BIC) {
	tb.Helper()
	m, err := models.NewGaussianNetwork(testutil.ChainNames, nil)
	require.NoError(tb, err)

	return m, scores.NewBIC(testutil.Chain(500, 42))
}

// arcPool builds a pool with a single ArcOperatorSet and caches it.
func arcPool(tb testing.TB, m models.BayesianNetwork, s scores.Score, opts ...operators.ArcOption) (*operators.OperatorPool, *operators.ArcOperatorSet) {
	tb.Helper()
	arcs, err := operators.NewArcOperatorSet(m, s, opts...)
	require.NoError(tb, err)
	pool, err := operators.NewOperatorPool(m, s, arcs)
	require.NoError(tb, err)
	pool.CacheScores(m)

	return pool, arcs
}

// bruteDelta applies op to a clone of m and returns the from-scratch score change.
func bruteDelta(t *testing.T, m models.BayesianNetwork, s scores.Score, op operators.Operator) float64 {
	t.Helper()
	c := m.Clone()
	require.NoError(t, op.Apply(c))

	return scores.TotalScore(c, s) - scores.TotalScore(m, s)
}

// step applies op and refreshes the pool.
func step(t *testing.T, pool *operators.OperatorPool, m models.BayesianNetwork, op operators.Operator) {
	t.Helper()
	require.NoError(t, op.Apply(m))
	pool.UpdateScores(m, op)
}

func arc(s, t string) dag.Arc { return dag.Arc{Source: s, Target: t} }
