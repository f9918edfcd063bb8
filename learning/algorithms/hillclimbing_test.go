// SPDX-License-Identifier: MIT

package algorithms_test

import (
	"bytes"
	"context"
	"log/slog"
	"math"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/bnsearch/dag"
	"github.com/katalvlaran/bnsearch/dataset"
	"github.com/katalvlaran/bnsearch/factors"
	"github.com/katalvlaran/bnsearch/internal/testutil"
	"github.com/katalvlaran/bnsearch/learning/algorithms"
	"github.com/katalvlaran/bnsearch/learning/operators"
	"github.com/katalvlaran/bnsearch/learning/scores"
	"github.com/katalvlaran/bnsearch/models"
)

func adjacent(m models.BayesianNetwork, a, b string) bool { return m.HasArc(a, b) || m.HasArc(b, a) }

func chain(t *testing.T) (*models.GaussianNetwork, *scores.BIC) {
	t.Helper()
	m, err := models.NewGaussianNetwork(testutil.ChainNames, nil)
	require.NoError(t, err)

	return m, scores.NewBIC(testutil.Chain(1000, 7))
}

func TestGreedyHillClimbing_RecoversChain(t *testing.T) {
	start, bic := chain(t)
	var steps int
	res, err := algorithms.GreedyHillClimbing(context.Background(), start, bic,
		algorithms.WithCallback(func(algorithms.Step) { steps++ }))
	require.NoError(t, err)

	assert.True(t, adjacent(res.Model, "a", "b"), res.Model.String())
	assert.True(t, adjacent(res.Model, "b", "c"), res.Model.String())
	for _, other := range []string{"a", "b", "c"} {
		assert.False(t, adjacent(res.Model, "d", other), res.Model.String())
	}
	assert.Contains(t, []algorithms.StopReason{algorithms.StopConverged, algorithms.StopNoOperator}, res.Reason)
	assert.Equal(t, res.Iterations, steps)
	assert.InDelta(t, scores.TotalScore(res.Model, bic), res.Score, 1e-6)
	assert.Greater(t, res.Score, scores.TotalScore(start, bic))
	assert.Zero(t, start.NumArcs(), "start network is not modified")
}

func TestGreedyHillClimbing_Patience(t *testing.T) {
	start, bic := chain(t)
	plain, err := algorithms.GreedyHillClimbing(context.Background(), start, bic)
	require.NoError(t, err)

	res, err := algorithms.GreedyHillClimbing(context.Background(), start, bic, algorithms.WithPatience(3))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, res.Score, plain.Score-1e-9)
	assert.Greater(t, res.Iterations, plain.Iterations, "patience explores past the local optimum")
	assert.Contains(t, []algorithms.StopReason{algorithms.StopPatience, algorithms.StopNoOperator}, res.Reason)
	assert.InDelta(t, scores.TotalScore(res.Model, bic), res.Score, 1e-6)
}

func TestGreedyHillClimbing_MaxIters(t *testing.T) {
	start, bic := chain(t)
	res, err := algorithms.GreedyHillClimbing(context.Background(), start, bic, algorithms.WithMaxIters(1))
	require.NoError(t, err)
	assert.Equal(t, algorithms.StopMaxIters, res.Reason)
	assert.Equal(t, 1, res.Iterations)
	assert.Equal(t, 1, res.Model.NumArcs())
}

func TestGreedyHillClimbing_Lists(t *testing.T) {
	start, bic := chain(t)
	res, err := algorithms.GreedyHillClimbing(context.Background(), start, bic,
		algorithms.WithWhitelist(dag.ArcList{{Source: "d", Target: "a"}}),
		algorithms.WithBlacklist(dag.ArcList{{Source: "b", Target: "c"}, {Source: "c", Target: "b"}}),
		algorithms.WithMaxIndegree(1),
	)
	require.NoError(t, err)
	assert.True(t, res.Model.HasArc("d", "a"))
	assert.False(t, adjacent(res.Model, "b", "c"))
	for v := 0; v < res.Model.NumNodes(); v++ {
		assert.LessOrEqual(t, res.Model.NumParents(v), 1)
	}
}

func TestGreedyHillClimbing_Canceled(t *testing.T) {
	start, bic := chain(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := algorithms.GreedyHillClimbing(ctx, start, bic)
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, res)
	assert.Equal(t, algorithms.StopCanceled, res.Reason)
	assert.Zero(t, res.Iterations)
}

func TestGreedyHillClimbing_MetricsAndLogs(t *testing.T) {
	start, bic := chain(t)
	reg := prometheus.NewRegistry()
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	res, err := algorithms.GreedyHillClimbing(context.Background(), start, bic,
		algorithms.WithRegisterer(reg), algorithms.WithLogger(logger))
	require.NoError(t, err)

	families, err := reg.Gather()
	require.NoError(t, err)
	got := map[string]float64{}
	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			if mf.GetName() == "bnsearch_operators_applied_total" {
				labels := map[string]string{}
				for _, lp := range metric.GetLabel() {
					labels[lp.GetName()] = lp.GetValue()
				}
				assert.Equal(t, "arcs", labels["set"])
				assert.Contains(t, []string{"AddArc", "RemoveArc", "FlipArc"}, labels["kind"])
			}
			switch {
			case metric.GetCounter() != nil:
				got[mf.GetName()] += metric.GetCounter().GetValue()
			case metric.GetGauge() != nil:
				got[mf.GetName()] = metric.GetGauge().GetValue()
			}
		}
	}
	assert.Equal(t, float64(res.Iterations), got["bnsearch_iterations_total"])
	assert.Equal(t, float64(res.Iterations), got["bnsearch_operators_applied_total"])
	assert.InDelta(t, res.Score, got["bnsearch_score"], 1e-9)

	assert.Contains(t, buf.String(), "structure search started")
	assert.Contains(t, buf.String(), `"sets":["arcs"]`)
	assert.Contains(t, buf.String(), "structure search finished")
	assert.Contains(t, buf.String(), "operator applied")
}

func TestGreedyHillClimbing_Semiparametric(t *testing.T) {
	start, err := models.NewSemiparametricBN([]string{"x", "y"}, nil, nil)
	require.NoError(t, err)
	h, err := scores.NewHoldoutLikelihood(testutil.Nonlinear(600, 11), 0.3, 5)
	require.NoError(t, err)

	res, err := algorithms.GreedyHillClimbing(context.Background(), start, h)
	require.NoError(t, err)
	sp := res.Model.(*models.SemiparametricBN)
	assert.Equal(t, factors.CKDEType, sp.NodeTypes()["y"], sp.String())
	assert.True(t, adjacent(sp, "x", "y"), sp.String())
	assert.InDelta(t, scores.TotalScore(sp, h), res.Score, 1e-6)

	fixed, err := algorithms.GreedyHillClimbing(context.Background(), start, h,
		algorithms.WithTypeWhitelist([]operators.NodeTypeAssignment{{Node: "y", Type: factors.LinearGaussianType}}))
	require.NoError(t, err)
	assert.Equal(t, factors.LinearGaussianType, fixed.Model.(*models.SemiparametricBN).NodeTypes()["y"])
}

func TestGreedyHillClimbing_Errors(t *testing.T) {
	start, bic := chain(t)
	ctx := context.Background()

	_, err := algorithms.GreedyHillClimbing(ctx, start, bic, algorithms.WithPatience(-1))
	assert.ErrorIs(t, err, algorithms.ErrInvalidOption)
	_, err = algorithms.GreedyHillClimbing(ctx, start, bic, algorithms.WithEpsilon(-1))
	assert.ErrorIs(t, err, algorithms.ErrInvalidOption)

	_, err = algorithms.GreedyHillClimbing(ctx, start, bic,
		algorithms.WithTypeWhitelist([]operators.NodeTypeAssignment{{Node: "a", Type: factors.CKDEType}}))
	assert.ErrorIs(t, err, operators.ErrIncompatibleModel)

	_, err = algorithms.GreedyHillClimbing(ctx, start, bic,
		algorithms.WithWhitelist(dag.ArcList{{Source: "a", Target: "b"}, {Source: "b", Target: "a"}}))
	assert.ErrorIs(t, err, dag.ErrCycle)

	sp, err := models.NewSemiparametricBN(testutil.ChainNames, nil, nil)
	require.NoError(t, err)
	_, err = algorithms.GreedyHillClimbing(ctx, sp, bic)
	assert.ErrorIs(t, err, operators.ErrIncompatibleScore)
}

// withConstant appends a constant column "k". Every fit of k is degenerate and
// k as a parent makes the design singular, so those local scores are -Inf.
func withConstant(t *testing.T, df *dataset.DataFrame) *dataset.DataFrame {
	t.Helper()
	names := append(df.Names(), "k")
	cols := make([][]float64, 0, len(names))
	for j := 0; j < df.NumColumns(); j++ {
		cols = append(cols, df.Column(j))
	}
	k := make([]float64, df.NumRows())
	for i := range k {
		k[i] = 2.5
	}
	out, err := dataset.New(names, append(cols, k))
	require.NoError(t, err)

	return out
}

func TestGreedyHillClimbing_DegenerateColumn(t *testing.T) {
	df := withConstant(t, testutil.Chain(500, 7))
	holdout, err := scores.NewHoldoutLikelihood(df, 0.25, 3)
	require.NoError(t, err)
	gbn, err := models.NewGaussianNetwork(df.Names(), nil)
	require.NoError(t, err)
	spbn, err := models.NewSemiparametricBN(df.Names(), nil, nil)
	require.NoError(t, err)

	cases := []struct {
		name  string
		start models.BayesianNetwork
		score scores.Score
		opts  []algorithms.Option
		stops []algorithms.StopReason
	}{
		{"bic", gbn, scores.NewBIC(df), nil,
			[]algorithms.StopReason{algorithms.StopConverged, algorithms.StopNoOperator}},
		{"bic/patience", gbn, scores.NewBIC(df), []algorithms.Option{algorithms.WithPatience(2)},
			[]algorithms.StopReason{algorithms.StopPatience, algorithms.StopNoOperator}},
		{"holdout/gbn", gbn, holdout, nil,
			[]algorithms.StopReason{algorithms.StopConverged, algorithms.StopNoOperator}},
		{"holdout/spbn", spbn, holdout, nil,
			[]algorithms.StopReason{algorithms.StopConverged, algorithms.StopNoOperator}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := algorithms.GreedyHillClimbing(context.Background(), tc.start, tc.score, tc.opts...)
			require.NoError(t, err)

			assert.Contains(t, tc.stops, res.Reason)
			assert.Greater(t, res.Model.NumArcs(), 0, res.Model.String())
			assert.True(t, adjacent(res.Model, "a", "b"), res.Model.String())
			assert.True(t, adjacent(res.Model, "b", "c"), res.Model.String())
			for _, other := range []string{"a", "b", "c", "d"} {
				assert.False(t, adjacent(res.Model, "k", other), res.Model.String())
			}
			assert.True(t, math.IsInf(res.Score, -1), "the constant column pins the total at -Inf")
		})
	}
}
