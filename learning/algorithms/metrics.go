// SPDX-License-Identifier: MIT

package algorithms

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/katalvlaran/bnsearch/learning/operators"
)

// metrics groups the collectors of one search run. A nil *metrics is a no-op.
type metrics struct {
	applied    *prometheus.CounterVec
	delta      prometheus.Histogram
	score      prometheus.Gauge
	iterations prometheus.Counter
}

func newMetrics(reg prometheus.Registerer) *metrics {
	if reg == nil {
		return nil
	}
	factory := promauto.With(reg)

	return &metrics{
		applied: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bnsearch",
			Name:      "operators_applied_total",
			Help:      "Operators applied by the structure search, by operator set and kind.",
		}, []string{"set", "kind"}),
		delta: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "bnsearch",
			Name:      "operator_delta",
			Help:      "Score delta of applied operators.",
			Buckets:   []float64{-100, -10, -1, 0, 1, 10, 100, 1000},
		}),
		score: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "bnsearch",
			Name:      "score",
			Help:      "Total score of the current network.",
		}),
		iterations: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "bnsearch",
			Name:      "iterations_total",
			Help:      "Search iterations executed.",
		}),
	}
}

func (m *metrics) observe(op operators.Operator, score float64) {
	if m == nil {
		return
	}
	m.applied.WithLabelValues(op.SetKind().String(), op.Kind().String()).Inc()
	m.delta.Observe(op.Delta())
	m.score.Set(score)
	m.iterations.Inc()
}

func (m *metrics) setScore(score float64) {
	if m == nil {
		return
	}
	m.score.Set(score)
}
