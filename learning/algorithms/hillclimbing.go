// SPDX-License-Identifier: MIT

// Package algorithms drives structure search over the operators engine.
//
// GreedyHillClimbing repeatedly applies the best edit proposed by an
// operators.OperatorPool. With patience it becomes a tabu search: it keeps
// applying the best non-tabu edit through non-improving stretches, remembers
// the best network seen and returns it once patience runs out.
package algorithms

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/katalvlaran/bnsearch/learning/operators"
	"github.com/katalvlaran/bnsearch/learning/scores"
	"github.com/katalvlaran/bnsearch/models"
)

// StopReason tells why the search ended.
type StopReason int

const (
	// StopNoOperator: no legal, non-tabu edit with a finite delta remains.
	StopNoOperator StopReason = iota
	// StopConverged: the best edit does not improve by more than epsilon.
	StopConverged
	// StopPatience: more than patience consecutive non-improving moves.
	StopPatience
	// StopMaxIters: the iteration budget was exhausted.
	StopMaxIters
	// StopCanceled: the context was canceled.
	StopCanceled
)

// String returns a short lower-case name.
func (r StopReason) String() string {
	switch r {
	case StopNoOperator:
		return "no-operator"
	case StopConverged:
		return "converged"
	case StopPatience:
		return "patience"
	case StopMaxIters:
		return "max-iters"
	case StopCanceled:
		return "canceled"
	default:
		return fmt.Sprintf("StopReason(%d)", int(r))
	}
}

// Result is the outcome of a search.
type Result struct {
	// Model is the best network found (an independent copy).
	Model models.BayesianNetwork
	// Score is the total score of Model.
	Score float64
	// Iterations counts applied operators.
	Iterations int
	Reason     StopReason
	Duration   time.Duration
}

// GreedyHillClimbing searches from a copy of start; start is not modified.
//
// Implementation:
//   - Stage 1: Copy start, insert whitelisted arcs, apply fixed node types.
//   - Stage 2: Build the pool: ArcOperatorSet, plus ChangeNodeTypeSet when the
//     network is a models.TypedNetwork; cache all scores.
//   - Stage 3: Loop: FindMaxTabu; stop if none, or if it does not beat epsilon
//     and patience is 0; apply; tabu the edit and its opposite; UpdateScores.
//     A new best (deltas summed since the last best exceed epsilon) resets
//     patience and clears the tabu set.
//
// Errors:
//   - ErrInvalidOption; construction errors from operators (incompatible
//     model or score, unknown nodes); whitelist arcs that cannot be inserted;
//     ctx.Err() on cancellation, returned together with the best result so far.
func GreedyHillClimbing(ctx context.Context, start models.BayesianNetwork, score scores.Score, opts ...Option) (*Result, error) {
	began := time.Now()
	o, err := buildOptions(opts)
	if err != nil {
		return nil, fmt.Errorf("GreedyHillClimbing: %w", err)
	}

	m, err := prepare(start, o)
	if err != nil {
		return nil, fmt.Errorf("GreedyHillClimbing: %w", err)
	}
	pool, err := newPool(m, score, o)
	if err != nil {
		return nil, fmt.Errorf("GreedyHillClimbing: %w", err)
	}
	met := newMetrics(o.registerer)
	log := o.logger.With("score", score.String(), "model", m.Kind().String())

	pool.CacheScores(m)
	res := &Result{Model: m.Clone(), Score: pool.Score()}
	met.setScore(res.Score)
	sets := make([]string, 0, len(pool.Sets()))
	for _, s := range pool.Sets() {
		sets = append(sets, s.Kind().String())
	}
	log.Info("structure search started",
		"nodes", m.NumNodes(), "arcs", m.NumArcs(), "sets", sets, "initial_score", res.Score)

	tabu := operators.NewTabuSet()
	patience := 0
	// gain is the score change since the best network, summed from operator
	// deltas; it stays finite when a degenerate node pins the total at -Inf.
	gain := 0.0
	done := func(r StopReason) {
		res.Reason = r
		res.Duration = time.Since(began)
		log.Info("structure search finished",
			"reason", r.String(), "iterations", res.Iterations, "score", res.Score, "arcs", res.Model.NumArcs(),
			"elapsed", res.Duration)
	}

	for {
		if err = ctx.Err(); err != nil {
			done(StopCanceled)
			return res, err
		}
		if o.maxIters > 0 && res.Iterations >= o.maxIters {
			done(StopMaxIters)
			return res, nil
		}

		op, ok := pool.FindMaxTabu(m, tabu)
		if !ok || math.IsInf(op.Delta(), -1) {
			done(StopNoOperator)
			return res, nil
		}
		if op.Delta() <= o.epsilon && o.patience == 0 {
			done(StopConverged)
			return res, nil
		}

		if err = op.Apply(m); err != nil {
			// The pool only proposes legal edits; a failure means the
			// network was modified behind its back.
			return res, fmt.Errorf("GreedyHillClimbing: apply %v: %w", op, err)
		}
		tabu.Insert(op)
		tabu.Insert(op.Opposite())
		pool.UpdateScores(m, op)
		res.Iterations++

		current := pool.Score()
		gain += op.Delta()
		met.observe(op, current)
		log.Debug("operator applied",
			"iteration", res.Iterations, "set", op.SetKind().String(), "op", op.String(), "current", current)

		if gain > o.epsilon {
			res.Model = m.Clone()
			res.Score = current
			patience = 0
			gain = 0
			tabu.Clear()
		} else {
			patience++
		}
		if o.callback != nil {
			o.callback(Step{Iteration: res.Iterations, Operator: op, Score: current, Best: res.Score})
		}
		if patience > o.patience {
			done(StopPatience)
			return res, nil
		}
	}
}

// prepare copies start and applies the whitelist and fixed node types.
func prepare(start models.BayesianNetwork, o options) (models.BayesianNetwork, error) {
	m := start.Clone()
	for _, a := range o.whitelist {
		if m.HasArc(a.Source, a.Target) {
			continue
		}
		if err := m.AddArc(a.Source, a.Target); err != nil {
			return nil, fmt.Errorf("whitelist %v: %w", a, err)
		}
	}
	if len(o.typeWhitelist) == 0 {
		return m, nil
	}
	tn, ok := m.(models.TypedNetwork)
	if !ok {
		return nil, fmt.Errorf("type whitelist on %v: %w", m.Kind(), operators.ErrIncompatibleModel)
	}
	for _, a := range o.typeWhitelist {
		idx, ok := tn.Index(a.Node)
		if !ok {
			return nil, fmt.Errorf("type whitelist %q: %w", a.Node, operators.ErrUnknownNode)
		}
		if err := tn.SetNodeType(idx, a.Type); err != nil {
			return nil, fmt.Errorf("type whitelist %q: %w", a.Node, err)
		}
	}

	return m, nil
}

// newPool registers the arc set first, so arc edits win ties.
func newPool(m models.BayesianNetwork, score scores.Score, o options) (*operators.OperatorPool, error) {
	arcs, err := operators.NewArcOperatorSet(m, score,
		operators.WithWhitelist(o.whitelist),
		operators.WithBlacklist(o.blacklist),
		operators.WithMaxIndegree(o.maxIndegree),
	)
	if err != nil {
		return nil, err
	}
	sets := []operators.OperatorSet{arcs}
	if _, typed := m.(models.TypedNetwork); typed {
		types, err := operators.NewChangeNodeTypeSet(m, score, o.typeWhitelist...)
		if err != nil {
			return nil, err
		}
		sets = append(sets, types)
	}

	return operators.NewOperatorPool(m, score, sets...)
}
