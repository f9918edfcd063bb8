// SPDX-License-Identifier: MIT

package algorithms

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/katalvlaran/bnsearch/dag"
	"github.com/katalvlaran/bnsearch/learning/operators"
)

// ErrInvalidOption indicates a negative budget, epsilon or patience.
var ErrInvalidOption = errors.New("algorithms: invalid option")

// Step describes one applied operator, passed to the callback.
type Step struct {
	Iteration int
	Operator  operators.Operator
	// Score is the total score after the operator was applied.
	Score float64
	// Best is the best total score seen so far.
	Best float64
}

// options holds the hill-climbing configuration.
type options struct {
	maxIters      int
	epsilon       float64
	patience      int
	maxIndegree   int
	whitelist     dag.ArcList
	blacklist     dag.ArcList
	typeWhitelist []operators.NodeTypeAssignment
	logger        *slog.Logger
	registerer    prometheus.Registerer
	callback      func(Step)
}

// Option configures GreedyHillClimbing.
type Option func(*options)

// WithMaxIters bounds the number of iterations; 0 (default) is unbounded.
func WithMaxIters(n int) Option { return func(o *options) { o.maxIters = n } }

// WithEpsilon sets the minimum delta counted as an improvement (default 0).
func WithEpsilon(eps float64) Option { return func(o *options) { o.epsilon = eps } }

// WithPatience allows up to p consecutive non-improving moves before stopping.
// With p = 0 (default) the search is plain greedy hill climbing.
func WithPatience(p int) Option { return func(o *options) { o.patience = p } }

// WithMaxIndegree bounds the number of parents per node; <= 0 is unbounded.
func WithMaxIndegree(k int) Option { return func(o *options) { o.maxIndegree = k } }

// WithWhitelist forces arcs into the start network and keeps them fixed.
func WithWhitelist(arcs dag.ArcList) Option {
	return func(o *options) { o.whitelist = append(o.whitelist, arcs...) }
}

// WithBlacklist forbids adding the listed arcs.
func WithBlacklist(arcs dag.ArcList) Option {
	return func(o *options) { o.blacklist = append(o.blacklist, arcs...) }
}

// WithTypeWhitelist fixes node types in the start network and keeps them
// out of the search. Requires a models.TypedNetwork.
func WithTypeWhitelist(types []operators.NodeTypeAssignment) Option {
	return func(o *options) { o.typeWhitelist = append(o.typeWhitelist, types...) }
}

// WithLogger sets the structured logger; nil discards output.
func WithLogger(l *slog.Logger) Option { return func(o *options) { o.logger = l } }

// WithRegisterer registers search metrics on reg; nil disables metrics.
// Collectors are created per call, so give each run its own registry.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) { o.registerer = reg }
}

// WithCallback is invoked after every applied operator.
func WithCallback(fn func(Step)) Option { return func(o *options) { o.callback = fn } }

func buildOptions(opts []Option) (options, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	switch {
	case o.maxIters < 0:
		return o, fmt.Errorf("max iterations %d: %w", o.maxIters, ErrInvalidOption)
	case o.epsilon < 0:
		return o, fmt.Errorf("epsilon %g: %w", o.epsilon, ErrInvalidOption)
	case o.patience < 0:
		return o, fmt.Errorf("patience %d: %w", o.patience, ErrInvalidOption)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return o, nil
}
