// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/bnsearch/dataset"
	"github.com/katalvlaran/bnsearch/internal/config"
	"github.com/katalvlaran/bnsearch/learning/algorithms"
	"github.com/katalvlaran/bnsearch/learning/scores"
	"github.com/katalvlaran/bnsearch/models"
)

// learnFlags mirrors the config keys that can be overridden on the command line.
type learnFlags struct {
	data        string
	config      string
	model       string
	score       string
	maxIndegree int
	maxIters    int
	patience    int
	logLevel    string
	metrics     bool
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "bnsearch",
		Short:         "Score-based Bayesian network structure learning",
		SilenceUsage:  true,
	}
	root.AddCommand(newLearnCmd())

	return root
}

func newLearnCmd() *cobra.Command {
	var f learnFlags
	cmd := &cobra.Command{
		Use:   "learn",
		Short: "Learn a network structure from a CSV file",
		Long: `Runs greedy hill climbing (tabu search when --patience > 0) over arc
additions, removals and reversals, and over node types for semiparametric
networks. The CSV file needs a header row of variable names.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(cmd, f)
			if err != nil {
				return err
			}
			return runLearn(cmd, f.data, cfg)
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&f.data, "data", "", "CSV file with a header row (required)")
	fl.StringVar(&f.config, "config", "", "YAML configuration file")
	fl.StringVar(&f.model, "model", "", "model kind: gbn or spbn")
	fl.StringVar(&f.score, "score", "", "score: bic or holdout")
	fl.IntVar(&f.maxIndegree, "max-indegree", 0, "maximum parents per node (0 = unbounded)")
	fl.IntVar(&f.maxIters, "max-iters", 0, "iteration budget (0 = unbounded)")
	fl.IntVar(&f.patience, "patience", 0, "non-improving moves tolerated before stopping")
	fl.StringVar(&f.logLevel, "log-level", "", "debug, info, warn or error")
	fl.BoolVar(&f.metrics, "metrics", false, "print search metrics in Prometheus text format")
	_ = cmd.MarkFlagRequired("data")

	return cmd
}

// resolveConfig loads the file (or defaults) and applies explicitly set flags.
func resolveConfig(cmd *cobra.Command, f learnFlags) (config.Config, error) {
	cfg := config.Default()
	if f.config != "" {
		var err error
		if cfg, err = config.Load(f.config); err != nil {
			return cfg, err
		}
	}
	fl := cmd.Flags()
	if fl.Changed("model") {
		cfg.Model = f.model
	}
	if fl.Changed("score") {
		cfg.Score = f.score
	}
	if fl.Changed("max-indegree") {
		cfg.MaxIndegree = f.maxIndegree
	}
	if fl.Changed("max-iters") {
		cfg.MaxIters = f.maxIters
	}
	if fl.Changed("patience") {
		cfg.Patience = f.patience
	}
	if fl.Changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if fl.Changed("metrics") {
		cfg.Metrics = f.metrics
	}

	return cfg, cfg.Validate()
}

func runLearn(cmd *cobra.Command, path string, cfg config.Config) error {
	df, err := dataset.ReadCSVFile(path)
	if err != nil {
		return err
	}
	start, err := models.New(cfg.Kind(), df.Names(), nil)
	if err != nil {
		return err
	}
	score, err := newScore(df, cfg)
	if err != nil {
		return err
	}

	lvl, _ := cfg.SlogLevel()
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: lvl}))
	opts := append(cfg.SearchOptions(), algorithms.WithLogger(logger))
	var reg *prometheus.Registry
	if cfg.Metrics {
		reg = prometheus.NewRegistry()
		opts = append(opts, algorithms.WithRegisterer(reg))
	}

	res, err := algorithms.GreedyHillClimbing(cmd.Context(), start, score, opts...)
	if res != nil {
		printResult(cmd.OutOrStdout(), res)
	}
	if err != nil {
		return err
	}
	if reg != nil {
		return writeMetrics(cmd.OutOrStdout(), reg)
	}

	return nil
}

func newScore(df *dataset.DataFrame, cfg config.Config) (scores.Score, error) {
	if strings.EqualFold(cfg.Score, config.ScoreHoldout) {
		return scores.NewHoldoutLikelihood(df, cfg.HoldoutFraction, cfg.Seed)
	}

	return scores.NewBIC(df), nil
}

func printResult(w io.Writer, res *algorithms.Result) {
	fmt.Fprintf(w, "model: %v\n", res.Model.Kind())
	fmt.Fprintf(w, "score: %.6f\n", res.Score)
	fmt.Fprintf(w, "iterations: %d (%v)\n", res.Iterations, res.Reason)
	fmt.Fprintln(w, "arcs:")
	for _, a := range res.Model.Arcs() {
		fmt.Fprintf(w, "  %v\n", a)
	}
	if sp, ok := res.Model.(*models.SemiparametricBN); ok {
		fmt.Fprintln(w, "node types:")
		for _, name := range sp.Names() {
			fmt.Fprintf(w, "  %s: %v\n", name, sp.NodeTypes()[name])
		}
	}
}

func writeMetrics(w io.Writer, reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err = expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}

	return nil
}
