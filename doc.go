// SPDX-License-Identifier: MIT

// Package bnsearch learns the structure of continuous Bayesian networks by
// greedy, score-based local search over directed acyclic graphs.
//
// A search step proposes local operators (add, remove or reverse one arc, or
// switch one node between a linear Gaussian and a conditional kernel density
// CPD), scores each by the change it causes in a decomposable score, applies
// the best legal one and updates only the deltas the change can affect.
//
// Layout:
//
//	dag/                  bitset-backed DAG with cycle-safe mutation queries
//	matrix/               dense matrices, Gram products and LU solves
//	dataset/              column-oriented DataFrame, CSV input, holdout split
//	factors/              LinearGaussianCPD and CKDE estimators
//	models/               GaussianNetwork and SemiparametricBN
//	learning/scores/      BIC and holdout log-likelihood
//	learning/operators/   Operator, TabuSet, LocalScoreCache, operator sets, OperatorPool
//	learning/algorithms/  GreedyHillClimbing driver with tabu and patience
//	internal/config/      YAML run configuration
//	cmd/bnsearch/         command-line entry point
//
// Quick example:
//
//	df, _ := dataset.ReadCSVFile("data.csv")
//	start, _ := models.New(models.Gaussian, df.Names(), nil)
//	res, _ := algorithms.GreedyHillClimbing(ctx, start, scores.NewBIC(df),
//		algorithms.WithMaxIndegree(3))
//	fmt.Println(res.Model)
//
//	go install github.com/katalvlaran/bnsearch/cmd/bnsearch@latest
package bnsearch
