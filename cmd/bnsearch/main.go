// SPDX-License-Identifier: MIT

// Command bnsearch learns the structure of a Bayesian network from a CSV file.
//
//	bnsearch learn --data samples.csv [--config run.yaml] [--model spbn --score holdout]
package main

import (
	"context"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
