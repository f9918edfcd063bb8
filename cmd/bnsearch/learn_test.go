// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/bnsearch/internal/testutil"
)

// writeChainCSV dumps testutil.Chain to a temporary CSV file.
func writeChainCSV(t *testing.T, n int) string {
	t.Helper()
	df := testutil.Chain(n, 3)
	var b strings.Builder
	b.WriteString(strings.Join(df.Names(), ",") + "\n")
	for r := 0; r < df.NumRows(); r++ {
		row := make([]string, df.NumColumns())
		for j := range row {
			row[j] = fmt.Sprintf("%.10g", df.Column(j)[r])
		}
		b.WriteString(strings.Join(row, ",") + "\n")
	}
	path := filepath.Join(t.TempDir(), "chain.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o600))

	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())

	return out.String(), err
}

func TestLearn_Gaussian(t *testing.T) {
	path := writeChainCSV(t, 400)
	out, err := run(t, "learn", "--data", path, "--metrics", "--log-level", "warn")
	require.NoError(t, err)
	assert.Contains(t, out, "model: GaussianNetwork")
	assert.Contains(t, out, "arcs:")
	assert.Contains(t, out, "bnsearch_iterations_total")
}

func TestLearn_ConfigAndOverrides(t *testing.T) {
	path := writeChainCSV(t, 200)
	cfgPath := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("model: spbn\nscore: holdout\nmax_iters: 2\n"), 0o600))

	out, err := run(t, "learn", "--data", path, "--config", cfgPath, "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "model: SemiparametricBN")
	assert.Contains(t, out, "node types:")
	assert.Contains(t, out, "iterations: 2 (max-iters)")

	out, err = run(t, "learn", "--data", path, "--config", cfgPath, "--max-iters", "1", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "iterations: 1 (max-iters)")
}

func TestLearn_Errors(t *testing.T) {
	_, err := run(t, "learn")
	assert.Error(t, err, "--data is required")

	path := writeChainCSV(t, 20)
	_, err = run(t, "learn", "--data", path, "--model", "spbn", "--score", "bic")
	assert.Error(t, err)

	_, err = run(t, "learn", "--data", filepath.Join(t.TempDir(), "none.csv"))
	assert.Error(t, err)
}
