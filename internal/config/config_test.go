// SPDX-License-Identifier: MIT

package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/bnsearch/dag"
	"github.com/katalvlaran/bnsearch/factors"
	"github.com/katalvlaran/bnsearch/internal/config"
	"github.com/katalvlaran/bnsearch/learning/operators"
	"github.com/katalvlaran/bnsearch/models"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, models.Gaussian, cfg.Kind())
	lvl, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, lvl)
	assert.Len(t, cfg.SearchOptions(), 7)
}

func TestLoad(t *testing.T) {
	doc := `
model: spbn
score: holdout
holdout_fraction: 0.25
seed: 9
max_indegree: 2
patience: 5
whitelist:
  - {source: a, target: b}
blacklist:
  - {source: c, target: a}
type_whitelist:
  - {node: c, type: ckde}
log_level: debug
metrics: true
`
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, models.Semiparametric, cfg.Kind())
	assert.Equal(t, 0.25, cfg.HoldoutFraction)
	assert.Equal(t, int64(9), cfg.Seed)
	assert.Equal(t, 2, cfg.MaxIndegree)
	assert.Equal(t, 5, cfg.Patience)
	assert.Equal(t, dag.ArcList{{Source: "a", Target: "b"}}, cfg.Whitelist)
	assert.Equal(t, dag.ArcList{{Source: "c", Target: "a"}}, cfg.Blacklist)
	assert.Equal(t, []operators.NodeTypeAssignment{{Node: "c", Type: factors.CKDEType}}, cfg.TypeWhitelist)
	assert.True(t, cfg.Metrics)
	assert.Equal(t, 0.0, cfg.Epsilon, "unset keys keep defaults")

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParse_Invalid(t *testing.T) {
	for name, doc := range map[string]string{
		"unknown key":   "modle: gbn\n",
		"bad model":     "model: dbn\n",
		"bad score":     "score: aic\n",
		"bic on spbn":   "model: spbn\nscore: bic\n",
		"bad fraction":  "score: holdout\nholdout_fraction: 1.5\n",
		"negative":      "patience: -1\n",
		"bad log level": "log_level: loud\n",
		"bad type":      "type_whitelist: [{node: a, type: discrete}]\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := config.Parse([]byte(doc))
			assert.Error(t, err)
		})
	}

	_, err := config.Parse([]byte("model: dbn\n"))
	assert.ErrorIs(t, err, config.ErrInvalidConfig)

	cfg, err := config.Parse(nil)
	require.NoError(t, err, "empty document keeps defaults")
	assert.Equal(t, config.Default(), cfg)
}
