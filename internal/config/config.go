// SPDX-License-Identifier: MIT

// Package config loads the structure-learning configuration from YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/bnsearch/dag"
	"github.com/katalvlaran/bnsearch/learning/algorithms"
	"github.com/katalvlaran/bnsearch/learning/operators"
	"github.com/katalvlaran/bnsearch/models"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Score names accepted in Config.Score.
const (
	ScoreBIC     = "bic"
	ScoreHoldout = "holdout"
)

// Config is the on-disk configuration of a learning run.
type Config struct {
	// Model is "gbn" (Gaussian) or "spbn" (semiparametric).
	Model string `yaml:"model"`
	// Score is "bic" or "holdout".
	Score string `yaml:"score"`
	// HoldoutFraction is the share of rows held out by the holdout score.
	HoldoutFraction float64 `yaml:"holdout_fraction"`
	// Seed drives the holdout split.
	Seed int64 `yaml:"seed"`

	MaxIndegree int     `yaml:"max_indegree"`
	MaxIters    int     `yaml:"max_iters"`
	Epsilon     float64 `yaml:"epsilon"`
	Patience    int     `yaml:"patience"`

	Whitelist     dag.ArcList                    `yaml:"whitelist"`
	Blacklist     dag.ArcList                    `yaml:"blacklist"`
	TypeWhitelist []operators.NodeTypeAssignment `yaml:"type_whitelist"`

	// LogLevel is debug, info, warn or error.
	LogLevel string `yaml:"log_level"`
	// Metrics dumps the search metrics after the run.
	Metrics bool `yaml:"metrics"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Model:           "gbn",
		Score:           ScoreBIC,
		HoldoutFraction: 0.2,
		Seed:            1,
		MaxIndegree:     0,
		MaxIters:        0,
		Epsilon:         0,
		Patience:        0,
		LogLevel:        "info",
	}
}

// Load reads path over Default. Unknown keys are rejected.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	return Parse(data)
}

// Parse decodes YAML over Default and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks field ranges and enumerations.
func (c Config) Validate() error {
	if _, err := models.ParseKind(c.Model); err != nil {
		return fmt.Errorf("%w: model %q", ErrInvalidConfig, c.Model)
	}
	switch strings.ToLower(c.Score) {
	case ScoreBIC, ScoreHoldout:
	default:
		return fmt.Errorf("%w: score %q", ErrInvalidConfig, c.Score)
	}
	if strings.EqualFold(c.Score, ScoreBIC) && c.Kind() == models.Semiparametric {
		return fmt.Errorf("%w: bic does not support spbn", ErrInvalidConfig)
	}
	if !(c.HoldoutFraction > 0 && c.HoldoutFraction < 1) {
		return fmt.Errorf("%w: holdout_fraction %g not in (0,1)", ErrInvalidConfig, c.HoldoutFraction)
	}
	if c.MaxIters < 0 || c.Patience < 0 || c.Epsilon < 0 {
		return fmt.Errorf("%w: max_iters, patience and epsilon must be non-negative", ErrInvalidConfig)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}

	return nil
}

// Kind returns the parsed model kind.
func (c Config) Kind() models.Kind {
	k, _ := models.ParseKind(c.Model)

	return k
}

// SlogLevel parses LogLevel.
func (c Config) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("%w: log_level %q", ErrInvalidConfig, c.LogLevel)
	}

	return lvl, nil
}

// SearchOptions maps the search fields onto algorithms options.
func (c Config) SearchOptions() []algorithms.Option {
	return []algorithms.Option{
		algorithms.WithMaxIndegree(c.MaxIndegree),
		algorithms.WithMaxIters(c.MaxIters),
		algorithms.WithEpsilon(c.Epsilon),
		algorithms.WithPatience(c.Patience),
		algorithms.WithWhitelist(c.Whitelist),
		algorithms.WithBlacklist(c.Blacklist),
		algorithms.WithTypeWhitelist(c.TypeWhitelist),
	}
}
