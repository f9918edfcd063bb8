// SPDX-License-Identifier: MIT

package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/bnsearch/dag"
	"github.com/katalvlaran/bnsearch/factors"
	"github.com/katalvlaran/bnsearch/models"
)

func TestKind(t *testing.T) {
	k, err := models.ParseKind("SPBN")
	require.NoError(t, err)
	assert.Equal(t, models.Semiparametric, k)
	k, err = models.ParseKind("gbn")
	require.NoError(t, err)
	assert.Equal(t, models.Gaussian, k)
	_, err = models.ParseKind("kdebn")
	assert.ErrorIs(t, err, models.ErrUnknownKind)
	assert.Equal(t, "GaussianNetwork", models.Gaussian.String())

	_, err = models.New(models.Kind(5), []string{"a"}, nil)
	assert.ErrorIs(t, err, models.ErrUnknownKind)
}

func TestGaussianNetwork(t *testing.T) {
	m, err := models.New(models.Gaussian, []string{"a", "b", "c"}, dag.ArcList{{Source: "a", Target: "b"}})
	require.NoError(t, err)
	assert.Equal(t, models.Gaussian, m.Kind())
	_, typed := m.(models.TypedNetwork)
	assert.False(t, typed, "Gaussian networks have no node types")

	c := m.Clone()
	require.NoError(t, c.AddArc("b", "c"))
	assert.False(t, m.HasArc("b", "c"))
	assert.Equal(t, "GaussianNetwork[a -> b, b -> c]", c.String())

	_, err = models.NewGaussianNetwork([]string{"a", "b"}, dag.ArcList{{Source: "a", Target: "b"}, {Source: "b", Target: "a"}})
	assert.ErrorIs(t, err, dag.ErrCycle)
}

func TestSemiparametricBN(t *testing.T) {
	m, err := models.NewSemiparametricBN([]string{"a", "b"}, dag.ArcList{{Source: "a", Target: "b"}},
		map[string]factors.NodeType{"b": factors.CKDEType})
	require.NoError(t, err)

	var tn models.TypedNetwork = m
	assert.Equal(t, factors.LinearGaussianType, tn.NodeType(0))
	assert.Equal(t, factors.CKDEType, tn.NodeType(1))
	assert.Equal(t, "SemiparametricBN[a -> b; b:CKDE]", m.String())

	c := m.Clone().(*models.SemiparametricBN)
	require.NoError(t, c.SetNodeType(0, factors.CKDEType))
	assert.Equal(t, factors.LinearGaussianType, m.NodeType(0), "clone must not share types")
	assert.Equal(t, map[string]factors.NodeType{"a": factors.CKDEType, "b": factors.CKDEType}, c.NodeTypes())

	assert.ErrorIs(t, m.SetNodeType(9, factors.CKDEType), dag.ErrUnknownNode)
	assert.ErrorIs(t, m.SetNodeType(0, factors.NodeType(4)), models.ErrInvalidNodeType)

	_, err = models.NewSemiparametricBN([]string{"a"}, nil, map[string]factors.NodeType{"z": factors.CKDEType})
	assert.ErrorIs(t, err, dag.ErrUnknownNode)
}
