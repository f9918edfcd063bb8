// SPDX-License-Identifier: MIT

package operators_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/bnsearch/factors"
	"github.com/katalvlaran/bnsearch/learning/operators"
)

func TestTabuSet(t *testing.T) {
	var nilSet *operators.TabuSet
	assert.True(t, nilSet.Empty())

	tabu := operators.NewTabuSet()
	assert.True(t, tabu.Empty())

	tabu.Insert(operators.NewAddArc("a", "b", 1))
	tabu.Insert(operators.NewAddArc("a", "b", 2))
	tabu.Insert(operators.NewChangeNodeType("c", factors.CKDEType, 1))
	assert.Equal(t, 2, tabu.Len())
	assert.False(t, tabu.Empty())

	assert.True(t, tabu.Contains(operators.NewAddArc("a", "b", -99)))
	assert.False(t, tabu.Contains(operators.NewRemoveArc("a", "b", 1)))
	assert.False(t, tabu.Contains(operators.NewAddArc("b", "a", 1)))
	assert.True(t, tabu.Contains(operators.NewChangeNodeType("c", factors.CKDEType, 5)))
	assert.False(t, tabu.Contains(operators.NewChangeNodeType("c", factors.LinearGaussianType, 5)))

	c := tabu.Clone()
	tabu.Clear()
	assert.True(t, tabu.Empty())
	assert.Equal(t, 2, c.Len(), "clone is independent")
}
