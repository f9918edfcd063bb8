// SPDX-License-Identifier: MIT

package operators_test

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/bnsearch/internal/testutil"
	"github.com/katalvlaran/bnsearch/learning/operators"
	"github.com/katalvlaran/bnsearch/learning/scores"
	"github.com/katalvlaran/bnsearch/models"
)

// ExampleOperatorPool proposes the first edit of a hill-climbing run over
// data sampled from a → b → c with an isolated d.
func ExampleOperatorPool() {
	m, _ := models.NewGaussianNetwork(testutil.ChainNames, nil)
	bic := scores.NewBIC(testutil.Chain(500, 42))

	arcs, _ := operators.NewArcOperatorSet(m, bic, operators.WithMaxIndegree(2))
	pool, _ := operators.NewOperatorPool(m, bic, arcs)
	pool.CacheScores(m)

	op, ok := pool.FindMax(m)
	pair := []string{op.Source(), op.Target()}
	sort.Strings(pair)
	fmt.Println(ok, op.Kind(), pair, op.Delta() > 0)
	// Output: true AddArc [b c] true
}
