// SPDX-License-Identifier: MIT

package factors

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/bnsearch/dataset"
	"github.com/katalvlaran/bnsearch/matrix"
)

// minVariance is the floor under which a residual variance counts as zero.
const minVariance = 1e-12

// LinearGaussianCPD is x | pa ~ N(Beta[0] + Σ Beta[i+1]·pa[i], Variance).
type LinearGaussianCPD struct {
	variable string
	evidence []string

	// Beta holds the intercept followed by one coefficient per evidence variable.
	Beta []float64
	// Variance is the unbiased residual variance RSS/(N-|evidence|-1).
	Variance float64
	// StdErr holds the standard error of each Beta entry, sqrt(Variance·[(XᵀX)⁻¹]ᵢᵢ).
	StdErr []float64
}

// FitLinearGaussian estimates the CPD by ordinary least squares.
//
// Implementation:
//   - Stage 1: Build the N×(k+1) design [1, pa₁..pa_k].
//   - Stage 2: Solve (XᵀX)β = Xᵀy with matrix.Gram / MulTVec / Solve.
//   - Stage 3: Variance = RSS/(N-k-1); StdErr from the diagonal of (XᵀX)⁻¹.
//
// Errors:
//   - ErrUnknownVariable, ErrInsufficientData (N <= k+1),
//     ErrDegenerate (singular XᵀX or zero residual variance).
//
// Complexity:
//   - Time O(N·k² + k³), Space O(N·k).
func FitLinearGaussian(df *dataset.DataFrame, variable string, evidence []string) (*LinearGaussianCPD, error) {
	cols, err := columns(df, append([]string{variable}, evidence...))
	if err != nil {
		return nil, fmt.Errorf("FitLinearGaussian: %w", err)
	}
	y, ev := cols[0], cols[1:]
	n, p := df.NumRows(), len(evidence)+1
	if n <= p {
		return nil, fmt.Errorf("FitLinearGaussian(%s): %d rows for %d parameters: %w", variable, n, p, ErrInsufficientData)
	}

	data := make([]float64, n*p)
	for r := 0; r < n; r++ {
		data[r*p] = 1
		for j, col := range ev {
			data[r*p+j+1] = col[r]
		}
	}
	x, err := matrix.NewDenseFrom(n, p, data)
	if err != nil {
		return nil, fmt.Errorf("FitLinearGaussian(%s): %w", variable, err)
	}
	gram, err := matrix.Gram(x)
	if err != nil {
		return nil, fmt.Errorf("FitLinearGaussian(%s): %w", variable, err)
	}
	xty, err := matrix.MulTVec(x, y)
	if err != nil {
		return nil, fmt.Errorf("FitLinearGaussian(%s): %w", variable, err)
	}
	beta, err := matrix.Solve(gram, xty)
	if err != nil {
		if errors.Is(err, matrix.ErrSingular) {
			return nil, fmt.Errorf("FitLinearGaussian(%s): %w: %v", variable, ErrDegenerate, err)
		}
		return nil, fmt.Errorf("FitLinearGaussian(%s): %w", variable, err)
	}

	cpd := &LinearGaussianCPD{
		variable: variable,
		evidence: append([]string(nil), evidence...),
		Beta:     beta,
	}
	rss := 0.0
	for r := 0; r < n; r++ {
		res := y[r] - cpd.mean(ev, r)
		rss += res * res
	}
	cpd.Variance = rss / float64(n-p)
	if !(cpd.Variance > minVariance) {
		return nil, fmt.Errorf("FitLinearGaussian(%s): variance %g: %w", variable, cpd.Variance, ErrDegenerate)
	}
	if cpd.StdErr, err = standardErrors(gram, cpd.Variance); err != nil {
		return nil, fmt.Errorf("FitLinearGaussian(%s): %w: %v", variable, ErrDegenerate, err)
	}

	return cpd, nil
}

// standardErrors returns sqrt(variance·[(XᵀX)⁻¹]ᵢᵢ) for every coefficient.
func standardErrors(gram *matrix.Dense, variance float64) ([]float64, error) {
	inv, err := matrix.Inverse(gram)
	if err != nil {
		return nil, err
	}
	out := make([]float64, inv.Rows())
	for i := range out {
		v, err := inv.At(i, i)
		if err != nil {
			return nil, err
		}
		out[i] = math.Sqrt(variance * v)
	}

	return out, nil
}

// Type returns LinearGaussianType.
func (c *LinearGaussianCPD) Type() NodeType { return LinearGaussianType }

// Variable returns the modelled variable.
func (c *LinearGaussianCPD) Variable() string { return c.variable }

// Evidence returns a copy of the parent names.
func (c *LinearGaussianCPD) Evidence() []string { return append([]string(nil), c.evidence...) }

// mean evaluates β₀ + Σ βᵢ·evᵢ[r].
func (c *LinearGaussianCPD) mean(ev [][]float64, r int) float64 {
	mu := c.Beta[0]
	for j, col := range ev {
		mu += c.Beta[j+1] * col[r]
	}

	return mu
}

// LogLikelihood returns Σ_r log N(x_r; μ(pa_r), σ²) over the rows of df.
//
// Complexity: O(N·k).
func (c *LinearGaussianCPD) LogLikelihood(df *dataset.DataFrame) (float64, error) {
	cols, err := columns(df, append([]string{c.variable}, c.evidence...))
	if err != nil {
		return 0, fmt.Errorf("LinearGaussianCPD.LogLikelihood: %w", err)
	}
	y, ev := cols[0], cols[1:]
	n := df.NumRows()

	ss := 0.0
	for r := 0; r < n; r++ {
		res := y[r] - c.mean(ev, r)
		ss += res * res
	}

	return -0.5*float64(n)*math.Log(2*math.Pi*c.Variance) - ss/(2*c.Variance), nil
}

// String renders e.g. "[LinearGaussian] b | a = 0.5 + 2·a; σ²=1".
func (c *LinearGaussianCPD) String() string {
	s := fmt.Sprintf("[%v] %s", LinearGaussianType, c.variable)
	if len(c.evidence) > 0 {
		s += " |"
		for i, e := range c.evidence {
			if i > 0 {
				s += ","
			}
			s += " " + e
		}
	}
	s += fmt.Sprintf(" = %g", c.Beta[0])
	for i, e := range c.evidence {
		s += fmt.Sprintf(" + %g·%s", c.Beta[i+1], e)
	}

	return s + fmt.Sprintf("; σ²=%g", c.Variance)
}
