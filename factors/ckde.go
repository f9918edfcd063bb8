// SPDX-License-Identifier: MIT

package factors

import (
	"fmt"
	"math"

	"github.com/katalvlaran/bnsearch/dataset"
)

// productKDE is a d-dimensional Gaussian KDE with a diagonal bandwidth.
// train[j] is the j-th training column; bw[j] its bandwidth.
type productKDE struct {
	train [][]float64
	bw    []float64
	// logNorm = -log N - Σ log h_j - d/2·log 2π
	logNorm float64
}

func newProductKDE(train [][]float64, bw []float64) *productKDE {
	k := &productKDE{train: train, bw: bw}
	n := len(train[0])
	k.logNorm = -math.Log(float64(n)) - 0.5*float64(len(bw))*math.Log(2*math.Pi)
	for _, h := range bw {
		k.logNorm -= math.Log(h)
	}

	return k
}

// logPDF evaluates log f(x) with a log-sum-exp over the training points.
// buf must have room for N exponents.
func (k *productKDE) logPDF(x []float64, buf []float64) float64 {
	n := len(k.train[0])
	maxE := math.Inf(-1)
	for i := 0; i < n; i++ {
		e := 0.0
		for j, col := range k.train {
			z := (x[j] - col[i]) / k.bw[j]
			e -= 0.5 * z * z
		}
		buf[i] = e
		if e > maxE {
			maxE = e
		}
	}
	if math.IsInf(maxE, -1) {
		return maxE
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += math.Exp(buf[i] - maxE)
	}

	return maxE + math.Log(sum) + k.logNorm
}

// normalReferenceBandwidth returns the normal-reference bandwidth
// h_j = σ_j · (4/(d+2))^{1/(d+4)} · N^{-1/(d+4)} for each column.
func normalReferenceBandwidth(cols [][]float64) ([]float64, error) {
	d := float64(len(cols))
	n := float64(len(cols[0]))
	factor := math.Pow(4/(d+2), 1/(d+4)) * math.Pow(n, -1/(d+4))
	bw := make([]float64, len(cols))
	for j, col := range cols {
		mu := 0.0
		for _, v := range col {
			mu += v
		}
		mu /= n
		ss := 0.0
		for _, v := range col {
			ss += (v - mu) * (v - mu)
		}
		sigma := math.Sqrt(ss / (n - 1))
		if !(sigma > 0) {
			return nil, fmt.Errorf("column %d: zero spread: %w", j, ErrDegenerate)
		}
		bw[j] = sigma * factor
	}

	return bw, nil
}

// CKDE is the conditional kernel density f(x|pa) = f(x,pa) / f(pa).
// The marginal reuses the joint bandwidth of the evidence columns, so f(pa)
// is exactly the x-marginal of the joint estimate.
type CKDE struct {
	variable string
	evidence []string
	joint    *productKDE
	marginal *productKDE // nil without evidence
}

// FitCKDE stores the training columns and selects the bandwidth.
//
// Errors:
//   - ErrUnknownVariable, ErrInsufficientData (N < 2), ErrDegenerate (constant column).
//
// Complexity: O(N·d) to fit; evaluation is O(N_train·d) per row.
func FitCKDE(df *dataset.DataFrame, variable string, evidence []string) (*CKDE, error) {
	cols, err := columns(df, append([]string{variable}, evidence...))
	if err != nil {
		return nil, fmt.Errorf("FitCKDE: %w", err)
	}
	if df.NumRows() < 2 {
		return nil, fmt.Errorf("FitCKDE(%s): %w", variable, ErrInsufficientData)
	}
	bw, err := normalReferenceBandwidth(cols)
	if err != nil {
		return nil, fmt.Errorf("FitCKDE(%s): %w", variable, err)
	}

	c := &CKDE{
		variable: variable,
		evidence: append([]string(nil), evidence...),
		joint:    newProductKDE(cols, bw),
	}
	if len(evidence) > 0 {
		c.marginal = newProductKDE(cols[1:], bw[1:])
	}

	return c, nil
}

// Type returns CKDEType.
func (c *CKDE) Type() NodeType { return CKDEType }

// Variable returns the modelled variable.
func (c *CKDE) Variable() string { return c.variable }

// Evidence returns a copy of the parent names.
func (c *CKDE) Evidence() []string { return append([]string(nil), c.evidence...) }

// Bandwidth returns a copy of the joint bandwidth, variable first.
func (c *CKDE) Bandwidth() []float64 { return append([]float64(nil), c.joint.bw...) }

// LogLikelihood returns Σ_r [log f(x_r,pa_r) − log f(pa_r)] over df.
func (c *CKDE) LogLikelihood(df *dataset.DataFrame) (float64, error) {
	cols, err := columns(df, append([]string{c.variable}, c.evidence...))
	if err != nil {
		return 0, fmt.Errorf("CKDE.LogLikelihood: %w", err)
	}
	buf := make([]float64, len(c.joint.train[0]))
	point := make([]float64, len(cols))
	total := 0.0
	for r := 0; r < df.NumRows(); r++ {
		for j, col := range cols {
			point[j] = col[r]
		}
		ll := c.joint.logPDF(point, buf)
		if c.marginal != nil {
			ll -= c.marginal.logPDF(point[1:], buf)
		}
		total += ll
	}

	return total, nil
}

// String renders e.g. "[CKDE] c | a, b".
func (c *CKDE) String() string {
	s := fmt.Sprintf("[%v] %s", CKDEType, c.variable)
	for i, e := range c.evidence {
		if i == 0 {
			s += " | " + e
		} else {
			s += ", " + e
		}
	}

	return s
}
