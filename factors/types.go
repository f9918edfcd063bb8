// SPDX-License-Identifier: MIT

package factors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/bnsearch/dataset"
)

// Sentinel errors for factor fitting.
var (
	// ErrUnknownNodeType indicates a NodeType value or name outside the enum.
	ErrUnknownNodeType = errors.New("factors: unknown node type")

	// ErrUnknownVariable indicates a variable or evidence name missing from the data.
	ErrUnknownVariable = errors.New("factors: unknown variable")

	// ErrInsufficientData indicates fewer rows than free parameters.
	ErrInsufficientData = errors.New("factors: insufficient data")

	// ErrDegenerate indicates a fit without a proper density (singular design,
	// zero variance or zero bandwidth).
	ErrDegenerate = errors.New("factors: degenerate fit")
)

// NodeType selects the conditional distribution family of a node.
type NodeType int

const (
	// LinearGaussianType is the parametric linear Gaussian CPD.
	LinearGaussianType NodeType = iota
	// CKDEType is the nonparametric conditional kernel density estimate.
	CKDEType
)

// String returns "LinearGaussian" or "CKDE".
func (t NodeType) String() string {
	switch t {
	case LinearGaussianType:
		return "LinearGaussian"
	case CKDEType:
		return "CKDE"
	default:
		return fmt.Sprintf("NodeType(%d)", int(t))
	}
}

// Opposite returns the other member of the two-type family.
// It panics on a value outside the enum.
func (t NodeType) Opposite() NodeType {
	switch t {
	case LinearGaussianType:
		return CKDEType
	case CKDEType:
		return LinearGaussianType
	default:
		panic(fmt.Sprintf("factors: Opposite of %v", t))
	}
}

// Valid reports whether t is a member of the enum.
func (t NodeType) Valid() bool { return t == LinearGaussianType || t == CKDEType }

// ParseNodeType accepts the String forms and the short aliases "lg" and "ckde",
// case-insensitively.
func ParseNodeType(s string) (NodeType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lg", "linear", "lineargaussian", "linear_gaussian":
		return LinearGaussianType, nil
	case "ckde", "kde":
		return CKDEType, nil
	default:
		return 0, fmt.Errorf("ParseNodeType(%q): %w", s, ErrUnknownNodeType)
	}
}

// MarshalText implements encoding.TextMarshaler (YAML/JSON configs).
func (t NodeType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("MarshalText: %w", ErrUnknownNodeType)
	}

	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler via ParseNodeType.
func (t *NodeType) UnmarshalText(b []byte) error {
	v, err := ParseNodeType(string(b))
	if err != nil {
		return err
	}
	*t = v

	return nil
}

// CPD is a fitted conditional distribution of Variable given Evidence.
type CPD interface {
	// Type returns the node type of the factor.
	Type() NodeType
	// Variable returns the modelled variable name.
	Variable() string
	// Evidence returns the conditioning variable names.
	Evidence() []string
	// LogLikelihood sums log f(x|pa) over every row of df.
	LogLikelihood(df *dataset.DataFrame) (float64, error)
}

// Fit estimates a CPD of type t for variable | evidence from df.
func Fit(t NodeType, df *dataset.DataFrame, variable string, evidence []string) (CPD, error) {
	switch t {
	case LinearGaussianType:
		return FitLinearGaussian(df, variable, evidence)
	case CKDEType:
		return FitCKDE(df, variable, evidence)
	default:
		return nil, fmt.Errorf("Fit(%v): %w", t, ErrUnknownNodeType)
	}
}

// columns resolves variable names to the backing column slices of df.
func columns(df *dataset.DataFrame, names []string) ([][]float64, error) {
	out := make([][]float64, len(names))
	for i, name := range names {
		col, err := df.ColumnByName(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownVariable, name)
		}
		out[i] = col
	}

	return out, nil
}
