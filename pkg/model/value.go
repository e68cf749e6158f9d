package model

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/samcharles93/glmkit/pkg/dist"
	"github.com/samcharles93/glmkit/pkg/tensor"
)

// Value is anything that can stand in a distribution parameter slot: a
// fixed scalar or vector, a registered random variable, or a deferred
// symbolic expression over such values.
type Value interface {
	fmt.Stringer
	isValue()
}

// Scalar is a fixed numeric constant.
type Scalar float64

func (Scalar) isValue() {}

func (s Scalar) String() string {
	return strconv.FormatFloat(float64(s), 'g', -1, 64)
}

// Vector is a fixed numeric array constant.
type Vector []float64

func (Vector) isValue() {}

func (v Vector) String() string {
	return fmt.Sprintf("vector[%d]", len(v))
}

// RV is a random variable registered in a model.  Free variables carry the
// Spec they were realized from; observed likelihood nodes carry their
// parameter mapping and the observed data.
type RV struct {
	Name     string
	Dist     dist.Name
	Spec     dist.Spec
	Params   map[string]Value
	Observed Vector
}

func (*RV) isValue() {}

// String returns the variable name, so an RV reads naturally when used
// inside another expression.
func (rv *RV) String() string { return rv.Name }

// IsObserved reports whether this is the observed likelihood node.
func (rv *RV) IsObserved() bool { return rv.Observed != nil }

// Summary renders the variable as "name ~ Dist(...)", with parameters in
// sorted order for observed nodes.
func (rv *RV) Summary() string {
	var sb strings.Builder
	sb.WriteString(rv.Name)
	sb.WriteString(" ~ ")
	if rv.Params == nil {
		sb.WriteString(rv.Spec.String())
	} else {
		keys := make([]string, 0, len(rv.Params))
		for k := range rv.Params {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		sb.WriteString(string(rv.Dist))
		sb.WriteByte('(')
		for i, k := range keys {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%s=%s", k, rv.Params[k].String())
		}
		sb.WriteByte(')')
	}
	if rv.IsObserved() {
		fmt.Fprintf(&sb, " [observed, n=%d]", len(rv.Observed))
	}
	return sb.String()
}

// Transform is a deferred elementwise transform applied to a symbolic
// value.  Numeric values never end up wrapped: link application computes
// those eagerly.
type Transform struct {
	Op  string
	Arg Value
}

func (*Transform) isValue() {}

func (t *Transform) String() string {
	return t.Op + "(" + t.Arg.String() + ")"
}

// Affine is the symbolic linear predictor X·β (+ intercept) produced by
// the GLM builder.  Coefs holds one Value per design-matrix column.
type Affine struct {
	X         *tensor.Matrix
	Coefs     []Value
	Intercept Value
}

func (*Affine) isValue() {}

func (a *Affine) String() string {
	s := fmt.Sprintf("X[%dx%d]·β", a.X.R, a.X.C)
	if a.Intercept != nil {
		s += " + " + a.Intercept.String()
	}
	return s
}
