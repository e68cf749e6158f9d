package glm

import (
	"math"

	"github.com/samcharles93/glmkit/pkg/model"
	"github.com/samcharles93/glmkit/pkg/tensor"
)

// Link maps an unconstrained linear predictor onto the natural parameter
// domain of a likelihood.  Fn operates on a single element; Apply maps it
// over whole values.
type Link struct {
	Name string
	Fn   func(float64) float64
}

var (
	// Identity passes the predictor through unchanged.
	Identity = Link{Name: "identity", Fn: func(x float64) float64 { return x }}
	// Logit is the logistic-sigmoid link used for probabilities.
	Logit = Link{Name: "logit", Fn: sigmoid}
	// Inverse is the reciprocal link.
	Inverse = Link{Name: "inverse", Fn: func(x float64) float64 { return 1 / x }}
	// Exp maps onto the positive reals.
	Exp = Link{Name: "exp", Fn: math.Exp}
)

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// LinkByName resolves one of the built-in links by its name.
func LinkByName(name string) (Link, bool) {
	switch name {
	case Identity.Name:
		return Identity, true
	case Logit.Name:
		return Logit, true
	case Inverse.Name:
		return Inverse, true
	case Exp.Name:
		return Exp, true
	default:
		return Link{}, false
	}
}

// Apply transforms a value elementwise.  Numeric values are computed
// eagerly and keep their shape; symbolic values are wrapped in a deferred
// Transform node.  Identity returns its argument untouched in all cases.
func (l Link) Apply(v model.Value) model.Value {
	if l.Name == Identity.Name {
		return v
	}
	switch x := v.(type) {
	case model.Scalar:
		return model.Scalar(l.Fn(float64(x)))
	case model.Vector:
		return model.Vector(tensor.Apply(x, l.Fn))
	default:
		return &model.Transform{Op: l.Name, Arg: v}
	}
}
