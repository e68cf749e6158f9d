package glm

import (
	"fmt"

	"github.com/samcharles93/glmkit/pkg/dist"
	"github.com/samcharles93/glmkit/pkg/model"
)

// Prior declares the prior for one likelihood parameter: either a fixed
// numeric constant, which passes through resolution unchanged, or a
// distribution spec, which is realized as a named random variable in the
// model.
type Prior interface {
	fmt.Stringer
	resolve(m *model.Model, name string) (model.Value, error)
}

// Fixed declares a constant scalar prior value.
func Fixed(x float64) Prior { return constPrior(x) }

// FixedVec declares a constant vector prior value.
func FixedVec(xs []float64) Prior { return vecPrior(xs) }

// Random declares a symbolic prior to be registered as a free random
// variable at resolution time.
func Random(spec dist.Spec) Prior { return specPrior(spec) }

type constPrior float64

func (p constPrior) resolve(_ *model.Model, _ string) (model.Value, error) {
	return model.Scalar(p), nil
}

func (p constPrior) String() string {
	return model.Scalar(p).String()
}

type vecPrior []float64

func (p vecPrior) resolve(_ *model.Model, _ string) (model.Value, error) {
	return model.Vector(p), nil
}

func (p vecPrior) String() string {
	return model.Vector(p).String()
}

type specPrior dist.Spec

func (p specPrior) resolve(m *model.Model, name string) (model.Value, error) {
	return m.RegisterRV(name, dist.Spec(p))
}

func (p specPrior) String() string {
	return dist.Spec(p).String()
}
