package glm

import (
	"fmt"

	"github.com/samcharles93/glmkit/pkg/dist"
	"github.com/samcharles93/glmkit/pkg/model"
	"github.com/samcharles93/glmkit/pkg/tensor"
)

// LinearConfig configures the linear component of a GLM built by Linear.
type LinearConfig struct {
	// Family selects likelihood, link and auxiliary priors.  Required.
	Family *Family
	// Intercept adds an intercept term with InterceptPrior.
	Intercept bool
	// InterceptPrior defaults to Normal(0, 100).
	InterceptPrior Prior
	// CoefPriors overrides the prior for individual columns, keyed by
	// label.  Unlisted columns get Normal(0, 100).
	CoefPriors map[string]Prior
	// Labels names the design-matrix columns.  Defaults to x0..xN.
	Labels []string
}

// LinearModel holds the pieces registered by Linear.
type LinearModel struct {
	Intercept  model.Value
	Coefs      []model.Value
	Labels     []string
	Estimate   *model.Affine
	Likelihood *model.RV
}

func defaultCoefPrior() Prior {
	return Random(dist.NewNormal(0, 100))
}

// Linear is the GLM convenience layer: it registers an optional intercept
// and one coefficient per design-matrix column, forms the symbolic linear
// predictor X·β, and attaches the family's likelihood over the observed
// response.  Variable names are prefixed with name when it is non-empty.
func Linear(m *model.Model, name string, x *tensor.Matrix, y []float64, cfg LinearConfig) (*LinearModel, error) {
	if m == nil {
		return nil, model.ErrNoModel
	}
	if cfg.Family == nil {
		return nil, fmt.Errorf("%w: no family", ErrBadConfig)
	}
	if x == nil || x.R == 0 {
		return nil, fmt.Errorf("%w: empty design matrix", ErrBadConfig)
	}
	if len(y) != x.R {
		return nil, fmt.Errorf("%w: %d observations for %d design rows", ErrBadConfig, len(y), x.R)
	}

	labels := cfg.Labels
	if labels == nil {
		labels = make([]string, x.C)
		for j := range labels {
			labels[j] = fmt.Sprintf("x%d", j)
		}
	}
	if len(labels) != x.C {
		return nil, fmt.Errorf("%w: %d labels for %d columns", ErrBadConfig, len(labels), x.C)
	}

	varName := func(label string) string {
		if name == "" {
			return label
		}
		return name + "_" + label
	}

	lm := &LinearModel{Labels: labels}

	if cfg.Intercept {
		prior := cfg.InterceptPrior
		if prior == nil {
			prior = defaultCoefPrior()
		}
		val, err := prior.resolve(m, varName("intercept"))
		if err != nil {
			return nil, fmt.Errorf("intercept: %w", err)
		}
		lm.Intercept = val
	}

	lm.Coefs = make([]model.Value, x.C)
	for j, label := range labels {
		prior := cfg.CoefPriors[label]
		if prior == nil {
			prior = defaultCoefPrior()
		}
		val, err := prior.resolve(m, varName(label))
		if err != nil {
			return nil, fmt.Errorf("coefficient %q: %w", label, err)
		}
		lm.Coefs[j] = val
	}

	lm.Estimate = &model.Affine{X: x, Coefs: lm.Coefs, Intercept: lm.Intercept}

	node, err := cfg.Family.BuildLikelihood(m, name, lm.Estimate, y)
	if err != nil {
		return nil, err
	}
	lm.Likelihood = node
	return lm, nil
}
