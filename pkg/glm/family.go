// Package glm provides the family descriptors behind the GLM convenience
// layer: each family bundles a likelihood distribution, the link function
// that maps a linear predictor onto the likelihood's natural parameter,
// and default priors for the remaining parameters.
//
// Families live in a registry keyed by name.  New looks a family up,
// copies its defaults and applies typed overrides, so customizing one
// instance can never corrupt the registry entry.
package glm

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/samcharles93/glmkit/pkg/dist"
	"github.com/samcharles93/glmkit/pkg/model"
)

var (
	// ErrUnknownFamily is reported when a name has no registry entry.
	ErrUnknownFamily = errors.New("unknown family")
	// ErrBadConfig is reported for invalid construction overrides.
	ErrBadConfig = errors.New("invalid family config")
	// ErrMissingPrior is reported when likelihood construction would
	// leave a required parameter without a value.
	ErrMissingPrior = errors.New("missing required prior")
)

// Family bundles likelihood, link function and default priors for one GLM
// variant.  Parent names the likelihood parameter that receives the
// link-transformed estimate; any prior supplied under that name is
// overwritten during likelihood construction.
type Family struct {
	Name       string
	Link       Link
	Likelihood dist.Name
	Parent     string
	Priors     map[string]Prior
}

// Config carries per-instance overrides applied on top of a family's
// registry defaults.  Zero fields keep the default; Priors entries are
// merged into the default prior map rather than replacing it.
type Config struct {
	Link       *Link
	Likelihood dist.Name
	Parent     string
	Priors     map[string]Prior
}

var families = map[string]Family{
	"normal": {
		Name:       "normal",
		Link:       Identity,
		Likelihood: dist.Normal,
		Parent:     "mu",
		Priors: map[string]Prior{
			"sigma": Random(dist.NewHalfCauchy(10)),
		},
	},
	"studentt": {
		Name:       "studentt",
		Link:       Identity,
		Likelihood: dist.StudentT,
		Parent:     "mu",
		Priors: map[string]Prior{
			"lam": Random(dist.NewHalfCauchy(10)),
			"nu":  Fixed(1),
		},
	},
	"binomial": {
		Name:       "binomial",
		Link:       Logit,
		Likelihood: dist.Binomial,
		Parent:     "p",
		Priors: map[string]Prior{
			"n": Fixed(1),
		},
	},
	"poisson": {
		Name:       "poisson",
		Link:       Exp,
		Likelihood: dist.Poisson,
		Parent:     "mu",
		Priors:     map[string]Prior{},
	},
	"negbinomial": {
		Name:       "negbinomial",
		Link:       Exp,
		Likelihood: dist.NegativeBinomial,
		Parent:     "mu",
		Priors: map[string]Prior{
			"alpha": Random(dist.NewHalfCauchy(10)),
		},
	},
}

// Names returns all registered family names, sorted.
func Names() []string {
	names := make([]string, 0, len(families))
	for n := range families {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// New builds a family from its registry defaults plus overrides.  The
// default prior map is copied before merging, so the registry entry is
// never mutated.  Overrides are validated here: the likelihood must be a
// registered distribution and the parent and every prior key must be
// parameters of it.
func New(name string, cfg Config) (*Family, error) {
	base, ok := families[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFamily, name)
	}

	f := base
	f.Priors = make(map[string]Prior, len(base.Priors)+len(cfg.Priors))
	for k, v := range base.Priors {
		f.Priors[k] = v
	}
	for k, v := range cfg.Priors {
		f.Priors[k] = v
	}
	if cfg.Link != nil {
		f.Link = *cfg.Link
	}
	if cfg.Likelihood != "" {
		f.Likelihood = cfg.Likelihood
	}
	if cfg.Parent != "" {
		f.Parent = cfg.Parent
	}

	info, err := dist.Lookup(f.Likelihood)
	if err != nil {
		return nil, fmt.Errorf("%w: family %q: %v", ErrBadConfig, name, err)
	}
	if f.Link.Fn == nil {
		return nil, fmt.Errorf("%w: family %q: link has no function", ErrBadConfig, name)
	}
	if _, ok := info.Param(f.Parent); !ok {
		return nil, fmt.Errorf("%w: family %q: %s has no parameter %q for parent", ErrBadConfig, name, f.Likelihood, f.Parent)
	}
	for key := range f.Priors {
		if _, ok := info.Param(key); !ok {
			return nil, fmt.Errorf("%w: family %q: %s has no parameter %q", ErrBadConfig, name, f.Likelihood, key)
		}
	}
	return &f, nil
}

// MustNew is New for statically known names; it panics on error.
func MustNew(name string, cfg Config) *Family {
	f, err := New(name, cfg)
	if err != nil {
		panic(err)
	}
	return f
}

// ResolvePriors realizes the family's prior map against a model.  Fixed
// numeric entries pass through unchanged; spec entries are registered as
// free random variables named prefix+"_"+key, or the bare key when prefix
// is empty.  The returned map has exactly the keys of Priors.
func (f *Family) ResolvePriors(m *model.Model, prefix string) (map[string]model.Value, error) {
	if m == nil {
		return nil, model.ErrNoModel
	}
	keys := make([]string, 0, len(f.Priors))
	for k := range f.Priors {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	resolved := make(map[string]model.Value, len(keys))
	for _, key := range keys {
		name := key
		if prefix != "" {
			name = prefix + "_" + key
		}
		val, err := f.Priors[key].resolve(m, name)
		if err != nil {
			return nil, fmt.Errorf("family %q: resolve prior %q: %w", f.Name, key, err)
		}
		resolved[key] = val
	}
	return resolved, nil
}

// BuildLikelihood resolves the priors, overwrites the parent parameter
// with the link-transformed estimate, and registers the observed
// likelihood node.  The node is named name+"_y", or just "y" when name is
// empty.  A required likelihood parameter left without a prior is a
// configuration error, never a silent omission.
func (f *Family) BuildLikelihood(m *model.Model, name string, estimate model.Value, observed []float64) (*model.RV, error) {
	params, err := f.ResolvePriors(m, name)
	if err != nil {
		return nil, err
	}
	params[f.Parent] = f.Link.Apply(estimate)

	info, err := dist.Lookup(f.Likelihood)
	if err != nil {
		return nil, fmt.Errorf("family %q: %w", f.Name, err)
	}
	var missing []string
	for _, req := range info.Required() {
		if _, ok := params[req]; !ok {
			missing = append(missing, req)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: family %q needs %s", ErrMissingPrior, f.Name, strings.Join(missing, ", "))
	}

	node := "y"
	if name != "" {
		node = name + "_y"
	}
	return m.Observe(node, f.Likelihood, params, model.Vector(observed))
}

// Describe renders a human-readable summary of the family.
func (f *Family) Describe() string {
	keys := make([]string, 0, len(f.Priors))
	for k := range f.Priors {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	priors := make([]string, 0, len(keys))
	for _, k := range keys {
		priors = append(priors, fmt.Sprintf("%s: %s", k, f.Priors[k].String()))
	}
	return fmt.Sprintf("family %s:\n  likelihood: %s(%s)\n  priors:     {%s}\n  link:       %s\n",
		f.Name, f.Likelihood, f.Parent, strings.Join(priors, ", "), f.Link.Name)
}
