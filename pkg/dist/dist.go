// Package dist is the declarative distribution library used by the model
// and glm packages.  It knows distribution names, their parameters and the
// constraints on those parameters; it performs no sampling and no density
// evaluation.  Inference belongs to whatever engine consumes the built
// model.
package dist

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Name identifies a distribution in the registry.
type Name string

const (
	Normal           Name = "Normal"
	StudentT         Name = "StudentT"
	Binomial         Name = "Binomial"
	Poisson          Name = "Poisson"
	NegativeBinomial Name = "NegativeBinomial"
	HalfCauchy       Name = "HalfCauchy"
	HalfNormal       Name = "HalfNormal"
)

var (
	// ErrUnknownDist is reported when a name has no registry entry.
	ErrUnknownDist = errors.New("unknown distribution")
	// ErrInvalidSpec is reported for malformed parameterizations.
	ErrInvalidSpec = errors.New("invalid distribution spec")
)

// Param describes one parameter of a distribution.
type Param struct {
	Name     string
	Required bool
	// Positive marks parameters whose constant values must be > 0
	// (scale and rate style parameters, trial counts).
	Positive bool
}

// Info is the static description of a distribution.
type Info struct {
	Name     Name
	Discrete bool
	Support  string
	Params   []Param
}

// Param returns the spec for a named parameter.
func (i Info) Param(name string) (Param, bool) {
	for _, p := range i.Params {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}

// Required returns the names of all required parameters, in declaration
// order.
func (i Info) Required() []string {
	var req []string
	for _, p := range i.Params {
		if p.Required {
			req = append(req, p.Name)
		}
	}
	return req
}

var registry = map[Name]Info{
	Normal: {
		Name:    Normal,
		Support: "real",
		Params: []Param{
			{Name: "mu", Required: true},
			{Name: "sigma", Required: true, Positive: true},
		},
	},
	StudentT: {
		Name:    StudentT,
		Support: "real",
		Params: []Param{
			{Name: "mu", Required: true},
			{Name: "nu", Required: true, Positive: true},
			{Name: "lam", Required: true, Positive: true},
		},
	},
	Binomial: {
		Name:     Binomial,
		Discrete: true,
		Support:  "nonnegative integer",
		Params: []Param{
			{Name: "n", Required: true, Positive: true},
			{Name: "p", Required: true},
		},
	},
	Poisson: {
		Name:     Poisson,
		Discrete: true,
		Support:  "nonnegative integer",
		Params: []Param{
			{Name: "mu", Required: true, Positive: true},
		},
	},
	NegativeBinomial: {
		Name:     NegativeBinomial,
		Discrete: true,
		Support:  "nonnegative integer",
		Params: []Param{
			{Name: "mu", Required: true, Positive: true},
			{Name: "alpha", Required: true, Positive: true},
		},
	},
	HalfCauchy: {
		Name:    HalfCauchy,
		Support: "nonnegative real",
		Params: []Param{
			{Name: "beta", Required: true, Positive: true},
		},
	},
	HalfNormal: {
		Name:    HalfNormal,
		Support: "nonnegative real",
		Params: []Param{
			{Name: "sigma", Required: true, Positive: true},
		},
	},
}

// Lookup resolves a distribution name against the registry.
func Lookup(name Name) (Info, error) {
	info, ok := registry[name]
	if !ok {
		return Info{}, fmt.Errorf("%w: %q", ErrUnknownDist, name)
	}
	return info, nil
}

// Names returns all registered distribution names, sorted.
func Names() []Name {
	names := make([]Name, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// Spec is a symbolic distribution: a registry name plus fixed
// hyperparameters.  Specs are what prior declarations are written in; a
// model realizes a Spec into a random variable at registration time.
type Spec struct {
	Dist   Name
	Params map[string]float64
}

// NewSpec builds a Spec without validating it; call Validate before use or
// let the model do it at registration.
func NewSpec(name Name, params map[string]float64) Spec {
	return Spec{Dist: name, Params: params}
}

// NewNormal parameterizes a Normal by location and scale.
func NewNormal(mu, sigma float64) Spec {
	return Spec{Dist: Normal, Params: map[string]float64{"mu": mu, "sigma": sigma}}
}

// NewHalfCauchy parameterizes a HalfCauchy by its scale beta.
func NewHalfCauchy(beta float64) Spec {
	return Spec{Dist: HalfCauchy, Params: map[string]float64{"beta": beta}}
}

// NewHalfNormal parameterizes a HalfNormal by its scale sigma.
func NewHalfNormal(sigma float64) Spec {
	return Spec{Dist: HalfNormal, Params: map[string]float64{"sigma": sigma}}
}

// Validate checks the spec against the registry: the distribution must
// exist, every supplied parameter must belong to it, every required
// parameter must be present, and positivity constraints must hold.
func (s Spec) Validate() error {
	info, err := Lookup(s.Dist)
	if err != nil {
		return err
	}
	for key, val := range s.Params {
		p, ok := info.Param(key)
		if !ok {
			return fmt.Errorf("%w: %s has no parameter %q", ErrInvalidSpec, s.Dist, key)
		}
		if p.Positive && val <= 0 {
			return fmt.Errorf("%w: %s parameter %q must be > 0, got %v", ErrInvalidSpec, s.Dist, key, val)
		}
	}
	for _, name := range info.Required() {
		if _, ok := s.Params[name]; !ok {
			return fmt.Errorf("%w: %s missing required parameter %q", ErrInvalidSpec, s.Dist, name)
		}
	}
	return nil
}

// String renders the spec as Name(k=v, ...) with parameters in sorted
// order so output is stable.
func (s Spec) String() string {
	keys := make([]string, 0, len(s.Params))
	for k := range s.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var sb strings.Builder
	sb.WriteString(string(s.Dist))
	sb.WriteByte('(')
	for i, k := range keys {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s=%v", k, s.Params[k])
	}
	sb.WriteByte(')')
	return sb.String()
}
