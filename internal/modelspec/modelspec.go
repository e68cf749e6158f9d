// Package modelspec reads declarative GLM descriptions from YAML or JSON
// and turns them into built models.  A spec names a family, optional
// overrides (link, priors), the design matrix and the observed response:
//
//	name: radon
//	family: binomial
//	intercept: true
//	labels: [floor, uranium]
//	priors:
//	  n: 5
//	data:
//	  x: [[1, 0.3], [0, 1.2]]
//	  y: [0, 1]
//
// Priors are written either as a bare number, a list of numbers, or as
// {dist: HalfCauchy, params: {beta: 5}}.
package modelspec

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/samcharles93/glmkit/internal/logger"
	"github.com/samcharles93/glmkit/pkg/dist"
	"github.com/samcharles93/glmkit/pkg/glm"
	"github.com/samcharles93/glmkit/pkg/model"
	"github.com/samcharles93/glmkit/pkg/tensor"
)

// ErrBadSpec is reported for specs that parse but do not describe a
// buildable model.
var ErrBadSpec = errors.New("invalid model spec")

// File is the on-disk shape of a model spec.
type File struct {
	Name       string               `yaml:"name" json:"name"`
	Family     string               `yaml:"family" json:"family"`
	Link       string               `yaml:"link,omitempty" json:"link,omitempty"`
	Intercept  bool                 `yaml:"intercept,omitempty" json:"intercept,omitempty"`
	Labels     []string             `yaml:"labels,omitempty" json:"labels,omitempty"`
	Priors     map[string]PriorSpec `yaml:"priors,omitempty" json:"priors,omitempty"`
	CoefPriors map[string]PriorSpec `yaml:"coef_priors,omitempty" json:"coef_priors,omitempty"`
	Data       Data                 `yaml:"data" json:"data"`
}

// Data carries the design matrix rows and the observed response.
type Data struct {
	X [][]float64 `yaml:"x" json:"x"`
	Y []float64   `yaml:"y" json:"y"`
}

// PriorSpec is the union of the three prior notations: bare number,
// number list, or distribution object.
type PriorSpec struct {
	Const  *float64
	Vec    []float64
	Dist   string
	Params map[string]float64
}

type distObject struct {
	Dist   string             `yaml:"dist" json:"dist"`
	Params map[string]float64 `yaml:"params" json:"params"`
}

// UnmarshalYAML accepts a scalar, a sequence, or a dist object.
func (p *PriorSpec) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var x float64
		if err := node.Decode(&x); err != nil {
			return fmt.Errorf("%w: prior must be numeric: %v", ErrBadSpec, err)
		}
		p.Const = &x
		return nil
	case yaml.SequenceNode:
		return node.Decode(&p.Vec)
	case yaml.MappingNode:
		var obj distObject
		if err := node.Decode(&obj); err != nil {
			return err
		}
		p.Dist = obj.Dist
		p.Params = obj.Params
		return nil
	default:
		return fmt.Errorf("%w: unsupported prior notation", ErrBadSpec)
	}
}

// UnmarshalJSON accepts a number, an array, or a dist object.
func (p *PriorSpec) UnmarshalJSON(b []byte) error {
	var x float64
	if err := json.Unmarshal(b, &x); err == nil {
		p.Const = &x
		return nil
	}
	var xs []float64
	if err := json.Unmarshal(b, &xs); err == nil {
		p.Vec = xs
		return nil
	}
	var obj distObject
	if err := json.Unmarshal(b, &obj); err != nil {
		return fmt.Errorf("%w: unsupported prior notation: %v", ErrBadSpec, err)
	}
	p.Dist = obj.Dist
	p.Params = obj.Params
	return nil
}

func (p PriorSpec) toPrior() (glm.Prior, error) {
	switch {
	case p.Const != nil:
		return glm.Fixed(*p.Const), nil
	case p.Vec != nil:
		return glm.FixedVec(p.Vec), nil
	case p.Dist != "":
		spec := dist.NewSpec(dist.Name(p.Dist), p.Params)
		if err := spec.Validate(); err != nil {
			return nil, err
		}
		return glm.Random(spec), nil
	default:
		return nil, fmt.Errorf("%w: empty prior", ErrBadSpec)
	}
}

// ParseYAML decodes a YAML spec.
func ParseYAML(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadSpec, err)
	}
	return &f, nil
}

// ParseJSON decodes a JSON spec.
func ParseJSON(data []byte) (*File, error) {
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadSpec, err)
	}
	return &f, nil
}

// Load reads a spec file, choosing the decoder by extension (.json, or
// .yaml/.yml for everything else).
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return ParseJSON(data)
	}
	return ParseYAML(data)
}

// Validate checks the parts of the spec that Build would otherwise trip
// over with less helpful errors.
func (f *File) Validate() error {
	if f.Family == "" {
		return fmt.Errorf("%w: missing family", ErrBadSpec)
	}
	if len(f.Data.X) == 0 {
		return fmt.Errorf("%w: data.x is empty", ErrBadSpec)
	}
	if len(f.Data.Y) != len(f.Data.X) {
		return fmt.Errorf("%w: data.y has %d entries for %d design rows", ErrBadSpec, len(f.Data.Y), len(f.Data.X))
	}
	if f.Link != "" {
		if _, ok := glm.LinkByName(f.Link); !ok {
			return fmt.Errorf("%w: unknown link %q", ErrBadSpec, f.Link)
		}
	}
	return nil
}

// Build constructs the described GLM into a fresh model and returns both
// the model and the registered linear pieces.
func (f *File) Build(log logger.Logger) (*model.Model, *glm.LinearModel, error) {
	if err := f.Validate(); err != nil {
		return nil, nil, err
	}

	cfg := glm.Config{}
	if f.Link != "" {
		link, _ := glm.LinkByName(f.Link)
		cfg.Link = &link
	}
	if len(f.Priors) > 0 {
		cfg.Priors = make(map[string]glm.Prior, len(f.Priors))
		for key, ps := range f.Priors {
			prior, err := ps.toPrior()
			if err != nil {
				return nil, nil, fmt.Errorf("prior %q: %w", key, err)
			}
			cfg.Priors[key] = prior
		}
	}
	family, err := glm.New(f.Family, cfg)
	if err != nil {
		return nil, nil, err
	}

	var coefPriors map[string]glm.Prior
	if len(f.CoefPriors) > 0 {
		coefPriors = make(map[string]glm.Prior, len(f.CoefPriors))
		for label, ps := range f.CoefPriors {
			prior, err := ps.toPrior()
			if err != nil {
				return nil, nil, fmt.Errorf("coef prior %q: %w", label, err)
			}
			coefPriors[label] = prior
		}
	}

	x, err := tensor.NewMatrixFromRows(f.Data.X)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrBadSpec, err)
	}

	modelName := f.Name
	if modelName == "" {
		modelName = f.Family
	}
	m := model.New(modelName, model.WithLogger(log))
	lm, err := glm.Linear(m, f.Name, x, f.Data.Y, glm.LinearConfig{
		Family:     family,
		Intercept:  f.Intercept,
		CoefPriors: coefPriors,
		Labels:     f.Labels,
	})
	if err != nil {
		return nil, nil, err
	}
	return m, lm, nil
}
