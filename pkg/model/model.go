// Package model implements the model context that GLM construction
// registers random variables into.  A Model is an explicit value passed
// through every call; there is no ambient or thread-local current model.
//
// Building a model is single-threaded, straight-line registration.  The
// package does no inference: a built Model is a description handed to
// whatever engine consumes it.
package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samcharles93/glmkit/pkg/dist"
)

// Logger is the subset of a structured logger used during registration.
// The project logger satisfies it; the zero default is silent.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}

var (
	// ErrNoModel is reported when an operation that needs a model
	// context is given a nil one.
	ErrNoModel = errors.New("no model context")
	// ErrDuplicateVar is reported when a variable name is registered
	// twice in the same model.
	ErrDuplicateVar = errors.New("duplicate variable name")
	// ErrInvalidParam is reported for likelihood parameters that do not
	// belong to the distribution or violate its constraints.
	ErrInvalidParam = errors.New("invalid likelihood parameter")
)

// Model is a named registry of random variables, filled in registration
// order.
type Model struct {
	name   string
	log    Logger
	vars   []*RV
	byName map[string]*RV
}

// Option configures a Model at construction.
type Option func(*Model)

// WithLogger sets the logger used for registration events.
func WithLogger(log Logger) Option {
	return func(m *Model) { m.log = log }
}

// New creates an empty model.
func New(name string, opts ...Option) *Model {
	m := &Model{
		name:   name,
		byName: make(map[string]*RV),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.log == nil {
		m.log = nopLogger{}
	}
	return m
}

// Name returns the model's name.
func (m *Model) Name() string { return m.name }

// RegisterRV realizes a distribution spec as a named free random variable.
// The spec is validated against the distribution registry first.
func (m *Model) RegisterRV(name string, spec dist.Spec) (*RV, error) {
	if m == nil {
		return nil, ErrNoModel
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("register %q: %w", name, err)
	}
	rv := &RV{Name: name, Dist: spec.Dist, Spec: spec}
	if err := m.add(rv); err != nil {
		return nil, err
	}
	m.log.Debug("registered free variable", "model", m.name, "var", name, "dist", spec.String())
	return rv, nil
}

// Observe registers the observed likelihood node.  Every supplied
// parameter must belong to the likelihood distribution, every required
// parameter must be present, and positivity constraints are enforced on
// constant scalar parameters.
func (m *Model) Observe(name string, likelihood dist.Name, params map[string]Value, observed Vector) (*RV, error) {
	if m == nil {
		return nil, ErrNoModel
	}
	info, err := dist.Lookup(likelihood)
	if err != nil {
		return nil, fmt.Errorf("observe %q: %w", name, err)
	}
	for key, val := range params {
		p, ok := info.Param(key)
		if !ok {
			return nil, fmt.Errorf("observe %q: %w: %s has no parameter %q", name, ErrInvalidParam, likelihood, key)
		}
		if s, isScalar := val.(Scalar); isScalar && p.Positive && float64(s) <= 0 {
			return nil, fmt.Errorf("observe %q: %w: %s parameter %q must be > 0, got %v", name, ErrInvalidParam, likelihood, key, float64(s))
		}
	}
	for _, req := range info.Required() {
		if _, ok := params[req]; !ok {
			return nil, fmt.Errorf("observe %q: %w: %s missing required parameter %q", name, ErrInvalidParam, likelihood, req)
		}
	}
	rv := &RV{Name: name, Dist: likelihood, Params: params, Observed: observed}
	if err := m.add(rv); err != nil {
		return nil, err
	}
	m.log.Debug("registered likelihood", "model", m.name, "var", name, "dist", likelihood, "observations", len(observed))
	return rv, nil
}

func (m *Model) add(rv *RV) error {
	if _, exists := m.byName[rv.Name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateVar, rv.Name)
	}
	m.byName[rv.Name] = rv
	m.vars = append(m.vars, rv)
	return nil
}

// Var looks up a registered variable by name.
func (m *Model) Var(name string) (*RV, bool) {
	rv, ok := m.byName[name]
	return rv, ok
}

// Vars returns all variables in registration order.  The returned slice
// is shared; callers must not mutate it.
func (m *Model) Vars() []*RV { return m.vars }

// Describe renders the model as one line per variable.
func (m *Model) Describe() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "model %s (%d variables)\n", m.name, len(m.vars))
	for _, rv := range m.vars {
		sb.WriteString("  ")
		sb.WriteString(rv.Summary())
		sb.WriteByte('\n')
	}
	return sb.String()
}
