package model

import (
	"errors"
	"strings"
	"testing"

	"github.com/samcharles93/glmkit/internal/logger"
	"github.com/samcharles93/glmkit/pkg/dist"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	return New("m", WithLogger(logger.Discard()))
}

func TestRegisterRV(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	rv, err := m.RegisterRV("sigma", dist.NewHalfCauchy(10))
	if err != nil {
		t.Fatal(err)
	}
	if rv.Name != "sigma" || rv.Dist != dist.HalfCauchy || rv.IsObserved() {
		t.Fatalf("unexpected rv: %+v", rv)
	}
	got, ok := m.Var("sigma")
	if !ok || got != rv {
		t.Fatal("Var should return the registered handle")
	}
}

func TestRegisterRVValidatesSpec(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	_, err := m.RegisterRV("sigma", dist.NewHalfCauchy(-1))
	if !errors.Is(err, dist.ErrInvalidSpec) {
		t.Fatalf("err = %v, want ErrInvalidSpec", err)
	}
}

func TestDuplicateName(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	if _, err := m.RegisterRV("a", dist.NewHalfCauchy(1)); err != nil {
		t.Fatal(err)
	}
	_, err := m.RegisterRV("a", dist.NewHalfCauchy(2))
	if !errors.Is(err, ErrDuplicateVar) {
		t.Fatalf("err = %v, want ErrDuplicateVar", err)
	}
}

func TestNilModel(t *testing.T) {
	t.Parallel()
	var m *Model
	if _, err := m.RegisterRV("a", dist.NewHalfCauchy(1)); !errors.Is(err, ErrNoModel) {
		t.Fatalf("RegisterRV on nil model: err = %v, want ErrNoModel", err)
	}
	if _, err := m.Observe("y", dist.Normal, nil, nil); !errors.Is(err, ErrNoModel) {
		t.Fatalf("Observe on nil model: err = %v, want ErrNoModel", err)
	}
}

func TestObserve(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	node, err := m.Observe("y", dist.Normal, map[string]Value{
		"mu":    Scalar(0),
		"sigma": Scalar(1),
	}, Vector{1, 2, 3})
	if err != nil {
		t.Fatal(err)
	}
	if !node.IsObserved() || len(node.Observed) != 3 {
		t.Fatalf("unexpected node: %+v", node)
	}
}

func TestObserveRejectsUnknownParam(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	_, err := m.Observe("y", dist.Poisson, map[string]Value{
		"mu":   Scalar(1),
		"rate": Scalar(2),
	}, Vector{1})
	if !errors.Is(err, ErrInvalidParam) {
		t.Fatalf("err = %v, want ErrInvalidParam", err)
	}
}

func TestObserveRejectsMissingRequired(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	_, err := m.Observe("y", dist.Normal, map[string]Value{"mu": Scalar(0)}, Vector{1})
	if !errors.Is(err, ErrInvalidParam) {
		t.Fatalf("err = %v, want ErrInvalidParam", err)
	}
	if !strings.Contains(err.Error(), "sigma") {
		t.Fatalf("error should name the missing parameter: %v", err)
	}
}

func TestObserveRejectsNonpositiveScale(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	_, err := m.Observe("y", dist.Normal, map[string]Value{
		"mu":    Scalar(0),
		"sigma": Scalar(-1),
	}, Vector{1})
	if !errors.Is(err, ErrInvalidParam) {
		t.Fatalf("err = %v, want ErrInvalidParam", err)
	}
}

func TestObserveUnknownDist(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	_, err := m.Observe("y", "Gamma", nil, Vector{1})
	if !errors.Is(err, dist.ErrUnknownDist) {
		t.Fatalf("err = %v, want ErrUnknownDist", err)
	}
}

func TestVarsOrderAndDescribe(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	if _, err := m.RegisterRV("sigma", dist.NewHalfCauchy(10)); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Observe("y", dist.Normal, map[string]Value{
		"mu":    Scalar(0),
		"sigma": Scalar(1),
	}, Vector{1, 2}); err != nil {
		t.Fatal(err)
	}

	vars := m.Vars()
	if len(vars) != 2 || vars[0].Name != "sigma" || vars[1].Name != "y" {
		t.Fatalf("Vars() = %v", vars)
	}

	out := m.Describe()
	if !strings.Contains(out, "sigma ~ HalfCauchy(beta=10)") {
		t.Errorf("Describe() missing free variable line:\n%s", out)
	}
	if !strings.Contains(out, "[observed, n=2]") {
		t.Errorf("Describe() missing observed marker:\n%s", out)
	}
}

func TestValueStrings(t *testing.T) {
	t.Parallel()
	if Scalar(1.5).String() != "1.5" {
		t.Errorf("Scalar.String() = %q", Scalar(1.5).String())
	}
	if (Vector{1, 2, 3}).String() != "vector[3]" {
		t.Errorf("Vector.String() = %q", (Vector{1, 2, 3}).String())
	}
	rv := &RV{Name: "eta"}
	tr := &Transform{Op: "exp", Arg: rv}
	if tr.String() != "exp(eta)" {
		t.Errorf("Transform.String() = %q", tr.String())
	}
}
