package glm

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/samcharles93/glmkit/internal/logger"
	"github.com/samcharles93/glmkit/pkg/dist"
	"github.com/samcharles93/glmkit/pkg/model"
)

func testModel(t *testing.T) *model.Model {
	t.Helper()
	return model.New("test", model.WithLogger(logger.Discard()))
}

func TestRegistryNames(t *testing.T) {
	t.Parallel()
	want := []string{"binomial", "negbinomial", "normal", "poisson", "studentt"}
	got := Names()
	if len(got) != len(want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Names() = %v, want %v", got, want)
		}
	}
}

func TestUnknownFamily(t *testing.T) {
	t.Parallel()
	_, err := New("gamma", Config{})
	if !errors.Is(err, ErrUnknownFamily) {
		t.Fatalf("New(gamma) error = %v, want ErrUnknownFamily", err)
	}
}

func TestBinomialDefaults(t *testing.T) {
	t.Parallel()
	f, err := New("binomial", Config{})
	if err != nil {
		t.Fatal(err)
	}
	if f.Link.Name != "logit" || f.Likelihood != dist.Binomial || f.Parent != "p" {
		t.Fatalf("unexpected binomial record: %+v", f)
	}
	if len(f.Priors) != 1 || f.Priors["n"].String() != "1" {
		t.Fatalf("binomial default priors = %v, want {n: 1}", f.Priors)
	}
}

func TestPriorOverrideMergesWithoutLeaking(t *testing.T) {
	t.Parallel()
	custom, err := New("normal", Config{
		Priors: map[string]Prior{"mu": Random(dist.NewNormal(0, 10))},
	})
	if err != nil {
		t.Fatal(err)
	}
	// Merged: subclass default plus the override.
	if _, ok := custom.Priors["sigma"]; !ok {
		t.Fatal("override dropped the default sigma prior")
	}
	if _, ok := custom.Priors["mu"]; !ok {
		t.Fatal("override prior missing from merged map")
	}

	// The registry defaults must be untouched.
	fresh, err := New("normal", Config{})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := fresh.Priors["mu"]; ok {
		t.Fatal("override leaked into registry defaults")
	}
	if len(fresh.Priors) != 1 {
		t.Fatalf("fresh normal priors = %v, want only sigma", fresh.Priors)
	}
}

func TestConfigValidation(t *testing.T) {
	t.Parallel()
	if _, err := New("normal", Config{Likelihood: "Gamma"}); !errors.Is(err, ErrBadConfig) {
		t.Errorf("unknown likelihood: err = %v, want ErrBadConfig", err)
	}
	if _, err := New("normal", Config{Parent: "rate"}); !errors.Is(err, ErrBadConfig) {
		t.Errorf("bad parent: err = %v, want ErrBadConfig", err)
	}
	if _, err := New("normal", Config{Priors: map[string]Prior{"beta": Fixed(1)}}); !errors.Is(err, ErrBadConfig) {
		t.Errorf("bad prior key: err = %v, want ErrBadConfig", err)
	}
}

func TestResolvePriorsKeySetAndPassthrough(t *testing.T) {
	t.Parallel()
	f, err := New("studentt", Config{})
	if err != nil {
		t.Fatal(err)
	}
	m := testModel(t)
	resolved, err := f.ResolvePriors(m, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(resolved) != len(f.Priors) {
		t.Fatalf("resolved %d entries for %d priors", len(resolved), len(f.Priors))
	}
	for key := range f.Priors {
		if _, ok := resolved[key]; !ok {
			t.Errorf("resolved map missing key %q", key)
		}
	}
	// Fixed numeric entries pass through unchanged.
	if resolved["nu"] != model.Scalar(1) {
		t.Errorf("nu = %v, want Scalar(1)", resolved["nu"])
	}
	// Spec entries become registered variables under the bare key.
	rv, ok := resolved["lam"].(*model.RV)
	if !ok {
		t.Fatalf("lam = %T, want *model.RV", resolved["lam"])
	}
	if rv.Name != "lam" {
		t.Errorf("lam registered as %q, want bare key", rv.Name)
	}
	if _, ok := m.Var("lam"); !ok {
		t.Error("lam not registered in model")
	}
}

func TestResolvePriorsPrefix(t *testing.T) {
	t.Parallel()
	f, err := New("normal", Config{})
	if err != nil {
		t.Fatal(err)
	}
	m := testModel(t)
	resolved, err := f.ResolvePriors(m, "g")
	if err != nil {
		t.Fatal(err)
	}
	rv := resolved["sigma"].(*model.RV)
	if rv.Name != "g_sigma" {
		t.Fatalf("sigma registered as %q, want g_sigma", rv.Name)
	}
}

func TestResolvePriorsNilModel(t *testing.T) {
	t.Parallel()
	f, err := New("normal", Config{})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.ResolvePriors(nil, ""); !errors.Is(err, model.ErrNoModel) {
		t.Fatalf("nil model: err = %v, want ErrNoModel", err)
	}
}

func TestBuildLikelihoodOverwritesParent(t *testing.T) {
	t.Parallel()
	// A user-supplied prior under the parent name must be ignored.
	f, err := New("binomial", Config{
		Priors: map[string]Prior{"p": Fixed(0.9)},
	})
	if err != nil {
		t.Fatal(err)
	}
	m := testModel(t)
	node, err := f.BuildLikelihood(m, "", model.Scalar(0), []float64{0, 1, 1})
	if err != nil {
		t.Fatal(err)
	}
	p, ok := node.Params["p"].(model.Scalar)
	if !ok {
		t.Fatalf("p = %T, want Scalar", node.Params["p"])
	}
	if math.Abs(float64(p)-0.5) > 1e-12 {
		t.Fatalf("p = %v, want logit(0) = 0.5", p)
	}
}

func TestBuildLikelihoodNaming(t *testing.T) {
	t.Parallel()
	f, err := New("normal", Config{})
	if err != nil {
		t.Fatal(err)
	}

	m := testModel(t)
	node, err := f.BuildLikelihood(m, "", model.Scalar(0), []float64{1, 2})
	if err != nil {
		t.Fatal(err)
	}
	if node.Name != "y" {
		t.Errorf("empty name: node = %q, want y", node.Name)
	}

	m2 := testModel(t)
	node2, err := f.BuildLikelihood(m2, "g", model.Scalar(0), []float64{1, 2})
	if err != nil {
		t.Fatal(err)
	}
	if node2.Name != "g_y" {
		t.Errorf("name g: node = %q, want g_y", node2.Name)
	}
	if _, ok := m2.Var("g_sigma"); !ok {
		t.Error("prefixed prior g_sigma not registered")
	}
}

func TestBinomialOverrideScenario(t *testing.T) {
	t.Parallel()
	f, err := New("binomial", Config{
		Priors: map[string]Prior{"n": Fixed(5)},
	})
	if err != nil {
		t.Fatal(err)
	}
	m := testModel(t)
	node, err := f.BuildLikelihood(m, "", model.Scalar(2), []float64{3, 4})
	if err != nil {
		t.Fatal(err)
	}
	if node.Params["n"] != model.Scalar(5) {
		t.Errorf("n = %v, want 5", node.Params["n"])
	}
	p := float64(node.Params["p"].(model.Scalar))
	want := 1 / (1 + math.Exp(-2))
	if math.Abs(p-want) > 1e-12 {
		t.Errorf("p = %v, want logit(2) = %v", p, want)
	}
}

func TestBuildLikelihoodMissingRequiredPrior(t *testing.T) {
	t.Parallel()
	// A hand-built family with no prior for sigma must fail loudly, not
	// construct a half-parameterized likelihood.
	f := &Family{
		Name:       "normal",
		Link:       Identity,
		Likelihood: dist.Normal,
		Parent:     "mu",
		Priors:     map[string]Prior{},
	}
	m := testModel(t)
	_, err := f.BuildLikelihood(m, "", model.Scalar(0), []float64{1})
	if !errors.Is(err, ErrMissingPrior) {
		t.Fatalf("err = %v, want ErrMissingPrior", err)
	}
	if !strings.Contains(err.Error(), "sigma") {
		t.Fatalf("error should name the missing parameter, got: %v", err)
	}
}

func TestDescribe(t *testing.T) {
	t.Parallel()
	f, err := New("poisson", Config{})
	if err != nil {
		t.Fatal(err)
	}
	out := f.Describe()
	for _, want := range []string{"poisson", "Poisson", "mu", "exp"} {
		if !strings.Contains(out, want) {
			t.Errorf("Describe() missing %q:\n%s", want, out)
		}
	}
}
