package dist

import (
	"errors"
	"testing"
)

func TestLookupKnown(t *testing.T) {
	t.Parallel()
	for _, name := range []Name{Normal, StudentT, Binomial, Poisson, NegativeBinomial, HalfCauchy, HalfNormal} {
		info, err := Lookup(name)
		if err != nil {
			t.Errorf("Lookup(%s): %v", name, err)
			continue
		}
		if info.Name != name || len(info.Params) == 0 {
			t.Errorf("Lookup(%s) = %+v", name, info)
		}
	}
}

func TestLookupUnknown(t *testing.T) {
	t.Parallel()
	_, err := Lookup("Gamma")
	if !errors.Is(err, ErrUnknownDist) {
		t.Fatalf("err = %v, want ErrUnknownDist", err)
	}
}

func TestRequired(t *testing.T) {
	t.Parallel()
	info, err := Lookup(Binomial)
	if err != nil {
		t.Fatal(err)
	}
	req := info.Required()
	if len(req) != 2 || req[0] != "n" || req[1] != "p" {
		t.Fatalf("Binomial required = %v, want [n p]", req)
	}
}

func TestSpecValidate(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		spec Spec
		want error
	}{
		{"ok half cauchy", NewHalfCauchy(10), nil},
		{"ok normal", NewNormal(0, 1), nil},
		{"unknown dist", NewSpec("Gamma", nil), ErrUnknownDist},
		{"unknown param", NewSpec(Poisson, map[string]float64{"rate": 1}), ErrInvalidSpec},
		{"missing required", NewSpec(Normal, map[string]float64{"mu": 0}), ErrInvalidSpec},
		{"nonpositive scale", NewNormal(0, -1), ErrInvalidSpec},
		{"zero beta", NewHalfCauchy(0), ErrInvalidSpec},
	}
	for _, tc := range cases {
		err := tc.spec.Validate()
		if tc.want == nil {
			if err != nil {
				t.Errorf("%s: unexpected error %v", tc.name, err)
			}
			continue
		}
		if !errors.Is(err, tc.want) {
			t.Errorf("%s: err = %v, want %v", tc.name, err, tc.want)
		}
	}
}

func TestSpecString(t *testing.T) {
	t.Parallel()
	s := NewNormal(0, 1)
	if got := s.String(); got != "Normal(mu=0, sigma=1)" {
		t.Fatalf("String() = %q", got)
	}
	if got := NewHalfCauchy(10).String(); got != "HalfCauchy(beta=10)" {
		t.Fatalf("String() = %q", got)
	}
}

func TestNamesSorted(t *testing.T) {
	t.Parallel()
	names := Names()
	if len(names) != 7 {
		t.Fatalf("Names() has %d entries, want 7", len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("Names() not sorted: %v", names)
		}
	}
}
