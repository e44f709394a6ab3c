package fuzzy

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

func mustTriangle(t *testing.T, a, b, c float64) Triangle {
	t.Helper()
	tri, err := NewTriangle(a, b, c)
	if err != nil {
		t.Fatalf("NewTriangle(%g, %g, %g): %v", a, b, c, err)
	}
	return tri
}

func mustGrade(t *testing.T, a, b float64) Grade {
	t.Helper()
	g, err := NewGrade(a, b)
	if err != nil {
		t.Fatalf("NewGrade(%g, %g): %v", a, b, err)
	}
	return g
}

func mustReverseGrade(t *testing.T, a, b float64) ReverseGrade {
	t.Helper()
	r, err := NewReverseGrade(a, b)
	if err != nil {
		t.Fatalf("NewReverseGrade(%g, %g): %v", a, b, err)
	}
	return r
}

// constant is a Curve returning a fixed degree, for engine tests.
type constant float64

func (c constant) Fuzzify(float64) float64 { return float64(c) }
