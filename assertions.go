package fuzzy

import (
	"math"
	"testing"
)

// Polyline is a curve that can describe itself as Shape control points.
// Every curve in this package implements it.
type Polyline interface {
	Curve
	Points() []Point
}

// AssertionConfig contains sampling parameters for curve property checks.
type AssertionConfig struct {
	// Number of evenly spaced samples across the curve's support
	Samples int

	// Extra distance sampled beyond the first and last breakpoint
	Margin float64

	// Offset used to probe either side of a breakpoint
	Epsilon float64

	// Largest allowed degree change across Epsilon at a breakpoint
	MaxJump float64

	// Tolerance when comparing two degrees
	Tolerance float64
}

// DefaultAssertionConfig returns conservative settings.
func DefaultAssertionConfig() AssertionConfig {
	return AssertionConfig{
		Samples:   512,
		Margin:    10,
		Epsilon:   1e-9,
		MaxJump:   1e-6,
		Tolerance: 1e-9,
	}
}

// SampleGrid returns evenly spaced x values covering the curve's breakpoints
// plus cfg.Margin on each side, followed by the breakpoints themselves and the
// infinities.
func SampleGrid(c Polyline, cfg AssertionConfig) []float64 {
	pts := c.Points()
	if len(pts) == 0 {
		return []float64{0, math.Inf(-1), math.Inf(1)}
	}

	lo := pts[0].X - cfg.Margin
	hi := pts[len(pts)-1].X + cfg.Margin
	n := cfg.Samples
	if n < 2 {
		n = 2
	}

	xs := make([]float64, 0, n+len(pts)+2)
	for i := 0; i < n; i++ {
		xs = append(xs, lo+(hi-lo)*float64(i)/float64(n-1))
	}
	for _, p := range pts {
		xs = append(xs, p.X)
	}
	return append(xs, math.Inf(-1), math.Inf(1))
}

// AssertDegreeBounds verifies 0 <= c.Fuzzify(x) <= 1 for every x.
func AssertDegreeBounds(t testing.TB, c Curve, xs []float64) {
	t.Helper()

	for _, x := range xs {
		d := c.Fuzzify(x)
		if math.IsNaN(d) || d < 0 || d > 1 {
			t.Errorf("%v: degree at x=%g is %v, outside [0,1]", c, x, d)
		}
	}
}

// AssertMonotonic verifies the curve never decreases (increasing=true) or
// never increases (increasing=false) over the ascending samples xs.
func AssertMonotonic(t testing.TB, c Curve, xs []float64, increasing bool) {
	t.Helper()

	for i := 1; i < len(xs); i++ {
		if xs[i] < xs[i-1] {
			t.Fatalf("samples must be ascending: x[%d]=%g < x[%d]=%g", i, xs[i], i-1, xs[i-1])
		}
		prev, curr := c.Fuzzify(xs[i-1]), c.Fuzzify(xs[i])
		if increasing && curr < prev {
			t.Errorf("%v: decreases between x=%g (%g) and x=%g (%g)", c, xs[i-1], prev, xs[i], curr)
		}
		if !increasing && curr > prev {
			t.Errorf("%v: increases between x=%g (%g) and x=%g (%g)", c, xs[i-1], prev, xs[i], curr)
		}
	}
}

// AssertContinuous verifies there is no jump at any of the given breakpoints.
func AssertContinuous(t testing.TB, c Curve, breakpoints []float64, cfg AssertionConfig) {
	t.Helper()

	for _, b := range breakpoints {
		at := c.Fuzzify(b)
		left := c.Fuzzify(b - cfg.Epsilon)
		right := c.Fuzzify(b + cfg.Epsilon)

		if math.Abs(at-left) > cfg.MaxJump || math.Abs(at-right) > cfg.MaxJump {
			t.Errorf("%v: discontinuous at x=%g (left=%g at=%g right=%g)", c, b, left, at, right)
		}
	}
}

// AssertMatchesShape verifies the curve agrees with the generic Shape built
// from its own control points.
func AssertMatchesShape(t testing.TB, c Polyline, cfg AssertionConfig) {
	t.Helper()

	shape, err := NewShape(c.Points()...)
	if err != nil {
		t.Fatalf("%v: control points rejected: %v", c, err)
	}

	for _, x := range SampleGrid(c, cfg) {
		want, got := shape.Fuzzify(x), c.Fuzzify(x)
		if math.Abs(want-got) > cfg.Tolerance {
			t.Errorf("%v: x=%g gives %g, shape gives %g", c, x, got, want)
		}
	}
}

// AssertCurve runs the property checks that hold for every curve.
func AssertCurve(t *testing.T, c Polyline) {
	t.Helper()

	cfg := DefaultAssertionConfig()
	xs := SampleGrid(c, cfg)

	t.Run("DegreeBounds", func(t *testing.T) {
		AssertDegreeBounds(t, c, xs)
	})

	t.Run("MatchesShape", func(t *testing.T) {
		AssertMatchesShape(t, c, cfg)
	})

	t.Run("NaN", func(t *testing.T) {
		if d := c.Fuzzify(math.NaN()); d != 0 {
			t.Errorf("%v: NaN input gives %g, expected 0", c, d)
		}
	})
}

// PrintCurve outputs a sampled table of the curve to the test log.
func PrintCurve(t testing.TB, c Polyline, samples int) {
	t.Helper()

	cfg := DefaultAssertionConfig()
	cfg.Samples = samples
	cfg.Margin = 1

	t.Logf("\n=== %v ===", c)
	t.Logf("  x             degree")
	t.Logf("  ------------  ------")
	for _, x := range SampleGrid(c, cfg)[:max(samples, 2)] {
		t.Logf("  %12.4f  %6.4f", x, c.Fuzzify(x))
	}
}
