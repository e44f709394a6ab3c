package fuzzy

import (
	"fmt"
	"math"
)

// Triangle rises from 0 at A to 1 at B and falls back to 0 at C.
//
// A == B or B == C turns that side into an instantaneous step; the peak B
// always evaluates to 1.
type Triangle struct {
	A, B, C float64
}

// Trapezoid rises from 0 at A to 1 at B, holds 1 until C and falls to 0 at D.
type Trapezoid struct {
	A, B, C, D float64
}

var (
	_ Curve = Triangle{}
	_ Curve = Trapezoid{}
)

// NewTriangle returns a triangular curve. Requires a <= b <= c.
func NewTriangle(a, b, c float64) (Triangle, error) {
	if err := checkOrdered("triangle", a, b, c); err != nil {
		return Triangle{}, err
	}
	return Triangle{A: a, B: b, C: c}, nil
}

// NewTrapezoid returns a trapezoidal curve. Requires a <= b <= c <= d.
func NewTrapezoid(a, b, c, d float64) (Trapezoid, error) {
	if err := checkOrdered("trapezoid", a, b, c, d); err != nil {
		return Trapezoid{}, err
	}
	return Trapezoid{A: a, B: b, C: c, D: d}, nil
}

func (t Triangle) Fuzzify(x float64) float64 {
	switch {
	case math.IsNaN(x), x < t.A, x > t.C:
		return 0
	case x == t.B:
		return 1
	case x < t.B:
		// t.A <= x < t.B, so B-A > 0.
		return clamp((x - t.A) / (t.B - t.A))
	default:
		// t.B < x <= t.C, so C-B > 0.
		return clamp((t.C - x) / (t.C - t.B))
	}
}

// Points returns the equivalent Shape control points.
func (t Triangle) Points() []Point {
	return []Point{{X: t.A, Degree: 0}, {X: t.B, Degree: 1}, {X: t.C, Degree: 0}}
}

func (t Triangle) String() string {
	return fmt.Sprintf("Triangle(%g, %g, %g)", t.A, t.B, t.C)
}

func (t Trapezoid) Fuzzify(x float64) float64 {
	switch {
	case math.IsNaN(x), x < t.A, x > t.D:
		return 0
	case x >= t.B && x <= t.C:
		return 1
	case x < t.B:
		return clamp((x - t.A) / (t.B - t.A))
	default:
		return clamp((t.D - x) / (t.D - t.C))
	}
}

// Points returns the equivalent Shape control points.
func (t Trapezoid) Points() []Point {
	return []Point{
		{X: t.A, Degree: 0},
		{X: t.B, Degree: 1},
		{X: t.C, Degree: 1},
		{X: t.D, Degree: 0},
	}
}

func (t Trapezoid) String() string {
	return fmt.Sprintf("Trapezoid(%g, %g, %g, %g)", t.A, t.B, t.C, t.D)
}
