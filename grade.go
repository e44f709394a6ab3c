package fuzzy

import (
	"fmt"
	"math"
)

// Grade is an ascending ramp: 0 up to A, linear rise to 1 at B, 1 beyond.
type Grade struct {
	A, B float64
}

// ReverseGrade is a descending ramp: 1 up to A, linear fall to 0 at B, 0 beyond.
type ReverseGrade struct {
	A, B float64
}

var (
	_ Curve = Grade{}
	_ Curve = ReverseGrade{}
)

// NewGrade returns an ascending ramp. Requires a < b.
func NewGrade(a, b float64) (Grade, error) {
	if err := checkRamp("grade", a, b); err != nil {
		return Grade{}, err
	}
	return Grade{A: a, B: b}, nil
}

// NewReverseGrade returns a descending ramp. Requires a < b.
func NewReverseGrade(a, b float64) (ReverseGrade, error) {
	if err := checkRamp("reverse grade", a, b); err != nil {
		return ReverseGrade{}, err
	}
	return ReverseGrade{A: a, B: b}, nil
}

func (g Grade) Fuzzify(x float64) float64 {
	switch {
	case math.IsNaN(x):
		return 0
	case x <= g.A:
		return 0
	case x >= g.B:
		return 1
	default:
		return clamp((x - g.A) / (g.B - g.A))
	}
}

// Points returns the equivalent Shape control points.
func (g Grade) Points() []Point {
	return []Point{{X: g.A, Degree: 0}, {X: g.B, Degree: 1}}
}

func (g Grade) String() string {
	return fmt.Sprintf("Grade(%g, %g)", g.A, g.B)
}

func (r ReverseGrade) Fuzzify(x float64) float64 {
	switch {
	case math.IsNaN(x):
		return 0
	case x <= r.A:
		return 1
	case x >= r.B:
		return 0
	default:
		return clamp((r.B - x) / (r.B - r.A))
	}
}

// Points returns the equivalent Shape control points.
func (r ReverseGrade) Points() []Point {
	return []Point{{X: r.A, Degree: 1}, {X: r.B, Degree: 0}}
}

func (r ReverseGrade) String() string {
	return fmt.Sprintf("ReverseGrade(%g, %g)", r.A, r.B)
}

func checkRamp(kind string, a, b float64) error {
	if err := checkOrdered(kind, a, b); err != nil {
		return err
	}
	if a == b {
		return fmt.Errorf("%w: %s needs a < b, got a == b == %g", ErrInvalidCurve, kind, a)
	}
	return nil
}
