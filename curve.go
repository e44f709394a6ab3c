package fuzzy

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

// Curve maps a crisp value to a membership degree in [0, 1].
//
// Implementations must be pure: the same x always yields the same degree,
// and evaluating a curve never mutates it. Every curve in this package is an
// immutable value type and can be shared between goroutines.
type Curve interface {
	Fuzzify(x float64) float64
}

var (
	// ErrInvalidCurve is returned when curve breakpoints are malformed.
	ErrInvalidCurve = errors.New("invalid curve")

	// ErrUnknownCurveKind is returned by a Registry for unregistered kinds.
	ErrUnknownCurveKind = errors.New("unknown curve kind")
)

// Point is a control point of a Shape.
type Point struct {
	X      float64 `json:"x"`
	Degree float64 `json:"degree"`
}

// Shape is the generic membership curve: piecewise-linear interpolation
// between ordered control points.
//
// Below the first point the curve holds the first point's degree, above the
// last point it holds the last point's degree. Two points sharing the same X
// form a vertical step; at the step itself the higher degree applies.
type Shape struct {
	points []Point
}

var _ Curve = Shape{}

// NewShape validates the control points and returns a Shape.
//
// Points must be finite, ordered by non-decreasing X, and carry degrees
// within [0, 1]. At least one point is required.
func NewShape(points ...Point) (Shape, error) {
	if len(points) == 0 {
		return Shape{}, fmt.Errorf("%w: shape needs at least one point", ErrInvalidCurve)
	}

	for i, p := range points {
		if !isFinite(p.X) {
			return Shape{}, fmt.Errorf("%w: shape point %d has non-finite x %v", ErrInvalidCurve, i, p.X)
		}
		if math.IsNaN(p.Degree) || p.Degree < 0 || p.Degree > 1 {
			return Shape{}, fmt.Errorf("%w: shape point %d degree %v outside [0,1]", ErrInvalidCurve, i, p.Degree)
		}
		if i > 0 && p.X < points[i-1].X {
			return Shape{}, fmt.Errorf("%w: shape point %d (x=%v) precedes point %d (x=%v)",
				ErrInvalidCurve, i, p.X, i-1, points[i-1].X)
		}
	}

	pts := make([]Point, len(points))
	copy(pts, points)
	return Shape{points: pts}, nil
}

// Fuzzify interpolates the degree at x.
func (s Shape) Fuzzify(x float64) float64 {
	n := len(s.points)
	if n == 0 || math.IsNaN(x) {
		return 0
	}

	first, last := s.points[0], s.points[n-1]
	if x < first.X {
		return clamp(first.Degree)
	}
	if x > last.X {
		return clamp(last.Degree)
	}

	// First point at or right of x. Guaranteed to exist since x <= last.X.
	i := sort.Search(n, func(i int) bool { return s.points[i].X >= x })

	if s.points[i].X == x {
		d := s.points[i].Degree
		for j := i + 1; j < n && s.points[j].X == x; j++ {
			d = math.Max(d, s.points[j].Degree)
		}
		return clamp(d)
	}

	// points[i-1].X < x < points[i].X, so the segment has non-zero width.
	lo, hi := s.points[i-1], s.points[i]
	t := (x - lo.X) / (hi.X - lo.X)
	return clamp(lo.Degree + t*(hi.Degree-lo.Degree))
}

// Points returns a copy of the control points.
func (s Shape) Points() []Point {
	pts := make([]Point, len(s.points))
	copy(pts, s.points)
	return pts
}

func (s Shape) String() string {
	parts := make([]string, len(s.points))
	for i, p := range s.points {
		parts[i] = fmt.Sprintf("(%g, %g)", p.X, p.Degree)
	}
	return "Shape[" + strings.Join(parts, " ") + "]"
}

// clamp bounds a degree to [0, 1]. Interpolation can overshoot by an epsilon.
func clamp(d float64) float64 {
	switch {
	case math.IsNaN(d):
		return 0
	case d < 0:
		return 0
	case d > 1:
		return 1
	default:
		return d
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// checkOrdered validates breakpoints for the ramp-like variants.
func checkOrdered(kind string, bps ...float64) error {
	for i, v := range bps {
		if !isFinite(v) {
			return fmt.Errorf("%w: %s breakpoint %d is not finite (%v)", ErrInvalidCurve, kind, i, v)
		}
		if i > 0 && v < bps[i-1] {
			return fmt.Errorf("%w: %s breakpoints must be non-decreasing, got %v", ErrInvalidCurve, kind, bps)
		}
	}
	return nil
}
