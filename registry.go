package fuzzy

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// CurveFactory builds a curve from flat numeric parameters.
type CurveFactory func(params []float64) (Curve, error)

// Registry maps curve kind names to factories. Rule-set definitions refer to
// curves by kind, so new kinds become available to them once registered.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]CurveFactory
}

// Built-in curve kinds.
const (
	KindShape        = "shape"
	KindGrade        = "grade"
	KindReverseGrade = "reverse-grade"
	KindTriangle     = "triangle"
	KindTrapezoid    = "trapezoid"
)

// NewRegistry creates a registry holding the built-in kinds.
func NewRegistry() *Registry {
	r := &Registry{
		factories: make(map[string]CurveFactory),
	}
	r.Register(KindShape, shapeFactory)
	r.Register(KindGrade, func(p []float64) (Curve, error) {
		if err := arity(KindGrade, p, 2); err != nil {
			return nil, err
		}
		return asCurve(NewGrade(p[0], p[1]))
	})
	r.Register(KindReverseGrade, func(p []float64) (Curve, error) {
		if err := arity(KindReverseGrade, p, 2); err != nil {
			return nil, err
		}
		return asCurve(NewReverseGrade(p[0], p[1]))
	})
	r.Register(KindTriangle, func(p []float64) (Curve, error) {
		if err := arity(KindTriangle, p, 3); err != nil {
			return nil, err
		}
		return asCurve(NewTriangle(p[0], p[1], p[2]))
	})
	r.Register(KindTrapezoid, func(p []float64) (Curve, error) {
		if err := arity(KindTrapezoid, p, 4); err != nil {
			return nil, err
		}
		return asCurve(NewTrapezoid(p[0], p[1], p[2], p[3]))
	})
	return r
}

// Register adds or replaces a curve kind. Kind names are case-insensitive.
func (r *Registry) Register(kind string, f CurveFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[normalizeKind(kind)] = f
}

// Build constructs a curve of the given kind.
func (r *Registry) Build(kind string, params []float64) (Curve, error) {
	r.mu.RLock()
	f, ok := r.factories[normalizeKind(kind)]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %s)", ErrUnknownCurveKind, kind, strings.Join(r.Kinds(), ", "))
	}
	return f(params)
}

// Kinds returns the registered kind names, sorted.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]string, 0, len(r.factories))
	for k := range r.factories {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// shapeFactory reads params as x0, d0, x1, d1, ...
func shapeFactory(p []float64) (Curve, error) {
	if len(p) == 0 || len(p)%2 != 0 {
		return nil, fmt.Errorf("%w: shape needs x,degree pairs, got %d params", ErrInvalidCurve, len(p))
	}
	pts := make([]Point, 0, len(p)/2)
	for i := 0; i < len(p); i += 2 {
		pts = append(pts, Point{X: p[i], Degree: p[i+1]})
	}
	return asCurve(NewShape(pts...))
}

// asCurve drops the typed zero value on error so callers never get a
// non-nil Curve alongside an error.
func asCurve[C Curve](c C, err error) (Curve, error) {
	if err != nil {
		return nil, err
	}
	return c, nil
}

func arity(kind string, p []float64, n int) error {
	if len(p) != n {
		return fmt.Errorf("%w: %s needs %d params, got %d", ErrInvalidCurve, kind, n, len(p))
	}
	return nil
}

func normalizeKind(kind string) string {
	k := strings.ToLower(strings.TrimSpace(kind))
	return strings.ReplaceAll(k, "_", "-")
}

// Global registry (optional convenience)
var defaultRegistry = NewRegistry()

// DefaultRegistry returns the package-level registry.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// RegisterCurve adds a kind to the global registry.
func RegisterCurve(kind string, f CurveFactory) {
	defaultRegistry.Register(kind, f)
}

// BuildCurve builds a curve from the global registry.
func BuildCurve(kind string, params []float64) (Curve, error) {
	return defaultRegistry.Build(kind, params)
}
