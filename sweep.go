package fuzzy

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"
)

// maxRangeSamples bounds Range so a tiny step cannot exhaust memory.
const maxRangeSamples = 1_000_000

// SweepConfig controls concurrent sweeps.
type SweepConfig struct {
	Workers int // Concurrent evaluators (0 = GOMAXPROCS)
}

// DefaultSweepConfig returns sensible defaults.
func DefaultSweepConfig() SweepConfig {
	return SweepConfig{
		Workers: runtime.GOMAXPROCS(0),
	}
}

// Sample is the evaluation of an engine at one crisp value.
type Sample struct {
	X      float64 `json:"x"`
	Result Result  `json:"result"`
}

// Boundary marks where the winning label changes between two consecutive samples.
type Boundary struct {
	From, To  float64 // X of the samples on either side
	FromLabel string
	ToLabel   string
}

// Summary describes a sweep.
type Summary struct {
	Samples    int
	Labels     map[string]int // Samples won per label
	MinDegree  float64
	MaxDegree  float64
	Boundaries []Boundary
}

// Range returns from, from+step, ... up to and including to (within rounding).
func Range(from, to, step float64) ([]float64, error) {
	if !isFinite(from) || !isFinite(to) || !isFinite(step) {
		return nil, errors.New("range bounds and step must be finite")
	}
	if step <= 0 {
		return nil, fmt.Errorf("step must be positive, got %g", step)
	}
	if to < from {
		return nil, fmt.Errorf("range end %g is before start %g", to, from)
	}

	// Bound the count as a float: converting an out-of-range float to int
	// yields an implementation-specific value.
	span := math.Floor((to-from)/step + 1e-9)
	if math.IsInf(span, 0) || span+1 > maxRangeSamples {
		return nil, fmt.Errorf("range yields %g samples (max %d)", span+1, maxRangeSamples)
	}
	n := int(span) + 1

	xs := make([]float64, n)
	for i := range xs {
		// Multiply instead of accumulating to avoid drift.
		xs[i] = from + float64(i)*step
	}
	return xs, nil
}

// Sweep evaluates e at every value of xs using a bounded pool of workers.
// Samples are returned in input order. The first evaluation error or a
// cancelled context aborts the sweep.
//
// The engine must be fully built before calling Sweep.
func Sweep(ctx context.Context, e *Engine, xs []float64, cfg SweepConfig) ([]Sample, error) {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	samples := make([]Sample, len(xs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, x := range xs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := e.Evaluate(x)
			if err != nil {
				return fmt.Errorf("x=%g: %w", x, err)
			}
			// Each goroutine owns its own index.
			samples[i] = Sample{X: x, Result: res}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	// gctx is always done after Wait; only the caller's context matters here.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return samples, nil
}

// Summarize computes label counts, degree range and label boundaries.
// Boundaries are detected between consecutive samples after sorting by X.
func Summarize(samples []Sample) Summary {
	s := Summary{
		Samples: len(samples),
		Labels:  make(map[string]int),
	}
	if len(samples) == 0 {
		return s
	}

	sorted := make([]Sample, len(samples))
	copy(sorted, samples)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].X < sorted[j].X
	})

	s.MinDegree = math.Inf(1)
	s.MaxDegree = math.Inf(-1)
	for i, smp := range sorted {
		s.Labels[smp.Result.Label]++
		s.MinDegree = math.Min(s.MinDegree, smp.Result.Degree)
		s.MaxDegree = math.Max(s.MaxDegree, smp.Result.Degree)

		if i > 0 && sorted[i-1].Result.Label != smp.Result.Label {
			s.Boundaries = append(s.Boundaries, Boundary{
				From:      sorted[i-1].X,
				To:        smp.X,
				FromLabel: sorted[i-1].Result.Label,
				ToLabel:   smp.Result.Label,
			})
		}
	}

	return s
}
