// Package fuzzy provides a small fuzzy-inference evaluator for decision support.
//
// # Overview
//
// fuzzy converts a crisp numeric input into a single linguistic label plus its
// membership degree. A typical use maps a sensor reading onto a qualitative
// category such as "cold", "warm" or "hot".
//
// It is deliberately not a fuzzy-control system: rules have a single
// antecedent curve, and defuzzification picks a winning rule instead of
// computing a centroid.
//
// # Architecture
//
// The package components:
//
//   - curves    - Shape, Grade, ReverseGrade, Triangle, Trapezoid
//   - engine    - ordered rules combined with seed/and/or/not
//   - registry  - curve kinds by name, used by rule-set definitions
//   - sweep     - concurrent evaluation over a range of inputs
//   - assertions - test helpers for curve properties
//
// Rule sets can also be declared in YAML (package ruleset), served over HTTP
// (package server) and evaluated from the command line (cmd/fuzzy).
//
// # Quick Start
//
//	cold, _ := fuzzy.NewReverseGrade(10, 18)
//	warm, _ := fuzzy.NewTriangle(15, 21, 27)
//	hot, _ := fuzzy.NewGrade(24, 32)
//
//	engine := fuzzy.New().
//	    Seed("cold", cold).
//	    Or("warm", warm).
//	    Or("hot", hot)
//
//	res, err := engine.Evaluate(22.5)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.String(), res.Float64()) // warm 0.75
//
// # Curves
//
// Every curve maps the whole real line into [0, 1]:
//
//	Grade(a, b)            0 ... a /‾‾‾ b ... 1
//	ReverseGrade(a, b)     1 ... a ‾‾‾\ b ... 0
//	Triangle(a, b, c)      0 at a, 1 at b, 0 at c
//	Trapezoid(a, b, c, d)  0 at a, 1 on [b, c], 0 at d
//
// Shape is the general form: piecewise-linear interpolation between control
// points, holding the first and last degree outside its range. Coincident
// breakpoints become vertical steps instead of dividing by zero.
//
// # Evaluation
//
// Rules are evaluated in order. The seed rule sets the initial winner and the
// running curve. Each following rule combines the running curve's degree r
// with its own degree d:
//
//	and:  min(r, d)
//	or:   max(r, d)
//	not:  1 - r
//
// A rule only takes over when the combined degree differs from r. An and/or
// that degenerates to the running value contributes nothing and keeps the
// current label. Order therefore matters: this is a sequential override
// model, not a commutative aggregation.
//
// # Concurrency
//
// Build the rule list, then evaluate. Evaluate never mutates the engine, so a
// built engine may be shared across goroutines. Sweep fans evaluations out
// over a bounded worker pool:
//
//	xs, _ := fuzzy.Range(0, 40, 0.5)
//	samples, err := fuzzy.Sweep(ctx, engine, xs, fuzzy.DefaultSweepConfig())
//	summary := fuzzy.Summarize(samples)
//	for _, b := range summary.Boundaries {
//	    fmt.Printf("%s -> %s between %g and %g\n", b.FromLabel, b.ToLabel, b.From, b.To)
//	}
//
// # Testing
//
// Use assertions to validate custom curves:
//
//	func TestMyCurve(t *testing.T) {
//	    fuzzy.AssertCurve(t, myCurve)
//	}
package fuzzy
