package fuzzy

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
)

// Operator is the combining kind of a rule.
type Operator uint8

const (
	OpSeed Operator = iota // Establishes the winner unconditionally
	OpAnd                  // min(running, rule)
	OpOr                   // max(running, rule)
	OpNot                  // 1 - running
)

var (
	// ErrMissingCurve is returned when a rule has no curve to fuzzify.
	ErrMissingCurve = errors.New("rule has no curve")

	// ErrUnseeded is returned when a combining rule runs before any seed rule.
	ErrUnseeded = errors.New("combining rule before seed")

	// ErrUnknownOperator is returned for operators outside {seed, and, or, not}.
	ErrUnknownOperator = errors.New("unknown operator")
)

func (o Operator) String() string {
	switch o {
	case OpSeed:
		return "seed"
	case OpAnd:
		return "and"
	case OpOr:
		return "or"
	case OpNot:
		return "not"
	default:
		return fmt.Sprintf("Operator(%d)", uint8(o))
	}
}

// ParseOperator parses an operator name. "init" is accepted as an alias of
// "seed". Matching is case-insensitive.
func ParseOperator(s string) (Operator, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "seed", "init":
		return OpSeed, nil
	case "and":
		return OpAnd, nil
	case "or":
		return OpOr, nil
	case "not":
		return OpNot, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownOperator, s)
	}
}

// MarshalText encodes the operator by name.
func (o Operator) MarshalText() ([]byte, error) {
	if o > OpNot {
		return nil, fmt.Errorf("%w: %d", ErrUnknownOperator, uint8(o))
	}
	return []byte(o.String()), nil
}

// UnmarshalText decodes an operator name, see ParseOperator.
func (o *Operator) UnmarshalText(b []byte) error {
	op, err := ParseOperator(string(b))
	if err != nil {
		return err
	}
	*o = op
	return nil
}

// Rule associates an output label with a curve and a combining operator.
type Rule struct {
	Output string
	Curve  Curve
	Op     Operator
}

// Engine holds an ordered list of rules. Order is evaluation order.
//
// Build the rule list first, then call Evaluate as often as needed. Evaluate
// never mutates the engine, so a fully built engine can be shared between
// goroutines. Interleaving builder calls with evaluations is not supported.
type Engine struct {
	rules  []Rule
	logger *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for Debug-level evaluation traces.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// New creates an empty engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Seed appends a seed rule. It should be the first rule; a seed further down
// the list re-seeds the winner unconditionally when it is reached.
func (e *Engine) Seed(output string, c Curve) *Engine {
	return e.add(output, c, OpSeed)
}

// And appends a rule combined with min.
func (e *Engine) And(output string, c Curve) *Engine {
	return e.add(output, c, OpAnd)
}

// Or appends a rule combined with max.
func (e *Engine) Or(output string, c Curve) *Engine {
	return e.add(output, c, OpOr)
}

// Not appends a rule combined with the complement of the running curve.
// Its own curve only contributes the degree reported for the rule.
func (e *Engine) Not(output string, c Curve) *Engine {
	return e.add(output, c, OpNot)
}

// Add appends a rule with an explicit operator.
func (e *Engine) Add(r Rule) *Engine {
	return e.add(r.Output, r.Curve, r.Op)
}

func (e *Engine) add(output string, c Curve, op Operator) *Engine {
	e.rules = append(e.rules, Rule{Output: output, Curve: c, Op: op})
	return e
}

// Rules returns a copy of the rule list.
func (e *Engine) Rules() []Rule {
	out := make([]Rule, len(e.rules))
	copy(out, e.rules)
	return out
}

// Len returns the number of rules.
func (e *Engine) Len() int {
	return len(e.rules)
}

// Validate checks the rule list without evaluating it: the first rule must be
// a seed, every rule needs a curve and a known operator.
func (e *Engine) Validate() error {
	for i, r := range e.rules {
		if err := r.check(i); err != nil {
			return err
		}
		if i == 0 && r.Op != OpSeed {
			return fmt.Errorf("%w: rule 0 (%q) uses %s", ErrUnseeded, r.Output, r.Op)
		}
	}
	return nil
}

func (r Rule) check(i int) error {
	if r.Curve == nil {
		return fmt.Errorf("%w: rule %d (%q, %s)", ErrMissingCurve, i, r.Output, r.Op)
	}
	if r.Op > OpNot {
		return fmt.Errorf("%w: rule %d (%q) has %s", ErrUnknownOperator, i, r.Output, r.Op)
	}
	return nil
}

// Evaluate fuzzifies every rule at x and returns the winning label.
//
// A seed rule sets the winner and the running curve. Every other rule
// combines the running curve's degree r with its own:
//
//	and: min(r, d)    or: max(r, d)    not: 1 - r
//
// The rule takes over as winner only when the combined degree differs from r;
// ties keep the running winner. And/Or winners also become the running curve,
// a Not winner changes the label but keeps the running curve.
//
// An empty engine yields the None label with degree 0. Errors are returned
// only for malformed rules (nil curve, combining rule before any seed).
func (e *Engine) Evaluate(x float64) (Result, error) {
	res := Result{
		Label: None,
		Trace: make([]TraceEntry, 0, len(e.rules)),
	}

	var running Curve
	for i, r := range e.rules {
		if err := r.check(i); err != nil {
			return Result{}, err
		}

		d := r.Curve.Fuzzify(x)
		entry := TraceEntry{Index: i, Output: r.Output, Op: r.Op, Degree: d, Combined: d}

		if r.Op == OpSeed {
			running = r.Curve
			res.Label, res.Degree = r.Output, d
			entry.Won = true
			res.Trace = append(res.Trace, entry)
			continue
		}

		if running == nil {
			return Result{}, fmt.Errorf("%w: rule %d (%q) uses %s", ErrUnseeded, i, r.Output, r.Op)
		}

		base := running.Fuzzify(x)
		var combined float64
		switch r.Op {
		case OpAnd:
			combined = math.Min(base, d)
		case OpOr:
			combined = math.Max(base, d)
		case OpNot:
			combined = 1 - base
		}
		entry.Combined = combined

		if combined != base {
			res.Label, res.Degree = r.Output, d
			if r.Op != OpNot {
				running = r.Curve
			}
			entry.Won = true
			e.logger.Debug("rule override",
				"rule", i,
				"output", r.Output,
				"op", r.Op.String(),
				"x", x,
				"degree", d,
				"running", base,
				"combined", combined,
			)
		}
		res.Trace = append(res.Trace, entry)
	}

	return res, nil
}
