package fuzzy

// None is the label of a Result produced by an engine without rules.
const None = "none"

// Result is the outcome of a single evaluation.
type Result struct {
	Degree float64      `json:"degree"`
	Label  string       `json:"label"`
	Trace  []TraceEntry `json:"trace"`
}

// TraceEntry records how one rule behaved during an evaluation.
type TraceEntry struct {
	Index    int      `json:"index"`
	Output   string   `json:"output"`
	Op       Operator `json:"op"`
	Degree   float64  `json:"degree"`   // The rule's own curve at x
	Combined float64  `json:"combined"` // Degree after combining with the running curve
	Won      bool     `json:"won"`      // The rule became (or stayed, for seeds) the winner
}

// Float64 returns the winning degree.
func (r Result) Float64() float64 {
	return r.Degree
}

// String returns the winning label.
func (r Result) String() string {
	return r.Label
}

// Degrees returns the per-rule degrees in rule order.
func (r Result) Degrees() []float64 {
	out := make([]float64, len(r.Trace))
	for i, t := range r.Trace {
		out[i] = t.Degree
	}
	return out
}
