// Package ruleset reads fuzzy rule sets from YAML definitions.
//
// A definition lists rules in evaluation order:
//
//	name: thermostat
//	description: Room temperature classification
//	unit: celsius
//	rules:
//	  - op: seed
//	    output: cold
//	    curve: {kind: reverse-grade, params: [10, 18]}
//	  - op: or
//	    output: warm
//	    curve: {kind: triangle, params: [15, 21, 27]}
//
// Documents are validated against a JSON Schema before decoding, and curves
// are built through a fuzzy.Registry so custom kinds can be referenced.
package ruleset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexshd/fuzzy"
	"gopkg.in/yaml.v3"
)

// ErrInvalidDefinition is returned for malformed rule-set documents.
var ErrInvalidDefinition = errors.New("invalid rule set definition")

// Definition is a declarative rule set.
type Definition struct {
	Name        string     `yaml:"name" json:"name"`
	Description string     `yaml:"description,omitempty" json:"description,omitempty"`
	Unit        string     `yaml:"unit,omitempty" json:"unit,omitempty"`
	Rules       []RuleSpec `yaml:"rules" json:"rules"`
}

// RuleSpec declares one rule.
type RuleSpec struct {
	Op     string    `yaml:"op" json:"op"`
	Output string    `yaml:"output" json:"output"`
	Curve  CurveSpec `yaml:"curve" json:"curve"`
}

// CurveSpec declares a curve by registry kind and parameters.
type CurveSpec struct {
	Kind   string    `yaml:"kind" json:"kind"`
	Params []float64 `yaml:"params" json:"params"`
}

// Parse decodes and validates a YAML definition.
func Parse(data []byte) (*Definition, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDefinition, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidDefinition)
	}

	if err := validateDocument(doc); err != nil {
		return nil, err
	}

	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDefinition, err)
	}
	return &def, nil
}

// Load reads a definition file. The name defaults to the file name without
// its extension.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rule set: %w", err)
	}

	def, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if def.Name == "" {
		base := filepath.Base(path)
		def.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return def, nil
}

// Compile builds an engine from the definition. A nil registry uses
// fuzzy.DefaultRegistry.
func (d *Definition) Compile(reg *fuzzy.Registry, opts ...fuzzy.Option) (*fuzzy.Engine, error) {
	if reg == nil {
		reg = fuzzy.DefaultRegistry()
	}

	e := fuzzy.New(opts...)
	for i, r := range d.Rules {
		op, err := fuzzy.ParseOperator(r.Op)
		if err != nil {
			return nil, fmt.Errorf("%w: rule %d (%q): %w", ErrInvalidDefinition, i, r.Output, err)
		}

		c, err := reg.Build(r.Curve.Kind, r.Curve.Params)
		if err != nil {
			return nil, fmt.Errorf("%w: rule %d (%q): %w", ErrInvalidDefinition, i, r.Output, err)
		}

		e.Add(fuzzy.Rule{Output: r.Output, Curve: c, Op: op})
	}

	if err := e.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDefinition, err)
	}
	return e, nil
}

// Outputs returns the distinct rule outputs in first-seen order.
func (d *Definition) Outputs() []string {
	seen := make(map[string]bool, len(d.Rules))
	var out []string
	for _, r := range d.Rules {
		if !seen[r.Output] {
			seen[r.Output] = true
			out = append(out, r.Output)
		}
	}
	return out
}
