package ruleset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexshd/fuzzy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Thermostat(t *testing.T) {
	def, err := Load(filepath.Join("testdata", "thermostat.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "thermostat", def.Name, "name defaults to the file stem")
	assert.Equal(t, "celsius", def.Unit)
	require.Len(t, def.Rules, 3)
	assert.Equal(t, "seed", def.Rules[0].Op)
	assert.Equal(t, CurveSpec{Kind: "triangle", Params: []float64{15, 21, 27}}, def.Rules[1].Curve)
	assert.Equal(t, []string{"cold", "warm", "hot"}, def.Outputs())

	e, err := def.Compile(nil)
	require.NoError(t, err)
	assert.Equal(t, 3, e.Len())

	res, err := e.Evaluate(22.5)
	require.NoError(t, err)
	assert.Equal(t, "warm", res.Label)
	assert.InDelta(t, 0.75, res.Degree, 1e-12)
}

func TestParse_ExplicitName(t *testing.T) {
	def, err := Parse([]byte(`
name: tank-level
rules:
  - op: init
    output: empty
    curve: {kind: reverse-grade, params: [0, 10]}
  - op: not
    output: filled
    curve: {kind: grade, params: [0, 10]}
`))
	require.NoError(t, err)
	assert.Equal(t, "tank-level", def.Name)

	e, err := def.Compile(fuzzy.NewRegistry())
	require.NoError(t, err)

	rules := e.Rules()
	assert.Equal(t, fuzzy.OpSeed, rules[0].Op)
	assert.Equal(t, fuzzy.OpNot, rules[1].Op)
}

func TestParse_SchemaViolations(t *testing.T) {
	tests := map[string]string{
		"empty":         ``,
		"no rules":      `name: x`,
		"empty rules":   `rules: []`,
		"bad op":        "rules:\n  - {op: xor, output: a, curve: {kind: grade, params: [0, 1]}}",
		"missing curve": "rules:\n  - {op: seed, output: a}",
		"empty output":  "rules:\n  - {op: seed, output: '', curve: {kind: grade, params: [0, 1]}}",
		"string param":  "rules:\n  - {op: seed, output: a, curve: {kind: grade, params: [zero, 1]}}",
		"unknown field": "colour: red\nrules:\n  - {op: seed, output: a, curve: {kind: grade, params: [0, 1]}}",
		"bad name":      "name: ../etc\nrules:\n  - {op: seed, output: a, curve: {kind: grade, params: [0, 1]}}",
		"not yaml":      "rules: [",
	}

	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidDefinition), "got %v", err)
		})
	}
}

func TestCompile_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		is   error
	}{
		{
			name: "unknown kind",
			doc:  "rules:\n  - {op: seed, output: a, curve: {kind: gaussian, params: [0, 1]}}",
			is:   fuzzy.ErrUnknownCurveKind,
		},
		{
			name: "bad breakpoints",
			doc:  "rules:\n  - {op: seed, output: a, curve: {kind: triangle, params: [3, 2, 1]}}",
			is:   fuzzy.ErrInvalidCurve,
		},
		{
			name: "first rule not seed",
			doc:  "rules:\n  - {op: or, output: a, curve: {kind: grade, params: [0, 1]}}",
			is:   fuzzy.ErrUnseeded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def, err := Parse([]byte(tt.doc))
			require.NoError(t, err)

			_, err = def.Compile(nil)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidDefinition)
			assert.ErrorIs(t, err, tt.is)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoad_RepositoryRuleSets(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("..", "rulesets", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, matches)

	for _, path := range matches {
		def, err := Load(path)
		require.NoError(t, err, path)

		e, err := def.Compile(nil)
		require.NoError(t, err, path)

		for x := -10.0; x <= 110; x += 5 {
			res, err := e.Evaluate(x)
			require.NoError(t, err)
			assert.Contains(t, def.Outputs(), res.Label)
		}
	}
}
