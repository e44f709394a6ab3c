package cli

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alexshd/fuzzy"
	"github.com/alexshd/fuzzy/internal/catalog"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const thermostat = `name: thermostat
description: Room temperature classification
unit: celsius
rules:
  - op: seed
    output: cold
    curve: {kind: reverse-grade, params: [10, 18]}
  - op: or
    output: warm
    curve: {kind: triangle, params: [15, 21, 27]}
  - op: or
    output: hot
    curve: {kind: grade, params: [24, 32]}
`

// clearEnv isolates a test from the caller's FUZZY_* settings.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"FUZZY_RULESETS", "FUZZY_ADDR", "FUZZY_LOG_LEVEL", "FUZZY_CACHE_SIZE", "PORT"} {
		t.Setenv(k, "")
	}
}

func rulesDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "thermostat.yaml"), []byte(thermostat), 0o644))
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	clearEnv(t)

	var out, errOut bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "fuzzy (devel)\n", out)
}

func TestEval(t *testing.T) {
	out, err := run(t, "eval", "thermostat", "5", "22.5", "30", "--rules-dir", rulesDir(t))
	require.NoError(t, err)
	assert.Equal(t, "5: cold 1.00\n22.5: warm 0.75\n30: hot 0.75\n", out)
}

func TestEval_Trace(t *testing.T) {
	out, err := run(t, "eval", "thermostat", "22.5", "--trace", "--rules-dir", rulesDir(t))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "22.5: warm 0.75", lines[0])
	assert.Contains(t, lines[2], "warm")
	assert.True(t, strings.HasSuffix(lines[2], " *"), lines[2])
	assert.False(t, strings.HasSuffix(lines[3], " *"), lines[3])
}

func TestEval_JSON(t *testing.T) {
	out, err := run(t, "eval", "thermostat", "22.5", "--json", "--rules-dir", rulesDir(t))
	require.NoError(t, err)

	var samples []fuzzy.Sample
	require.NoError(t, json.Unmarshal([]byte(out), &samples))
	require.Len(t, samples, 1)
	assert.Equal(t, "warm", samples[0].Result.Label)
	assert.InDelta(t, 0.75, samples[0].Result.Degree, 1e-12)
	require.Len(t, samples[0].Result.Trace, 3)
	assert.Equal(t, fuzzy.OpSeed, samples[0].Result.Trace[0].Op)
}

func TestEval_Errors(t *testing.T) {
	dir := rulesDir(t)

	_, err := run(t, "eval", "thermostat", "warm", "--rules-dir", dir)
	assert.ErrorContains(t, err, `invalid value "warm"`)

	_, err = run(t, "eval", "nope", "1", "--rules-dir", dir)
	assert.ErrorIs(t, err, catalog.ErrNotFound)

	_, err = run(t, "eval", "thermostat", "--rules-dir", dir)
	assert.Error(t, err)
}

func TestSweep(t *testing.T) {
	out, err := run(t, "sweep", "thermostat", "--from", "0", "--to", "40", "--step", "1", "-q", "--rules-dir", rulesDir(t))
	require.NoError(t, err)

	assert.Contains(t, out, "samples: 41")
	assert.Contains(t, out, "cold -> warm between 16 and 17")
	assert.Contains(t, out, "warm -> hot between 25 and 26")
	assert.NotContains(t, out, "22: ")
}

func TestSweep_InvalidRange(t *testing.T) {
	_, err := run(t, "sweep", "thermostat", "--step", "0", "--rules-dir", rulesDir(t))
	assert.Error(t, err)
}

func TestList(t *testing.T) {
	out, err := run(t, "list", "--rules-dir", rulesDir(t))
	require.NoError(t, err)
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "thermostat")
	assert.Contains(t, out, "celsius")

	out, err = run(t, "list", "--rules-dir", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "no rule sets")
}

// parsed returns the serve command with args applied, so persistent flags
// from the root are visible.
func parsed(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd, _, err := NewRootCommand().Find([]string{"serve"})
	require.NoError(t, err)
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func TestResolveConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := resolveConfig(parsed(t))
	require.NoError(t, err)
	assert.Equal(t, Config{
		RulesDir:  defaultRulesDir,
		Addr:      defaultAddr,
		LogLevel:  slog.LevelInfo,
		CacheSize: catalog.DefaultCacheSize,
	}, cfg)
}

func TestResolveConfig_Precedence(t *testing.T) {
	clearEnv(t)
	t.Setenv("FUZZY_RULESETS", "/env/rules")
	t.Setenv("FUZZY_LOG_LEVEL", "debug")
	t.Setenv("FUZZY_CACHE_SIZE", "8")
	t.Setenv("PORT", "9000")

	cfg, err := resolveConfig(parsed(t))
	require.NoError(t, err)
	assert.Equal(t, "/env/rules", cfg.RulesDir)
	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, 8, cfg.CacheSize)

	t.Setenv("FUZZY_ADDR", "127.0.0.1:7000")
	cfg, err = resolveConfig(parsed(t))
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:7000", cfg.Addr)

	cfg, err = resolveConfig(parsed(t, "--rules-dir", "/flag/rules", "--log-level", "warn", "--addr", ":1"))
	require.NoError(t, err)
	assert.Equal(t, "/flag/rules", cfg.RulesDir)
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel)
	assert.Equal(t, ":1", cfg.Addr)
}

func TestResolveConfig_Invalid(t *testing.T) {
	clearEnv(t)

	_, err := resolveConfig(parsed(t, "--log-level", "loud"))
	assert.ErrorContains(t, err, "invalid log level")

	t.Setenv("FUZZY_CACHE_SIZE", "zero")
	_, err = resolveConfig(parsed(t))
	assert.ErrorContains(t, err, "FUZZY_CACHE_SIZE")
}
