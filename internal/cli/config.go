package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/alexshd/fuzzy/internal/catalog"
	"github.com/spf13/cobra"
)

const (
	defaultRulesDir = "./rulesets"
	defaultAddr     = ":8080"
	defaultLogLevel = "info"
)

// Config is the resolved CLI configuration.
type Config struct {
	RulesDir  string
	Addr      string
	LogLevel  slog.Level
	CacheSize int
}

// resolveConfig applies flag > environment > default for every setting.
func resolveConfig(cmd *cobra.Command) (Config, error) {
	cfg := Config{
		RulesDir:  stringSetting(cmd, "rules-dir", "FUZZY_RULESETS", defaultRulesDir),
		Addr:      envOr("FUZZY_ADDR", defaultAddr),
		CacheSize: catalog.DefaultCacheSize,
	}

	if port := os.Getenv("PORT"); port != "" && os.Getenv("FUZZY_ADDR") == "" {
		cfg.Addr = ":" + port
	}
	if f := cmd.Flags().Lookup("addr"); f != nil && f.Changed {
		cfg.Addr = f.Value.String()
	}

	level, err := parseLevel(stringSetting(cmd, "log-level", "FUZZY_LOG_LEVEL", defaultLogLevel))
	if err != nil {
		return Config{}, err
	}
	cfg.LogLevel = level

	if v := os.Getenv("FUZZY_CACHE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("FUZZY_CACHE_SIZE must be a positive integer, got %q", v)
		}
		cfg.CacheSize = n
	}

	return cfg, nil
}

func stringSetting(cmd *cobra.Command, flag, env, def string) string {
	if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
		return f.Value.String()
	}
	return envOr(env, def)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}
