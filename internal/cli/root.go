// Package cli implements the fuzzy command line.
package cli

import (
	"log/slog"

	"github.com/alexshd/fuzzy/internal/catalog"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
)

// version is set via -ldflags at build time.
var version = "(devel)"

// NewRootCommand builds the fuzzy command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "fuzzy",
		Short:         "Evaluate fuzzy rule sets",
		Long:          "fuzzy classifies crisp values with YAML rule sets of membership curves.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("rules-dir", defaultRulesDir, "Rule-set directory (overrides FUZZY_RULESETS)")
	root.PersistentFlags().String("log-level", defaultLogLevel, "Log level: debug, info, warn, error (overrides FUZZY_LOG_LEVEL)")

	root.AddCommand(
		newEvalCommand(),
		newSweepCommand(),
		newListCommand(),
		newServeCommand(),
		newVersionCommand(),
	)
	return root
}

// Execute runs the CLI with os.Args.
func Execute() error {
	_ = godotenv.Load()
	return NewRootCommand().Execute()
}

// setup resolves the configuration and opens the rule-set catalog.
func setup(cmd *cobra.Command) (Config, *catalog.Catalog, *slog.Logger, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return Config{}, nil, nil, err
	}

	logger := slog.New(tint.NewHandler(cmd.ErrOrStderr(), &tint.Options{
		Level:      cfg.LogLevel,
		TimeFormat: "15:04:05",
	}))

	cat, err := catalog.New(cfg.RulesDir, cfg.CacheSize, catalog.WithLogger(logger))
	if err != nil {
		return Config{}, nil, nil, err
	}
	return cfg, cat, logger, nil
}
