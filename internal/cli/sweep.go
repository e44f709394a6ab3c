package cli

import (
	"fmt"

	"github.com/alexshd/fuzzy"
	"github.com/spf13/cobra"
)

func newSweepCommand() *cobra.Command {
	var (
		from, to, step float64
		workers        int
		quiet          bool
	)

	cmd := &cobra.Command{
		Use:     "sweep <ruleset>",
		Short:   "Evaluate a range of values and report label boundaries",
		Example: "  fuzzy sweep thermostat --from 0 --to 40 --step 0.5",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			xs, err := fuzzy.Range(from, to, step)
			if err != nil {
				return err
			}

			_, cat, logger, err := setup(cmd)
			if err != nil {
				return err
			}
			entry, err := cat.Get(args[0])
			if err != nil {
				return err
			}

			cfg := fuzzy.DefaultSweepConfig()
			if workers > 0 {
				cfg.Workers = workers
			}
			logger.Debug("sweep", "ruleset", args[0], "samples", len(xs), "workers", cfg.Workers)

			samples, err := fuzzy.Sweep(cmd.Context(), entry.Engine, xs, cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !quiet {
				for _, s := range samples {
					printSample(out, s, false)
				}
				fmt.Fprintln(out)
			}

			sum := fuzzy.Summarize(samples)
			fmt.Fprintf(out, "samples: %d  degree: [%.2f, %.2f]\n", sum.Samples, sum.MinDegree, sum.MaxDegree)
			for _, b := range sum.Boundaries {
				fmt.Fprintf(out, "%s -> %s between %g and %g\n", b.FromLabel, b.ToLabel, b.From, b.To)
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&from, "from", 0, "First value")
	cmd.Flags().Float64Var(&to, "to", 100, "Last value (inclusive)")
	cmd.Flags().Float64Var(&step, "step", 1, "Distance between values")
	cmd.Flags().IntVar(&workers, "workers", 0, "Concurrent evaluators (0 = GOMAXPROCS)")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Only print the summary")
	return cmd
}
