package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/alexshd/fuzzy"
	"github.com/spf13/cobra"
)

func newEvalCommand() *cobra.Command {
	var (
		trace  bool
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "eval <ruleset> <value>...",
		Short: "Classify one or more values",
		Example: "  fuzzy eval thermostat 5 22.5 30\n" +
			"  fuzzy eval thermostat 22.5 --trace",
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			xs, err := parseValues(args[1:])
			if err != nil {
				return err
			}

			_, cat, _, err := setup(cmd)
			if err != nil {
				return err
			}
			entry, err := cat.Get(args[0])
			if err != nil {
				return err
			}

			samples := make([]fuzzy.Sample, len(xs))
			for i, x := range xs {
				res, err := entry.Engine.Evaluate(x)
				if err != nil {
					return err
				}
				if !trace && !asJSON {
					res.Trace = nil
				}
				samples[i] = fuzzy.Sample{X: x, Result: res}
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(samples)
			}
			for _, s := range samples {
				printSample(cmd.OutOrStdout(), s, trace)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&trace, "trace", false, "Show how each rule contributed")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON")
	return cmd
}

func parseValues(args []string) ([]float64, error) {
	xs := make([]float64, len(args))
	for i, a := range args {
		x, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q: %w", a, err)
		}
		xs[i] = x
	}
	return xs, nil
}

func printSample(w io.Writer, s fuzzy.Sample, trace bool) {
	fmt.Fprintf(w, "%g: %s %.2f\n", s.X, s.Result.Label, s.Result.Degree)
	if !trace {
		return
	}
	for _, t := range s.Result.Trace {
		mark := ""
		if t.Won {
			mark = " *"
		}
		fmt.Fprintf(w, "  %2d %-5s %-12s degree=%.4f combined=%.4f%s\n",
			t.Index, t.Op, t.Output, t.Degree, t.Combined, mark)
	}
}
