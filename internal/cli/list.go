package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List rule sets in the rules directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, cat, _, err := setup(cmd)
			if err != nil {
				return err
			}

			infos, err := cat.List()
			if err != nil {
				return err
			}
			if len(infos) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "no rule sets in %s\n", cat.Dir())
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tUNIT\tDESCRIPTION")
			for _, info := range infos {
				fmt.Fprintf(w, "%s\t%s\t%s\n", info.Name, info.Unit, info.Description)
			}
			return w.Flush()
		},
	}
}
