package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/alexshd/fuzzy/server"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the rule sets over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, cat, logger, err := setup(cmd)
			if err != nil {
				return err
			}

			gin.SetMode(gin.ReleaseMode)
			srv := server.NewServer(cat, logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return srv.Run(ctx, cfg.Addr)
		},
	}

	cmd.Flags().String("addr", defaultAddr, "Listen address (overrides FUZZY_ADDR and PORT)")
	return cmd
}
