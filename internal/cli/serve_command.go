package cli

import (
	"os/signal"
	"syscall"

	"frvn-service/internal/app"
	"frvn-service/internal/platform/obs"

	"github.com/spf13/cobra"
)

func newServeCommand(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(*envFile)
			if err != nil {
				return err
			}

			logger, err := obs.NewLogger(settings.LogLevel)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv, err := app.BuildServer(ctx, settings, logger)
			if err != nil {
				return err
			}
			defer srv.Close()

			return srv.Run(ctx)
		},
	}
}
