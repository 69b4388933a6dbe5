package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"frvn-service/internal/adapters/backend"
	"frvn-service/internal/domain"
	"frvn-service/internal/ports"
	"frvn-service/internal/view"

	"github.com/spf13/cobra"
)

var errUnavailable = errors.New("backend health unavailable")

func newHealthCommand(envFile *string) *cobra.Command {
	var (
		url     string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check backend health once and print it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if url == "" {
				settings, err := loadSettings(*envFile)
				if err != nil {
					return err
				}
				url = settings.BackendURL
				if url == "" {
					url = fmt.Sprintf("http://localhost:%d", settings.BackendPort)
				}
			}

			source, err := backend.NewHTTPHealthSource(backend.NewHTTPClient(timeout), url, nil)
			if err != nil {
				return err
			}
			return runHealthCheck(cmd.Context(), cmd.OutOrStdout(), source)
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "backend origin (default BACKEND_URL or localhost:BACKEND_PORT)")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "request timeout")
	return cmd
}

// runHealthCheck mounts one view, waits for it to settle and prints its line.
func runHealthCheck(ctx context.Context, out io.Writer, source ports.HealthSource) error {
	v := view.NewHealthView(source, nil, nil)
	v.Mount(ctx)
	defer v.Unmount()

	select {
	case <-v.Done():
	case <-ctx.Done():
		return ctx.Err()
	}

	fmt.Fprintln(out, v.Text())
	if v.Status() == domain.StatusUnavailable {
		return errUnavailable
	}
	return nil
}
