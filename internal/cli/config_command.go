package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCommand(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print effective settings as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(*envFile)
			if err != nil {
				return err
			}

			settings.DatabaseURL = redactURL(settings.DatabaseURL)

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(settings); err != nil {
				return fmt.Errorf("encode settings: %w", err)
			}
			return enc.Close()
		},
	}
}

// redactURL masks the password of a URL-style DSN.
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	return u.Redacted()
}
