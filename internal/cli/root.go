package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd wires the cobra root command.
func NewRootCmd() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:           "frvn",
		Short:         "FRVN service toolkit",
		Long:          "frvn runs the template service and checks its health and local toolchain.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "env file loaded before reading settings")

	root.AddCommand(newServeCommand(&envFile))
	root.AddCommand(newHealthCommand(&envFile))
	root.AddCommand(newDoctorCommand(DefaultTools))
	root.AddCommand(newConfigCommand(&envFile))
	return root
}
