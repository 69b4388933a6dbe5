package cli

import (
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"
)

// DefaultTools are the executables the template's build and deploy flow relies on.
var DefaultTools = []string{"docker", "gcloud", "go"}

// lookPath is swapped in tests.
var lookPath = exec.LookPath

func newDoctorCommand(tools []string) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check local toolchain",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor(cmd.OutOrStdout(), tools)
		},
	}
}

func runDoctor(out io.Writer, tools []string) error {
	var missing []string
	for _, t := range tools {
		if _, err := lookPath(t); err != nil {
			missing = append(missing, t)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing tools: %s", strings.Join(missing, ", "))
	}

	fmt.Fprintln(out, "All required tools are available.")
	return nil
}
