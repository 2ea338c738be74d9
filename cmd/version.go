package cmd

import (
	"fmt"

	"github.com/phanxgames/xrinput/internal/version"
	"github.com/phanxgames/xrinput/tracker"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s (sdk %d.%d)\n", version.Version, tracker.SDKMajor, tracker.SDKMinor)
			return err
		},
	}
}
