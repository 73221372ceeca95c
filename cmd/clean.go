package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"covrun.dev/pkg/covrun/internal/domain"
)

// cleanCmd represents the clean command.
var cleanCmd = newCleanCmd()

func newCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Erase coverage data and reports of previous runs",
		Long: `Delete the coverage profile and every report artifact in <output>/<lang>
without running tests. Missing files and directories are not an error.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			layout, err := configuredLayout()
			if err != nil {
				return err
			}

			if err := workflow.Clean(cmd.Context(), domain.CleanArgs{Layout: layout}); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Erased coverage data in %s\n", layout.Dir())

			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}
