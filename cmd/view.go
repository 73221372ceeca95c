package cmd

import (
	"github.com/spf13/cobra"

	"covrun.dev/pkg/covrun/internal/domain"
)

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Show the summary of the last run",
		Long:  "Print the test and coverage summary stored in <output>/<lang>/summary.yaml by the last run.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			layout, err := configuredLayout()
			if err != nil {
				return err
			}

			return workflow.View(cmd.Context(), domain.ViewArgs{Layout: layout})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
