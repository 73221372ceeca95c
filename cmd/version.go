package cmd

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the covrun module version and toolchain",
		Long: `Print the module version covrun was installed at and the Go toolchain
that compiled it. The toolchain used for tests is whichever go binary is
on PATH, which may differ.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()

			info, ok := debug.ReadBuildInfo()
			if !ok {
				fmt.Fprintln(out, "covrun: build info unavailable")
				return
			}

			version := info.Main.Version
			if version == "" || version == "(devel)" {
				version = "devel"
			}

			fmt.Fprintf(out, "covrun %s (%s)\n", version, info.Main.Path)
			fmt.Fprintf(out, "built with %s\n", info.GoVersion)
		},
	}
}

// versionCmd represents the version command.
var versionCmd = newVersionCmd()

func init() {
	rootCmd.AddCommand(versionCmd)
}
