// Package cmd provides the root command and CLI setup for covrun.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"covrun.dev/pkg/covrun/internal/adapter"
	"covrun.dev/pkg/covrun/internal/controller"
	"covrun.dev/pkg/covrun/internal/domain"
)

var fsAdapter adapter.SourceFSAdapter
var reportStore adapter.ReportStore
var testAdapter adapter.TestRunnerAdapter
var coverAdapter adapter.CoverToolAdapter
var moduleAdapter adapter.ModuleAdapter
var runner domain.Runner
var workflow domain.Workflow
var ui controller.UI

// Root-level flags shared by every command that touches the output directory.
var (
	outputDirFlag string
	langFlag      string
	verboseFlag   bool
	logFileFlag   string
)

func init() {
	configureRootFlags(rootCmd)
	configureRunFlags(rootCmd)

	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	reportStore = adapter.NewReportStore(fsAdapter)
	testAdapter = adapter.NewLocalTestRunnerAdapter()
	coverAdapter = adapter.NewLocalCoverToolAdapter("go")
	moduleAdapter = adapter.NewLocalModuleAdapter()
	runner = domain.NewRunner(testAdapter)
	workflow = domain.NewWorkflow(
		fsAdapter,
		reportStore,
		ui,
		runner,
		moduleAdapter,
		coverAdapter,
	)
}

const packagePatternsHelp = `Packages use go test patterns:
  - ./...          every package of the current module (default)
  - ./pkg/...      every package below pkg
  - ./cmd ./pkg    several packages`

const rootLongDescription = `covrun runs the tests of a Go module with coverage enabled and writes
the results to fixed paths:

  <output>/<lang>/cobertura.xml     Cobertura XML coverage report
  <output>/<lang>/test-report.xml   JUnit XML test report
  <output>/<lang>/html/             HTML coverage report

Coverage data of a previous run is erased first. The exit code is the exit
code of go test.

` + packagePatternsHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "covrun [packages...]",
		Short:         "Run Go tests with coverage and write CI reports",
		Long:          rootLongDescription,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			runArgs, err := newRunArgs(cmd, args)
			if err != nil {
				return err
			}

			return workflow.Run(cmd.Context(), runArgs)
		},
	}
}

// newRootCmd builds a root command with its own flag set, for tests and
// embedding.
func newRootCmd() *cobra.Command {
	cmd := baseRootCmd()
	configureRootFlags(cmd)
	configureRunFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&outputDirFlag, outputFlagName, "o", defaultOutputDir, "root directory for report artifacts")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputConfigKey)

	cmd.PersistentFlags().StringVar(&langFlag, langFlagName, defaultLang, "language subdirectory of the output directory")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(langFlagName), langConfigKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", defaultLogVerbose, "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)

	cmd.PersistentFlags().StringVar(&logFileFlag, logFileFlagName, defaultLogFilename, "log file path")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(logFileFlagName), logFilenameKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
// The process exits with the exit code of go test when tests ran.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		var exitErr *domain.ExitError
		if !errors.As(err, &exitErr) || exitErr.Err != nil {
			rootCmd.PrintErrln("Error:", err)
		}

		os.Exit(domain.ExitCode(err))
	}
}
