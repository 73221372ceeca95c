package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"covrun.dev/pkg/covrun/internal/domain"
	m "covrun.dev/pkg/covrun/internal/model"
)

var (
	coverPkgFlag  []string
	coverModeFlag string
	timeoutFlag   time.Duration
	raceFlag      bool
	tagsFlag      []string
)

func configureRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&coverPkgFlag, coverPkgFlagName, nil, "packages to record coverage for (default: every package of the module)")
	bindFlagToConfig(cmd.Flags().Lookup(coverPkgFlagName), runCoverPkgKey)

	cmd.Flags().StringVar(&coverModeFlag, coverModeFlagName, defaultCoverMode, "coverage mode: set, count or atomic")
	bindFlagToConfig(cmd.Flags().Lookup(coverModeFlagName), runCoverModeKey)

	cmd.Flags().DurationVar(&timeoutFlag, timeoutFlagName, defaultTimeout, "go test timeout")
	bindFlagToConfig(cmd.Flags().Lookup(timeoutFlagName), runTimeoutKey)

	cmd.Flags().BoolVar(&raceFlag, raceFlagName, defaultRace, "enable the race detector")
	bindFlagToConfig(cmd.Flags().Lookup(raceFlagName), runRaceKey)

	cmd.Flags().StringSliceVar(&tagsFlag, tagsFlagName, nil, "build tags passed to go test")
	bindFlagToConfig(cmd.Flags().Lookup(tagsFlagName), runTagsKey)
}

// newRunArgs resolves the run configuration. Without package arguments every
// package of the current module is tested.
func newRunArgs(cmd *cobra.Command, args []string) (domain.RunArgs, error) {
	layout, err := configuredLayout()
	if err != nil {
		return domain.RunArgs{}, err
	}

	packages := args
	if len(packages) == 0 {
		packages = []string{defaultPackagePattern}
	}

	return domain.RunArgs{
		Layout:    layout,
		Dir:       configFolderPath,
		Packages:  packages,
		CoverPkg:  viper.GetStringSlice(runCoverPkgKey),
		CoverMode: m.CoverMode(viper.GetString(runCoverModeKey)),
		Timeout:   viper.GetDuration(runTimeoutKey),
		Race:      viper.GetBool(runRaceKey),
		Tags:      viper.GetStringSlice(runTagsKey),
		Stderr:    cmd.ErrOrStderr(),
	}, nil
}

// configuredLayout returns the artifact layout for the configured output
// directory and language.
func configuredLayout() (m.Layout, error) {
	output := viper.GetString(outputConfigKey)
	if strings.TrimSpace(output) == "" {
		return m.Layout{}, fmt.Errorf("output directory must not be empty")
	}

	lang := viper.GetString(langConfigKey)
	if lang == "" || lang == "." || lang == ".." || strings.ContainsAny(lang, `/\`) {
		return m.Layout{}, fmt.Errorf("invalid language directory %q", lang)
	}

	return m.NewLayout(m.Path(output), lang), nil
}
