package cmd

import (
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigConstants(t *testing.T) {
	assert.Equal(t, "covrun", configBaseName)
	assert.Equal(t, "covrun.yaml", configFileName)
	assert.Equal(t, ".", configFolderPath)
	assert.Equal(t, "output", outputFlagName)
	assert.Equal(t, "lang", langFlagName)
	assert.Equal(t, "run.coverpkg", runCoverPkgKey)
	assert.Equal(t, "run.covermode", runCoverModeKey)
	assert.Equal(t, "run.timeout", runTimeoutKey)
	assert.Equal(t, "output", defaultOutputDir)
	assert.Equal(t, "go", defaultLang)
	assert.Equal(t, "./...", defaultPackagePattern)
	assert.Equal(t, "atomic", defaultCoverMode)
	assert.Equal(t, 10*time.Minute, defaultTimeout)
	assert.Equal(t, "COVRUN", envPrefix)
	assert.Equal(t, ".covrun.log", defaultLogFilename)
}

func TestConfigVersionConstants(t *testing.T) {
	assert.Equal(t, "version", configVersionKey)
	assert.Equal(t, 1, currentConfigVersion)
}

func TestParseSlogLevel(t *testing.T) {
	tests := []struct {
		value string
		want  slog.Level
	}{
		{"", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{" WARN ", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"-4", slog.LevelDebug},
		{"loud", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, parseSlogLevel(tt.value, slog.LevelInfo))
		})
	}
}

func TestConfigureLogger_Verbose(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	configureLogger(filepath.Join(t.TempDir(), "covrun.log"), true)

	require.NotNil(t, globalLogger)
	assert.True(t, globalLogger.Enabled(t.Context(), slog.LevelDebug))
}

func TestNewLogRotator_FallsBackToConfiguredFile(t *testing.T) {
	newRootCmd()

	assert.Equal(t, "custom.log", newLogRotator("custom.log").Filename)
	assert.Equal(t, defaultLogFilename, newLogRotator("  ").Filename)
	assert.Equal(t, defaultLogMaxSize, newLogRotator("").MaxSize)
}
