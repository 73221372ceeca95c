package adapter

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strings"

	m "covrun.dev/pkg/covrun/internal/model"
)

// Exit codes reported when go test could not produce one itself. They follow
// the POSIX shell conventions for a command that cannot be executed.
const (
	ExitCodeFailure      = 1
	ExitCodeNotRunnable  = 126
	ExitCodeToolNotFound = 127
)

// TestRunnerAdapter abstracts test execution.
type TestRunnerAdapter interface {
	// RunGoTest runs 'go test -json' with coverage for the invocation. The JSON
	// event stream is written to stdout and diagnostics to stderr. A non-zero
	// exit of go test is reported through the code with a nil error; the error
	// is set only when the process could not be run at all.
	RunGoTest(ctx context.Context, inv m.TestInvocation, stdout, stderr io.Writer) (exitCode int, err error)
}

// TestRunnerOption customizes a LocalTestRunnerAdapter.
type TestRunnerOption func(*LocalTestRunnerAdapter)

// WithGoBinary overrides the go executable used to run tests.
func WithGoBinary(path string) TestRunnerOption {
	return func(a *LocalTestRunnerAdapter) {
		a.goBinary = path
	}
}

// LocalTestRunnerAdapter provides a concrete implementation using os/exec.
type LocalTestRunnerAdapter struct {
	goBinary string
}

// NewLocalTestRunnerAdapter constructs a LocalTestRunnerAdapter using the go
// binary found on PATH.
func NewLocalTestRunnerAdapter(opts ...TestRunnerOption) *LocalTestRunnerAdapter {
	a := &LocalTestRunnerAdapter{goBinary: "go"}
	for _, opt := range opts {
		opt(a)
	}

	return a
}

// RunGoTest runs 'go test' in inv.Dir and streams its output.
func (a *LocalTestRunnerAdapter) RunGoTest(ctx context.Context, inv m.TestInvocation, stdout, stderr io.Writer) (int, error) {
	args, err := BuildTestArgs(inv)
	if err != nil {
		return ExitCodeFailure, err
	}

	// #nosec G204 - the binary and arguments come from covrun configuration
	cmd := exec.CommandContext(ctx, a.goBinary, args...)
	cmd.Dir = string(inv.Dir)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	slog.Debug("running go test", "dir", inv.Dir, "args", args)

	return exitCodeOf(cmd.Run())
}

// BuildTestArgs returns the go test argument list for inv. The coverage
// profile path is made absolute so it does not depend on inv.Dir.
func BuildTestArgs(inv m.TestInvocation) ([]string, error) {
	args := []string{"test", "-json", "-cover"}

	if inv.CoverMode != "" {
		args = append(args, "-covermode="+string(inv.CoverMode))
	}

	if len(inv.CoverPkg) > 0 {
		args = append(args, "-coverpkg="+strings.Join(inv.CoverPkg, ","))
	}

	if inv.Profile != "" {
		profile, err := filepath.Abs(string(inv.Profile))
		if err != nil {
			return nil, err
		}

		args = append(args, "-coverprofile="+profile)
	}

	if inv.Timeout > 0 {
		args = append(args, "-timeout="+inv.Timeout.String())
	}

	if inv.Race {
		args = append(args, "-race")
	}

	if len(inv.Tags) > 0 {
		args = append(args, "-tags="+strings.Join(inv.Tags, ","))
	}

	packages := inv.Packages
	if len(packages) == 0 {
		packages = []string{"./..."}
	}

	return append(args, packages...), nil
}

func exitCodeOf(err error) (int, error) {
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		if code < 0 {
			// Killed by a signal, usually a cancelled context.
			return ExitCodeFailure, nil
		}

		return code, nil
	}

	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
		return ExitCodeToolNotFound, err
	}

	if errors.Is(err, fs.ErrPermission) {
		return ExitCodeNotRunnable, err
	}

	return ExitCodeFailure, err
}
