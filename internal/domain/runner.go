package domain

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"covrun.dev/pkg/covrun/internal/adapter"
	m "covrun.dev/pkg/covrun/internal/model"
)

// RunnerArgs describes one go test process.
type RunnerArgs struct {
	Invocation m.TestInvocation
	Stderr     io.Writer
}

// Runner runs go test and hands every decoded event to a callback while the
// process is still running.
type Runner interface {
	Run(ctx context.Context, args RunnerArgs, onEvent func(m.TestEvent) error) (exitCode int, err error)
}

type runner struct {
	testAdapter adapter.TestRunnerAdapter
}

// NewRunner constructs a Runner backed by the provided test runner adapter.
func NewRunner(testAdapter adapter.TestRunnerAdapter) Runner {
	return &runner{testAdapter: testAdapter}
}

// Run streams go test stdout through a pipe into DecodeEvents. A failing
// callback stops decoding and kills the test process.
func (r *runner) Run(ctx context.Context, args RunnerArgs, onEvent func(m.TestEvent) error) (int, error) {
	reader, writer := io.Pipe()
	group, groupCtx := errgroup.WithContext(ctx)

	var (
		exitCode int
		runErr   error
	)

	group.Go(func() error {
		exitCode, runErr = r.testAdapter.RunGoTest(groupCtx, args.Invocation, writer, args.Stderr)
		_ = writer.Close()

		return nil
	})

	group.Go(func() error {
		err := DecodeEvents(groupCtx, reader, onEvent)
		if err != nil {
			_ = reader.CloseWithError(err)
			slog.Error("Failed to decode test events", "error", err)

			return err
		}

		return nil
	})

	decodeErr := group.Wait()

	return exitCode, errors.Join(runErr, decodeErr)
}
