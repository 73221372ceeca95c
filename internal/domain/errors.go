package domain

import (
	"errors"
	"fmt"
)

// ExitError carries the exit code of the test process. It is returned after
// every artifact has been written so callers can mirror the code.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("go test exited with code %d: %v", e.Code, e.Err)
	}

	return fmt.Sprintf("go test exited with code %d", e.Code)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode returns the process exit code matching err: 0 for nil, the carried
// code for an ExitError and 1 for anything else.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	return 1
}
