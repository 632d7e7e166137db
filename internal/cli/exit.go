package cli

import (
	"errors"
	"fmt"
)

// Process exit codes.
const (
	ExitSuccess      = 0 // command did what was asked
	ExitFailure      = 1 // input rejected, record missing, or scenarios failed
	ExitCommandError = 2 // bad arguments or config, storage failure
)

// ExitError carries the process exit code for a failed command.
// main passes it to os.Exit via GetExitCode.
type ExitError struct {
	Code    int
	Message string
	Err     error // cause, may be nil
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *ExitError) Unwrap() error { return e.Err }

// NewExitError returns an ExitError without a cause.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError returns an ExitError wrapping err.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode maps err to a process exit code. Errors that are not an
// ExitError anywhere in their chain map to ExitFailure.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}
