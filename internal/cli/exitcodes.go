package cli

import "errors"

// Exit codes for CLI commands.
// These codes follow Unix conventions and provide consistent error reporting
// across all CLI commands.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitError indicates a general error occurred.
	// Use for: Database errors, network errors, failed persistence,
	// or any error that doesn't fit the specific categories below.
	ExitError = 1

	// ExitUsage indicates incorrect command usage.
	// Use for: Missing required flags or invalid flag combinations.
	ExitUsage = 2

	// ExitNotFound indicates a requested item was not found.
	ExitNotFound = 3

	// ExitDataErr indicates invalid or malformed data.
	// Use for: A store holding rows that cannot form a board.
	ExitDataErr = 4

	// ExitValidation indicates a validation error.
	// Use for: Unknown buckets, unknown boards, empty titles.
	ExitValidation = 5
)

// CodedError carries the process exit code for an error that has already been
// reported to the user.
type CodedError struct {
	Code int
	Err  error
}

func (e *CodedError) Error() string {
	if e.Err == nil {
		return "exit status"
	}
	return e.Err.Error()
}

func (e *CodedError) Unwrap() error {
	return e.Err
}

// ExitCode maps a command error to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *CodedError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return classify(err).exit
}
