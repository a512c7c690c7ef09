package main

import "errors"

// Exit codes
const (
	exitFailure = 1 // discovery, read, write or verification failure
	exitUsage   = 2 // invalid configuration or flags
)

// usageError marks errors caused by invalid configuration.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }

func (e *usageError) Unwrap() error { return e.err }

func usageErr(err error) error {
	return &usageError{err: err}
}

// exitCode returns the process exit code for an error returned by a command.
func exitCode(err error) int {
	var usage *usageError
	if errors.As(err, &usage) {
		return exitUsage
	}
	return exitFailure
}
