package native

import (
	"errors"
	"fmt"
	"os/exec"
)

// StartError reports a process that could not be started.
type StartError struct {
	// Command is the executable that failed to start.
	Command string

	// Errno is the symbolic errno of the failure, or empty.
	Errno string

	// Err is the underlying error.
	Err error
}

// Error renders "spawn <command> <ERRNO>: <cause>".
func (e *StartError) Error() string {
	if e.Errno != "" {
		return fmt.Sprintf("spawn %s %s: %v", e.Command, e.Errno, e.Err)
	}
	return fmt.Sprintf("spawn %s: %v", e.Command, e.Err)
}

func (e *StartError) Unwrap() error {
	return e.Err
}

func newStartError(command string, err error) *StartError {
	token := errnoName(err)
	if token == "" && errors.Is(err, exec.ErrNotFound) {
		token = "ENOENT"
	}
	return &StartError{Command: command, Errno: token, Err: err}
}
