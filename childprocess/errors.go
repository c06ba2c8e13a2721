package childprocess

import (
	stderrors "errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jmgilman/go/errors"
	"github.com/jmgilman/go/native"
)

var (
	// ErrNotStarted is returned by Kill before the process exists.
	ErrNotStarted = errors.New(errors.CodeNotStarted, "child process has not been started")

	// ErrAlreadyStarted is returned by a second call to Start.
	ErrAlreadyStarted = errors.New(errors.CodeAlreadyStarted, "child process already started")
)

var errnoPattern = regexp.MustCompile(`\bE[A-Z0-9]{2,}\b`)

// ExecError describes a process that failed to start, exited unsuccessfully
// or was killed. It implements errors.PlatformError.
//
// Every field is populated: ExitCode is NoExitCode, Signal is empty and Killed
// is false when they do not apply.
type ExecError struct {
	code    errors.ErrorCode
	message string

	// Command is the executable followed by its arguments.
	Command []string

	// ExitCode is the exit code of the process, or NoExitCode.
	ExitCode int

	// Signal is the signal that terminated the process, or empty.
	Signal string

	// Killed reports whether the process was killed by this package or by a
	// caller of Kill.
	Killed bool

	// Errno is the native error token of a spawn failure, such as "ENOENT".
	Errno string

	// Err is the underlying error, if any.
	Err error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("[%s] %s", e.code, e.message)
}

func (e *ExecError) Code() errors.ErrorCode {
	return e.code
}

func (e *ExecError) Classification() errors.ErrorClassification {
	return errors.DefaultClassification(e.code)
}

func (e *ExecError) Message() string {
	return e.message
}

// Context exposes the process fields for errors.ToJSON.
func (e *ExecError) Context() map[string]interface{} {
	return map[string]interface{}{
		"command":   strings.Join(e.Command, " "),
		"exit_code": e.ExitCode,
		"signal":    e.Signal,
		"killed":    e.Killed,
		"errno":     e.Errno,
	}
}

func (e *ExecError) Unwrap() error {
	return e.Err
}

func newExecError(code errors.ErrorCode, message string, command []string) *ExecError {
	return &ExecError{
		code:     code,
		message:  message,
		Command:  command,
		ExitCode: NoExitCode,
	}
}

// newSpawnError normalises a native start failure. Only the message and the
// errno token derived from it are kept; Err is the original for errors.Is.
func newSpawnError(command []string, err error) *ExecError {
	e := newExecError(errors.CodeSpawnFailed, err.Error(), command)
	e.Errno = errnoToken(err)
	e.Err = err
	return e
}

// errnoToken extracts a native error token such as "ENOENT" from err.
func errnoToken(err error) string {
	var startErr *native.StartError
	if stderrors.As(err, &startErr) && startErr.Errno != "" {
		return startErr.Errno
	}
	return errnoPattern.FindString(err.Error())
}

func commandLine(file string, args []string) []string {
	command := make([]string, 0, len(args)+1)
	command = append(command, file)
	return append(command, args...)
}
