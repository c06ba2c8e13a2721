package errors

import "fmt"

// New creates a PlatformError with the default classification for code.
//
// Example:
//
//	var ErrNotStarted = errors.New(errors.CodeNotStarted, "child process has not been started")
func New(code ErrorCode, message string) PlatformError {
	return &platformError{
		code:           code,
		classification: DefaultClassification(code),
		message:        message,
	}
}

// Newf creates a PlatformError with a formatted message.
func Newf(code ErrorCode, format string, args ...interface{}) PlatformError {
	return New(code, fmt.Sprintf(format, args...))
}
