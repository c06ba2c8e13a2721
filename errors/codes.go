package errors

// ErrorCode represents a specific error condition.
// Error codes are string-based for debuggability and natural JSON serialization.
type ErrorCode string

const (
	// Process outcome errors.

	// CodeSpawnFailed indicates the operating system could not start the process.
	CodeSpawnFailed ErrorCode = "SPAWN_FAILED"

	// CodeNonZeroExit indicates the process ran and exited with a non-zero code.
	CodeNonZeroExit ErrorCode = "NON_ZERO_EXIT"

	// CodeKilledBySignal indicates the process was terminated by a signal.
	CodeKilledBySignal ErrorCode = "KILLED_BY_SIGNAL"

	// CodeTimeout indicates the process was killed after exceeding its time limit.
	CodeTimeout ErrorCode = "TIMEOUT"

	// CodeMaxBufferExceeded indicates the process was killed because buffered
	// stdout or stderr grew past the configured limit.
	CodeMaxBufferExceeded ErrorCode = "MAX_BUFFER_EXCEEDED"

	// CodeCanceled indicates the caller's context was canceled while the process ran.
	CodeCanceled ErrorCode = "CANCELED"

	// Lifecycle errors.

	// CodeNotStarted indicates an operation needs a running process.
	CodeNotStarted ErrorCode = "NOT_STARTED"

	// CodeAlreadyStarted indicates a process was started more than once.
	CodeAlreadyStarted ErrorCode = "ALREADY_STARTED"

	// Validation errors.

	// CodeInvalidInput indicates the provided input is invalid or malformed.
	CodeInvalidInput ErrorCode = "INVALID_INPUT"

	// CodeInvalidConfig indicates a configuration error prevents the operation.
	CodeInvalidConfig ErrorCode = "INVALID_CONFIGURATION"

	// CodeNotFound indicates a requested file or resource does not exist.
	CodeNotFound ErrorCode = "NOT_FOUND"

	// System errors.

	// CodeInternal indicates an internal error occurred.
	CodeInternal ErrorCode = "INTERNAL_ERROR"

	// CodeUnknown indicates an unknown or unclassified error occurred.
	CodeUnknown ErrorCode = "UNKNOWN"
)
