package errors

// PlatformError extends the standard error interface with structured information.
//
// Implementations outside this package (childprocess.ExecError) satisfy it too,
// so GetCode, IsRetryable and ToJSON work for every error the module returns.
type PlatformError interface {
	error

	// Code returns the error code identifying the type of error.
	Code() ErrorCode

	// Classification returns whether the error is retryable or permanent.
	Classification() ErrorClassification

	// Message returns the human-readable error message.
	Message() string

	// Context returns attached metadata as a read-only map.
	// Returns nil if no context has been attached.
	Context() map[string]interface{}

	// Unwrap returns the wrapped error, or nil.
	Unwrap() error
}
