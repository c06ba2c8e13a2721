package errors

// ErrorClassification indicates whether running an operation again may succeed.
type ErrorClassification string

const (
	// ClassificationRetryable indicates failures caused by circumstances rather
	// than by the command itself, such as a deadline or a canceled context.
	ClassificationRetryable ErrorClassification = "RETRYABLE"

	// ClassificationPermanent indicates failures that will repeat on a retry,
	// such as a missing executable or a command that exits non-zero.
	ClassificationPermanent ErrorClassification = "PERMANENT"
)

// IsRetryable returns true if the classification indicates retry should be attempted.
func (c ErrorClassification) IsRetryable() bool {
	return c == ClassificationRetryable
}

var defaultClassifications = map[ErrorCode]ErrorClassification{
	CodeTimeout:  ClassificationRetryable,
	CodeCanceled: ClassificationRetryable,

	// A signal from outside (OOM killer, operator) says nothing about the command.
	CodeKilledBySignal: ClassificationRetryable,

	CodeSpawnFailed:       ClassificationPermanent,
	CodeNonZeroExit:       ClassificationPermanent,
	CodeMaxBufferExceeded: ClassificationPermanent,
	CodeNotStarted:        ClassificationPermanent,
	CodeAlreadyStarted:    ClassificationPermanent,
	CodeInvalidInput:      ClassificationPermanent,
	CodeInvalidConfig:     ClassificationPermanent,
	CodeNotFound:          ClassificationPermanent,
	CodeInternal:          ClassificationPermanent,
	CodeUnknown:           ClassificationPermanent,
}

// DefaultClassification returns the classification used for code when none is
// given explicitly. Unknown codes are permanent.
func DefaultClassification(code ErrorCode) ErrorClassification {
	if class, ok := defaultClassifications[code]; ok {
		return class
	}
	return ClassificationPermanent
}
