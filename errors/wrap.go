package errors

import (
	"errors"
	"fmt"
)

// Wrap wraps err with a code and message while keeping it reachable through
// errors.Is and errors.As. A wrapped PlatformError keeps its classification.
//
// Returns nil if err is nil.
//
// Example:
//
//	if err := yaml.Unmarshal(data, &cfg); err != nil {
//	    return errors.Wrap(err, errors.CodeInvalidConfig, "parse config")
//	}
func Wrap(err error, code ErrorCode, message string) PlatformError {
	if err == nil {
		return nil
	}

	classification := DefaultClassification(code)
	var platformErr PlatformError
	if errors.As(err, &platformErr) {
		classification = platformErr.Classification()
	}

	return &platformError{
		code:           code,
		classification: classification,
		message:        message,
		cause:          err,
	}
}

// Wrapf wraps an error with a formatted message.
//
// Returns nil if err is nil.
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) PlatformError {
	if err == nil {
		return nil
	}
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// WithContext returns a copy of err with key set in its context. Errors that
// are not PlatformErrors are converted with CodeUnknown first.
//
// Returns nil if err is nil.
//
// Example:
//
//	err := errors.New(errors.CodeInvalidConfig, "maxBuffer must not be negative")
//	err = errors.WithContext(err, "field", "maxBuffer")
func WithContext(err error, key string, value interface{}) PlatformError {
	if err == nil {
		return nil
	}

	var platformErr PlatformError
	if !errors.As(err, &platformErr) {
		platformErr = &platformError{
			code:           CodeUnknown,
			classification: ClassificationPermanent,
			message:        err.Error(),
			cause:          err,
		}
	}

	ctx := platformErr.Context()
	if ctx == nil {
		ctx = make(map[string]interface{}, 1)
	}
	ctx[key] = value

	return &platformError{
		code:           platformErr.Code(),
		classification: platformErr.Classification(),
		message:        platformErr.Message(),
		context:        ctx,
		cause:          platformErr.Unwrap(),
	}
}
