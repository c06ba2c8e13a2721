// Package errors provides the structured error model shared by the process
// execution packages.
//
// Every failure surfaced by childprocess, exec and the childexec CLI carries an
// ErrorCode naming what went wrong (a spawn failure, a non-zero exit, a policy
// kill) and an ErrorClassification telling callers whether running the command
// again could succeed. Errors stay compatible with the standard library
// (errors.Is, errors.As, errors.Unwrap).
//
// # Creating errors
//
//	err := errors.New(errors.CodeNotStarted, "child process has not been started")
//	err := errors.Newf(errors.CodeInvalidInput, "unknown charset %q", name)
//
// # Wrapping errors
//
//	data, err := os.ReadFile(path)
//	if err != nil {
//	    return errors.Wrap(err, errors.CodeNotFound, "read config")
//	}
//
// # Inspecting errors
//
//	switch errors.GetCode(err) {
//	case errors.CodeTimeout:
//	    // the command was killed by its timeout
//	case errors.CodeNonZeroExit:
//	    // the command ran and failed
//	}
//
//	if errors.IsRetryable(err) {
//	    // a timeout or cancellation; running again may succeed
//	}
//
// # Serialization
//
// ToJSON flattens any error into an ErrorResponse. Wrapped causes are left out
// so that file paths or raw stderr from nested errors do not leak into output
// meant for machines:
//
//	json.NewEncoder(os.Stdout).Encode(errors.ToJSON(err))
package errors
