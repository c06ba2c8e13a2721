package childprocess

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jmgilman/go/errors"
	"github.com/jmgilman/go/stream"
)

// Callback receives the outcome of ExecFile or Exec. Err is nil or an
// *ExecError; stdout and stderr hold whatever the process wrote, even on
// failure.
type Callback func(err error, stdout, stderr string)

// Result is the outcome of ExecFileContext and ExecContext.
type Result struct {
	Stdout string
	Stderr string
	Status ExitStatus
}

// ExecFile starts file with args, buffers its output and calls cb exactly
// once when it terminates. The returned Child is already started.
func ExecFile(file string, args []string, opts Options, cb Callback) *Child {
	child := PrepareExecFile(file, args, opts, cb)
	_ = child.Start()
	return child
}

// PrepareExecFile is ExecFile without the call to Start, so callers can
// subscribe to the Child first.
func PrepareExecFile(file string, args []string, opts Options, cb Callback) *Child {
	child, _ := prepareExecution(file, args, opts, cb)
	return child
}

// ExecFileContext runs file with args and waits for it. Canceling ctx kills
// the process with opts.KillSignal. The Result is returned with partial
// output on failure.
func ExecFileContext(ctx context.Context, file string, args []string, opts Options) (*Result, error) {
	type outcome struct {
		err            error
		stdout, stderr string
	}
	results := make(chan outcome, 1)

	child, e := prepareExecution(file, args, opts, func(err error, stdout, stderr string) {
		results <- outcome{err: err, stdout: stdout, stderr: stderr}
	})

	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, errors.CodeCanceled, "command canceled before start")
	}
	_ = child.Start()

	var o outcome
	select {
	case o = <-results:
	case <-ctx.Done():
		e.cancel(ctx.Err())
		o = <-results
	}

	return &Result{Stdout: o.stdout, Stderr: o.stderr, Status: e.finalStatus()}, o.err
}

// execution buffers one ExecFile invocation and applies its policies.
type execution struct {
	child   *Child
	command []string
	opts    Options
	log     *slog.Logger
	cb      Callback

	mu      sync.Mutex
	stdout  strings.Builder
	stderr  strings.Builder
	pending *ExecError
	status  ExitStatus
	timer   *time.Timer
	subs    []*stream.Subscription

	finished atomic.Bool
}

func prepareExecution(file string, args []string, opts Options, cb Callback) (*Child, *execution) {
	child := newChild(file, args, opts)
	if cb == nil {
		cb = func(error, string, string) {}
	}

	e := &execution{
		child:   child,
		command: commandLine(file, args),
		opts:    child.opts,
		log:     child.log,
		cb:      cb,
		status:  ExitStatus{Code: NoExitCode},
	}
	e.subs = []*stream.Subscription{
		child.Stdout().OnData(func(chunk string) { e.append(child.Stdout().Name(), chunk) }),
		child.Stderr().OnData(func(chunk string) { e.append(child.Stderr().Name(), chunk) }),
		child.OnError(e.fail),
		child.OnClose(func(status ExitStatus) { e.complete(status, nil) }),
	}
	if e.opts.Timeout > 0 {
		child.onStarted(e.startTimer)
	}

	return child, e
}

func (e *execution) append(name, chunk string) {
	e.mu.Lock()
	buf, tee := &e.stdout, e.opts.TeeStdout
	if name == "stderr" {
		buf, tee = &e.stderr, e.opts.TeeStderr
	}
	buf.WriteString(chunk)

	exceeded := e.opts.MaxBuffer > 0 && buf.Len() > e.opts.MaxBuffer && e.pending == nil
	if exceeded {
		e.pending = e.policyError(errors.CodeMaxBufferExceeded, name+" maxBuffer exceeded", nil)
	}
	e.mu.Unlock()

	if tee != nil {
		_, _ = io.WriteString(tee, chunk)
	}
	if exceeded {
		e.log.Info("killing child process", "reason", "maxBuffer", "stream", name, "max_buffer", e.opts.MaxBuffer)
		e.kill()
	}
}

func (e *execution) startTimer() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.finished.Load() {
		return
	}
	e.timer = time.AfterFunc(e.opts.Timeout, e.timeout)
}

func (e *execution) timeout() {
	message := fmt.Sprintf("command timed out after %s", e.opts.Timeout)
	if e.trigger(errors.CodeTimeout, message, nil) {
		e.log.Info("killing child process", "reason", "timeout", "timeout", e.opts.Timeout)
		e.kill()
	}
}

func (e *execution) cancel(cause error) {
	if e.trigger(errors.CodeCanceled, "command canceled", cause) {
		e.log.Info("killing child process", "reason", "canceled", "error", cause)
		e.kill()
	}
}

// trigger sets the pending policy error unless one is already set.
func (e *execution) trigger(code errors.ErrorCode, message string, cause error) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.finished.Load() || e.pending != nil {
		return false
	}
	e.pending = e.policyError(code, message, cause)
	return true
}

func (e *execution) policyError(code errors.ErrorCode, message string, cause error) *ExecError {
	err := newExecError(code, message, e.command)
	err.Killed = true
	err.Signal = e.opts.KillSignal
	err.Err = cause
	return err
}

func (e *execution) kill() {
	if err := e.child.Kill(e.opts.KillSignal); err != nil {
		e.log.Warn("killing child process failed", "error", err)
	}
}

func (e *execution) fail(err error) {
	e.complete(ExitStatus{Code: NoExitCode}, err)
}

func (e *execution) complete(status ExitStatus, spawnErr error) {
	if !e.finished.CompareAndSwap(false, true) {
		return
	}

	e.mu.Lock()
	if e.timer != nil {
		e.timer.Stop()
	}
	e.status = status
	stdout, stderr := e.stdout.String(), e.stderr.String()

	var result *ExecError
	switch {
	case spawnErr != nil:
		result = asExecError(spawnErr, e.command)
	case e.pending != nil:
		result = e.pending
		result.ExitCode = status.Code
		result.Signal = status.Signal
	case status.Code != 0 || status.Signal != "":
		code := errors.CodeNonZeroExit
		if status.Signal != "" {
			code = errors.CodeKilledBySignal
		}
		result = newExecError(code, "Command failed: "+stderr, e.command)
		result.ExitCode = status.Code
		result.Signal = status.Signal
		result.Killed = e.child.Killed()
	}
	e.mu.Unlock()

	for _, sub := range e.subs {
		sub.Off()
	}

	if result == nil {
		e.cb(nil, stdout, stderr)
		return
	}
	e.cb(result, stdout, stderr)
}

func (e *execution) finalStatus() ExitStatus {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

func asExecError(err error, command []string) *ExecError {
	var execErr *ExecError
	if errors.As(err, &execErr) {
		return execErr
	}
	return newSpawnError(command, err)
}
