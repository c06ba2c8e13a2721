package childprocess

import (
	"context"
	stderrors "errors"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/jmgilman/go/errors"
	"github.com/jmgilman/go/native"
	"github.com/jmgilman/go/stream"
)

// ExitStatus is the outcome reported by close and exit events.
type ExitStatus struct {
	// Code is the exit code, or NoExitCode when the process was killed by a
	// signal or never ran.
	Code int

	// Signal names the signal that terminated the process. It is empty for
	// natural exits.
	Signal string
}

// Child is one spawned operating system process.
type Child struct {
	id   uuid.UUID
	file string
	args []string
	opts Options
	log  *slog.Logger

	stdin  *stream.Stream
	stdout *stream.Stream
	stderr *stream.Stream

	errorListeners stream.Listeners[error]
	exitListeners  stream.Listeners[ExitStatus]
	closeListeners stream.Listeners[ExitStatus]

	events dispatcher
	input  *stdinPump

	mu         sync.Mutex
	state      State
	handle     Handle
	pid        int
	killSignal string
	status     ExitStatus
	afterStart []func()

	started atomic.Bool
	closed  atomic.Bool
	killed  atomic.Bool
	done    chan struct{}
}

func newChild(file string, args []string, opts Options) *Child {
	opts = opts.normalized()
	id := uuid.New()

	c := &Child{
		id:     id,
		file:   file,
		args:   append([]string(nil), args...),
		opts:   opts,
		log:    opts.Logger.With("child", id.String(), "file", file),
		stdin:  stream.New("stdin"),
		stdout: stream.New("stdout"),
		stderr: stream.New("stderr"),
		status: ExitStatus{Code: NoExitCode},
		done:   make(chan struct{}),
	}
	c.input = newStdinPump(c.log)
	c.stdin.OnData(c.input.push)
	c.stdin.OnEnd(c.input.end)

	return c
}

// ID uniquely identifies the Child in logs.
func (c *Child) ID() uuid.UUID {
	return c.id
}

// File returns the executable.
func (c *Child) File() string {
	return c.file
}

// Args returns a copy of the arguments.
func (c *Child) Args() []string {
	return append([]string(nil), c.args...)
}

// Pid returns the process ID, or 0 before the process is running.
func (c *Child) Pid() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pid
}

// State returns the current lifecycle state.
func (c *Child) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Stdin is written to by callers. Closing it closes the process's input.
func (c *Child) Stdin() *stream.Stream {
	return c.stdin
}

// Stdout emits the process's standard output.
func (c *Child) Stdout() *stream.Stream {
	return c.stdout
}

// Stderr emits the process's standard error.
func (c *Child) Stderr() *stream.Stream {
	return c.stderr
}

// OnError registers fn for a spawn failure. A close event follows it.
func (c *Child) OnError(fn func(error)) *stream.Subscription {
	return c.errorListeners.Add(fn)
}

// OnExit registers fn for kill requests. The status carries NoExitCode and
// the requested signal; the confirmed outcome arrives with close.
func (c *Child) OnExit(fn func(ExitStatus)) *stream.Subscription {
	return c.exitListeners.Add(fn)
}

// OnClose registers fn for termination. Close is emitted exactly once, after
// the end of Stdout and Stderr.
func (c *Child) OnClose(fn func(ExitStatus)) *stream.Subscription {
	return c.closeListeners.Add(fn)
}

// Start creates the process. A spawn failure is returned and also delivered
// as error and close events.
func (c *Child) Start() error {
	if !c.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}

	c.mu.Lock()
	c.state = StateSpawning
	c.mu.Unlock()

	handle, err := c.opts.Starter.Start(native.Spec{
		Command:     c.file,
		Arguments:   c.args,
		Environment: FlattenEnv(c.opts.Env),
		Workdir:     c.opts.Cwd,
		Charset:     c.opts.Encoding,

		VerbatimArguments: c.opts.VerbatimArguments,
		Stdout: func(chunk string) {
			c.events.post(func() { _, _ = c.stdout.WriteString(chunk) })
		},
		Stderr: func(chunk string) {
			c.events.post(func() { _, _ = c.stderr.WriteString(chunk) })
		},
		Done: c.complete,
	})
	if err != nil {
		return c.failSpawn(err)
	}

	c.mu.Lock()
	c.handle = handle
	c.pid = handle.Pid()
	if c.state == StateSpawning {
		c.state = StateRunning
	}
	hooks := c.afterStart
	c.afterStart = nil
	c.mu.Unlock()

	c.log.Debug("child process started", "pid", c.pid, "args", c.args)
	c.input.attach(handle.Stdin())

	for _, hook := range hooks {
		hook()
	}
	return nil
}

func (c *Child) failSpawn(err error) error {
	spawnErr := newSpawnError(commandLine(c.file, c.args), err)

	c.mu.Lock()
	c.state = StateSpawnFailed
	c.mu.Unlock()
	c.closed.Store(true)
	c.input.stop()

	c.log.Warn("child process failed to start", "error", err, "errno", spawnErr.Errno)

	c.events.post(func() {
		_, _ = c.stderr.WriteString(spawnErr.Message())
		c.errorListeners.Emit(spawnErr)
		c.finish(ExitStatus{Code: NoExitCode})
	})
	return spawnErr
}

// complete receives the native completion. Only the first call counts.
func (c *Child) complete(res native.Result) {
	if !c.closed.CompareAndSwap(false, true) {
		c.log.Debug("ignoring duplicate completion", "exit_code", res.ExitCode)
		return
	}

	status := ExitStatus{Code: res.ExitCode}
	if res.Signaled {
		status = ExitStatus{Code: NoExitCode, Signal: res.Signal}
		c.mu.Lock()
		if c.killSignal != "" {
			status.Signal = c.killSignal
		}
		c.mu.Unlock()
	}

	c.input.stop()
	c.events.post(func() {
		c.mu.Lock()
		c.state = StateExited
		c.mu.Unlock()
		c.finish(status)
	})
}

// finish runs on the dispatcher.
func (c *Child) finish(status ExitStatus) {
	c.mu.Lock()
	c.status = status
	c.mu.Unlock()

	_ = c.stdout.Close()
	_ = c.stderr.Close()

	c.log.Debug("child process closed", "pid", c.Pid(), "exit_code", status.Code, "signal", status.Signal)
	c.closeListeners.Emit(status)
	close(c.done)
}

// Kill sends signal to the process. An empty signal means SIGTERM. It
// returns ErrNotStarted before the process exists and does not wait for the
// process to terminate.
func (c *Child) Kill(signal string) error {
	if signal == "" {
		signal = DefaultKillSignal
	}

	c.mu.Lock()
	handle := c.handle
	if handle == nil {
		c.mu.Unlock()
		return ErrNotStarted
	}
	previous := c.killSignal
	c.killSignal = signal
	c.mu.Unlock()

	if c.closed.Load() {
		return nil
	}

	if err := handle.Kill(signal); err != nil {
		c.mu.Lock()
		c.killSignal = previous
		c.mu.Unlock()
		if stderrors.Is(err, os.ErrProcessDone) {
			return nil
		}
		return errors.Wrapf(err, errors.CodeInternal, "kill %s with %s", c.file, signal)
	}

	c.killed.Store(true)
	c.log.Debug("child process killed", "pid", handle.Pid(), "signal", signal)
	c.events.post(func() {
		// The process may have exited before this ran.
		select {
		case <-c.done:
			return
		default:
		}
		c.exitListeners.Emit(ExitStatus{Code: NoExitCode, Signal: signal})
	})
	return nil
}

// Killed reports whether a signal was successfully sent by Kill.
func (c *Child) Killed() bool {
	return c.killed.Load()
}

// Done is closed after the close listeners have run.
func (c *Child) Done() <-chan struct{} {
	return c.done
}

// Status returns the close status and whether the Child has closed.
func (c *Child) Status() (ExitStatus, bool) {
	select {
	case <-c.done:
	default:
		return ExitStatus{Code: NoExitCode}, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status, true
}

// Wait blocks until the Child closes or ctx is done. It does not kill the
// process when ctx ends.
func (c *Child) Wait(ctx context.Context) (ExitStatus, error) {
	select {
	case <-c.done:
		status, _ := c.Status()
		return status, nil
	case <-ctx.Done():
		return ExitStatus{Code: NoExitCode}, errors.Wrap(ctx.Err(), errors.CodeCanceled, "wait for child process")
	}
}

// onStarted registers fn to run once the process is running.
func (c *Child) onStarted(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.afterStart = append(c.afterStart, fn)
}
