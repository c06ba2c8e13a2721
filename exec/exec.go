package exec

import (
	"context"
	"io"
	"log/slog"
	"time"
)

// Executor is the main interface for executing commands.
// It provides a fluent API for configuring and running commands.
type Executor interface {
	// WithEnv sets environment variables for the command.
	// These are local settings that override any global environment variables.
	WithEnv(env map[string]string) Executor

	// WithDir sets the working directory for the command.
	// This is a local setting that overrides any global working directory.
	WithDir(dir string) Executor

	// WithContext sets the context for the command.
	// The process is killed with the kill signal if the context is canceled.
	WithContext(ctx context.Context) Executor

	// WithDisableColors disables color output by setting common environment variables.
	// This sets NO_COLOR=1, TERM=dumb, and other common color-disabling variables.
	WithDisableColors() Executor

	// WithTimeout kills the command when it runs longer than timeout.
	WithTimeout(timeout time.Duration) Executor

	// WithMaxBuffer kills the command once its stdout or stderr exceeds n bytes.
	WithMaxBuffer(n int) Executor

	// WithKillSignal sets the signal used for timeouts, buffer overflows and
	// cancellation. The default is SIGTERM.
	WithKillSignal(signal string) Executor

	// WithShell sets the interpreter used by RunShell.
	WithShell(shell string) Executor

	// WithStdout sets a custom writer for stdout.
	// If passthrough is enabled, output will be written here in addition to being captured.
	WithStdout(w io.Writer) Executor

	// WithStderr sets a custom writer for stderr.
	// If passthrough is enabled, output will be written here in addition to being captured.
	WithStderr(w io.Writer) Executor

	// WithPassthrough enables streaming output to stdout/stderr while also capturing it.
	WithPassthrough() Executor

	// Run executes the command with the given arguments.
	// It returns a Result containing the captured output and exit code.
	Run(args ...string) (*Result, error)

	// RunShell executes command through the platform shell.
	RunShell(command string) (*Result, error)

	// Clone creates a copy of the executor with the same configuration.
	Clone() Executor
}

// Result represents the result of a command execution.
type Result struct {
	// Stdout is the captured standard output
	Stdout string

	// Stderr is the captured standard error
	Stderr string

	// Combined is stdout and stderr in the order they were received
	Combined string

	// ExitCode is the exit code, or -1 if the command was killed or never ran
	ExitCode int

	// Signal is the signal that terminated the command, if any
	Signal string
}

// Option is a function that configures a Command with global settings.
// These settings are applied at creation time and can be overridden by local settings.
type Option func(*Command)

// WithEnv returns an Option that sets global environment variables.
func WithEnv(env map[string]string) Option {
	return func(c *Command) {
		for k, v := range env {
			c.config.globalEnv[k] = v
		}
	}
}

// WithDir returns an Option that sets the global working directory.
func WithDir(dir string) Option {
	return func(c *Command) {
		c.config.globalDir = dir
	}
}

// WithContext returns an Option that sets the global context.
func WithContext(ctx context.Context) Option {
	return func(c *Command) {
		c.ctx = ctx
	}
}

// WithDisableColors returns an Option that globally disables color output.
func WithDisableColors() Option {
	return func(c *Command) {
		c.config.globalDisableColors = true
	}
}

// WithTimeout returns an Option that sets a global timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Command) {
		c.config.globalTimeout = timeout
	}
}

// WithMaxBuffer returns an Option that sets a global output limit.
func WithMaxBuffer(n int) Option {
	return func(c *Command) {
		c.config.globalMaxBuffer = n
	}
}

// WithKillSignal returns an Option that sets the global kill signal.
func WithKillSignal(signal string) Option {
	return func(c *Command) {
		c.config.globalKillSignal = signal
	}
}

// WithShell returns an Option that sets the global shell.
func WithShell(shell string) Option {
	return func(c *Command) {
		c.config.globalShell = shell
	}
}

// WithEncoding returns an Option that sets the charset of the command's I/O.
func WithEncoding(encoding string) Option {
	return func(c *Command) {
		c.encoding = encoding
	}
}

// WithStdout returns an Option that sets the global stdout writer.
func WithStdout(w io.Writer) Option {
	return func(c *Command) {
		c.stdout = w
	}
}

// WithStderr returns an Option that sets the global stderr writer.
func WithStderr(w io.Writer) Option {
	return func(c *Command) {
		c.stderr = w
	}
}

// WithPassthrough returns an Option that globally enables output passthrough.
func WithPassthrough() Option {
	return func(c *Command) {
		c.config.globalPassthrough = true
	}
}

// WithLogger returns an Option that sets the logger handed to every child
// process.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Command) {
		c.logger = logger
	}
}
