package exec

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/jmgilman/go/childprocess"
	"github.com/jmgilman/go/errors"
)

// Command is the concrete implementation of the Executor interface.
// It runs each command as a childprocess.Child.
type Command struct {
	config   *config
	ctx      context.Context
	localCtx context.Context
	stdout   io.Writer
	stderr   io.Writer
	encoding string
	logger   *slog.Logger
}

// New creates a new Command with the given options.
// Options set global defaults that can be overridden by local settings.
func New(opts ...Option) *Command {
	cmd := &Command{
		config: newConfig(),
		ctx:    context.Background(),
		stdout: os.Stdout,
		stderr: os.Stderr,
	}

	for _, opt := range opts {
		opt(cmd)
	}

	return cmd
}

// WithEnv sets environment variables for the command.
func (c *Command) WithEnv(env map[string]string) Executor {
	for k, v := range env {
		c.config.localEnv[k] = v
	}
	return c
}

// WithDir sets the working directory for the command.
func (c *Command) WithDir(dir string) Executor {
	c.config.localDir = dir
	return c
}

// WithContext sets the context for the next run.
func (c *Command) WithContext(ctx context.Context) Executor {
	c.localCtx = ctx
	return c
}

// WithDisableColors disables color output.
func (c *Command) WithDisableColors() Executor {
	val := true
	c.config.localDisableColors = &val
	return c
}

// WithTimeout sets a timeout for the command.
func (c *Command) WithTimeout(timeout time.Duration) Executor {
	c.config.localTimeout = &timeout
	return c
}

// WithMaxBuffer limits the captured output of the command.
func (c *Command) WithMaxBuffer(n int) Executor {
	c.config.localMaxBuffer = &n
	return c
}

// WithKillSignal sets the kill signal for the command.
func (c *Command) WithKillSignal(signal string) Executor {
	c.config.localKillSignal = signal
	return c
}

// WithShell sets the interpreter for RunShell.
func (c *Command) WithShell(shell string) Executor {
	c.config.localShell = shell
	return c
}

// WithStdout sets the stdout writer.
func (c *Command) WithStdout(w io.Writer) Executor {
	c.stdout = w
	return c
}

// WithStderr sets the stderr writer.
func (c *Command) WithStderr(w io.Writer) Executor {
	c.stderr = w
	return c
}

// WithPassthrough enables output passthrough.
func (c *Command) WithPassthrough() Executor {
	val := true
	c.config.localPassthrough = &val
	return c
}

// Run executes the command with the given arguments.
func (c *Command) Run(args ...string) (*Result, error) {
	if len(args) == 0 {
		c.reset()
		return nil, errors.New(errors.CodeInvalidInput, "no command given")
	}
	return c.run(func(ctx context.Context, opts childprocess.Options) (*childprocess.Result, error) {
		return childprocess.ExecFileContext(ctx, args[0], args[1:], opts)
	})
}

// RunShell executes command through the platform shell.
func (c *Command) RunShell(command string) (*Result, error) {
	return c.run(func(ctx context.Context, opts childprocess.Options) (*childprocess.Result, error) {
		return childprocess.ExecContext(ctx, command, opts)
	})
}

type runner func(ctx context.Context, opts childprocess.Options) (*childprocess.Result, error)

func (c *Command) run(fn runner) (*Result, error) {
	ctx := c.ctx
	if c.localCtx != nil {
		ctx = c.localCtx
	}

	combined := newCombinedWriter()
	stdout, stderr := io.Writer(nil), io.Writer(nil)
	if c.config.effectivePassthrough() {
		stdout, stderr = c.stdout, c.stderr
	}

	opts := childprocess.Options{
		Cwd:        c.config.effectiveDir(),
		Env:        c.config.effectiveEnv(),
		Encoding:   c.encoding,
		Timeout:    c.config.effectiveTimeout(),
		MaxBuffer:  c.config.effectiveMaxBuffer(),
		KillSignal: c.config.effectiveKillSignal(),
		Shell:      c.config.effectiveShell(),
		TeeStdout:  newMultiWriter(combined, stdout),
		TeeStderr:  newMultiWriter(combined, stderr),
		Logger:     c.logger,
	}

	// Reset local configuration for next run
	c.reset()

	res, err := fn(ctx, opts)
	if res == nil {
		return nil, err
	}

	result := &Result{
		Stdout:   res.Stdout,
		Stderr:   res.Stderr,
		Combined: combined.String(),
		ExitCode: res.Status.Code,
		Signal:   res.Status.Signal,
	}
	return result, err
}

func (c *Command) reset() {
	c.config.resetLocal()
	c.localCtx = nil
}

// Clone creates a copy of the executor with the same configuration.
func (c *Command) Clone() Executor {
	return &Command{
		config:   c.config.clone(),
		ctx:      c.ctx,
		localCtx: c.localCtx,
		stdout:   c.stdout,
		stderr:   c.stderr,
		encoding: c.encoding,
		logger:   c.logger,
	}
}
