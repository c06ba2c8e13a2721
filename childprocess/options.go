package childprocess

import (
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/jmgilman/go/native"
)

const (
	// NoExitCode is reported as the exit code of a process that was
	// terminated by a signal or never started.
	NoExitCode = -1

	// DefaultKillSignal is sent by Kill("") and by the Timeout and MaxBuffer
	// policies unless Options.KillSignal says otherwise.
	DefaultKillSignal = "SIGTERM"

	// DefaultEncoding is the charset used when Options.Encoding is empty.
	DefaultEncoding = "UTF-8"
)

// Options configures a Child. The zero value runs the process in the current
// directory with the inherited environment.
type Options struct {
	// Cwd is the working directory of the process.
	Cwd string

	// Env is merged over the inherited environment. Nil inherits it unchanged.
	Env map[string]string

	// Encoding is the charset of the process's text I/O, such as "UTF-8"
	// (default), "utf8" or "latin1".
	Encoding string

	// Timeout kills the process when it runs longer. Zero disables it.
	// Only ExecFile and Exec apply it.
	Timeout time.Duration

	// MaxBuffer kills the process once its buffered stdout or stderr grows
	// beyond this many bytes. Zero disables it. Only ExecFile and Exec apply
	// it.
	MaxBuffer int

	// KillSignal is the signal sent by the Timeout and MaxBuffer policies.
	KillSignal string

	// Shell overrides the interpreter used by Exec.
	Shell string

	// VerbatimArguments passes the arguments to the Windows command line
	// without quoting. Exec sets it for cmd.exe. Ignored on other platforms.
	VerbatimArguments bool

	// TeeStdout and TeeStderr receive every output chunk ExecFile buffers.
	TeeStdout io.Writer
	TeeStderr io.Writer

	// Logger receives lifecycle logs. Nil discards them.
	Logger *slog.Logger

	// Starter creates the process. Nil uses native.Start.
	Starter Starter
}

// Handle is a running process as seen by a Child.
type Handle interface {
	Pid() int
	Kill(signal string) error
	Stdin() io.WriteCloser
}

// Starter creates processes.
type Starter interface {
	Start(spec native.Spec) (Handle, error)
}

// StarterFunc adapts a function to Starter.
type StarterFunc func(spec native.Spec) (Handle, error)

// Start calls f(spec).
func (f StarterFunc) Start(spec native.Spec) (Handle, error) {
	return f(spec)
}

type nativeStarter struct{}

func (nativeStarter) Start(spec native.Spec) (Handle, error) {
	p, err := native.Start(spec)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (o Options) normalized() Options {
	if canonical, err := native.CanonicalCharset(o.Encoding); err == nil {
		o.Encoding = canonical
	}
	if o.KillSignal == "" {
		o.KillSignal = DefaultKillSignal
	}
	if o.Timeout < 0 {
		o.Timeout = 0
	}
	if o.MaxBuffer < 0 {
		o.MaxBuffer = 0
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	if o.Starter == nil {
		o.Starter = nativeStarter{}
	}
	return o
}

// FlattenEnv converts env into sorted "KEY=VALUE" entries. A nil map yields
// nil, which means the inherited environment is used unchanged.
func FlattenEnv(env map[string]string) []string {
	if env == nil {
		return nil
	}
	entries := make([]string, 0, len(env))
	for k, v := range env {
		entries = append(entries, k+"="+v)
	}
	sort.Strings(entries)
	return entries
}
