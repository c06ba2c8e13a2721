package native

import (
	"errors"
	"io"
	"os"
	"os/exec"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// DefaultDrainDelay bounds how long output is still read after the process
// exits, for descendants that keep the pipes open.
const DefaultDrainDelay = 100 * time.Millisecond

const chunkSize = 4096

var errEmptyCommand = errors.New("empty command")

// Spec describes the process to start and where its events go.
type Spec struct {
	// Command is the executable. Names without a path separator are looked
	// up in PATH.
	Command string

	// Arguments follow the command, excluding argv[0].
	Arguments []string

	// Environment holds "KEY=VALUE" entries appended to the inherited
	// environment. Nil inherits the environment unchanged.
	Environment []string

	// Workdir is the working directory; empty means the caller's.
	Workdir string

	// Charset names the encoding of the process's text I/O. Empty means UTF-8.
	Charset string

	// VerbatimArguments passes Arguments to the Windows command line joined
	// by spaces and without quoting, as cmd.exe expects. Ignored elsewhere.
	VerbatimArguments bool

	// DrainDelay overrides DefaultDrainDelay when positive.
	DrainDelay time.Duration

	// Stdout and Stderr receive decoded output chunks. Either may be nil.
	Stdout func(chunk string)
	Stderr func(chunk string)

	// Done is called exactly once after the process has terminated.
	Done func(Result)
}

// Result describes how a process terminated.
type Result struct {
	// ExitCode is the process exit code, or -1 when it was killed by a signal.
	ExitCode int

	// Signaled reports whether a signal terminated the process.
	Signaled bool

	// Signal is the name of the terminating signal, such as "SIGTERM".
	Signal string
}

// Process is a started operating system process.
type Process struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	killed atomic.Bool
}

// Start launches the process described by spec. Output callbacks and Done are
// called from goroutines owned by the Process.
func Start(spec Spec) (*Process, error) {
	if spec.Command == "" {
		return nil, newStartError(spec.Command, errEmptyCommand)
	}

	enc, err := LookupCharset(spec.Charset)
	if err != nil {
		return nil, newStartError(spec.Command, err)
	}

	cmd := exec.Command(spec.Command, spec.Arguments...)
	cmd.Dir = spec.Workdir
	configure(cmd, spec)
	if spec.Environment != nil {
		cmd.Env = append(os.Environ(), spec.Environment...)
	}

	var pipes pipeSet
	if err := pipes.open(); err != nil {
		return nil, newStartError(spec.Command, err)
	}
	cmd.Stdin = pipes.stdinR
	cmd.Stdout = pipes.stdoutW
	cmd.Stderr = pipes.stderrW

	if err := cmd.Start(); err != nil {
		pipes.closeAll()
		return nil, newStartError(spec.Command, err)
	}
	// The child holds its own copies now.
	closeFiles(pipes.stdinR, pipes.stdoutW, pipes.stderrW)

	p := &Process{
		cmd:   cmd,
		stdin: newEncodedWriter(pipes.stdinW, enc),
	}
	go p.supervise(spec, enc, pipes.stdoutR, pipes.stderrR)

	return p, nil
}

// Pid returns the operating system process ID.
func (p *Process) Pid() int {
	return p.cmd.Process.Pid
}

// Stdin returns the write end of the process's standard input. Closing it
// signals end of input.
func (p *Process) Stdin() io.WriteCloser {
	return p.stdin
}

func (p *Process) supervise(spec Spec, enc encoding.Encoding, stdout, stderr *os.File) {
	var g errgroup.Group
	g.Go(func() error { return pump(stdout, enc, spec.Stdout) })
	g.Go(func() error { return pump(stderr, enc, spec.Stderr) })

	// Stdio are *os.File, so Wait only reaps the process.
	_ = p.cmd.Wait()

	drained := make(chan struct{})
	go func() {
		_ = g.Wait()
		close(drained)
	}()

	delay := spec.DrainDelay
	if delay <= 0 {
		delay = DefaultDrainDelay
	}
	timer := time.NewTimer(delay)
	select {
	case <-drained:
		timer.Stop()
	case <-timer.C:
		closeFiles(stdout, stderr)
		<-drained
	}
	closeFiles(stdout, stderr)

	if spec.Done != nil {
		spec.Done(p.result())
	}
}

func pump(r io.Reader, enc encoding.Encoding, emit func(string)) error {
	reader := transform.NewReader(r, enc.NewDecoder())
	buf := make([]byte, chunkSize)
	for {
		n, err := reader.Read(buf)
		if n > 0 && emit != nil {
			emit(string(buf[:n]))
		}
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, os.ErrClosed) {
				return nil
			}
			return err
		}
	}
}

type pipeSet struct {
	stdinR, stdinW   *os.File
	stdoutR, stdoutW *os.File
	stderrR, stderrW *os.File
}

func (ps *pipeSet) open() error {
	var err error
	if ps.stdinR, ps.stdinW, err = os.Pipe(); err != nil {
		return err
	}
	if ps.stdoutR, ps.stdoutW, err = os.Pipe(); err != nil {
		ps.closeAll()
		return err
	}
	if ps.stderrR, ps.stderrW, err = os.Pipe(); err != nil {
		ps.closeAll()
		return err
	}
	return nil
}

func (ps *pipeSet) closeAll() {
	closeFiles(ps.stdinR, ps.stdinW, ps.stdoutR, ps.stdoutW, ps.stderrR, ps.stderrW)
}

func closeFiles(files ...*os.File) {
	for _, f := range files {
		if f != nil {
			_ = f.Close()
		}
	}
}

// encodedWriter encodes UTF-8 input into the process charset.
type encodedWriter struct {
	w    *transform.Writer
	pipe io.Closer
}

func newEncodedWriter(pipe *os.File, enc encoding.Encoding) *encodedWriter {
	return &encodedWriter{
		w:    transform.NewWriter(pipe, enc.NewEncoder()),
		pipe: pipe,
	}
}

func (e *encodedWriter) Write(p []byte) (int, error) {
	return e.w.Write(p)
}

func (e *encodedWriter) Close() error {
	return errors.Join(e.w.Close(), e.pipe.Close())
}
