package exec

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingExecutor is an Executor that records the calls made on it.
type recordingExecutor struct {
	calls []string
	args  []string
	shell string
	clone *recordingExecutor
}

func (r *recordingExecutor) record(call string) Executor {
	r.calls = append(r.calls, call)
	return r
}

func (r *recordingExecutor) WithEnv(map[string]string) Executor { return r.record("env") }
func (r *recordingExecutor) WithDir(string) Executor { return r.record("dir") }
func (r *recordingExecutor) WithContext(context.Context) Executor { return r.record("context") }
func (r *recordingExecutor) WithDisableColors() Executor { return r.record("colors") }
func (r *recordingExecutor) WithTimeout(time.Duration) Executor { return r.record("timeout") }
func (r *recordingExecutor) WithMaxBuffer(int) Executor { return r.record("maxBuffer") }
func (r *recordingExecutor) WithKillSignal(string) Executor { return r.record("killSignal") }
func (r *recordingExecutor) WithShell(string) Executor { return r.record("shell") }
func (r *recordingExecutor) WithStdout(io.Writer) Executor { return r.record("stdout") }
func (r *recordingExecutor) WithStderr(io.Writer) Executor { return r.record("stderr") }
func (r *recordingExecutor) WithPassthrough() Executor { return r.record("passthrough") }

func (r *recordingExecutor) Run(args ...string) (*Result, error) {
	r.args = args
	return &Result{Stdout: "mock output"}, nil
}

func (r *recordingExecutor) RunShell(command string) (*Result, error) {
	r.shell = command
	return &Result{}, nil
}

func (r *recordingExecutor) Clone() Executor {
	r.clone = &recordingExecutor{}
	return r.clone
}

func TestWrapperPrependsCommand(t *testing.T) {
	fake := &recordingExecutor{}
	git := NewWrapper(fake, "git")

	result, err := git.Run("status", "--short")
	require.NoError(t, err)
	assert.Equal(t, "mock output", result.Stdout)
	assert.Equal(t, []string{"git", "status", "--short"}, fake.args)
}

func TestWrapperForwardsConfiguration(t *testing.T) {
	fake := &recordingExecutor{}
	git := NewWrapper(fake, "git")

	_, err := git.
		WithEnv(nil).
		WithDir("/repo").
		WithContext(context.Background()).
		WithDisableColors().
		WithTimeout(time.Second).
		WithMaxBuffer(1).
		WithKillSignal("SIGINT").
		WithShell("sh").
		WithStdout(io.Discard).
		WithStderr(io.Discard).
		WithPassthrough().
		Run("log")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"env", "dir", "context", "colors", "timeout", "maxBuffer",
		"killSignal", "shell", "stdout", "stderr", "passthrough",
	}, fake.calls)
}

func TestWrapperRunShell(t *testing.T) {
	fake := &recordingExecutor{}
	_, err := NewWrapper(fake, "git").RunShell("log | head -1")
	require.NoError(t, err)
	assert.Equal(t, "git log | head -1", fake.shell)
}

func TestWrapperClone(t *testing.T) {
	fake := &recordingExecutor{}
	clone := NewWrapper(fake, "git").Clone()

	_, err := clone.Run("status")
	require.NoError(t, err)
	require.NotNil(t, fake.clone)
	assert.Equal(t, []string{"git", "status"}, fake.clone.args)
	assert.Nil(t, fake.args)
}
