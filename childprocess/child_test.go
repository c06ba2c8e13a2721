package childprocess

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/go/errors"
	"github.com/jmgilman/go/native"
)

func recordEvents(c *Child) *eventLog {
	log := &eventLog{}
	c.Stdout().OnData(func(chunk string) { log.add("stdout:" + chunk) })
	c.Stderr().OnData(func(chunk string) { log.add("stderr:" + chunk) })
	c.Stdout().OnEnd(func() { log.add("stdout:end") })
	c.Stderr().OnEnd(func() { log.add("stderr:end") })
	c.OnError(func(err error) { log.add("error") })
	c.OnExit(func(s ExitStatus) { log.add(fmt.Sprintf("exit:%d:%s", s.Code, s.Signal)) })
	c.OnClose(func(s ExitStatus) { log.add(fmt.Sprintf("close:%d:%s", s.Code, s.Signal)) })
	return log
}

func TestChild_PendingUntilStart(t *testing.T) {
	starter := newFakeStarter()
	c := SpawnWithArgs("tool", []string{"a", "b"}, Options{Starter: starter})

	assert.Equal(t, StatePending, c.State())
	assert.Equal(t, 0, c.Pid())
	assert.Equal(t, "tool", c.File())
	assert.Equal(t, []string{"a", "b"}, c.Args())
	assert.Empty(t, starter.started().Command)

	requireStarted(t, c)
	assert.Equal(t, StateRunning, c.State())
	assert.Equal(t, 4242, c.Pid())

	spec := starter.started()
	assert.Equal(t, "tool", spec.Command)
	assert.Equal(t, []string{"a", "b"}, spec.Arguments)
	assert.Equal(t, "UTF-8", spec.Charset)
	assert.Nil(t, spec.Environment)
}

func TestChild_StartTwice(t *testing.T) {
	c := SpawnWithOptions("tool", Options{Starter: newFakeStarter()})
	requireStarted(t, c)

	err := c.Start()
	require.ErrorIs(t, err, ErrAlreadyStarted)
	assert.Equal(t, errors.CodeAlreadyStarted, errors.GetCode(err))
}

func TestChild_PassesOptions(t *testing.T) {
	starter := newFakeStarter()
	c := SpawnWithOptions("tool", Options{
		Cwd:      "/tmp",
		Env:      map[string]string{"B": "2", "A": "1"},
		Encoding: "utf8",
		Starter:  starter,
	})
	requireStarted(t, c)

	spec := starter.started()
	assert.Equal(t, "/tmp", spec.Workdir)
	assert.Equal(t, []string{"A=1", "B=2"}, spec.Environment)
	assert.Equal(t, "UTF-8", spec.Charset)
	assert.Empty(t, spec.Arguments)
}

func TestChild_EventOrder(t *testing.T) {
	starter := newFakeStarter()
	c := SpawnWithOptions("tool", Options{Starter: starter})
	log := recordEvents(c)
	requireStarted(t, c)

	spec := starter.started()
	spec.Stdout("a")
	spec.Stderr("b")
	spec.Stdout("c")
	spec.Done(native.Result{ExitCode: 3})
	waitDone(t, c)

	assert.Equal(t, []string{
		"stdout:a",
		"stderr:b",
		"stdout:c",
		"stdout:end",
		"stderr:end",
		"close:3:",
	}, log.all())
	assert.Equal(t, StateExited, c.State())

	status, ok := c.Status()
	require.True(t, ok)
	assert.Equal(t, ExitStatus{Code: 3}, status)
}

func TestChild_DuplicateCompletionIgnored(t *testing.T) {
	starter := newFakeStarter()
	c := SpawnWithOptions("tool", Options{Starter: starter})
	log := recordEvents(c)
	requireStarted(t, c)

	spec := starter.started()
	spec.Done(native.Result{ExitCode: 0})
	spec.Done(native.Result{ExitCode: 1})
	waitDone(t, c)
	time.Sleep(20 * time.Millisecond)

	assert.Equal(t, []string{"stdout:end", "stderr:end", "close:0:"}, log.all())
}

func TestChild_SpawnFailure(t *testing.T) {
	starter := &fakeStarter{err: errFakeSpawn}
	c := SpawnWithArgs("fake", []string{"x"}, Options{Starter: starter})
	log := recordEvents(c)

	var got error
	c.OnError(func(err error) { got = err })

	err := c.Start()
	require.Error(t, err)
	waitDone(t, c)

	assert.Equal(t, []string{
		"stderr:spawn fake ENOENT",
		"error",
		"stdout:end",
		"stderr:end",
		"close:-1:",
	}, log.all())
	assert.Equal(t, StateSpawnFailed, c.State())

	var execErr *ExecError
	require.ErrorAs(t, got, &execErr)
	assert.Equal(t, errors.CodeSpawnFailed, execErr.Code())
	assert.Equal(t, "ENOENT", execErr.Errno)
	assert.Equal(t, NoExitCode, execErr.ExitCode)
	assert.Empty(t, execErr.Signal)
	assert.False(t, execErr.Killed)
	assert.Equal(t, []string{"fake", "x"}, execErr.Command)
	assert.ErrorIs(t, err, errFakeSpawn)

	assert.ErrorIs(t, c.Kill("SIGTERM"), ErrNotStarted)
}

func TestChild_KillBeforeStart(t *testing.T) {
	c := Spawn("tool")
	err := c.Kill("SIGTERM")
	require.ErrorIs(t, err, ErrNotStarted)
	assert.Equal(t, errors.CodeNotStarted, errors.GetCode(err))
}

func TestChild_KillEmitsExitThenClose(t *testing.T) {
	starter := newFakeStarter()
	c := SpawnWithOptions("tool", Options{Starter: starter})
	log := recordEvents(c)
	requireStarted(t, c)

	require.NoError(t, c.Kill("SIGINT"))
	assert.True(t, c.Killed())
	assert.Equal(t, []string{"SIGINT"}, starter.handle.killSignals())

	starter.started().Done(native.Result{ExitCode: -1, Signaled: true, Signal: "SIGINT"})
	waitDone(t, c)

	assert.Equal(t, []string{
		"exit:-1:SIGINT",
		"stdout:end",
		"stderr:end",
		"close:-1:SIGINT",
	}, log.all())
}

func TestChild_KillRacingExit(t *testing.T) {
	starter := newFakeStarter()
	c := SpawnWithOptions("tool", Options{Starter: starter})
	log := recordEvents(c)
	starter.handle.onKill = func() {
		starter.started().Done(native.Result{ExitCode: -1, Signaled: true, Signal: "SIGINT"})
	}
	requireStarted(t, c)

	require.NoError(t, c.Kill("SIGINT"))
	waitDone(t, c)

	flushed := make(chan struct{})
	c.events.post(func() { close(flushed) })
	waitFor(t, flushed)

	assert.Equal(t, []string{
		"stdout:end",
		"stderr:end",
		"close:-1:SIGINT",
	}, log.all())
}

func TestChild_KillReportsRequestedSignal(t *testing.T) {
	starter := newFakeStarter()
	c := SpawnWithOptions("tool", Options{Starter: starter})
	requireStarted(t, c)

	require.NoError(t, c.Kill("beepbeep"))
	starter.started().Done(native.Result{ExitCode: -1, Signaled: true, Signal: "SIGTERM"})

	status, err := c.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ExitStatus{Code: NoExitCode, Signal: "beepbeep"}, status)
}

func TestChild_KillDefaultsToSIGTERM(t *testing.T) {
	starter := newFakeStarter()
	c := SpawnWithOptions("tool", Options{Starter: starter})
	requireStarted(t, c)

	require.NoError(t, c.Kill(""))
	assert.Equal(t, []string{"SIGTERM"}, starter.handle.killSignals())
}

func TestChild_KillFinishedProcess(t *testing.T) {
	starter := newFakeStarter()
	starter.handle.killErr = os.ErrProcessDone
	c := SpawnWithOptions("tool", Options{Starter: starter})
	log := recordEvents(c)
	requireStarted(t, c)

	require.NoError(t, c.Kill("SIGTERM"))
	assert.False(t, c.Killed())

	starter.started().Done(native.Result{ExitCode: 0})
	waitDone(t, c)
	assert.Equal(t, []string{"stdout:end", "stderr:end", "close:0:"}, log.all())
}

func TestChild_KillAfterClose(t *testing.T) {
	starter := newFakeStarter()
	c := SpawnWithOptions("tool", Options{Starter: starter})
	requireStarted(t, c)

	starter.started().Done(native.Result{ExitCode: 0})
	waitDone(t, c)

	require.NoError(t, c.Kill("SIGTERM"))
	assert.Empty(t, starter.handle.killSignals())
}

func TestChild_StdinQueuedBeforeStart(t *testing.T) {
	starter := newFakeStarter()
	c := SpawnWithOptions("tool", Options{Starter: starter})

	_, err := c.Stdin().WriteString("ab")
	require.NoError(t, err)
	requireStarted(t, c)
	_, err = c.Stdin().WriteString("cd")
	require.NoError(t, err)
	require.NoError(t, c.Stdin().Close())

	waitFor(t, starter.handle.closed)
	assert.Equal(t, "abcd", starter.handle.written())
}

func TestChild_WaitCanceled(t *testing.T) {
	c := SpawnWithOptions("tool", Options{Starter: newFakeStarter()})
	requireStarted(t, c)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	status, err := c.Wait(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, errors.CodeCanceled, errors.GetCode(err))
	assert.Equal(t, NoExitCode, status.Code)

	_, ok := c.Status()
	assert.False(t, ok)
}

func TestChild_UniqueIDs(t *testing.T) {
	assert.NotEqual(t, Spawn("a").ID(), Spawn("a").ID())
}

func TestState_String(t *testing.T) {
	tests := []struct {
		state    State
		want     string
		terminal bool
	}{
		{StatePending, "pending", false},
		{StateSpawning, "spawning", false},
		{StateRunning, "running", false},
		{StateExited, "exited", true},
		{StateSpawnFailed, "spawn-failed", true},
		{State(99), "unknown", false},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.state.String())
			assert.Equal(t, tt.terminal, tt.state.Terminal())
		})
	}
}

func TestFlattenEnv(t *testing.T) {
	assert.Nil(t, FlattenEnv(nil))
	assert.Equal(t, []string{}, FlattenEnv(map[string]string{}))
	assert.Equal(t, []string{"A=1", "B=x=y"}, FlattenEnv(map[string]string{"B": "x=y", "A": "1"}))
}
