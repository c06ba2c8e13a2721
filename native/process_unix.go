//go:build unix

package native

import (
	"errors"
	"os/exec"
	"strings"
	"syscall"

	"golang.org/x/sys/unix"
)

func configure(*exec.Cmd, Spec) {}

// Kill sends the named signal to the process. Names are matched without
// case and with or without the SIG prefix; unknown names send SIGTERM.
func (p *Process) Kill(signal string) error {
	if err := p.cmd.Process.Signal(lookupSignal(signal)); err != nil {
		return err
	}
	p.killed.Store(true)
	return nil
}

func lookupSignal(name string) syscall.Signal {
	name = strings.ToUpper(strings.TrimSpace(name))
	if !strings.HasPrefix(name, "SIG") {
		name = "SIG" + name
	}
	if sig := unix.SignalNum(name); sig != 0 {
		return sig
	}
	return unix.SIGTERM
}

func (p *Process) result() Result {
	state := p.cmd.ProcessState
	if state == nil {
		return Result{ExitCode: -1}
	}
	if ws, ok := state.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return Result{ExitCode: -1, Signaled: true, Signal: unix.SignalName(ws.Signal())}
	}
	return Result{ExitCode: state.ExitCode()}
}

func errnoName(err error) string {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return unix.ErrnoName(errno)
	}
	return ""
}
