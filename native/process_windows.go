//go:build windows

package native

import (
	"os/exec"
	"strings"
	"syscall"
)

// configure hands verbatim arguments to CreateProcess unchanged. Without it
// os/exec re-quotes them and cmd.exe sees escaped quotes.
func configure(cmd *exec.Cmd, spec Spec) {
	if spec.VerbatimArguments {
		cmd.SysProcAttr = &syscall.SysProcAttr{
			CmdLine: verbatimCommandLine(spec.Command, spec.Arguments),
		}
	}
}

func verbatimCommandLine(name string, args []string) string {
	var b strings.Builder
	b.WriteString(syscall.EscapeArg(name))
	for _, arg := range args {
		b.WriteByte(' ')
		b.WriteString(arg)
	}
	return b.String()
}

// Kill terminates the process. Windows has no signals, so every name is a
// hard kill.
func (p *Process) Kill(signal string) error {
	if err := p.cmd.Process.Kill(); err != nil {
		return err
	}
	p.killed.Store(true)
	return nil
}

func (p *Process) result() Result {
	state := p.cmd.ProcessState
	if state == nil {
		return Result{ExitCode: -1}
	}
	if p.killed.Load() && state.ExitCode() != 0 {
		return Result{ExitCode: -1, Signaled: true, Signal: "SIGKILL"}
	}
	return Result{ExitCode: state.ExitCode()}
}

func errnoName(err error) string {
	return ""
}
