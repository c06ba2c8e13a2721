package childprocess

import (
	"context"
	"runtime"
)

// Exec runs command through the platform shell, buffers its output and calls
// cb exactly once. On Windows the shell is cmd.exe, elsewhere /bin/sh;
// opts.Shell overrides the binary.
func Exec(command string, opts Options, cb Callback) *Child {
	file, args, opts := shellCommand(runtime.GOOS, command, opts)
	return ExecFile(file, args, opts, cb)
}

// PrepareExec is Exec without the call to Start.
func PrepareExec(command string, opts Options, cb Callback) *Child {
	file, args, opts := shellCommand(runtime.GOOS, command, opts)
	return PrepareExecFile(file, args, opts, cb)
}

// ExecContext runs command through the platform shell and waits for it.
func ExecContext(ctx context.Context, command string, opts Options) (*Result, error) {
	file, args, opts := shellCommand(runtime.GOOS, command, opts)
	return ExecFileContext(ctx, file, args, opts)
}

func shellCommand(goos, command string, opts Options) (string, []string, Options) {
	shell := opts.Shell
	if goos == "windows" {
		if shell == "" {
			shell = "cmd.exe"
		}
		opts.VerbatimArguments = true
		return shell, []string{"/s", "/c", `"` + command + `"`}, opts
	}
	if shell == "" {
		shell = "/bin/sh"
	}
	return shell, []string{"-c", command}, opts
}
