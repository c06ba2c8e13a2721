// Package exec provides a testable, synchronous interface for running local
// commands.
//
// Commands run as childprocess children, so they share the timeout,
// maxBuffer and kill-signal policies and the ExecError contract of that
// package. The package returns concrete types (Command, CommandWrapper)
// while functions that run commands should accept the Executor interface,
// making command execution easy to fake in tests.
//
// # Basic Usage
//
//	exec := exec.New()
//	result, err := exec.Run("echo", "hello world")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(result.Stdout) // "hello world\n"
//
// # Configuration
//
// Global configuration is set at creation time; local configuration applies
// to the next run only and overrides global settings:
//
//	exec := exec.New(
//		exec.WithEnv(map[string]string{"GLOBAL_VAR": "value"}),
//		exec.WithDisableColors(),
//		exec.WithKillSignal("SIGINT"),
//	)
//
//	result, err := exec.
//		WithDir("/tmp").
//		WithEnv(map[string]string{"LOCAL_VAR": "value"}).
//		WithTimeout(5 * time.Second).
//		WithMaxBuffer(1 << 20).
//		Run("some-command")
//
// The inherited environment is always passed through; WithEnv only adds to it.
//
// # Command Wrappers
//
//	git := exec.NewWrapper(exec.New(), "git")
//	result, err := git.WithDir("/repo").Run("status")
//	// Equivalent to: exec.New().WithDir("/repo").Run("git", "status")
//
// # Passthrough
//
// WithPassthrough streams output to the writers set by WithStdout and
// WithStderr (os.Stdout and os.Stderr by default) while still capturing it.
// Result.Combined holds both streams in arrival order.
//
// # Errors
//
// Failures return a *childprocess.ExecError together with the partial
// Result:
//
//	result, err := exec.Run("false")
//	var execErr *childprocess.ExecError
//	if errors.As(err, &execErr) {
//		fmt.Println(execErr.ExitCode, execErr.Signal, execErr.Killed)
//		fmt.Println(result.Stderr)
//	}
//
// Canceling the context given to WithContext kills the process and returns
// an error with code CANCELED.
package exec
