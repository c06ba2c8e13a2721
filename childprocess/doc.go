// Package childprocess spawns external programs and exposes them as event
// sources.
//
// A Child wraps one operating system process and owns three streams: Stdin,
// which callers write to, and Stdout and Stderr, which the Child writes to as
// output arrives. The Child itself emits error, exit and close events.
//
// Construction is two-phase. Spawn and its variants return an inert Child in
// StatePending; nothing is executed until Start is called, so listeners
// attached in between never miss an event:
//
//	child := childprocess.Spawn("ls", "-la")
//	child.Stdout().OnData(func(chunk string) {
//		fmt.Print(chunk)
//	})
//	child.OnClose(func(status childprocess.ExitStatus) {
//		fmt.Println("exit code", status.Code)
//	})
//	if err := child.Start(); err != nil {
//		return err
//	}
//
// Events of one Child are delivered one at a time on a goroutine owned by the
// Child, in the order the process produced them. Listeners must not block for
// long.
//
// ExecFile and Exec buffer a process's output and report the outcome through
// a single callback, applying the Timeout and MaxBuffer policies of Options
// by killing the process:
//
//	childprocess.ExecFile("git", []string{"status"}, childprocess.Options{
//		Timeout: 10 * time.Second,
//	}, func(err error, stdout, stderr string) {
//		var execErr *childprocess.ExecError
//		if errors.As(err, &execErr) {
//			log.Printf("git failed with %d: %s", execErr.ExitCode, stderr)
//		}
//	})
//
// ExecFileContext and ExecContext are the blocking forms.
package childprocess
