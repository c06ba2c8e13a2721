// Package native is the platform process primitive underneath childprocess.
//
// Start launches one operating system process and reports everything about it
// through callbacks: decoded stdout and stderr chunks as they are read, and a
// single Done call once the process has been waited on and its output pipes
// are drained. It never buffers output and has no policy of its own.
//
//	p, err := native.Start(native.Spec{
//		Command:   "/bin/echo",
//		Arguments: []string{"hello"},
//		Stdout:    func(chunk string) { fmt.Print(chunk) },
//		Done:      func(r native.Result) { fmt.Println("exit", r.ExitCode) },
//	})
//
// Start returns a *StartError when the process cannot be created. Its message
// carries the errno token of the failure (ENOENT, EACCES, ...), which callers
// may parse back out of the text.
//
// Output is decoded from the configured charset with golang.org/x/text, so a
// multi-byte character split across two pipe reads is delivered whole.
package native
