// Package stream provides the push-based string channels that carry a child
// process's standard input, output and error.
//
// A Stream has two events: data, emitted once per chunk written, and end,
// emitted once when the stream is closed. Listeners run synchronously in the
// goroutine that writes, in the order they were registered:
//
//	s := stream.New("stdout")
//	sub := s.OnData(func(chunk string) {
//		fmt.Print(chunk)
//	})
//	defer sub.Off()
//
//	_, _ = s.WriteString("hello\n")
//	_ = s.Close()
//
// Stream implements io.WriteCloser, so io.Copy can feed it:
//
//	_, err := io.Copy(child.Stdin(), os.Stdin)
//	_ = child.Stdin().Close()
//
// Listeners is the generic listener set behind every event in this module. A
// Subscription removes its listener with Off, which may be called any number
// of times, including from inside the listener itself.
package stream
