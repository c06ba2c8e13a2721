package stream

import (
	"errors"
	"sync/atomic"
)

// ErrEnded is returned when writing to a stream that has been closed.
var ErrEnded = errors.New("stream: write after end")

// Stream is a named, listenable channel of string chunks.
type Stream struct {
	name  string
	data  Listeners[string]
	end   Listeners[struct{}]
	ended atomic.Bool
}

// New creates an open stream.
func New(name string) *Stream {
	return &Stream{name: name}
}

// Name returns the name given to New.
func (s *Stream) Name() string {
	return s.name
}

// OnData registers fn for every chunk written to the stream.
func (s *Stream) OnData(fn func(chunk string)) *Subscription {
	return s.data.Add(fn)
}

// OnEnd registers fn for the end of the stream.
func (s *Stream) OnEnd(fn func()) *Subscription {
	return s.end.Add(func(struct{}) { fn() })
}

// WriteString emits chunk as a data event. Empty chunks are dropped.
func (s *Stream) WriteString(chunk string) (int, error) {
	if s.ended.Load() {
		return 0, ErrEnded
	}
	if chunk != "" {
		s.data.Emit(chunk)
	}
	return len(chunk), nil
}

// Write emits p as a data event.
func (s *Stream) Write(p []byte) (int, error) {
	return s.WriteString(string(p))
}

// Close emits the end event. Only the first call has an effect.
func (s *Stream) Close() error {
	if s.ended.CompareAndSwap(false, true) {
		s.end.Emit(struct{}{})
	}
	return nil
}

// Ended reports whether Close has been called.
func (s *Stream) Ended() bool {
	return s.ended.Load()
}
