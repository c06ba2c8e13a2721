package childprocess

import (
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jmgilman/go/native"
)

// fakeHandle is a Handle whose process is driven by the test through the
// captured native.Spec.
type fakeHandle struct {
	pid     int
	killErr error
	onKill  func()

	mu      sync.Mutex
	signals []string
	input   strings.Builder
	closed  chan struct{}
}

func newFakeHandle(pid int) *fakeHandle {
	return &fakeHandle{pid: pid, closed: make(chan struct{})}
}

func (h *fakeHandle) Pid() int { return h.pid }

func (h *fakeHandle) Kill(signal string) error {
	h.mu.Lock()
	if h.killErr != nil {
		h.mu.Unlock()
		return h.killErr
	}
	h.signals = append(h.signals, signal)
	onKill := h.onKill
	h.mu.Unlock()

	if onKill != nil {
		onKill()
	}
	return nil
}

func (h *fakeHandle) Stdin() io.WriteCloser { return fakeStdin{h} }

func (h *fakeHandle) killSignals() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.signals...)
}

func (h *fakeHandle) written() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.input.String()
}

type fakeStdin struct{ h *fakeHandle }

func (w fakeStdin) Write(p []byte) (int, error) {
	w.h.mu.Lock()
	defer w.h.mu.Unlock()
	return w.h.input.Write(p)
}

func (w fakeStdin) Close() error {
	close(w.h.closed)
	return nil
}

// fakeStarter records the spec it was started with.
type fakeStarter struct {
	handle *fakeHandle
	err    error

	mu   sync.Mutex
	spec native.Spec
}

func (s *fakeStarter) Start(spec native.Spec) (Handle, error) {
	s.mu.Lock()
	s.spec = spec
	s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return s.handle, nil
}

func (s *fakeStarter) started() native.Spec {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.spec
}

func newFakeStarter() *fakeStarter {
	return &fakeStarter{handle: newFakeHandle(4242)}
}

var errFakeSpawn = errors.New("spawn fake ENOENT")

// eventLog records events delivered by a Child.
type eventLog struct {
	mu     sync.Mutex
	events []string
}

func (l *eventLog) add(event string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, event)
}

func (l *eventLog) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.events...)
}

func waitDone(t *testing.T, c *Child) {
	t.Helper()
	select {
	case <-c.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for child to close")
	}
}

func waitFor[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(5 * time.Second):
		t.Fatal("timed out")
		var zero T
		return zero
	}
}

func requireStarted(t *testing.T, c *Child) {
	t.Helper()
	require.NoError(t, c.Start())
}
