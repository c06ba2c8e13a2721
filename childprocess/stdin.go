package childprocess

import (
	"io"
	"log/slog"
	"sync"
)

// stdinPump forwards chunks written to a Child's stdin stream to the process.
// Chunks written before the process exists are queued.
type stdinPump struct {
	log *slog.Logger

	mu      sync.Mutex
	cond    *sync.Cond
	queue   []string
	ended   bool
	stopped bool
}

func newStdinPump(log *slog.Logger) *stdinPump {
	p := &stdinPump{log: log}
	p.cond = sync.NewCond(&p.mu)
	return p
}

func (p *stdinPump) push(chunk string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ended || p.stopped {
		return
	}
	p.queue = append(p.queue, chunk)
	p.cond.Signal()
}

func (p *stdinPump) end() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ended = true
	p.cond.Signal()
}

// stop discards queued input and closes the pipe once the pump notices.
func (p *stdinPump) stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopped = true
	p.queue = nil
	p.cond.Signal()
}

// attach starts forwarding to w.
func (p *stdinPump) attach(w io.WriteCloser) {
	if w == nil {
		return
	}
	go p.run(w)
}

func (p *stdinPump) run(w io.WriteCloser) {
	defer func() {
		if err := w.Close(); err != nil {
			p.log.Debug("closing stdin failed", "error", err)
		}
	}()

	for {
		p.mu.Lock()
		for len(p.queue) == 0 && !p.ended && !p.stopped {
			p.cond.Wait()
		}
		if p.stopped || len(p.queue) == 0 {
			p.mu.Unlock()
			return
		}
		chunk := p.queue[0]
		p.queue = p.queue[1:]
		p.mu.Unlock()

		if _, err := io.WriteString(w, chunk); err != nil {
			p.log.Debug("writing stdin failed", "error", err)
			p.stop()
			return
		}
	}
}
