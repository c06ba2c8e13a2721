package stream

import "sync"

// Listeners is a set of callbacks for one event type. The zero value is ready
// to use and safe for concurrent use.
type Listeners[T any] struct {
	mu      sync.Mutex
	nextID  uint64
	entries []entry[T]
}

type entry[T any] struct {
	id uint64
	fn func(T)
}

// Subscription is the handle returned when a listener is registered.
type Subscription struct {
	once   sync.Once
	cancel func()
}

// Off removes the listener. It is safe to call more than once and on a nil
// Subscription.
func (s *Subscription) Off() {
	if s == nil || s.cancel == nil {
		return
	}
	s.once.Do(s.cancel)
}

// Add registers fn and returns its Subscription.
func (l *Listeners[T]) Add(fn func(T)) *Subscription {
	l.mu.Lock()
	l.nextID++
	id := l.nextID
	l.entries = append(l.entries, entry[T]{id: id, fn: fn})
	l.mu.Unlock()

	return &Subscription{cancel: func() { l.remove(id) }}
}

func (l *Listeners[T]) remove(id uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, e := range l.entries {
		if e.id == id {
			l.entries = append(l.entries[:i:i], l.entries[i+1:]...)
			return
		}
	}
}

// Emit calls every registered listener with v in registration order. The set
// is snapshotted first, so listeners may add or remove subscriptions.
func (l *Listeners[T]) Emit(v T) {
	l.mu.Lock()
	snapshot := make([]entry[T], len(l.entries))
	copy(snapshot, l.entries)
	l.mu.Unlock()

	for _, e := range snapshot {
		e.fn(v)
	}
}

// Len returns the number of registered listeners.
func (l *Listeners[T]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
