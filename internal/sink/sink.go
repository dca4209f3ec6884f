// Package sink implements the per-window queue of pending pointer events.
package sink

import (
	"errors"
	"sync"

	"github.com/phinze/pointerflow/internal/pointer"
)

// ErrPoisoned is returned once a panic has escaped a critical section. The
// queue contents can no longer be trusted and the sink refuses further use.
var ErrPoisoned = errors.New("sink: poisoned by a panic while locked")

// Sink is an ordered, goroutine-safe queue of window events. Producers append
// from whatever context the platform calls back on; a single consumer drains.
type Sink struct {
	mu       sync.Mutex
	events   []pointer.WindowEvent
	poisoned bool

	ready chan struct{}
}

// New creates an empty sink.
func New() *Sink {
	return &Sink{ready: make(chan struct{}, 1)}
}

// Ready returns a channel that receives a value after appends. Several appends
// may collapse into one signal, so consumers must drain everything queued.
func (s *Sink) Ready() <-chan struct{} {
	return s.ready
}

// Append queues one event.
func (s *Sink) Append(ev pointer.WindowEvent) error {
	return s.AppendAll([]pointer.WindowEvent{ev})
}

// AppendAll queues evs in order under a single lock acquisition, so the
// events of one notification stay contiguous.
func (s *Sink) AppendAll(evs []pointer.WindowEvent) error {
	if len(evs) == 0 {
		return nil
	}
	err := s.locked(func() {
		s.events = append(s.events, evs...)
	})
	if err != nil {
		return err
	}
	select {
	case s.ready <- struct{}{}:
	default:
	}
	return nil
}

// Drain removes and returns every queued event, oldest first.
func (s *Sink) Drain() ([]pointer.WindowEvent, error) {
	var out []pointer.WindowEvent
	err := s.locked(func() {
		out = s.events
		s.events = nil
	})
	return out, err
}

// Pop removes the oldest queued event. ok is false when the sink is empty.
func (s *Sink) Pop() (ev pointer.WindowEvent, ok bool, err error) {
	err = s.locked(func() {
		if len(s.events) == 0 {
			return
		}
		ev, ok = s.events[0], true
		s.events[0] = pointer.WindowEvent{}
		s.events = s.events[1:]
	})
	return ev, ok, err
}

// Len reports the number of queued events.
func (s *Sink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

// locked runs fn with the mutex held. A panic in fn poisons the sink and is
// re-raised after the mutex is released.
func (s *Sink) locked(fn func()) error {
	s.mu.Lock()
	if s.poisoned {
		s.mu.Unlock()
		return ErrPoisoned
	}
	completed := false
	defer func() {
		if !completed {
			s.poisoned = true
		}
		s.mu.Unlock()
	}()
	fn()
	completed = true
	return nil
}
