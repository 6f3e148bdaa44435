// Package viewmodel holds the per-screen state machines. Each machine
// owns a single observable state cell; UI code subscribes to the cell
// and re-renders as states are published.
package viewmodel

import "sync"

// State is an observable value cell. It always holds a current value,
// replays that value to new subscribers, and delivers publications in
// order. A slow subscriber is conflated to the latest value rather
// than blocking the publisher, so the most recent state is always
// eventually visible.
//
// Each state machine is the sole writer of its own cell; reads and
// subscriptions are safe from any goroutine.
type State[T any] struct {
	mu      sync.Mutex
	current T
	subs    map[int]chan T
	nextID  int
}

// NewState creates a cell holding initial.
func NewState[T any](initial T) *State[T] {
	return &State[T]{
		current: initial,
		subs:    make(map[int]chan T),
	}
}

// Get returns the current value.
func (s *State[T]) Get() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Subscribe returns a channel that immediately yields the current
// value and then every subsequent publication (conflated under lag).
// The returned cancel func releases the subscription; the channel is
// closed afterwards.
func (s *State[T]) Subscribe() (<-chan T, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	ch := make(chan T, 1)
	ch <- s.current
	s.subs[id] = ch

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if sub, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Set publishes a new value. All sends happen under the cell's lock,
// so subscribers observe values in publication order; when a
// subscriber's buffer is full the stale value is replaced by the new
// one.
func (s *State[T]) Set(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = v
	for _, ch := range s.subs {
		select {
		case ch <- v:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- v
		}
	}
}
