// Package bus provides ordered, in-memory fan-out streams for process-wide
// notifications. Delivery is best-effort and synchronous; nothing survives a
// restart.
package bus

import (
	"sync"

	"github.com/google/uuid"
)

// Stream fans one event type out to any number of subscribers. Subscribers
// are held in registration order and Publish walks them in that order, so
// every subscriber observes events in the order they were published.
type Stream[T any] struct {
	mu   sync.RWMutex
	subs []subscription[T]
}

type subscription[T any] struct {
	token string
	fn    func(T)
}

// NewStream returns an empty stream.
func NewStream[T any]() *Stream[T] {
	return &Stream[T]{}
}

// Subscribe registers fn and returns the token identifying the
// subscription. Each call registers a distinct subscriber, even for the
// same function.
func (s *Stream[T]) Subscribe(fn func(T)) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	token := uuid.NewString()
	s.subs = append(s.subs, subscription[T]{token: token, fn: fn})
	return token
}

// Unsubscribe removes the subscription identified by token. Unknown or
// already-removed tokens are ignored, so repeated calls are harmless.
func (s *Stream[T]) Unsubscribe(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sub := range s.subs {
		if sub.token == token {
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			return
		}
	}
}

// Publish delivers v to every subscriber registered at the time of the
// call, in registration order. The subscriber list is snapshotted first, so
// callbacks are free to subscribe or unsubscribe without deadlocking, and a
// subscriber that unsubscribes while a delivery is in flight still receives
// that delivery.
func (s *Stream[T]) Publish(v T) {
	s.mu.RLock()
	subs := make([]subscription[T], len(s.subs))
	copy(subs, s.subs)
	s.mu.RUnlock()

	for _, sub := range subs {
		sub.fn(v)
	}
}

// Len reports the current number of subscribers.
func (s *Stream[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subs)
}
