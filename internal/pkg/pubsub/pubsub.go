/*
Package pubsub provides small in-process broadcast topics.

A Topic fans a published value out to every current subscriber. There is no
replay: a subscriber only observes values published after it subscribed.
Multiple subscribers are allowed and each subscription can be canceled
independently.
*/
package pubsub

import "sync"

// Topic is a broadcast channel for values of type T.
type Topic[T any] struct {
	// mu protects concurrent access to the subscribers map.
	mu sync.Mutex

	// nextID is the identifier assigned to the next subscription.
	nextID int

	// subscribers maps subscription ids to their handler functions.
	subscribers map[int]func(T)
}

// Subscription represents one active registration on a Topic.
type Subscription struct {
	cancel   func()
	cancelMu sync.Mutex
}

// Cancel removes the subscription from its topic. It is safe to call more
// than once.
func (s *Subscription) Cancel() {
	s.cancelMu.Lock()
	defer s.cancelMu.Unlock()

	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// NewTopic constructs and returns an empty Topic.
func NewTopic[T any]() *Topic[T] {
	return &Topic[T]{
		subscribers: make(map[int]func(T)),
	}
}

// Subscribe registers fn to be invoked for every subsequently published value
// and returns the cancelable Subscription.
func (t *Topic[T]) Subscribe(fn func(T)) *Subscription {
	t.mu.Lock()
	id := t.nextID
	t.nextID++
	t.subscribers[id] = fn
	t.mu.Unlock()

	return &Subscription{
		cancel: func() {
			t.mu.Lock()
			delete(t.subscribers, id)
			t.mu.Unlock()
		},
	}
}

// Publish delivers v to every current subscriber. Handlers run synchronously
// on the caller's goroutine, outside the topic lock, so a handler may
// subscribe or cancel without deadlocking.
func (t *Topic[T]) Publish(v T) {
	t.mu.Lock()
	handlers := make([]func(T), 0, len(t.subscribers))
	for _, fn := range t.subscribers {
		handlers = append(handlers, fn)
	}
	t.mu.Unlock()

	for _, fn := range handlers {
		fn(v)
	}
}
