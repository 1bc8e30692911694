/*
Package message contains the chat and system event model and the append-only
message log of a lobby session.

This file defines the Log: a strictly insertion-ordered record of messages
that republishes the full list to subscribers after every append or clear.
The log is unbounded; it is rebuilt from scratch each session.
*/
package message

import (
	"sync"
	"time"

	"poplobby/internal/pkg/pubsub"
)

// Log is the append-only ordered record of chat and system events.
type Log struct {
	// mu serializes appends and clears.
	mu sync.Mutex

	// messages holds the entries in insertion order.
	messages []Message

	// welcome is the lobby welcome text delivered with the connection details.
	welcome string

	// topic broadcasts the full ordered list after every mutation.
	topic *pubsub.Topic[[]Message]
}

// NewLog constructs an empty Log.
func NewLog() *Log {
	return &Log{
		topic: pubsub.NewTopic[[]Message](),
	}
}

// Subscribe registers fn for full-list broadcasts. Every emission is the
// entire ordered log, not a delta.
func (l *Log) Subscribe(fn func([]Message)) *pubsub.Subscription {
	return l.topic.Subscribe(fn)
}

// Append adds m to the end of the log and broadcasts. A zero Date is filled
// with the current time.
func (l *Log) Append(m Message) {
	if m.Date.IsZero() {
		m.Date = time.Now()
	}

	l.mu.Lock()
	l.messages = append(l.messages, m)
	snapshot := l.snapshotLocked()
	l.mu.Unlock()

	l.topic.Publish(snapshot)
}

// Messages returns a copy of the full ordered log.
func (l *Log) Messages() []Message {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshotLocked()
}

// Clear empties the log and broadcasts. Invoked on disconnect. The welcome
// message is left in place; it is replaced by the next connection.
func (l *Log) Clear() {
	l.mu.Lock()
	l.messages = nil
	l.mu.Unlock()

	l.topic.Publish([]Message{})
}

// SetWelcomeMessage stores the lobby welcome text.
func (l *Log) SetWelcomeMessage(text string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.welcome = text
}

// WelcomeMessage returns the lobby welcome text.
func (l *Log) WelcomeMessage() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.welcome
}

// snapshotLocked copies the current entries. Caller must hold mu.
func (l *Log) snapshotLocked() []Message {
	snapshot := make([]Message, len(l.messages))
	copy(snapshot, l.messages)
	return snapshot
}
