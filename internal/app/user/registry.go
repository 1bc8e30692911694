/*
Package user contains the canonical model of online lobby participants.

This file defines the Registry, the single owner of all user records for a
session. Structural mutations (add, remove, rename, presence updates) and
asynchronous profile enrichment all go through it, and every mutation
republishes a full snapshot of the current list to subscribers.
*/
package user

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"poplobby/internal/pkg/logx"
	"poplobby/internal/pkg/pubsub"
)

// Fetcher looks up the profile record for a plain nick. Implementations must
// be safe for concurrent use; the Registry calls them from short-lived
// goroutines.
type Fetcher interface {
	FetchProfile(ctx context.Context, nick string) (Profile, error)
}

// Registry is the canonical store of connected users, keyed by raw nick.
type Registry struct {
	// mu serializes every mutation. Enrichment completions re-enter through
	// the same lock, so frame processing and fetch callbacks never interleave
	// inside a mutation.
	mu sync.Mutex

	// users holds the records in insertion order. Raw nicks are unique here;
	// plain nicks are not.
	users []*User

	// nextSerial is the per-record token assigned at add time.
	nextSerial uint64

	// fetcher resolves profile enrichment; may be nil in tests.
	fetcher Fetcher

	// topic broadcasts full snapshots after every mutation.
	topic *pubsub.Topic[[]User]

	// structured logger with registry context.
	logger zerolog.Logger
}

// NewRegistry constructs an empty Registry that enriches new users through fetcher.
func NewRegistry(fetcher Fetcher) *Registry {
	return &Registry{
		nextSerial: 1,
		fetcher:    fetcher,
		topic:      pubsub.NewTopic[[]User](),
		logger:     logx.Logger().With().Str("component", "registry").Logger(),
	}
}

// Subscribe registers fn for full-list snapshots. Every emission is the entire
// current list, not a delta.
func (r *Registry) Subscribe(fn func([]User)) *pubsub.Subscription {
	return r.topic.Subscribe(fn)
}

// Add appends a user and starts its asynchronous profile fetch. When
// skipNotify is set the snapshot broadcast is suppressed (bulk roster
// ingestion calls Notify once afterwards); the enrichment fetch happens
// regardless.
func (r *Registry) Add(u User, skipNotify bool) {
	r.mu.Lock()
	rec := u
	rec.serial = r.nextSerial
	r.nextSerial++
	r.users = append(r.users, &rec)
	serial, nick := rec.serial, rec.Nick
	snapshot := r.snapshotLocked()
	r.mu.Unlock()

	if !skipNotify {
		r.topic.Publish(snapshot)
	}

	if r.fetcher != nil {
		go r.enrich(serial, nick)
	}
}

// enrich fetches the profile for nick and applies it to the record identified
// by serial. A record that was removed while the fetch was in flight is
// discarded; a record that was renamed still receives the profile, since the
// serial survives renames.
func (r *Registry) enrich(serial uint64, nick string) {
	profile, err := r.fetcher.FetchProfile(context.Background(), nick)
	if err != nil {
		r.logger.Warn().Err(err).Str("nick", nick).Msg("Profile fetch failed, keeping defaults")
		return
	}

	r.mu.Lock()
	var rec *User
	for _, u := range r.users {
		if u.serial == serial {
			rec = u
			break
		}
	}

	if rec == nil {
		r.mu.Unlock()
		r.logger.Debug().Str("nick", nick).Msg("Discarding profile for user removed during fetch")
		return
	}

	rec.Profile = profile
	snapshot := r.snapshotLocked()
	r.mu.Unlock()

	r.topic.Publish(snapshot)
}

// UpdateState overwrites all presence fields of the user with the given raw
// nick and broadcasts. Unknown raw nicks are silently dropped.
func (r *Registry) UpdateState(rawNick string, state State) {
	r.mu.Lock()
	rec := r.getLocked(rawNick)
	if rec == nil {
		r.mu.Unlock()
		r.logger.Debug().Str("raw_nick", rawNick).Msg("State update for unknown user ignored")
		return
	}

	rec.State = state
	snapshot := r.snapshotLocked()
	r.mu.Unlock()

	r.topic.Publish(snapshot)
}

// Rename replaces the raw nick of a user in place and broadcasts. The plain
// nick deliberately keeps tracking the nick the user joined with. No-op if
// the old raw nick is unknown.
func (r *Registry) Rename(oldRawNick, newRawNick string) {
	r.mu.Lock()
	rec := r.getLocked(oldRawNick)
	if rec == nil {
		r.mu.Unlock()
		return
	}

	rec.RawNick = newRawNick
	snapshot := r.snapshotLocked()
	r.mu.Unlock()

	r.topic.Publish(snapshot)
}

// Remove deletes the user with the given raw nick and broadcasts. No-op if
// the raw nick is unknown.
func (r *Registry) Remove(rawNick string) {
	r.mu.Lock()
	index := -1
	for i, u := range r.users {
		if u.RawNick == rawNick {
			index = i
			break
		}
	}

	if index < 0 {
		r.mu.Unlock()
		return
	}

	r.users = append(r.users[:index], r.users[index+1:]...)
	snapshot := r.snapshotLocked()
	r.mu.Unlock()

	r.topic.Publish(snapshot)
}

// GetByRawNick returns a copy of the user with the given raw nick.
func (r *Registry) GetByRawNick(rawNick string) (User, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec := r.getLocked(rawNick)
	if rec == nil {
		return User{}, false
	}
	return *rec, true
}

// GetAllByNick returns copies of every user sharing the given plain nick, in
// insertion order. The result is empty when nothing matches.
func (r *Registry) GetAllByNick(nick string) []User {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matches []User
	for _, u := range r.users {
		if u.Nick == nick {
			matches = append(matches, *u)
		}
	}
	return matches
}

// Snapshot returns a copy of the full current list in insertion order.
func (r *Registry) Snapshot() []User {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

// Notify broadcasts the current snapshot without mutating anything. Used after
// bulk adds with suppressed notifications.
func (r *Registry) Notify() {
	r.topic.Publish(r.Snapshot())
}

// Clear removes every user and broadcasts the empty list. Invoked on
// disconnect.
func (r *Registry) Clear() {
	r.mu.Lock()
	r.users = nil
	r.mu.Unlock()

	r.topic.Publish([]User{})
}

// getLocked finds the record with the given raw nick. Caller must hold mu.
func (r *Registry) getLocked(rawNick string) *User {
	for _, u := range r.users {
		if u.RawNick == rawNick {
			return u
		}
	}
	return nil
}

// snapshotLocked copies the current list. Caller must hold mu.
func (r *Registry) snapshotLocked() []User {
	snapshot := make([]User, len(r.users))
	for i, u := range r.users {
		snapshot[i] = *u
	}
	return snapshot
}
