/*
Package message contains the chat and system event model and the append-only
message log of a lobby session.

This file defines the Message struct and its type vocabulary. Messages are
immutable once appended.
*/
package message

import "time"

// Type classifies a message entry.
type Type string

const (
	// TypeChat is plain channel chat from another user.
	TypeChat Type = "CHAT"

	// TypeOwnChat is channel chat sent by this client.
	TypeOwnChat Type = "OWN_CHAT"

	// TypePrivate is a private message received by this client.
	TypePrivate Type = "PVT"

	// TypeOwnPrivate is a private message sent by this client.
	TypeOwnPrivate Type = "OWN_PVT"

	// TypeJoin is a channel join notice.
	TypeJoin Type = "JOIN"

	// TypeQuit is a channel quit notice.
	TypeQuit Type = "QUIT"

	// TypeError is an in-band protocol error reported by the server.
	TypeError Type = "ERROR"
)

// Text suffixes rendered after the author of join and quit notices.
const (
	JoinSuffix = "in"
	QuitSuffix = "out"
)

// Message is one chat or system event.
type Message struct {
	// Text is the message body, empty for join/quit notices.
	Text string `json:"text,omitempty"`

	// TextSuffix trails the author for join/quit notices ("in"/"out").
	TextSuffix string `json:"textSuffix,omitempty"`

	// Author is the raw nick of the sender, empty for server errors.
	Author string `json:"author,omitempty"`

	// Receiver is the raw nick a private message was sent to.
	Receiver string `json:"receiver,omitempty"`

	// Type classifies the entry.
	Type Type `json:"type"`

	// Date is the capture time; the Log fills it at append time when unset.
	Date time.Time `json:"date"`
}
