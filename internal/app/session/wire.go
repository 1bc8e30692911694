/*
Package session owns the websocket connection to the relay server.

This file defines the wire format spoken with the relay. Every websocket text
message is one JSON envelope carrying an event name and a payload; the event
vocabulary mirrors the relay's socket contract.
*/
package session

import "encoding/json"

// Relay event names.
const (
	// eventDetails carries the connection details handshake, sent once
	// immediately after the websocket is established.
	eventDetails = "ircDetails"

	// eventChannel carries an outbound public message to the lobby channel.
	eventChannel = "channel"

	// eventPrivate carries an outbound private message to one raw nick.
	eventPrivate = "private"

	// eventRaw carries one parsed IRC line from the server; it can be anything.
	eventRaw = "raw"

	// eventIRCError carries an in-band error reported by the IRC server.
	eventIRCError = "irc_error"
)

// envelope is the framing of every message exchanged with the relay.
type envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// RawFrame is one parsed IRC line forwarded by the relay.
type RawFrame struct {
	// CommandType is "normal" for commands and "reply" for numeric replies.
	CommandType string `json:"commandType"`

	// Command is the IRC command or reply name (e.g. "PRIVMSG", "rpl_namreply").
	Command string `json:"command"`

	// Nick is the raw nick of the originating user, when the line has one.
	Nick string `json:"nick"`

	// Args are the command arguments in wire order.
	Args []string `json:"args"`
}

// ServerDetails are the connection parameters produced by the external login
// flow. The session forwards them verbatim in the handshake; only Username
// and WelcomeMsg are ever read by this client.
type ServerDetails struct {
	// Username is the account name assigned by the login flow.
	Username string `json:"username"`

	// Password is the credential forwarded to the IRC server.
	Password string `json:"password,omitempty"`

	// WelcomeMsg is the lobby welcome text returned by the login flow.
	WelcomeMsg string `json:"welcomeMsg,omitempty"`
}

// publicPayload is the body of an outbound channel message.
type publicPayload struct {
	Text string `json:"text"`
}

// privatePayload is the body of an outbound private message.
type privatePayload struct {
	User string `json:"user"`
	Text string `json:"text"`
}
