/*
Package protocol translates raw relay frames into mutations of the user
registry and the message log.

This file implements the codec for the compact presence record carried in
$QTH control messages. The record is the last 7 characters of the message,
hex encoded:

	offset 0   (1 digit)  status
	offset 1-2 (1 byte)   capability flags
	offset 3   (1 digit)  hut index
	offset 4   (1 digit)  hut position
	offset 5-6 (1 byte)   game index

Fields decode independently; a malformed field becomes -1 (and its flags
false) without failing the rest of the record.
*/
package protocol

import (
	"fmt"
	"strconv"

	"poplobby/internal/app/user"
)

// presenceLen is the length of the encoded presence record.
const presenceLen = 7

// Capability flag bits within the presence flag byte.
const (
	flagBlueAlly = 1 << iota
	flagIsStreaming
	flagAllowsConferenceInvites
	flagAllowsSpectators
	flagHasHutRestrictions
	flagCanHost
)

// DecodePresence decodes the presence record from the last 7 characters of
// message; any leading text is ignored. It never fails: malformed hex yields
// -1 for the affected numeric field and false for flags derived from a
// malformed flag byte.
func DecodePresence(message string) user.State {
	encoded := message
	if len(encoded) > presenceLen {
		encoded = encoded[len(encoded)-presenceLen:]
	}

	flags := hexField(encoded, 1, 3)

	state := user.State{
		Status:      hexField(encoded, 0, 1),
		HutIndex:    hexField(encoded, 3, 4),
		HutPosition: hexField(encoded, 4, 5),
		GameIndex:   hexField(encoded, 5, 7),
	}

	if flags >= 0 {
		state.BlueAlly = flags&flagBlueAlly != 0
		state.IsStreaming = flags&flagIsStreaming != 0
		state.AllowsConferenceInvites = flags&flagAllowsConferenceInvites != 0
		state.AllowsSpectators = flags&flagAllowsSpectators != 0
		state.HasHutRestrictions = flags&flagHasHutRestrictions != 0
		state.CanHost = flags&flagCanHost != 0
	}

	return state
}

// EncodePresence renders state as the 7-character hex presence record.
// Numeric fields are masked to their wire width.
func EncodePresence(state user.State) string {
	var flags int
	if state.BlueAlly {
		flags |= flagBlueAlly
	}
	if state.IsStreaming {
		flags |= flagIsStreaming
	}
	if state.AllowsConferenceInvites {
		flags |= flagAllowsConferenceInvites
	}
	if state.AllowsSpectators {
		flags |= flagAllowsSpectators
	}
	if state.HasHutRestrictions {
		flags |= flagHasHutRestrictions
	}
	if state.CanHost {
		flags |= flagCanHost
	}

	return fmt.Sprintf("%01x%02x%01x%01x%02x",
		state.Status&0xf,
		flags&0xff,
		state.HutIndex&0xf,
		state.HutPosition&0xf,
		state.GameIndex&0xff,
	)
}

// hexField parses encoded[start:end] as hexadecimal, returning -1 when the
// range is out of bounds or not valid hex.
func hexField(encoded string, start, end int) int {
	if start >= len(encoded) || end > len(encoded) {
		return -1
	}

	value, err := strconv.ParseUint(encoded[start:end], 16, 16)
	if err != nil {
		return -1
	}

	return int(value)
}
