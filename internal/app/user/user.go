/*
Package user contains the canonical model of online lobby participants.

This file defines the User struct and its presence and profile sub-records.
A user is identified on the wire by its raw nick, which carries a mandatory
4-character compatibility prefix; the plain nick (prefix stripped) is the
stable key used for profile lookups and message routing. Plain nicks are not
unique: several bridged sessions of one logical user may share a nick.
*/
package user

// GradeUnknown is the grade value of a user whose profile has not been
// resolved yet.
const GradeUnknown = "-1"

// State holds the decoded presence record of a user: where they are in the
// lobby and the capability flags carried by the $QTH control message.
// Numeric fields are -1 when the corresponding wire field was malformed.
type State struct {
	// Status is the small integer status enum (see the view package constants).
	Status int `json:"status"`

	// HutIndex is the hut the user sits in, 0 when not in a hut.
	HutIndex int `json:"hutIndex"`

	// HutPosition is the seat within the hut (0-3).
	HutPosition int `json:"hutPosition"`

	// GameIndex is the game the user is in, 0 for the lobby.
	GameIndex int `json:"gameIndex"`

	// BlueAlly reports whether the user allies with the blue team.
	BlueAlly bool `json:"blueAlly"`

	// IsStreaming reports whether the user is streaming.
	IsStreaming bool `json:"isStreaming"`

	// AllowsConferenceInvites reports whether the user accepts conference invites.
	AllowsConferenceInvites bool `json:"allowsConferenceInvites"`

	// AllowsSpectators reports whether the user's games may be spectated.
	AllowsSpectators bool `json:"allowsSpectators"`

	// HasHutRestrictions reports whether the user's hut has join restrictions.
	HasHutRestrictions bool `json:"hasHutRestrictions"`

	// CanHost reports whether the user can host games.
	CanHost bool `json:"canHost"`
}

// Profile holds the asynchronously fetched account data of a user. The JSON
// tags match the profile API response, so the record passes through the local
// API unchanged.
type Profile struct {
	// ID is the numeric account id.
	ID int `json:"user-id"`

	// OldNames lists previous nicks of the account.
	OldNames []string `json:"old-names"`

	// Clans lists the clan memberships as returned by the profile API.
	Clans []map[string]any `json:"clans"`

	// Rank is the ladder rank.
	Rank int `json:"rank"`

	// Points is the ladder points total.
	Points int `json:"points"`

	// Grade is the account grade; GradeUnknown until the profile resolves.
	Grade string `json:"grade"`

	// Mu and Sigma are the skill rating mean and deviation.
	Mu    float64 `json:"mu"`
	Sigma float64 `json:"sigma"`

	// Twitch is the streaming platform handle, if any.
	Twitch string `json:"twitch"`
}

// User represents one online lobby participant.
type User struct {
	// serial is assigned by the Registry when the user is added and never
	// reused within a session. Enrichment completions compare it against the
	// current registry contents to detect that the record was removed while
	// the fetch was in flight.
	serial uint64

	// RawNick is the protocol-level nick including the compatibility prefix.
	RawNick string `json:"rawNick"`

	// Nick is the raw nick with the compatibility prefix stripped.
	Nick string `json:"nick"`

	State
	Profile
}

// New constructs a User from its raw and plain nick with an unresolved profile.
func New(rawNick, nick string) User {
	return User{
		RawNick: rawNick,
		Nick:    nick,
		Profile: Profile{Grade: GradeUnknown},
	}
}
