/*
Package protocol translates raw relay frames into mutations of the user
registry and the message log.

This file defines the Decoder: classification of incoming frames by command,
routing of channel and private text (including the reserved control
prefixes), join/quit/nick bookkeeping, and the one-shot handling of the
initial name-list reply. Decode anomalies never cross frame boundaries; a bad
frame is dropped and the next one is processed normally.
*/
package protocol

import (
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"poplobby/internal/app/message"
	"poplobby/internal/app/session"
	"poplobby/internal/app/user"
	"poplobby/internal/pkg/errs"
	"poplobby/internal/pkg/logx"
	"poplobby/internal/pkg/pubsub"
)

// IRC commands and replies understood by this client.
const (
	commandTypeNormal = "normal"
	commandTypeReply  = "reply"

	cmdPrivMsg = "PRIVMSG"
	cmdJoin    = "JOIN"
	cmdQuit    = "QUIT"
	cmdNick    = "NICK"
	cmdError   = "ERROR"

	replyNames = "rpl_namreply"
)

// Reserved control prefixes intercepted before generic text handling. The
// first three carry settings and command chatter this client does not render;
// $QTH carries the presence record.
const (
	prefixHutSettings = "$hut"
	prefixMapSettings = "$map"
	prefixCommand     = "$cmd"
	prefixPresence    = "$QTH"
)

// nickPrefixLen is the length of the mandatory compatibility prefix carried
// by every raw nick.
const nickPrefixLen = 4

// FilterNick strips the compatibility prefix from a raw nick. A nick no
// longer than the prefix filters to the empty string.
func FilterNick(rawNick string) string {
	if len(rawNick) <= nickPrefixLen {
		return ""
	}
	return rawNick[nickPrefixLen:]
}

// Decoder consumes raw frames from the session and applies them to the user
// registry and the message log.
type Decoder struct {
	session  *session.Session
	registry *user.Registry
	log      *message.Log

	// channel is the lobby channel this client follows.
	channel string

	// mu protects the per-session decoder state below.
	mu sync.Mutex

	// currentNick is the plain nick of the local user, set by the login flow
	// and unset on disconnect.
	currentNick string

	// receivedNameReply marks that the initial name-list reply was processed.
	// Joins are ignored until then, so the bulk roster is never replayed as a
	// stream of joins.
	receivedNameReply bool

	subscriptions []*pubsub.Subscription

	// structured logger with decoder context.
	logger zerolog.Logger
}

// NewDecoder constructs a Decoder wired to the session's raw-frame and
// disconnect streams.
func NewDecoder(sess *session.Session, registry *user.Registry, log *message.Log, channel string) *Decoder {
	d := &Decoder{
		session:  sess,
		registry: registry,
		log:      log,
		channel:  channel,
		logger:   logx.Logger().With().Str("component", "decoder").Logger(),
	}

	d.subscriptions = append(d.subscriptions,
		sess.OnConnected(d.handleConnected),
		sess.OnRawFrame(d.HandleFrame),
		sess.OnDisconnect(d.handleDisconnect),
	)

	return d
}

// handleConnected primes the per-session state from the new connection's
// details. The session publishes this before its read pump starts, so the
// local nick is in place before the first frame can arrive.
func (d *Decoder) handleConnected(details session.ServerDetails) {
	d.SetCurrentUser(details.Username)
	d.log.SetWelcomeMessage(details.WelcomeMsg)
}

// SetCurrentUser records the plain nick of the local user. Normally fed by
// the session's connected event; private messages and the name-list reply are
// only accepted when addressed to this nick.
func (d *Decoder) SetCurrentUser(nick string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.currentNick = nick
}

// Close cancels the decoder's session subscriptions.
func (d *Decoder) Close() {
	for _, sub := range d.subscriptions {
		sub.Cancel()
	}
}

// handleDisconnect resets the per-session state and clears the registry and
// the log, so a name-list reply after a reconnect is processed as an initial
// roster again.
func (d *Decoder) handleDisconnect(reason string) {
	d.mu.Lock()
	d.receivedNameReply = false
	d.currentNick = ""
	d.mu.Unlock()

	d.registry.Clear()
	d.log.Clear()

	d.logger.Info().Str("reason", reason).Msg("Session state reset after disconnect")
}

// HandleFrame classifies one raw frame and applies it. Unknown commands and
// malformed frames are dropped silently.
func (d *Decoder) HandleFrame(frame session.RawFrame) {
	switch frame.CommandType {
	case commandTypeNormal:
		switch frame.Command {
		case cmdPrivMsg:
			d.handlePrivMsg(frame)
		case cmdJoin:
			d.handleJoin(frame)
		case cmdQuit:
			d.handleQuit(frame)
		case cmdNick:
			d.handleNick(frame)
		case cmdError:
			d.handleError(frame)
		}

	case commandTypeReply:
		if frame.Command == replyNames {
			d.handleNameReply(frame)
		}
	}
}

// handlePrivMsg routes channel and private text. Only frames addressed to the
// lobby channel or to the local user are processed; the reserved control
// prefixes are intercepted before generic text handling.
func (d *Decoder) handlePrivMsg(frame session.RawFrame) {
	if len(frame.Args) < 2 {
		return
	}

	target := frame.Args[0]
	text := frame.Args[1]

	current := d.CurrentUser()
	toChannel := target == d.channel
	toSelf := current != "" && FilterNick(target) == current

	if !toChannel && !toSelf {
		return
	}

	switch {
	case strings.HasPrefix(text, prefixHutSettings),
		strings.HasPrefix(text, prefixMapSettings),
		strings.HasPrefix(text, prefixCommand):
		// Settings and command chatter this client does not render.

	case strings.HasPrefix(text, prefixPresence):
		d.registry.UpdateState(frame.Nick, DecodePresence(text))

	case text != "":
		if toChannel {
			d.log.Append(message.Message{
				Type:   message.TypeChat,
				Text:   text,
				Author: frame.Nick,
			})
		} else {
			d.log.Append(message.Message{
				Type:   message.TypePrivate,
				Text:   text,
				Author: frame.Nick,
			})
		}
	}
}

// handleJoin adds the joining user and records a join notice. Joins are only
// processed once the initial roster has been received.
func (d *Decoder) handleJoin(frame session.RawFrame) {
	d.mu.Lock()
	ready := d.receivedNameReply
	d.mu.Unlock()

	if !ready {
		return
	}

	d.registry.Add(user.New(frame.Nick, FilterNick(frame.Nick)), false)

	d.log.Append(message.Message{
		Type:       message.TypeJoin,
		TextSuffix: message.JoinSuffix,
		Author:     frame.Nick,
	})
}

// handleQuit removes the quitting user (a no-op for unknown nicks) and
// records a quit notice.
func (d *Decoder) handleQuit(frame session.RawFrame) {
	d.registry.Remove(frame.Nick)

	d.log.Append(message.Message{
		Type:       message.TypeQuit,
		TextSuffix: message.QuitSuffix,
		Author:     frame.Nick,
	})
}

// handleNick renames the user's raw nick in place. The plain nick keeps
// tracking the nick at join time.
func (d *Decoder) handleNick(frame session.RawFrame) {
	if len(frame.Args) < 1 {
		return
	}
	d.registry.Rename(frame.Nick, frame.Args[0])
}

// handleError records the in-band protocol error and surfaces it on the
// session's transport error stream.
func (d *Decoder) handleError(frame session.RawFrame) {
	var text string
	if len(frame.Args) > 0 {
		text = frame.Args[0]
	}

	d.log.Append(message.Message{
		Type: message.TypeError,
		Text: text,
	})

	d.session.NotifyError(errs.NewError(errs.ErrRelayError, text))
}

// handleNameReply ingests the initial roster. The reply must be addressed to
// the local user and scoped to the lobby channel. Tokens no longer than the
// compatibility prefix are dropped; additions are batched behind a single
// trailing notification.
func (d *Decoder) handleNameReply(frame session.RawFrame) {
	if len(frame.Args) < 4 {
		return
	}

	current := d.CurrentUser()
	if current == "" || FilterNick(frame.Args[0]) != current || frame.Args[2] != d.channel {
		return
	}

	names := strings.Split(frame.Args[3], " ")
	added := 0
	for _, rawNick := range names {
		// A token is only a valid nick beyond the mandatory prefix.
		if len(rawNick) > nickPrefixLen {
			d.registry.Add(user.New(rawNick, FilterNick(rawNick)), true)
			added++
		}
	}

	d.registry.Notify()

	d.mu.Lock()
	d.receivedNameReply = true
	d.mu.Unlock()

	d.logger.Info().Int("users", added).Msg("Initial roster received")
}

// CurrentUser returns the plain nick of the local user, empty while unset.
func (d *Decoder) CurrentUser() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.currentNick
}

// HasReceivedRoster reports whether the initial name-list reply was processed
// for the current session.
func (d *Decoder) HasReceivedRoster() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.receivedNameReply
}
