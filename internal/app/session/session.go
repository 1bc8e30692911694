/*
Package session owns the websocket connection to the relay server.

This file defines the Session struct: dialing, the connection details
handshake, the read pump decoding relay envelopes, fire-and-forget public and
private sends with flood limiting, and the four event streams consumers
subscribe to (connected, raw frame, transport error, disconnected). A session
never reconnects by itself; after a failure the caller must issue a new
Connect.
*/
package session

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"poplobby/internal/pkg/errs"
	"poplobby/internal/pkg/logx"
	"poplobby/internal/pkg/pubsub"
)

const (
	// timeout for the initial websocket handshake when dialing the relay.
	dialTimeout = 10 * time.Second

	// timeout duration for writing to the websocket connection.
	writeWait = 10 * time.Second

	// maximum time allowed between relay pings before the connection is
	// considered dead.
	pongWait = 60 * time.Second

	// maximum allowed size (in bytes) of a relay message.
	maxMessageSize = 8192

	// disconnect reason reported when the client closed the connection itself.
	reasonClientDisconnect = "io client disconnect"
)

// Session owns the single socket connection to the relay server.
type Session struct {
	// relayURL is the websocket address of the relay.
	relayURL string

	// limiter throttles outbound sends to stay under the IRC flood limit.
	limiter *rate.Limiter

	// connMu serializes connection state changes and writes. Gorilla allows
	// one concurrent reader and one concurrent writer; the read pump never
	// takes this lock.
	connMu sync.Mutex

	// conn is the active connection, nil while disconnected.
	conn *websocket.Conn

	// pumpDone is closed once the read pump of the most recent connection has
	// exited and its disconnect event has been delivered. Disconnect and
	// Connect wait on it so consumer cleanup is complete before either returns.
	pumpDone chan struct{}

	// details are the connection parameters of the current session.
	details ServerDetails

	// clientClosed marks that the current connection is being torn down by a
	// local Disconnect, so the read pump reports the client reason.
	clientClosed bool

	// event streams.
	connectedTopic  *pubsub.Topic[ServerDetails]
	rawTopic        *pubsub.Topic[RawFrame]
	errorTopic      *pubsub.Topic[error]
	disconnectTopic *pubsub.Topic[string]

	// structured logger with session context.
	logger zerolog.Logger
}

// New constructs a disconnected Session for the given relay address.
// sendRate and sendBurst bound the outbound message rate.
func New(relayURL string, sendRate float64, sendBurst int) *Session {
	return &Session{
		relayURL:        relayURL,
		limiter:         rate.NewLimiter(rate.Limit(sendRate), sendBurst),
		connectedTopic:  pubsub.NewTopic[ServerDetails](),
		rawTopic:        pubsub.NewTopic[RawFrame](),
		errorTopic:      pubsub.NewTopic[error](),
		disconnectTopic: pubsub.NewTopic[string](),
		logger:          logx.Logger().With().Str("component", "session").Logger(),
	}
}

// Connect dials the relay, sends the connection details handshake, and starts
// the read pump. It opens exactly one connection per call and rejects the
// call with ErrAlreadyConnected while a connection is established. A previous
// connection still mid-teardown is waited out first, so the new session can
// never observe the old one's disconnect cleanup. Dial and handshake failures
// are both returned and published on the error stream.
func (s *Session) Connect(details ServerDetails) error {
	s.connMu.Lock()
	if s.conn != nil {
		s.connMu.Unlock()
		return errs.NewError(errs.ErrAlreadyConnected)
	}
	prevDone := s.pumpDone
	s.connMu.Unlock()

	if prevDone != nil {
		<-prevDone
	}

	s.connMu.Lock()

	if s.conn != nil {
		s.connMu.Unlock()
		return errs.NewError(errs.ErrAlreadyConnected)
	}

	sessionID := uuid.NewString()
	logger := s.logger.With().Str("session_id", sessionID).Logger()

	dialer := websocket.Dialer{HandshakeTimeout: dialTimeout}
	conn, _, err := dialer.Dial(s.relayURL, nil)
	if err != nil {
		s.connMu.Unlock()
		logger.Warn().Err(err).Str("relay_url", s.relayURL).Msg("Relay dial failed")

		connectErr := fmt.Errorf("dial relay: %w", err)
		s.errorTopic.Publish(connectErr)
		return errs.NewError(errs.ErrConnectFailed)
	}

	if err := writeEnvelope(conn, eventDetails, details); err != nil {
		conn.Close()
		s.connMu.Unlock()
		logger.Error().Err(err).Msg("Failed to send connection details handshake")

		handshakeErr := fmt.Errorf("send connection details: %w", err)
		s.errorTopic.Publish(handshakeErr)
		return errs.NewError(errs.ErrHandshakeFailed)
	}

	done := make(chan struct{})
	s.conn = conn
	s.details = details
	s.clientClosed = false
	s.pumpDone = done
	s.connMu.Unlock()

	logger.Info().Str("relay_url", s.relayURL).Msg("Connected to relay")

	// Published before the pump starts, so consumers prime their per-session
	// state before the first frame can arrive.
	s.connectedTopic.Publish(details)

	go s.readPump(conn, done, logger)

	return nil
}

// readPump reads relay envelopes until the connection dies, publishing raw
// frames and in-band errors. On exit it clears the connection state,
// publishes the disconnect reason, and closes done once every disconnect
// subscriber has run.
func (s *Session) readPump(conn *websocket.Conn, done chan struct{}, logger zerolog.Logger) {
	conn.SetReadLimit(maxMessageSize)

	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		logger.Error().Err(err).Msg("Failed to set read deadline")
	}

	conn.SetPingHandler(func(appData string) error {
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			return err
		}
		return conn.WriteControl(websocket.PongMessage, []byte(appData), time.Now().Add(writeWait))
	})

	var readErr error
	for {
		_, messageBytes, err := conn.ReadMessage()
		if err != nil {
			readErr = err
			break
		}

		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			logger.Error().Err(err).Msg("Failed to reset read deadline")
		}

		s.handleEnvelope(messageBytes, logger)
	}

	s.connMu.Lock()
	clientClosed := s.clientClosed
	if s.conn == conn {
		s.conn = nil
	}
	s.connMu.Unlock()

	conn.Close()

	reason := reasonClientDisconnect
	if !clientClosed {
		reason = readErr.Error()
		logger.Info().Err(readErr).Msg("Relay connection lost")
	} else {
		logger.Info().Msg("Relay connection closed by client")
	}

	s.disconnectTopic.Publish(reason)
	close(done)
}

// handleEnvelope decodes one relay message and routes it to the matching
// event stream. Malformed envelopes are logged and dropped so one bad message
// never stops the stream.
func (s *Session) handleEnvelope(messageBytes []byte, logger zerolog.Logger) {
	var env envelope
	if err := json.Unmarshal(messageBytes, &env); err != nil {
		logger.Warn().Err(err).Bytes("message_bytes", messageBytes).Msg("Relay sent invalid JSON")
		return
	}

	switch env.Event {
	case eventRaw:
		var frame RawFrame
		if err := json.Unmarshal(env.Data, &frame); err != nil {
			logger.Warn().Err(err).Msg("Relay sent invalid raw frame payload")
			return
		}
		s.rawTopic.Publish(frame)

	case eventIRCError:
		var text string
		if err := json.Unmarshal(env.Data, &text); err != nil {
			text = string(env.Data)
		}
		s.errorTopic.Publish(errs.NewError(errs.ErrRelayError, text))

	default:
		logger.Debug().Str("event", env.Event).Msg("Ignoring unsupported relay event")
	}
}

// SendPublic sends a public message to the lobby channel. Fire-and-forget: no
// delivery acknowledgment. Rejected while disconnected or over the flood
// limit.
func (s *Session) SendPublic(text string) error {
	return s.send(eventChannel, publicPayload{Text: text})
}

// SendPrivate sends a private message to one raw nick. Fire-and-forget.
// Rejected while disconnected or over the flood limit.
func (s *Session) SendPrivate(rawNick, text string) error {
	return s.send(eventPrivate, privatePayload{User: rawNick, Text: text})
}

// send writes one outbound envelope under the connection lock.
func (s *Session) send(event string, payload any) error {
	s.connMu.Lock()
	defer s.connMu.Unlock()

	if s.conn == nil {
		return errs.NewError(errs.ErrNotConnected)
	}

	if !s.limiter.Allow() {
		s.logger.Warn().Str("event", event).Msg("Outbound message dropped by flood limiter")
		return errs.NewError(errs.ErrSendRateExceeded)
	}

	if err := writeEnvelope(s.conn, event, payload); err != nil {
		s.logger.Error().Err(err).Str("event", event).Msg("Failed to write outbound message")
		return err
	}

	return nil
}

// Disconnect closes the connection and blocks until the read pump has
// delivered the disconnect event, so session-scoped cleanup is complete when
// it returns. Idempotent; safe to call while already disconnected or never
// connected.
func (s *Session) Disconnect() {
	s.connMu.Lock()
	done := s.pumpDone

	if s.conn == nil {
		s.connMu.Unlock()
		// A connection lost to the server may still be mid-teardown.
		if done != nil {
			<-done
		}
		return
	}

	s.clientClosed = true

	closeMessage := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	if err := s.conn.WriteControl(websocket.CloseMessage, closeMessage, time.Now().Add(writeWait)); err != nil {
		s.logger.Debug().Err(err).Msg("Failed to send close message")
	}

	s.conn.Close()
	s.conn = nil
	s.connMu.Unlock()

	<-done
}

// NotifyError publishes err on the transport error stream. Used by the
// decoder to surface in-band ERROR frames alongside transport failures.
func (s *Session) NotifyError(err error) {
	s.errorTopic.Publish(err)
}

// Details returns the connection parameters of the current or most recent
// session.
func (s *Session) Details() ServerDetails {
	s.connMu.Lock()
	defer s.connMu.Unlock()
	return s.details
}

// IsConnected reports whether a connection is currently established.
func (s *Session) IsConnected() bool {
	s.connMu.Lock()
	defer s.connMu.Unlock()
	return s.conn != nil
}

// OnConnected subscribes fn to successful connection establishments; fn
// receives the connection details of the new session.
func (s *Session) OnConnected(fn func(ServerDetails)) *pubsub.Subscription {
	return s.connectedTopic.Subscribe(fn)
}

// OnRawFrame subscribes fn to raw frames forwarded by the relay.
func (s *Session) OnRawFrame(fn func(RawFrame)) *pubsub.Subscription {
	return s.rawTopic.Subscribe(fn)
}

// OnError subscribes fn to transport errors: dial failures, handshake
// failures, and in-band error frames are all normalized onto this stream.
func (s *Session) OnError(fn func(error)) *pubsub.Subscription {
	return s.errorTopic.Subscribe(fn)
}

// OnDisconnect subscribes fn to connection teardowns with their reason.
func (s *Session) OnDisconnect(fn func(string)) *pubsub.Subscription {
	return s.disconnectTopic.Subscribe(fn)
}

// writeEnvelope marshals and writes one envelope with a write deadline.
func writeEnvelope(conn *websocket.Conn, event string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", event, err)
	}

	messageBytes, err := json.Marshal(envelope{Event: event, Data: data})
	if err != nil {
		return fmt.Errorf("marshal %s envelope: %w", event, err)
	}

	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}

	return conn.WriteMessage(websocket.TextMessage, messageBytes)
}
