/*
Package errs provides custom error types and application-level error code constants.

These error codes identify specific business or transport errors both internally
and in responses served through the local API.
*/
package errs

// 1xxx: General Request Handling Errors
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1001

	// ErrUnsupportedMediaType indicates that the request header Content-Type is not supported.
	ErrUnsupportedMediaType = 1002

	// ErrInvalidJSONFormat indicates that the request body JSON format is incorrect (e.g., syntax error).
	ErrInvalidJSONFormat = 1003

	// ErrExtraContentInBody indicates that the request body contained extra content after valid JSON data.
	ErrExtraContentInBody = 1004
)

// 2xxx: Lobby and Messaging Errors
const (
	// ErrMessageEmpty indicates that an outbound message had no text.
	ErrMessageEmpty = 2101

	// ErrMessageContentTooLong indicates that an outbound message exceeded the maximum length limit.
	ErrMessageContentTooLong = 2102

	// ErrUserNotFound indicates that no online user matches the requested nick.
	ErrUserNotFound = 2103

	// ErrSendRateExceeded indicates that outbound messages are being sent faster than the flood limit allows.
	ErrSendRateExceeded = 2104
)

// 3xxx: Transport and Session Errors
const (
	// ErrAlreadyConnected indicates that a connect was attempted while a session is already established.
	ErrAlreadyConnected = 3001

	// ErrNotConnected indicates that a send was attempted without an established session.
	ErrNotConnected = 3002

	// ErrConnectFailed indicates that the relay server could not be reached.
	ErrConnectFailed = 3003

	// ErrHandshakeFailed indicates that the connection details could not be delivered after dialing.
	ErrHandshakeFailed = 3004

	// ErrRelayError indicates an in-band error reported by the relay or the IRC server behind it.
	ErrRelayError = 3005
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified internal error.
	ErrUnknown = 5000
)
