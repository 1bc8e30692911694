/*
Package errs provides custom error types and application-level error code constants.

This file defines the map from error codes to the CustomError struct, used to
standardize API responses and internal error handling.
*/
package errs

import "net/http"

// errorMap stores the detailed CustomError struct corresponding to every application error code.
// The key is the error code (int), and the value contains the user message and HTTP status code.
var errorMap = map[int]CustomError{
	// 1xxx: General Request Handling Errors
	ErrInvalidParams:        {Code: ErrInvalidParams, Message: "Invalid request parameters.", Status: http.StatusBadRequest},
	ErrUnsupportedMediaType: {Code: ErrUnsupportedMediaType, Message: "Unsupported request format.", Status: http.StatusUnsupportedMediaType},
	ErrInvalidJSONFormat:    {Code: ErrInvalidJSONFormat, Message: "Unsupported request format.", Status: http.StatusBadRequest},
	ErrExtraContentInBody:   {Code: ErrExtraContentInBody, Message: "Request contains unexpected data.", Status: http.StatusBadRequest},

	// 2xxx: Lobby and Messaging Errors
	ErrMessageEmpty:          {Code: ErrMessageEmpty, Message: "Message text is required.", Status: http.StatusBadRequest},
	ErrMessageContentTooLong: {Code: ErrMessageContentTooLong, Message: "Message is too long.", Status: http.StatusBadRequest},
	ErrUserNotFound:          {Code: ErrUserNotFound, Message: "No online user matches nick %q.", Status: http.StatusNotFound},
	ErrSendRateExceeded:      {Code: ErrSendRateExceeded, Message: "Sending too fast. Please wait a moment.", Status: http.StatusTooManyRequests},

	// 3xxx: Transport and Session Errors
	ErrAlreadyConnected: {Code: ErrAlreadyConnected, Message: "A lobby session is already established.", Status: http.StatusConflict},
	ErrNotConnected:     {Code: ErrNotConnected, Message: "Not connected to the lobby.", Status: http.StatusConflict},
	ErrConnectFailed:    {Code: ErrConnectFailed, Message: "Could not connect to the lobby server.", Status: http.StatusBadGateway},
	ErrHandshakeFailed:  {Code: ErrHandshakeFailed, Message: "Connection to the lobby server was lost during setup.", Status: http.StatusBadGateway},
	ErrRelayError:       {Code: ErrRelayError, Message: "Lobby server error: %s", Status: http.StatusBadGateway},

	// 5xxx: Internal System Errors
	ErrUnknown: {Code: ErrUnknown, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
}
