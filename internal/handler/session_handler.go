/*
Package handler provides the HTTP handlers and routing setup for the local
lobby API.

This file contains the session lifecycle handlers. The login flow runs
outside this process; it posts the resulting connection details here, and the
daemon establishes (or tears down) the relay session on its behalf.
*/
package handler

import (
	"errors"
	"net/http"

	"poplobby/internal/app/session"
	"poplobby/internal/pkg/errs"
	"poplobby/internal/pkg/req"
	"poplobby/internal/pkg/resp"
)

// HandleGetSession reports whether a relay session is currently established.
func HandleGetSession(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := map[string]any{
			"connected":   deps.Session.IsConnected(),
			"currentUser": deps.Decoder.CurrentUser(),
		}
		resp.RespondSuccess(w, r, data)
	}
}

// HandleConnect accepts the connection details produced by the external login
// flow and establishes the relay session.
func HandleConnect(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var details session.ServerDetails
		if bindErr := req.BindJSON(r, &details); bindErr != nil {
			resp.RespondError(w, r, bindErr)
			return
		}

		if details.Username == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		// The decoder picks up the username and welcome text from the
		// session's connected event.
		if err := deps.Session.Connect(details); err != nil {
			resp.RespondError(w, r, asCustomError(err))
			return
		}

		resp.RespondSuccess(w, r, nil)
	}
}

// HandleDisconnect tears down the relay session. Idempotent.
func HandleDisconnect(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deps.Session.Disconnect()
		resp.RespondSuccess(w, r, nil)
	}
}

// asCustomError maps any error to a *errs.CustomError for the API response.
func asCustomError(err error) *errs.CustomError {
	var customErr *errs.CustomError
	if errors.As(err, &customErr) {
		return customErr
	}
	return errs.NewError(errs.ErrUnknown, err)
}
