/*
Package handler provides the HTTP handlers and routing setup for the local
lobby API.

This file contains the read handlers serving registry and log snapshots (and
the derived hut/game views) plus the send handlers. A private send fans out
to every bridged session sharing the target nick.
*/
package handler

import (
	"net/http"

	"poplobby/internal/app/message"
	"poplobby/internal/app/view"
	"poplobby/internal/pkg/errs"
	"poplobby/internal/pkg/req"
	"poplobby/internal/pkg/resp"
)

// MaxMessageBytes is the maximum allowed size of outbound message text.
const MaxMessageBytes = 512

// HandleListUsers serves the full current user list.
func HandleListUsers(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp.RespondSuccess(w, r, deps.Registry.Snapshot())
	}
}

// HandleListHuts serves the hut occupancy derived from the current snapshot.
func HandleListHuts(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp.RespondSuccess(w, r, view.GroupHuts(deps.Registry.Snapshot()))
	}
}

// HandleListGames serves the game rosters and waiting list derived from the
// current snapshot.
func HandleListGames(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp.RespondSuccess(w, r, view.GroupGames(deps.Registry.Snapshot()))
	}
}

// HandleListMessages serves the ordered message log and the lobby welcome text.
func HandleListMessages(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := map[string]any{
			"welcome":  deps.Log.WelcomeMessage(),
			"messages": deps.Log.Messages(),
		}
		resp.RespondSuccess(w, r, data)
	}
}

// HandleSendPublic sends a public message to the lobby channel and echoes it
// into the log as the client's own chat entry.
func HandleSendPublic(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Text string `json:"text"`
		}
		if bindErr := req.BindJSON(r, &body); bindErr != nil {
			resp.RespondError(w, r, bindErr)
			return
		}

		if customErr := validateText(body.Text); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if err := deps.Session.SendPublic(body.Text); err != nil {
			resp.RespondError(w, r, asCustomError(err))
			return
		}

		deps.Log.Append(message.Message{
			Type:   message.TypeOwnChat,
			Text:   body.Text,
			Author: deps.Config.UsernamePrefix + deps.Session.Details().Username,
		})

		resp.RespondSuccess(w, r, nil)
	}
}

// HandleSendPrivate sends a private message to every online session sharing
// the target nick and echoes one own-private entry into the log.
func HandleSendPrivate(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Nick string `json:"nick"`
			Text string `json:"text"`
		}
		if bindErr := req.BindJSON(r, &body); bindErr != nil {
			resp.RespondError(w, r, bindErr)
			return
		}

		if customErr := validateText(body.Text); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		targets := deps.Registry.GetAllByNick(body.Nick)
		if len(targets) == 0 {
			resp.RespondError(w, r, errs.NewError(errs.ErrUserNotFound, body.Nick))
			return
		}

		for _, target := range targets {
			if err := deps.Session.SendPrivate(target.RawNick, body.Text); err != nil {
				resp.RespondError(w, r, asCustomError(err))
				return
			}
		}

		deps.Log.Append(message.Message{
			Type:     message.TypeOwnPrivate,
			Text:     body.Text,
			Author:   deps.Config.UsernamePrefix + deps.Session.Details().Username,
			Receiver: targets[0].RawNick,
		})

		resp.RespondSuccess(w, r, nil)
	}
}

// validateText checks an outbound message body.
func validateText(text string) *errs.CustomError {
	if text == "" {
		return errs.NewError(errs.ErrMessageEmpty)
	}
	if len(text) > MaxMessageBytes {
		return errs.NewError(errs.ErrMessageContentTooLong)
	}
	return nil
}
