/*
Package handler provides the HTTP handlers and routing setup for the local
lobby API.

This file defines the main Router, applying middleware like logging and CORS
before delegating requests to the lobby and session handlers. The API serves
state snapshots (users, huts, games, messages) to a frontend and accepts send
and connect operations.
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"poplobby/internal/pkg/logx"
	"poplobby/internal/pkg/resp"
)

// Router sets up the HTTP routing table (chi.Router) for the local API.
// It configures CORS from the allowed origins and applies global middleware.
func Router(deps *AppDeps) http.Handler {
	r := chi.NewRouter()

	corsAllowedOrigins := []string{}
	if deps.Config.Environment == "development" {
		corsAllowedOrigins = []string{"*"}
	} else if len(deps.Config.AllowedOrigins) > 0 {
		corsAllowedOrigins = deps.Config.AllowedOrigins
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   corsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{},
		AllowCredentials: true,
		MaxAge:           300,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		data := map[string]string{
			"status":  "ok",
			"service": "poplobby",
		}
		resp.RespondSuccess(w, r, data)
	})

	r.Route("/api", func(api chi.Router) {
		api.Route("/session", func(sess chi.Router) {
			sess.Get("/", HandleGetSession(deps))
			sess.Post("/connect", HandleConnect(deps))
			sess.Post("/disconnect", HandleDisconnect(deps))
		})

		api.Get("/users", HandleListUsers(deps))
		api.Get("/huts", HandleListHuts(deps))
		api.Get("/games", HandleListGames(deps))

		api.Get("/messages", HandleListMessages(deps))
		api.Post("/messages", HandleSendPublic(deps))
		api.Post("/messages/private", HandleSendPrivate(deps))
	})

	return r
}
