package handler

import (
	"poplobby/internal/app/message"
	"poplobby/internal/app/protocol"
	"poplobby/internal/app/session"
	"poplobby/internal/app/user"
	"poplobby/internal/configs"
)

type AppDeps struct {
	Session  *session.Session
	Registry *user.Registry
	Log      *message.Log
	Decoder  *protocol.Decoder
	Config   *configs.AppConfig
}
