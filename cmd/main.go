/*
Package main is the entry point for the poplobby daemon.

It is responsible for loading configuration, initializing the global logging
system, wiring the lobby core (relay session, protocol decoder, user
registry, message log, profile client), starting the local HTTP API, and
gracefully handling operating system interrupt signals (SIGINT, SIGTERM) to
ensure a clean shutdown.
*/
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"poplobby/internal/app/message"
	"poplobby/internal/app/profile"
	"poplobby/internal/app/protocol"
	"poplobby/internal/app/session"
	"poplobby/internal/app/user"
	"poplobby/internal/configs"
	"poplobby/internal/handler"
	"poplobby/internal/pkg/logx"
)

func main() {
	// Load configuration from environment variables
	cfg, err := configs.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	logx.InitGlobalLogger(cfg.Environment == "development")
	logx.Logger().Info().
		Str("environment", cfg.Environment).
		Int("port", cfg.Port).
		Str("relay_url", cfg.RelayURL).
		Str("channel", cfg.Channel).
		Msg("Configuration loaded successfully")

	// Create a context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Wire the lobby core
	profileClient := profile.NewClient(cfg.ProfileBaseURL)
	registry := user.NewRegistry(profileClient)
	messageLog := message.NewLog()
	sess := session.New(cfg.RelayURL, cfg.SendRate, cfg.SendBurst)
	decoder := protocol.NewDecoder(sess, registry, messageLog, cfg.Channel)
	defer decoder.Close()

	// Setup HTTP server and routes
	deps := &handler.AppDeps{
		Session:  sess,
		Registry: registry,
		Log:      messageLog,
		Decoder:  decoder,
		Config:   cfg,
	}
	router := handler.Router(deps)

	serverAddr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logx.Info(fmt.Sprintf("poplobby API listening on http://localhost%s", serverAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logx.Fatal(err, "Server failed to start")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown with a timeout of 5 seconds.
	<-ctx.Done()
	logx.Info("Received shutdown signal. Starting graceful shutdown...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logx.Fatal(err, "Server forced to shutdown")
	}

	sess.Disconnect()

	logx.Info("Daemon gracefully stopped.")
}
