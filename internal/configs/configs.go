/*
Package configs is responsible for loading and parsing the application's configuration settings.

All values come from environment variables: the relay server to dial, the lobby
channel to follow, the profile API used for user enrichment, and the local API
listen settings.
*/
package configs

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// AppConfig contains all configuration parameters required for the application to run.
type AppConfig struct {
	// Environment selects development or production behavior (logging, CORS).
	Environment string `env:"ENVIRONMENT" envDefault:"development"`

	// Port is the listen port of the local HTTP API.
	Port int `env:"PORT" envDefault:"8080"`

	// RelayURL is the websocket address of the relay server bridging the IRC channel.
	RelayURL string `env:"RELAY_URL" envDefault:"wss://ts.popre.net:9000/"`

	// Channel is the lobby channel the relay bridges to.
	Channel string `env:"LOBBY_CHANNEL" envDefault:"#popmm"`

	// ProfileBaseURL is the base URL of the profile lookup API.
	ProfileBaseURL string `env:"PROFILE_BASE_URL" envDefault:"https://www.popre.net/"`

	// UsernamePrefix is the compatibility prefix this client registers nicks under.
	UsernamePrefix string `env:"USERNAME_PREFIX" envDefault:"y000"`

	// AllowedOrigins lists the origins allowed to call the local API from a browser.
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`

	// SendRate is the sustained outbound message rate (messages per second)
	// permitted towards the relay before sends are refused.
	SendRate float64 `env:"SEND_RATE" envDefault:"0.5"`

	// SendBurst is the number of outbound messages allowed in a burst.
	SendBurst int `env:"SEND_BURST" envDefault:"4"`
}

// LoadConfig reads and parses the application configuration from environment variables
// and validates the values that have hard constraints.
// It returns a pointer to the AppConfig struct and any error encountered.
func LoadConfig() (*AppConfig, error) {
	cfg := &AppConfig{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if cfg.Port < 1024 || cfg.Port > 65535 {
		return nil, fmt.Errorf("port number %d is outside the recommended range (%d-%d) to avoid privileged ports", cfg.Port, 1024, 65535)
	}

	if !strings.HasPrefix(cfg.RelayURL, "ws://") && !strings.HasPrefix(cfg.RelayURL, "wss://") {
		return nil, fmt.Errorf("RELAY_URL must be a ws:// or wss:// address, got %q", cfg.RelayURL)
	}

	if !strings.HasPrefix(cfg.Channel, "#") {
		return nil, fmt.Errorf("LOBBY_CHANNEL must name an IRC channel, got %q", cfg.Channel)
	}

	if cfg.SendRate <= 0 || cfg.SendBurst < 1 {
		return nil, fmt.Errorf("SEND_RATE and SEND_BURST must be positive, got %g and %d", cfg.SendRate, cfg.SendBurst)
	}

	return cfg, nil
}
