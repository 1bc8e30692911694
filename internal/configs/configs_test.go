package configs

import "testing"

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Environment != "development" {
		t.Errorf("Environment = %q", cfg.Environment)
	}
	if cfg.Port != 8080 {
		t.Errorf("Port = %d", cfg.Port)
	}
	if cfg.RelayURL != "wss://ts.popre.net:9000/" {
		t.Errorf("RelayURL = %q", cfg.RelayURL)
	}
	if cfg.Channel != "#popmm" {
		t.Errorf("Channel = %q", cfg.Channel)
	}
	if cfg.UsernamePrefix != "y000" {
		t.Errorf("UsernamePrefix = %q", cfg.UsernamePrefix)
	}
	if cfg.SendRate != 0.5 || cfg.SendBurst != 4 {
		t.Errorf("SendRate = %g, SendBurst = %d", cfg.SendRate, cfg.SendBurst)
	}
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("PORT", "9090")
	t.Setenv("RELAY_URL", "ws://localhost:9000/")
	t.Setenv("LOBBY_CHANNEL", "#testing")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Environment != "production" || cfg.Port != 9090 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.RelayURL != "ws://localhost:9000/" || cfg.Channel != "#testing" {
		t.Errorf("cfg = %+v", cfg)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example" {
		t.Errorf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
}

func TestLoadConfigRejectsPrivilegedPort(t *testing.T) {
	t.Setenv("PORT", "80")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected an error for port 80")
	}
}

func TestLoadConfigRejectsNonWebsocketRelay(t *testing.T) {
	t.Setenv("RELAY_URL", "https://ts.popre.net:9000/")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected an error for a non-websocket relay URL")
	}
}

func TestLoadConfigRejectsBareChannel(t *testing.T) {
	t.Setenv("LOBBY_CHANNEL", "popmm")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected an error for a channel without the # prefix")
	}
}

func TestLoadConfigRejectsNonPositiveRate(t *testing.T) {
	t.Setenv("SEND_RATE", "0")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected an error for a zero send rate")
	}
}
