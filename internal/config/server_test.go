package config

import "testing"

func TestApplyEnvDefaults(t *testing.T) {
	t.Setenv("GAME_SERVER_HTTP_ADDR", "")
	t.Setenv("GAME_SERVER_HTTP_PORT", "")
	t.Setenv("GAME_SERVER_LOG_LEVEL", "")

	var c ServerConfig
	if err := c.ApplyEnv(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.HTTPAddr != "0.0.0.0" {
		t.Errorf("expected default addr, got %q", c.HTTPAddr)
	}
	if c.HTTPPort != 8080 {
		t.Errorf("expected default port, got %d", c.HTTPPort)
	}
	if c.LogLevel != "DEBUG" {
		t.Errorf("expected default log level, got %q", c.LogLevel)
	}
	if c.Addr() != "0.0.0.0:8080" {
		t.Errorf("expected 0.0.0.0:8080, got %q", c.Addr())
	}
}

func TestApplyEnvOverridesDefaults(t *testing.T) {
	t.Setenv("GAME_SERVER_HTTP_ADDR", "127.0.0.1")
	t.Setenv("GAME_SERVER_HTTP_PORT", "9090")
	t.Setenv("GAME_SERVER_LOG_LEVEL", "WARN")

	var c ServerConfig
	if err := c.ApplyEnv(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Addr() != "127.0.0.1:9090" {
		t.Errorf("expected 127.0.0.1:9090, got %q", c.Addr())
	}
	if c.LogLevel != "WARN" {
		t.Errorf("expected WARN, got %q", c.LogLevel)
	}
}

func TestApplyEnvRejectsInvalidPort(t *testing.T) {
	t.Setenv("GAME_SERVER_HTTP_PORT", "notanumber")

	var c ServerConfig
	if err := c.ApplyEnv(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}
