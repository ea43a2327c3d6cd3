package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{DSN: "postgres://localhost/qrdirect"},
		Resolver: ResolverConfig{
			ProbeTimeout:    3 * time.Second,
			SelectorTimeout: 5 * time.Second,
			PinFeedback:     true,
			WrongPinMessage: "Incorrect PIN. Please try again.",
			PinPagePath:     "/q/%s/auth",
			ErrorPagePath:   "/link-error",
			ScanQueueSize:   1024,
		},
		Fallback:  FallbackConfig{Enabled: false, Model: "claude-3-5-haiku-latest", MaxTokens: 256},
		RateLimit: RateLimitConfig{Enabled: true, PerMinute: 120, CleanupInterval: 5 * time.Minute},
		Log:       LogConfig{Level: "info", Format: "json"},
	}
}

func TestValidate_OK(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
}

func TestValidate_Errors(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantSub string
	}{
		{"bad port", func(c *Config) { c.Server.Port = 0 }, "server.port"},
		{"zero probe timeout", func(c *Config) { c.Resolver.ProbeTimeout = 0 }, "probe_timeout"},
		{"zero selector timeout", func(c *Config) { c.Resolver.SelectorTimeout = 0 }, "selector_timeout"},
		{"zero queue", func(c *Config) { c.Resolver.ScanQueueSize = 0 }, "scan_queue_size"},
		{"pin page without placeholder", func(c *Config) { c.Resolver.PinPagePath = "/auth" }, "pin_page_path"},
		{"empty error page", func(c *Config) { c.Resolver.ErrorPagePath = "" }, "error_page_path"},
		{"fallback enabled without key", func(c *Config) { c.Fallback.Enabled = true; c.Fallback.APIKey = "" }, "api_key"},
		{"fallback zero tokens", func(c *Config) { c.Fallback.Enabled = true; c.Fallback.APIKey = "k"; c.Fallback.MaxTokens = 0 }, "max_tokens"},
		{"rate limit zero", func(c *Config) { c.RateLimit.PerMinute = 0 }, "per_minute"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !strings.Contains(err.Error(), tc.wantSub) {
				t.Fatalf("Validate() = %v, want mention of %q", err, tc.wantSub)
			}
		})
	}
}

func TestLoad_EnvOnly(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("DATABASE_DSN", "postgres://localhost/qrdirect_test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() = %v, want nil", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("default port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Resolver.ProbeTimeout != 3*time.Second {
		t.Errorf("default probe timeout = %v, want 3s", cfg.Resolver.ProbeTimeout)
	}
	if !cfg.Resolver.PinFeedback {
		t.Error("pin_feedback should default to true")
	}
	if cfg.Database.DSN != "postgres://localhost/qrdirect_test" {
		t.Errorf("dsn = %q", cfg.Database.DSN)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", "/nonexistent/config.yaml")
	t.Setenv("DATABASE_DSN", "postgres://localhost/qrdirect_test")

	if _, err := Load(); err == nil {
		t.Fatal("Load() with missing explicit file should fail")
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/config.yaml"

	yaml := `
server:
  port: 9090
database:
  dsn: postgres://localhost/fromfile
resolver:
  probe_timeout: 2s
  pin_feedback: false
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() = %v, want nil", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Database.DSN != "postgres://localhost/fromfile" {
		t.Errorf("dsn = %q", cfg.Database.DSN)
	}
	if cfg.Resolver.ProbeTimeout != 2*time.Second {
		t.Errorf("probe timeout = %v, want 2s", cfg.Resolver.ProbeTimeout)
	}
	if cfg.Resolver.PinFeedback {
		t.Error("pin_feedback should be false from file")
	}
}
