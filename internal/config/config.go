package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Resolver  ResolverConfig  `yaml:"resolver"`
	Fallback  FallbackConfig  `yaml:"fallback"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Log       LogConfig       `yaml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// ResolverConfig holds settings for the slug resolution pipeline.
type ResolverConfig struct {
	ProbeTimeout    time.Duration `yaml:"probe_timeout"    env:"RESOLVER_PROBE_TIMEOUT"    env-default:"3s"`
	SelectorTimeout time.Duration `yaml:"selector_timeout" env:"RESOLVER_SELECTOR_TIMEOUT" env-default:"5s"`

	// PinFeedback controls whether a failed PIN check is reported to the
	// visitor as a distinct wrong-PIN message. When false, a wrong PIN is
	// indistinguishable from the first visit to a protected link.
	PinFeedback     bool   `yaml:"pin_feedback"      env:"RESOLVER_PIN_FEEDBACK"      env-default:"true"`
	WrongPinMessage string `yaml:"wrong_pin_message" env:"RESOLVER_WRONG_PIN_MESSAGE" env-default:"Incorrect PIN. Please try again."`

	PinPagePath   string `yaml:"pin_page_path"   env:"RESOLVER_PIN_PAGE_PATH"   env-default:"/q/%s/auth"`
	ErrorPagePath string `yaml:"error_page_path" env:"RESOLVER_ERROR_PAGE_PATH" env-default:"/link-error"`

	ScanQueueSize int `yaml:"scan_queue_size" env:"RESOLVER_SCAN_QUEUE_SIZE" env-default:"1024"`
}

// FallbackConfig holds settings for the advisory fallback chooser.
type FallbackConfig struct {
	Enabled   bool   `yaml:"enabled"    env:"FALLBACK_ENABLED"    env-default:"false"`
	APIKey    string `yaml:"api_key"    env:"ANTHROPIC_API_KEY"`
	Model     string `yaml:"model"      env:"FALLBACK_MODEL"      env-default:"claude-3-5-haiku-latest"`
	MaxTokens int64  `yaml:"max_tokens" env:"FALLBACK_MAX_TOKENS" env-default:"256"`
}

// RateLimitConfig holds per-IP request limiting settings.
type RateLimitConfig struct {
	Enabled         bool          `yaml:"enabled"          env:"RATE_LIMIT_ENABLED"          env-default:"true"`
	PerMinute       int           `yaml:"per_minute"       env:"RATE_LIMIT_PER_MINUTE"       env-default:"120"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" env:"RATE_LIMIT_CLEANUP_INTERVAL" env-default:"5m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
