package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}

	if err := c.Resolver.validate(); err != nil {
		return fmt.Errorf("resolver: %w", err)
	}

	if c.Fallback.Enabled && c.Fallback.APIKey == "" {
		return fmt.Errorf("fallback.api_key is required when fallback.enabled is true")
	}
	if c.Fallback.Enabled && c.Fallback.MaxTokens <= 0 {
		return fmt.Errorf("fallback.max_tokens must be > 0 (got %d)", c.Fallback.MaxTokens)
	}

	if c.RateLimit.Enabled && c.RateLimit.PerMinute <= 0 {
		return fmt.Errorf("rate_limit.per_minute must be > 0 (got %d)", c.RateLimit.PerMinute)
	}

	return nil
}

func (r *ResolverConfig) validate() error {
	if r.ProbeTimeout <= 0 {
		return fmt.Errorf("probe_timeout must be > 0 (got %v)", r.ProbeTimeout)
	}
	if r.SelectorTimeout <= 0 {
		return fmt.Errorf("selector_timeout must be > 0 (got %v)", r.SelectorTimeout)
	}
	if r.ScanQueueSize <= 0 {
		return fmt.Errorf("scan_queue_size must be > 0 (got %d)", r.ScanQueueSize)
	}
	if strings.Count(r.PinPagePath, "%s") != 1 {
		return fmt.Errorf("pin_page_path must contain exactly one %%s slug placeholder (got %q)", r.PinPagePath)
	}
	if r.ErrorPagePath == "" {
		return fmt.Errorf("error_page_path must not be empty")
	}
	return nil
}
