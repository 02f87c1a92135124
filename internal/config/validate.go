package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if err := c.Estimator.validate(); err != nil {
		return fmt.Errorf("estimator: %w", err)
	}

	if c.Reference.CacheTTL < 0 {
		return fmt.Errorf("reference.cache_ttl must be >= 0 (got %v)", c.Reference.CacheTTL)
	}
	if c.Reference.CacheTTL > 0 && c.Reference.CacheSize <= 0 {
		return fmt.Errorf("reference.cache_size must be > 0 when caching is enabled (got %d)", c.Reference.CacheSize)
	}

	if err := c.Monitor.validate(); err != nil {
		return fmt.Errorf("monitor: %w", err)
	}

	if c.RateLimit.CalculatePerMinute <= 0 {
		return fmt.Errorf("rate_limit.calculate_per_minute must be > 0 (got %d)", c.RateLimit.CalculatePerMinute)
	}

	if c.Notify.NotificationsEnabled() && !strings.HasPrefix(c.Notify.TopicARN, "arn:") {
		return fmt.Errorf("notify.topic_arn must be an ARN (got %q)", c.Notify.TopicARN)
	}

	return nil
}

func (e EstimatorConfig) validate() error {
	u, err := url.Parse(e.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("base_url must be an absolute URL (got %q)", e.BaseURL)
	}
	if e.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %v)", e.Timeout)
	}
	return nil
}

func (m MonitorConfig) validate() error {
	switch strings.ToLower(strings.TrimSpace(m.Frequency)) {
	case "monthly", "never":
	default:
		return fmt.Errorf("frequency must be Monthly or Never (got %q)", m.Frequency)
	}
	if m.Concurrency <= 0 {
		return fmt.Errorf("concurrency must be > 0 (got %d)", m.Concurrency)
	}
	if m.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %v)", m.Timeout)
	}
	return nil
}
