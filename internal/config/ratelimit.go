package config

import "time"

// RateLimitConfig defines settings for the Redis token-bucket limiter.
// Capacity is the burst size; RefillTokens are added every
// RefillInterval. TTL bounds how long idle bucket state lives in Redis.
type RateLimitConfig struct {
	Enabled        bool
	Capacity       int
	RefillTokens   int
	RefillInterval time.Duration
	TTL            time.Duration
	KeyStrategy    string
	Prefix         string
	Debug          bool
}

// LoadRateLimitConfig reads environment variables to build a
// RateLimitConfig, clamping nonsensical values to safe minimums.
func LoadRateLimitConfig() RateLimitConfig {
	cfg := RateLimitConfig{
		Enabled:        getenv("RATE_LIMIT_ENABLED", "true") == "true",
		Capacity:       atoiDefault(getenv("RATE_LIMIT_CAPACITY", "60"), 60),
		RefillTokens:   atoiDefault(getenv("RATE_LIMIT_REFILL_TOKENS", "1"), 1),
		RefillInterval: parseDur(getenv("RATE_LIMIT_REFILL_INTERVAL", "1s")),
		TTL:            parseDur(getenv("RATE_LIMIT_TTL", "10m")),
		KeyStrategy:    getenv("RATE_LIMIT_KEY_STRATEGY", "ip_route"),
		Prefix:         getenv("RATE_LIMIT_PREFIX", "rl"),
		Debug:          getenv("RATE_LIMIT_DEBUG", "false") == "true",
	}
	if cfg.Capacity < 1 {
		cfg.Capacity = 1
	}
	if cfg.RefillTokens < 1 {
		cfg.RefillTokens = 1
	}
	if cfg.RefillInterval <= 0 {
		cfg.RefillInterval = time.Second
	}
	if minTTL := 5 * cfg.RefillInterval; cfg.TTL < minTTL {
		cfg.TTL = minTTL
	}
	return cfg
}

func atoiDefault(s string, def int) int {
	if n := atoi(s); n != 0 {
		return n
	}
	return def
}
