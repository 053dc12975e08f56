// Package config loads the webhook verifier's settings from environment
// variables (optionally seeded from a .env file) and validates them before
// the server starts.
//
// Environment Variables:
//
// Application Settings:
//   - PORT: Server port (default: 5000)
//   - LOG_LEVEL: Logging level (default: info)
//   - LOG_FILE: Append logs to this file instead of stdout
//
// Webhook Verification:
//   - WEBHOOK_CONFIG_FILE: JSON provider definitions; when unset the built-in
//     razorpay and stripe providers are used
//   - STRIPE_WEBHOOK_TOLERANCE: Replay window in seconds for the built-in
//     stripe provider (default: 300)
//   - MAX_BODY_BYTES: Largest accepted webhook body (default: 1048576)
//   - RAZORPAY_WEBHOOK_SECRET, STRIPE_WEBHOOK_SECRET: read per request by the
//     built-in providers, never stored here
//
// Replay Protection:
//   - REPLAY_PROTECTION_ENABLED: Reject repeated signatures (default: false)
//   - REPLAY_TTL: How long a simple-scheme signature is remembered (default: 24h)
//   - REDIS_ADDRESS: Redis server address, required for replay protection
//   - REDIS_PASSWORD: Redis password
//   - REDIS_DB: Redis database number 0-15 (default: 0)
//   - REDIS_POOL_SIZE: Redis connection pool size (default: 10)
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"webhook-verifier/internal/common/errors"
)

// Config holds all configuration values for the webhook verifier.
type Config struct {
	Port     string
	LogLevel string
	LogFile  string

	WebhookConfigFile string
	StripeTolerance   string
	MaxBodyBytes      string

	ReplayEnabled bool
	ReplayTTL     string

	RedisAddress  string
	RedisPassword string
	RedisDB       string
	RedisPoolSize string
}

// Load creates a Config from environment variables. It does not validate;
// call Validate on the result.
func Load() *Config {
	return &Config{
		Port:     getEnv("PORT", "5000"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogFile:  getEnv("LOG_FILE", ""),

		WebhookConfigFile: getEnv("WEBHOOK_CONFIG_FILE", ""),
		StripeTolerance:   getEnv("STRIPE_WEBHOOK_TOLERANCE", "300"),
		MaxBodyBytes:      getEnv("MAX_BODY_BYTES", "1048576"),

		ReplayEnabled: getBoolEnv("REPLAY_PROTECTION_ENABLED", false),
		ReplayTTL:     getEnv("REPLAY_TTL", "24h"),

		RedisAddress:  getEnv("REDIS_ADDRESS", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnv("REDIS_DB", "0"),
		RedisPoolSize: getEnv("REDIS_POOL_SIZE", "10"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getBoolEnv accepts anything strconv.ParseBool does and falls back to
// defaultValue otherwise.
func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// Validate checks field formats and cross-field requirements.
func (c *Config) Validate() error {
	if port, err := strconv.Atoi(c.Port); err != nil || port < 1 || port > 65535 {
		return errors.ConfigError("PORT must be a valid port number between 1 and 65535")
	}

	if tolerance, err := strconv.Atoi(c.StripeTolerance); err != nil || tolerance < 1 {
		return errors.ConfigError("STRIPE_WEBHOOK_TOLERANCE must be a positive number of seconds")
	}

	if limit, err := strconv.ParseInt(c.MaxBodyBytes, 10, 64); err != nil || limit < 1 {
		return errors.ConfigError("MAX_BODY_BYTES must be a positive number")
	}

	if c.WebhookConfigFile != "" {
		if _, err := os.Stat(c.WebhookConfigFile); err != nil {
			return errors.ConfigError(fmt.Sprintf("WEBHOOK_CONFIG_FILE is not readable: %v", err))
		}
	}

	if c.ReplayEnabled {
		if c.RedisAddress == "" {
			return errors.ConfigError("REDIS_ADDRESS is required when REPLAY_PROTECTION_ENABLED is true")
		}
		if ttl, err := time.ParseDuration(c.ReplayTTL); err != nil || ttl <= 0 {
			return errors.ConfigError("REPLAY_TTL must be a positive duration (e.g., '10m', '24h')")
		}
	}

	if c.RedisAddress != "" {
		if db, err := strconv.Atoi(c.RedisDB); err != nil || db < 0 || db > 15 {
			return errors.ConfigError("REDIS_DB must be a number between 0 and 15")
		}
		if poolSize, err := strconv.Atoi(c.RedisPoolSize); err != nil || poolSize < 1 {
			return errors.ConfigError("REDIS_POOL_SIZE must be a positive number")
		}
	}

	return nil
}

// StripeToleranceSeconds returns the parsed STRIPE_WEBHOOK_TOLERANCE.
func (c *Config) StripeToleranceSeconds() int {
	tolerance, _ := strconv.Atoi(c.StripeTolerance)
	return tolerance
}

// MaxBodyBytesLimit returns the parsed MAX_BODY_BYTES.
func (c *Config) MaxBodyBytesLimit() int64 {
	limit, _ := strconv.ParseInt(c.MaxBodyBytes, 10, 64)
	return limit
}

// ReplayTTLDuration returns the parsed REPLAY_TTL, or zero if invalid.
func (c *Config) ReplayTTLDuration() time.Duration {
	ttl, _ := time.ParseDuration(c.ReplayTTL)
	return ttl
}
