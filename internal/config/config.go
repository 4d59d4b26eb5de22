// Package config loads and validates app config from env and an optional .env file using Viper.
package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	// HTTPAddr is the address the HTTP server listens on (e.g. :8080).
	HTTPAddr string `mapstructure:"HTTP_ADDR"`
	// DatabaseURL is the Postgres DSN; required for the server and migrator.
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	// JWTSecret signs access and refresh tokens (HS256). Secrets shorter than
	// 32 bytes are zero-padded to the HS256 minimum; see security.SigningKey.
	JWTSecret string `mapstructure:"JWT_SECRET"`
	// JWTAccessTTL is the access token lifetime (e.g. "1h").
	JWTAccessTTL string `mapstructure:"JWT_ACCESS_TTL"`
	// JWTRefreshTTL is the refresh token / session lifetime (e.g. "720h").
	JWTRefreshTTL string `mapstructure:"JWT_REFRESH_TTL"`
	// GoogleClientID is the OAuth client ID expected as the audience of Google ID tokens.
	GoogleClientID string `mapstructure:"GOOGLE_CLIENT_ID"`
	// GoogleVerifyTimeout bounds each Google ID-token verification call (e.g. "5s").
	GoogleVerifyTimeout string `mapstructure:"GOOGLE_VERIFY_TIMEOUT"`
	// DevLoginEnabled enables POST /api/v1/dev/auth/login, which mints an access
	// token for any email without a Google ID token. Must not be true when Env is
	// production (startup error).
	DevLoginEnabled bool `mapstructure:"DEV_LOGIN_ENABLED"`
	// Env is the application environment (e.g. "development", "production").
	Env string `mapstructure:"APP_ENV"`
	// SessionCleanupInterval is how often expired refresh sessions are purged (e.g. "1h").
	SessionCleanupInterval string `mapstructure:"SESSION_CLEANUP_INTERVAL"`

	// Telemetry (optional). When OTLPEndpoint is set, traces/metrics/logs are exported via OTLP gRPC.
	OTLPEndpoint string `mapstructure:"OTLP_ENDPOINT"`
	// OTLPInsecure forces plaintext OTLP export even for https endpoints.
	OTLPInsecure bool `mapstructure:"OTLP_INSECURE"`
}

// Load reads .env (if present), then builds and validates Config from the environment via Viper.
// Missing .env is ignored (e.g. in CI). Env vars override .env. Returns an error if required fields are invalid.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // ignore ErrConfigFileNotFound

	v.AutomaticEnv()

	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_ACCESS_TTL", "1h")
	v.SetDefault("JWT_REFRESH_TTL", "720h") // 30d
	v.SetDefault("GOOGLE_CLIENT_ID", "")
	v.SetDefault("GOOGLE_VERIFY_TIMEOUT", "5s")
	v.SetDefault("DEV_LOGIN_ENABLED", false)
	v.SetDefault("APP_ENV", "")
	v.SetDefault("SESSION_CLEANUP_INTERVAL", "1h")
	v.SetDefault("OTLP_ENDPOINT", "")
	v.SetDefault("OTLP_INSECURE", false)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.HTTPAddr == "" {
		return nil, errors.New("config: HTTP_ADDR must be set")
	}

	if cfg.DevLoginEnabled && cfg.Env == "production" {
		return nil, errors.New("config: DEV_LOGIN_ENABLED must not be true when APP_ENV=production")
	}

	return &cfg, nil
}

// AccessTTL parses JWTAccessTTL as a time.Duration. Returns 1h if unset or invalid.
func (c *Config) AccessTTL() time.Duration {
	d, err := time.ParseDuration(c.JWTAccessTTL)
	if err != nil || d <= 0 {
		return time.Hour
	}
	return d
}

// RefreshTTL parses JWTRefreshTTL as a time.Duration. Returns 720h if unset or invalid.
func (c *Config) RefreshTTL() time.Duration {
	d, err := time.ParseDuration(c.JWTRefreshTTL)
	if err != nil || d <= 0 {
		return 720 * time.Hour
	}
	return d
}

// VerifyTimeout parses GoogleVerifyTimeout as a time.Duration. Returns 5s if unset or invalid.
func (c *Config) VerifyTimeout() time.Duration {
	d, err := time.ParseDuration(c.GoogleVerifyTimeout)
	if err != nil || d <= 0 {
		return 5 * time.Second
	}
	return d
}

// CleanupInterval parses SessionCleanupInterval as a time.Duration. Returns 1h if unset or invalid.
func (c *Config) CleanupInterval() time.Duration {
	d, err := time.ParseDuration(c.SessionCleanupInterval)
	if err != nil || d <= 0 {
		return time.Hour
	}
	return d
}
