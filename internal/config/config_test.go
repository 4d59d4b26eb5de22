package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()
	os.Setenv("HTTP_ADDR", ":8080")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg == nil {
		t.Fatal("Load returned nil config")
	}
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q, want %q", cfg.HTTPAddr, ":8080")
	}
	if cfg.JWTAccessTTL != "1h" {
		t.Errorf("JWTAccessTTL = %q, want %q", cfg.JWTAccessTTL, "1h")
	}
	if cfg.JWTRefreshTTL != "720h" {
		t.Errorf("JWTRefreshTTL = %q, want %q", cfg.JWTRefreshTTL, "720h")
	}
	if cfg.GoogleVerifyTimeout != "5s" {
		t.Errorf("GoogleVerifyTimeout = %q, want %q", cfg.GoogleVerifyTimeout, "5s")
	}
	if cfg.DevLoginEnabled {
		t.Error("DevLoginEnabled should default to false")
	}
	if cfg.SessionCleanupInterval != "1h" {
		t.Errorf("SessionCleanupInterval = %q, want %q", cfg.SessionCleanupInterval, "1h")
	}
}

func TestLoad_EnvVarOverride(t *testing.T) {
	os.Clearenv()
	os.Setenv("HTTP_ADDR", ":9090")
	os.Setenv("JWT_ACCESS_TTL", "30m")
	os.Setenv("JWT_REFRESH_TTL", "24h")
	os.Setenv("GOOGLE_CLIENT_ID", "client-123.apps.googleusercontent.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTPAddr != ":9090" {
		t.Errorf("HTTPAddr = %q, want %q", cfg.HTTPAddr, ":9090")
	}
	if got := cfg.AccessTTL(); got != 30*time.Minute {
		t.Errorf("AccessTTL() = %v, want 30m", got)
	}
	if got := cfg.RefreshTTL(); got != 24*time.Hour {
		t.Errorf("RefreshTTL() = %v, want 24h", got)
	}
	if cfg.GoogleClientID != "client-123.apps.googleusercontent.com" {
		t.Errorf("GoogleClientID = %q", cfg.GoogleClientID)
	}
}

func TestLoad_DevLoginForbiddenInProduction(t *testing.T) {
	os.Clearenv()
	os.Setenv("HTTP_ADDR", ":8080")
	os.Setenv("DEV_LOGIN_ENABLED", "true")
	os.Setenv("APP_ENV", "production")

	if _, err := Load(); err == nil {
		t.Fatal("Load should fail when DEV_LOGIN_ENABLED=true and APP_ENV=production")
	}
}

func TestLoad_DevLoginAllowedInDevelopment(t *testing.T) {
	os.Clearenv()
	os.Setenv("HTTP_ADDR", ":8080")
	os.Setenv("DEV_LOGIN_ENABLED", "true")
	os.Setenv("APP_ENV", "development")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.DevLoginEnabled {
		t.Error("DevLoginEnabled should be true")
	}
}

func TestTTLAccessors_InvalidFallBackToDefaults(t *testing.T) {
	cfg := &Config{
		JWTAccessTTL:           "not-a-duration",
		JWTRefreshTTL:          "-5h",
		GoogleVerifyTimeout:    "",
		SessionCleanupInterval: "0s",
	}
	if got := cfg.AccessTTL(); got != time.Hour {
		t.Errorf("AccessTTL() = %v, want 1h", got)
	}
	if got := cfg.RefreshTTL(); got != 720*time.Hour {
		t.Errorf("RefreshTTL() = %v, want 720h", got)
	}
	if got := cfg.VerifyTimeout(); got != 5*time.Second {
		t.Errorf("VerifyTimeout() = %v, want 5s", got)
	}
	if got := cfg.CleanupInterval(); got != time.Hour {
		t.Errorf("CleanupInterval() = %v, want 1h", got)
	}
}
