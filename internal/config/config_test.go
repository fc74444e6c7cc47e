package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "CHIRPY_DB_PATH", "JWT_SECRET", "POLKA_KEY", "CHIRPY_TOKEN_TTL",
		"CHIRPY_PROFANITY_FILE", "CLIENT_ORIGIN", "LOG_LEVEL", "CHIRPY_LOG_FORMAT", "CHIRPY_REQUEST_TIMEOUT_SECONDS"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "database.json", cfg.DBPath)
	assert.Empty(t, cfg.JWTSecret)
	assert.Empty(t, cfg.PolkaKey)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, "*", cfg.ClientOrigin)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("CHIRPY_DB_PATH", "/tmp/chirpy.json")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("POLKA_KEY", "polka")
	t.Setenv("CHIRPY_TOKEN_TTL", "8760h")
	t.Setenv("CHIRPY_REQUEST_TIMEOUT_SECONDS", "3")

	cfg := Load()
	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, "/tmp/chirpy.json", cfg.DBPath)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, "polka", cfg.PolkaKey)
	assert.Equal(t, 8760*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("CHIRPY_TOKEN_TTL", "forever")
	t.Setenv("CHIRPY_REQUEST_TIMEOUT_SECONDS", "soon")

	cfg := Load()
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)

	t.Setenv("CHIRPY_TOKEN_TTL", "-5m")
	assert.Equal(t, 24*time.Hour, Load().TokenTTL)
}
