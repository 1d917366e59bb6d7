package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("PROPERTYHUB_ADDR", "")
	t.Setenv("TOKEN_TTL", "")
	t.Setenv("SESSION_RECHECK_INTERVAL", "")
	t.Setenv("JWT_SIGNING_KEY", "")

	cfg := FromEnv()
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 1*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 60*time.Second, cfg.SessionRecheck)
	assert.NotEmpty(t, cfg.JWTSigningKey)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("PROPERTYHUB_ADDR", ":9999")
	t.Setenv("TOKEN_TTL", "30m")
	t.Setenv("SESSION_RECHECK_INTERVAL", "15s")
	t.Setenv("JWT_SIGNING_KEY", "test-key")

	cfg := FromEnv()
	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
	assert.Equal(t, 15*time.Second, cfg.SessionRecheck)
	assert.Equal(t, "test-key", cfg.JWTSigningKey)
}

func TestValidate(t *testing.T) {
	t.Setenv("JWT_SIGNING_KEY", "")
	cfg := FromEnv()
	assert.NoError(t, cfg.Validate())

	cfg.JWTSigningKey = "short"
	assert.Error(t, cfg.Validate())

	cfg = FromEnv()
	cfg.TokenTTL = 0
	assert.Error(t, cfg.Validate())
}

func TestFromEnvIgnoresBadDurations(t *testing.T) {
	t.Setenv("TOKEN_TTL", "not-a-duration")
	t.Setenv("SESSION_RECHECK_INTERVAL", "-5s")

	cfg := FromEnv()
	assert.Equal(t, 1*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 60*time.Second, cfg.SessionRecheck)
}
