package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv(EnvAdminEmail, "admin@example.com")
	t.Setenv(EnvPasswordHash, "aGFzaA==")
	t.Setenv(EnvPasswordSalt, "c2FsdA==")
	t.Setenv(EnvSessionSecret, "super-secret")
}

func TestLoad_DefaultsApplied(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "admin@example.com", cfg.Auth.AdminEmail)
	assert.Equal(t, 210_000, cfg.Auth.Iterations)
	assert.Equal(t, "sha512", cfg.Auth.Digest)
	assert.Equal(t, 8*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, 5, cfg.Auth.MaxAttempts)
	assert.Equal(t, 15*time.Minute, cfg.Auth.Window)
	assert.Equal(t, 30*time.Minute, cfg.Auth.Block)
	assert.Equal(t, "super-secret", cfg.Auth.FingerprintSalt, "fingerprint salt defaults to the session secret")
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "587", cfg.SMTP.Port)
}

func TestLoad_MissingRequiredFails(t *testing.T) {
	setRequired(t)
	t.Setenv(EnvSessionSecret, "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvSessionSecret)
}

func TestLoad_EmptyValueTreatedAsAbsent(t *testing.T) {
	setRequired(t)
	t.Setenv(EnvAdminEmail, "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv(EnvPasswordIterations, "50000")
	t.Setenv(EnvSessionTTLSeconds, "3600")
	t.Setenv(EnvLoginMaxAttempts, "3")
	t.Setenv(EnvLoginWindowMinutes, "5")
	t.Setenv(EnvLoginBlockMinutes, "20")
	t.Setenv(EnvFingerprintSalt, "separate-fp-salt")
	t.Setenv("PORT", "9000")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 50_000, cfg.Auth.Iterations)
	assert.Equal(t, time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, 3, cfg.Auth.MaxAttempts)
	assert.Equal(t, 5*time.Minute, cfg.Auth.Window)
	assert.Equal(t, 20*time.Minute, cfg.Auth.Block)
	assert.Equal(t, "separate-fp-salt", cfg.Auth.FingerprintSalt)
	assert.Equal(t, 9000, cfg.Server.Port)
}

func TestLoad_BlockFlooredToWindow(t *testing.T) {
	setRequired(t)
	t.Setenv(EnvLoginWindowMinutes, "30")
	t.Setenv(EnvLoginBlockMinutes, "10")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, cfg.Auth.Block, "a block never ends before its window")
}

func TestLoad_UnsupportedDigestFails(t *testing.T) {
	setRequired(t)
	t.Setenv(EnvPasswordDigest, "md5")

	_, err := Load()
	assert.Error(t, err)
}

func TestAccessor_IntFallbacks(t *testing.T) {
	setRequired(t)
	t.Setenv(EnvPasswordIterations, "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 210_000, cfg.Auth.Iterations, "unparseable values fall back to defaults")
}
