package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_DSN", "postgres://localhost/devmeet?sslmode=disable")
	t.Setenv("TOKEN_SECRET", "0123456789abcdef0123456789abcdef")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.AppPort)
	assert.Equal(t, 10*time.Hour, cfg.TokenTTL)
}

func TestLoadMissingSecret(t *testing.T) {
	t.Setenv("DATABASE_DSN", "postgres://localhost/devmeet?sslmode=disable")
	t.Setenv("TOKEN_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadShortSecret(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("TOKEN_SECRET", "too-short")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadCustomTTL(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("TOKEN_TTL", "30m")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
}
