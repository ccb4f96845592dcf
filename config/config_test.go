package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_USER", "launcher")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "launcher")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("BLOB_STORE_URL", "https://blob.example/store")
	t.Setenv("BLOB_STORE_TOKEN", "blob-token")
}

func TestLoadConfigDefaults(t *testing.T) {
	setRequiredEnv(t)
	// Make sure optional variables are absent.
	os.Unsetenv("DB_HOST")
	os.Unsetenv("DB_PORT")
	os.Unsetenv("DB_POOL_SIZE")
	os.Unsetenv("SESSION_DURATION")
	os.Unsetenv("PORT")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "launcher", cfg.DB.User)
	assert.Equal(t, "localhost", cfg.DB.Host)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, 10, cfg.DB.MaxSize)
	assert.Equal(t, "test-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, 168*time.Hour, cfg.Auth.SessionDuration)
	assert.Equal(t, "https://blob.example/store", cfg.Blob.Endpoint)
	assert.Equal(t, "blob-token", cfg.Blob.Token)
	assert.Equal(t, "8080", cfg.Server.Port)
}

func TestLoadConfigOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_POOL_SIZE", "25")
	t.Setenv("SESSION_DURATION", "24h")
	t.Setenv("PORT", "9090")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, 5433, cfg.DB.Port)
	assert.Equal(t, 25, cfg.DB.MaxSize)
	assert.Equal(t, 24*time.Hour, cfg.Auth.SessionDuration)
	assert.Equal(t, "9090", cfg.Server.Port)
}

func TestLoadConfigCollectsAllErrors(t *testing.T) {
	setRequiredEnv(t)
	os.Unsetenv("JWT_SECRET")
	os.Unsetenv("BLOB_STORE_URL")
	t.Setenv("DB_PORT", "not-a-number")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
	assert.Contains(t, err.Error(), "BLOB_STORE_URL")
	assert.Contains(t, err.Error(), "DB_PORT")
}

func TestLoadConfigClampsPoolSize(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DB_POOL_SIZE", "1000")

	_, err := LoadConfig()
	// Clamping is reported as a configuration error so it never passes
	// silently.
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_POOL_SIZE")
}
