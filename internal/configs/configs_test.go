package configs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ENVIRONMENT", "PORT", "ALLOWED_ORIGINS", "SESSION_TTL", "SESSION_STATE_FILE",
		"SESSION_COOKIE_SECURE", "PASSWORD_MIN_LENGTH", "AUTO_LOGIN_ON_REGISTER",
		"STORAGE_BACKEND", "UPLOAD_DIR", "S3_BUCKET_NAME", "S3_ENDPOINT",
		"S3_ACCESS_KEY_ID", "S3_SECRET_ACCESS_KEY", "DATABASE_URL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.False(t, cfg.SessionCookieSecure)
	assert.Equal(t, 8, cfg.PasswordMinLength)
	assert.True(t, cfg.AutoLoginOnRegister)
	assert.Equal(t, StorageBackendDisk, cfg.StorageBackend)
	assert.Equal(t, "uploads", cfg.UploadDir)
	assert.NotEmpty(t, cfg.DatabaseDSN)
}

func TestLoadConfigInvalidPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "not-a-number")
	_, err := LoadConfig()
	assert.Error(t, err)

	t.Setenv("PORT", "80")
	_, err = LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfigSessionSettings(t *testing.T) {
	clearEnv(t)
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("SESSION_COOKIE_SECURE", "true")
	t.Setenv("AUTO_LOGIN_ON_REGISTER", "false")
	t.Setenv("PASSWORD_MIN_LENGTH", "12")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.True(t, cfg.SessionCookieSecure)
	assert.False(t, cfg.AutoLoginOnRegister)
	assert.Equal(t, 12, cfg.PasswordMinLength)
}

func TestLoadConfigRejectsBadSessionSettings(t *testing.T) {
	clearEnv(t)
	t.Setenv("SESSION_TTL", "-1h")
	_, err := LoadConfig()
	assert.Error(t, err)

	clearEnv(t)
	t.Setenv("PASSWORD_MIN_LENGTH", "3")
	_, err = LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfigS3BackendRequiresCredentials(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORAGE_BACKEND", "s3")
	_, err := LoadConfig()
	assert.Error(t, err)

	t.Setenv("S3_BUCKET_NAME", "avatars")
	t.Setenv("S3_ENDPOINT", "https://s3.example.com")
	t.Setenv("S3_ACCESS_KEY_ID", "key")
	t.Setenv("S3_SECRET_ACCESS_KEY", "secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, StorageBackendS3, cfg.StorageBackend)
	assert.Equal(t, "avatars", cfg.S3BucketName)
}

func TestLoadConfigUnknownBackend(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORAGE_BACKEND", "tape")
	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfigProductionRequiresDatabaseURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENVIRONMENT", "production")
	_, err := LoadConfig()
	assert.Error(t, err)

	t.Setenv("DATABASE_URL", "postgres://app:pw@db:5432/userhub")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.True(t, cfg.SessionCookieSecure)
}

func TestLoadConfigAllowedOrigins(t *testing.T) {
	clearEnv(t)
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com ,")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.AllowedOrigins)
}
