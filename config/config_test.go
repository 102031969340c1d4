package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	var c AppConfig
	applyDefaults(&c)

	assert.Equal(t, "3000", c.AppPort)
	assert.Equal(t, "release", c.GinMode)
	assert.Equal(t, []string{"*"}, c.AllowedOrigins)
	assert.Equal(t, 120, c.RateLimitPerMinute)
	assert.Equal(t, "127.0.0.1", c.RedisHost)
	assert.Equal(t, 6379, c.RedisPort)
	assert.Equal(t, 10, c.BcryptCost)
	assert.Equal(t, "refcodes.txt", c.RefCodeFile)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, 5, c.ShutdownGraceSec)
	assert.Equal(t, 10, c.ShutdownKillSec)
}

func TestApplyDefaultsKeepsExplicitValues(t *testing.T) {
	c := AppConfig{AppPort: "8080", BcryptCost: 12}
	applyDefaults(&c)

	assert.Equal(t, "8080", c.AppPort)
	assert.Equal(t, 12, c.BcryptCost)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9000")
	t.Setenv("REDIS_HOST", "redis.internal")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("BCRYPT_COST", "4")
	t.Setenv("SMTP_TLS", "true")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")

	var c AppConfig
	applyDefaults(&c)
	applyEnvOverrides(&c)

	assert.Equal(t, "9000", c.AppPort)
	assert.Equal(t, "redis.internal", c.RedisHost)
	assert.Equal(t, 6380, c.RedisPort)
	assert.Equal(t, 4, c.BcryptCost)
	assert.True(t, c.SMTPTLS)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, c.AllowedOrigins)
}

func TestEnvOverrideIgnoresBadInt(t *testing.T) {
	t.Setenv("REDIS_PORT", "not-a-number")

	var c AppConfig
	applyDefaults(&c)
	applyEnvOverrides(&c)

	assert.Equal(t, 6379, c.RedisPort)
}

func TestLoadJSONConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	body := `{"app_port":"4000","redis_db":2,"smtp_tls":true,"allowed_origins":["https://x.example"]}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	var c AppConfig
	require.NoError(t, loadJSONConfig(path, &c))

	assert.Equal(t, "4000", c.AppPort)
	assert.Equal(t, 2, c.RedisDB)
	assert.True(t, c.SMTPTLS)
	assert.Equal(t, []string{"https://x.example"}, c.AllowedOrigins)
}

func TestLoadJSONConfigMissingFileIsFine(t *testing.T) {
	var c AppConfig
	assert.NoError(t, loadJSONConfig(filepath.Join(t.TempDir(), "absent.json"), &c))
	assert.Equal(t, AppConfig{}, c)
}

func TestLoadJSONConfigRejectsInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{nope"), 0o644))

	var c AppConfig
	assert.Error(t, loadJSONConfig(path, &c))
}
