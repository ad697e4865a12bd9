package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"

	"github.com/stretchr/testify/assert"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "config.yml"), []byte(content), 0o600)
	assert.NoError(t, err)
	return dir
}

func TestLoadConfig_FromFile(t *testing.T) {
	viper.Reset()
	dir := writeConfigFile(t, `
server:
  port: "8080"
jwt:
  secret_key: "file-secret"
  expires_in: 24h
cookie:
  name: "session"
  signing_key: "file-cookie-key"
`)

	cfg, err := LoadConfig(dir)
	assert.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "file-secret", cfg.JWT.SecretKey)
	assert.Equal(t, 24*time.Hour, cfg.JWT.ExpiresIn)
	assert.Equal(t, "session", cfg.Cookie.Name)
	assert.Equal(t, "file-cookie-key", cfg.Cookie.SigningKey)
}

func TestLoadConfig_AppliesDefaults(t *testing.T) {
	viper.Reset()
	dir := writeConfigFile(t, `
jwt:
  secret_key: "file-secret"
cookie:
  signing_key: "file-cookie-key"
`)

	cfg, err := LoadConfig(dir)
	assert.NoError(t, err)
	assert.Equal(t, "5000", cfg.Server.Port)
	assert.Equal(t, 168*time.Hour, cfg.JWT.ExpiresIn)
	assert.Equal(t, "auth_token", cfg.Cookie.Name)
}

func TestLoadConfig_MissingSecretsFail(t *testing.T) {
	t.Run("no jwt secret", func(t *testing.T) {
		viper.Reset()
		dir := writeConfigFile(t, `
cookie:
  signing_key: "file-cookie-key"
`)
		_, err := LoadConfig(dir)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret_key")
	})

	t.Run("no cookie signing key", func(t *testing.T) {
		viper.Reset()
		dir := writeConfigFile(t, `
jwt:
  secret_key: "file-secret"
`)
		_, err := LoadConfig(dir)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "cookie.signing_key")
	})
}

func TestLoadConfig_EnvOnly(t *testing.T) {
	viper.Reset()

	// No config.yml at all: a container providing the secrets through the
	// environment must still come up, with the defaults filling the rest.
	t.Setenv("JWT_SECRET_KEY", "env-secret")
	t.Setenv("COOKIE_SIGNING_KEY", "env-cookie-key")

	cfg, err := LoadConfig(t.TempDir())
	assert.NoError(t, err)
	assert.Equal(t, "env-secret", cfg.JWT.SecretKey)
	assert.Equal(t, "env-cookie-key", cfg.Cookie.SigningKey)
	assert.Equal(t, "5000", cfg.Server.Port)
	assert.Equal(t, 168*time.Hour, cfg.JWT.ExpiresIn)
	assert.Equal(t, "auth_token", cfg.Cookie.Name)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	viper.Reset()
	dir := writeConfigFile(t, `
jwt:
  secret_key: "file-secret"
cookie:
  signing_key: "file-cookie-key"
`)

	t.Setenv("JWT_SECRET_KEY", "env-secret")

	cfg, err := LoadConfig(dir)
	assert.NoError(t, err)
	assert.Equal(t, "env-secret", cfg.JWT.SecretKey)
}
