package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mantas/appointments/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
server:
  port: "9090"
db:
  driver: "sqlite"
  path: ":memory:"
jwt:
  secret: "0123456789abcdef0123456789abcdef"
  expiration_ms: 3600000
`

func writeEnv(t *testing.T, name, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+".yaml"), []byte(body), 0o600))
	return dir
}

func TestLoadFrom(t *testing.T) {
	// Arrange
	dir := writeEnv(t, "test", sample)

	// Act
	cfg, err := config.LoadFrom(dir, "test")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, time.Hour, cfg.JWT.TTL())
	assert.Equal(t, 10, cfg.Password.BcryptCost)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFrom_EnvOverrides(t *testing.T) {
	dir := writeEnv(t, "test", sample)
	t.Setenv("API_SECRET", "ffffffffffffffffffffffffffffffffffff")
	t.Setenv("JWT_EXPIRATION_MS", "1")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("BCRYPT_COST", "4")
	t.Setenv("LOG_FORMAT", "console")

	cfg, err := config.LoadFrom(dir, "test")

	require.NoError(t, err)
	assert.Equal(t, "ffffffffffffffffffffffffffffffffffff", cfg.JWT.Secret)
	assert.Equal(t, time.Millisecond, cfg.JWT.TTL())
	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, 4, cfg.Password.BcryptCost)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoadFrom_BadNumericOverride(t *testing.T) {
	dir := writeEnv(t, "test", sample)
	t.Setenv("JWT_EXPIRATION_MS", "soon")

	_, err := config.LoadFrom(dir, "test")

	assert.ErrorContains(t, err, "JWT_EXPIRATION_MS")
}

func TestLoadFrom_MissingFile(t *testing.T) {
	_, err := config.LoadFrom(t.TempDir(), "nope")

	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidate(t *testing.T) {
	dir := writeEnv(t, "test", sample)
	base, err := config.LoadFrom(dir, "test")
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(*config.Config)
		errMsg string
	}{
		{"short secret", func(c *config.Config) { c.JWT.Secret = "short" }, "jwt.secret"},
		{"zero ttl", func(c *config.Config) { c.JWT.ExpirationMs = 0 }, "jwt.expiration_ms"},
		{"unknown driver", func(c *config.Config) { c.DB.Driver = "mysql" }, "db.driver"},
		{"bcrypt cost", func(c *config.Config) { c.Password.BcryptCost = 40 }, "password.bcrypt_cost"},
		{"no port", func(c *config.Config) { c.Server.Port = "" }, "server.port"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := *base
			tt.mutate(&cfg)

			assert.ErrorContains(t, cfg.Validate(), tt.errMsg)
		})
	}
}

func TestLoad_LocalEnvironment(t *testing.T) {
	// Load resolves config/envs relative to the working directory.
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(filepath.Dir(wd)))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := config.Load("")

	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.NoError(t, cfg.Validate())
}
