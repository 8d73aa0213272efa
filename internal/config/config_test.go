package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/realty-marketplace/internal/config"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}

func TestConfigLoad_FromYAMLAndEnv(t *testing.T) {
	yaml := `
app:
  name: realty-marketplace
  version: 0.1.0
  env: test
  port: 18080

logger:
  level: info
  format: json
  output_target: stdout
  time_format: rfc3339

postgres:
  host: 127.0.0.1
  port: 5432
  sslmode: disable
  max_conns: 5

web:
  api_base_url: http://127.0.0.1:18080
  api_timeout: 2s
`
	path := writeTempConfig(t, yaml)

	t.Setenv("APP_POSTGRES_USER", "testuser")
	t.Setenv("APP_POSTGRES_PASSWORD", "testpass")
	t.Setenv("APP_POSTGRES_DB", "testdb")
	t.Setenv("APP_WEB_GZIP", "false")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 18080, cfg.App.Port)
	assert.Equal(t, "testuser", cfg.Postgres.User)
	assert.Equal(t, "testpass", cfg.Postgres.Password)
	assert.Equal(t, "testdb", cfg.Postgres.DBName)
	assert.Equal(t, "127.0.0.1", cfg.Postgres.Host)
	assert.EqualValues(t, 5, cfg.Postgres.MaxConns)
	assert.EqualValues(t, 1, cfg.Postgres.MinConns, "default applies when yaml omits the key")
	assert.Equal(t, "stdout", cfg.Logger.OutputTarget)
	assert.Equal(t, 2*time.Second, cfg.Web.APITimeout)
	assert.False(t, cfg.Web.Gzip)
	assert.Equal(t, 10*time.Second, cfg.App.ShutdownTimeout)
}

func TestConfigLoad_MissingRequiredEnvFails(t *testing.T) {
	yaml := `
app:
  name: abc
  env: test
  port: 18080

postgres:
  host: localhost
  port: 5432
`
	path := writeTempConfig(t, yaml)

	t.Setenv("APP_POSTGRES_USER", "")
	t.Setenv("APP_POSTGRES_PASSWORD", "")
	t.Setenv("APP_POSTGRES_DB", "")

	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestConfigLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestConfigLoad_InvalidPort(t *testing.T) {
	path := writeTempConfig(t, "app:\n  port: 70000\n")
	t.Setenv("APP_POSTGRES_USER", "u")
	t.Setenv("APP_POSTGRES_PASSWORD", "p")
	t.Setenv("APP_POSTGRES_DB", "d")

	_, err := config.Load(path)
	assert.Error(t, err)
}
