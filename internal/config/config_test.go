package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfig_FileAndDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
database:
  driver: postgres
  host: db.internal
  name: collections
kafka:
  brokers: ["k1:9092", "k2:9092"]
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)

	assert.Equal(t, 15, cfg.Business.PageSize)
	assert.Equal(t, 50, cfg.Business.SearchLimit)
	assert.Equal(t, 20, cfg.Business.ClientSearchLimit)
	assert.Equal(t, 12*time.Hour, cfg.Session.TTL)
	assert.Equal(t, "casebook_session", cfg.Session.CookieName)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 9090\n")
	t.Setenv("CASEBOOK_SERVER_PORT", "7070")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost/cases")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "postgres://u:p@localhost/cases", cfg.Database.DSN)
}

func TestLoadConfig_Invalid(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 70000
database:
  driver: oracle
`)

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid server.port 70000")
	assert.Contains(t, err.Error(), "invalid database.driver")
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
