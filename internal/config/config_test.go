package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"crateledger-backend/internal/config"

	"github.com/stretchr/testify/assert"
)

const minimalYAML = `
server:
  host: "127.0.0.1"
  port: 9090
database:
  host: "db"
  port: 5432
  user: "app"
  password: "pw"
  database: "crates"
  ssl_mode: "disable"
jwt:
  secret: "a-very-long-secret-for-testing-purposes!"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, minimalYAML))
	assert.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", cfg.GetServerAddress())
	assert.Equal(t, 168*time.Hour, cfg.LostThreshold())
	assert.Equal(t, 720*time.Minute, cfg.SessionTTL())
	assert.Equal(t, 480*time.Minute, cfg.AccessTokenTTL())
	assert.Equal(t, "0 0 2 * * *", cfg.Scheduler.ScanLostLoans)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_RejectsShortSecret(t *testing.T) {
	bad := `
server:
  port: 8080
database:
  host: "db"
  user: "app"
  database: "crates"
jwt:
  secret: "short"
`
	_, err := config.Load(writeConfig(t, bad))
	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DB_HOST", "override-host")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := config.Load(writeConfig(t, minimalYAML))
	assert.NoError(t, err)
	assert.Equal(t, "override-host", cfg.Database.Host)
	assert.Equal(t, "debug", cfg.Log.Level)
}
