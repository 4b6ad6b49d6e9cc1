package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sqliteConfig = `
env:
  serviceName: taskboard
  log:
    level: info
http:
  port: 8080
  timeouts:
    readTimeout: 3s
database:
  driver: SQLite
auth:
  bcryptCost: 4
metrics:
  enabled: true
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.yaml"), []byte(body), 0o600))

	return dir
}

func TestLoadWithEnv_FileAndEnvOverride(t *testing.T) {
	dir := writeConfig(t, sqliteConfig)
	t.Chdir(dir)
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DATABASE_SQLITEPATH", ":memory:")

	cfg, err := LoadWithEnv[Config]("app")
	require.NoError(t, err)

	assert.Equal(t, "taskboard", cfg.Env.ServiceName)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 3*time.Second, cfg.HTTP.Timeouts.ReadTimeout)
	assert.Equal(t, ":memory:", cfg.Database.SQLitePath)
	require.NotNil(t, cfg.Auth)
	assert.Equal(t, 4, cfg.Auth.BcryptCost)
}

func TestLoadWithEnv_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := LoadWithEnv[Config]("absent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "absent.yaml not found")
}

func TestApplyDefaults(t *testing.T) {
	t.Run("sqlite fills path and body limit", func(t *testing.T) {
		cfg := &Config{}
		cfg.Database.Driver = " SQLite "
		cfg.Metrics = &MetricsConfig{Enabled: true}

		require.NoError(t, cfg.applyDefaults())
		assert.Equal(t, DriverSQLite, cfg.Database.Driver)
		assert.Equal(t, defaultSQLitePath, cfg.Database.SQLitePath)
		assert.Equal(t, defaultMaxRequestBodySize, cfg.HTTP.MaxRequestBodySize)
		assert.Equal(t, DefaultMetricsPath, cfg.Metrics.Path)
	})

	t.Run("postgres requires its section", func(t *testing.T) {
		cfg := &Config{}

		err := cfg.applyDefaults()
		require.Error(t, err)
		assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	})

	t.Run("unknown driver", func(t *testing.T) {
		cfg := &Config{}
		cfg.Database.Driver = "oracle"

		err := cfg.applyDefaults()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported database driver")
	})
}

func TestBuildReplicasFromEnv(t *testing.T) {
	t.Setenv("POSTGRES_REPLICAS_0_HOST", "replica-a")
	t.Setenv("POSTGRES_REPLICAS_0_PORT", "5433")
	t.Setenv("POSTGRES_REPLICAS_0_USERNAME", "reader")
	t.Setenv("POSTGRES_REPLICAS_1_HOST", "replica-b")
	// Index 1 has no port, so the scan stops there.

	replicas := buildReplicasFromEnv()
	require.Len(t, replicas, 1)
	assert.Equal(t, "replica-a", replicas[0].Host)
	assert.Equal(t, "5433", replicas[0].Port)
	assert.Equal(t, "reader", replicas[0].UserName)
}

func TestFindConfigFile_SearchOrder(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "nested"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "nested", "app.yaml"), []byte(sqliteConfig), 0o600))
	t.Chdir(root)

	path, err := findConfigFile("app", []string{"missing", "nested"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "nested", "app.yaml"), path)
}
