package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"ENV", "CI", "CONFIG_FILE", "SERVER_PORT", "PORT", "STORAGE_DRIVER", "DB_HOST", "DB_PASSWORD",
		"SQLITE_PATH", "MONGODB_URI", "REDIS_URL", "CACHE_TTL", "DEFAULT_LIMIT", "MAX_LIMIT",
		"CORS_ALLOWED_ORIGINS", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(name, "")
	}
	t.Setenv("SECRETS_DIR", t.TempDir())
}

func TestLoadConfigWithDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.ServerPort)
	assert.Equal(t, DriverPostgres, cfg.StorageDriver)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "recipes_db", cfg.DBName)
	assert.Equal(t, 10, cfg.DefaultLimit)
	assert.Equal(t, 100, cfg.MaxLimit)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Empty(t, cfg.RedisURL)
}

func TestLoadConfigFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("STORAGE_DRIVER", "mongo")
	t.Setenv("MONGODB_URI", "mongodb://mongo:27017")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("MAX_LIMIT", "50")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, DriverMongo, cfg.StorageDriver)
	assert.Equal(t, "mongodb://mongo:27017", cfg.MongoURI)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.Equal(t, 50, cfg.MaxLimit)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
}

func TestLoadConfigFileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("storage_driver: sqlite\nsqlite_path: /tmp/r.db\nserver_port: \"9000\"\n"), 0o644))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("SERVER_PORT", "9100")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.StorageDriver)
	assert.Equal(t, "/tmp/r.db", cfg.SQLitePath)
	assert.Equal(t, "9100", cfg.ServerPort)
}

func TestLoadConfigReadsPasswordSecret(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("SECRETS_DIR", dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "db_password"), []byte("s3cret\n"), 0o600))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "s3cret", cfg.DBPassword)
}

func TestValidateConfig(t *testing.T) {
	cfg := Default()
	cfg.ServerPort = "nope"
	cfg.StorageDriver = "oracle"
	cfg.LogLevel = "loud"

	err := ValidateConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server_port")
	assert.Contains(t, err.Error(), "storage_driver")
	assert.Contains(t, err.Error(), "log_level")

	var verr ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestLoadConfigEnvironmentDefaults(t *testing.T) {
	tests := []struct {
		name       string
		env, ci    string
		wantFormat string
		wantLevel  string
	}{
		{"development", "", "", "text", "info"},
		{"test", "test", "", "text", "warn"},
		{"ci", "", "true", "json", "info"},
		{"ci wins over test", "test", "true", "json", "info"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("ENV", tt.env)
			t.Setenv("CI", tt.ci)

			cfg, err := LoadConfig()
			require.NoError(t, err)
			assert.Equal(t, tt.wantFormat, cfg.LogFormat)
			assert.Equal(t, tt.wantLevel, cfg.LogLevel)
		})
	}
}

func TestLoadConfigEnvironmentLevelIsOverridable(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENV", "test")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestValidateConfigProductionNeedsPassword(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENV", "production")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db_password")
}

func TestLoadConfigRejectsBadNumbers(t *testing.T) {
	clearEnv(t)
	t.Setenv("DEFAULT_LIMIT", "ten")

	_, err := LoadConfig()
	assert.Error(t, err)
}
