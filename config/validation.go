package config

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that the configuration is usable for the selected
// storage driver. All problems are reported together.
func ValidateConfig(cfg *Config) error {
	var errs []error
	fail := func(field, msg string) {
		errs = append(errs, ValidationError{Field: field, Message: msg})
	}

	if port, err := strconv.Atoi(cfg.ServerPort); err != nil || port <= 0 || port > 65535 {
		fail("server_port", fmt.Sprintf("invalid port %q", cfg.ServerPort))
	}

	switch cfg.StorageDriver {
	case DriverPostgres:
		if cfg.DBHost == "" {
			fail("db_host", "required for postgres")
		}
		if cfg.DBName == "" {
			fail("db_name", "required for postgres")
		}
		if cfg.DBPassword == "" && GetEnvironment() == Production {
			fail("db_password", "required in production")
		}
	case DriverSQLite:
		if cfg.SQLitePath == "" {
			fail("sqlite_path", "required for sqlite")
		}
	case DriverMongo:
		if cfg.MongoURI == "" {
			fail("mongo_uri", "required for mongo")
		}
		if cfg.MongoDatabase == "" || cfg.MongoCollection == "" {
			fail("mongo_database", "database and collection are required for mongo")
		}
	default:
		fail("storage_driver", fmt.Sprintf("unknown driver %q", cfg.StorageDriver))
	}

	if cfg.DefaultLimit <= 0 {
		fail("default_limit", "must be positive")
	}
	if cfg.MaxLimit > 0 && cfg.MaxLimit < cfg.DefaultLimit {
		fail("max_limit", "must not be smaller than default_limit")
	}
	if cfg.RedisURL != "" && cfg.CacheTTL <= 0 {
		fail("cache_ttl", "must be positive when redis is enabled")
	}
	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		fail("log_level", err.Error())
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		fail("log_format", fmt.Sprintf("unknown format %q", cfg.LogFormat))
	}

	return errors.Join(errs...)
}
