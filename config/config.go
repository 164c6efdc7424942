package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Storage drivers understood by the database package.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMongo    = "mongo"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerHost string `yaml:"server_host"`
	ServerPort string `yaml:"server_port"`

	// Storage configuration
	StorageDriver string `yaml:"storage_driver"`

	DBHost     string `yaml:"db_host"`
	DBPort     string `yaml:"db_port"`
	DBUser     string `yaml:"db_user"`
	DBPassword string `yaml:"db_password"`
	DBName     string `yaml:"db_name"`
	DBSSLMode  string `yaml:"db_ssl_mode"`
	SQLitePath string `yaml:"sqlite_path"`

	MongoURI        string `yaml:"mongo_uri"`
	MongoDatabase   string `yaml:"mongo_database"`
	MongoCollection string `yaml:"mongo_collection"`

	// Redis is optional; an empty URL disables the result cache
	RedisURL string        `yaml:"redis_url"`
	CacheTTL time.Duration `yaml:"cache_ttl"`

	// Pagination
	DefaultLimit int `yaml:"default_limit"`
	MaxLimit     int `yaml:"max_limit"`

	// CORS
	AllowedOrigins []string `yaml:"allowed_origins"`

	// Logging
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// Ingestion
	IngestSource string `yaml:"ingest_source"`
	AWSRegion    string `yaml:"aws_region"`
}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		ServerHost:      "0.0.0.0",
		ServerPort:      "5000",
		StorageDriver:   DriverPostgres,
		DBHost:          "localhost",
		DBPort:          "5432",
		DBUser:          "postgres",
		DBName:          "recipes_db",
		DBSSLMode:       "disable",
		SQLitePath:      "recipes.db",
		MongoURI:        "mongodb://127.0.0.1:27017",
		MongoDatabase:   "recipes_db",
		MongoCollection: "recipes",
		CacheTTL:        5 * time.Minute,
		DefaultLimit:    10,
		MaxLimit:        100,
		AllowedOrigins:  []string{"*"},
		LogLevel:        "info",
		LogFormat:       "text",
		IngestSource:    "data/recipes.json",
	}
}

// LoadConfig builds the configuration: defaults, then the optional YAML file
// named by CONFIG_FILE, then environment variables, then docker secrets for
// anything sensitive that is still empty.
func LoadConfig() (*Config, error) {
	cfg := Default()

	switch GetEnvironment() {
	case Production, CI:
		cfg.LogFormat = "json"
	case Test:
		cfg.LogLevel = "warn"
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if cfg.DBPassword == "" {
		cfg.DBPassword = readSecret("db_password")
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func applyEnv(cfg *Config) error {
	strs := map[string]*string{
		"SERVER_HOST":      &cfg.ServerHost,
		"SERVER_PORT":      &cfg.ServerPort,
		"PORT":             &cfg.ServerPort,
		"STORAGE_DRIVER":   &cfg.StorageDriver,
		"DB_HOST":          &cfg.DBHost,
		"DB_PORT":          &cfg.DBPort,
		"DB_USER":          &cfg.DBUser,
		"DB_PASSWORD":      &cfg.DBPassword,
		"DB_NAME":          &cfg.DBName,
		"DB_SSL_MODE":      &cfg.DBSSLMode,
		"SQLITE_PATH":      &cfg.SQLitePath,
		"MONGODB_URI":      &cfg.MongoURI,
		"MONGO_DATABASE":   &cfg.MongoDatabase,
		"MONGO_COLLECTION": &cfg.MongoCollection,
		"REDIS_URL":        &cfg.RedisURL,
		"LOG_LEVEL":        &cfg.LogLevel,
		"LOG_FORMAT":       &cfg.LogFormat,
		"INGEST_SOURCE":    &cfg.IngestSource,
		"AWS_REGION":       &cfg.AWSRegion,
	}
	for name, dst := range strs {
		if v, ok := os.LookupEnv(name); ok && v != "" {
			*dst = strings.TrimSpace(v)
		}
	}

	ints := map[string]*int{
		"DEFAULT_LIMIT": &cfg.DefaultLimit,
		"MAX_LIMIT":     &cfg.MaxLimit,
	}
	for name, dst := range ints {
		v := os.Getenv(name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		*dst = n
	}

	if v := os.Getenv("CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("CACHE_TTL: %w", err)
		}
		cfg.CacheTTL = d
	}

	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		cfg.AllowedOrigins = origins
	}

	return nil
}

// PostgresDSN renders the connection string for the postgres driver.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// Addr is the listen address of the HTTP server.
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
