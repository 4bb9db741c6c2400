// Package config loads service settings from an optional .env file, an
// optional YAML file and the process environment, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Store drivers.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config holds every runtime setting.
type Config struct {
	HTTPAddr        string        `yaml:"http_addr"`
	GRPCHealthAddr  string        `yaml:"grpc_health_addr"`
	LogLevel        string        `yaml:"log_level"`
	StoreDriver     string        `yaml:"store_driver"`
	MongoURL        string        `yaml:"mongo_url"`
	DatabaseName    string        `yaml:"database_name"`
	DatabaseDSN     string        `yaml:"database_dsn"`
	RedisAddr       string        `yaml:"redis_addr"`
	CacheTTL        time.Duration `yaml:"cache_ttl"`
	JWTSecret       string        `yaml:"jwt_secret_key"`
	JWTAudience     string        `yaml:"jwt_audience"`
	EnableSample    bool          `yaml:"enable_sample_data"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// Default returns the settings used when nothing overrides them.
func Default() Config {
	return Config{
		HTTPAddr:        ":8080",
		GRPCHealthAddr:  ":9090",
		LogLevel:        "info",
		StoreDriver:     DriverMongo,
		MongoURL:        "mongodb://localhost:27017",
		DatabaseName:    "casino_admin",
		ShutdownTimeout: 15 * time.Second,
	}
}

// Load reads .env (if present), then CONFIG_FILE (if set), then env overrides.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()
	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok {
			*dst = strings.TrimSpace(v)
		}
	}
	str("HTTP_ADDR", &c.HTTPAddr)
	str("GRPC_HEALTH_ADDR", &c.GRPCHealthAddr)
	str("LOG_LEVEL", &c.LogLevel)
	str("STORE_DRIVER", &c.StoreDriver)
	str("MONGO_URL", &c.MongoURL)
	str("DATABASE_NAME", &c.DatabaseName)
	str("DATABASE_DSN", &c.DatabaseDSN)
	str("REDIS_ADDR", &c.RedisAddr)
	str("JWT_SECRET_KEY", &c.JWTSecret)
	str("JWT_AUDIENCE", &c.JWTAudience)

	if v, ok := lookup("ENABLE_SAMPLE_DATA"); ok && strings.TrimSpace(v) != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("ENABLE_SAMPLE_DATA: %w", err)
		}
		c.EnableSample = b
	}
	for key, dst := range map[string]*time.Duration{
		"CACHE_TTL":        &c.CacheTTL,
		"SHUTDOWN_TIMEOUT": &c.ShutdownTimeout,
	} {
		v, ok := lookup(key)
		if !ok || strings.TrimSpace(v) == "" {
			continue
		}
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = d
	}
	return nil
}

// Validate reports settings the service cannot start with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.JWTSecret) == "" {
		return errors.New("JWT_SECRET_KEY is required")
	}
	switch c.StoreDriver {
	case DriverMongo:
		if c.MongoURL == "" || c.DatabaseName == "" {
			return errors.New("MONGO_URL and DATABASE_NAME are required for the mongo driver")
		}
	case DriverPostgres:
		if c.DatabaseDSN == "" {
			return errors.New("DATABASE_DSN is required for the postgres driver")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	if c.CacheTTL < 0 {
		return errors.New("CACHE_TTL must not be negative")
	}
	if c.ShutdownTimeout <= 0 {
		return errors.New("SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}
