// Package config loads server configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/mcoot/batepapo/internal/api"
	"github.com/mcoot/batepapo/internal/factory"
	mongostorage "github.com/mcoot/batepapo/internal/storage/mongo"
	redisstorage "github.com/mcoot/batepapo/internal/storage/redis"
)

// Config is the server configuration
type Config struct {
	Host     string `env:"HOST"`
	Port     int    `env:"PORT"      envDefault:"5000"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	StorageType   string        `env:"STORAGE_TYPE"   envDefault:"memory"`
	RedisURL      string        `env:"REDIS_URL"`
	DatabaseURL   string        `env:"DATABASE_URL"`
	MongoDatabase string        `env:"MONGO_DATABASE" envDefault:"batepapo"`
	SQLitePath    string        `env:"SQLITE_PATH"    envDefault:"batepapo.db"`
	StoreTimeout  time.Duration `env:"STORE_TIMEOUT"  envDefault:"5s"`

	ReadTimeout     time.Duration `env:"READ_TIMEOUT"     envDefault:"15s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT"    envDefault:"15s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

// Load reads an optional .env file into the environment, then parses it
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}
	return Parse()
}

// Parse builds a Config from the current environment
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate reports every configuration problem at once
func (c Config) Validate() error {
	var errs []error

	if c.Port < 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT %d out of range", c.Port))
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}

	switch c.StorageType {
	case factory.StorageTypeMemory:
	case factory.StorageTypeRedis:
		if c.RedisURL == "" {
			errs = append(errs, errors.New("REDIS_URL required when STORAGE_TYPE=redis"))
		}
	case factory.StorageTypeMongo:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL required when STORAGE_TYPE=mongo"))
		}
	case factory.StorageTypeSQLite:
		if strings.TrimSpace(c.SQLitePath) == "" {
			errs = append(errs, errors.New("SQLITE_PATH required when STORAGE_TYPE=sqlite"))
		}
	default:
		errs = append(errs, fmt.Errorf("invalid STORAGE_TYPE %q", c.StorageType))
	}

	return errors.Join(errs...)
}

// SlogLevel returns the configured log level, defaulting to info
func (c Config) SlogLevel() slog.Level {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q", s)
	}
	return level, nil
}

// Factory builds the application factory configuration
func (c Config) Factory(logger *slog.Logger) factory.Config {
	cfg := factory.Config{
		Logger:       logger,
		StorageType:  c.StorageType,
		StoreTimeout: c.StoreTimeout,
		SQLitePath:   c.SQLitePath,
	}

	switch c.StorageType {
	case factory.StorageTypeRedis:
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = c.RedisURL
		cfg.RedisConfig = &redisCfg
	case factory.StorageTypeMongo:
		mongoCfg := mongostorage.DefaultConfig()
		mongoCfg.URI = c.DatabaseURL
		mongoCfg.Database = c.MongoDatabase
		cfg.MongoConfig = &mongoCfg
	}

	return cfg
}

// Server builds the HTTP server configuration
func (c Config) Server() api.ServerConfig {
	return api.ServerConfig{
		Host:            c.Host,
		Port:            c.Port,
		ReadTimeout:     c.ReadTimeout,
		WriteTimeout:    c.WriteTimeout,
		ShutdownTimeout: c.ShutdownTimeout,
	}
}
