package factory

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/mcoot/batepapo/internal/dependencies/clock"
	"github.com/mcoot/batepapo/internal/services/exchange"
	"github.com/mcoot/batepapo/internal/services/registry"
	"github.com/mcoot/batepapo/internal/storage"
	"github.com/mcoot/batepapo/internal/storage/memory"
	mongostorage "github.com/mcoot/batepapo/internal/storage/mongo"
	redisstorage "github.com/mcoot/batepapo/internal/storage/redis"
	sqlitestorage "github.com/mcoot/batepapo/internal/storage/sqlite"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
	StorageTypeMongo  = "mongo"
	StorageTypeSQLite = "sqlite"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock clock.Clock

	// Services
	Registry *registry.Service
	Exchange *exchange.Service

	Logger *slog.Logger
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory", "redis", "mongo" or "sqlite")
	// If empty, defaults to "memory"
	StorageType string
	// StoreTimeout bounds every store call; zero disables the bound
	StoreTimeout time.Duration
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// MongoConfig holds MongoDB connection settings (required if StorageType is "mongo")
	MongoConfig *mongostorage.Config
	// SQLitePath is the database file (required if StorageType is "sqlite")
	SQLitePath string
}

// New creates a new application with all dependencies wired.
// The store is connected before New returns; call Close on shutdown.
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	store, err := openStorage(cfg)
	if err != nil {
		return nil, err
	}
	logger.Info("storage ready", slog.String("type", storageTypeOrDefault(cfg.StorageType)))

	return newWithDependencies(storage.WithTimeout(store, cfg.StoreTimeout), clock.New(nil), logger), nil
}

func storageTypeOrDefault(t string) string {
	if t == "" {
		return StorageTypeMemory
	}
	return t
}

func openStorage(cfg Config) (storage.Storage, error) {
	switch storageTypeOrDefault(cfg.StorageType) {
	case StorageTypeMemory:
		return memory.New(), nil
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		return redisstorage.New(*cfg.RedisConfig)
	case StorageTypeMongo:
		if cfg.MongoConfig == nil {
			return nil, errors.New("MongoConfig required when StorageType is mongo")
		}
		return mongostorage.New(*cfg.MongoConfig)
	case StorageTypeSQLite:
		return sqlitestorage.Open(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("invalid StorageType %q: must be 'memory', 'redis', 'mongo' or 'sqlite'", cfg.StorageType)
	}
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, logger *slog.Logger) *App {
	return &App{
		Storage:  store,
		Clock:    clk,
		Registry: registry.New(store, clk, logger),
		Exchange: exchange.New(store, clk, logger),
		Logger:   logger,
	}
}

// Close releases the store connection
func (a *App) Close() error {
	if err := a.Storage.Close(); err != nil {
		return fmt.Errorf("close storage: %w", err)
	}
	return nil
}
