// Package config loads runtime configuration from the environment, with
// sensible defaults for local use. A .env file in the working directory is
// honored when present.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Storage backend names accepted in AURA_STORAGE.
const (
	StorageMemory   = "memory"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
)

// Config holds everything the application needs at startup
type Config struct {
	Storage  StorageConfig
	Share    ShareConfig
	Ai       AiConfig
	Rewards  RewardsConfig
	LogLevel string
}

// StorageConfig selects and parameterizes the persistence backend
type StorageConfig struct {
	// Backend is one of memory, sqlite or postgres
	Backend string

	// SQLitePath is the database file used by the sqlite backend
	SQLitePath string

	// PostgresURL is the connection string used by the postgres backend
	PostgresURL string
}

// ShareConfig parameterizes receipt share links
type ShareConfig struct {
	// BaseURL is the origin the receipt fragment is appended to
	BaseURL string
}

// AiConfig overrides the assistant model names
type AiConfig struct {
	FlashModel string
	ProModel   string
}

// RewardsConfig points at an optional reward catalog file
type RewardsConfig struct {
	// CatalogPath, when set, replaces the built-in reward seed set
	CatalogPath string
}

// Load reads configuration from the environment. It returns an error when a
// backend is selected without its required parameters.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		zap.L().Warn(".env file not loaded", zap.Error(err))
	}

	cfg := &Config{
		Storage: StorageConfig{
			Backend:     getEnvString("AURA_STORAGE", StorageSQLite),
			SQLitePath:  getEnvString("AURA_SQLITE_PATH", "aura.db"),
			PostgresURL: getEnvString("AURA_POSTGRES_URL", ""),
		},
		Share: ShareConfig{
			BaseURL: getEnvString("AURA_SHARE_BASE_URL", "https://aura.app"),
		},
		Ai: AiConfig{
			FlashModel: getEnvString("AURA_FLASH_MODEL", ""),
			ProModel:   getEnvString("AURA_PRO_MODEL", ""),
		},
		Rewards: RewardsConfig{
			CatalogPath: getEnvString("AURA_REWARD_CATALOG", ""),
		},
		LogLevel: getEnvString("AURA_LOG_LEVEL", "info"),
	}

	switch cfg.Storage.Backend {
	case StorageMemory, StorageSQLite:
	case StoragePostgres:
		if cfg.Storage.PostgresURL == "" {
			return nil, fmt.Errorf("AURA_POSTGRES_URL is required when AURA_STORAGE=%s", StoragePostgres)
		}
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}

	return cfg, nil
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
