// Package config loads runtime settings for the loot CLI from the environment
package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/KirkDiggler/rpg-loot/internal/errors"
)

// Table sources
const (
	SourceFile  = "file"
	SourceRedis = "redis"
)

// Config is the runtime configuration. Command line flags override it.
type Config struct {
	TablesDir      string        `env:"LOOT_TABLES_DIR" envDefault:"tables"`
	TableSource    string        `env:"LOOT_TABLE_SOURCE" envDefault:"file"`
	RedisAddr      string        `env:"LOOT_REDIS_ADDR" envDefault:"localhost:6379"`
	MaterialsTable string        `env:"LOOT_MATERIALS_TABLE" envDefault:"special_materials"`
	HistoryTTL     time.Duration `env:"LOOT_HISTORY_TTL" envDefault:"24h"`
	LogLevel       string        `env:"LOOT_LOG_LEVEL" envDefault:"info"`
}

// Load parses the environment and validates the result
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "parse env")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks enumerations and required values
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateEnum("table_source", c.TableSource, []string{SourceFile, SourceRedis}, vb)
	errors.ValidateEnum("log_level", strings.ToLower(c.LogLevel), []string{"debug", "info", "warn", "error"}, vb)
	errors.ValidateRequired("materials_table", c.MaterialsTable, vb)
	if c.TableSource == SourceFile {
		errors.ValidateRequired("tables_dir", c.TablesDir, vb)
	}
	if c.TableSource == SourceRedis {
		errors.ValidateRequired("redis_addr", c.RedisAddr, vb)
	}
	if c.HistoryTTL <= 0 {
		vb.Field("history_ttl", "must be positive")
	}

	return vb.Build()
}

// SlogLevel maps LogLevel onto a slog level, defaulting to info
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
