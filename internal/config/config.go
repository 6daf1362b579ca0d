package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/AngelCh415/creator-payout/internal/engine"
)

type Store struct {
	Backend       string `yaml:"backend" env:"STORE_BACKEND"` // memory, file, sqlite, redis
	Dir           string `yaml:"dir" env:"STORE_DIR"`
	SQLitePath    string `yaml:"sqlite_path" env:"SQLITE_PATH"`
	RedisAddr     string `yaml:"redis_addr" env:"REDIS_ADDR"`
	RedisPassword string `yaml:"redis_password" env:"REDIS_PASSWORD"`
	RedisDB       int    `yaml:"redis_db" env:"REDIS_DB"`
	RedisPrefix   string `yaml:"redis_prefix" env:"REDIS_PREFIX"`
}

type Config struct {
	Port         string         `yaml:"port" env:"PORT"`
	LogLevelName string         `yaml:"log_level" env:"LOG_LEVEL"`
	HTTPTimeout  time.Duration  `yaml:"http_timeout" env:"HTTP_TIMEOUT"`
	ExportSecret string         `yaml:"export_secret" env:"EXPORT_SECRET"`
	Pricing      engine.Pricing `yaml:"pricing"`
	Store        Store          `yaml:"store"`
}

func Default() Config {
	return Config{
		Port:         "8080",
		LogLevelName: "info",
		HTTPTimeout:  15 * time.Second,
		Pricing:      engine.DefaultPricing,
		Store: Store{
			Backend:     "file",
			Dir:         "data",
			SQLitePath:  "data/creators.db",
			RedisAddr:   "localhost:6379",
			RedisPrefix: "creator_crm:",
		},
	}
}

// Load layers defaults, the optional CONFIG_FILE and the environment, in that order.
func Load() (Config, error) {
	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, cfg.validate()
}

func (c *Config) mergeFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("decode config file: %w", err)
	}
	return nil
}

func (c Config) validate() error {
	switch strings.ToLower(c.Store.Backend) {
	case "memory", "file", "sqlite", "redis":
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
	if c.Pricing.MonthlyPrice <= 0 || c.Pricing.AnnualPrice <= 0 {
		return fmt.Errorf("pricing must be positive")
	}
	return nil
}

func (c Config) LogLevel() slog.Level {
	switch strings.ToLower(c.LogLevelName) {
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
