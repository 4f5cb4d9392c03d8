// Package config loads application settings from the environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/abhisek/iq360/internal/llm"
	"github.com/abhisek/iq360/internal/store"
)

// Store backends.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Config is the full application configuration.
type Config struct {
	LLM   llm.Config
	Store StoreConfig
	Log   LogConfig
}

// StoreConfig selects and configures the snapshot backend. The LLM event
// log always lives in SQLite.
type StoreConfig struct {
	Backend     string `env:"STORE" envDefault:"sqlite"`
	DBPath      string `env:"DB"`
	SnapshotKey string `env:"SNAPSHOT_KEY" envDefault:"iq360_state_v2"`

	RedisAddr     string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`
	RedisTimeout  time.Duration `env:"REDIS_TIMEOUT" envDefault:"3s"`
}

// LogConfig configures the file logger.
type LogConfig struct {
	Level string `env:"LOG_LEVEL" envDefault:"info"`
	File  string `env:"LOG_FILE"`
}

// Redis returns the Redis backend settings.
func (s StoreConfig) Redis() store.RedisConfig {
	return store.RedisConfig{
		Addr:     s.RedisAddr,
		Password: s.RedisPassword,
		DB:       s.RedisDB,
		Key:      s.SnapshotKey,
		Timeout:  s.RedisTimeout,
	}
}

// Load reads .env (when present) and the IQ360_ environment. When the
// selected LLM provider has no key, the standard vendor key variables are
// probed.
func Load() (Config, error) {
	// A missing .env is the normal case.
	_ = godotenv.Load()

	var cfg Config
	if err := Parse(&cfg); err != nil {
		return Config{}, err
	}
	cfg.DiscoverLLM()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse fills target from IQ360_-prefixed environment variables.
func Parse(target any) error {
	if err := env.ParseWithOptions(target, env.Options{Prefix: llm.EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// DiscoverLLM fills in a provider key from the bare vendor variables when
// the configured provider has none. Reports whether a key was found.
func (c *Config) DiscoverLLM() bool {
	if c.LLM.HasKey() {
		return false
	}
	found, ok := llm.DiscoverConfig()
	if !ok {
		return false
	}
	c.LLM.UseKey(found.Provider, found.APIKey())
	return true
}

// Validate checks settings that do not depend on the LLM provider. The
// provider is validated when it is built so that commands which never
// call the model still work without a key.
func (c Config) Validate() error {
	switch c.Store.Backend {
	case BackendSQLite, BackendMemory:
	case BackendRedis:
		if c.Store.RedisAddr == "" {
			return errors.New("IQ360_REDIS_ADDR is required for the redis store")
		}
	default:
		return fmt.Errorf("unknown store backend: %q", c.Store.Backend)
	}
	if c.Store.SnapshotKey == "" {
		return errors.New("IQ360_SNAPSHOT_KEY must not be empty")
	}
	return nil
}
