// Package config loads perktree application settings.
//
// # Overview
//
// Settings are layered by [Load] from, in increasing precedence:
//
//  1. [Default] values
//  2. $XDG_CONFIG_HOME/perktree/config.toml (global)
//  3. ./perktree.toml (project)
//  4. The file named by the "config" key (--config flag or PERKTREE_CONFIG)
//  5. Environment variables PERKTREE_<SECTION>_<KEY>, e.g. PERKTREE_CACHE_BACKEND
//  6. CLI flags bound to the viper instance
//
// Config files may be TOML, YAML or JSON; the format follows the extension.
// The merged result is decoded with mapstructure and checked with
// go-playground/validator.
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/BardicNoel/perktree/pkg/cache"
	perrors "github.com/BardicNoel/perktree/pkg/errors"
	"github.com/BardicNoel/perktree/pkg/layout"
	"github.com/BardicNoel/perktree/pkg/pipeline"
)

// Cache backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendNone   = "none"
)

// Config is the complete application configuration.
type Config struct {
	Layout layout.Config `mapstructure:"layout"`
	Render RenderConfig  `mapstructure:"render"`
	Cache  CacheConfig   `mapstructure:"cache"`
	Server ServerConfig  `mapstructure:"server"`
	Log    LogConfig     `mapstructure:"log"`

	// Concurrency bounds how many record files are laid out at once.
	Concurrency int `mapstructure:"concurrency" validate:"gte=1,lte=256"`
}

// RenderConfig holds default render options.
type RenderConfig struct {
	Formats    []string `mapstructure:"formats" validate:"dive,oneof=json dot svg"`
	ShowLabels bool     `mapstructure:"show_labels"`
	FlipY      bool     `mapstructure:"flip_y"`
}

// CacheConfig selects and configures the result cache.
type CacheConfig struct {
	Backend string        `mapstructure:"backend" validate:"oneof=memory file redis none"`
	Dir     string        `mapstructure:"dir" validate:"required_if=Backend file"`
	TTL     time.Duration `mapstructure:"ttl" validate:"gte=0"`
	Redis   RedisConfig   `mapstructure:"redis"`
}

// RedisConfig configures the redis backend.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db" validate:"gte=0"`
	Prefix   string `mapstructure:"prefix"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr" validate:"required,hostname_port"`
	MaxRecords      int           `mapstructure:"max_records" validate:"gt=0"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes" validate:"gt=0"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" validate:"gte=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" validate:"gte=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gte=0"`
}

// LogConfig configures logging. File enables a rotating log file in
// addition to stderr.
type LogConfig struct {
	Level      string `mapstructure:"level" validate:"oneof=debug info warn error"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" validate:"gte=0"`
	MaxBackups int    `mapstructure:"max_backups" validate:"gte=0"`
	MaxAgeDays int    `mapstructure:"max_age_days" validate:"gte=0"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Layout: layout.DefaultConfig(),
		Render: RenderConfig{
			Formats: []string{pipeline.FormatJSON},
		},
		Cache: CacheConfig{
			Backend: BackendFile,
			Dir:     DefaultCacheDir(),
			TTL:     cache.TTLLayout,
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: "perktree:",
			},
		},
		Server: ServerConfig{
			Addr:            "localhost:8080",
			MaxRecords:      pipeline.DefaultMaxRecords,
			MaxBodyBytes:    8 << 20,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Concurrency: pipeline.DefaultConcurrency,
	}
}

var (
	validate = validator.New()

	userCacheDir = os.UserCacheDir
)

// Validate checks field constraints. Layout distances are checked for sign
// only; zero distances fall back to defaults inside the engine.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return perrors.Wrap(perrors.ErrCodeInvalidConfig, err, "invalid configuration")
	}
	if c.Cache.Backend == BackendRedis && c.Cache.Redis.Addr == "" {
		return perrors.New(perrors.ErrCodeInvalidConfig, "cache.redis.addr is required for the redis backend")
	}
	return nil
}

// PipelineOptions returns pipeline options built from the layout and render
// sections.
func (c *Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		Layout:      c.Layout,
		Formats:     append([]string(nil), c.Render.Formats...),
		ShowLabels:  c.Render.ShowLabels,
		FlipY:       c.Render.FlipY,
		MaxRecords:  c.Server.MaxRecords,
		Concurrency: c.Concurrency,
	}
}

// OpenCache creates the configured cache. The caller owns the result and
// must Close it.
func (c *CacheConfig) OpenCache(ctx context.Context) (cache.Cache, error) {
	switch c.Backend {
	case BackendMemory:
		return cache.NewMemoryCache(), nil
	case BackendFile:
		fc, err := cache.NewFileCache(c.Dir)
		if err != nil {
			return nil, fmt.Errorf("open file cache: %w", err)
		}
		return fc, nil
	case BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     c.Redis.Addr,
			Password: c.Redis.Password,
			DB:       c.Redis.DB,
			Prefix:   c.Redis.Prefix,
		})
		if err != nil {
			return nil, err
		}
		return rc, nil
	case BackendNone:
		return cache.NewNullCache(), nil
	default:
		return nil, perrors.New(perrors.ErrCodeInvalidConfig, "unknown cache backend %q", c.Backend)
	}
}

// DefaultCacheDir returns the file cache location, under the user cache
// directory when one is available.
func DefaultCacheDir() string {
	if dir, err := userCacheDir(); err == nil {
		return filepath.Join(dir, "perktree")
	}
	return filepath.Join(".perktree", "cache")
}
