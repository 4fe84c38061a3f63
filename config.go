package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// DefaultConfigFile is read when --config is not given and the file exists
const DefaultConfigFile = "gallery.toml"

// Config is the application configuration
type Config struct {
	Visibility VisibilityConfig `toml:"visibility"`
	Server     ServerConfig     `toml:"server"`
	Cache      CacheConfig      `toml:"cache"`
	Log        LogConfig        `toml:"log"`
}

type VisibilityConfig struct {
	Epsilon         float64 `toml:"epsilon"`
	RequireInterior bool    `toml:"require_interior"`
	AllowDegenerate bool    `toml:"allow_degenerate"`
	Workers         int     `toml:"workers"`
	IndexThreshold  int     `toml:"index_threshold"`
	Simplify        float64 `toml:"simplify"`
	SimplifyAuto    bool    `toml:"simplify_auto"`
}

type ServerConfig struct {
	Addr       string `toml:"addr"`
	CORSOrigin string `toml:"cors_origin"`
	// MaxVertices rejects larger polygons before the O(n^3) build starts
	MaxVertices int `toml:"max_vertices"`
}

type CacheConfig struct {
	Backend   string `toml:"backend"` // "memory", "redis" or "none"
	Size      int    `toml:"size"`
	RedisAddr string `toml:"redis_addr"`
	TTL       string `toml:"ttl"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

// DefaultConfig returns a configuration that works without any file
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:        ":8080",
			CORSOrigin:  "*",
			MaxVertices: 1000,
		},
		Cache: CacheConfig{
			Backend: "memory",
			Size:    256,
			TTL:     "1h",
		},
		Log: LogConfig{Level: "info"},
	}
}

// LoadConfig reads .env, then the TOML file at path (or DefaultConfigFile if
// path is empty and that file exists), then environment overrides
func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()

	if path == "" {
		if _, err := os.Stat(DefaultConfigFile); err == nil {
			path = DefaultConfigFile
		}
	}
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if addr := strings.TrimSpace(os.Getenv("GALLERY_ADDR")); addr != "" {
		c.Server.Addr = addr
	} else if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		if strings.HasPrefix(port, ":") {
			c.Server.Addr = port
		} else {
			c.Server.Addr = ":" + port
		}
	}
	if backend := strings.TrimSpace(os.Getenv("GALLERY_CACHE_BACKEND")); backend != "" {
		c.Cache.Backend = backend
	}
	if addr := strings.TrimSpace(os.Getenv("GALLERY_REDIS_ADDR")); addr != "" {
		c.Cache.RedisAddr = addr
	}
	if level := strings.TrimSpace(os.Getenv("GALLERY_LOG_LEVEL")); level != "" {
		c.Log.Level = level
	}
}

// Validate checks values that would otherwise fail late
func (c *Config) Validate() error {
	var errs []error
	if c.Visibility.Epsilon < 0 {
		errs = append(errs, fmt.Errorf("visibility.epsilon must not be negative"))
	}
	if c.Visibility.Simplify < 0 {
		errs = append(errs, fmt.Errorf("visibility.simplify must not be negative"))
	}
	switch c.Cache.Backend {
	case "memory", "none", "":
	case "redis":
		if c.Cache.RedisAddr == "" {
			errs = append(errs, fmt.Errorf("cache.redis_addr is required for the redis backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown cache backend %q", c.Cache.Backend))
	}
	if _, err := c.Cache.ttl(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (c CacheConfig) ttl() (time.Duration, error) {
	if c.TTL == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.TTL)
	if err != nil {
		return 0, fmt.Errorf("invalid cache.ttl %q: %w", c.TTL, err)
	}
	return d, nil
}

// BuildOptions converts the visibility section into builder options
func (c VisibilityConfig) BuildOptions() BuildOptions {
	return BuildOptions{
		Epsilon:         c.Epsilon,
		RequireInterior: c.RequireInterior,
		AllowDegenerate: c.AllowDegenerate,
		Workers:         c.Workers,
		IndexThreshold:  c.IndexThreshold,
	}
}
