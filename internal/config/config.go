// Package config loads depscope configuration from a TOML file with
// .env and DEPSCOPE_* environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Backend names accepted by the cache.backend setting.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config is the resolved configuration for one run.
type Config struct {
	Registry Registry `toml:"registry"`
	Cache    CacheCfg `toml:"cache"`
	Redis    Redis    `toml:"redis"`
	Render   Render   `toml:"render"`
}

// Registry configures the live manifest source.
type Registry struct {
	URL string `toml:"url"` // empty selects the default public registry
}

// CacheCfg configures the manifest cache backend.
type CacheCfg struct {
	Backend string   `toml:"backend"` // file, redis, or none
	Dir     string   `toml:"dir"`     // file backend directory; empty = ~/.cache/depscope
	TTL     Duration `toml:"ttl"`
}

// Redis configures the redis cache backend.
type Redis struct {
	Addr string `toml:"addr"`
}

// Render configures the external diagram renderer.
type Render struct {
	Command string `toml:"command"` // executable invoked with the diagram file path
}

// Duration wraps time.Duration so TOML can carry values like "24h".
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Cache: CacheCfg{Backend: BackendFile, TTL: Duration(24 * time.Hour)},
		Redis: Redis{Addr: "localhost:6379"},
	}
}

// Load resolves the configuration: defaults, then the TOML file, then
// environment variables (a .env file in the working directory is read
// first if present). With an empty path the default config file
// location is used and may be absent; an explicit path must exist.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = defaultPath()
	}
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			if explicit || !os.IsNotExist(err) {
				return cfg, fmt.Errorf("load config %s: %w", path, err)
			}
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

// CacheDir returns the directory for the file cache backend.
func (c Config) CacheDir() string {
	if c.Cache.Dir != "" {
		return c.Cache.Dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".depscope-cache"
	}
	return filepath.Join(home, ".cache", "depscope")
}

func defaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "depscope", "config.toml")
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("DEPSCOPE_REGISTRY_URL"); v != "" {
		cfg.Registry.URL = v
	}
	if v := os.Getenv("DEPSCOPE_CACHE_BACKEND"); v != "" {
		cfg.Cache.Backend = v
	}
	if v := os.Getenv("DEPSCOPE_CACHE_DIR"); v != "" {
		cfg.Cache.Dir = v
	}
	if v := os.Getenv("DEPSCOPE_REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("DEPSCOPE_RENDERER"); v != "" {
		cfg.Render.Command = v
	}
}
