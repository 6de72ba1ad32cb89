// Package config loads the modalroute settings file.
//
// Settings live in a TOML file, by default
// $XDG_CONFIG_HOME/modalroute/config.toml. A missing default file is not an
// error; every field then keeps its default. Environment variables override
// the file, and command-line flags override both.
//
//	log_file = "caminhos.txt"
//	log_style = "args"
//	uppercase = true
//
//	[cache]
//	backend = "redis"
//	ttl = "24h"
//	redis_addr = "localhost:6379"
//
//	[server]
//	addr = ":8080"
//	cors_origins = ["*"]
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/modalroute/pkg/cache"
	"github.com/matzehuels/modalroute/pkg/resultlog"
)

// AppName names the configuration and cache directories.
const AppName = "modalroute"

// Config is the full settings file.
type Config struct {
	LogFile   string       `toml:"log_file"`
	LogStyle  string       `toml:"log_style"`
	Uppercase bool         `toml:"uppercase"`
	Cache     CacheConfig  `toml:"cache"`
	Server    ServerConfig `toml:"server"`
}

// CacheConfig selects the route cache backend.
type CacheConfig struct {
	Backend   string   `toml:"backend"`
	Dir       string   `toml:"dir"`
	TTL       Duration `toml:"ttl"`
	RedisAddr string   `toml:"redis_addr"`
	RedisDB   int      `toml:"redis_db"`
	Prefix    string   `toml:"prefix"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr         string   `toml:"addr"`
	CORSOrigins  []string `toml:"cors_origins"`
	ReadTimeout  Duration `toml:"read_timeout"`
	WriteTimeout Duration `toml:"write_timeout"`
}

// Duration is a time.Duration written as a string such as "90s" or "24h".
type Duration struct{ time.Duration }

// UnmarshalText parses a Go duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the settings used when no file is present.
func Default() Config {
	return Config{
		LogFile:  resultlog.DefaultPath,
		LogStyle: "args",
		Cache: CacheConfig{
			Backend: cache.BackendFile,
			TTL:     Duration{cache.TTLRoute},
		},
		Server: ServerConfig{
			Addr:         ":8080",
			CORSOrigins:  []string{"*"},
			ReadTimeout:  Duration{10 * time.Second},
			WriteTimeout: Duration{30 * time.Second},
		},
	}
}

// Environment variables that override the file.
const (
	EnvLogFile   = "MODALROUTE_LOG_FILE"
	EnvCache     = "MODALROUTE_CACHE"
	EnvRedisAddr = "MODALROUTE_REDIS_ADDR"
	EnvAddr      = "MODALROUTE_ADDR"
)

// DefaultPath returns the default settings file location.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName, "config.toml"), nil
}

// Load reads the settings file at path on top of [Default] and applies
// environment overrides. An empty path means [DefaultPath], which may be
// absent; an explicit path must exist. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			cfg.applyEnv()
			return cfg, cfg.Validate()
		}
		path = p
	}

	md, err := toml.DecodeFile(path, &cfg)
	switch {
	case err == nil:
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return cfg, fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}

	cfg.applyEnv()
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() {
	if v, ok := os.LookupEnv(EnvLogFile); ok {
		c.LogFile = v
	}
	if v, ok := os.LookupEnv(EnvCache); ok {
		c.Cache.Backend = v
	}
	if v, ok := os.LookupEnv(EnvRedisAddr); ok {
		c.Cache.RedisAddr = v
	}
	if v, ok := os.LookupEnv(EnvAddr); ok {
		c.Server.Addr = v
	}
}

// Validate checks enumerated fields.
func (c Config) Validate() error {
	if _, err := resultlog.ParseStyle(c.LogStyle); err != nil {
		return err
	}
	switch c.Cache.Backend {
	case cache.BackendFile, cache.BackendMemory, cache.BackendRedis, cache.BackendNone:
	default:
		return fmt.Errorf("%w: %q", cache.ErrUnknownBackend, c.Cache.Backend)
	}
	if c.Cache.TTL.Duration < 0 {
		return fmt.Errorf("cache ttl must not be negative")
	}
	return nil
}

// Style returns the parsed log style.
func (c Config) Style() resultlog.Style {
	s, _ := resultlog.ParseStyle(c.LogStyle)
	return s
}

// CacheOptions converts the cache section for cache.Open. An empty
// directory is filled with the XDG cache location.
func (c Config) CacheOptions() cache.Options {
	dir := c.Cache.Dir
	if dir == "" {
		dir, _ = CacheDir()
	}
	return cache.Options{
		Backend:   c.Cache.Backend,
		Dir:       dir,
		RedisAddr: c.Cache.RedisAddr,
		RedisDB:   c.Cache.RedisDB,
		Prefix:    c.Cache.Prefix,
	}
}

// CacheDir returns the cache directory using XDG standard (~/.cache/modalroute/).
func CacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}
