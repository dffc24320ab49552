// Package config loads cabledraw settings from a TOML file and the
// environment.
//
// Precedence is defaults, then the file, then environment variables:
//
//	DRAWINGS_DIR          storage.drawings_dir
//	TEMPLATE_PACKS_DIR    storage.template_packs_dir
//	ASSEMBLIES_DIR        storage.assemblies_dir
//	RENDERER_SERVICE_URL  renderer.service_url
//	CABLEDRAW_ADDR        server.addr
//	REDIS_ADDR            redis.addr
//	MONGO_URI             mongo.uri
//	LOG_LEVEL             log.level
//
// A missing file is not an error; the defaults describe a single-instance
// deployment with in-process rendering and no external services.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/cabledraw/pkg/errors"
)

const appName = "cabledraw"

// Config is the full configuration.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Storage  StorageConfig  `toml:"storage"`
	Renderer RendererConfig `toml:"renderer"`
	Redis    RedisConfig    `toml:"redis"`
	Mongo    MongoConfig    `toml:"mongo"`
	Log      LogConfig      `toml:"log"`
}

// ServerConfig configures the HTTP listeners.
type ServerConfig struct {
	Addr         string `toml:"addr"`
	WorkerAddr   string `toml:"worker_addr"`
	ReadTimeout  string `toml:"read_timeout"`
	WriteTimeout string `toml:"write_timeout"`
}

// StorageConfig configures where drawings, template packs and assembly
// schemas live. AssembliesDir is used when no MongoDB URI is configured.
type StorageConfig struct {
	DrawingsDir      string `toml:"drawings_dir"`
	TemplatePacksDir string `toml:"template_packs_dir"`
	AssembliesDir    string `toml:"assemblies_dir"`
}

// RendererConfig selects the renderer. An empty ServiceURL renders in-process.
type RendererConfig struct {
	ServiceURL string `toml:"service_url"`
	Timeout    string `toml:"timeout"`
	Retries    int    `toml:"retries"`
}

// RedisConfig enables the cross-instance render lock when Addr is set.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	LockTTL  string `toml:"lock_ttl"`
}

// MongoConfig enables the MongoDB assembly store when URI is set.
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `toml:"level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:         ":8080",
			WorkerAddr:   ":5002",
			ReadTimeout:  "30s",
			WriteTimeout: "60s",
		},
		Storage: StorageConfig{
			DrawingsDir: "drawings",
		},
		Renderer: RendererConfig{
			Timeout: "30s",
			Retries: 3,
		},
		Redis: RedisConfig{
			LockTTL: "2m",
		},
		Mongo: MongoConfig{
			Database:   "cabledraw",
			Collection: "assemblies",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultPath returns the config file location (~/.config/cabledraw/config.toml).
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName, "config.toml")
}

// Load reads path over the defaults and applies environment overrides.
// An empty path or a missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if _, err := toml.Decode(string(data), cfg); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
			}
		}
	}

	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to path as TOML.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("DRAWINGS_DIR"); v != "" {
		c.Storage.DrawingsDir = v
	}
	if v := os.Getenv("TEMPLATE_PACKS_DIR"); v != "" {
		c.Storage.TemplatePacksDir = v
	}
	if v := os.Getenv("ASSEMBLIES_DIR"); v != "" {
		c.Storage.AssembliesDir = v
	}
	if v := os.Getenv("RENDERER_SERVICE_URL"); v != "" {
		c.Renderer.ServiceURL = v
	}
	if v := os.Getenv("CABLEDRAW_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("MONGO_URI"); v != "" {
		c.Mongo.URI = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = strings.ToLower(v)
	}
}

// ValidLogLevels lists accepted log levels.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	valid := false
	for _, l := range ValidLogLevels {
		if c.Log.Level == l {
			valid = true
			break
		}
	}
	if !valid {
		return errors.New(errors.ErrCodeInvalidInput, "invalid log level: %q (valid: %v)", c.Log.Level, ValidLogLevels)
	}
	if c.Storage.DrawingsDir == "" {
		return errors.New(errors.ErrCodeInvalidInput, "storage.drawings_dir is required")
	}
	if c.Renderer.ServiceURL != "" {
		if err := errors.ValidateURL(c.Renderer.ServiceURL); err != nil {
			return err
		}
	}
	if c.Renderer.Retries < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "renderer.retries cannot be negative")
	}
	for name, v := range map[string]string{
		"server.read_timeout":  c.Server.ReadTimeout,
		"server.write_timeout": c.Server.WriteTimeout,
		"renderer.timeout":     c.Renderer.Timeout,
		"redis.lock_ttl":       c.Redis.LockTTL,
	} {
		if v == "" {
			continue
		}
		if _, err := time.ParseDuration(v); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid duration for %s", name)
		}
	}
	return nil
}

// RendererTimeout returns the remote renderer timeout.
func (c *Config) RendererTimeout() time.Duration {
	return parseDuration(c.Renderer.Timeout, 30*time.Second)
}

// LockTTL returns the render lock TTL.
func (c *Config) LockTTL() time.Duration {
	return parseDuration(c.Redis.LockTTL, 2*time.Minute)
}

// ReadTimeout returns the HTTP server read timeout.
func (c *Config) ReadTimeout() time.Duration {
	return parseDuration(c.Server.ReadTimeout, 30*time.Second)
}

// WriteTimeout returns the HTTP server write timeout.
func (c *Config) WriteTimeout() time.Duration {
	return parseDuration(c.Server.WriteTimeout, 60*time.Second)
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
