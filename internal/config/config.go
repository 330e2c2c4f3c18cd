// Package config loads server configuration from a yaml file with
// environment variable overrides. Command-line flags take precedence over
// both; that merge happens in the cmd layer.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so yaml values like "24h" parse.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Redis holds connection settings for the redis session store.
type Redis struct {
	Addr     string   `yaml:"addr"`
	Password string   `yaml:"password"`
	DB       int      `yaml:"db"`
	Prefix   string   `yaml:"prefix"`
	TTL      Duration `yaml:"ttl"`
}

// Config is the server configuration.
type Config struct {
	// Addr is the listen address. ":0" binds any free port; the bound port
	// is written to PortFile either way.
	Addr string `yaml:"addr"`

	// Prefix mounts the API routes under a path prefix.
	Prefix string `yaml:"prefix"`

	// SessionTimeout is the idle timeout applied when the maintenance
	// endpoint triggers a sweep.
	SessionTimeout Duration `yaml:"session_timeout"`

	// PortFile is where the bound port is recorded at startup. Empty
	// disables the file.
	PortFile string `yaml:"port_file"`

	// Store selects the session store: "memory" or "redis".
	Store string `yaml:"store"`

	LogLevel string `yaml:"log_level"`

	Redis Redis `yaml:"redis"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Addr:           "127.0.0.1:0",
		SessionTimeout: Duration(24 * time.Hour),
		PortFile:       "port.json",
		Store:          "memory",
		LogLevel:       "info",
	}
}

// Load reads the config file at path (empty path skips the file), then
// applies environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyEnv overrides fields from CYOA_* environment variables.
func (c *Config) applyEnv() error {
	if v := os.Getenv("CYOA_ADDR"); v != "" {
		c.Addr = v
	}
	if v := os.Getenv("CYOA_PREFIX"); v != "" {
		c.Prefix = v
	}
	if v := os.Getenv("CYOA_SESSION_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid CYOA_SESSION_TIMEOUT: %w", err)
		}
		c.SessionTimeout = Duration(d)
	}
	if v := os.Getenv("CYOA_PORT_FILE"); v != "" {
		c.PortFile = v
	}
	if v := os.Getenv("CYOA_STORE"); v != "" {
		c.Store = v
	}
	if v := os.Getenv("CYOA_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("CYOA_REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("CYOA_REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv("CYOA_REDIS_DB"); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid CYOA_REDIS_DB: %w", err)
		}
		c.Redis.DB = db
	}
	return nil
}
