package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds everything the API process needs. Values come from defaults,
// then an optional YAML file, then environment overrides (highest priority).
type Config struct {
	Env        string `yaml:"env"`
	Port       string `yaml:"port"`
	CORSOrigin string `yaml:"cors_origin"`

	// DataDir is where the local record store file lives.
	DataDir string `yaml:"data_dir"`

	// AuthLatency simulates remote latency on auth store operations.
	AuthLatency time.Duration `yaml:"auth_latency"`

	// CookieSecure toggles the Secure attribute on session cookies. Disabled
	// in dev so plain-http local testing works.
	CookieSecure bool `yaml:"cookie_secure"`

	RateLimitAuthMax     int           `yaml:"rate_limit_auth_max"`
	RateLimitAuthWindow  time.Duration `yaml:"rate_limit_auth_window"`
	RateLimitWriteMax    int           `yaml:"rate_limit_write_max"`
	RateLimitWriteWindow time.Duration `yaml:"rate_limit_write_window"`
}

func Default() Config {
	return Config{
		Env:                  "dev",
		Port:                 "8080",
		CORSOrigin:           "*",
		DataDir:              ".",
		AuthLatency:          0,
		CookieSecure:         true,
		RateLimitAuthMax:     10,
		RateLimitAuthWindow:  time.Minute,
		RateLimitWriteMax:    60,
		RateLimitWriteWindow: time.Minute,
	}
}

// Load reads the YAML file at path (missing file is fine) and applies env
// overrides on top of defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(raw, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the config as YAML, mostly useful for generating a starter file.
func (c Config) Save(path string) error {
	raw, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}

func (c *Config) applyEnvOverrides() {
	if v := strings.TrimSpace(os.Getenv("ENV")); v != "" {
		c.Env = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv("PORT")); v != "" {
		c.Port = v
	}
	if v := strings.TrimSpace(os.Getenv("CORS_ORIGIN")); v != "" {
		c.CORSOrigin = v
	}
	if v := strings.TrimSpace(os.Getenv("AIFINANCE_DATA_DIR")); v != "" {
		c.DataDir = v
	}
	if v := strings.TrimSpace(os.Getenv("AUTH_LATENCY_MS")); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms >= 0 {
			c.AuthLatency = time.Duration(ms) * time.Millisecond
		}
	}
	if v := strings.TrimSpace(os.Getenv("COOKIE_SECURE")); v != "" {
		c.CookieSecure = strings.EqualFold(v, "true")
	}
	if v := strings.TrimSpace(os.Getenv("RATE_LIMIT_AUTH_MAX")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.RateLimitAuthMax = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("RATE_LIMIT_AUTH_WINDOW_SECONDS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.RateLimitAuthWindow = time.Duration(n) * time.Second
		}
	}
	if v := strings.TrimSpace(os.Getenv("RATE_LIMIT_WRITE_MAX")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.RateLimitWriteMax = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("RATE_LIMIT_WRITE_WINDOW_SECONDS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.RateLimitWriteWindow = time.Duration(n) * time.Second
		}
	}
}

// IsProduction reports whether the process runs with production settings.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}
