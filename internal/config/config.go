// Package config handles engine configuration: defaults, an optional
// YAML file, and environment variable overrides, in that precedence.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/argusvision/argus/internal/errors"
)

type Config struct {
	ServerURL        string  `yaml:"server_url"`
	APIKey           string  `yaml:"api_key"`
	AppName          string  `yaml:"app_name"`
	BatchName        string  `yaml:"batch_name"`
	MatchTimeoutSec  float64 `yaml:"match_timeout_sec"` // default retry budget
	DevicePixelRatio float64 `yaml:"device_pixel_ratio"`
	CaptureTitle     string  `yaml:"capture_title"`
	LogLevel         string  `yaml:"log_level"`
}

// Load builds a Config from defaults and environment variables.
func Load() *Config {
	cfg := defaults()
	applyEnv(cfg)
	return cfg
}

// LoadFile layers a YAML file between the defaults and the environment.
func LoadFile(path string) (*Config, error) {
	cfg := defaults()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.CodeConfigMissing, "reading config file %s", path)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, errors.CodeConfigInvalid, "parsing config file %s", path)
	}
	applyEnv(cfg)
	return cfg, nil
}

// Validate fails fast on settings the engine cannot run with.
func (c *Config) Validate() error {
	if c.ServerURL == "" {
		return errors.New(errors.CodeConfigMissing, "server URL is required")
	}
	if c.APIKey == "" {
		return errors.New(errors.CodeConfigMissing, "API key is required")
	}
	if c.MatchTimeoutSec < 0 {
		return errors.Newf(errors.CodeConfigInvalid, "match timeout must be >= 0, got %v", c.MatchTimeoutSec)
	}
	if c.DevicePixelRatio <= 0 {
		return errors.Newf(errors.CodeConfigInvalid, "device pixel ratio must be > 0, got %v", c.DevicePixelRatio)
	}
	return nil
}

// MatchTimeout returns the default retry budget as a duration.
func (c *Config) MatchTimeout() time.Duration {
	return time.Duration(c.MatchTimeoutSec * float64(time.Second))
}

func defaults() *Config {
	return &Config{
		AppName:          "argus",
		MatchTimeoutSec:  2.0,
		DevicePixelRatio: 1.0,
		CaptureTitle:     "",
		LogLevel:         "info",
	}
}

func applyEnv(c *Config) {
	c.ServerURL = getEnv("ARGUS_SERVER_URL", c.ServerURL)
	c.APIKey = getEnv("ARGUS_API_KEY", c.APIKey)
	c.AppName = getEnv("ARGUS_APP_NAME", c.AppName)
	c.BatchName = getEnv("ARGUS_BATCH_NAME", c.BatchName)
	c.MatchTimeoutSec = getEnvFloat("ARGUS_MATCH_TIMEOUT_SEC", c.MatchTimeoutSec)
	c.DevicePixelRatio = getEnvFloat("ARGUS_DEVICE_PIXEL_RATIO", c.DevicePixelRatio)
	c.CaptureTitle = getEnv("ARGUS_CAPTURE_TITLE", c.CaptureTitle)
	c.LogLevel = strings.ToLower(getEnv("ARGUS_LOG_LEVEL", c.LogLevel))
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}
