package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"gdscriptmcp/internal/logx"
	"gdscriptmcp/internal/paths"
	"gdscriptmcp/internal/tools"
)

// EnvConfigPath points at the YAML configuration file.
const EnvConfigPath = "GDSCRIPT_FORMATTER_MCP_CONFIG"

const configFileName = "config.yaml"

// Config captures how the server acquires the formatter and where it logs.
type Config struct {
	Version int           `yaml:"version"`
	Release ReleaseConfig `yaml:"release"`
	Cache   CacheConfig   `yaml:"cache"`
	Binary  BinaryConfig  `yaml:"binary"`
	Log     LogConfig     `yaml:"log"`
}

// ReleaseConfig describes the "latest release" metadata endpoint.
type ReleaseConfig struct {
	URL        string `yaml:"url"`
	TimeoutSec int    `yaml:"timeout_s"`
	Retries    *int   `yaml:"retries,omitempty"`
}

// RetriesValue returns the effective retry budget applying defaults.
func (r ReleaseConfig) RetriesValue() int {
	if r.Retries == nil {
		return 1
	}
	return *r.Retries
}

type CacheConfig struct {
	Dir string `yaml:"dir"`
}

// BinaryConfig pins a formatter executable, bypassing the cache.
type BinaryConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	Dir   string `yaml:"dir"`
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		Version: 1,
		Release: ReleaseConfig{
			URL:        tools.DefaultReleaseURL,
			TimeoutSec: 30,
			Retries:    intPtr(1),
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultPath is the config file consulted when neither --config nor
// GDSCRIPT_FORMATTER_MCP_CONFIG is set. It is "" when the platform has no
// user config directory.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, paths.AppName, configFileName)
}

// ResolvePath picks the config file: an explicit flag value, then the
// environment, then DefaultPath.
func ResolvePath(flagValue string) string {
	if v := strings.TrimSpace(flagValue); v != "" {
		return v
	}
	if v := strings.TrimSpace(os.Getenv(EnvConfigPath)); v != "" {
		return v
	}
	return DefaultPath()
}

// Load reads the YAML configuration from disk if it exists, otherwise returns
// the default configuration. Environment overrides are applied either way.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		contents, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(contents, &cfg); err != nil {
				return Config{}, fmt.Errorf("unmarshal config %s: %w", path, err)
			}
		}
	}
	cfg.ApplyDefaults()
	cfg.ApplyEnv(os.Getenv)
	return cfg, nil
}

// ApplyDefaults ensures nested fields fall back to sensible defaults when the
// YAML omits them.
func (c *Config) ApplyDefaults() {
	defaults := Default()

	if c.Version == 0 {
		c.Version = defaults.Version
	}
	if strings.TrimSpace(c.Release.URL) == "" {
		c.Release.URL = defaults.Release.URL
	}
	if c.Release.TimeoutSec == 0 {
		c.Release.TimeoutSec = defaults.Release.TimeoutSec
	}
	if c.Release.Retries == nil {
		c.Release.Retries = intPtr(defaults.Release.RetriesValue())
	}
	if strings.TrimSpace(c.Log.Level) == "" {
		c.Log.Level = defaults.Log.Level
	}
}

// ApplyEnv lets environment variables override file values. Empty values are
// treated as unset.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := strings.TrimSpace(getenv(tools.EnvCacheDir)); v != "" {
		c.Cache.Dir = v
	}
	if v := strings.TrimSpace(getenv(tools.EnvBinaryPath)); v != "" {
		c.Binary.Path = v
	}
	if v := strings.TrimSpace(getenv(logx.EnvLevel)); v != "" {
		c.Log.Level = v
	}
}

// Marshal returns the YAML encoding of the configuration.
func (c Config) Marshal() ([]byte, error) {
	buf, err := yaml.Marshal(&c)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return buf, nil
}

func intPtr(v int) *int {
	return &v
}
