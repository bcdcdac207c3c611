package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".hacksnooze"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File is the on-disk YAML configuration. Only the stable, long-lived
// settings live here; per-invocation choices like output format stay
// on the command line.
type File struct {
	// BaseURL overrides the default API endpoint.
	BaseURL string `yaml:"base_url"`

	// Timeout overrides the per-request timeout, e.g. "45s".
	Timeout time.Duration `yaml:"timeout"`

	// UserAgent overrides the User-Agent header.
	UserAgent string `yaml:"user_agent"`

	// CacheDir overrides the story cache directory.
	CacheDir string `yaml:"cache_dir"`
}

// LoadConfigFile loads settings from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound.
// Callers should handle this error appropriately based on whether
// the config file path was explicitly specified by the user.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}
	return &cf, nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .hacksnooze in the current directory
// 3. Look for .hacksnooze in the user's home directory
// 4. Look for .hacksnooze in the XDG config directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	// If explicit path is provided, use it
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	// Check current directory
	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	// Check home directory
	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	// Check XDG config directory
	xdgConfig := filepath.Join(XDGConfigDir(), DefaultConfigFile)
	if _, err := os.Stat(xdgConfig); err == nil {
		return xdgConfig
	}

	return ""
}

// Apply copies the file's non-zero settings onto the config.
// Zero values mean "not set in the file" and leave the default alone.
func (f *File) Apply(c *Config) {
	if f.BaseURL != "" {
		c.BaseURL = f.BaseURL
	}
	if f.Timeout != 0 {
		c.Timeout = f.Timeout
	}
	if f.UserAgent != "" {
		c.UserAgent = f.UserAgent
	}
	if f.CacheDir != "" {
		c.CacheDir = f.CacheDir
	}
}

// envOverrides mirrors the File settings as environment variables.
// Pointer fields distinguish "unset" from an explicit zero so that
// HACKSNOOZE_VERBOSE=false can still override a config file.
type envOverrides struct {
	BaseURL   *string        `env:"HACKSNOOZE_BASE_URL"`
	Timeout   *time.Duration `env:"HACKSNOOZE_TIMEOUT"`
	UserAgent *string        `env:"HACKSNOOZE_USER_AGENT"`
	CacheDir  *string        `env:"HACKSNOOZE_CACHE_DIR"`
	Verbose   *bool          `env:"HACKSNOOZE_VERBOSE"`
}

// ApplyEnv overlays HACKSNOOZE_* environment variables onto the config.
// Environment values take precedence over the config file, matching the
// usual file < environment < flags layering.
func (c *Config) ApplyEnv() error {
	var o envOverrides
	if err := env.Parse(&o); err != nil {
		return err
	}

	if o.BaseURL != nil {
		c.BaseURL = *o.BaseURL
	}
	if o.Timeout != nil {
		c.Timeout = *o.Timeout
	}
	if o.UserAgent != nil {
		c.UserAgent = *o.UserAgent
	}
	if o.CacheDir != nil {
		c.CacheDir = *o.CacheDir
	}
	if o.Verbose != nil {
		c.Verbose = *o.Verbose
	}
	return nil
}
