// Package config handles loading and saving the addonreg configuration file.
// The file is YAML and carries the base directory, the per-type scan roots,
// the cache directory and the log level.
package config

import (
	"os"
	"path/filepath"

	"github.com/glorpus-work/addonreg/pkg/errors"
	"github.com/glorpus-work/addonreg/pkg/fsutil"
	"github.com/glorpus-work/addonreg/pkg/model"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	// BaseDir is the directory every scan root and addon subdir is relative
	// to. Defaults to the current directory.
	BaseDir string `yaml:"base_dir"`

	// Roots maps each addon type to its scan roots, relative to BaseDir.
	Roots map[model.AddonType][]string `yaml:"roots"`

	Settings Settings `yaml:"settings"`
}

// Settings represents general application settings.
type Settings struct {
	// CacheDir holds the metadata cache; empty disables caching.
	CacheDir string `yaml:"cache_dir,omitempty"`
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	cacheDir, err := fsutil.GetCacheDir()
	if err != nil {
		cacheDir = ""
	}
	return &Config{
		BaseDir: ".",
		Roots: map[model.AddonType][]string{
			model.TypeAddon:  {"addons"},
			model.TypeTheme:  {"themes"},
			model.TypeLocale: {"locales"},
		},
		Settings: Settings{
			CacheDir: cacheDir,
			LogLevel: "info",
		},
	}
}

// DefaultConfigPath returns the default location of the config file.
func DefaultConfigPath() (string, error) {
	dir, err := fsutil.GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// LoadConfig reads and validates the config file at path. A missing file
// yields the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, errors.Wrapf(err, "cannot read config file %s", path)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(errors.ErrConfigParse, "%s: %v", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveConfig writes the config to path atomically.
func SaveConfig(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}
	return fsutil.WriteFileAtomic(path, data, fsutil.FileModeDefault)
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	if c.BaseDir == "" {
		return errors.Wrap(errors.ErrConfigValidation, "base_dir cannot be empty")
	}
	for typ := range c.Roots {
		switch typ {
		case model.TypeAddon, model.TypeTheme, model.TypeLocale:
		default:
			return errors.Wrapf(errors.ErrConfigValidation, "unknown addon type %q in roots", typ)
		}
	}
	switch c.Settings.LogLevel {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return errors.Wrapf(errors.ErrConfigValidation, "unknown log level %q", c.Settings.LogLevel)
	}
	return nil
}
