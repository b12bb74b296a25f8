package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/glorpus-work/addonreg/pkg/errors"
	"github.com/glorpus-work/addonreg/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, ".", cfg.BaseDir)
	assert.Equal(t, []string{"addons"}, cfg.Roots[model.TypeAddon])
	assert.Equal(t, "info", cfg.Settings.LogLevel)
}

func TestConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := DefaultConfig()
	cfg.BaseDir = "/srv/app"
	cfg.Settings.CacheDir = "/var/cache/app"
	cfg.Roots[model.TypeTheme] = []string{"styles"}

	require.NoError(t, SaveConfig(cfg, path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/app", loaded.BaseDir)
	assert.Equal(t, "/var/cache/app", loaded.Settings.CacheDir)
	assert.Equal(t, []string{"styles"}, loaded.Roots[model.TypeTheme])
}

func TestLoadConfig_ParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{not yaml"), 0o644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrConfigParse)
}

func TestConfig_Validate(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	cfg.BaseDir = ""
	assert.ErrorIs(t, cfg.Validate(), errors.ErrConfigValidation)

	cfg = DefaultConfig()
	cfg.Roots["bogus"] = []string{"x"}
	assert.ErrorIs(t, cfg.Validate(), errors.ErrConfigValidation)

	cfg = DefaultConfig()
	cfg.Settings.LogLevel = "loud"
	assert.ErrorIs(t, cfg.Validate(), errors.ErrConfigValidation)
}
