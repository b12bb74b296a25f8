// Package cli implements the addonreg command-line interface.
package cli

import (
	"github.com/glorpus-work/addonreg/pkg/catalog"
	"github.com/glorpus-work/addonreg/pkg/config"
)

// configPath is set by the root command's --config flag; empty means the
// default location.
var configPath string

// SetConfigPath overrides the config file location for all commands.
func SetConfigPath(path string) {
	configPath = path
}

// loadConfigAndCatalog loads the effective config and builds a catalog from it.
func loadConfigAndCatalog() (*config.Config, *catalog.Manager, error) {
	path := configPath
	if path == "" {
		var err error
		path, err = config.DefaultConfigPath()
		if err != nil {
			return nil, nil, err
		}
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, nil, err
	}

	mgr := catalog.NewManager(cfg.BaseDir, cfg.Settings.CacheDir, cfg.Roots, nil)
	return cfg, mgr, nil
}
