package cli

import (
	"fmt"

	"github.com/glorpus-work/addonreg/pkg/model"
	"github.com/spf13/cobra"
)

// NewCacheCmd creates the cache command with subcommands.
func NewCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the metadata cache",
		Long:  "Rebuild, clean and inspect the addon metadata cache",
	}

	cmd.AddCommand(
		newCacheCleanCmd(),
		newCacheRebuildCmd(),
		newCacheDirCmd(),
	)

	return cmd
}

func newCacheCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Delete all cache files",
		Long:  "Delete every cache file so the next lookup rescans the addon directories",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, mgr, err := loadConfigAndCatalog()
			if err != nil {
				return err
			}
			if err := mgr.ClearCache(); err != nil {
				return err
			}
			fmt.Println("Cache cleared")
			return nil
		},
	}
}

func newCacheRebuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rebuild",
		Short: "Rescan all addon directories and rewrite the cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, mgr, err := loadConfigAndCatalog()
			if err != nil {
				return err
			}
			if err := mgr.ClearCache(); err != nil {
				return err
			}
			for _, typ := range model.AllTypes {
				found, err := mgr.Scan(typ, true)
				if err != nil {
					return err
				}
				fmt.Printf("%s: %d cached\n", typ, len(found))
			}
			return nil
		},
	}
}

func newCacheDirCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dir",
		Short: "Show the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfigAndCatalog()
			if err != nil {
				return err
			}
			fmt.Println(cfg.Settings.CacheDir)
			return nil
		},
	}
}
