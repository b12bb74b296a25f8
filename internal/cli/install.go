package cli

import (
	"fmt"

	"github.com/glorpus-work/addonreg/pkg/errors"
	"github.com/glorpus-work/addonreg/pkg/installer"
	"github.com/glorpus-work/addonreg/pkg/model"
	"github.com/spf13/cobra"
)

// NewInstallCmd creates the install command.
func NewInstallCmd() *cobra.Command {
	var addonType string

	cmd := &cobra.Command{
		Use:   "install <archive>",
		Short: "Install an addon from an archive",
		Long:  "Extract an addon archive into the first configured scan root for its type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstall(cmd, args[0], model.AddonType(addonType))
		},
	}

	cmd.Flags().StringVar(&addonType, "type", string(model.TypeAddon), "Addon type to install (addon, theme, locale)")

	return cmd
}

func runInstall(cmd *cobra.Command, archivePath string, typ model.AddonType) error {
	cfg, mgr, err := loadConfigAndCatalog()
	if err != nil {
		return err
	}

	roots := mgr.Roots(typ)
	if len(roots) == 0 {
		return errors.Wrapf(errors.ErrConfigValidation, "no scan root configured for type %s", typ)
	}

	inst := installer.New(mgr.BaseDir(), nil)
	d, err := inst.InstallFromArchive(cmd.Context(), archivePath, roots[0], typ)
	if err != nil {
		return err
	}

	// The new directory is not in the cache yet.
	if _, err := mgr.Scan(typ, cfg.Settings.CacheDir != ""); err != nil {
		return err
	}

	fmt.Printf("Installed %s %s into %s\n", d.Key, d.Version, d.Subdir)
	return nil
}
