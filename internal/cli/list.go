package cli

import (
	"fmt"
	"sort"

	"github.com/glorpus-work/addonreg/pkg/model"
	"github.com/spf13/cobra"
)

// NewListCmd creates the list command.
func NewListCmd() *cobra.Command {
	var addonType string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalogued addons",
		Long:  "List every addon of the given type known to the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(model.AddonType(addonType))
		},
	}

	cmd.Flags().StringVar(&addonType, "type", string(model.TypeAddon), "Addon type to list (addon, theme, locale)")

	return cmd
}

func runList(typ model.AddonType) error {
	_, mgr, err := loadConfigAndCatalog()
	if err != nil {
		return err
	}

	addons := mgr.LookupAllByType(typ)
	keys := make([]string, 0, len(addons))
	for key := range addons {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		d := addons[key]
		fmt.Printf("%s\t%s\tpriority=%d\t%s\n", d.Key, d.Version, d.Priority, d.Subdir)
	}
	fmt.Printf("%d %s(s)\n", len(keys), typ)
	return nil
}
