package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/glorpus-work/addonreg/pkg/errors"
	"github.com/glorpus-work/addonreg/pkg/model"
	"github.com/spf13/cobra"
)

// NewInfoCmd creates the info command.
func NewInfoCmd() *cobra.Command {
	var addonType string

	cmd := &cobra.Command{
		Use:   "info <addon-key>",
		Short: "Show an addon's metadata",
		Long:  "Print the catalogued descriptor of a single addon",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(args[0], model.AddonType(addonType))
		},
	}

	cmd.Flags().StringVar(&addonType, "type", string(model.TypeAddon), "Addon type (addon, theme, locale)")

	return cmd
}

func runInfo(key string, typ model.AddonType) error {
	_, mgr, err := loadConfigAndCatalog()
	if err != nil {
		return err
	}

	d := mgr.LookupByType(key, typ)
	if d == nil {
		return errors.ErrAddonNotFoundWithKey(key)
	}

	fmt.Printf("Key:      %s\n", d.Key)
	if d.DisplayName != "" {
		fmt.Printf("Name:     %s\n", d.DisplayName)
	}
	fmt.Printf("Type:     %s\n", d.Type)
	fmt.Printf("Version:  %s\n", d.Version)
	fmt.Printf("Priority: %d\n", d.Priority)
	fmt.Printf("Dir:      %s\n", d.Subdir)

	if len(d.Requirements) > 0 {
		fmt.Println("Requirements:")
		for _, key := range sortedKeys(d.Requirements) {
			constraint := d.Requirements[key]
			if constraint == "" {
				constraint = "any"
			}
			fmt.Printf("  %s %s\n", key, constraint)
		}
	}
	if len(d.Classes) > 0 {
		fmt.Println("Classes:")
		for _, class := range sortedKeys(d.Classes) {
			fmt.Printf("  %s -> %s\n", class, d.Classes[class])
		}
	}
	if len(d.Info) > 0 {
		fmt.Println("Info:")
		for _, key := range sortedKeys(d.Info) {
			fmt.Printf("  %s: %s\n", key, d.Info[key])
		}
	}
	if len(d.Translations) > 0 {
		fmt.Printf("Translations: %s\n", strings.Join(d.Translations, ", "))
	}
	return nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
