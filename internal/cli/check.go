package cli

import (
	"fmt"
	"sort"

	"github.com/glorpus-work/addonreg/pkg/deps"
	"github.com/glorpus-work/addonreg/pkg/errors"
	"github.com/glorpus-work/addonreg/pkg/model"
	"github.com/glorpus-work/addonreg/pkg/registry"
	"github.com/spf13/cobra"
)

// NewCheckCmd creates the check command.
func NewCheckCmd() *cobra.Command {
	var enabled []string

	cmd := &cobra.Command{
		Use:   "check <addon-key>",
		Short: "Check an addon's requirements",
		Long:  "Classify every declared requirement of an addon against the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(args[0], enabled)
		},
	}

	cmd.Flags().StringSliceVar(&enabled, "enabled", nil, "Addon keys to treat as enabled")

	return cmd
}

func runCheck(key string, enabledKeys []string) error {
	_, mgr, err := loadConfigAndCatalog()
	if err != nil {
		return err
	}

	addon := mgr.LookupAddon(key)
	if addon == nil {
		return errors.ErrAddonNotFoundWithKey(key)
	}

	reg := registry.New(mgr, nil, mgr.BaseDir())
	keys := make(map[string]string, len(enabledKeys))
	for _, k := range enabledKeys {
		keys[k] = ""
	}
	reg.StartByKeys(keys, model.TypeAddon)

	resolver := deps.NewResolver(mgr, reg)
	requirements := resolver.Requirements(addon, 0)

	reqKeys := make([]string, 0, len(requirements))
	for k := range requirements {
		reqKeys = append(reqKeys, k)
	}
	sort.Strings(reqKeys)
	for _, k := range reqKeys {
		req := requirements[k]
		fmt.Printf("%s\t%s\t%s\n", req.Key, req.Constraint, req.Status)
	}

	return resolver.CheckRequirements(addon)
}
