package cli

import (
	"fmt"

	"github.com/glorpus-work/addonreg/pkg/catalog"
	"github.com/spf13/cobra"
)

// NewWatchCmd creates the watch command.
func NewWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch the scan roots and keep the catalog fresh",
		Long:  "Watch every configured scan root and invalidate the catalog when a directory changes, until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, mgr, err := loadConfigAndCatalog()
			if err != nil {
				return err
			}

			w, err := catalog.NewWatcher(mgr, mgr.Invalidate)
			if err != nil {
				return err
			}

			fmt.Println("Watching scan roots, press Ctrl+C to stop")
			if err := w.Run(cmd.Context()); err != nil && cmd.Context().Err() == nil {
				return err
			}
			return nil
		},
	}
}
