package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the application version, set at build time.
var Version = "dev"

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("addonreg %s\n", Version)
		},
	}
}
