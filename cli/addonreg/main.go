package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/glorpus-work/addonreg/internal/cli"
	"github.com/glorpus-work/addonreg/internal/logger"
	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		cancel()
		os.Exit(1)
	}

	cancel()
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "addonreg",
		Short: "Addon catalog and runtime registry",
		Long: `addonreg discovers addons (plugins, applications, themes and locale
packs) on disk, caches their metadata, and checks version and dependency
requirements between them.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.InitLogger(logLevel)
			cli.SetConfigPath(configPath)
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		cli.NewListCmd(),
		cli.NewInfoCmd(),
		cli.NewCheckCmd(),
		cli.NewCacheCmd(),
		cli.NewInstallCmd(),
		cli.NewWatchCmd(),
		cli.NewVersionCmd(),
	)

	return cmd
}
