// Command carbonctl is the operator CLI: schema migrations and reference
// data seeding.
//
// Usage:
//
//	carbonctl migrate up
//	carbonctl migrate status
//	carbonctl seed seed/reference.yaml [--dry-run]
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:          "carbonctl",
		Short:        "CarbonTrack operations: migrations and reference data",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default $CONFIG_PATH or ./config.yaml)")

	rootCmd.AddCommand(migrateCmd(&configPath))
	rootCmd.AddCommand(seedCmd(&configPath))

	return rootCmd
}
