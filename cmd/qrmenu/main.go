// Command qrmenu runs the digital menu API, the QR registry and their
// maintenance tasks.
//
//	qrmenu serve              # menu API on APP_PORT
//	qrmenu registry           # QR registry on REGISTRY_PORT
//	qrmenu migrate            # apply pending migrations
//	qrmenu migrate:rollback   # revert the last batch
//	qrmenu migrate:status
//	qrmenu seed [--demo]      # catalogs, optionally a demo account
//	qrmenu route:list
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	_ "github.com/shashiranjanraj/qrmenu/database/migrations"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "qrmenu",
	Short:         "QR code digital menus",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(registryCmd)
	rootCmd.AddCommand(routeListCmd)

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(migrateRollbackCmd)
	rootCmd.AddCommand(migrateStatusCmd)
	rootCmd.AddCommand(seedCmd)
}
