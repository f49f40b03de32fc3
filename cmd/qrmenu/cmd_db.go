package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/qrmenu/config"
	"github.com/shashiranjanraj/qrmenu/database/seeders"
	"github.com/shashiranjanraj/qrmenu/internal/kernel"
	"github.com/shashiranjanraj/qrmenu/pkg/database"
	"github.com/shashiranjanraj/qrmenu/pkg/migration"
)

// withDB loads config, opens the database and closes it after fn.
func withDB(fn func(db *gorm.DB) error) error {
	if err := config.Load(); err != nil {
		return err
	}
	db, err := database.Connect()
	if err != nil {
		return err
	}
	defer database.Close(db)
	return fn(db)
}

// qrmenu migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run all pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(db *gorm.DB) error {
			applied, err := migration.NewDefault(db).Run()
			for _, name := range applied {
				fmt.Fprintf(cmd.OutOrStdout(), "Migrated:    %s\n", name)
			}
			if err == nil && len(applied) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to migrate.")
			}
			return err
		})
	},
}

// qrmenu migrate:rollback
var migrateRollbackCmd = &cobra.Command{
	Use:   "migrate:rollback",
	Short: "Roll back the last batch of migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(db *gorm.DB) error {
			reverted, err := migration.NewDefault(db).Rollback()
			for _, name := range reverted {
				fmt.Fprintf(cmd.OutOrStdout(), "Rolled back: %s\n", name)
			}
			if err == nil && len(reverted) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to roll back.")
			}
			return err
		})
	},
}

// qrmenu migrate:status
var migrateStatusCmd = &cobra.Command{
	Use:   "migrate:status",
	Short: "Show the status of each migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(db *gorm.DB) error {
			rows, err := migration.NewDefault(db).Status()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "MIGRATION\tSTATUS\tBATCH")
			for _, row := range rows {
				if row.Ran {
					fmt.Fprintf(w, "%s\tRan\t%d\n", row.Name, row.Batch)
				} else {
					fmt.Fprintf(w, "%s\tPending\t-\n", row.Name)
				}
			}
			return w.Flush()
		})
	},
}

var (
	seedDemo         bool
	seedDemoPassword string
)

// qrmenu seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the catalogs and, with --demo, a demo account",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		// seeding must not depend on the registry being up
		config.Set("QR_REGISTRY_POLICY", "best_effort")

		app, err := kernel.Boot(ctx, kernel.BootOptions{Migrate: true})
		if err != nil {
			return err
		}
		defer app.Close()

		if err := seeders.Run(ctx, seeders.Deps{Auth: app.Auth, Menus: app.Menus}, seedDemo, seedDemoPassword); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Seeding complete.")
		return nil
	},
}

func init() {
	seedCmd.Flags().BoolVar(&seedDemo, "demo", false, "also create "+seeders.DemoEmail+" with a sample menu")
	seedCmd.Flags().StringVar(&seedDemoPassword, "demo-password", "password123", "password for the demo account")
}
