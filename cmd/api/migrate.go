package main

import (
	"github.com/Marga-Ghale/synergysphere-backend/internal/config"
	"github.com/Marga-Ghale/synergysphere-backend/internal/db"
	"github.com/spf13/cobra"
)

var rollbackSteps int

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply or roll back database migrations",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		return db.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath)
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		return db.RollbackMigrations(cfg.DatabaseURL, cfg.MigrationsPath, rollbackSteps)
	},
}

func init() {
	migrateDownCmd.Flags().IntVar(&rollbackSteps, "steps", 1, "number of migrations to roll back")
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd)
}
