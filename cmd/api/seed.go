package main

import (
	"github.com/Marga-Ghale/synergysphere-backend/internal/repository"
	"github.com/Marga-Ghale/synergysphere-backend/internal/seed"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert sample users, projects and tasks into an empty database",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, pg, err := connect()
		if err != nil {
			return err
		}
		defer pg.Close()

		return seed.SeedData(cmd.Context(), repository.NewRepositories(pg.Pool, pg.SQL))
	},
}
