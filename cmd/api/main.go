// main.go
package main

import (
	"log"

	"github.com/Marga-Ghale/synergysphere-backend/internal/config"
	"github.com/Marga-Ghale/synergysphere-backend/internal/db"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "synergysphere",
	Short: "SynergySphere project and task API",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found, using environment variables")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd, tokenCmd, remindCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalln(err.Error())
	}
}

// connect loads the configuration and opens both database handles.
func connect() (*config.Config, *db.PostgresDB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	pg, err := db.NewPostgresDB(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	return cfg, pg, nil
}
