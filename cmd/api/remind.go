package main

import (
	"fmt"
	"log"

	"github.com/Marga-Ghale/synergysphere-backend/internal/cron"
	"github.com/Marga-Ghale/synergysphere-backend/internal/db"
	"github.com/Marga-Ghale/synergysphere-backend/internal/notification"
	"github.com/Marga-Ghale/synergysphere-backend/internal/repository"
	"github.com/Marga-Ghale/synergysphere-backend/internal/socket"
	"github.com/spf13/cobra"
)

var remindKind string

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Run the due-date and overdue reminder jobs once",
	RunE: func(cmd *cobra.Command, args []string) error {
		switch remindKind {
		case "due_date", "overdue", "all":
		default:
			return fmt.Errorf("--kind must be due_date, overdue or all")
		}

		cfg, pg, err := connect()
		if err != nil {
			return err
		}
		defer pg.Close()

		// Without Redis there is no running hub to reach, so reminders go by email only.
		var broadcaster *socket.Broadcaster
		if cfg.RedisURL != "" {
			redisDB, err := db.NewRedisDB(cfg.RedisURL)
			if err != nil {
				log.Printf("⚠️ Failed to connect to Redis: %v (skipping websocket events)", err)
			} else {
				defer redisDB.Close()
				broadcaster = socket.NewBroadcaster(socket.NewRedisBus(redisDB, nil))
			}
		}

		var mailer notification.Mailer
		if emailSvc := newEmailService(cfg); emailSvc.IsConfigured() {
			mailer = emailSvc
		}

		repos := repository.NewRepositories(pg.Pool, pg.SQL)
		scheduler := cron.NewScheduler(repos.TaskRepo, notification.NewService(broadcaster, mailer, cfg.FrontendURL))

		sent := scheduler.ManualTrigger(remindKind)
		fmt.Fprintf(cmd.OutOrStdout(), "notified %d task(s)\n", sent)
		return nil
	},
}

func init() {
	remindCmd.Flags().StringVar(&remindKind, "kind", "all", "due_date, overdue or all")
}
