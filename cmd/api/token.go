package main

import (
	"fmt"
	"time"

	"github.com/Marga-Ghale/synergysphere-backend/internal/config"
	"github.com/Marga-Ghale/synergysphere-backend/internal/service"
	"github.com/spf13/cobra"
)

var (
	tokenUserID int64
	tokenTTL    time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Print a bearer token for a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		if tokenUserID <= 0 {
			return fmt.Errorf("--user must be a positive user id")
		}
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		token, err := service.NewAuthService(cfg.JWTSecret).IssueToken(tokenUserID, tokenTTL)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().Int64Var(&tokenUserID, "user", 0, "user id the token is issued for")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "token lifetime")
}
