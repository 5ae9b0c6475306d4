package main

import (
	"errors"
	"fmt"
	"time"

	"clinic-management/internal/adapters/auth/jwtauth"

	"github.com/spf13/cobra"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token signed with JWT_SECRET",
	Long: `Issue an HS256 bearer token for the SQL console endpoints.

The token is signed with JWT_SECRET (and JWT_ISSUER when set), so it is only
accepted by servers that share that secret.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cfg.JWTSecret == "" {
			return errors.New("JWT_SECRET is required to issue tokens")
		}

		sub, _ := cmd.Flags().GetString("sub")
		ttl, _ := cmd.Flags().GetDuration("ttl")

		tok, err := jwtauth.NewVerifier(cfg.JWTSecret, cfg.JWTIssuer).Issue(sub, ttl)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), tok)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.Flags().String("sub", "", "user id stored in the sub claim (required)")
	tokenCmd.Flags().Duration("ttl", 24*time.Hour, "token lifetime")
	_ = tokenCmd.MarkFlagRequired("sub")
}
