package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/yakoovad/hackathon-registration/internal/auth"
	"github.com/yakoovad/hackathon-registration/internal/config"
)

func tokenCmd() *cobra.Command {
	var (
		tokenType string
		ttl       time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a staff token signed with TOKEN_AUTH_SECRET",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			typ, err := auth.ParseTokenType(tokenType)
			if err != nil {
				return err
			}

			cfg, err := config.LoadServer()
			if err != nil {
				return err
			}

			token, err := auth.NewIssuer(cfg.TokenSecret).Generate(typ, ttl)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&tokenType, "type", string(auth.TokenTypeOrganizer), "Token type (organizer, admin)")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "Token lifetime")

	return cmd
}
