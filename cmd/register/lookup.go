package main

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yakoovad/hackathon-registration/internal/client"
	"github.com/yakoovad/hackathon-registration/internal/config"
)

func lookupCmd() *cobra.Command {
	var (
		token   string
		baseURL string
	)

	cmd := &cobra.Command{
		Use:   "lookup <hackathon-id>",
		Short: "Show a stored registration (organizers only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadClient()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("base-url") {
				cfg.BaseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
			}
			if token == "" {
				token = os.Getenv("REGISTRATION_TOKEN")
			}

			details, err := client.New(cfg.BaseURL, cfg.Timeout).Lookup(cmd.Context(), args[0], token)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(details)
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "Organizer or admin bearer token (default $REGISTRATION_TOKEN)")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "Registration server base URL (overrides REGISTRATION_BASE_URL)")

	return cmd
}
