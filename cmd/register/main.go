// Package main provides the register binary: a terminal front end for the
// hackathon registration form and a few organizer helpers.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const (
	Version = "0.1.0"
	appName = "register"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   appName,
		Short: "Hackathon team registration",
		Long: `register submits a hackathon team registration from the terminal.

It runs the same checks as the landing page form before anything is sent,
then reports the Hackathon ID or the problems the server found.

Organizers can also mint access tokens and look up stored registrations.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(submitCmd(), lookupCmd(), tokenCmd())

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, Version)
		},
	})

	return cmd
}
