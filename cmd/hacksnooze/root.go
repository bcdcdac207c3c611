// Package main provides the entry point for the hacksnooze CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for hacksnooze.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hacksnooze",
		Short: "Command-line client for Hack or Snooze",
		Long: `hacksnooze is a command-line client for Hack or Snooze, a crowd-sourced
link-sharing service. It can browse the story feed, submit and remove
stories, and manage favorites.

Reading the feed works anonymously. Submitting, removing, and
favoriting stories require logging in first with 'hacksnooze login'.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .hacksnooze in current, home, or XDG config directory)")
	cmd.PersistentFlags().String("base-url", "",
		"Override the API base URL")
	cmd.PersistentFlags().Duration("timeout", 0,
		"Override the per-request timeout")

	// Add subcommands
	cmd.AddCommand(NewLoginCmd())
	cmd.AddCommand(NewSignupCmd())
	cmd.AddCommand(NewLogoutCmd())
	cmd.AddCommand(NewStoriesCmd())
	cmd.AddCommand(NewSubmitCmd())
	cmd.AddCommand(NewRemoveCmd())
	cmd.AddCommand(NewFavoriteCmd())
	cmd.AddCommand(NewUnfavoriteCmd())
	cmd.AddCommand(NewProfileCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
