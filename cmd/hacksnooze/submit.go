package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BlueMycon/hack-or-snooze-ajax-api/internal/client"
	"github.com/BlueMycon/hack-or-snooze-ajax-api/internal/model"
)

// NewSubmitCmd creates the submit command.
func NewSubmitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submit <title> <url>",
		Short: "Submit a new story",
		Long: `Submit posts a new story to Hack or Snooze. Requires login.
The author credit defaults to your display name.

Examples:
  hacksnooze submit "Go 1.25 released" https://go.dev/blog/go1.25

  hacksnooze submit "Go 1.25 released" https://go.dev/blog/go1.25 --author "The Go Team"`,
		Args: cobra.ExactArgs(2),
		RunE: runSubmitCmd,
	}

	cmd.Flags().StringP("author", "a", "", "Story author (defaults to your display name)")

	return cmd
}

// runSubmitCmd executes the submit command.
func runSubmitCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	setupLogger(cfg.Verbose)

	author, err := cmd.Flags().GetString("author")
	if err != nil {
		return err
	}

	ctx, cancel := runContext()
	defer cancel()

	gw := newGateway(cfg)
	sess, err := requireSession(ctx, gw)
	if err != nil {
		return err
	}

	if author == "" {
		author = sess.Name()
		if author == "" {
			author = sess.Username()
		}
	}

	draft := model.StoryDraft{Title: args[0], Author: author, URL: args[1]}
	story, err := client.NewCollection(nil).Add(ctx, sess, draft)
	if err != nil {
		return fmt.Errorf("failed to submit story: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Submitted %q (%s)\n  id: %s\n",
		story.Title(), story.Hostname(), story.StoryID())
	return nil
}

// NewRemoveCmd creates the remove command.
func NewRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <story-id>...",
		Short: "Remove your stories",
		Long: `Remove deletes one or more of your stories. Requires login.
Only the story's submitter can remove it. Removing a story that is
already gone counts as success.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runRemoveCmd,
	}
}

// runRemoveCmd executes the remove command.
func runRemoveCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	setupLogger(cfg.Verbose)

	ctx, cancel := runContext()
	defer cancel()

	gw := newGateway(cfg)
	sess, err := requireSession(ctx, gw)
	if err != nil {
		return err
	}

	feed := client.NewCollection(nil)
	for _, storyID := range args {
		message, err := feed.Remove(ctx, sess, storyID)
		if err != nil {
			return fmt.Errorf("failed to remove %s: %w", storyID, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", storyID, message)
	}
	return nil
}
