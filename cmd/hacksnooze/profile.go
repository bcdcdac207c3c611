package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BlueMycon/hack-or-snooze-ajax-api/internal/model"
	"github.com/BlueMycon/hack-or-snooze-ajax-api/internal/report"
)

// NewProfileCmd creates the profile command.
func NewProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile [username]",
		Short: "Show a user profile",
		Long: `Profile shows a user's display name, signup date, favorites, and
submitted stories. Requires login. Without an argument it shows your
own profile.

Examples:
  # Show your own profile
  hacksnooze profile

  # Show another user's profile as JSON
  hacksnooze profile alice --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: runProfileCmd,
	}

	addOutputFlags(cmd)

	return cmd
}

// runProfileCmd executes the profile command.
func runProfileCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if err := applyOutputFlags(cmd, cfg); err != nil {
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

	username := sess.Username()
	if len(args) == 1 {
		username = args[0]
	}

	rec, err := gw.GetUser(ctx, sess.Token(), username)
	if err != nil {
		return fmt.Errorf("failed to fetch profile for %s: %w", username, err)
	}

	favorites, err := model.ParseStories(rec.Favorites)
	if err != nil {
		return fmt.Errorf("malformed favorites in profile: %w", err)
	}
	ownStories, err := model.ParseStories(rec.Stories)
	if err != nil {
		return fmt.Errorf("malformed stories in profile: %w", err)
	}

	profile := &report.Profile{
		Username:   rec.Username,
		Name:       rec.Name,
		CreatedAt:  rec.CreatedAt,
		Favorites:  favorites,
		OwnStories: ownStories,
	}

	output, closeOutput, err := openOutput(cfg)
	if err != nil {
		return err
	}
	defer closeOutput()

	_, err = newWriter(cfg, output).WriteProfile(profile)
	return err
}
