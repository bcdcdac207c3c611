package main

import (
	"fmt"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// favoriteConcurrency caps concurrent favorite requests.
// The hosted API rate-limits aggressively, so stay modest.
const favoriteConcurrency = 4

// NewFavoriteCmd creates the favorite command.
func NewFavoriteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "favorite <story-id>...",
		Short: "Add stories to your favorites",
		Long: `Favorite marks one or more stories as favorites. Requires login.
Favoriting a story twice is harmless; the server keeps one entry.

Story IDs are shown by 'hacksnooze stories --json'.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFavoriteCmd(cmd, args, true)
		},
	}
}

// NewUnfavoriteCmd creates the unfavorite command.
func NewUnfavoriteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unfavorite <story-id>...",
		Short: "Remove stories from your favorites",
		Long:  `Unfavorite removes one or more stories from your favorites. Requires login.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFavoriteCmd(cmd, args, false)
		},
	}
}

// runFavoriteCmd executes favorite or unfavorite for each story ID.
// The per-story requests are independent, so they fan out with a
// bounded errgroup.
func runFavoriteCmd(cmd *cobra.Command, args []string, add bool) error {
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

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(favoriteConcurrency)

	for _, storyID := range args {
		g.Go(func() error {
			var message string
			var err error
			if add {
				message, err = gw.AddFavorite(gctx, sess.Token(), sess.Username(), storyID)
			} else {
				message, err = gw.RemoveFavorite(gctx, sess.Token(), sess.Username(), storyID)
			}
			if err != nil {
				return fmt.Errorf("%s: %w", storyID, err)
			}

			mu.Lock()
			defer mu.Unlock()
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", storyID, message)
			return nil
		})
	}

	return g.Wait()
}
