package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/BlueMycon/hack-or-snooze-ajax-api/internal/client"
	"github.com/BlueMycon/hack-or-snooze-ajax-api/internal/config"
	"github.com/BlueMycon/hack-or-snooze-ajax-api/internal/database"
	"github.com/BlueMycon/hack-or-snooze-ajax-api/internal/report"
)

// NewStoriesCmd creates the stories command.
func NewStoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stories",
		Short: "Show the story feed",
		Long: `Stories fetches the current feed from the Hack or Snooze API and
prints it newest first. When logged in, your favorites are marked.

Each successful fetch also refreshes a local cache, so the feed stays
readable offline:

Examples:
  # Show the live feed
  hacksnooze stories

  # Show the last cached feed without network access
  hacksnooze stories --cached

  # Show the top ten stories as Markdown
  hacksnooze stories -n 10 --markdown`,
		Args: cobra.NoArgs,
		RunE: runStoriesCmd,
	}

	cmd.Flags().Bool("cached", false, "Read the feed from the local cache instead of the API")
	cmd.Flags().IntP("limit", "n", 0, "Show at most this many stories (0 = all)")
	addOutputFlags(cmd)

	return cmd
}

// runStoriesCmd executes the stories command.
func runStoriesCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if err := applyOutputFlags(cmd, cfg); err != nil {
		return err
	}
	if cfg.UseCache, err = cmd.Flags().GetBool("cached"); err != nil {
		return err
	}
	if cfg.Limit, err = cmd.Flags().GetInt("limit"); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	logger := setupLogger(cfg.Verbose)

	ctx, cancel := runContext()
	defer cancel()

	var feed *report.Feed
	if cfg.UseCache {
		feed, err = cachedFeed(ctx, cfg)
	} else {
		feed, err = liveFeed(ctx, cfg, logger)
	}
	if err != nil {
		return err
	}

	if cfg.Limit > 0 && len(feed.Stories) > cfg.Limit {
		feed.Stories = feed.Stories[:cfg.Limit]
	}

	output, closeOutput, err := openOutput(cfg)
	if err != nil {
		return err
	}
	defer closeOutput()

	_, err = newWriter(cfg, output).WriteFeed(feed)
	return err
}

// liveFeed fetches the feed from the API and refreshes the cache.
// The feed fetch and the session restore are independent requests, so
// they run concurrently.
func liveFeed(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*report.Feed, error) {
	state := client.NewState(newGateway(cfg))

	var sess *client.Session
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return state.RefreshFeed(gctx)
	})
	g.Go(func() error {
		var restoreErr error
		sess, restoreErr = restoreSession(gctx, state.Gateway)
		if restoreErr != nil {
			// A broken credentials file degrades to anonymous browsing.
			logger.Warn("ignoring stored credentials", "error", restoreErr)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to fetch stories: %w", err)
	}
	state.Session = sess

	feed := &report.Feed{Stories: state.Feed.Stories()}
	if state.LoggedIn() {
		feed.Favorites = make(map[string]bool)
		for _, story := range sess.Favorites() {
			feed.Favorites[story.StoryID()] = true
		}
	}

	refreshCache(ctx, cfg, feed, logger)
	return feed, nil
}

// refreshCache stores the fetched feed for offline reading.
// Cache failures are logged, never fatal: the feed was already fetched.
func refreshCache(ctx context.Context, cfg *config.Config, feed *report.Feed, logger *slog.Logger) {
	cache, err := database.Open(cfg.CacheDir, database.DefaultOptions())
	if err != nil {
		logger.Warn("failed to open story cache", "dir", cfg.CacheDir, "error", err)
		return
	}
	defer func() { _ = cache.Close() }()

	if err := cache.UpsertStories(ctx, feed.Stories); err != nil {
		logger.Warn("failed to refresh story cache", "error", err)
	}
}

// cachedFeed reads the feed from the local cache.
func cachedFeed(ctx context.Context, cfg *config.Config) (*report.Feed, error) {
	opts := database.DefaultOptions()
	opts.CreateIfNotExists = false

	cache, err := database.Open(cfg.CacheDir, opts)
	if err != nil {
		return nil, err
	}
	defer func() { _ = cache.Close() }()

	stories, err := cache.ListStories(ctx)
	if err != nil {
		return nil, err
	}
	syncedAt, err := cache.LastSyncTime(ctx)
	if err != nil {
		return nil, err
	}

	return &report.Feed{Stories: stories, SyncedAt: syncedAt}, nil
}
