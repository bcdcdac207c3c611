package database

import (
	"context"
	"testing"
	"time"

	"github.com/BlueMycon/hack-or-snooze-ajax-api/internal/model"
)

// mustStory builds a valid story for cache tests.
func mustStory(t *testing.T, id, title string) model.Story {
	t.Helper()
	story, err := model.ParseStory(model.StoryRecord{
		StoryID:   id,
		Title:     title,
		Author:    "Bob",
		URL:       "http://example.com/" + id,
		Username:  "bob",
		CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("failed to build story: %v", err)
	}
	return story
}

// openTestCache opens a cache in a temp directory and closes it with the test.
func openTestCache(t *testing.T) *StoryCache {
	t.Helper()
	cache, err := Open(t.TempDir(), DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open cache: %v", err)
	}
	t.Cleanup(func() { _ = cache.Close() })
	return cache
}

// TestOpen tests database creation behavior.
func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("creates the database when allowed", func(t *testing.T) {
		t.Parallel()

		cache, err := Open(t.TempDir(), DefaultOptions())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer func() { _ = cache.Close() }()
	})

	t.Run("refuses to create when CreateIfNotExists is false", func(t *testing.T) {
		t.Parallel()

		opts := Options{CreateIfNotExists: false, EnableWAL: true}
		if _, err := Open(t.TempDir(), opts); err == nil {
			t.Error("expected error for missing database, got nil")
		}
	})
}

// TestUpsertStories tests the replace-snapshot semantics.
func TestUpsertStories(t *testing.T) {
	t.Parallel()

	t.Run("stories round-trip in server order", func(t *testing.T) {
		t.Parallel()

		cache := openTestCache(t)
		stored := []model.Story{
			mustStory(t, "s1", "First"),
			mustStory(t, "s2", "Second"),
			mustStory(t, "s3", "Third"),
		}

		if err := cache.UpsertStories(context.Background(), stored); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got, err := cache.ListStories(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != len(stored) {
			t.Fatalf("got %d stories, expected %d", len(got), len(stored))
		}
		for i, story := range got {
			if story.StoryID() != stored[i].StoryID() {
				t.Errorf("position %d: got %s, expected %s", i, story.StoryID(), stored[i].StoryID())
			}
		}
		if got[0].Title() != "First" || got[0].Author() != "Bob" {
			t.Errorf("fields did not round-trip: %+v", got[0].Record())
		}
		if got[0].CreatedAt().IsZero() {
			t.Error("created-at timestamp did not round-trip")
		}
	})

	t.Run("a new snapshot replaces the old one", func(t *testing.T) {
		t.Parallel()

		cache := openTestCache(t)
		ctx := context.Background()

		if err := cache.UpsertStories(ctx, []model.Story{mustStory(t, "old", "Old")}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := cache.UpsertStories(ctx, []model.Story{mustStory(t, "new", "New")}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got, err := cache.ListStories(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 1 || got[0].StoryID() != "new" {
			t.Errorf("expected only the new snapshot, got %+v", got)
		}
	})

	t.Run("empty cache lists no stories and no error", func(t *testing.T) {
		t.Parallel()

		cache := openTestCache(t)
		got, err := cache.ListStories(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 0 {
			t.Errorf("expected empty cache, got %+v", got)
		}
	})
}

// TestLastSyncTime tests sync time recording.
func TestLastSyncTime(t *testing.T) {
	t.Parallel()

	t.Run("never-synced cache reports the zero time", func(t *testing.T) {
		t.Parallel()

		cache := openTestCache(t)
		syncedAt, err := cache.LastSyncTime(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !syncedAt.IsZero() {
			t.Errorf("expected zero time, got %v", syncedAt)
		}
	})

	t.Run("upsert records the sync time", func(t *testing.T) {
		t.Parallel()

		cache := openTestCache(t)
		ctx := context.Background()
		before := time.Now().Add(-time.Minute)

		if err := cache.UpsertStories(ctx, []model.Story{mustStory(t, "s1", "One")}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		syncedAt, err := cache.LastSyncTime(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if syncedAt.Before(before) {
			t.Errorf("sync time %v is implausibly old", syncedAt)
		}
	})
}
