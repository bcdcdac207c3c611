package model

import (
	"errors"
	"testing"
	"time"
)

// TestParseStory tests entity construction from wire records.
func TestParseStory(t *testing.T) {
	t.Parallel()

	t.Run("parses a complete record losslessly", func(t *testing.T) {
		t.Parallel()

		created := time.Date(2024, 3, 1, 10, 12, 45, 0, time.UTC)
		rec := StoryRecord{
			StoryID:   "s1",
			Title:     "Go 1.25 released",
			Author:    "gopher",
			URL:       "https://go.dev/blog/go1.25",
			Username:  "bob",
			CreatedAt: created,
		}

		story, err := ParseStory(rec)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if story.StoryID() != "s1" {
			t.Errorf("got storyID %q, expected 's1'", story.StoryID())
		}
		if story.Record() != rec {
			t.Errorf("round trip mismatch: got %+v, expected %+v", story.Record(), rec)
		}
	})

	t.Run("tolerates missing optional fields", func(t *testing.T) {
		t.Parallel()

		rec := StoryRecord{
			StoryID:  "s2",
			Title:    "No author credit",
			URL:      "http://example.com",
			Username: "bob",
		}

		story, err := ParseStory(rec)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if story.Author() != "" {
			t.Errorf("expected empty author, got %q", story.Author())
		}
		if !story.CreatedAt().IsZero() {
			t.Errorf("expected zero createdAt, got %v", story.CreatedAt())
		}
	})

	t.Run("rejects missing required fields", func(t *testing.T) {
		t.Parallel()

		valid := StoryRecord{
			StoryID:  "s3",
			Title:    "T",
			URL:      "http://example.com",
			Username: "bob",
		}

		testCases := []struct {
			field  string
			mutate func(*StoryRecord)
		}{
			{"storyId", func(r *StoryRecord) { r.StoryID = "" }},
			{"title", func(r *StoryRecord) { r.Title = "" }},
			{"url", func(r *StoryRecord) { r.URL = "" }},
			{"username", func(r *StoryRecord) { r.Username = "" }},
		}

		for _, tc := range testCases {
			t.Run(tc.field, func(t *testing.T) {
				t.Parallel()

				rec := valid
				tc.mutate(&rec)

				_, err := ParseStory(rec)
				var verr *ValidationError
				if !errors.As(err, &verr) {
					t.Fatalf("expected *ValidationError, got %v", err)
				}
				if verr.Field != tc.field {
					t.Errorf("got field %q, expected %q", verr.Field, tc.field)
				}
			})
		}
	})
}

// TestParseStories tests bulk parsing order and failure behavior.
func TestParseStories(t *testing.T) {
	t.Parallel()

	t.Run("preserves input order", func(t *testing.T) {
		t.Parallel()

		recs := []StoryRecord{
			{StoryID: "a", Title: "A", URL: "http://a.com", Username: "u"},
			{StoryID: "b", Title: "B", URL: "http://b.com", Username: "u"},
			{StoryID: "c", Title: "C", URL: "http://c.com", Username: "u"},
		}

		stories, err := ParseStories(recs)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(stories) != 3 {
			t.Fatalf("got %d stories, expected 3", len(stories))
		}
		for i, id := range []string{"a", "b", "c"} {
			if stories[i].StoryID() != id {
				t.Errorf("position %d: got %q, expected %q", i, stories[i].StoryID(), id)
			}
		}
	})

	t.Run("first invalid record aborts", func(t *testing.T) {
		t.Parallel()

		recs := []StoryRecord{
			{StoryID: "a", Title: "A", URL: "http://a.com", Username: "u"},
			{Title: "missing id", URL: "http://b.com", Username: "u"},
		}

		if _, err := ParseStories(recs); err == nil {
			t.Error("expected error for invalid record, got nil")
		}
	})
}

// TestStoryHostname tests that Hostname never fails, including on
// non-URL garbage input.
func TestStoryHostname(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		url      string
		expected string
	}{
		{"simple host", "http://x.com", "x.com"},
		{"strips www subdomain", "https://www.example.com/page?q=1", "example.com"},
		{"reduces deep subdomain", "https://blog.news.example.com/post", "example.com"},
		{"multi-label public suffix", "https://www.example.co.uk/", "example.co.uk"},
		{"ip address falls back to raw host", "http://127.0.0.1:8080/x", "127.0.0.1"},
		{"localhost falls back to raw host", "http://localhost:3000", "localhost"},
		{"uppercase host is lowered", "HTTP://EXAMPLE.COM", "example.com"},
		{"garbage with spaces", "not a url at all", HostnameFallback},
		{"bare word", "notaurl", HostnameFallback},
		{"empty string", "", HostnameFallback},
		{"scheme only", "https://", HostnameFallback},
		{"control characters", "http://\x00bad", HostnameFallback},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			story := Story{storyID: "s", title: "t", url: tc.url, username: "u"}
			if got := story.Hostname(); got != tc.expected {
				t.Errorf("Hostname() for %q = %q, expected %q", tc.url, got, tc.expected)
			}
		})
	}
}

// TestStoryDraftValidate tests submission draft validation.
func TestStoryDraftValidate(t *testing.T) {
	t.Parallel()

	t.Run("accepts a complete draft", func(t *testing.T) {
		t.Parallel()

		draft := StoryDraft{Title: "T", Author: "A", URL: "http://x.com"}
		if err := draft.Validate(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	testCases := []struct {
		name  string
		draft StoryDraft
		field string
	}{
		{"empty title", StoryDraft{Author: "A", URL: "http://x.com"}, "title"},
		{"empty author", StoryDraft{Title: "T", URL: "http://x.com"}, "author"},
		{"empty url", StoryDraft{Title: "T", Author: "A"}, "url"},
		{"whitespace only title", StoryDraft{Title: "  ", Author: "A", URL: "http://x.com"}, "title"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := tc.draft.Validate()
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if verr.Field != tc.field {
				t.Errorf("got field %q, expected %q", verr.Field, tc.field)
			}
		})
	}
}
