package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/BlueMycon/hack-or-snooze-ajax-api/internal/gateway"
	"github.com/BlueMycon/hack-or-snooze-ajax-api/internal/model"
)

// testGateway returns a gateway client pointed at an httptest server.
func testGateway(t *testing.T, handler http.Handler) *gateway.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return gateway.NewClient(server.URL)
}

// mustStory builds a Story for test fixtures, failing the test on an
// invalid record.
func mustStory(t *testing.T, id, title string) model.Story {
	t.Helper()

	story, err := model.ParseStory(model.StoryRecord{
		StoryID:  id,
		Title:    title,
		URL:      "http://example.com/" + id,
		Username: "bob",
	})
	if err != nil {
		t.Fatalf("invalid fixture story: %v", err)
	}
	return story
}

// TestFetchAll tests feed retrieval with replace semantics.
func TestFetchAll(t *testing.T) {
	t.Parallel()

	t.Run("three records yield a collection of three, ids in input order", func(t *testing.T) {
		t.Parallel()

		gw := testGateway(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"stories":[
				{"storyId":"s1","title":"One","url":"http://a.com","username":"u"},
				{"storyId":"s2","title":"Two","url":"http://b.com","username":"u"},
				{"storyId":"s3","title":"Three","url":"http://c.com","username":"u"}
			]}`))
		}))

		feed, err := FetchAll(context.Background(), gw)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if feed.Len() != 3 {
			t.Fatalf("got length %d, expected 3", feed.Len())
		}
		for i, id := range []string{"s1", "s2", "s3"} {
			if feed.At(i).StoryID() != id {
				t.Errorf("position %d: got %q, expected %q", i, feed.At(i).StoryID(), id)
			}
		}
	})

	t.Run("each fetch returns a brand-new collection", func(t *testing.T) {
		t.Parallel()

		gw := testGateway(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"stories":[{"storyId":"s1","title":"T","url":"http://a.com","username":"u"}]}`))
		}))

		first, err := FetchAll(context.Background(), gw)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := FetchAll(context.Background(), gw)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if first == second {
			t.Error("expected distinct collection instances")
		}
	})

	t.Run("duplicate ids are dropped after the first occurrence", func(t *testing.T) {
		t.Parallel()

		gw := testGateway(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"stories":[
				{"storyId":"s1","title":"One","url":"http://a.com","username":"u"},
				{"storyId":"s1","title":"One again","url":"http://a.com","username":"u"}
			]}`))
		}))

		feed, err := FetchAll(context.Background(), gw)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if feed.Len() != 1 {
			t.Errorf("got length %d, expected 1", feed.Len())
		}
	})
}

// TestCollectionAdd tests story submission and the dual-collection
// update invariant.
func TestCollectionAdd(t *testing.T) {
	t.Parallel()

	t.Run("inserts the returned story at position 0 of both collections", func(t *testing.T) {
		t.Parallel()

		gw := testGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost || r.URL.Path != "/stories" {
				t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			}
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"story":{"storyId":"s1","title":"T","author":"A","url":"http://x.com","username":"bob"}}`))
		}))

		sess := &Session{gw: gw, username: "bob", token: "tok"}
		sess.ownStories = []model.Story{mustStory(t, "old", "Old story")}
		feed := NewCollection([]model.Story{mustStory(t, "s0", "Existing")})

		story, err := feed.Add(context.Background(), sess, model.StoryDraft{Title: "T", Author: "A", URL: "http://x.com"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if story.StoryID() != "s1" {
			t.Errorf("got storyId %q, expected 's1'", story.StoryID())
		}
		if feed.Len() != 2 || feed.At(0).StoryID() != "s1" {
			t.Errorf("feed not updated at position 0: %+v", feed.Stories())
		}
		own := sess.OwnStories()
		if len(own) != 2 || own[0].StoryID() != "s1" {
			t.Errorf("own stories not updated at position 0: %+v", own)
		}
	})

	t.Run("fails fast without a session token", func(t *testing.T) {
		t.Parallel()

		requests := 0
		gw := testGateway(t, http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
			requests++
		}))

		feed := NewCollection(nil)
		draft := model.StoryDraft{Title: "T", Author: "A", URL: "http://x.com"}

		if _, err := feed.Add(context.Background(), nil, draft); !errors.Is(err, ErrNotLoggedIn) {
			t.Errorf("nil session: expected ErrNotLoggedIn, got %v", err)
		}

		sess := &Session{gw: gw, username: "bob"}
		_, err := feed.Add(context.Background(), sess, draft)
		if !errors.Is(err, ErrNotLoggedIn) {
			t.Errorf("tokenless session: expected ErrNotLoggedIn, got %v", err)
		}
		if !errors.Is(err, gateway.ErrAuth) {
			t.Error("ErrNotLoggedIn must match the auth error kind")
		}
		if requests != 0 {
			t.Errorf("no request must be sent without a token, got %d", requests)
		}
	})

	t.Run("rejects an incomplete draft before calling the server", func(t *testing.T) {
		t.Parallel()

		requests := 0
		gw := testGateway(t, http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
			requests++
		}))

		sess := &Session{gw: gw, username: "bob", token: "tok"}
		feed := NewCollection(nil)

		_, err := feed.Add(context.Background(), sess, model.StoryDraft{Title: "T", URL: "http://x.com"})
		var verr *model.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected *model.ValidationError, got %v", err)
		}
		if requests != 0 {
			t.Errorf("no request must be sent for an invalid draft, got %d", requests)
		}
	})

	t.Run("remote failure mutates neither collection", func(t *testing.T) {
		t.Parallel()

		gw := testGateway(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":{"status":500,"message":"nope"}}`))
		}))

		sess := &Session{gw: gw, username: "bob", token: "tok"}
		feed := NewCollection([]model.Story{mustStory(t, "s0", "Existing")})

		_, err := feed.Add(context.Background(), sess, model.StoryDraft{Title: "T", Author: "A", URL: "http://x.com"})
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if feed.Len() != 1 {
			t.Errorf("feed mutated on failure: length %d", feed.Len())
		}
		if len(sess.OwnStories()) != 0 {
			t.Errorf("own stories mutated on failure: %+v", sess.OwnStories())
		}
	})
}

// TestCollectionRemove tests deletion and the reassignment-based filter.
func TestCollectionRemove(t *testing.T) {
	t.Parallel()

	removeHandler := func(t *testing.T) http.Handler {
		t.Helper()
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodDelete {
				t.Errorf("unexpected method %s", r.Method)
			}
			_, _ = w.Write([]byte(`{"story":{"storyId":"s1","title":"T","url":"http://x.com","username":"bob"},"message":"Story successfully removed!"}`))
		})
	}

	t.Run("removing s1 from [s1 s2] leaves exactly [s2]", func(t *testing.T) {
		t.Parallel()

		gw := testGateway(t, removeHandler(t))
		sess := &Session{gw: gw, username: "bob", token: "tok"}
		sess.ownStories = []model.Story{mustStory(t, "s1", "One"), mustStory(t, "other", "Other")}
		feed := NewCollection([]model.Story{mustStory(t, "s1", "One"), mustStory(t, "s2", "Two")})

		message, err := feed.Remove(context.Background(), sess, "s1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if message == "" {
			t.Error("expected a confirmation message")
		}

		if feed.Len() != 1 || feed.At(0).StoryID() != "s2" {
			t.Errorf("expected exactly [s2], got %+v", feed.Stories())
		}
		own := sess.OwnStories()
		if len(own) != 1 || own[0].StoryID() != "other" {
			t.Errorf("own stories not filtered: %+v", own)
		}
	})

	t.Run("removing an absent id is a no-op success", func(t *testing.T) {
		t.Parallel()

		gw := testGateway(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":{"status":404,"message":"No such story."}}`))
		}))

		sess := &Session{gw: gw, username: "bob", token: "tok"}
		feed := NewCollection([]model.Story{mustStory(t, "s2", "Two")})

		if _, err := feed.Remove(context.Background(), sess, "ghost"); err != nil {
			t.Fatalf("expected no-op success, got %v", err)
		}
		if feed.Len() != 1 {
			t.Errorf("collection length changed on no-op removal: %d", feed.Len())
		}
	})

	t.Run("remote failure leaves both collections untouched", func(t *testing.T) {
		t.Parallel()

		gw := testGateway(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))

		sess := &Session{gw: gw, username: "bob", token: "tok"}
		sess.ownStories = []model.Story{mustStory(t, "s1", "One")}
		feed := NewCollection([]model.Story{mustStory(t, "s1", "One")})

		if _, err := feed.Remove(context.Background(), sess, "s1"); err == nil {
			t.Fatal("expected error, got nil")
		}
		if feed.Len() != 1 || len(sess.OwnStories()) != 1 {
			t.Error("collections mutated on remote failure")
		}
	})

	t.Run("fails fast without a session", func(t *testing.T) {
		t.Parallel()

		feed := NewCollection([]model.Story{mustStory(t, "s1", "One")})
		if _, err := feed.Remove(context.Background(), nil, "s1"); !errors.Is(err, ErrNotLoggedIn) {
			t.Errorf("expected ErrNotLoggedIn, got %v", err)
		}
	})
}

// TestStateRefreshFeed tests wholesale feed replacement on the state
// object.
func TestStateRefreshFeed(t *testing.T) {
	t.Parallel()

	t.Run("replaces the feed on success", func(t *testing.T) {
		t.Parallel()

		gw := testGateway(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"stories":[{"storyId":"s1","title":"T","url":"http://a.com","username":"u"}]}`))
		}))

		state := NewState(gw)
		if state.LoggedIn() {
			t.Error("fresh state must not be logged in")
		}
		if err := state.RefreshFeed(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if state.Feed.Len() != 1 {
			t.Errorf("got feed length %d, expected 1", state.Feed.Len())
		}
	})

	t.Run("keeps the old feed on failure", func(t *testing.T) {
		t.Parallel()

		gw := testGateway(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))

		state := NewState(gw)
		state.Feed = NewCollection([]model.Story{mustStory(t, "s1", "Kept")})

		if err := state.RefreshFeed(context.Background()); err == nil {
			t.Fatal("expected error, got nil")
		}
		if state.Feed.Len() != 1 || state.Feed.At(0).StoryID() != "s1" {
			t.Error("existing feed must be kept on refresh failure")
		}
	})
}
