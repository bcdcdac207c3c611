package client

import (
	"context"
	"log/slog"
	"time"

	"github.com/BlueMycon/hack-or-snooze-ajax-api/internal/gateway"
	"github.com/BlueMycon/hack-or-snooze-ajax-api/internal/model"
)

// Session represents the logged-in user: profile fields, the opaque
// session token, the favorited stories, and the stories this user
// submitted. A Session is created by Signup, Login, or Restore and
// discarded on logout; it never persists the token itself.
//
// Favorites are ordered most-recently-favorited-first with membership
// keyed by story id. Own stories are ordered most-recent-first.
type Session struct {
	gw *gateway.Client

	username  string
	name      string
	createdAt time.Time

	// token is caller-owned data the session reads on every mutating
	// call and replaces only wholesale via the lifecycle operations.
	token string

	favorites  []model.Story
	ownStories []model.Story
}

// newSession wraps a profile record and token into a Session, parsing
// the nested favorite and owned-story records into entities.
func newSession(gw *gateway.Client, rec model.UserRecord, token string) (*Session, error) {
	favorites, err := model.ParseStories(rec.Favorites)
	if err != nil {
		return nil, err
	}
	ownStories, err := model.ParseStories(rec.Stories)
	if err != nil {
		return nil, err
	}

	return &Session{
		gw:         gw,
		username:   rec.Username,
		name:       rec.Name,
		createdAt:  rec.CreatedAt,
		token:      token,
		favorites:  favorites,
		ownStories: ownStories,
	}, nil
}

// Signup registers a new account and returns the resulting session.
// A taken username surfaces as gateway.ErrAuth.
func Signup(ctx context.Context, gw *gateway.Client, username, password, name string) (*Session, error) {
	rec, token, err := gw.Signup(ctx, username, password, name)
	if err != nil {
		return nil, err
	}
	return newSession(gw, rec, token)
}

// Login authenticates an existing account and returns the resulting
// session, including parsed favorites and own stories from the profile.
// Wrong credentials surface as gateway.ErrAuth.
func Login(ctx context.Context, gw *gateway.Client, username, password string) (*Session, error) {
	rec, token, err := gw.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}
	return newSession(gw, rec, token)
}

// Restore rebuilds a session from stored credentials.
//
// On any failure — expired or invalid token, network error, malformed
// profile — it recovers locally and returns (nil, nil): the explicit
// "no session" result. A stale stored credential is an expected,
// non-exceptional situation, so this is the one place in the core where
// an error is deliberately swallowed rather than propagated.
func Restore(ctx context.Context, gw *gateway.Client, token, username string) (*Session, error) {
	if token == "" || username == "" {
		return nil, nil
	}

	rec, err := gw.GetUser(ctx, token, username)
	if err != nil {
		slog.Debug("session restore failed, treating as logged out",
			"username", username,
			"error", err,
		)
		return nil, nil
	}

	sess, err := newSession(gw, rec, token)
	if err != nil {
		slog.Debug("stored session profile unparseable, treating as logged out",
			"username", username,
			"error", err,
		)
		return nil, nil
	}
	return sess, nil
}

// Username returns the unique account identifier.
func (s *Session) Username() string { return s.username }

// Name returns the user's display name.
func (s *Session) Name() string { return s.name }

// CreatedAt returns the account creation timestamp.
func (s *Session) CreatedAt() time.Time { return s.createdAt }

// Token returns the opaque session token.
func (s *Session) Token() string { return s.token }

// Favorites returns the favorited stories, most recently favorited
// first. The returned slice is a copy; mutating it does not affect the
// session.
func (s *Session) Favorites() []model.Story {
	out := make([]model.Story, len(s.favorites))
	copy(out, s.favorites)
	return out
}

// OwnStories returns the stories this user submitted, most recent
// first. The returned slice is a copy.
func (s *Session) OwnStories() []model.Story {
	out := make([]model.Story, len(s.ownStories))
	copy(out, s.ownStories)
	return out
}

// IsFavorite reports whether a story id is in the favorites set.
func (s *Session) IsFavorite(storyID string) bool {
	for _, story := range s.favorites {
		if story.StoryID() == storyID {
			return true
		}
	}
	return false
}

// AddFavorite marks a story as a favorite, remotely then locally.
//
// Membership is checked by story id before the local insert: favoriting
// an already-favorited story repeats the idempotent remote call but
// never inserts a duplicate entry. On failure favorites are unchanged.
func (s *Session) AddFavorite(ctx context.Context, story model.Story) (string, error) {
	if s.token == "" {
		return "", ErrNotLoggedIn
	}

	message, err := s.gw.AddFavorite(ctx, s.token, s.username, story.StoryID())
	if err != nil {
		return "", err
	}

	if !s.IsFavorite(story.StoryID()) {
		s.favorites = append([]model.Story{story}, s.favorites...)
	}
	return message, nil
}

// RemoveFavorite clears a story from the favorites, remotely then
// locally. Removing a story that is not favorited locally is a no-op on
// the local set.
func (s *Session) RemoveFavorite(ctx context.Context, story model.Story) (string, error) {
	if s.token == "" {
		return "", ErrNotLoggedIn
	}

	message, err := s.gw.RemoveFavorite(ctx, s.token, s.username, story.StoryID())
	if err != nil {
		return "", err
	}

	s.favorites = withoutStory(s.favorites, story.StoryID())
	return message, nil
}

// prependOwnStory records a newly created story at the front of the
// owned-story list. Called by Collection.Add after a successful create.
func (s *Session) prependOwnStory(story model.Story) {
	if containsStory(s.ownStories, story.StoryID()) {
		return
	}
	s.ownStories = append([]model.Story{story}, s.ownStories...)
}

// removeOwnStory filters a story id out of the owned-story list.
// Called by Collection.Remove after a successful delete.
func (s *Session) removeOwnStory(storyID string) {
	s.ownStories = withoutStory(s.ownStories, storyID)
}

// withoutStory returns stories filtered to exclude the given id.
// The result is assigned back by callers; computing a filtered sequence
// and discarding it would silently remove nothing.
func withoutStory(stories []model.Story, storyID string) []model.Story {
	filtered := stories[:0:0]
	for _, story := range stories {
		if story.StoryID() != storyID {
			filtered = append(filtered, story)
		}
	}
	return filtered
}

// containsStory reports whether any story in the slice has the given id.
func containsStory(stories []model.Story, storyID string) bool {
	for _, story := range stories {
		if story.StoryID() == storyID {
			return true
		}
	}
	return false
}
