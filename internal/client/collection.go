package client

import (
	"context"
	"errors"

	"github.com/BlueMycon/hack-or-snooze-ajax-api/internal/gateway"
	"github.com/BlueMycon/hack-or-snooze-ajax-api/internal/model"
)

// Collection is an ordered, mutable sequence of stories representing
// either the global feed or a per-user listing. Insertion order is
// significant (most-recent-first) and no story id appears twice within
// one collection.
//
// The same story may legitimately appear in the global feed, a user's
// favorites, and a user's own stories at the same time; those are
// independent entity copies, not shared references.
type Collection struct {
	stories []model.Story
}

// NewCollection builds a collection from pre-parsed stories, preserving
// order and dropping duplicate ids after their first occurrence.
func NewCollection(stories []model.Story) *Collection {
	c := &Collection{stories: make([]model.Story, 0, len(stories))}
	for _, story := range stories {
		if containsStory(c.stories, story.StoryID()) {
			continue
		}
		c.stories = append(c.stories, story)
	}
	return c
}

// FetchAll retrieves the global story feed and returns a brand-new
// collection. These are replace semantics: the result never merges with
// a prior collection, callers swap the old one out wholesale.
func FetchAll(ctx context.Context, gw *gateway.Client) (*Collection, error) {
	records, err := gw.ListStories(ctx)
	if err != nil {
		return nil, err
	}

	stories, err := model.ParseStories(records)
	if err != nil {
		return nil, err
	}
	return NewCollection(stories), nil
}

// Len returns the number of stories in the collection.
func (c *Collection) Len() int {
	return len(c.stories)
}

// Stories returns the stories in order. The returned slice is a copy;
// mutating it does not affect the collection.
func (c *Collection) Stories() []model.Story {
	out := make([]model.Story, len(c.stories))
	copy(out, c.stories)
	return out
}

// At returns the story at position i.
func (c *Collection) At(i int) model.Story {
	return c.stories[i]
}

// Contains reports whether a story id is present in the collection.
func (c *Collection) Contains(storyID string) bool {
	return containsStory(c.stories, storyID)
}

// Find returns the story with the given id and whether it was found.
func (c *Collection) Find(storyID string) (model.Story, bool) {
	for _, story := range c.stories {
		if story.StoryID() == storyID {
			return story, true
		}
	}
	return model.Story{}, false
}

// Add submits a draft story through the gateway and, on success, inserts
// the server-completed story at the front of both this collection and
// the session's own stories. Relative to the caller the two inserts are
// atomic: no intermediate state with only one collection updated is ever
// observable.
//
// Fails fast with ErrNotLoggedIn when the session is absent or has no
// token, with *model.ValidationError for an incomplete draft, and with
// the gateway's error on remote failure. In every failure case neither
// collection is mutated.
func (c *Collection) Add(ctx context.Context, sess *Session, draft model.StoryDraft) (model.Story, error) {
	if sess == nil || sess.token == "" {
		return model.Story{}, ErrNotLoggedIn
	}
	if err := draft.Validate(); err != nil {
		return model.Story{}, err
	}

	record, err := sess.gw.CreateStory(ctx, sess.token, draft)
	if err != nil {
		return model.Story{}, err
	}

	story, err := model.ParseStory(record)
	if err != nil {
		return model.Story{}, err
	}

	// Remote call succeeded; now, and only now, mutate local state.
	if !c.Contains(story.StoryID()) {
		c.stories = append([]model.Story{story}, c.stories...)
	}
	sess.prependOwnStory(story)

	return story, nil
}

// Remove deletes a story by id through the gateway and, on success,
// filters the id out of both this collection and the session's own
// stories. The filtered sequences are reassigned; each shrinks by
// exactly one when the id was present and is unchanged when absent.
//
// Removing an id the server no longer knows is treated as an idempotent
// success: the local collections are still filtered. Other remote
// failures propagate and leave local state untouched.
func (c *Collection) Remove(ctx context.Context, sess *Session, storyID string) (string, error) {
	if sess == nil || sess.token == "" {
		return "", ErrNotLoggedIn
	}

	_, message, err := sess.gw.DeleteStory(ctx, sess.token, storyID)
	if err != nil {
		if !errors.Is(err, gateway.ErrNotFound) {
			return "", err
		}
		message = "story already removed"
	}

	c.stories = withoutStory(c.stories, storyID)
	sess.removeOwnStory(storyID)

	return message, nil
}
