package model

import (
	"strings"
	"time"
)

// StoryRecord is the wire representation of a story exactly as the API
// returns it. The gateway decodes response bodies into this type; entity
// construction happens separately via ParseStory.
type StoryRecord struct {
	// StoryID is the server-assigned, globally unique identifier.
	StoryID string `json:"storyId"`

	// Title is the headline shown for the story.
	Title string `json:"title"`

	// Author is the free-text author credit. Optional on the wire.
	Author string `json:"author,omitempty"`

	// URL is the link the story points at.
	URL string `json:"url"`

	// Username identifies the user who submitted the story.
	Username string `json:"username"`

	// CreatedAt is the server-side creation timestamp.
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// UserRecord is the wire representation of a user profile.
// The server calls the owned-story list "stories"; locally we expose it
// as own stories, but the JSON tag must match the wire field.
type UserRecord struct {
	// Username is the unique account identifier.
	Username string `json:"username"`

	// Name is the user's display name.
	Name string `json:"name"`

	// CreatedAt is the account creation timestamp.
	CreatedAt time.Time `json:"createdAt,omitempty"`

	// Favorites holds the stories this user has favorited.
	Favorites []StoryRecord `json:"favorites"`

	// Stories holds the stories this user submitted.
	Stories []StoryRecord `json:"stories"`
}

// StoryDraft holds the user-supplied fields for a story submission.
// The server fills in the rest (id, username, timestamp).
type StoryDraft struct {
	// Title is the headline for the new story.
	Title string `json:"title"`

	// Author is the author credit for the new story.
	Author string `json:"author"`

	// URL is the link the new story points at.
	URL string `json:"url"`
}

// Validate checks that every draft field is non-empty.
// The create endpoint rejects partial submissions, so we fail fast
// locally instead of spending a round trip.
func (d StoryDraft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return &ValidationError{Field: "title"}
	}
	if strings.TrimSpace(d.Author) == "" {
		return &ValidationError{Field: "author"}
	}
	if strings.TrimSpace(d.URL) == "" {
		return &ValidationError{Field: "url"}
	}
	return nil
}
