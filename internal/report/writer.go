package report

import (
	"io"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/BlueMycon/hack-or-snooze-ajax-api/internal/model"
)

// Feed is a renderable view of the story list.
type Feed struct {
	// Stories in server order, newest first.
	Stories []model.Story

	// Favorites marks story IDs favorited by the viewer.
	// Nil when no one is logged in.
	Favorites map[string]bool

	// SyncedAt is when the stories were fetched. Non-zero only for
	// cached feeds, where staleness is worth surfacing.
	SyncedAt time.Time
}

// Profile is a renderable view of a user account.
type Profile struct {
	// Username is the immutable account identifier.
	Username string

	// Name is the display name. May be empty for older accounts.
	Name string

	// CreatedAt is when the account was created.
	CreatedAt time.Time

	// Favorites are the user's favorited stories, newest first.
	Favorites []model.Story

	// OwnStories are the stories the user submitted, newest first.
	OwnStories []model.Story
}

// DisplayName returns the profile's name, falling back to a
// title-cased username when no display name was set.
func (p *Profile) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return cases.Title(language.English).String(p.Username)
}

// Writer defines the interface for rendered output.
// Implementations write feeds and profiles in various formats.
//
// Design decision: We use an interface to allow different output formats
// and destinations. This enables writing to files, stdout, or network
// connections with the same API.
type Writer interface {
	// WriteFeed outputs the story feed to the configured destination.
	// Returns the number of bytes written and any error encountered.
	WriteFeed(feed *Feed) (int, error)

	// WriteProfile outputs the user profile to the configured destination.
	WriteProfile(profile *Profile) (int, error)
}

// MultiWriter writes to multiple Writers simultaneously.
// This is useful for outputting to both terminal and file.
//
// Design decision: We implement this as a separate type rather than
// using io.MultiWriter because our Writer interface is different
// from io.Writer - we write feeds and profiles, not raw bytes.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// WriteFeed outputs the feed to all configured Writers.
// Returns the total bytes written across all writers.
// Stops on first error encountered.
func (m *MultiWriter) WriteFeed(feed *Feed) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.WriteFeed(feed)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// WriteProfile outputs the profile to all configured Writers.
func (m *MultiWriter) WriteProfile(profile *Profile) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.WriteProfile(profile)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
