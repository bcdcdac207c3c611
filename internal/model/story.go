package model

import (
	"net"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/publicsuffix"
)

// HostnameFallback is returned by Story.Hostname when the story URL
// cannot be parsed into a usable host. The UI renders it verbatim, so it
// must be a plain placeholder rather than an error message.
const HostnameFallback = "hostname"

// Story is an immutable value object representing one shared link.
// The identifier is assigned by the server and never regenerated locally.
//
// Design decision: Fields are unexported with read-only accessors, the
// same shape as other value objects in this codebase. Collections hold
// independent copies; a Story has no identity beyond the collections
// that reference it.
type Story struct {
	storyID   string
	title     string
	author    string
	url       string
	username  string
	createdAt time.Time
}

// ParseStory builds a Story from a wire record.
// Extra or missing optional fields (author, createdAt) are tolerated;
// a missing required field (storyId, title, url, username) returns a
// *ValidationError naming the field.
func ParseStory(rec StoryRecord) (Story, error) {
	if rec.StoryID == "" {
		return Story{}, &ValidationError{Field: "storyId"}
	}
	if rec.Title == "" {
		return Story{}, &ValidationError{Field: "title"}
	}
	if rec.URL == "" {
		return Story{}, &ValidationError{Field: "url"}
	}
	if rec.Username == "" {
		return Story{}, &ValidationError{Field: "username"}
	}

	return Story{
		storyID:   rec.StoryID,
		title:     rec.Title,
		author:    rec.Author,
		url:       rec.URL,
		username:  rec.Username,
		createdAt: rec.CreatedAt,
	}, nil
}

// ParseStories builds entities from a slice of wire records, preserving
// input order. The first invalid record aborts parsing.
func ParseStories(recs []StoryRecord) ([]Story, error) {
	stories := make([]Story, 0, len(recs))
	for _, rec := range recs {
		story, err := ParseStory(rec)
		if err != nil {
			return nil, err
		}
		stories = append(stories, story)
	}
	return stories, nil
}

// StoryID returns the server-assigned identifier.
func (s Story) StoryID() string { return s.storyID }

// Title returns the story headline.
func (s Story) Title() string { return s.title }

// Author returns the author credit. May be empty.
func (s Story) Author() string { return s.author }

// URL returns the link the story points at.
func (s Story) URL() string { return s.url }

// Username returns the submitting user's identifier.
func (s Story) Username() string { return s.username }

// CreatedAt returns the server-side creation timestamp.
func (s Story) CreatedAt() time.Time { return s.createdAt }

// IsZero returns true if this is a zero value (unparsed) Story.
func (s Story) IsZero() bool { return s.storyID == "" }

// Record converts the Story back to its wire representation.
// Parsing followed by Record is lossless for every core field.
func (s Story) Record() StoryRecord {
	return StoryRecord{
		StoryID:   s.storyID,
		Title:     s.title,
		Author:    s.author,
		URL:       s.url,
		Username:  s.username,
		CreatedAt: s.createdAt,
	}
}

// Hostname extracts the registrable host from the story URL for display.
// It never fails: any URL that cannot be reduced to a host yields
// HostnameFallback instead of an error.
//
// Design decision: We prefer the registrable domain (eTLD+1) over the raw
// host so "news.ycombinator.com" and "ycombinator.com" render the same
// source label. When the public suffix list cannot resolve the host
// (IP addresses, localhost, bare words) we fall back to the raw host.
func (s Story) Hostname() string {
	u, err := url.Parse(s.url)
	if err != nil {
		return HostnameFallback
	}

	host := strings.ToLower(u.Hostname())
	if host == "" {
		return HostnameFallback
	}

	// IP literals are not domains; the public suffix list would mangle them.
	if net.ParseIP(host) != nil {
		return host
	}

	if etld, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		return etld
	}
	return host
}
