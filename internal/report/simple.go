package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/BlueMycon/hack-or-snooze-ajax-api/internal/model"
)

// SimpleWriter outputs human-readable text.
// This format is designed for terminal display, mirroring the familiar
// numbered hacker-news feed layout.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type SimpleWriter struct {
	baseWriter

	// showEmpty controls whether sections with no stories are shown.
	showEmpty bool

	// verbose enables additional detail, like full URLs and timestamps.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowEmpty configures the writer to show empty sections.
func WithShowEmpty(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showEmpty = show
	}
}

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		showEmpty:  false,
		verbose:    false,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// WriteFeed outputs the feed in human-readable format.
func (w *SimpleWriter) WriteFeed(feed *Feed) (int, error) {
	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString("Hack or Snooze\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")

	if !feed.SyncedAt.IsZero() {
		sb.WriteString(fmt.Sprintf("(cached feed, synced %s)\n", formatSyncAge(feed.SyncedAt)))
	}
	sb.WriteString("\n")

	if len(feed.Stories) == 0 {
		sb.WriteString("  No stories.\n\n")
		return w.output.Write([]byte(sb.String()))
	}

	for i, story := range feed.Stories {
		w.writeStory(&sb, i+1, story, feed.Favorites[story.StoryID()])
	}
	sb.WriteString("\n")

	return w.output.Write([]byte(sb.String()))
}

// writeStory writes a single numbered feed entry.
func (w *SimpleWriter) writeStory(sb *strings.Builder, position int, story model.Story, favorite bool) {
	marker := " "
	if favorite {
		marker = "*"
	}

	sb.WriteString(fmt.Sprintf("%3d. %s %s (%s)\n", position, marker, story.Title(), story.Hostname()))

	byline := "posted by " + story.Username()
	if story.Author() != "" {
		byline = "by " + story.Author() + ", " + byline
	}
	sb.WriteString(fmt.Sprintf("       %s\n", byline))

	if w.verbose {
		sb.WriteString(fmt.Sprintf("       %s\n", story.URL()))
		if !story.CreatedAt().IsZero() {
			sb.WriteString(fmt.Sprintf("       posted %s\n", story.CreatedAt().Format("2006-01-02 15:04 MST")))
		}
	}
}

// WriteProfile outputs the profile in human-readable format.
func (w *SimpleWriter) WriteProfile(profile *Profile) (int, error) {
	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("%s (@%s)\n", profile.DisplayName(), profile.Username))
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	if !profile.CreatedAt.IsZero() {
		sb.WriteString(fmt.Sprintf("Member since: %s\n", profile.CreatedAt.Format("2006-01-02")))
	}
	sb.WriteString("\n")

	w.writeStoryList(&sb, "FAVORITES", profile.Favorites)
	w.writeStoryList(&sb, "MY STORIES", profile.OwnStories)

	return w.output.Write([]byte(sb.String()))
}

// writeStoryList writes a titled section of stories.
func (w *SimpleWriter) writeStoryList(sb *strings.Builder, title string, stories []model.Story) {
	if len(stories) == 0 && !w.showEmpty {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	if len(stories) == 0 {
		sb.WriteString("  None yet.\n\n")
		return
	}

	for i, story := range stories {
		w.writeStory(sb, i+1, story, false)
	}
	sb.WriteString("\n")
}

// formatSyncAge renders how long ago the feed was synced, for cached
// output headers.
func formatSyncAge(syncedAt time.Time) string {
	age := time.Since(syncedAt)
	switch {
	case age < time.Minute:
		return "just now"
	case age < time.Hour:
		return fmt.Sprintf("%dm ago", int(age.Minutes()))
	case age < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(age.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(age.Hours()/24))
	}
}
