package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/BlueMycon/hack-or-snooze-ajax-api/internal/model"
)

// JSONWriter outputs feeds and profiles in JSON format.
// This format is designed for tool integration and programmatic processing.
//
// Design decision: We use standard encoding/json rather than a third-party
// JSON library because:
// 1. It's part of the standard library (no extra dependencies)
// 2. It's sufficient for our needs
// 3. It provides consistent behavior across Go versions
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	// When false, output is compact (no extra whitespace).
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
// The prefix is prepended to each line, and indent is used for each level.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with default indentation.
// This is a convenience wrapper for WithIndent("", "  ").
func WithPrettyPrint() JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = ""
		w.indentString = "  "
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter:   newBaseWriter(output),
		indent:       false,
		indentPrefix: "",
		indentString: "",
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// jsonFeed is the JSON envelope for a feed.
// Stories serialize through their wire records so the output matches
// the API's field names exactly.
type jsonFeed struct {
	Stories   []model.StoryRecord `json:"stories"`
	Favorites []string            `json:"favorites,omitempty"`
	SyncedAt  *time.Time          `json:"syncedAt,omitempty"`
}

// jsonProfile is the JSON envelope for a profile.
type jsonProfile struct {
	Username   string              `json:"username"`
	Name       string              `json:"name,omitempty"`
	CreatedAt  *time.Time          `json:"createdAt,omitempty"`
	Favorites  []model.StoryRecord `json:"favorites"`
	OwnStories []model.StoryRecord `json:"stories"`
}

// WriteFeed outputs the feed in JSON format.
func (w *JSONWriter) WriteFeed(feed *Feed) (int, error) {
	out := jsonFeed{Stories: toRecords(feed.Stories)}

	for _, story := range feed.Stories {
		if feed.Favorites[story.StoryID()] {
			out.Favorites = append(out.Favorites, story.StoryID())
		}
	}
	if !feed.SyncedAt.IsZero() {
		syncedAt := feed.SyncedAt
		out.SyncedAt = &syncedAt
	}

	return w.writeJSON(out)
}

// WriteProfile outputs the profile in JSON format.
func (w *JSONWriter) WriteProfile(profile *Profile) (int, error) {
	out := jsonProfile{
		Username:   profile.Username,
		Name:       profile.Name,
		Favorites:  toRecords(profile.Favorites),
		OwnStories: toRecords(profile.OwnStories),
	}
	if !profile.CreatedAt.IsZero() {
		createdAt := profile.CreatedAt
		out.CreatedAt = &createdAt
	}

	return w.writeJSON(out)
}

// toRecords converts stories to their wire records.
// The result is never nil so empty lists serialize as [] rather than null.
func toRecords(stories []model.Story) []model.StoryRecord {
	records := make([]model.StoryRecord, len(stories))
	for i, story := range stories {
		records[i] = story.Record()
	}
	return records
}

// writeJSON marshals the given value to JSON and writes it to the output.
func (w *JSONWriter) writeJSON(v any) (int, error) {
	var data []byte
	var err error

	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return 0, err
	}

	// Add trailing newline for better terminal output
	data = append(data, '\n')

	return w.output.Write(data)
}
