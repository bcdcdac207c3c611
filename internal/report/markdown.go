package report

import (
	"io"
	"sort"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/BlueMycon/hack-or-snooze-ajax-api/internal/model"
)

// MarkdownWriter outputs feeds and profiles in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// WriteFeed outputs the feed in Markdown format.
func (w *MarkdownWriter) WriteFeed(feed *Feed) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Hack or Snooze")
	md.PlainText("")

	status := "live"
	if !feed.SyncedAt.IsZero() {
		status = "cached, synced " + feed.SyncedAt.Format("2006-01-02 15:04 MST")
	}
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Stories", strconv.Itoa(len(feed.Stories))},
			{"Source", status},
		},
	})
	md.PlainText("")

	w.writeStoriesTable(md, feed.Stories, feed.Favorites)

	if len(feed.Stories) > 0 {
		w.writeHostChart(md, feed.Stories)
	}

	w.writeFooter(md)
	return len(md.String()), md.Build()
}

// writeStoriesTable writes the feed as a table.
func (w *MarkdownWriter) writeStoriesTable(md *markdown.Markdown, stories []model.Story, favorites map[string]bool) {
	md.H2("Stories")
	md.PlainText("")

	if len(stories) == 0 {
		md.PlainText("No stories.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(stories))
	for i, story := range stories {
		marker := ""
		if favorites[story.StoryID()] {
			marker = "⭐"
		}
		rows[i] = []string{
			strconv.Itoa(i + 1),
			"[" + truncateString(story.Title(), 60) + "](" + story.URL() + ")",
			story.Hostname(),
			story.Username(),
			marker,
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"#", "Title", "Host", "Poster", "Favorite"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeHostChart writes a mermaid pie chart of stories per host.
func (w *MarkdownWriter) writeHostChart(md *markdown.Markdown, stories []model.Story) {
	counts := make(map[string]int)
	for _, story := range stories {
		counts[story.Hostname()]++
	}

	hosts := make([]string, 0, len(counts))
	for host := range counts {
		hosts = append(hosts, host)
	}
	// Largest slices first; ties break alphabetically for stable output.
	sort.Slice(hosts, func(i, j int) bool {
		if counts[hosts[i]] != counts[hosts[j]] {
			return counts[hosts[i]] > counts[hosts[j]]
		}
		return hosts[i] < hosts[j]
	})

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Stories per host"),
		piechart.WithShowData(true),
	)
	for _, host := range hosts {
		chart.LabelAndIntValue(host, uint64(counts[host]))
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// WriteProfile outputs the profile in Markdown format.
func (w *MarkdownWriter) WriteProfile(profile *Profile) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1(profile.DisplayName())
	md.PlainText("")

	memberSince := "-"
	if !profile.CreatedAt.IsZero() {
		memberSince = profile.CreatedAt.Format("2006-01-02")
	}
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Username", "`" + profile.Username + "`"},
			{"Member since", memberSince},
			{"Favorites", strconv.Itoa(len(profile.Favorites))},
			{"Stories", strconv.Itoa(len(profile.OwnStories))},
		},
	})
	md.PlainText("")

	w.writeStorySection(md, "Favorites", profile.Favorites)
	w.writeStorySection(md, "My Stories", profile.OwnStories)

	w.writeFooter(md)
	return len(md.String()), md.Build()
}

// writeStorySection writes a titled bullet list of stories.
func (w *MarkdownWriter) writeStorySection(md *markdown.Markdown, title string, stories []model.Story) {
	md.H2(title)
	md.PlainText("")

	if len(stories) == 0 {
		md.PlainText("None yet.")
		md.PlainText("")
		return
	}

	items := make([]string, len(stories))
	for i, story := range stories {
		items[i] = "[" + story.Title() + "](" + story.URL() + ") (" + story.Hostname() + ")"
	}
	md.BulletList(items...)
	md.PlainText("")
}

// writeFooter writes the output footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Generated by [hacksnooze](https://github.com/BlueMycon/hack-or-snooze-ajax-api)*")
}

// truncateString truncates a string to maxLen characters with ellipsis.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
