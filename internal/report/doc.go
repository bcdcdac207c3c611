// Package report renders story feeds and user profiles for output.
// It supports human-readable text for terminal display, GitHub
// Flavored Markdown for sharing, and JSON for tool integration.
package report
