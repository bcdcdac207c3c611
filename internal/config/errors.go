package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrInvalidBaseURL is returned when the API base URL is empty or
	// does not parse as an http or https URL.
	ErrInvalidBaseURL = errors.New("invalid base URL: must be an http or https URL")

	// ErrInvalidTimeout is returned when the timeout is not positive.
	// A timeout of zero or negative would cause immediate request failures.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrConflictingOutputFormats is returned when both --json and
	// --markdown are specified. Only one output format can be used at a time.
	ErrConflictingOutputFormats = errors.New("conflicting output formats: --json and --markdown cannot be used together")

	// ErrInvalidLimit is returned when the story limit is negative.
	// Use 0 to show every story in the feed.
	ErrInvalidLimit = errors.New("invalid limit: must be non-negative")
)
