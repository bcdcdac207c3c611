package config

import (
	"net/url"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"

	"github.com/BlueMycon/hack-or-snooze-ajax-api/internal/gateway"
)

// AppName is the application name used for XDG directory paths.
const AppName = "hacksnooze"

// Config holds all configuration options for the hack-or-snooze client.
// This struct is designed to be populated from CLI flags and passed through
// the application via dependency injection rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// (e.g., APIConfig, OutputConfig) for simplicity. The number of options
// is manageable, and nesting would add complexity without significant benefit.
type Config struct {
	// BaseURL is the hack-or-snooze API endpoint. Overridable so that
	// tests and self-hosted instances can point the client elsewhere.
	BaseURL string

	// Timeout is the per-request timeout for API calls.
	// The hosted API sleeps between requests on free tiers, so the
	// default is generous.
	Timeout time.Duration

	// UserAgent is the User-Agent header sent with API requests.
	UserAgent string

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .hacksnooze in the current
	// directory, the user's home directory, and the XDG config directory.
	ConfigFilePath string

	// JSONOutput enables JSON output instead of the human-readable format.
	// Mutually exclusive with MarkdownOutput.
	JSONOutput bool

	// MarkdownOutput enables GitHub Flavored Markdown output instead of
	// the human-readable format. Mutually exclusive with JSONOutput.
	MarkdownOutput bool

	// OutputFile is the output file path for rendered stories or profiles.
	// When set, output is written to this file instead of stdout.
	// Directories are created automatically if they don't exist.
	OutputFile string

	// CacheDir is the directory path for storing the SQLite story cache.
	// Defaults to the XDG data directory (~/.local/share/hacksnooze on Linux).
	CacheDir string

	// UseCache makes the stories command read from the local cache
	// instead of the API. Useful offline or when the API is down.
	UseCache bool

	// Limit caps the number of stories shown by the stories command.
	// Zero means no cap.
	Limit int
}

// NewConfig creates a new Config with default values.
// All fields are set to safe, sensible defaults that work for most use cases.
// Users can override specific values after creation.
//
// Design decision: We use a constructor function instead of relying on
// zero values because many defaults are non-zero (e.g., timeout, base URL).
// This also serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		BaseURL:   gateway.DefaultBaseURL,
		Timeout:   gateway.DefaultTimeout,
		UserAgent: gateway.DefaultUserAgent,
		CacheDir:  XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for the client.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.local/share/hacksnooze
// On macOS: ~/Library/Application Support/hacksnooze
// On Windows: %LOCALAPPDATA%\hacksnooze
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for the client.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.config/hacksnooze
// On macOS: ~/Library/Application Support/hacksnooze
// On Windows: %APPDATA%\hacksnooze
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// This is called once after CLI parsing, before any API calls are made.
//
// We chose to return the first error found rather than collecting all errors
// because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidBaseURL
	}

	// Timeout must be positive; zero timeout would cause immediate failures
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	// JSONOutput and MarkdownOutput are mutually exclusive
	if c.JSONOutput && c.MarkdownOutput {
		return ErrConflictingOutputFormats
	}

	if c.Limit < 0 {
		return ErrInvalidLimit
	}

	return nil
}
