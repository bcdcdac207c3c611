package credentials

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/BlueMycon/hack-or-snooze-ajax-api/internal/config"
)

// FileName is the credentials file name under the XDG config directory.
const FileName = "credentials.yml"

// Credentials is the stored login state.
type Credentials struct {
	// Username is the account the token belongs to.
	Username string `yaml:"username"`

	// Token is the session token issued by the login or signup endpoint.
	Token string `yaml:"token"`
}

// Store reads and writes the credentials file.
//
// Design decision: The path is fixed at construction instead of
// recomputed per call so that tests can point the store at a temp
// directory without touching the real XDG config directory.
type Store struct {
	path string
}

// NewStore creates a Store rooted at the given directory.
// If dir is empty, the XDG config directory is used.
func NewStore(dir string) *Store {
	if dir == "" {
		dir = config.XDGConfigDir()
	}
	return &Store{path: filepath.Join(dir, FileName)}
}

// Path returns the credentials file path.
func (s *Store) Path() string {
	return s.path
}

// Save writes the credentials to disk with owner-only permissions.
// The parent directory is created if it does not exist.
func (s *Store) Save(creds Credentials) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create credentials directory: %w", err)
	}

	data, err := yaml.Marshal(creds)
	if err != nil {
		return fmt.Errorf("failed to marshal credentials: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write credentials file: %w", err)
	}
	return nil
}

// Load reads the stored credentials.
// It returns (nil, nil) when no credentials file exists, so callers
// can treat a fresh machine the same as a logged-out one.
func (s *Store) Load() (*Credentials, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}

	var creds Credentials
	if err := yaml.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("failed to parse credentials file: %w", err)
	}
	return &creds, nil
}

// Clear removes the stored credentials.
// Clearing an already-empty store is not an error, so logout is
// idempotent.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove credentials file: %w", err)
	}
	return nil
}
