package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/BlueMycon/hack-or-snooze-ajax-api/internal/model"
)

// StoryCache provides SQLite-based storage for the most recent feed
// snapshot. It manages connection pooling and provides methods for
// replacing and reading the cached feed.
//
// Design decision: We use a single database file rather than one file
// per sync. Each sync replaces the previous snapshot, so history never
// accumulates and the file stays small.
type StoryCache struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures StoryCache behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	// This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a StoryCache at the specified directory.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*StoryCache, error) {
	dbPath := filepath.Join(dbDir, "hacksnooze.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("story cache not found at %s (run without --cached to populate it)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check cache path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create cache directory: %w", err)
		}
	}

	// Build connection string
	// We use modernc.org/sqlite which uses a different connection string format.
	// When CreateIfNotExists is false, we use mode=rw to prevent creating new files.
	// When CreateIfNotExists is true, we use mode=rwc to allow creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open story cache: %w", err)
	}

	// SQLite only supports one writer, and the CLI is single-threaded
	// around the cache anyway.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	cache := &StoryCache{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := cache.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return cache, nil
}

// Close closes the database connection.
func (sc *StoryCache) Close() error {
	return sc.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (sc *StoryCache) createTables() error {
	schema := `
	-- Stories hold the latest feed snapshot. Position preserves the
	-- server's newest-first ordering across the replace.
	CREATE TABLE IF NOT EXISTS stories (
		story_id TEXT PRIMARY KEY,
		position INTEGER NOT NULL,
		title TEXT NOT NULL,
		author TEXT,
		url TEXT NOT NULL,
		username TEXT NOT NULL,
		created_at TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_stories_position ON stories(position);

	-- Sync metadata is a single-row table recording the last sync time.
	CREATE TABLE IF NOT EXISTS sync_meta (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		synced_at DATETIME NOT NULL
	);
	`

	_, err := sc.db.ExecContext(context.Background(), schema)
	return err
}

// UpsertStories replaces the cached feed with the given stories.
// The whole replace runs in one transaction so a failed sync never
// leaves a half-written snapshot behind.
func (sc *StoryCache) UpsertStories(ctx context.Context, stories []model.Story) error {
	tx, err := sc.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM stories"); err != nil {
		return fmt.Errorf("failed to clear cached stories: %w", err)
	}

	insert := `
	INSERT INTO stories (story_id, position, title, author, url, username, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	for i, story := range stories {
		rec := story.Record()
		var createdAt string
		if !rec.CreatedAt.IsZero() {
			createdAt = rec.CreatedAt.UTC().Format(time.RFC3339Nano)
		}
		if _, err := tx.ExecContext(ctx, insert,
			rec.StoryID, i, rec.Title, rec.Author, rec.URL, rec.Username, createdAt,
		); err != nil {
			return fmt.Errorf("failed to insert story %s: %w", rec.StoryID, err)
		}
	}

	meta := `
	INSERT INTO sync_meta (id, synced_at) VALUES (1, ?)
	ON CONFLICT(id) DO UPDATE SET synced_at = excluded.synced_at
	`
	if _, err := tx.ExecContext(ctx, meta, time.Now().UTC().Format(time.RFC3339Nano)); err != nil {
		return fmt.Errorf("failed to record sync time: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return nil
}

// ListStories returns the cached feed in its original server order.
// An empty cache returns an empty slice, not an error.
func (sc *StoryCache) ListStories(ctx context.Context) ([]model.Story, error) {
	query := `
	SELECT story_id, title, author, url, username, created_at
	FROM stories
	ORDER BY position
	`

	rows, err := sc.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query cached stories: %w", err)
	}
	defer rows.Close()

	var stories []model.Story
	for rows.Next() {
		var rec model.StoryRecord
		var author, createdAt sql.NullString

		if err := rows.Scan(&rec.StoryID, &rec.Title, &author, &rec.URL, &rec.Username, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan story: %w", err)
		}
		rec.Author = author.String
		if createdAt.Valid && createdAt.String != "" {
			rec.CreatedAt = parseTimestamp(createdAt.String)
		}

		story, err := model.ParseStory(rec)
		if err != nil {
			// A malformed cache row should not break offline reading.
			continue
		}
		stories = append(stories, story)
	}

	return stories, rows.Err()
}

// LastSyncTime returns when the cache was last replaced.
// A never-synced cache returns the zero time and no error, matching
// the "no rows is not an error" convention used elsewhere.
func (sc *StoryCache) LastSyncTime(ctx context.Context) (time.Time, error) {
	var syncedAt string
	err := sc.db.QueryRowContext(ctx, "SELECT synced_at FROM sync_meta WHERE id = 1").Scan(&syncedAt)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to read sync time: %w", err)
	}
	return parseTimestamp(syncedAt), nil
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	time.RFC3339Nano,          // RFC3339 with nanoseconds (our insert format)
	time.RFC3339,              // Full RFC3339 format
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// SQLite may return timestamps in different formats depending on configuration.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
