// Package database provides SQLite-based storage for the story cache.
//
// The stories command snapshots the fetched feed into a local database
// so that a later run can show stories without network access. The
// cache is a snapshot, not a merge: each sync replaces the previous
// feed wholesale, preserving the server's ordering.
package database
