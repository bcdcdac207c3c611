// Package credentials persists the session token between CLI runs.
//
// The hack-or-snooze API issues a long-lived token at login, so the
// CLI stores it (with the username it belongs to) in a small YAML file
// under the XDG config directory. The file is written with 0600
// permissions because the token authenticates every write operation.
package credentials
