// Package log provides slog helpers that keep credentials out of the
// log output.
//
// Every authenticated API call carries the session token, and the login
// and signup flows handle passwords. The SecureHandler wraps any
// slog.Handler and masks attribute values that look like credentials
// before they reach the underlying handler, so a --verbose run never
// leaks a usable token into a terminal scrollback or a pasted bug
// report.
package log
