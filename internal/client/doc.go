// Package client implements the client-side domain model and
// synchronization layer: the story collection, the logged-in user
// session, and the application state object that ties them together.
//
// Every mutating operation follows the same shape: call the gateway,
// and only after the remote call succeeds mutate local state. A failed
// remote call therefore never leaves local state diverged from the
// server. The package provides no internal locking; the expected caller
// (a UI event loop or a CLI invocation) serializes operations.
//
// The one deliberate exception to error propagation is Restore, which
// swallows failures and reports "no session": a stale stored credential
// is an expected situation, not an exceptional one.
package client
