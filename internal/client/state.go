package client

import (
	"context"

	"github.com/BlueMycon/hack-or-snooze-ajax-api/internal/gateway"
)

// State is the explicit application-state object: the gateway, the
// current story feed, and the current session when someone is logged in.
//
// Design decision: The state is constructed once and passed by reference
// into whichever component needs to read or mutate it. There are no
// module-level globals holding UI-relevant state; "maybe logged in" is
// an explicit nil check on Session rather than something resolved
// silently deep in an operation.
type State struct {
	// Gateway is the single point of contact with the remote API.
	Gateway *gateway.Client

	// Feed is the current global story collection. Never nil; starts
	// empty and is replaced wholesale by RefreshFeed.
	Feed *Collection

	// Session is the logged-in user, or nil when unauthenticated.
	Session *Session
}

// NewState creates application state with an empty feed and no session.
func NewState(gw *gateway.Client) *State {
	return &State{
		Gateway: gw,
		Feed:    NewCollection(nil),
	}
}

// LoggedIn reports whether a session is present.
func (s *State) LoggedIn() bool {
	return s.Session != nil
}

// RefreshFeed replaces the current feed with a freshly fetched one.
// On failure the existing feed is kept.
func (s *State) RefreshFeed(ctx context.Context) error {
	feed, err := FetchAll(ctx, s.Gateway)
	if err != nil {
		return err
	}
	s.Feed = feed
	return nil
}
