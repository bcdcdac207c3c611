package client

import (
	"fmt"

	"github.com/BlueMycon/hack-or-snooze-ajax-api/internal/gateway"
)

// ErrNotLoggedIn is returned when an operation requiring a session token
// is attempted without one. Calls fail fast locally instead of sending a
// request with a missing token.
//
// The error wraps gateway.ErrAuth so callers can treat every
// authentication failure, local or remote, with a single errors.Is check.
var ErrNotLoggedIn = fmt.Errorf("%w: not logged in", gateway.ErrAuth)
