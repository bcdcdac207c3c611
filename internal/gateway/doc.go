// Package gateway is the single point of contact with the remote
// hack-or-snooze REST API.
//
// The gateway constructs each request with the documented method, path,
// and parameters, attaches the session token where an endpoint requires
// it (query parameter for reads, body field for writes), and translates
// non-2xx responses and transport failures into domain errors carrying
// the HTTP status and the server-provided message.
//
// The gateway performs no entity construction, no caching, and no
// retries. It decodes response bodies into the wire record types from
// the model package and leaves everything else to the caller.
package gateway
