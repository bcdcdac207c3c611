// Package model defines the core data structures shared across the client.
//
// This package contains the following main types:
//   - Story: An immutable value object for one shared link
//   - StoryRecord: The wire representation of a story as the API sends it
//   - UserRecord: The wire representation of a user profile
//   - StoryDraft: User-supplied fields for a story submission
//
// Design decision: We separate models into their own package to avoid
// circular dependencies. Both the gateway and the client-side collections
// need these types, so centralizing them prevents import cycles.
//
// Entities are constructed only by parsing wire records; the gateway never
// builds entities and the entities never perform network calls.
package model
