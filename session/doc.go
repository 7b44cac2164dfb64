// Package session provides the client-side session store: the single source
// of truth for the current authenticated identity, its transient lifecycle
// flags, and its durable snapshot.
//
// # State machine
//
// The store holds {user, token, isAuthenticated, isLoading, isHydrated,
// error}. isAuthenticated implies both user and token are present. Until
// hydration completes, isAuthenticated must be treated as unknown — consumers
// (route guards) observe isHydrated and hold a pending state rather than
// reading it as false.
//
// # Persistence
//
// A strict subset {user, token, isAuthenticated} is serialized into a
// versioned JSON envelope and written to durable storage on every mutation of
// those fields. isLoading, isHydrated, and error are process-transient and
// never persisted. The snapshot is read back exactly once per process via
// [Store.Hydrate]; an absent entry is a valid logged-out state.
//
// # Architecture boundaries
//
// This package owns session state transitions and snapshot encoding. It does
// NOT perform HTTP itself (the Authenticator collaborator does), does NOT
// inspect the bearer token (always opaque, only forwarded), and does NOT
// decide routing policy (guards do).
//
// # What this package must NOT do
//
//   - Import clientkit, api, guard, or crm (no upward imports).
//   - Parse or validate the token contents.
//   - Persist transient flags or error text.
package session
