// Package api implements the HTTP client shared by every typed service
// module: base-URL handling, bearer-token attachment, request IDs, response
// classification, and the typed error all failures are surfaced as.
//
// # Token attachment
//
// The token is re-read from durable storage on every outgoing request via the
// configured [TokenSource] — never from in-memory session state. A missing
// token is not an error at this layer: the request goes out unauthenticated
// and the server is the party that rejects it.
//
// # Error taxonomy
//
// Every failure becomes an [*Error] carrying the HTTP status (0 for network
// failures), a message (server-supplied when present, else derived from the
// status text), and an optional validation-error list. [*Error] matches the
// category sentinels (ErrTransport, ErrUnauthorized, ErrValidation,
// ErrUnknown) through errors.Is. The client never retries.
//
// # What this package must NOT do
//
//   - Inspect or parse the bearer token.
//   - Cache responses (the query package owns caching).
//   - Import clientkit, session, guard, or crm (no upward imports).
package api
