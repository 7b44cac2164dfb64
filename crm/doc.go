// Package crm provides the typed service modules for the Cowork Pro backend:
// authentication, leads, proposals, and centers. Every response travels in
// the standard envelope {success, data, message, errors}; services unwrap it
// and surface failures as api errors.
//
// # Architecture boundaries
//
// Services depend on the api client for transport and on the query cache for
// read coalescing. They own the cache key namespace per resource and
// invalidate it on every mutation.
//
// # What this package must NOT do
//
//   - It must NOT touch session state; login results are returned to the
//     caller, never stored here.
//   - It must NOT read or write tokens; the api client attaches credentials.
package crm
