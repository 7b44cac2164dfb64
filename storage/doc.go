// Package storage provides the durable client-storage collaborators used to
// persist the session snapshot across process restarts.
//
// A [Store] holds exactly one named entry: the serialized session snapshot.
// Absence of the entry is a valid state and is reported through the found
// return value, never as an error.
//
// # Implementations
//
//   - [Memory] — process-local, for tests and ephemeral clients.
//   - [File] — a single file written atomically (temp file + rename).
//   - [Redis] — a single key in Redis, for clients that share a session
//     snapshot across hosts.
//
// # Architecture boundaries
//
// This package moves opaque bytes. It does NOT know the snapshot schema —
// encoding and decoding belong to the session package.
//
// # What this package must NOT do
//
//   - Inspect or validate snapshot contents.
//   - Import clientkit, session, or any sibling package.
package storage
