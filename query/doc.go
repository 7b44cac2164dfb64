// Package query provides a small TTL read cache for service fetches, with
// request coalescing so concurrent reads of the same key trigger a single
// upstream call.
//
// # Architecture boundaries
//
// This package must remain generic: it knows nothing about sessions, HTTP,
// or the shapes of cached values. Services own their key naming and decide
// which mutations invalidate which prefixes.
//
// # What this package must NOT do
//
//   - It must NOT retry or alter failed fetches; errors pass through uncached.
//   - It must NOT serve stale entries past their TTL.
package query
