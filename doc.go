// Package clientkit is the client core for the Cowork Pro CRM: an
// authenticated session store with durable persistence, route guards driven
// by session phase, and a typed API surface for leads, proposals, and
// centers.
//
// The package is designed for concurrent UI workloads: Client methods are
// safe to call from multiple goroutines after initialization through
// [Builder.Build].
//
// # Architecture boundaries
//
// clientkit is the public surface. It exposes [Client], [Builder], [Config],
// and value types (MetricsSnapshot, AuditEvent, etc.). Session state,
// guards, transport, and services live in their sub-packages; flow
// orchestration and audit dispatch internals live under internal/ and are
// never exported.
//
// # What this package must NOT do
//
//   - Expose storage backends, snapshot encodings, or dispatcher internals
//     in its public API.
//   - Perform I/O during construction (Build wires dependencies; the first
//     network or storage call happens in Hydrate or a service method).
//   - Import any sub-package that re-imports clientkit (no import cycles).
package clientkit
