// Package audit defines the session audit event model and the sink
// implementations the root package re-exports.
//
// Events describe observable session lifecycle transitions: login success and
// failure, logout, hydration, and guard redirects. They never carry
// credentials — the bearer token and password must not appear in any field.
//
// # What this package must NOT do
//
//   - Import clientkit or any sibling package.
//   - Block the caller: sinks own their delivery semantics.
package audit
