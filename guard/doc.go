// Package guard exposes the route-guard policies built on top of the session
// store's observable state.
//
// # Guards
//
//   - [AuthGuard] — protects routes from unauthenticated visitors.
//   - [RedirectIfAuthenticated] — keeps logged-in users away from entry
//     routes such as the login form.
//
// Each guard is an explicit state machine over the three session phases
// (pending, authenticated, unauthenticated), driven by store subscription
// rather than render side effects, so the transition table is testable
// without any rendering environment. A navigation fires exactly once per
// entry into the redirecting phase; leaving and re-entering the phase re-arms
// it.
//
// Both guards treat the pre-hydration window as unknown, never as logged
// out — an already-authenticated user reloading the app is shown the
// fallback, not bounced to the login route.
//
// # What this package must NOT do
//
//   - Mutate session state (guards only observe).
//   - Return errors: absence of hydration or authentication is purely a
//     render/redirect decision.
package guard
