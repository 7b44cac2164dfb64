// Package flows contains pure-function orchestrators for the session store's
// lifecycle operations.
//
// Each flow function (RunLogin, RunLogout, RunHydrate) accepts a typed
// dependency struct and performs no side effects beyond those dependencies.
// This keeps the store type thin and lets every state transition be tested
// with plain closures, without storage, network, or navigation in place.
//
// # Architecture boundaries
//
// Flow functions coordinate calls to the authenticator, snapshot persistence,
// navigation, audit dispatch, and metrics. They do NOT own any of these
// resources — ownership stays with the session store.
//
// # What this package must NOT do
//
//   - Hold mutable state between calls.
//   - Import clientkit or the session package (to avoid import cycles).
//   - Perform I/O directly — all I/O is mediated through dependency closures.
package flows
