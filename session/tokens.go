package session

import (
	"context"

	"github.com/coworkpro/clientkit/storage"
)

// Tokens reads the bearer token out of durable storage. The API client calls
// it on every outgoing request — deliberately independent of the in-memory
// store, so a request always sees whatever the last persisted snapshot holds.
//
// A missing entry, an unreadable backend, or a corrupt snapshot all report
// ok=false: the request is then simply sent unauthenticated, and the server
// is the party that rejects it.
type Tokens struct {
	Storage storage.Store
}

// Token returns the persisted bearer token, if one exists.
func (t Tokens) Token(ctx context.Context) (string, bool) {
	if t.Storage == nil {
		return "", false
	}
	data, found, err := t.Storage.Load(ctx)
	if err != nil || !found {
		return "", false
	}
	snap, err := DecodeSnapshot(data)
	if err != nil || snap.Token == "" {
		return "", false
	}
	return snap.Token, true
}
