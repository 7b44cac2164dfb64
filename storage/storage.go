package storage

import (
	"context"
	"errors"
)

// ErrUnavailable is returned when the storage backend cannot be reached.
var ErrUnavailable = errors.New("storage unavailable")

// Store persists a single opaque snapshot entry across process restarts.
//
// Load reports found=false when no entry exists; that is a valid state, not
// an error. Save overwrites any previous entry. Clear removes the entry and
// succeeds when nothing was stored.
type Store interface {
	Load(ctx context.Context) (data []byte, found bool, err error)
	Save(ctx context.Context, data []byte) error
	Clear(ctx context.Context) error
}
