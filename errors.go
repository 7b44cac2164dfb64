package clientkit

import (
	"errors"

	"github.com/coworkpro/clientkit/api"
	"github.com/coworkpro/clientkit/session"
	"github.com/coworkpro/clientkit/storage"
)

// Builder errors.
var (
	// ErrBuilderUsed is returned by Build when the builder was already consumed.
	ErrBuilderUsed = errors.New("builder already used")
	// ErrBaseURLRequired is returned by Build when no API base URL is configured.
	ErrBaseURLRequired = errors.New("API base URL required")
	// ErrStorageRequired is returned by Build when no session storage is configured.
	ErrStorageRequired = errors.New("session storage required")
)

// Re-exported sentinels so callers can classify failures without importing
// the sub-packages.
var (
	ErrAuthenticationFailed = session.ErrAuthenticationFailed
	ErrMissingCredentials   = session.ErrMissingCredentials
	ErrSnapshotCorrupt      = session.ErrSnapshotCorrupt

	ErrTransport    = api.ErrTransport
	ErrUnauthorized = api.ErrUnauthorized
	ErrValidation   = api.ErrValidation
	ErrUnknown      = api.ErrUnknown

	ErrStorageUnavailable = storage.ErrUnavailable
)
