package session

import (
	"encoding/json"
	"errors"
	"fmt"
)

// snapshotVersionCurrent is the schema version written by EncodeSnapshot.
// Decoding is append-only: newer code accepts every version up to current.
const snapshotVersionCurrent = 1

var (
	// ErrSnapshotCorrupt is returned when the persisted snapshot cannot be
	// decoded. Hydration treats this as an absent snapshot.
	ErrSnapshotCorrupt = errors.New("session snapshot corrupt")
	// ErrSnapshotVersion is returned for snapshot versions newer than this
	// build understands.
	ErrSnapshotVersion = errors.New("unsupported session snapshot version")
)

// Snapshot is the strict persisted subset of the session state. Transient
// fields (isLoading, isHydrated, error) are never part of it.
type Snapshot struct {
	User            *User  `json:"user"`
	Token           string `json:"token"`
	IsAuthenticated bool   `json:"isAuthenticated"`
}

// snapshotEnvelope is the on-disk shape: the persisted subset nested under
// "state" next to a schema version, matching what the original web client's
// persist middleware wrote.
type snapshotEnvelope struct {
	State   Snapshot `json:"state"`
	Version int      `json:"version"`
}

// EncodeSnapshot serializes the persisted subset into the versioned envelope.
func EncodeSnapshot(s Snapshot) ([]byte, error) {
	data, err := json.Marshal(snapshotEnvelope{
		State:   s,
		Version: snapshotVersionCurrent,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSnapshotCorrupt, err)
	}
	return data, nil
}

// DecodeSnapshot parses a persisted envelope. It validates shape and version
// only; the authenticated-implies-identity invariant is enforced by the
// hydration flow, which downgrades a violating snapshot to logged out.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	var env snapshotEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrSnapshotCorrupt, err)
	}
	if env.Version > snapshotVersionCurrent {
		return Snapshot{}, fmt.Errorf("%w: %d", ErrSnapshotVersion, env.Version)
	}
	return env.State, nil
}
