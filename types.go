package clientkit

import (
	"io"

	"github.com/coworkpro/clientkit/internal/audit"
	"github.com/coworkpro/clientkit/session"
)

// User is the authenticated account held by the session store.
type User = session.User

// Credentials is a token plus the account it belongs to.
type Credentials = session.Credentials

// State is an immutable snapshot of the session store.
type State = session.State

// Phase is the coarse session phase guards act on.
type Phase = session.Phase

const (
	// PhasePending covers the pre-hydration and in-flight login windows.
	PhasePending = session.PhasePending
	// PhaseAuthenticated means a user and token are present.
	PhaseAuthenticated = session.PhaseAuthenticated
	// PhaseUnauthenticated means hydration settled with no session.
	PhaseUnauthenticated = session.PhaseUnauthenticated
)

// Navigator abstracts the host application's router.
type Navigator = session.Navigator

// NavigatorFunc adapts a function to [Navigator] for in-place navigation.
type NavigatorFunc = session.NavigatorFunc

// AuditEvent is a single audit record.
type AuditEvent = audit.Event

// AuditSink receives audit events from the dispatcher.
type AuditSink = audit.Sink

// NoOpSink discards all audit events.
type NoOpSink = audit.NoOpSink

// ChannelSink buffers audit events on a channel for consumption by the host.
type ChannelSink = audit.ChannelSink

// JSONWriterSink writes audit events as JSON lines.
type JSONWriterSink = audit.JSONWriterSink

// NewChannelSink returns a sink buffering up to buffer events.
func NewChannelSink(buffer int) *ChannelSink {
	return audit.NewChannelSink(buffer)
}

// NewJSONWriterSink returns a sink writing one JSON object per line to w.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return audit.NewJSONWriterSink(w)
}
