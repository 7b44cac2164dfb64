package session

import (
	"context"
	"errors"
)

var (
	// ErrAuthenticationFailed is returned by Login when the authentication
	// collaborator rejects the credentials or cannot be reached. The wrapped
	// message matches the error field stored on the session state.
	ErrAuthenticationFailed = errors.New("authentication failed")
	// ErrMissingCredentials is returned by Login when email or password is
	// empty. No network call is made.
	ErrMissingCredentials = errors.New("email and password are required")
	// ErrStoreNotReady is returned when the store is missing a required
	// collaborator for the requested operation.
	ErrStoreNotReady = errors.New("session store not initialized")
)

// User is the authenticated identity held by the session state.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Credentials pairs the opaque bearer token with the identity it belongs to.
// The token is never inspected by the client, only forwarded.
type Credentials struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// State is the observable session state. Copies of it are handed to
// subscribers; mutating a copy has no effect on the store.
type State struct {
	User            *User
	Token           string
	IsAuthenticated bool
	IsLoading       bool
	IsHydrated      bool
	Error           string
}

// Phase folds the state into the three-way classification the route guards
// operate on.
func (s State) Phase() Phase {
	switch {
	case !s.IsHydrated || s.IsLoading:
		return PhasePending
	case s.IsAuthenticated && s.User != nil:
		return PhaseAuthenticated
	default:
		return PhaseUnauthenticated
	}
}

// Phase is the guard-facing classification of the session state.
type Phase int

const (
	// PhasePending covers the pre-hydration window and in-flight logins. The
	// authentication flags must not be trusted while pending.
	PhasePending Phase = iota
	// PhaseAuthenticated means hydrated, settled, and logged in.
	PhaseAuthenticated
	// PhaseUnauthenticated means hydrated, settled, and logged out.
	PhaseUnauthenticated
)

func (p Phase) String() string {
	switch p {
	case PhasePending:
		return "pending"
	case PhaseAuthenticated:
		return "authenticated"
	case PhaseUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// Authenticator is the external authentication collaborator: one network
// round-trip exchanging credentials for a token and identity.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (Credentials, error)
}

// AuthenticatorFunc adapts a function to the [Authenticator] interface.
type AuthenticatorFunc func(ctx context.Context, email, password string) (Credentials, error)

func (f AuthenticatorFunc) Login(ctx context.Context, email, password string) (Credentials, error) {
	return f(ctx, email, password)
}

// Navigator is the imperative navigation collaborator.
type Navigator interface {
	// Navigate performs an in-place route transition (guards use this).
	Navigate(route string)
	// Assign performs a reload-style navigation: any in-memory state other
	// than the persisted snapshot is discarded. Login success uses this.
	Assign(route string)
}

// NavigatorFunc adapts two functions to the [Navigator] interface.
type NavigatorFunc struct {
	NavigateFunc func(route string)
	AssignFunc   func(route string)
}

func (n NavigatorFunc) Navigate(route string) {
	if n.NavigateFunc != nil {
		n.NavigateFunc(route)
	}
}

func (n NavigatorFunc) Assign(route string) {
	if n.AssignFunc != nil {
		n.AssignFunc(route)
	}
}
