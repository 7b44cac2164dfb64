package flows

import (
	"context"
	"fmt"
)

// UserRecord is the flow-local identity model carried through login and
// hydration.
type UserRecord struct {
	ID    string
	Name  string
	Email string
	Role  string
}

// Credentials is the flow-local result of a successful authentication call:
// an opaque bearer token plus the identity it belongs to.
type Credentials struct {
	Token string
	User  UserRecord
}

// LoginMetrics carries metric IDs needed by the login flow.
type LoginMetrics struct {
	LoginSuccess int
	LoginFailure int
}

// LoginEvents carries audit event names used by the login flow.
type LoginEvents struct {
	LoginSuccess string
	LoginFailure string
}

// LoginErrors carries host-level sentinel errors used by the login flow.
type LoginErrors struct {
	StoreNotReady        error
	MissingCredentials   error
	AuthenticationFailed error
}

// LoginDeps captures the login flow's dependencies.
type LoginDeps struct {
	// Authenticate performs the single network call to the authentication
	// collaborator. It is the only suspension point of the flow.
	Authenticate func(ctx context.Context, email, password string) (Credentials, error)

	Begin        func()                  // isLoading=true, error cleared
	ApplySuccess func(creds Credentials) // atomic success transition
	ApplyFailure func(message string)    // atomic failure transition

	Persist  func(ctx context.Context) error // snapshot write after each transition
	Navigate func(route string)              // reload-style navigation on success
	Landing  string

	// Normalize turns any failure into the human-readable message stored in
	// the session error field.
	Normalize func(err error) string

	MetricInc func(int)
	EmitAudit func(ctx context.Context, event string, success bool, userID, email string, err error, meta func() map[string]string)
	Warn      func(format string, args ...any)

	Metrics LoginMetrics
	Events  LoginEvents
	Errors  LoginErrors
}

// RunLogin executes the login state machine: transient loading state, one
// authentication call, then an atomic success or failure transition followed
// by snapshot persistence. The success state write happens before the landing
// navigation fires. Concurrent RunLogin calls are not deduplicated — the last
// completion wins on shared state.
func RunLogin(ctx context.Context, email, password string, deps LoginDeps) error {
	if deps.MetricInc == nil {
		deps.MetricInc = func(int) {}
	}
	if deps.EmitAudit == nil {
		deps.EmitAudit = func(context.Context, string, bool, string, string, error, func() map[string]string) {}
	}
	if deps.Warn == nil {
		deps.Warn = func(string, ...any) {}
	}
	if deps.Normalize == nil {
		deps.Normalize = func(err error) string { return err.Error() }
	}
	if deps.Authenticate == nil ||
		deps.Begin == nil ||
		deps.ApplySuccess == nil ||
		deps.ApplyFailure == nil {
		return deps.Errors.StoreNotReady
	}

	if email == "" || password == "" {
		deps.MetricInc(deps.Metrics.LoginFailure)
		message := deps.Normalize(deps.Errors.MissingCredentials)
		deps.ApplyFailure(message)
		if deps.Persist != nil {
			if perr := deps.Persist(ctx); perr != nil {
				deps.Warn("clientkit: snapshot write after failed login failed: %v", perr)
			}
		}
		deps.EmitAudit(ctx, deps.Events.LoginFailure, false, "", email, deps.Errors.MissingCredentials, func() map[string]string {
			return map[string]string{
				"reason": "missing_credentials",
			}
		})
		return deps.Errors.MissingCredentials
	}

	deps.Begin()

	creds, err := deps.Authenticate(ctx, email, password)
	if err != nil {
		message := deps.Normalize(err)
		deps.ApplyFailure(message)
		if deps.Persist != nil {
			if perr := deps.Persist(ctx); perr != nil {
				deps.Warn("clientkit: snapshot write after failed login failed: %v", perr)
			}
		}
		deps.MetricInc(deps.Metrics.LoginFailure)
		deps.EmitAudit(ctx, deps.Events.LoginFailure, false, "", email, err, nil)
		return fmt.Errorf("%w: %s", deps.Errors.AuthenticationFailed, message)
	}

	deps.ApplySuccess(creds)
	if deps.Persist != nil {
		if perr := deps.Persist(ctx); perr != nil {
			deps.Warn("clientkit: snapshot write after login failed: %v", perr)
		}
	}
	deps.MetricInc(deps.Metrics.LoginSuccess)
	deps.EmitAudit(ctx, deps.Events.LoginSuccess, true, creds.User.ID, email, nil, nil)

	if deps.Navigate != nil && deps.Landing != "" {
		deps.Navigate(deps.Landing)
	}
	return nil
}
