package flows

import "context"

// LogoutDeps captures the logout flow's dependencies.
type LogoutDeps struct {
	Apply   func()                          // unconditional clear transition
	Persist func(ctx context.Context) error // snapshot write of the cleared state

	MetricInc func(int)
	Metric    int
	EmitAudit func(ctx context.Context, event string, success bool, userID, email string, err error, meta func() map[string]string)
	Event     string
	Warn      func(format string, args ...any)
}

// RunLogout executes the logout transition. It is synchronous and
// unconditional: the in-memory state is cleared and the cleared snapshot is
// written, with no network call involved. Server-side invalidation is a
// caller concern, not part of this state machine.
func RunLogout(ctx context.Context, userID string, deps LogoutDeps) {
	if deps.MetricInc == nil {
		deps.MetricInc = func(int) {}
	}
	if deps.EmitAudit == nil {
		deps.EmitAudit = func(context.Context, string, bool, string, string, error, func() map[string]string) {}
	}
	if deps.Warn == nil {
		deps.Warn = func(string, ...any) {}
	}
	if deps.Apply == nil {
		return
	}

	deps.Apply()
	if deps.Persist != nil {
		if perr := deps.Persist(ctx); perr != nil {
			deps.Warn("clientkit: snapshot write after logout failed: %v", perr)
		}
	}
	deps.MetricInc(deps.Metric)
	deps.EmitAudit(ctx, deps.Event, true, userID, "", nil, nil)
}
