package flows

import "context"

// HydrateDeps captures the hydration flow's dependencies.
type HydrateDeps struct {
	Load   func(ctx context.Context) (data []byte, found bool, err error)
	Decode func(data []byte) (creds Credentials, authenticated bool, err error)

	ApplyRestored func(creds Credentials) // authenticated snapshot restored
	ApplyAbsent   func()                  // no snapshot, or snapshot unusable
	MarkHydrated  func()                  // isHydrated=true, isLoading=false

	MetricInc func(int)
	Metric    int
	EmitAudit func(ctx context.Context, event string, success bool, userID, email string, err error, meta func() map[string]string)
	Event     string
	Warn      func(format string, args ...any)
}

// RunHydrate restores the persisted snapshot exactly once at process start.
//
// Any outcome marks the store hydrated: a missing entry, a storage failure,
// and a corrupt or invariant-violating snapshot all restore the logged-out
// state. An authenticated snapshot is honored only when it carries both a
// token and a user identity.
func RunHydrate(ctx context.Context, deps HydrateDeps) {
	if deps.MetricInc == nil {
		deps.MetricInc = func(int) {}
	}
	if deps.EmitAudit == nil {
		deps.EmitAudit = func(context.Context, string, bool, string, string, error, func() map[string]string) {}
	}
	if deps.Warn == nil {
		deps.Warn = func(string, ...any) {}
	}
	if deps.MarkHydrated == nil || deps.ApplyAbsent == nil {
		return
	}
	defer func() {
		deps.MarkHydrated()
		deps.MetricInc(deps.Metric)
	}()

	if deps.Load == nil || deps.Decode == nil || deps.ApplyRestored == nil {
		deps.ApplyAbsent()
		return
	}

	data, found, err := deps.Load(ctx)
	if err != nil {
		deps.Warn("clientkit: snapshot read failed: %v", err)
		deps.ApplyAbsent()
		deps.EmitAudit(ctx, deps.Event, false, "", "", err, func() map[string]string {
			return map[string]string{"reason": "storage_unavailable"}
		})
		return
	}
	if !found {
		deps.ApplyAbsent()
		deps.EmitAudit(ctx, deps.Event, true, "", "", nil, func() map[string]string {
			return map[string]string{"reason": "no_snapshot"}
		})
		return
	}

	creds, authenticated, err := deps.Decode(data)
	if err != nil {
		deps.Warn("clientkit: snapshot decode failed: %v", err)
		deps.ApplyAbsent()
		deps.EmitAudit(ctx, deps.Event, false, "", "", err, func() map[string]string {
			return map[string]string{"reason": "snapshot_corrupt"}
		})
		return
	}

	// isAuthenticated implies user and token are both present. A snapshot
	// breaking that invariant restores as logged out.
	if !authenticated || creds.Token == "" || creds.User.ID == "" {
		deps.ApplyAbsent()
		deps.EmitAudit(ctx, deps.Event, true, "", "", nil, func() map[string]string {
			return map[string]string{"reason": "logged_out_snapshot"}
		})
		return
	}

	deps.ApplyRestored(creds)
	deps.EmitAudit(ctx, deps.Event, true, creds.User.ID, creds.User.Email, nil, nil)
}
