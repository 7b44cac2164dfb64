package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/coworkpro/clientkit/internal/audit"
	"github.com/coworkpro/clientkit/internal/flows"
	"github.com/coworkpro/clientkit/storage"
)

// normalizeMessage turns a login failure into the human-readable message
// stored on the session state. Typed API errors contribute their
// server-supplied message; anything else falls back to Error().
func normalizeMessage(err error) string {
	if err == nil {
		return ""
	}
	var sm interface{ ServerMessage() string }
	if errors.As(err, &sm) {
		if msg := sm.ServerMessage(); msg != "" {
			return msg
		}
	}
	return err.Error()
}

// Audit event names emitted by the store.
const (
	EventLoginSuccess = "login_success"
	EventLoginFailure = "login_failure"
	EventLogout       = "logout"
	EventHydration    = "hydration"
)

// Metrics carries the metric counter IDs the store increments. IDs are
// assigned by the host (the root package); a zero value disables nothing —
// wire MetricInc to nil to disable.
type Metrics struct {
	LoginSuccess int
	LoginFailure int
	Logout       int
	Hydration    int
}

// Options configures a [Store]. Storage is required; everything else is
// optional and degrades to a no-op.
type Options struct {
	Storage       storage.Store
	Authenticator Authenticator
	Navigator     Navigator

	// Landing is the fixed route Login navigates to on success.
	// Defaults to "/dashboard".
	Landing string

	Emit      func(ctx context.Context, event audit.Event)
	MetricInc func(id int)
	Metrics   Metrics
	Warn      func(format string, args ...any)
}

// Store is the client-side session state container. All mutations go through
// its own operations — no other component writes the fields — and every
// observable mutation notifies subscribers with a copy of the new state.
//
// Store methods are safe for concurrent use. Two concurrent Login calls are
// not serialized against each other beyond individual transitions: each runs
// independently and the last completion wins (a documented hazard of the
// original design, preserved here).
type Store struct {
	opts Options

	mu       sync.Mutex
	state    State
	subs     map[uint64]func(State)
	nextSub  uint64
	hydrated bool // one-shot latch for Hydrate
}

// NewStore creates a session store in the not-yet-hydrated, logged-out state.
func NewStore(opts Options) (*Store, error) {
	if opts.Storage == nil {
		return nil, ErrStoreNotReady
	}
	if opts.Landing == "" {
		opts.Landing = "/dashboard"
	}
	return &Store{
		opts: opts,
		subs: make(map[uint64]func(State)),
	}, nil
}

// State returns a copy of the current session state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateCopyLocked()
}

func (s *Store) stateCopyLocked() State {
	st := s.state
	if st.User != nil {
		u := *st.User
		st.User = &u
	}
	return st
}

// Subscribe registers an observer called with a state copy after every
// observable mutation. The returned function cancels the subscription.
// Observers run on the mutating goroutine, after the store lock is released.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// mutate applies fn under the lock, then notifies subscribers outside it.
func (s *Store) mutate(fn func(st *State)) {
	s.mu.Lock()
	fn(&s.state)
	st := s.stateCopyLocked()
	observers := make([]func(State), 0, len(s.subs))
	for _, sub := range s.subs {
		observers = append(observers, sub)
	}
	s.mu.Unlock()

	for _, observer := range observers {
		observer(st)
	}
}

// Login exchanges credentials for a session. On success the state is set
// atomically, the snapshot is persisted, and a reload-style navigation to the
// landing route fires — in that order. On failure the state is cleared, the
// failure message lands in the error field, and an error matching
// [ErrAuthenticationFailed] is returned so callers can react independently.
func (s *Store) Login(ctx context.Context, email, password string) error {
	if s.opts.Authenticator == nil {
		return ErrStoreNotReady
	}

	deps := flows.LoginDeps{
		Authenticate: func(ctx context.Context, email, password string) (flows.Credentials, error) {
			creds, err := s.opts.Authenticator.Login(ctx, email, password)
			if err != nil {
				return flows.Credentials{}, err
			}
			return flows.Credentials{
				Token: creds.Token,
				User: flows.UserRecord{
					ID:    creds.User.ID,
					Name:  creds.User.Name,
					Email: creds.User.Email,
					Role:  creds.User.Role,
				},
			}, nil
		},
		Begin: func() {
			s.mutate(func(st *State) {
				st.IsLoading = true
				st.Error = ""
			})
		},
		ApplySuccess: func(creds flows.Credentials) {
			user := User{
				ID:    creds.User.ID,
				Name:  creds.User.Name,
				Email: creds.User.Email,
				Role:  creds.User.Role,
			}
			s.mutate(func(st *State) {
				st.User = &user
				st.Token = creds.Token
				st.IsAuthenticated = true
				st.IsLoading = false
				st.Error = ""
			})
		},
		ApplyFailure: func(message string) {
			s.mutate(func(st *State) {
				st.User = nil
				st.Token = ""
				st.IsAuthenticated = false
				st.IsLoading = false
				st.Error = message
			})
		},
		Persist:   s.persist,
		Navigate:  s.assign,
		Landing:   s.opts.Landing,
		Normalize: normalizeMessage,
		MetricInc: s.opts.MetricInc,
		EmitAudit: s.emitAudit,
		Warn:      s.opts.Warn,
		Metrics: flows.LoginMetrics{
			LoginSuccess: s.opts.Metrics.LoginSuccess,
			LoginFailure: s.opts.Metrics.LoginFailure,
		},
		Events: flows.LoginEvents{
			LoginSuccess: EventLoginSuccess,
			LoginFailure: EventLoginFailure,
		},
		Errors: flows.LoginErrors{
			StoreNotReady:        ErrStoreNotReady,
			MissingCredentials:   ErrMissingCredentials,
			AuthenticationFailed: ErrAuthenticationFailed,
		},
	}

	return flows.RunLogin(ctx, email, password, deps)
}

// Logout clears the session unconditionally and persists the cleared
// snapshot. It succeeds locally without any network call; best-effort
// server-side invalidation is the caller's concern.
func (s *Store) Logout() {
	userID := ""
	s.mu.Lock()
	if s.state.User != nil {
		userID = s.state.User.ID
	}
	s.mu.Unlock()

	flows.RunLogout(context.Background(), userID, flows.LogoutDeps{
		Apply: func() {
			s.mutate(func(st *State) {
				st.User = nil
				st.Token = ""
				st.IsAuthenticated = false
				st.IsLoading = false
				st.Error = ""
			})
		},
		Persist:   s.persist,
		MetricInc: s.opts.MetricInc,
		Metric:    s.opts.Metrics.Logout,
		EmitAudit: s.emitAudit,
		Event:     EventLogout,
		Warn:      s.opts.Warn,
	})
}

// ClearError resets the error field. No other field changes.
func (s *Store) ClearError() {
	s.mutate(func(st *State) {
		st.Error = ""
	})
}

// SetLoading sets the transient loading flag directly, for callers gating
// auxiliary async work on this store.
func (s *Store) SetLoading(v bool) {
	s.mutate(func(st *State) {
		st.IsLoading = v
	})
}

// SetHydrated marks hydration complete. Idempotent: further calls leave the
// observable state unchanged.
func (s *Store) SetHydrated() {
	s.mutate(func(st *State) {
		st.IsHydrated = true
		st.IsLoading = false
	})
}

// Hydrate restores the persisted snapshot. It runs at most once per store —
// later calls are no-ops — and always leaves the store hydrated, treating
// absent, unreadable, and corrupt snapshots as logged out.
func (s *Store) Hydrate(ctx context.Context) {
	s.mu.Lock()
	if s.hydrated {
		s.mu.Unlock()
		return
	}
	s.hydrated = true
	s.mu.Unlock()

	flows.RunHydrate(ctx, flows.HydrateDeps{
		Load: s.opts.Storage.Load,
		Decode: func(data []byte) (flows.Credentials, bool, error) {
			snap, err := DecodeSnapshot(data)
			if err != nil {
				return flows.Credentials{}, false, err
			}
			creds := flows.Credentials{Token: snap.Token}
			if snap.User != nil {
				creds.User = flows.UserRecord{
					ID:    snap.User.ID,
					Name:  snap.User.Name,
					Email: snap.User.Email,
					Role:  snap.User.Role,
				}
			}
			return creds, snap.IsAuthenticated, nil
		},
		ApplyRestored: func(creds flows.Credentials) {
			user := User{
				ID:    creds.User.ID,
				Name:  creds.User.Name,
				Email: creds.User.Email,
				Role:  creds.User.Role,
			}
			s.mutate(func(st *State) {
				st.User = &user
				st.Token = creds.Token
				st.IsAuthenticated = true
			})
		},
		ApplyAbsent: func() {
			s.mutate(func(st *State) {
				st.User = nil
				st.Token = ""
				st.IsAuthenticated = false
			})
		},
		MarkHydrated: s.SetHydrated,
		MetricInc:    s.opts.MetricInc,
		Metric:       s.opts.Metrics.Hydration,
		EmitAudit:    s.emitAudit,
		Event:        EventHydration,
		Warn:         s.opts.Warn,
	})
}

// persist writes the current persisted subset to durable storage.
func (s *Store) persist(ctx context.Context) error {
	s.mu.Lock()
	snap := Snapshot{
		Token:           s.state.Token,
		IsAuthenticated: s.state.IsAuthenticated,
	}
	if s.state.User != nil {
		u := *s.state.User
		snap.User = &u
	}
	s.mu.Unlock()

	data, err := EncodeSnapshot(snap)
	if err != nil {
		return err
	}
	return s.opts.Storage.Save(ctx, data)
}

func (s *Store) assign(route string) {
	if s.opts.Navigator != nil {
		s.opts.Navigator.Assign(route)
	}
}

func (s *Store) emitAudit(ctx context.Context, event string, success bool, userID, email string, err error, meta func() map[string]string) {
	if s.opts.Emit == nil || event == "" {
		return
	}
	ev := audit.Event{
		Timestamp: time.Now().UTC(),
		EventType: event,
		UserID:    userID,
		Email:     email,
		Success:   success,
	}
	if err != nil {
		ev.Error = err.Error()
	}
	if meta != nil {
		ev.Metadata = meta()
	}
	s.opts.Emit(ctx, ev)
}
