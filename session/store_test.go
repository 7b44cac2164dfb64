package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/coworkpro/clientkit/internal/audit"
	"github.com/coworkpro/clientkit/storage"
)

type recordingNavigator struct {
	mu       sync.Mutex
	assigns  []string
	navigate []string
}

func (n *recordingNavigator) Navigate(route string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.navigate = append(n.navigate, route)
}

func (n *recordingNavigator) Assign(route string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.assigns = append(n.assigns, route)
}

func (n *recordingNavigator) assigned() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.assigns...)
}

func staticAuth(creds Credentials, err error) Authenticator {
	return AuthenticatorFunc(func(context.Context, string, string) (Credentials, error) {
		return creds, err
	})
}

func validCreds() Credentials {
	return Credentials{
		Token: "tok-abc",
		User:  User{ID: "u1", Name: "Ana", Email: "ana@cowork.pro", Role: "admin"},
	}
}

func newTestStore(t *testing.T, opts Options) (*Store, *storage.Memory) {
	t.Helper()
	mem := storage.NewMemory()
	if opts.Storage == nil {
		opts.Storage = mem
	}
	s, err := NewStore(opts)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return s, mem
}

func TestNewStoreRequiresStorage(t *testing.T) {
	if _, err := NewStore(Options{}); !errors.Is(err, ErrStoreNotReady) {
		t.Fatalf("expected ErrStoreNotReady, got %v", err)
	}
}

func TestLoginSuccessSetsStatePersistsAndNavigates(t *testing.T) {
	nav := &recordingNavigator{}
	s, mem := newTestStore(t, Options{
		Authenticator: staticAuth(validCreds(), nil),
		Navigator:     nav,
	})

	if err := s.Login(context.Background(), "ana@cowork.pro", "secret"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	st := s.State()
	if st.User == nil || st.User.ID != "u1" {
		t.Fatalf("expected user set, got %+v", st.User)
	}
	if st.Token != "tok-abc" || !st.IsAuthenticated || st.IsLoading || st.Error != "" {
		t.Fatalf("unexpected state %+v", st)
	}

	data, found, err := mem.Load(context.Background())
	if err != nil || !found {
		t.Fatalf("expected persisted snapshot, found=%v err=%v", found, err)
	}
	snap, err := DecodeSnapshot(data)
	if err != nil {
		t.Fatalf("DecodeSnapshot: %v", err)
	}
	if !snap.IsAuthenticated || snap.Token != "tok-abc" || snap.User == nil || snap.User.ID != "u1" {
		t.Fatalf("unexpected snapshot %+v", snap)
	}

	if got := nav.assigned(); len(got) != 1 || got[0] != "/dashboard" {
		t.Fatalf("expected exactly one landing navigation, got %v", got)
	}
}

func TestLoginFailureClearsStateAndKeepsServerMessage(t *testing.T) {
	nav := &recordingNavigator{}
	s, _ := newTestStore(t, Options{
		Authenticator: staticAuth(Credentials{}, serverError{msg: "Invalid credentials"}),
		Navigator:     nav,
	})

	err := s.Login(context.Background(), "ana@cowork.pro", "wrong")
	if !errors.Is(err, ErrAuthenticationFailed) {
		t.Fatalf("expected ErrAuthenticationFailed, got %v", err)
	}

	st := s.State()
	if st.User != nil || st.Token != "" || st.IsAuthenticated || st.IsLoading {
		t.Fatalf("expected cleared state, got %+v", st)
	}
	if st.Error != "Invalid credentials" {
		t.Fatalf("expected server message on state, got %q", st.Error)
	}
	if got := nav.assigned(); len(got) != 0 {
		t.Fatalf("failure must not navigate, got %v", got)
	}
}

type serverError struct{ msg string }

func (e serverError) Error() string         { return "status 401: " + e.msg }
func (e serverError) ServerMessage() string { return e.msg }

func TestLoginEmptyCredentialsSkipsAuthenticator(t *testing.T) {
	called := false
	s, _ := newTestStore(t, Options{
		Authenticator: AuthenticatorFunc(func(context.Context, string, string) (Credentials, error) {
			called = true
			return Credentials{}, nil
		}),
	})

	err := s.Login(context.Background(), "", "")
	if !errors.Is(err, ErrMissingCredentials) {
		t.Fatalf("expected ErrMissingCredentials, got %v", err)
	}
	if called {
		t.Fatal("authenticator must not be called with empty credentials")
	}
	if st := s.State(); st.Error == "" {
		t.Fatal("expected error message on state")
	}
}

func TestLoginEmptyCredentialsAfterSessionPersistsClearedSnapshot(t *testing.T) {
	s, mem := newTestStore(t, Options{
		Authenticator: staticAuth(validCreds(), nil),
	})
	if err := s.Login(context.Background(), "ana@cowork.pro", "secret"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	// The rejected attempt clears the in-memory session; the snapshot must
	// follow, or a reload would silently restore the previous login and
	// requests would keep sending its token.
	err := s.Login(context.Background(), "ana@cowork.pro", "")
	if !errors.Is(err, ErrMissingCredentials) {
		t.Fatalf("expected ErrMissingCredentials, got %v", err)
	}
	if st := s.State(); st.IsAuthenticated || st.Token != "" {
		t.Fatalf("expected cleared state, got %+v", st)
	}

	data, found, loadErr := mem.Load(context.Background())
	if loadErr != nil || !found {
		t.Fatalf("expected persisted snapshot, found=%v err=%v", found, loadErr)
	}
	snap, decErr := DecodeSnapshot(data)
	if decErr != nil {
		t.Fatalf("DecodeSnapshot: %v", decErr)
	}
	if snap.IsAuthenticated || snap.Token != "" || snap.User != nil {
		t.Fatalf("expected cleared snapshot, got %+v", snap)
	}
}

func TestLoginThenLogoutLeavesCleanPersistedState(t *testing.T) {
	s, mem := newTestStore(t, Options{
		Authenticator: staticAuth(validCreds(), nil),
	})

	if err := s.Login(context.Background(), "ana@cowork.pro", "secret"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	s.Logout()

	st := s.State()
	if st.User != nil || st.Token != "" || st.IsAuthenticated || st.Error != "" {
		t.Fatalf("expected cleared state, got %+v", st)
	}

	data, found, err := mem.Load(context.Background())
	if err != nil || !found {
		t.Fatalf("expected persisted snapshot, found=%v err=%v", found, err)
	}
	snap, err := DecodeSnapshot(data)
	if err != nil {
		t.Fatalf("DecodeSnapshot: %v", err)
	}
	if snap.IsAuthenticated || snap.Token != "" || snap.User != nil {
		t.Fatalf("expected cleared snapshot, got %+v", snap)
	}
}

func TestHydrateRestoresPersistedSubsetOnly(t *testing.T) {
	mem := storage.NewMemory()
	data, err := EncodeSnapshot(Snapshot{
		User:            &User{ID: "u1", Name: "Ana", Email: "ana@cowork.pro", Role: "admin"},
		Token:           "tok-abc",
		IsAuthenticated: true,
	})
	if err != nil {
		t.Fatalf("EncodeSnapshot: %v", err)
	}
	if err := mem.Save(context.Background(), data); err != nil {
		t.Fatalf("Save: %v", err)
	}

	s, _ := newTestStore(t, Options{Storage: mem})
	s.Hydrate(context.Background())

	st := s.State()
	if st.User == nil || st.User.ID != "u1" || st.Token != "tok-abc" || !st.IsAuthenticated {
		t.Fatalf("expected restored session, got %+v", st)
	}
	if !st.IsHydrated {
		t.Fatal("expected IsHydrated after hydration")
	}
	if st.IsLoading || st.Error != "" {
		t.Fatalf("transient fields must reset, got %+v", st)
	}
}

func TestHydrateWithoutSnapshotEndsLoggedOut(t *testing.T) {
	s, _ := newTestStore(t, Options{})
	s.Hydrate(context.Background())

	st := s.State()
	if !st.IsHydrated {
		t.Fatal("expected IsHydrated after hydration")
	}
	if st.IsAuthenticated || st.User != nil || st.Token != "" {
		t.Fatalf("expected logged out state, got %+v", st)
	}
}

func TestHydrateCorruptSnapshotEndsLoggedOut(t *testing.T) {
	mem := storage.NewMemory()
	if err := mem.Save(context.Background(), []byte("{not json")); err != nil {
		t.Fatalf("Save: %v", err)
	}

	s, _ := newTestStore(t, Options{Storage: mem})
	s.Hydrate(context.Background())

	st := s.State()
	if !st.IsHydrated || st.IsAuthenticated {
		t.Fatalf("corrupt snapshot must settle logged out, got %+v", st)
	}
}

func TestHydrateLoggedOutSnapshotStaysLoggedOut(t *testing.T) {
	mem := storage.NewMemory()
	data, err := EncodeSnapshot(Snapshot{IsAuthenticated: false})
	if err != nil {
		t.Fatalf("EncodeSnapshot: %v", err)
	}
	if err := mem.Save(context.Background(), data); err != nil {
		t.Fatalf("Save: %v", err)
	}

	s, _ := newTestStore(t, Options{Storage: mem})
	s.Hydrate(context.Background())

	if st := s.State(); st.IsAuthenticated || !st.IsHydrated {
		t.Fatalf("unexpected state %+v", st)
	}
}

func TestHydrateRunsOnce(t *testing.T) {
	mem := storage.NewMemory()
	s, _ := newTestStore(t, Options{Storage: mem})
	s.Hydrate(context.Background())

	// A snapshot arriving after the first hydration must not be picked up.
	data, _ := EncodeSnapshot(Snapshot{
		User:            &User{ID: "u9"},
		Token:           "tok-late",
		IsAuthenticated: true,
	})
	if err := mem.Save(context.Background(), data); err != nil {
		t.Fatalf("Save: %v", err)
	}
	s.Hydrate(context.Background())

	if st := s.State(); st.IsAuthenticated {
		t.Fatalf("second Hydrate must be a no-op, got %+v", st)
	}
}

func TestSetHydratedIdempotent(t *testing.T) {
	s, _ := newTestStore(t, Options{})
	s.SetHydrated()
	first := s.State()
	s.SetHydrated()
	second := s.State()

	if !first.IsHydrated || first != second {
		t.Fatalf("SetHydrated must be idempotent: %+v vs %+v", first, second)
	}
}

func TestSubscribeNotifiesAndCancelStops(t *testing.T) {
	s, _ := newTestStore(t, Options{
		Authenticator: staticAuth(validCreds(), nil),
	})

	var mu sync.Mutex
	var seen []State
	cancel := s.Subscribe(func(st State) {
		mu.Lock()
		seen = append(seen, st)
		mu.Unlock()
	})

	s.SetLoading(true)
	mu.Lock()
	n := len(seen)
	mu.Unlock()
	if n != 1 {
		t.Fatalf("expected 1 notification, got %d", n)
	}

	cancel()
	s.ClearError()
	mu.Lock()
	defer mu.Unlock()
	if len(seen) != n {
		t.Fatal("cancelled subscriber must not be notified")
	}
}

func TestClearErrorOnlyResetsError(t *testing.T) {
	s, _ := newTestStore(t, Options{
		Authenticator: staticAuth(Credentials{}, fmt.Errorf("boom")),
	})
	_ = s.Login(context.Background(), "a@b.c", "x")
	if st := s.State(); st.Error == "" {
		t.Fatal("expected error set after failed login")
	}

	s.ClearError()
	if st := s.State(); st.Error != "" {
		t.Fatalf("expected error cleared, got %q", st.Error)
	}
}

func TestLoginFailureEmitsAuditEvent(t *testing.T) {
	var mu sync.Mutex
	var events []audit.Event
	s, _ := newTestStore(t, Options{
		Authenticator: staticAuth(Credentials{}, fmt.Errorf("boom")),
		Emit: func(_ context.Context, ev audit.Event) {
			mu.Lock()
			events = append(events, ev)
			mu.Unlock()
		},
	})

	_ = s.Login(context.Background(), "ana@cowork.pro", "wrong")

	mu.Lock()
	defer mu.Unlock()
	if len(events) != 1 {
		t.Fatalf("expected 1 audit event, got %d", len(events))
	}
	if events[0].EventType != EventLoginFailure || events[0].Success {
		t.Fatalf("unexpected event %+v", events[0])
	}
}
