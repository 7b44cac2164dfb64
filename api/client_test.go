package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type staticTokens struct {
	token string
	ok    bool
}

func (s staticTokens) Token(context.Context) (string, bool) { return s.token, s.ok }

func newTestClient(t *testing.T, handler http.Handler, tokens TokenSource) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := New(Options{BaseURL: srv.URL, Tokens: tokens})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return client, srv
}

func TestNewRequiresBaseURL(t *testing.T) {
	if _, err := New(Options{}); !errors.Is(err, ErrBaseURLRequired) {
		t.Fatalf("expected ErrBaseURLRequired, got %v", err)
	}
}

func TestDoAttachesBearerToken(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true}`))
	}), staticTokens{token: "tok-123", ok: true})

	var out struct {
		OK bool `json:"ok"`
	}
	if err := client.Get(context.Background(), "/ping", &out); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
	if !out.OK {
		t.Fatal("expected decoded response")
	}
}

func TestDoWithoutTokenSendsNoAuthorizationHeader(t *testing.T) {
	var sawAuth bool
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawAuth = r.Header["Authorization"]
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}), staticTokens{ok: false})

	if err := client.Get(context.Background(), "/ping", nil); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if sawAuth {
		t.Fatal("request must not carry an Authorization header when no token exists")
	}
}

func TestDoSetsRequestID(t *testing.T) {
	var gotID string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = r.Header.Get("X-Request-ID")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}), nil)

	ctx := WithRequestID(context.Background(), "req-42")
	if err := client.Get(ctx, "/ping", nil); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if gotID != "req-42" {
		t.Fatalf("expected request id from context, got %q", gotID)
	}

	if err := client.Get(context.Background(), "/ping", nil); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if gotID == "" || gotID == "req-42" {
		t.Fatalf("expected generated request id, got %q", gotID)
	}
}

func TestDoClassifiesUnauthorized(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"success":false,"message":"Invalid credentials"}`))
	}), nil)

	err := client.Get(context.Background(), "/me", nil)
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if apiErr.Status != http.StatusUnauthorized || apiErr.Message != "Invalid credentials" {
		t.Fatalf("unexpected error detail: %+v", apiErr)
	}
}

func TestDoClassifiesValidationErrors(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"validation failed","errors":["name is required","email is invalid"]}`))
	}), nil)

	err := client.Post(context.Background(), "/leads", map[string]string{}, nil)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if len(apiErr.Errors) != 2 {
		t.Fatalf("expected 2 field errors, got %v", apiErr.Errors)
	}
}

func TestDoClassifiesTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client, err := New(Options{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := client.Get(context.Background(), "/ping", nil); !errors.Is(err, ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
}

func TestDoTextualErrorBody(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	}), nil)

	err := client.Get(context.Background(), "/ping", nil)
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if apiErr.Message != "upstream exploded" {
		t.Fatalf("expected textual body as message, got %q", apiErr.Message)
	}
	if !errors.Is(err, ErrUnknown) {
		t.Fatalf("expected ErrUnknown, got %v", err)
	}
}

func TestDoMalformedErrorBodyBecomesParseError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message": broken`))
	}), nil)

	err := client.Get(context.Background(), "/ping", nil)
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if apiErr.Status != http.StatusInternalServerError || apiErr.Message != parseFailedMessage {
		t.Fatalf("unexpected parse error detail: %+v", apiErr)
	}
}

func TestDoMalformedSuccessBodyBecomesParseError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`not json`))
	}), nil)

	var out map[string]any
	err := client.Get(context.Background(), "/ping", &out)
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if apiErr.Status != http.StatusOK || apiErr.Message != parseFailedMessage {
		t.Fatalf("unexpected parse error detail: %+v", apiErr)
	}
}

func TestDownloadReturnsRawBody(t *testing.T) {
	payload := []byte("%PDF-1.7 fake")
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Write(payload)
	}), nil)

	data, contentType, err := client.Download(context.Background(), http.MethodPost, "/proposals/1/pdf", nil)
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if contentType != "application/pdf" {
		t.Fatalf("unexpected content type %q", contentType)
	}
	if string(data) != string(payload) {
		t.Fatalf("unexpected body %q", data)
	}
}

func TestMetricsIncrement(t *testing.T) {
	counts := make(map[int]int)
	tokens := staticTokens{ok: false}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/fail" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client, err := New(Options{
		BaseURL:   srv.URL,
		Tokens:    tokens,
		MetricInc: func(id int) { counts[id]++ },
		Metrics:   RequestMetrics{Success: 1, Failure: 2, Unauthenticated: 3},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := client.Get(context.Background(), "/ok", nil); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if err := client.Get(context.Background(), "/fail", nil); err == nil {
		t.Fatal("expected failure")
	}

	if counts[1] != 1 || counts[2] != 1 || counts[3] != 2 {
		t.Fatalf("unexpected metric counts: %v", counts)
	}
}
