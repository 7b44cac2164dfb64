package crm

import (
	"context"
	"net/http"

	"github.com/coworkpro/clientkit/api"
)

// AuthService talks to the /auth endpoints.
type AuthService struct {
	client *api.Client
}

// NewAuthService wires the service to its transport.
func NewAuthService(client *api.Client) *AuthService {
	return &AuthService{client: client}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a token and the account behind it.
func (s *AuthService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	return unwrap[LoginResult](ctx, s.client, http.MethodPost, "/auth/login", loginRequest{
		Email:    email,
		Password: password,
	})
}

// Logout tells the backend to revoke the current token. Callers treat this
// as best-effort: local state is cleared regardless of the outcome.
func (s *AuthService) Logout(ctx context.Context) error {
	_, err := unwrap[struct{}](ctx, s.client, http.MethodPost, "/auth/logout", nil)
	return err
}

// Refresh trades the current token for a fresh one.
func (s *AuthService) Refresh(ctx context.Context) (LoginResult, error) {
	return unwrap[LoginResult](ctx, s.client, http.MethodPost, "/auth/refresh", nil)
}

// Me returns the account the current token belongs to.
func (s *AuthService) Me(ctx context.Context) (User, error) {
	return unwrap[User](ctx, s.client, http.MethodGet, "/auth/me", nil)
}
