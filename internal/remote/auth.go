package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Auth failures the UI distinguishes between. Anything else is reported
// with a generic message.
var (
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrDuplicateRegistration = errors.New("an account with this email already exists")
)

// Session is an authenticated user session.
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         User   `json:"user"`
}

// User identifies a signed-in user.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// AuthClient talks to the remote identity service.
type AuthClient struct {
	client *Client
}

// NewAuthClient creates an auth client backed by the given client.
func NewAuthClient(client *Client) *AuthClient {
	return &AuthClient{client: client}
}

// SignIn exchanges credentials for a session. Rejected credentials map to
// ErrInvalidCredentials.
func (a *AuthClient) SignIn(ctx context.Context, email, password string) (*Session, error) {
	query := url.Values{}
	query.Set("grant_type", "password")

	payload := map[string]string{
		"email":    strings.ToLower(strings.TrimSpace(email)),
		"password": strings.TrimSpace(password),
	}

	body, err := a.client.do(ctx, http.MethodPost, "/auth/v1/token", query, payload, "")
	if err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) && (statusErr.StatusCode == http.StatusBadRequest || statusErr.StatusCode == http.StatusUnauthorized) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("signing in: %w", err)
	}

	return decodeSession(body)
}

// SignUp registers a new account. A duplicate email maps to
// ErrDuplicateRegistration.
func (a *AuthClient) SignUp(ctx context.Context, email, password, username, fullName string) (*Session, error) {
	payload := map[string]any{
		"email":    strings.ToLower(strings.TrimSpace(email)),
		"password": strings.TrimSpace(password),
		"data": map[string]string{
			"username":  strings.ToLower(strings.TrimSpace(username)),
			"full_name": strings.TrimSpace(fullName),
		},
	}

	body, err := a.client.do(ctx, http.MethodPost, "/auth/v1/signup", nil, payload, "")
	if err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) {
			if statusErr.StatusCode == http.StatusUnprocessableEntity ||
				statusErr.StatusCode == http.StatusConflict ||
				strings.Contains(statusErr.Body, "already registered") {
				return nil, ErrDuplicateRegistration
			}
		}
		return nil, fmt.Errorf("signing up: %w", err)
	}

	return decodeSession(body)
}

// SignOut revokes the session behind the given access token.
func (a *AuthClient) SignOut(ctx context.Context, accessToken string) error {
	if _, err := a.client.do(ctx, http.MethodPost, "/auth/v1/logout", nil, nil, accessToken); err != nil {
		return fmt.Errorf("signing out: %w", err)
	}
	return nil
}

func decodeSession(body []byte) (*Session, error) {
	var session Session
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("decoding session: %w", err)
	}
	return &session, nil
}
