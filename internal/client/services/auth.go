// Package services contains the stateless application services of the grain
// client. They wrap the account and photo APIs, translate wire payloads into
// models and never keep state between calls. Errors are always returned to
// the caller; the session store and feed pager decide what to do with them.
package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/dmitrijs2005/grain/internal/client/api"
	"github.com/dmitrijs2005/grain/internal/client/models"
)

// LoginFailedMessage is shown on the entry screen for any failed login.
const LoginFailedMessage = "Login failed. Please check your credentials."

// ErrNoAccessToken means the login endpoint answered 2xx without a token.
var ErrNoAccessToken = errors.New("no access token received")

// AuthError is returned by Login for bad credentials, transport failures or
// a malformed response. Message is meant for the user as is.
type AuthError struct {
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// Requester is the part of *api.Binding the services need.
type Requester interface {
	Get(ctx context.Context, path string, query url.Values, out any, opts ...api.RequestOption) error
	Post(ctx context.Context, path string, body, out any, opts ...api.RequestOption) error
}

// AuthService wraps the account API.
//
// Contract:
//   - Login: exchange credentials for a session (profile plus accessToken).
//   - FetchProfile: load the profile that belongs to token. The returned
//     session carries token as its AccessToken.
type AuthService interface {
	Login(ctx context.Context, creds models.Credentials) (*models.Session, error)
	FetchProfile(ctx context.Context, token string) (*models.Session, error)
}

type authService struct {
	account Requester
}

// NewAuthService constructs an AuthService sending requests through account.
func NewAuthService(account Requester) AuthService {
	return &authService{account: account}
}

func (a *authService) Login(ctx context.Context, creds models.Credentials) (*models.Session, error) {
	var s models.Session
	if err := a.account.Post(ctx, "/auth/login", creds, &s); err != nil {
		return nil, &AuthError{Message: LoginFailedMessage, Err: err}
	}
	if s.AccessToken == "" {
		return nil, &AuthError{Message: LoginFailedMessage, Err: ErrNoAccessToken}
	}
	return &s, nil
}

func (a *authService) FetchProfile(ctx context.Context, token string) (*models.Session, error) {
	var s models.Session
	if err := a.account.Get(ctx, "/auth/users/me", nil, &s, api.WithBearer(token)); err != nil {
		return nil, fmt.Errorf("fetch profile: %w", err)
	}
	s.AccessToken = token
	return &s, nil
}
