package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"gamevault/models"
	"gamevault/supabase"
)

// AuthService talks to the hosted GoTrue auth API
// Implements AuthServiceInterface
type AuthService struct {
	client *supabase.Client
	now    func() time.Time
}

// NewAuthService creates a new AuthService
func NewAuthService(client *supabase.Client) *AuthService {
	return &AuthService{
		client: client,
		now:    time.Now,
	}
}

// Ensure AuthService implements AuthServiceInterface
var _ AuthServiceInterface = (*AuthService)(nil)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignUp registers email at the auth service. An existing account yields ErrAlreadyRegistered.
func (s *AuthService) SignUp(ctx context.Context, email, password string) error {
	err := s.client.Do(ctx, supabase.Request{
		Method: http.MethodPost,
		Path:   "/auth/v1/signup",
		Body:   credentials{Email: email, Password: password},
	}, nil)
	if err == nil {
		return nil
	}

	var apiErr *supabase.APIError
	if errors.As(err, &apiErr) {
		if strings.Contains(strings.ToLower(apiErr.Message), "already registered") {
			return models.ErrAlreadyRegistered
		}
		return fmt.Errorf("%w: %w", models.ErrAuthRejected, err)
	}
	return fmt.Errorf("sign up failed: %w", err)
}

// SignInWithPassword exchanges the credentials for a session
func (s *AuthService) SignInWithPassword(ctx context.Context, email, password string) (*models.AuthSession, error) {
	var session models.AuthSession
	err := s.client.Do(ctx, supabase.Request{
		Method: http.MethodPost,
		Path:   "/auth/v1/token?grant_type=password",
		Body:   credentials{Email: email, Password: password},
	}, &session)
	if err != nil {
		var apiErr *supabase.APIError
		if errors.As(err, &apiErr) {
			return nil, fmt.Errorf("%w: %w", models.ErrAuthRejected, err)
		}
		return nil, fmt.Errorf("sign in failed: %w", err)
	}

	if session.AccessToken == "" {
		return nil, fmt.Errorf("%w: no session returned", models.ErrAuthRejected)
	}
	if session.ExpiresIn > 0 {
		session.ExpiresAt = s.now().Add(time.Duration(session.ExpiresIn) * time.Second)
	}
	return &session, nil
}

// SignOut revokes the session identified by accessToken
func (s *AuthService) SignOut(ctx context.Context, accessToken string) error {
	err := s.client.Do(ctx, supabase.Request{
		Method:      http.MethodPost,
		Path:        "/auth/v1/logout",
		AccessToken: accessToken,
	}, nil)
	if err != nil {
		return fmt.Errorf("sign out failed: %w", err)
	}
	return nil
}
