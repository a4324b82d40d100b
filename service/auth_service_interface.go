package service

import (
	"context"

	"gamevault/models"
)

// AuthServiceInterface defines the contract for the remote auth service
type AuthServiceInterface interface {
	SignUp(ctx context.Context, email, password string) error
	SignInWithPassword(ctx context.Context, email, password string) (*models.AuthSession, error)
	SignOut(ctx context.Context, accessToken string) error
}
