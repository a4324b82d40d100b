package repository

import (
	"context"

	"gamevault/models"
)

// ItemRepositoryInterface defines the contract for the remote item collection.
// Implementations assign identifiers and timestamps; callers never do.
type ItemRepositoryInterface interface {
	// List returns all items ordered by creation time, newest first
	List(ctx context.Context) ([]models.Item, error)
	// Insert stores a new item and returns it with its assigned id
	Insert(ctx context.Context, fields models.ItemFields) (*models.Item, error)
	// Replace overwrites every field of the item with the given id
	Replace(ctx context.Context, id string, fields models.ItemFields) (*models.Item, error)
	// Delete removes the item with the given id
	Delete(ctx context.Context, id string) error
}

type accessTokenKey struct{}

// WithAccessToken returns a context carrying the bearer token of an authenticated session.
// Remote stores that enforce row level security send it instead of the anon key.
func WithAccessToken(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}
	return context.WithValue(ctx, accessTokenKey{}, token)
}

// AccessTokenFromContext returns the bearer token stored by WithAccessToken, if any
func AccessTokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(accessTokenKey{}).(string)
	return token
}
