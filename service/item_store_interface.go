package service

import (
	"context"

	"gamevault/models"
)

// ItemStoreInterface defines the contract for the item store client used by the presentation layer
type ItemStoreInterface interface {
	// List fetches the remote collection once; on failure it falls back to the seed list with an advisory
	List(ctx context.Context) models.ItemListResult
	// Current returns the in-memory list and the advisory from the last List, loading it first if needed
	Current(ctx context.Context) models.ItemListResult
	Get(ctx context.Context, id string) (models.Item, bool)
	Create(ctx context.Context, fields models.ItemFields) (models.Item, error)
	Replace(ctx context.Context, id string, fields models.ItemFields) (models.Item, error)
	Remove(ctx context.Context, id string) error
}
