package repository

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"gamevault/models"
	"gamevault/supabase"
)

const itemsPath = "/rest/v1/items"

// restItemRow is the items table row as PostgREST serializes it
type restItemRow struct {
	ID          string    `json:"id,omitempty"`
	Title       string    `json:"title"`
	Price       float64   `json:"price"`
	Image       string    `json:"image"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	InStock     bool      `json:"in_stock"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
	UpdatedAt   time.Time `json:"updated_at,omitempty"`
}

func (row restItemRow) toItem() models.Item {
	return models.Item{
		ID:          row.ID,
		Title:       row.Title,
		Price:       row.Price,
		Image:       row.Image,
		Description: row.Description,
		Category:    row.Category,
		InStock:     row.InStock,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

// restItemWrite is the body sent on insert and update; id and created_at stay server-side
type restItemWrite struct {
	Title       string     `json:"title"`
	Price       float64    `json:"price"`
	Image       string     `json:"image"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	InStock     bool       `json:"in_stock"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

func newRestItemWrite(fields models.ItemFields) restItemWrite {
	return restItemWrite{
		Title:       fields.Title,
		Price:       fields.Price,
		Image:       fields.Image,
		Description: fields.Description,
		Category:    fields.Category,
		InStock:     fields.InStock,
	}
}

// RestItemRepository handles item operations against the hosted PostgREST API
type RestItemRepository struct {
	client *supabase.Client
	now    func() time.Time
}

// NewRestItemRepository creates a new RestItemRepository
func NewRestItemRepository(client *supabase.Client) *RestItemRepository {
	return &RestItemRepository{
		client: client,
		now:    time.Now,
	}
}

// Ensure RestItemRepository implements ItemRepositoryInterface
var _ ItemRepositoryInterface = (*RestItemRepository)(nil)

func byID(id string) string {
	return itemsPath + "?id=eq." + url.QueryEscape(id)
}

// List retrieves all items ordered by created_at DESC
func (r *RestItemRepository) List(ctx context.Context) ([]models.Item, error) {
	var rows []restItemRow
	err := r.client.Do(ctx, supabase.Request{
		Method:      http.MethodGet,
		Path:        itemsPath + "?select=*&order=created_at.desc",
		AccessToken: AccessTokenFromContext(ctx),
	}, &rows)
	if err != nil {
		log.Printf("❌ Error listing items from remote store: %v", err)
		return nil, fmt.Errorf("%w: failed to list items: %w", models.ErrStoreUnavailable, err)
	}

	items := make([]models.Item, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toItem())
	}

	log.Printf("✓ Successfully listed %d items from remote store", len(items))
	return items, nil
}

// Insert creates a new item; the remote store assigns id and timestamps
func (r *RestItemRepository) Insert(ctx context.Context, fields models.ItemFields) (*models.Item, error) {
	var rows []restItemRow
	err := r.client.Do(ctx, supabase.Request{
		Method:      http.MethodPost,
		Path:        itemsPath,
		Body:        newRestItemWrite(fields),
		AccessToken: AccessTokenFromContext(ctx),
		Headers:     map[string]string{"Prefer": "return=representation"},
	}, &rows)
	if err != nil {
		log.Printf("❌ Error inserting item into remote store: %v", err)
		return nil, fmt.Errorf("%w: failed to insert item: %w", models.ErrStoreUnavailable, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: insert returned no row", models.ErrStoreUnavailable)
	}

	item := rows[0].toItem()
	log.Printf("✓ Successfully inserted item: id=%s, title=%s", item.ID, item.Title)
	return &item, nil
}

// Replace overwrites every field of an item and bumps updated_at
func (r *RestItemRepository) Replace(ctx context.Context, id string, fields models.ItemFields) (*models.Item, error) {
	body := newRestItemWrite(fields)
	now := r.now().UTC()
	body.UpdatedAt = &now

	var rows []restItemRow
	err := r.client.Do(ctx, supabase.Request{
		Method:      http.MethodPatch,
		Path:        byID(id),
		Body:        body,
		AccessToken: AccessTokenFromContext(ctx),
		Headers:     map[string]string{"Prefer": "return=representation"},
	}, &rows)
	if err != nil {
		log.Printf("❌ Error replacing item %s in remote store: %v", id, err)
		return nil, fmt.Errorf("%w: failed to update item: %w", models.ErrStoreUnavailable, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: id=%s", models.ErrItemNotFound, id)
	}

	item := rows[0].toItem()
	log.Printf("✓ Successfully replaced item: id=%s", item.ID)
	return &item, nil
}

// Delete removes an item by id
func (r *RestItemRepository) Delete(ctx context.Context, id string) error {
	var rows []restItemRow
	err := r.client.Do(ctx, supabase.Request{
		Method:      http.MethodDelete,
		Path:        byID(id),
		AccessToken: AccessTokenFromContext(ctx),
		Headers:     map[string]string{"Prefer": "return=representation"},
	}, &rows)
	if err != nil {
		log.Printf("❌ Error deleting item %s from remote store: %v", id, err)
		return fmt.Errorf("%w: failed to delete item: %w", models.ErrStoreUnavailable, err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("%w: id=%s", models.ErrItemNotFound, id)
	}

	log.Printf("✓ Successfully deleted item: id=%s", id)
	return nil
}
