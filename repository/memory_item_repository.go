package repository

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"gamevault/models"
)

// MemoryItemRepository keeps items in process memory. It stands in for the
// remote collection during local development, so it assigns ids itself.
type MemoryItemRepository struct {
	mu    sync.RWMutex
	items []models.Item // newest first
	now   func() time.Time
	newID func() string
}

// NewMemoryItemRepository creates a new MemoryItemRepository holding a copy of initial
func NewMemoryItemRepository(initial []models.Item) *MemoryItemRepository {
	items := make([]models.Item, len(initial))
	copy(items, initial)
	return &MemoryItemRepository{
		items: items,
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
}

// Ensure MemoryItemRepository implements ItemRepositoryInterface
var _ ItemRepositoryInterface = (*MemoryItemRepository)(nil)

// List returns a copy of all items, newest first
func (r *MemoryItemRepository) List(ctx context.Context) ([]models.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrStoreUnavailable, err)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]models.Item, len(r.items))
	copy(items, r.items)
	return items, nil
}

// Insert stores a new item with a fresh UUID
func (r *MemoryItemRepository) Insert(ctx context.Context, fields models.ItemFields) (*models.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrStoreUnavailable, err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now().UTC()
	item := models.Item{
		ID:          r.newID(),
		Title:       fields.Title,
		Price:       fields.Price,
		Image:       fields.Image,
		Description: fields.Description,
		Category:    fields.Category,
		InStock:     fields.InStock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.items = append([]models.Item{item}, r.items...)

	log.Printf("✓ Stored item in memory: id=%s, title=%s", item.ID, item.Title)
	return &item, nil
}

// Replace overwrites every field of the item with the given id
func (r *MemoryItemRepository) Replace(ctx context.Context, id string, fields models.ItemFields) (*models.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrStoreUnavailable, err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].ID != id {
			continue
		}
		updated := models.Item{
			ID:          id,
			Title:       fields.Title,
			Price:       fields.Price,
			Image:       fields.Image,
			Description: fields.Description,
			Category:    fields.Category,
			InStock:     fields.InStock,
			CreatedAt:   r.items[i].CreatedAt,
			UpdatedAt:   r.now().UTC(),
		}
		r.items[i] = updated
		return &updated, nil
	}
	return nil, fmt.Errorf("%w: id=%s", models.ErrItemNotFound, id)
}

// Delete removes the item with the given id
func (r *MemoryItemRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", models.ErrStoreUnavailable, err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: id=%s", models.ErrItemNotFound, id)
}
