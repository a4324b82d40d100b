package service

import (
	"context"
	"fmt"
	"log"
	"sync"

	"gamevault/models"
	"gamevault/repository"
)

// FallbackAdvisory is shown when the remote item collection could not be read
const FallbackAdvisory = "Could not load items from the store. Showing the built-in catalog, which may be out of date."

// ItemStore is the item store client: it reads the remote collection, keeps
// the in-memory list the storefront renders, and forwards admin writes.
// Implements ItemStoreInterface
type ItemStore struct {
	repository repository.ItemRepositoryInterface
	seed       func() ([]models.Item, error)

	mu       sync.RWMutex
	items    []models.Item
	advisory string
	fallback bool
	loaded   bool
}

// NewItemStore creates a new ItemStore. seed supplies the fallback list.
func NewItemStore(repo repository.ItemRepositoryInterface, seed func() ([]models.Item, error)) *ItemStore {
	return &ItemStore{
		repository: repo,
		seed:       seed,
	}
}

// Ensure ItemStore implements ItemStoreInterface
var _ ItemStoreInterface = (*ItemStore)(nil)

// List fetches the remote collection (newest first) in a single attempt.
// Any failure is recovered by serving the seed list with a non-empty advisory.
func (s *ItemStore) List(ctx context.Context) models.ItemListResult {
	log.Printf("🔄 ItemStore: Loading items from remote store")

	items, err := s.repository.List(ctx)
	result := models.ItemListResult{Items: items}
	if err != nil {
		log.Printf("⚠️  ItemStore: Remote read failed, falling back to seed items: %v", err)
		result = s.fallbackResult()
	} else {
		log.Printf("✓ ItemStore: Loaded %d items from remote store", len(items))
	}

	s.mu.Lock()
	s.items = result.Items
	s.advisory = result.Advisory
	s.fallback = result.Fallback
	s.loaded = true
	s.mu.Unlock()

	return copyResult(result)
}

func (s *ItemStore) fallbackResult() models.ItemListResult {
	seed, err := s.seed()
	if err != nil {
		log.Printf("❌ ItemStore: Failed to load seed items: %v", err)
		seed = []models.Item{}
	}
	return models.ItemListResult{
		Items:    seed,
		Advisory: FallbackAdvisory,
		Fallback: true,
	}
}

// Current returns the in-memory list, loading it with List on first use
func (s *ItemStore) Current(ctx context.Context) models.ItemListResult {
	s.mu.RLock()
	loaded := s.loaded
	result := models.ItemListResult{Items: s.items, Advisory: s.advisory, Fallback: s.fallback}
	s.mu.RUnlock()

	if !loaded {
		return s.List(ctx)
	}
	return copyResult(result)
}

// Get looks an item up in the in-memory list
func (s *ItemStore) Get(ctx context.Context, id string) (models.Item, bool) {
	for _, item := range s.Current(ctx).Items {
		if item.ID == id {
			return item, true
		}
	}
	return models.Item{}, false
}

// Create inserts a new item remotely and, once confirmed, prepends it to the in-memory list
func (s *ItemStore) Create(ctx context.Context, fields models.ItemFields) (models.Item, error) {
	fields = fields.Normalize()
	if err := fields.Validate(); err != nil {
		return models.Item{}, err
	}

	created, err := s.repository.Insert(ctx, fields)
	if err != nil {
		log.Printf("❌ ItemStore: Create failed: %v", err)
		return models.Item{}, fmt.Errorf("failed to create item: %w", err)
	}

	s.mu.Lock()
	s.items = append([]models.Item{*created}, s.items...)
	s.mu.Unlock()

	log.Printf("✅ ItemStore: Created item id=%s", created.ID)
	return *created, nil
}

// Replace overwrites an item remotely and, once confirmed, swaps it in the in-memory list
func (s *ItemStore) Replace(ctx context.Context, id string, fields models.ItemFields) (models.Item, error) {
	fields = fields.Normalize()
	if err := fields.Validate(); err != nil {
		return models.Item{}, err
	}

	updated, err := s.repository.Replace(ctx, id, fields)
	if err != nil {
		log.Printf("❌ ItemStore: Replace failed for id=%s: %v", id, err)
		return models.Item{}, fmt.Errorf("failed to update item: %w", err)
	}

	s.mu.Lock()
	next := make([]models.Item, len(s.items))
	for i, item := range s.items {
		if item.ID == id {
			item = *updated
		}
		next[i] = item
	}
	s.items = next
	s.mu.Unlock()

	log.Printf("✅ ItemStore: Replaced item id=%s", id)
	return *updated, nil
}

// Remove deletes an item remotely and, once confirmed, drops it from the in-memory list
func (s *ItemStore) Remove(ctx context.Context, id string) error {
	if err := s.repository.Delete(ctx, id); err != nil {
		log.Printf("❌ ItemStore: Remove failed for id=%s: %v", id, err)
		return fmt.Errorf("failed to delete item: %w", err)
	}

	s.mu.Lock()
	next := make([]models.Item, 0, len(s.items))
	for _, item := range s.items {
		if item.ID != id {
			next = append(next, item)
		}
	}
	s.items = next
	s.mu.Unlock()

	log.Printf("✅ ItemStore: Removed item id=%s", id)
	return nil
}

func copyResult(result models.ItemListResult) models.ItemListResult {
	items := make([]models.Item, len(result.Items))
	copy(items, result.Items)
	result.Items = items
	return result
}
