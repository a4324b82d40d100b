package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"gamevault/data"
	"gamevault/models"
	"gamevault/repository"
	"gamevault/service"
)

func newSeededStore(t *testing.T) *service.ItemStore {
	t.Helper()
	seed, err := data.SeedItems()
	require.NoError(t, err)
	store := service.NewItemStore(repository.NewMemoryItemRepository(seed), data.SeedItems)
	store.List(context.Background())
	return store
}

type unavailableRepository struct{}

func (unavailableRepository) List(ctx context.Context) ([]models.Item, error) {
	return nil, models.ErrStoreUnavailable
}

func (unavailableRepository) Insert(ctx context.Context, fields models.ItemFields) (*models.Item, error) {
	return nil, models.ErrStoreUnavailable
}

func (unavailableRepository) Replace(ctx context.Context, id string, fields models.ItemFields) (*models.Item, error) {
	return nil, models.ErrStoreUnavailable
}

func (unavailableRepository) Delete(ctx context.Context, id string) error {
	return models.ErrStoreUnavailable
}

type fakeImageService struct {
	mu    sync.Mutex
	sizes []string
}

func (f *fakeImageService) ItemImage(ctx context.Context, item models.Item, size string) ([]byte, error) {
	f.mu.Lock()
	f.sizes = append(f.sizes, size)
	f.mu.Unlock()
	if item.ID == "broken" {
		return nil, errors.New("image unavailable")
	}
	return []byte("jpeg:" + item.ID), nil
}

func jsonRequest(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	return httptest.NewRequest(method, target, &buf)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(out))
}

func itemIDs(items []models.Item) []string {
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	return ids
}
