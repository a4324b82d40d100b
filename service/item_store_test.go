package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamevault/data"
	"gamevault/models"
)

type fakeItemRepository struct {
	mu         sync.Mutex
	items      []models.Item
	listErr    error
	writeErr   error
	listCalls  int
	writeCalls int
	nextID     int
}

func (f *fakeItemRepository) List(ctx context.Context) ([]models.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	items := make([]models.Item, len(f.items))
	copy(items, f.items)
	return items, nil
}

func (f *fakeItemRepository) Insert(ctx context.Context, fields models.ItemFields) (*models.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writeCalls++
	if f.writeErr != nil {
		return nil, f.writeErr
	}
	f.nextID++
	item := itemFromFields(fmt.Sprintf("new-%d", f.nextID), fields)
	return &item, nil
}

func (f *fakeItemRepository) Replace(ctx context.Context, id string, fields models.ItemFields) (*models.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writeCalls++
	if f.writeErr != nil {
		return nil, f.writeErr
	}
	item := itemFromFields(id, fields)
	return &item, nil
}

func (f *fakeItemRepository) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writeCalls++
	return f.writeErr
}

func itemFromFields(id string, fields models.ItemFields) models.Item {
	return models.Item{
		ID:          id,
		Title:       fields.Title,
		Price:       fields.Price,
		Image:       fields.Image,
		Description: fields.Description,
		Category:    fields.Category,
		InStock:     fields.InStock,
	}
}

func remoteItems() []models.Item {
	return []models.Item{
		{ID: "b", Title: "CS2 Prime Account", Price: 32, Category: models.CategoryAccounts, InStock: true},
		{ID: "a", Title: "Discord Nitro", Price: 9.99, Category: models.CategorySubscriptions},
	}
}

func newTestItemStore(repo *fakeItemRepository) *ItemStore {
	return NewItemStore(repo, data.SeedItems)
}

var nitroFields = models.ItemFields{
	Title:    "Discord Nitro - 1 Year",
	Price:    89,
	Category: models.CategorySubscriptions,
	InStock:  true,
}

func TestItemStore_List_Remote(t *testing.T) {
	repo := &fakeItemRepository{items: remoteItems()}
	store := newTestItemStore(repo)

	result := store.List(context.Background())

	assert.Equal(t, remoteItems(), result.Items)
	assert.Empty(t, result.Advisory)
	assert.False(t, result.Fallback)
}

func TestItemStore_List_FallsBackToSeed(t *testing.T) {
	repo := &fakeItemRepository{listErr: models.ErrStoreUnavailable}
	store := newTestItemStore(repo)

	result := store.List(context.Background())

	seed, err := data.SeedItems()
	require.NoError(t, err)
	assert.Equal(t, seed, result.Items)
	assert.Equal(t, FallbackAdvisory, result.Advisory)
	assert.True(t, result.Fallback)
	assert.Equal(t, 1, repo.listCalls, "remote read is attempted once")
}

func TestItemStore_List_SeedFailureYieldsEmptyList(t *testing.T) {
	repo := &fakeItemRepository{listErr: models.ErrStoreUnavailable}
	store := NewItemStore(repo, func() ([]models.Item, error) {
		return nil, errors.New("broken seed")
	})

	result := store.List(context.Background())

	assert.Empty(t, result.Items)
	assert.NotEmpty(t, result.Advisory)
}

func TestItemStore_List_RecoversAfterOutage(t *testing.T) {
	repo := &fakeItemRepository{listErr: models.ErrStoreUnavailable, items: remoteItems()}
	store := newTestItemStore(repo)
	require.True(t, store.List(context.Background()).Fallback)

	repo.listErr = nil
	result := store.List(context.Background())

	assert.False(t, result.Fallback)
	assert.Empty(t, store.Current(context.Background()).Advisory)
}

func TestItemStore_Current_LoadsOnce(t *testing.T) {
	repo := &fakeItemRepository{items: remoteItems()}
	store := newTestItemStore(repo)

	first := store.Current(context.Background())
	second := store.Current(context.Background())

	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.listCalls)
}

func TestItemStore_Current_ReturnsCopies(t *testing.T) {
	store := newTestItemStore(&fakeItemRepository{items: remoteItems()})

	result := store.Current(context.Background())
	result.Items[0].Title = "mutated"

	assert.Equal(t, "CS2 Prime Account", store.Current(context.Background()).Items[0].Title)
}

func TestItemStore_Get(t *testing.T) {
	store := newTestItemStore(&fakeItemRepository{items: remoteItems()})

	item, ok := store.Get(context.Background(), "a")
	require.True(t, ok)
	assert.Equal(t, "Discord Nitro", item.Title)

	_, ok = store.Get(context.Background(), "missing")
	assert.False(t, ok)
}

func TestItemStore_Create_PrependsAfterRemoteSuccess(t *testing.T) {
	repo := &fakeItemRepository{items: remoteItems()}
	store := newTestItemStore(repo)
	store.List(context.Background())

	created, err := store.Create(context.Background(), nitroFields)

	require.NoError(t, err)
	assert.Equal(t, "new-1", created.ID)
	items := store.Current(context.Background()).Items
	require.Len(t, items, 3)
	assert.Equal(t, created, items[0])
}

func TestItemStore_Create_TrimsFields(t *testing.T) {
	store := newTestItemStore(&fakeItemRepository{})
	fields := nitroFields
	fields.Title = "  Discord Nitro  "

	created, err := store.Create(context.Background(), fields)

	require.NoError(t, err)
	assert.Equal(t, "Discord Nitro", created.Title)
}

func TestItemStore_Create_RemoteFailureLeavesListUnchanged(t *testing.T) {
	repo := &fakeItemRepository{items: remoteItems()}
	store := newTestItemStore(repo)
	store.List(context.Background())
	repo.writeErr = models.ErrStoreUnavailable

	_, err := store.Create(context.Background(), nitroFields)

	assert.True(t, errors.Is(err, models.ErrStoreUnavailable))
	assert.Equal(t, remoteItems(), store.Current(context.Background()).Items)
}

func TestItemStore_Create_InvalidFieldsNeverReachRemote(t *testing.T) {
	cases := map[string]models.ItemFields{
		"empty title":      {Title: "  ", Price: 1, Category: models.CategoryKeys},
		"negative price":   {Title: "Key", Price: -1, Category: models.CategoryKeys},
		"unknown category": {Title: "Key", Price: 1, Category: "Skins"},
	}
	for name, fields := range cases {
		t.Run(name, func(t *testing.T) {
			repo := &fakeItemRepository{}
			store := newTestItemStore(repo)

			_, err := store.Create(context.Background(), fields)

			assert.True(t, errors.Is(err, models.ErrInvalidItem))
			assert.Zero(t, repo.writeCalls)
		})
	}
}

func TestItemStore_Replace_SwapsItem(t *testing.T) {
	repo := &fakeItemRepository{items: remoteItems()}
	store := newTestItemStore(repo)
	store.List(context.Background())

	updated, err := store.Replace(context.Background(), "a", nitroFields)

	require.NoError(t, err)
	items := store.Current(context.Background()).Items
	require.Len(t, items, 2)
	assert.Equal(t, "b", items[0].ID)
	assert.Equal(t, updated, items[1])
	assert.Equal(t, float64(89), items[1].Price)
}

func TestItemStore_Replace_NotFoundPropagates(t *testing.T) {
	repo := &fakeItemRepository{items: remoteItems()}
	store := newTestItemStore(repo)
	store.List(context.Background())
	repo.writeErr = models.ErrItemNotFound

	_, err := store.Replace(context.Background(), "zzz", nitroFields)

	assert.True(t, errors.Is(err, models.ErrItemNotFound))
	assert.Equal(t, remoteItems(), store.Current(context.Background()).Items)
}

func TestItemStore_Remove(t *testing.T) {
	repo := &fakeItemRepository{items: remoteItems()}
	store := newTestItemStore(repo)
	store.List(context.Background())

	require.NoError(t, store.Remove(context.Background(), "b"))

	items := store.Current(context.Background()).Items
	require.Len(t, items, 1)
	assert.Equal(t, "a", items[0].ID)
}

func TestItemStore_Remove_FailureLeavesListUnchanged(t *testing.T) {
	repo := &fakeItemRepository{items: remoteItems()}
	store := newTestItemStore(repo)
	store.List(context.Background())
	repo.writeErr = models.ErrStoreUnavailable

	err := store.Remove(context.Background(), "b")

	assert.Error(t, err)
	assert.Len(t, store.Current(context.Background()).Items, 2)
}

func TestItemStore_ConcurrentReadsAndWrites(t *testing.T) {
	store := newTestItemStore(&fakeItemRepository{items: remoteItems()})
	store.List(context.Background())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			store.Create(context.Background(), nitroFields)
		}()
		go func() {
			defer wg.Done()
			store.Current(context.Background())
		}()
	}
	wg.Wait()

	assert.Len(t, store.Current(context.Background()).Items, 10)
}
