package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamevault/models"
)

type fakeImageService struct {
	mu     sync.Mutex
	failID string
	calls  int
}

func (f *fakeImageService) ItemImage(ctx context.Context, item models.Item, size string) ([]byte, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if item.ID == f.failID {
		return nil, errors.New("image unavailable")
	}
	return []byte("jpeg-" + item.ID + "-" + size), nil
}

func catalogItems(n int) []models.Item {
	items := make([]models.Item, n)
	for i := range items {
		items[i] = models.Item{
			ID:       fmt.Sprintf("%d", i+1),
			Title:    fmt.Sprintf("Item %d", i+1),
			Price:    float64(10 * (i + 1)),
			Image:    fmt.Sprintf("https://example.com/%d.png", i+1),
			Category: models.CategoryKeys,
			InStock:  i%2 == 0,
		}
	}
	return items
}

func TestCatalogService_BuildCatalog_Paginates(t *testing.T) {
	svc := NewCatalogService(nil, "http://localhost:8080", "")

	data := svc.BuildCatalog(context.Background(), catalogItems(10), "category Keys", false)

	assert.Equal(t, "GameVault Catalog", data.Title)
	assert.Equal(t, "category Keys", data.Filters)
	assert.Equal(t, 10, data.ItemCount)
	require.Equal(t, 2, data.PageCount)
	assert.Len(t, data.Pages[0], 9)
	assert.Len(t, data.Pages[1], 1)
	assert.Equal(t, "$100", data.Pages[1][0].Price)
}

func TestCatalogService_BuildCatalog_Empty(t *testing.T) {
	svc := NewCatalogService(nil, "http://localhost:8080", "")

	data := svc.BuildCatalog(context.Background(), nil, "", true)

	assert.Zero(t, data.PageCount)
	assert.Zero(t, data.ItemCount)
}

func TestCatalogService_BuildCatalog_EmbedsImages(t *testing.T) {
	images := &fakeImageService{failID: "2"}
	svc := NewCatalogService(images, "http://localhost:8080", "")
	items := catalogItems(3)
	items[2].Image = ""

	data := svc.BuildCatalog(context.Background(), items, "", true)

	page := data.Pages[0]
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("jpeg-1-thumb")), page[0].ImageBase64)
	assert.Empty(t, page[1].ImageBase64, "failed image is left out")
	assert.Equal(t, "Item 2", page[1].Title)
	assert.Empty(t, page[2].ImageBase64)
	assert.Equal(t, 2, images.calls, "items without an image are skipped")
}

func TestCatalogService_BuildCatalog_WithoutEmbedding(t *testing.T) {
	images := &fakeImageService{}
	svc := NewCatalogService(images, "http://localhost:8080", "")

	data := svc.BuildCatalog(context.Background(), catalogItems(2), "", false)

	assert.Zero(t, images.calls)
	assert.Equal(t, "https://example.com/1.png", data.Pages[0][0].ImageURL)
}

func TestCatalogService_RenderCatalogHTML(t *testing.T) {
	svc := NewCatalogService(&fakeImageService{}, "http://localhost:8080", "")
	data := svc.BuildCatalog(context.Background(), catalogItems(10), "search \"item\"", true)

	html, err := svc.RenderCatalogHTML(data)

	require.NoError(t, err)
	assert.Contains(t, html, "Item 1")
	assert.Contains(t, html, "Item 10")
	assert.Contains(t, html, "$90")
	assert.Contains(t, html, "page 2 of 2")
	assert.Contains(t, html, "Out of stock")
	assert.Contains(t, html, `src="data:image/jpeg;base64,`)
}

func TestCatalogService_RenderCatalogHTML_EmptyCatalog(t *testing.T) {
	svc := NewCatalogService(nil, "http://localhost:8080", "")

	html, err := svc.RenderCatalogHTML(svc.BuildCatalog(context.Background(), nil, "", false))

	require.NoError(t, err)
	assert.Contains(t, html, "GameVault Catalog")
}

func TestPaginateItems(t *testing.T) {
	assert.Empty(t, paginateItems(nil))
	assert.Len(t, paginateItems(make([]models.CatalogItem, 9)), 1)
	assert.Len(t, paginateItems(make([]models.CatalogItem, 18)), 2)
	assert.Len(t, paginateItems(make([]models.CatalogItem, 19)), 3)
}
