package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"gamevault/filter"
	"gamevault/models"
	"gamevault/service"
)

const purchaseSentMessage = "Purchase request sent! We will contact you on Discord soon."

// ItemController handles the public storefront endpoints
type ItemController struct {
	store    service.ItemStoreInterface
	notifier service.PurchaseNotifierInterface
	images   service.ImageServiceInterface
}

// NewItemController creates a new ItemController
func NewItemController(store service.ItemStoreInterface, notifier service.PurchaseNotifierInterface, images service.ImageServiceInterface) *ItemController {
	return &ItemController{
		store:    store,
		notifier: notifier,
		images:   images,
	}
}

// ListItems handles GET /items?search=&category=&minPrice=&maxPrice=&inStock=
func (c *ItemController) ListItems(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 ListItems: Received %s request to %s", r.Method, r.URL.String())

	if r.Method != http.MethodGet {
		log.Printf("❌ ListItems: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	result := c.store.Current(r.Context())

	matched, _, err := filterItems(r.URL.Query(), result.Items)
	if err != nil {
		log.Printf("❌ ListItems: Invalid filters: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	page := newItemPage(result, matched)
	log.Printf("✅ ListItems: Returning %d of %d items", page.Total, len(result.Items))
	writeJSON(w, http.StatusOK, page, "ListItems")
}

func newItemPage(result models.ItemListResult, matched []models.Item) models.ItemPage {
	return models.ItemPage{
		Items:        matched,
		InStockItems: filter.InStock(result.Items),
		Categories:   filter.Categories(result.Items),
		MaxPrice:     filter.MaxPrice(result.Items),
		Total:        len(matched),
		Advisory:     result.Advisory,
	}
}

// RefreshItems handles POST /items/refresh
// Re-reads the remote collection; a failed read falls back to the seed list
func (c *ItemController) RefreshItems(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 RefreshItems: Received %s request", r.Method)

	if r.Method != http.MethodPost {
		log.Printf("❌ RefreshItems: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	result := c.store.List(r.Context())
	if result.Fallback {
		log.Printf("⚠️  RefreshItems: Serving seed items")
	}

	writeJSON(w, http.StatusOK, newItemPage(result, result.Items), "RefreshItems")
}

// GetItem handles GET /items/{id}
// Returns the item with up to three related items of the same category
func (c *ItemController) GetItem(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 GetItem: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodGet {
		log.Printf("❌ GetItem: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := pathID(r.URL.Path, "/items/")
	if id == "" {
		log.Printf("❌ GetItem: Missing item id")
		http.Error(w, "Item id is required", http.StatusBadRequest)
		return
	}

	result := c.store.Current(r.Context())
	var (
		item  models.Item
		found bool
	)
	for _, candidate := range result.Items {
		if candidate.ID == id {
			item, found = candidate, true
			break
		}
	}
	if !found {
		log.Printf("❌ GetItem: Item not found: %s", id)
		http.Error(w, "Item not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, models.ItemDetail{
		Item:    item,
		Related: filter.Related(result.Items, item, filter.RelatedLimit),
	}, "GetItem")
}

// GetItemImage handles GET /items/{id}/image?size=thumb|medium
// Returns the optimized JPEG of the item image
func (c *ItemController) GetItemImage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		log.Printf("❌ GetItemImage: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := pathID(r.URL.Path, "/items/")
	item, ok := c.store.Get(r.Context(), id)
	if !ok {
		log.Printf("❌ GetItemImage: Item not found: %s", id)
		http.Error(w, "Item not found", http.StatusNotFound)
		return
	}
	if item.Image == "" {
		http.Error(w, "Item has no image", http.StatusNotFound)
		return
	}

	size := service.NormalizeImageSize(strings.TrimSpace(r.URL.Query().Get("size")))
	data, err := c.images.ItemImage(r.Context(), item, size)
	if err != nil {
		log.Printf("❌ GetItemImage: Failed to load image for item %s: %v", id, err)
		status := http.StatusBadGateway
		if errors.Is(err, models.ErrDriveNotConfigured) {
			status = http.StatusServiceUnavailable
		}
		http.Error(w, fmt.Sprintf("Failed to load image: %v", err), status)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.Printf("❌ GetItemImage: Error writing image response: %v", err)
	}
}

// Purchase handles POST /items/{id}/purchase
// Relays the purchase request of the buyer to the chat webhook
func (c *ItemController) Purchase(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Purchase: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		log.Printf("❌ Purchase: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.PurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Purchase: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	id := pathID(r.URL.Path, "/items/")
	item, ok := c.store.Get(r.Context(), id)
	if !ok {
		log.Printf("❌ Purchase: Item not found: %s", id)
		http.Error(w, "Item not found", http.StatusNotFound)
		return
	}

	if err := c.notifier.Submit(r.Context(), &item, req.DiscordUsername, req.Message); err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidPurchase):
			log.Printf("❌ Purchase: Invalid request: %v", err)
			http.Error(w, "Please enter your Discord username", http.StatusBadRequest)
		case errors.Is(err, models.ErrNotifierNotConfigured):
			log.Printf("❌ Purchase: %v", err)
			http.Error(w, "Purchase requests are not available right now", http.StatusServiceUnavailable)
		default:
			log.Printf("❌ Purchase: Failed to send request: %v", err)
			http.Error(w, "Failed to send purchase request. Please try again.", http.StatusBadGateway)
		}
		return
	}

	log.Printf("✅ Purchase: Request sent for item=%s", item.ID)
	writeJSON(w, http.StatusOK, models.PurchaseResponse{
		Status:  "sent",
		Message: purchaseSentMessage,
	}, "Purchase")
}
