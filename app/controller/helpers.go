package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"gamevault/filter"
	"gamevault/models"
)

// writeJSON encodes v as the response body with the given status
func writeJSON(w http.ResponseWriter, status int, v interface{}, handler string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("❌ %s: Error encoding response: %v", handler, err)
	}
}

// pathID extracts the first path segment after prefix,
// e.g. "/items/42/image" with prefix "/items/" gives "42"
func pathID(path, prefix string) string {
	rest := strings.Trim(strings.TrimPrefix(path, prefix), "/")
	if i := strings.Index(rest, "/"); i >= 0 {
		rest = rest[:i]
	}
	id, err := url.PathUnescape(rest)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(id)
}

// filterItems applies the query filters (search, category, minPrice,
// maxPrice, inStock) to items and returns the matches with the criteria used
func filterItems(query url.Values, items []models.Item) ([]models.Item, filter.Criteria, error) {
	criteria, err := filter.FromQuery(query, items)
	if err != nil {
		return nil, filter.Criteria{}, err
	}

	state := filter.NewState(items)
	state.SetSearch(criteria.Search)
	state.SetCategory(criteria.Category)
	state.SetPriceRange(criteria.Price)
	matched := state.Apply(items)

	if raw := strings.TrimSpace(query.Get("inStock")); raw != "" {
		inStockOnly, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, filter.Criteria{}, fmt.Errorf("invalid inStock parameter: %s", raw)
		}
		if inStockOnly {
			matched = filter.InStock(matched)
		}
	}

	return matched, state.Criteria(), nil
}

// writeStoreError maps an item store write failure to an HTTP status
func writeStoreError(w http.ResponseWriter, handler string, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidItem):
		log.Printf("❌ %s: Validation error: %v", handler, err)
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, models.ErrItemNotFound):
		log.Printf("❌ %s: Item not found: %v", handler, err)
		http.Error(w, "Item not found", http.StatusNotFound)
	default:
		log.Printf("❌ %s: Store error: %v", handler, err)
		http.Error(w, fmt.Sprintf("Item store request failed: %v", err), http.StatusBadGateway)
	}
}
