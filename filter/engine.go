package filter

import (
	"strings"

	"gamevault/models"
)

const (
	// CategoryAll matches every category
	CategoryAll = "all"
	// DefaultMaxPrice is the floor of the derived price upper bound
	DefaultMaxPrice = 100.0
	// RelatedLimit is the number of related items shown next to an item
	RelatedLimit = 3
)

// PriceRange is an inclusive [Min, Max] price interval
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether price lies inside the range, bounds included
func (r PriceRange) Contains(price float64) bool {
	return price >= r.Min && price <= r.Max
}

// Criteria holds the transient search, category and price constraints applied to the item list
type Criteria struct {
	Search   string     `json:"search"`
	Category string     `json:"category"`
	Price    PriceRange `json:"priceRange"`
}

// DefaultCriteria returns criteria that match every item of items
func DefaultCriteria(items []models.Item) Criteria {
	return Criteria{
		Search:   "",
		Category: CategoryAll,
		Price:    PriceRange{Min: 0, Max: MaxPrice(items)},
	}
}

// Match reports whether item satisfies all three clauses of c
func (c Criteria) Match(item models.Item) bool {
	return matchesSearch(item, c.Search) && matchesCategory(item, c.Category) && c.Price.Contains(item.Price)
}

func matchesSearch(item models.Item, search string) bool {
	if search == "" {
		return true
	}
	needle := strings.ToLower(search)
	return strings.Contains(strings.ToLower(item.Title), needle) ||
		strings.Contains(strings.ToLower(item.Description), needle)
}

func matchesCategory(item models.Item, category string) bool {
	return category == CategoryAll || item.Category == category
}

// Apply returns the items matching c, in their original order.
// The input slice is never modified.
func Apply(items []models.Item, c Criteria) []models.Item {
	result := make([]models.Item, 0, len(items))
	for _, item := range items {
		if c.Match(item) {
			result = append(result, item)
		}
	}
	return result
}

// MaxPrice returns the highest price in items, never less than DefaultMaxPrice
func MaxPrice(items []models.Item) float64 {
	highest := DefaultMaxPrice
	for _, item := range items {
		if item.Price > highest {
			highest = item.Price
		}
	}
	return highest
}

// Categories returns the distinct categories present in items, in order of first appearance
func Categories(items []models.Item) []string {
	seen := make(map[string]bool)
	categories := make([]string, 0)
	for _, item := range items {
		if seen[item.Category] {
			continue
		}
		seen[item.Category] = true
		categories = append(categories, item.Category)
	}
	return categories
}

// InStock returns the items that are in stock, in their original order
func InStock(items []models.Item) []models.Item {
	result := make([]models.Item, 0, len(items))
	for _, item := range items {
		if item.InStock {
			result = append(result, item)
		}
	}
	return result
}

// Related returns up to limit items sharing item's category, excluding item itself
func Related(items []models.Item, item models.Item, limit int) []models.Item {
	result := make([]models.Item, 0, limit)
	for _, candidate := range items {
		if len(result) >= limit {
			break
		}
		if candidate.ID == item.ID || candidate.Category != item.Category {
			continue
		}
		result = append(result, candidate)
	}
	return result
}

// Summarize computes the admin dashboard counters for items
func Summarize(items []models.Item) models.DashboardStats {
	stats := models.DashboardStats{TotalItems: len(items)}
	for _, item := range items {
		if item.InStock {
			stats.InStockItems++
		}
		stats.TotalValue += item.Price
	}
	return stats
}
