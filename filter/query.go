package filter

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"gamevault/models"
)

// FromQuery builds criteria from URL query parameters
// (search, category, minPrice, maxPrice). Missing parameters take their
// default for items; maxPrice defaults to MaxPrice(items).
func FromQuery(query url.Values, items []models.Item) (Criteria, error) {
	criteria := DefaultCriteria(items)

	criteria.Search = strings.TrimSpace(query.Get("search"))

	if category := strings.TrimSpace(query.Get("category")); category != "" {
		criteria.Category = category
	}

	if raw := strings.TrimSpace(query.Get("minPrice")); raw != "" {
		lo, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Criteria{}, fmt.Errorf("invalid minPrice parameter: %s", raw)
		}
		criteria.Price.Min = lo
	}

	if raw := strings.TrimSpace(query.Get("maxPrice")); raw != "" {
		hi, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Criteria{}, fmt.Errorf("invalid maxPrice parameter: %s", raw)
		}
		criteria.Price.Max = hi
	}

	if criteria.Price.Min > criteria.Price.Max {
		return Criteria{}, fmt.Errorf("minPrice (%g) cannot be greater than maxPrice (%g)", criteria.Price.Min, criteria.Price.Max)
	}

	return criteria, nil
}

// Describe renders criteria as a short human readable summary, empty for the defaults
func Describe(c Criteria, items []models.Item) string {
	var parts []string
	if c.Search != "" {
		parts = append(parts, fmt.Sprintf("search %q", c.Search))
	}
	if c.Category != CategoryAll && c.Category != "" {
		parts = append(parts, "category "+c.Category)
	}
	if c.Price.Min != 0 || c.Price.Max != MaxPrice(items) {
		parts = append(parts, fmt.Sprintf("price $%g-$%g", c.Price.Min, c.Price.Max))
	}
	return strings.Join(parts, ", ")
}
