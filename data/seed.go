package data

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"gamevault/models"
)

//go:embed seed_items.yaml
var seedYAML []byte

var (
	seedOnce  sync.Once
	seedItems []models.Item
	seedErr   error
)

// ParseSeed decodes a YAML list of items
func ParseSeed(raw []byte) ([]models.Item, error) {
	var items []models.Item
	if err := yaml.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("failed to parse seed items: %w", err)
	}
	for i, item := range items {
		if item.ID == "" {
			return nil, fmt.Errorf("seed item %d has no id", i)
		}
		if err := item.Fields().Validate(); err != nil {
			return nil, fmt.Errorf("seed item %s: %w", item.ID, err)
		}
	}
	return items, nil
}

// SeedItems returns a copy of the built-in item list used as fallback
func SeedItems() ([]models.Item, error) {
	seedOnce.Do(func() {
		seedItems, seedErr = ParseSeed(seedYAML)
	})
	if seedErr != nil {
		return nil, seedErr
	}
	items := make([]models.Item, len(seedItems))
	copy(items, seedItems)
	return items, nil
}
