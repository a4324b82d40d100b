package filter

import "gamevault/models"

// State tracks the criteria a viewer has selected together with the maximum
// price they were derived from, so the price range follows the backing list.
type State struct {
	criteria Criteria
	maxPrice float64
}

// NewState returns a State holding the default criteria for items
func NewState(items []models.Item) *State {
	return &State{
		criteria: DefaultCriteria(items),
		maxPrice: MaxPrice(items),
	}
}

// Criteria returns the current criteria
func (s *State) Criteria() Criteria {
	return s.criteria
}

// MaxPrice returns the maximum price the current range was derived from
func (s *State) MaxPrice() float64 {
	return s.maxPrice
}

// SetSearch replaces the search text
func (s *State) SetSearch(search string) {
	s.criteria.Search = search
}

// SetCategory replaces the category selector
func (s *State) SetCategory(category string) {
	s.criteria.Category = category
}

// SetPriceRange replaces the price range
func (s *State) SetPriceRange(r PriceRange) {
	s.criteria.Price = r
}

// Sync recomputes the maximum price of items. When it changed, the price
// range is reset to [0, newMax]. Reports whether the range was reset.
func (s *State) Sync(items []models.Item) bool {
	highest := MaxPrice(items)
	if highest == s.maxPrice {
		return false
	}
	s.maxPrice = highest
	s.criteria.Price = PriceRange{Min: 0, Max: highest}
	return true
}

// Clear restores the default criteria for items
func (s *State) Clear(items []models.Item) {
	s.maxPrice = MaxPrice(items)
	s.criteria = DefaultCriteria(items)
}

// Apply filters items with the current criteria after syncing the price range
func (s *State) Apply(items []models.Item) []models.Item {
	s.Sync(items)
	return Apply(items, s.criteria)
}
