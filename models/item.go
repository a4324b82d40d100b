package models

import (
	"fmt"
	"strings"
	"time"
)

// Category constants
const (
	CategoryAccounts      = "Accounts"
	CategoryGiftCards     = "Gift Cards"
	CategoryServices      = "Services"
	CategorySubscriptions = "Subscriptions"
	CategoryKeys          = "Keys"
	CategoryCoaching      = "Coaching"
)

// Categories is the fixed set of categories an item may belong to, in display order
var Categories = []string{
	CategoryAccounts,
	CategoryGiftCards,
	CategoryServices,
	CategorySubscriptions,
	CategoryKeys,
	CategoryCoaching,
}

// IsValidCategory reports whether category belongs to the fixed category set
func IsValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// Item represents a purchasable listing
type Item struct {
	ID          string    `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Price       float64   `json:"price" yaml:"price"`
	Image       string    `json:"image" yaml:"image"`
	Description string    `json:"description" yaml:"description"`
	Category    string    `json:"category" yaml:"category"`
	InStock     bool      `json:"inStock" yaml:"inStock"`
	CreatedAt   time.Time `json:"createdAt,omitempty" yaml:"-"`
	UpdatedAt   time.Time `json:"updatedAt,omitempty" yaml:"-"`
}

// Fields returns the item without its identifier and timestamps
func (i Item) Fields() ItemFields {
	return ItemFields{
		Title:       i.Title,
		Price:       i.Price,
		Image:       i.Image,
		Description: i.Description,
		Category:    i.Category,
		InStock:     i.InStock,
	}
}

// ItemFields represents the request body for creating or replacing an item.
// The identifier is never part of it: the store assigns it on creation.
type ItemFields struct {
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	InStock     bool    `json:"inStock"`
}

// Normalize trims surrounding whitespace from the text fields
func (f ItemFields) Normalize() ItemFields {
	f.Title = strings.TrimSpace(f.Title)
	f.Image = strings.TrimSpace(f.Image)
	f.Description = strings.TrimSpace(f.Description)
	f.Category = strings.TrimSpace(f.Category)
	return f
}

// Validate checks the item invariants: non-empty title, non-negative price, known category
func (f ItemFields) Validate() error {
	if strings.TrimSpace(f.Title) == "" {
		return fmt.Errorf("%w: title cannot be empty", ErrInvalidItem)
	}
	if f.Price < 0 {
		return fmt.Errorf("%w: price must be greater than or equal to 0", ErrInvalidItem)
	}
	if !IsValidCategory(f.Category) {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidItem, f.Category)
	}
	return nil
}

// ItemListResult is the outcome of reading the item collection.
// Advisory is non-empty when the remote read failed and Items holds the seed list.
type ItemListResult struct {
	Items    []Item `json:"items"`
	Advisory string `json:"advisory,omitempty"`
	Fallback bool   `json:"fallback"`
}

// ItemPage represents the response for GET /items
type ItemPage struct {
	Items        []Item   `json:"items"`
	InStockItems []Item   `json:"inStockItems"`
	Categories   []string `json:"categories"`
	MaxPrice     float64  `json:"maxPrice"`
	Total        int      `json:"total"`
	Advisory     string   `json:"advisory,omitempty"`
}

// ItemDetail represents the response for GET /items/{id}
type ItemDetail struct {
	Item    Item   `json:"item"`
	Related []Item `json:"related"`
}

// DashboardStats summarizes the item list for the admin dashboard
type DashboardStats struct {
	TotalItems   int     `json:"totalItems"`
	InStockItems int     `json:"inStockItems"`
	TotalValue   float64 `json:"totalValue"`
}

// AdminDashboard represents the response for GET /admin/items
type AdminDashboard struct {
	Items    []Item         `json:"items"`
	Stats    DashboardStats `json:"stats"`
	Advisory string         `json:"advisory,omitempty"`
}
