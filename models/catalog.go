package models

// CatalogItem represents a single item in the printable catalog
type CatalogItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Price       string `json:"price"`       // Formatted (e.g., "$45")
	ImageURL    string `json:"imageUrl"`    // Original image URI
	ImageBase64 string `json:"imageBase64"` // Embedded thumbnail for PDF generation
	InStock     bool   `json:"inStock"`
}

// CatalogData represents the data structure passed to the catalog template
type CatalogData struct {
	Title     string          `json:"title"`
	Filters   string          `json:"filters"`
	Pages     [][]CatalogItem `json:"pages"`
	PageCount int             `json:"pageCount"`
	ItemCount int             `json:"itemCount"`
}
