package controller

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"gamevault/filter"
	"gamevault/service"
)

// validFormats is a map of valid catalog format values
var validFormats = map[string]bool{
	"html": true,
	"pdf":  true,
}

// CatalogController handles HTTP requests for the printable catalog
type CatalogController struct {
	store          service.ItemStoreInterface
	catalogService service.CatalogServiceInterface
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(store service.ItemStoreInterface, catalogService service.CatalogServiceInterface) *CatalogController {
	return &CatalogController{
		store:          store,
		catalogService: catalogService,
	}
}

// render builds the catalog HTML for the items matching the request filters
func (c *CatalogController) render(r *http.Request, embedImages bool) (string, int, error) {
	items := c.store.Current(r.Context()).Items

	matched, criteria, err := filterItems(r.URL.Query(), items)
	if err != nil {
		return "", http.StatusBadRequest, err
	}

	data := c.catalogService.BuildCatalog(r.Context(), matched, filter.Describe(criteria, items), embedImages)
	html, err := c.catalogService.RenderCatalogHTML(data)
	if err != nil {
		return "", http.StatusInternalServerError, err
	}
	return html, http.StatusOK, nil
}

// GenerateCatalog handles GET /catalog?format=html|pdf with the item list filters
func (c *CatalogController) GenerateCatalog(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 GenerateCatalog: Received %s request to %s", r.Method, r.URL.String())

	if r.Method != http.MethodGet {
		log.Printf("❌ GenerateCatalog: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	format := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
	if format == "" {
		format = "html"
	}
	if !validFormats[format] {
		log.Printf("❌ GenerateCatalog: Invalid format: %s", format)
		http.Error(w, "Invalid format. Valid formats: html, pdf", http.StatusBadRequest)
		return
	}

	switch format {
	case "html":
		htmlContent, status, err := c.render(r, false)
		if err != nil {
			log.Printf("❌ GenerateCatalog: Error rendering HTML: %v", err)
			http.Error(w, fmt.Sprintf("Failed to render catalog: %v", err), status)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(htmlContent)); err != nil {
			log.Printf("❌ GenerateCatalog: Error writing HTML response: %v", err)
		}

	case "pdf":
		// Validate the filters before starting the browser
		if _, _, err := filterItems(r.URL.Query(), c.store.Current(r.Context()).Items); err != nil {
			log.Printf("❌ GenerateCatalog: Invalid filters: %v", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		query := r.URL.Query()
		query.Del("format")
		pdfData, err := c.catalogService.GeneratePDF(r.Context(), query.Encode())
		if err != nil {
			log.Printf("❌ GenerateCatalog: Error generating PDF: %v", err)
			http.Error(w, fmt.Sprintf("Failed to generate PDF: %v", err), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="gamevault_catalog.pdf"`)
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(pdfData); err != nil {
			log.Printf("❌ GenerateCatalog: Error writing PDF response: %v", err)
		}
	}
}

// RenderCatalog handles GET /catalog/render
// Returns the catalog HTML with embedded thumbnails (loaded by chromedp for PDF generation)
func (c *CatalogController) RenderCatalog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		log.Printf("❌ RenderCatalog: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	htmlContent, status, err := c.render(r, true)
	if err != nil {
		log.Printf("❌ RenderCatalog: Error rendering HTML: %v", err)
		http.Error(w, fmt.Sprintf("Failed to render catalog: %v", err), status)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(htmlContent)); err != nil {
		log.Printf("❌ RenderCatalog: Error writing HTML response: %v", err)
	}
}
