package service

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"log"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"golang.org/x/sync/errgroup"

	"gamevault/models"
	"gamevault/utils"
)

const (
	itemsPerPage        = 9
	catalogImageWorkers = 4
	catalogTitle        = "GameVault Catalog"
)

//go:embed templates/catalog.html
var catalogTemplateHTML string

var catalogTemplate = template.Must(template.New("catalog").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
	"dataURI": func(b64 string) template.URL {
		return template.URL("data:image/jpeg;base64," + b64)
	},
}).Parse(catalogTemplateHTML))

// CatalogServiceInterface defines the contract for catalog generation
type CatalogServiceInterface interface {
	BuildCatalog(ctx context.Context, items []models.Item, filters string, embedImages bool) models.CatalogData
	RenderCatalogHTML(data models.CatalogData) (string, error)
	GeneratePDF(ctx context.Context, rawQuery string) ([]byte, error)
}

// CatalogService handles printable catalog generation
// Implements CatalogServiceInterface
type CatalogService struct {
	images     ImageServiceInterface
	baseURL    string // Base URL the headless browser loads the render page from
	chromePath string
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(images ImageServiceInterface, baseURL, chromePath string) *CatalogService {
	return &CatalogService{
		images:     images,
		baseURL:    baseURL,
		chromePath: chromePath,
	}
}

// Ensure CatalogService implements CatalogServiceInterface
var _ CatalogServiceInterface = (*CatalogService)(nil)

// detectChromePath returns the configured Chrome path when it exists,
// otherwise the first common installation path found
func detectChromePath(configured string) string {
	if configured != "" {
		if _, err := os.Stat(configured); err == nil {
			return configured
		}
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// paginateItems splits items into pages of 9 items each
func paginateItems(items []models.CatalogItem) [][]models.CatalogItem {
	var pages [][]models.CatalogItem
	for i := 0; i < len(items); i += itemsPerPage {
		end := i + itemsPerPage
		if end > len(items) {
			end = len(items)
		}
		pages = append(pages, items[i:end])
	}
	return pages
}

// BuildCatalog converts items into paginated catalog data. With embedImages,
// item thumbnails are fetched concurrently and inlined as base64; an image
// that fails to load is left out and the item is still listed.
func (s *CatalogService) BuildCatalog(ctx context.Context, items []models.Item, filters string, embedImages bool) models.CatalogData {
	catalogItems := make([]models.CatalogItem, len(items))
	for i, item := range items {
		catalogItems[i] = models.CatalogItem{
			ID:          item.ID,
			Title:       item.Title,
			Description: item.Description,
			Category:    item.Category,
			Price:       utils.FormatPrice(item.Price),
			ImageURL:    item.Image,
			InStock:     item.InStock,
		}
	}

	if embedImages && s.images != nil {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(catalogImageWorkers)
		for i := range items {
			if items[i].Image == "" {
				continue
			}
			g.Go(func() error {
				data, err := s.images.ItemImage(gctx, items[i], SizeThumb)
				if err != nil {
					log.Printf("⚠️  Warning: Failed to fetch image for item %s: %v", items[i].ID, err)
					return nil
				}
				catalogItems[i].ImageBase64 = base64.StdEncoding.EncodeToString(data)
				return nil
			})
		}
		g.Wait()
	}

	pages := paginateItems(catalogItems)
	return models.CatalogData{
		Title:     catalogTitle,
		Filters:   filters,
		Pages:     pages,
		PageCount: len(pages),
		ItemCount: len(catalogItems),
	}
}

// RenderCatalogHTML renders the catalog HTML template
func (s *CatalogService) RenderCatalogHTML(data models.CatalogData) (string, error) {
	var buf bytes.Buffer
	if err := catalogTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

// GeneratePDF loads the render page (with the same filter query) in headless
// Chrome and prints it to an A4 PDF
func (s *CatalogService) GeneratePDF(ctx context.Context, rawQuery string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in Docker/containers
	)
	if chromePath := detectChromePath(s.chromePath); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	renderURL := s.baseURL + "/catalog/render"
	if rawQuery != "" {
		renderURL += "?" + rawQuery
	}
	log.Printf("🖨️  Generating catalog PDF from %s", renderURL)

	var pdfBuf []byte
	err := chromedp.Run(chromedpCtx,
		chromedp.EmulateViewport(794, 1123), // 210mm x 297mm at 96 DPI
		chromedp.Navigate(renderURL),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).   // 210mm in inches
				WithPaperHeight(11.69). // 297mm in inches
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	log.Printf("✓ Catalog PDF generated: %d bytes", len(pdfBuf))
	return pdfBuf, nil
}
