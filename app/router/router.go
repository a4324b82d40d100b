package router

import (
	"net/http"
	"strings"

	"gamevault/app/controller"
)

type Controllers struct {
	Item    *controller.ItemController
	Admin   *controller.AdminController
	Catalog *controller.CatalogController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func SetupRoutes(mux *http.ServeMux, controllers *Controllers) {
	// Ping endpoint
	mux.HandleFunc("/ping", pingHandler)

	// Storefront routes
	mux.HandleFunc("/items", controllers.Item.ListItems)

	// Re-read the remote collection
	mux.HandleFunc("/items/refresh", controllers.Item.RefreshItems)

	// Item by id - handles detail, image and purchase
	mux.HandleFunc("/items/", func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/items/")

		if strings.HasSuffix(path, "/image") {
			controllers.Item.GetItemImage(w, r)
			return
		}
		if strings.HasSuffix(path, "/purchase") {
			controllers.Item.Purchase(w, r)
			return
		}
		if strings.Contains(strings.Trim(path, "/"), "/") {
			http.Error(w, "Not found", http.StatusNotFound)
			return
		}
		controllers.Item.GetItem(w, r)
	})

	// Catalog routes
	mux.HandleFunc("/catalog", controllers.Catalog.GenerateCatalog)

	// Render catalog HTML (used by chromedp for PDF generation)
	mux.HandleFunc("/catalog/render", controllers.Catalog.RenderCatalog)

	// Admin session routes
	mux.HandleFunc("/admin/login", controllers.Admin.Login)
	mux.HandleFunc("/admin/logout", controllers.Admin.Logout)
	mux.HandleFunc("/admin/session", controllers.Admin.Session)

	// Admin items - dashboard and create
	mux.HandleFunc("/admin/items", controllers.Admin.RequireAdmin(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			controllers.Admin.Dashboard(w, r)
		} else if r.Method == http.MethodPost {
			controllers.Admin.CreateItem(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}))

	// Admin item by id - handles PUT (replace) and DELETE
	mux.HandleFunc("/admin/items/", controllers.Admin.RequireAdmin(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			controllers.Admin.ReplaceItem(w, r)
		} else if r.Method == http.MethodDelete {
			controllers.Admin.DeleteItem(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}))

	// Drive folder listing for picking item images
	mux.HandleFunc("/admin/drive/images", controllers.Admin.RequireAdmin(controllers.Admin.ListDriveImages))
}
