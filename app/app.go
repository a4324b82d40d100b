package app

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"strings"

	"gamevault/app/controller"
	"gamevault/app/router"
	"gamevault/config"
	"gamevault/data"
	"gamevault/db"
	"gamevault/repository"
	"gamevault/service"
	"gamevault/supabase"
)

// App holds the wired HTTP handler and the resources to release on shutdown
type App struct {
	Handler http.Handler
	Store   *service.ItemStore
	conn    *sql.DB
}

// Close releases the database connection, if any
func (a *App) Close() error {
	return db.Close(a.conn)
}

// newItemRepository builds the remote item collection for the configured driver
func newItemRepository(ctx context.Context, cfg *config.Config, client *supabase.Client) (repository.ItemRepositoryInterface, *sql.DB, error) {
	switch cfg.ItemStoreDriver {
	case config.DriverPostgres:
		conn, err := db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		if err := db.Migrate(ctx, conn); err != nil {
			conn.Close()
			return nil, nil, err
		}
		return repository.NewItemRepository(conn), conn, nil

	case config.DriverMemory:
		seed, err := data.SeedItems()
		if err != nil {
			return nil, nil, err
		}
		log.Printf("⚠️  Using the in-memory item store, changes are lost on restart")
		return repository.NewMemoryItemRepository(seed), nil, nil

	default:
		return repository.NewRestItemRepository(client), nil, nil
	}
}

// Initialize initializes the application
func Initialize(ctx context.Context, cfg *config.Config) (*App, error) {
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	client := supabase.NewClient(cfg.SupabaseURL, cfg.SupabaseAnonKey, httpClient)

	// Initialize item store
	itemRepo, conn, err := newItemRepository(ctx, cfg, client)
	if err != nil {
		return nil, err
	}
	store := service.NewItemStore(itemRepo, data.SeedItems)
	if result := store.List(ctx); result.Fallback {
		log.Printf("⚠️  %s", result.Advisory)
	}

	// Initialize session and purchase services
	authService := service.NewAuthService(client)
	sessions := service.NewSessionService(service.AdminIdentity{
		Username: cfg.AdminUsername,
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
	}, authService)
	notifier := service.NewPurchaseNotifier(cfg.WebhookURL, httpClient)

	// Initialize Drive service (optional)
	var driveService service.DriveServiceInterface
	if cfg.GoogleCredentialsPath != "" {
		ds, err := service.NewDriveService(ctx, cfg.GoogleCredentialsPath)
		if err != nil {
			log.Printf("⚠️  Google Drive disabled: %v", err)
		} else {
			driveService = ds
		}
	}

	imageService := service.NewImageService(cfg.ImageCacheDir, httpClient, driveService)
	catalogService := service.NewCatalogService(imageService, cfg.BaseURL, cfg.ChromePath)

	// Create controllers
	controllers := &router.Controllers{
		Item:    controller.NewItemController(store, notifier, imageService),
		Admin:   controller.NewAdminController(sessions, store, driveService, strings.HasPrefix(cfg.BaseURL, "https://")),
		Catalog: controller.NewCatalogController(store, catalogService),
	}

	// Setup routes using standard http router
	mux := http.NewServeMux()
	router.SetupRoutes(mux, controllers)

	return &App{
		Handler: mux,
		Store:   store,
		conn:    conn,
	}, nil
}
