package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"
)

// Item store drivers
const (
	DriverREST     = "rest"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

const defaultAdminPassword = "admin123"

// Config holds all configuration read from the environment
type Config struct {
	// Remote backend (required)
	SupabaseURL     string
	SupabaseAnonKey string

	// Item store
	ItemStoreDriver string
	DatabaseURL     string

	// Purchase notifications
	WebhookURL string

	// Admin identity
	AdminUsername string
	AdminEmail    string
	AdminPassword string

	// HTTP server
	Port        string
	BaseURL     string
	HTTPTimeout time.Duration

	// Images and catalog
	ImageCacheDir         string
	GoogleCredentialsPath string
	ChromePath            string
}

// Load reads the configuration from environment variables.
// Missing SUPABASE_URL or SUPABASE_ANON_KEY is a fatal configuration error.
func Load() (*Config, error) {
	cfg := &Config{
		SupabaseURL:           strings.TrimRight(strings.TrimSpace(os.Getenv("SUPABASE_URL")), "/"),
		SupabaseAnonKey:       strings.TrimSpace(os.Getenv("SUPABASE_ANON_KEY")),
		ItemStoreDriver:       strings.ToLower(getEnv("ITEM_STORE_DRIVER", DriverREST)),
		WebhookURL:            strings.TrimSpace(os.Getenv("DISCORD_WEBHOOK_URL")),
		AdminUsername:         getEnv("ADMIN_USERNAME", "admin"),
		AdminEmail:            getEnv("ADMIN_EMAIL", "admin@example.com"),
		AdminPassword:         os.Getenv("ADMIN_PASSWORD"),
		Port:                  normalizePort(getEnv("PORT", "8080")),
		ImageCacheDir:         getEnv("IMAGE_CACHE_DIR", "cache/images"),
		GoogleCredentialsPath: strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")),
		ChromePath:            strings.TrimSpace(os.Getenv("CHROME_PATH")),
		HTTPTimeout:           10 * time.Second,
	}

	if cfg.SupabaseURL == "" || cfg.SupabaseAnonKey == "" {
		return nil, fmt.Errorf("missing remote service configuration: set SUPABASE_URL and SUPABASE_ANON_KEY")
	}
	if _, err := url.ParseRequestURI(cfg.SupabaseURL); err != nil {
		return nil, fmt.Errorf("invalid SUPABASE_URL: %w", err)
	}

	if raw := strings.TrimSpace(os.Getenv("HTTP_TIMEOUT")); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
		}
		cfg.HTTPTimeout = timeout
	}

	switch cfg.ItemStoreDriver {
	case DriverREST, DriverMemory:
	case DriverPostgres:
		connStr, err := DatabaseURLFromEnv()
		if err != nil {
			return nil, err
		}
		cfg.DatabaseURL = connStr
	default:
		return nil, fmt.Errorf("unknown ITEM_STORE_DRIVER %q (valid: %s, %s, %s)", cfg.ItemStoreDriver, DriverREST, DriverPostgres, DriverMemory)
	}

	if cfg.AdminPassword == "" {
		log.Printf("⚠️  ADMIN_PASSWORD is not set, using the default admin password")
		cfg.AdminPassword = defaultAdminPassword
	}

	if cfg.WebhookURL == "" {
		log.Printf("⚠️  DISCORD_WEBHOOK_URL is not set, purchase requests will be rejected")
	}

	cfg.BaseURL = strings.TrimRight(getEnv("BASE_URL", "http://localhost:"+cfg.Port), "/")

	return cfg, nil
}

// DatabaseURLFromEnv returns DATABASE_URL, or builds a connection string from
// DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME and DB_SSLMODE
func DatabaseURLFromEnv() (string, error) {
	if connStr := os.Getenv("DATABASE_URL"); connStr != "" {
		return connStr, nil
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")
	sslmode := os.Getenv("DB_SSLMODE")

	if host == "" || user == "" || dbname == "" {
		return "", fmt.Errorf("database connection variables not set. Set DATABASE_URL or DB_HOST, DB_USER, DB_NAME")
	}

	if port == "" {
		port = "5432"
	}
	if sslmode == "" {
		sslmode = "require"
	}

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode), nil
}

// Addr returns the listen address for the HTTP server
func (c *Config) Addr() string {
	return "0.0.0.0:" + c.Port
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

// normalizePort removes a leading colon (PORT from some hosts includes it)
func normalizePort(port string) string {
	return strings.TrimPrefix(port, ":")
}
