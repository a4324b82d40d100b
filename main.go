package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"gamevault/app"
	"gamevault/config"
)

func main() {
	envFile := pflag.String("env-file", ".env", "environment file loaded outside production")
	port := pflag.String("port", "", "port to listen on (overrides PORT)")
	pflag.Parse()

	// Load .env file in development (ignores error if file doesn't exist)
	// In production, variables should be set directly
	if os.Getenv("ENV") != "production" {
		// Use Overload to ensure .env values override system environment variables
		if err := godotenv.Overload(*envFile); err != nil {
			log.Printf("Warning: %s file not found, using system environment variables", *envFile)
		} else {
			log.Printf("Successfully loaded environment variables from %s (overriding system variables)", *envFile)
		}
	}

	if *port != "" {
		os.Setenv("PORT", *port)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	application, err := app.Initialize(context.Background(), cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer application.Close()

	// Listen on 0.0.0.0 to accept connections from all interfaces (required for Docker/Render)
	addr := cfg.Addr()
	log.Printf("Server starting on %s", addr)
	log.Printf("Storefront endpoint: GET %s/items", cfg.BaseURL)

	if err := http.ListenAndServe(addr, application.Handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
