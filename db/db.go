package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// schema creates the items table the way the hosted backend defines it.
// gen_random_uuid() keeps identifier assignment on the database side.
const schema = `
CREATE TABLE IF NOT EXISTS items (
	id          uuid PRIMARY KEY DEFAULT gen_random_uuid(),
	title       text NOT NULL CHECK (title <> ''),
	price       numeric NOT NULL CHECK (price >= 0),
	image       text NOT NULL DEFAULT '',
	description text NOT NULL DEFAULT '',
	category    text NOT NULL,
	in_stock    boolean NOT NULL DEFAULT true,
	created_at  timestamptz NOT NULL DEFAULT now(),
	updated_at  timestamptz NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS items_created_at_idx ON items (created_at DESC);
`

// Open opens and pings a PostgreSQL connection through the pgx driver
func Open(ctx context.Context, connStr string) (*sql.DB, error) {
	conn, err := sql.Open("pgx", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	// Test the connection
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Printf("✓ Database connection established successfully")
	return conn, nil
}

// Migrate creates the items table if it does not exist yet
func Migrate(ctx context.Context, conn *sql.DB) error {
	if _, err := conn.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	log.Printf("✓ Database schema is up to date")
	return nil
}

// Close closes the database connection
func Close(conn *sql.DB) error {
	if conn != nil {
		return conn.Close()
	}
	return nil
}
