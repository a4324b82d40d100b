package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"gamevault/models"
)

const itemColumns = `id::text, title, price::float8, image, description, category, in_stock, created_at, updated_at`

// ItemRepository handles database operations for items in PostgreSQL
type ItemRepository struct {
	db *sql.DB
}

// NewItemRepository creates a new ItemRepository
func NewItemRepository(conn *sql.DB) *ItemRepository {
	return &ItemRepository{db: conn}
}

// Ensure ItemRepository implements ItemRepositoryInterface
var _ ItemRepositoryInterface = (*ItemRepository)(nil)

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanItem(row rowScanner) (*models.Item, error) {
	var item models.Item
	err := row.Scan(
		&item.ID,
		&item.Title,
		&item.Price,
		&item.Image,
		&item.Description,
		&item.Category,
		&item.InStock,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// List retrieves all items ordered by created_at DESC
func (r *ItemRepository) List(ctx context.Context) ([]models.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		log.Printf("❌ Error listing items: %v", err)
		return nil, fmt.Errorf("%w: failed to list items: %w", models.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	items := make([]models.Item, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			log.Printf("❌ Error scanning item: %v", err)
			return nil, fmt.Errorf("%w: failed to scan item: %w", models.ErrStoreUnavailable, err)
		}
		items = append(items, *item)
	}

	if err := rows.Err(); err != nil {
		log.Printf("❌ Error iterating items: %v", err)
		return nil, fmt.Errorf("%w: failed to iterate items: %w", models.ErrStoreUnavailable, err)
	}

	log.Printf("✓ Successfully listed %d items", len(items))
	return items, nil
}

// Insert creates a new item; the database assigns id, created_at and updated_at
func (r *ItemRepository) Insert(ctx context.Context, fields models.ItemFields) (*models.Item, error) {
	query := `
		INSERT INTO items (title, price, image, description, category, in_stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING ` + itemColumns

	item, err := scanItem(r.db.QueryRowContext(ctx, query,
		fields.Title, fields.Price, fields.Image, fields.Description, fields.Category, fields.InStock))
	if err != nil {
		log.Printf("❌ Error inserting item: %v", err)
		return nil, fmt.Errorf("%w: failed to insert item: %w", models.ErrStoreUnavailable, err)
	}

	log.Printf("✓ Successfully inserted item: id=%s, title=%s", item.ID, item.Title)
	return item, nil
}

// Replace overwrites every field of an item and bumps updated_at
func (r *ItemRepository) Replace(ctx context.Context, id string, fields models.ItemFields) (*models.Item, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: id=%s", models.ErrItemNotFound, id)
	}

	query := `
		UPDATE items
		SET title = $1, price = $2, image = $3, description = $4, category = $5, in_stock = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING ` + itemColumns

	item, err := scanItem(r.db.QueryRowContext(ctx, query,
		fields.Title, fields.Price, fields.Image, fields.Description, fields.Category, fields.InStock, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: id=%s", models.ErrItemNotFound, id)
		}
		log.Printf("❌ Error replacing item %s: %v", id, err)
		return nil, fmt.Errorf("%w: failed to update item: %w", models.ErrStoreUnavailable, err)
	}

	log.Printf("✓ Successfully replaced item: id=%s", item.ID)
	return item, nil
}

// Delete removes an item by id
func (r *ItemRepository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: id=%s", models.ErrItemNotFound, id)
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		log.Printf("❌ Error deleting item %s: %v", id, err)
		return fmt.Errorf("%w: failed to delete item: %w", models.ErrStoreUnavailable, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: failed to read affected rows: %w", models.ErrStoreUnavailable, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: id=%s", models.ErrItemNotFound, id)
	}

	log.Printf("✓ Successfully deleted item: id=%s", id)
	return nil
}
