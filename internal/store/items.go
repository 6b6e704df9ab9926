package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erazemk/algorithmia/internal/model"
)

const itemColumns = `id, name, description, type, effect_health, effect_experience, effect_strength, created_at`

// CreateItem inserts a catalog item. An empty description falls back to the default.
func CreateItem(ctx context.Context, db *sql.DB, item *model.Item) (*model.Item, error) {
	description := item.Description
	if description == "" {
		description = model.DefaultItemDescription
	}

	result, err := db.ExecContext(ctx,
		`INSERT INTO items (name, description, type, effect_health, effect_experience, effect_strength)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		item.Name, description, item.Type,
		item.Effect.Health, item.Effect.Experience, item.Effect.Strength,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("creating item: %w: name %q already exists", model.ErrValidation, item.Name)
		}
		return nil, fmt.Errorf("creating item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting item id: %w", err)
	}

	return GetItem(ctx, db, id)
}

// GetItem returns an item by ID, or nil if missing.
func GetItem(ctx context.Context, db *sql.DB, id int64) (*model.Item, error) {
	item := &model.Item{}
	err := db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE id = ?`, id,
	).Scan(&item.ID, &item.Name, &item.Description, &item.Type,
		&item.Effect.Health, &item.Effect.Experience, &item.Effect.Strength, &item.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	return item, nil
}

// ListItems returns all catalog items ordered by type, then name.
func ListItems(ctx context.Context, db *sql.DB) ([]model.Item, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM items ORDER BY type, name`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	items := []model.Item{}
	for rows.Next() {
		var item model.Item
		if err := rows.Scan(&item.ID, &item.Name, &item.Description, &item.Type,
			&item.Effect.Health, &item.Effect.Experience, &item.Effect.Strength, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// CountItems returns the number of catalog items.
func CountItems(ctx context.Context, db *sql.DB) (int, error) {
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM items`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting items: %w", err)
	}
	return n, nil
}

// MissingItems returns the ids not present in the catalog, deduplicated.
func MissingItems(ctx context.Context, db *sql.DB, ids []int64) ([]int64, error) {
	var missing []int64
	seen := map[int64]bool{}
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		item, err := GetItem(ctx, db, id)
		if err != nil {
			return nil, err
		}
		if item == nil {
			missing = append(missing, id)
		}
	}
	return missing, nil
}
