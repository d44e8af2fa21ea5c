package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pantry-hub/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// itemRepository implements the ItemRepository interface using PostgreSQL.
type itemRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewItemRepository creates a new PostgreSQL-backed item repository.
func NewItemRepository(pool *pgxpool.Pool, logger zerolog.Logger) ItemRepository {
	return &itemRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "item").Logger(),
	}
}

const itemColumns = `id, pantry_code, name, quantity, unit, expiry_date, created_at, updated_at`

func scanItem(row pgx.Row) (*model.Item, error) {
	var (
		item   model.Item
		expiry *time.Time
	)
	err := row.Scan(&item.ID, &item.PantryCode, &item.Name, &item.Quantity, &item.Unit, &expiry, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	item.ExpiryDate = dateString(expiry)
	return &item, nil
}

// Create inserts an item.
func (r *itemRepository) Create(ctx context.Context, tx pgx.Tx, item *model.Item) error {
	query := `
		INSERT INTO items (id, pantry_code, name, quantity, unit, expiry_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	var q querier = r.pool
	if tx != nil {
		q = tx
	}

	_, err := q.Exec(ctx, query,
		item.ID, item.PantryCode, item.Name, item.Quantity, item.Unit, dateParam(item.ExpiryDate), item.CreatedAt, item.UpdatedAt)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("pantry_code", item.PantryCode).
			Str("item_id", item.ID.String()).
			Msg("failed to create item")
		return fmt.Errorf("failed to create item: %w", err)
	}

	r.logger.Debug().Str("item_id", item.ID.String()).Msg("item created successfully")
	return nil
}

// GetByID retrieves an item within a pantry.
func (r *itemRepository) GetByID(ctx context.Context, pantryCode string, id uuid.UUID) (*model.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE pantry_code = $1 AND id = $2`

	item, err := scanItem(r.pool.QueryRow(ctx, query, pantryCode, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("item_id", id.String()).Msg("item not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("item_id", id.String()).Msg("failed to query item")
		return nil, fmt.Errorf("failed to query item: %w", err)
	}
	return item, nil
}

// ListByPantry retrieves all items in a pantry, soonest expiry first.
func (r *itemRepository) ListByPantry(ctx context.Context, pantryCode string) ([]model.Item, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM items
		WHERE pantry_code = $1
		ORDER BY expiry_date ASC NULLS LAST, name
	`
	return r.list(ctx, query, pantryCode)
}

// ListExpiringBetween retrieves items whose expiry date falls within [from, to].
func (r *itemRepository) ListExpiringBetween(ctx context.Context, from, to time.Time) ([]model.Item, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM items
		WHERE expiry_date IS NOT NULL AND expiry_date BETWEEN $1::date AND $2::date
		ORDER BY pantry_code, expiry_date
	`
	return r.list(ctx, query, dateOnly(from), dateOnly(to))
}

func (r *itemRepository) list(ctx context.Context, query string, args ...any) ([]model.Item, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query items")
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	items := []model.Item{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan item row")
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, *item)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating item rows")
		return nil, fmt.Errorf("error iterating items: %w", err)
	}

	return items, nil
}

// Update writes every mutable field of the item.
func (r *itemRepository) Update(ctx context.Context, item *model.Item) error {
	query := `
		UPDATE items
		SET name = $3, quantity = $4, unit = $5, expiry_date = $6, updated_at = $7
		WHERE pantry_code = $1 AND id = $2
	`

	tag, err := r.pool.Exec(ctx, query,
		item.PantryCode, item.ID, item.Name, item.Quantity, item.Unit, dateParam(item.ExpiryDate), item.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("item_id", item.ID.String()).Msg("failed to update item")
		return fmt.Errorf("failed to update item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrItemNotFound
	}
	return nil
}

// Delete removes an item, reporting whether it existed.
func (r *itemRepository) Delete(ctx context.Context, pantryCode string, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM items WHERE pantry_code = $1 AND id = $2`, pantryCode, id)
	if err != nil {
		r.logger.Error().Err(err).Str("item_id", id.String()).Msg("failed to delete item")
		return false, fmt.Errorf("failed to delete item: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
