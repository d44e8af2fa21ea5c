package repository

import (
	"context"
	"errors"
	"fmt"

	"pantry-hub/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// shoppingRepository implements the ShoppingRepository interface using PostgreSQL.
type shoppingRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewShoppingRepository creates a new PostgreSQL-backed shopping list repository.
func NewShoppingRepository(pool *pgxpool.Pool, logger zerolog.Logger) ShoppingRepository {
	return &shoppingRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "shopping").Logger(),
	}
}

const shoppingColumns = `id, pantry_code, name, quantity, unit, notes, created_at, updated_at`

func scanShoppingItem(row pgx.Row) (*model.ShoppingListItem, error) {
	var s model.ShoppingListItem
	err := row.Scan(&s.ID, &s.PantryCode, &s.Name, &s.Quantity, &s.Unit, &s.Notes, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// BeginTx starts a new database transaction.
func (r *shoppingRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// Create inserts a shopping list entry.
func (r *shoppingRepository) Create(ctx context.Context, item *model.ShoppingListItem) error {
	query := `
		INSERT INTO shopping_items (id, pantry_code, name, quantity, unit, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		item.ID, item.PantryCode, item.Name, item.Quantity, item.Unit, item.Notes, item.CreatedAt, item.UpdatedAt)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("pantry_code", item.PantryCode).
			Str("shopping_item_id", item.ID.String()).
			Msg("failed to create shopping item")
		return fmt.Errorf("failed to create shopping item: %w", err)
	}
	return nil
}

// GetByID retrieves an entry within a pantry.
func (r *shoppingRepository) GetByID(ctx context.Context, pantryCode string, id uuid.UUID) (*model.ShoppingListItem, error) {
	query := `SELECT ` + shoppingColumns + ` FROM shopping_items WHERE pantry_code = $1 AND id = $2`

	item, err := scanShoppingItem(r.pool.QueryRow(ctx, query, pantryCode, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("shopping_item_id", id.String()).Msg("failed to query shopping item")
		return nil, fmt.Errorf("failed to query shopping item: %w", err)
	}
	return item, nil
}

// ListByPantry retrieves a pantry's shopping list, oldest first.
func (r *shoppingRepository) ListByPantry(ctx context.Context, pantryCode string) ([]model.ShoppingListItem, error) {
	query := `
		SELECT ` + shoppingColumns + `
		FROM shopping_items
		WHERE pantry_code = $1
		ORDER BY created_at, name
	`

	rows, err := r.pool.Query(ctx, query, pantryCode)
	if err != nil {
		r.logger.Error().Err(err).Str("pantry_code", pantryCode).Msg("failed to query shopping items")
		return nil, fmt.Errorf("failed to query shopping items: %w", err)
	}
	defer rows.Close()

	items := []model.ShoppingListItem{}
	for rows.Next() {
		item, err := scanShoppingItem(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan shopping item row")
			return nil, fmt.Errorf("failed to scan shopping item: %w", err)
		}
		items = append(items, *item)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating shopping item rows")
		return nil, fmt.Errorf("error iterating shopping items: %w", err)
	}

	return items, nil
}

// Update writes every mutable field of the entry.
func (r *shoppingRepository) Update(ctx context.Context, item *model.ShoppingListItem) error {
	query := `
		UPDATE shopping_items
		SET name = $3, quantity = $4, unit = $5, notes = $6, updated_at = $7
		WHERE pantry_code = $1 AND id = $2
	`

	tag, err := r.pool.Exec(ctx, query,
		item.PantryCode, item.ID, item.Name, item.Quantity, item.Unit, item.Notes, item.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("shopping_item_id", item.ID.String()).Msg("failed to update shopping item")
		return fmt.Errorf("failed to update shopping item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrShoppingItemNotFound
	}
	return nil
}

// Delete removes an entry, reporting whether it existed.
func (r *shoppingRepository) Delete(ctx context.Context, tx pgx.Tx, pantryCode string, id uuid.UUID) (bool, error) {
	var q querier = r.pool
	if tx != nil {
		q = tx
	}

	tag, err := q.Exec(ctx, `DELETE FROM shopping_items WHERE pantry_code = $1 AND id = $2`, pantryCode, id)
	if err != nil {
		r.logger.Error().Err(err).Str("shopping_item_id", id.String()).Msg("failed to delete shopping item")
		return false, fmt.Errorf("failed to delete shopping item: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
