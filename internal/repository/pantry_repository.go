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

// pantryRepository implements the PantryRepository interface using PostgreSQL.
type pantryRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPantryRepository creates a new PostgreSQL-backed pantry repository.
func NewPantryRepository(pool *pgxpool.Pool, logger zerolog.Logger) PantryRepository {
	return &pantryRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "pantry").Logger(),
	}
}

func (r *pantryRepository) q(tx pgx.Tx) querier {
	if tx != nil {
		return tx
	}
	return r.pool
}

// BeginTx starts a new database transaction.
func (r *pantryRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// Create inserts a pantry row.
func (r *pantryRepository) Create(ctx context.Context, tx pgx.Tx, pantry *model.Pantry) error {
	query := `
		INSERT INTO pantries (code, name, color, description, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.q(tx).Exec(ctx, query,
		pantry.Code, pantry.Name, pantry.Color, pantry.Description, pantry.CreatedBy, pantry.CreatedAt, pantry.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrCodeTaken
		}
		r.logger.Error().Err(err).Str("pantry_code", pantry.Code).Msg("failed to create pantry")
		return fmt.Errorf("failed to create pantry: %w", err)
	}

	r.logger.Debug().Str("pantry_code", pantry.Code).Msg("pantry created successfully")
	return nil
}

// CodeExists reports whether a join code is already taken.
func (r *pantryRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM pantries WHERE code = $1)`, code).Scan(&exists)
	if err != nil {
		r.logger.Error().Err(err).Str("pantry_code", code).Msg("failed to check pantry code")
		return false, fmt.Errorf("failed to check pantry code: %w", err)
	}
	return exists, nil
}

// GetByCode retrieves a pantry with its members.
func (r *pantryRepository) GetByCode(ctx context.Context, code string) (*model.Pantry, error) {
	return r.get(ctx, r.pool, code, false)
}

// GetForUpdate retrieves a pantry with its members and locks the pantry row.
func (r *pantryRepository) GetForUpdate(ctx context.Context, tx pgx.Tx, code string) (*model.Pantry, error) {
	if tx == nil {
		return nil, fmt.Errorf("GetForUpdate requires a transaction")
	}
	return r.get(ctx, tx, code, true)
}

func (r *pantryRepository) get(ctx context.Context, q querier, code string, lock bool) (*model.Pantry, error) {
	query := `
		SELECT code, name, color, description, COALESCE(created_by, '00000000-0000-0000-0000-000000000000'), created_at, updated_at
		FROM pantries
		WHERE code = $1
	`
	if lock {
		query += ` FOR UPDATE`
	}

	var p model.Pantry
	err := q.QueryRow(ctx, query, code).Scan(
		&p.Code, &p.Name, &p.Color, &p.Description, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("pantry_code", code).Msg("pantry not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("pantry_code", code).Msg("failed to query pantry")
		return nil, fmt.Errorf("failed to query pantry: %w", err)
	}

	members, err := r.members(ctx, q, code)
	if err != nil {
		return nil, err
	}
	p.Members = members

	return &p, nil
}

// ListByMember retrieves every pantry the user belongs to.
func (r *pantryRepository) ListByMember(ctx context.Context, userID uuid.UUID) ([]model.Pantry, error) {
	query := `
		SELECT p.code, p.name, p.color, p.description, COALESCE(p.created_by, '00000000-0000-0000-0000-000000000000'),
		       p.created_at, p.updated_at,
		       ARRAY(SELECT m.user_id FROM pantry_members m WHERE m.pantry_code = p.code ORDER BY m.joined_at)
		FROM pantries p
		JOIN pantry_members pm ON pm.pantry_code = p.code
		WHERE pm.user_id = $1
		ORDER BY p.name, p.code
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to query pantries")
		return nil, fmt.Errorf("failed to query pantries: %w", err)
	}
	defer rows.Close()

	pantries := []model.Pantry{}
	for rows.Next() {
		var p model.Pantry
		err := rows.Scan(&p.Code, &p.Name, &p.Color, &p.Description, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt, &p.Members)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan pantry row")
			return nil, fmt.Errorf("failed to scan pantry: %w", err)
		}
		pantries = append(pantries, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating pantry rows")
		return nil, fmt.Errorf("error iterating pantries: %w", err)
	}

	return pantries, nil
}

// Update writes name, color and description.
func (r *pantryRepository) Update(ctx context.Context, pantry *model.Pantry) error {
	query := `
		UPDATE pantries
		SET name = $2, color = $3, description = $4, updated_at = $5
		WHERE code = $1
	`

	tag, err := r.pool.Exec(ctx, query, pantry.Code, pantry.Name, pantry.Color, pantry.Description, pantry.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("pantry_code", pantry.Code).Msg("failed to update pantry")
		return fmt.Errorf("failed to update pantry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrPantryNotFound
	}
	return nil
}

// Delete removes a pantry and everything that belongs to it.
func (r *pantryRepository) Delete(ctx context.Context, tx pgx.Tx, code string) error {
	tag, err := r.q(tx).Exec(ctx, `DELETE FROM pantries WHERE code = $1`, code)
	if err != nil {
		r.logger.Error().Err(err).Str("pantry_code", code).Msg("failed to delete pantry")
		return fmt.Errorf("failed to delete pantry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrPantryNotFound
	}

	r.logger.Debug().Str("pantry_code", code).Msg("pantry deleted")
	return nil
}

// AddMember adds a user to a pantry.
func (r *pantryRepository) AddMember(ctx context.Context, tx pgx.Tx, code string, userID uuid.UUID) error {
	query := `INSERT INTO pantry_members (pantry_code, user_id) VALUES ($1, $2)`

	if _, err := r.q(tx).Exec(ctx, query, code, userID); err != nil {
		if isUniqueViolation(err) {
			return model.ErrAlreadyMember
		}
		r.logger.Error().Err(err).Str("pantry_code", code).Str("user_id", userID.String()).Msg("failed to add member")
		return fmt.Errorf("failed to add pantry member: %w", err)
	}
	return nil
}

// RemoveMember removes a user and returns how many members remain.
func (r *pantryRepository) RemoveMember(ctx context.Context, tx pgx.Tx, code string, userID uuid.UUID) (int, error) {
	q := r.q(tx)

	tag, err := q.Exec(ctx, `DELETE FROM pantry_members WHERE pantry_code = $1 AND user_id = $2`, code, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("pantry_code", code).Str("user_id", userID.String()).Msg("failed to remove member")
		return 0, fmt.Errorf("failed to remove pantry member: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return 0, model.ErrNotMember
	}

	var remaining int
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM pantry_members WHERE pantry_code = $1`, code).Scan(&remaining); err != nil {
		r.logger.Error().Err(err).Str("pantry_code", code).Msg("failed to count members")
		return 0, fmt.Errorf("failed to count pantry members: %w", err)
	}
	return remaining, nil
}

// IsMember reports whether the user belongs to the pantry.
func (r *pantryRepository) IsMember(ctx context.Context, code string, userID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM pantry_members WHERE pantry_code = $1 AND user_id = $2)`

	var member bool
	if err := r.pool.QueryRow(ctx, query, code, userID).Scan(&member); err != nil {
		r.logger.Error().Err(err).Str("pantry_code", code).Str("user_id", userID.String()).Msg("failed to check membership")
		return false, fmt.Errorf("failed to check membership: %w", err)
	}
	return member, nil
}

// Members lists the user IDs belonging to a pantry.
func (r *pantryRepository) Members(ctx context.Context, code string) ([]uuid.UUID, error) {
	return r.members(ctx, r.pool, code)
}

func (r *pantryRepository) members(ctx context.Context, q querier, code string) ([]uuid.UUID, error) {
	rows, err := q.Query(ctx, `SELECT user_id FROM pantry_members WHERE pantry_code = $1 ORDER BY joined_at, user_id`, code)
	if err != nil {
		r.logger.Error().Err(err).Str("pantry_code", code).Msg("failed to query members")
		return nil, fmt.Errorf("failed to query pantry members: %w", err)
	}
	defer rows.Close()

	members := []uuid.UUID{}
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan member row")
			return nil, fmt.Errorf("failed to scan pantry member: %w", err)
		}
		members = append(members, id)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating member rows")
		return nil, fmt.Errorf("error iterating pantry members: %w", err)
	}

	return members, nil
}
