package repository

import (
	"context"
	"fmt"
	"time"

	"pantry-hub/internal/freshness"
	"pantry-hub/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// notificationRepository implements the NotificationRepository interface using PostgreSQL.
type notificationRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewNotificationRepository creates a new PostgreSQL-backed notification repository.
func NewNotificationRepository(pool *pgxpool.Pool, logger zerolog.Logger) NotificationRepository {
	return &notificationRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "notification").Logger(),
	}
}

// CreateBatch inserts notifications, skipping duplicates.
func (r *notificationRepository) CreateBatch(ctx context.Context, notifications []model.Notification) (int, error) {
	if len(notifications) == 0 {
		return 0, nil
	}

	query := `
		INSERT INTO notifications (id, user_id, pantry_code, item_id, item_name, status, expiry_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id, item_id, status, expiry_date) DO NOTHING
	`

	batch := &pgx.Batch{}
	for _, n := range notifications {
		batch.Queue(query, n.ID, n.UserID, n.PantryCode, n.ItemID, n.ItemName, string(n.Status), dateParam(n.ExpiryDate), n.CreatedAt)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	inserted := 0
	for i := 0; i < len(notifications); i++ {
		tag, err := results.Exec()
		if err != nil {
			r.logger.Error().
				Err(err).
				Str("user_id", notifications[i].UserID.String()).
				Str("item_id", notifications[i].ItemID.String()).
				Msg("failed to create notification")
			return inserted, fmt.Errorf("failed to create notification: %w", err)
		}
		inserted += int(tag.RowsAffected())
	}

	r.logger.Debug().
		Int("queued", len(notifications)).
		Int("inserted", inserted).
		Msg("notifications created")

	return inserted, nil
}

// ListByUser retrieves a user's notifications, newest first.
func (r *notificationRepository) ListByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit int) ([]model.Notification, error) {
	query := `
		SELECT id, user_id, pantry_code, item_id, item_name, status, expiry_date, created_at, read_at
		FROM notifications
		WHERE user_id = $1 AND ($2 = FALSE OR read_at IS NULL)
		ORDER BY created_at DESC
		LIMIT $3
	`

	rows, err := r.pool.Query(ctx, query, userID, unreadOnly, limit)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to query notifications")
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	notifications := []model.Notification{}
	for rows.Next() {
		var (
			n      model.Notification
			status string
			expiry *time.Time
		)
		err := rows.Scan(&n.ID, &n.UserID, &n.PantryCode, &n.ItemID, &n.ItemName, &status, &expiry, &n.CreatedAt, &n.ReadAt)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan notification row")
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		n.Status = freshness.Status(status)
		n.ExpiryDate = dateString(expiry)
		notifications = append(notifications, n)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating notification rows")
		return nil, fmt.Errorf("error iterating notifications: %w", err)
	}

	return notifications, nil
}

// MarkRead marks a notification read, reporting whether it existed.
func (r *notificationRepository) MarkRead(ctx context.Context, userID, id uuid.UUID, at time.Time) (bool, error) {
	query := `UPDATE notifications SET read_at = COALESCE(read_at, $3) WHERE user_id = $1 AND id = $2`

	tag, err := r.pool.Exec(ctx, query, userID, id, at)
	if err != nil {
		r.logger.Error().Err(err).Str("notification_id", id.String()).Msg("failed to mark notification read")
		return false, fmt.Errorf("failed to mark notification read: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
