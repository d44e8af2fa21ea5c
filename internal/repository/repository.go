package repository

import (
	"context"
	"errors"
	"time"

	"pantry-hub/internal/freshness"
	"pantry-hub/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// UserRepository defines data access operations for user accounts.
type UserRepository interface {
	// Create inserts a new user. Returns model.ErrEmailTaken if the email is already registered.
	Create(ctx context.Context, user *model.User) error

	// GetByID retrieves a user by ID. Returns nil, nil when not found.
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)

	// GetByEmail retrieves a user by normalised email. Returns nil, nil when not found.
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// UpdateDisplayName sets the user's display name.
	UpdateDisplayName(ctx context.Context, id uuid.UUID, displayName string) error

	// UpdatePhotoURL sets the user's profile photo reference.
	UpdatePhotoURL(ctx context.Context, id uuid.UUID, photoURL string) error
}

// PantryRepository defines data access operations for pantries and their members.
// Methods taking a pgx.Tx run on the pool when tx is nil.
type PantryRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// Create inserts a pantry row. Members are added separately with AddMember.
	// Returns ErrCodeTaken if another pantry already has the code.
	Create(ctx context.Context, tx pgx.Tx, pantry *model.Pantry) error

	// CodeExists reports whether a join code is already taken.
	CodeExists(ctx context.Context, code string) (bool, error)

	// GetByCode retrieves a pantry with its members. Returns nil, nil when not found.
	GetByCode(ctx context.Context, code string) (*model.Pantry, error)

	// GetForUpdate retrieves a pantry with its members and locks the pantry
	// row until tx ends. Returns nil, nil when not found.
	GetForUpdate(ctx context.Context, tx pgx.Tx, code string) (*model.Pantry, error)

	// ListByMember retrieves every pantry the user belongs to.
	ListByMember(ctx context.Context, userID uuid.UUID) ([]model.Pantry, error)

	// Update writes name, color and description.
	Update(ctx context.Context, pantry *model.Pantry) error

	// Delete removes a pantry and, by cascade, its items, shopping list and members.
	Delete(ctx context.Context, tx pgx.Tx, code string) error

	// AddMember adds a user to a pantry.
	AddMember(ctx context.Context, tx pgx.Tx, code string, userID uuid.UUID) error

	// RemoveMember removes a user and returns how many members remain.
	RemoveMember(ctx context.Context, tx pgx.Tx, code string, userID uuid.UUID) (int, error)

	// IsMember reports whether the user belongs to the pantry.
	IsMember(ctx context.Context, code string, userID uuid.UUID) (bool, error)

	// Members lists the user IDs belonging to a pantry.
	Members(ctx context.Context, code string) ([]uuid.UUID, error)
}

// ItemRepository defines data access operations for pantry items.
type ItemRepository interface {
	// Create inserts an item. Runs on the pool when tx is nil.
	Create(ctx context.Context, tx pgx.Tx, item *model.Item) error

	// GetByID retrieves an item within a pantry. Returns nil, nil when not found.
	GetByID(ctx context.Context, pantryCode string, id uuid.UUID) (*model.Item, error)

	// ListByPantry retrieves all items in a pantry, soonest expiry first.
	ListByPantry(ctx context.Context, pantryCode string) ([]model.Item, error)

	// ListExpiringBetween retrieves items, across all pantries, whose expiry
	// date falls within [from, to].
	ListExpiringBetween(ctx context.Context, from, to time.Time) ([]model.Item, error)

	// Update writes every mutable field of the item.
	Update(ctx context.Context, item *model.Item) error

	// Delete removes an item, reporting whether it existed.
	Delete(ctx context.Context, pantryCode string, id uuid.UUID) (bool, error)
}

// ShoppingRepository defines data access operations for shopping list entries.
type ShoppingRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// Create inserts a shopping list entry.
	Create(ctx context.Context, item *model.ShoppingListItem) error

	// GetByID retrieves an entry within a pantry. Returns nil, nil when not found.
	GetByID(ctx context.Context, pantryCode string, id uuid.UUID) (*model.ShoppingListItem, error)

	// ListByPantry retrieves a pantry's shopping list, oldest first.
	ListByPantry(ctx context.Context, pantryCode string) ([]model.ShoppingListItem, error)

	// Update writes every mutable field of the entry.
	Update(ctx context.Context, item *model.ShoppingListItem) error

	// Delete removes an entry, reporting whether it existed. Runs on the pool when tx is nil.
	Delete(ctx context.Context, tx pgx.Tx, pantryCode string, id uuid.UUID) (bool, error)
}

// NotificationRepository defines data access operations for user notifications.
type NotificationRepository interface {
	// CreateBatch inserts notifications, skipping any already recorded for the
	// same user, item, status and expiry date. Returns how many were inserted.
	CreateBatch(ctx context.Context, notifications []model.Notification) (int, error)

	// ListByUser retrieves a user's notifications, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit int) ([]model.Notification, error)

	// MarkRead marks a notification read, reporting whether it existed.
	MarkRead(ctx context.Context, userID, id uuid.UUID, at time.Time) (bool, error)
}

// querier is the subset of pgx shared by *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ErrCodeTaken is returned by PantryRepository.Create when the join code is
// already in use.
var ErrCodeTaken = errors.New("pantry code already taken")

// uniqueViolation is the PostgreSQL SQLSTATE for unique_violation.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// dateParam converts an expiry date string into a DATE parameter; nil stores NULL.
func dateParam(value string) *time.Time {
	t, ok := freshness.ParseDate(value, time.UTC)
	if !ok {
		return nil
	}
	return &t
}

// dateString renders a scanned DATE column.
func dateString(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(freshness.DateLayout)
}

// dateOnly keeps the calendar date of t, dropping its clock and zone.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
