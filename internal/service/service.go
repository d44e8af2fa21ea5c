package service

import (
	"context"
	"io"
	"strings"

	"pantry-hub/internal/model"

	"github.com/google/uuid"
)

// AuthService defines account registration and sign-in.
type AuthService interface {
	// Register creates an account and returns a signed token for it.
	Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error)

	// Login verifies credentials and returns a signed token.
	Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error)

	// Authenticate resolves a bearer token to a user ID.
	Authenticate(token string) (uuid.UUID, error)
}

// AccountService defines profile operations for the signed-in user.
type AccountService interface {
	// GetProfile retrieves the user's profile.
	GetProfile(ctx context.Context, userID uuid.UUID) (*model.User, error)

	// UpdateProfile applies field-level profile changes.
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *model.UpdateProfileRequest) (*model.User, error)

	// UploadPhoto stores a profile photo and records its URL on the profile.
	UploadPhoto(ctx context.Context, userID uuid.UUID, contentType string, body io.Reader) (*model.User, error)
}

// PantryService defines pantry lifecycle and membership operations.
type PantryService interface {
	// List retrieves the pantries the user is a member of.
	List(ctx context.Context, userID uuid.UUID) ([]model.Pantry, error)

	// Create creates a pantry with a fresh join code; the creator is its first member.
	Create(ctx context.Context, userID uuid.UUID, req *model.CreatePantryRequest) (*model.Pantry, error)

	// Join adds the user to the pantry with the given code.
	Join(ctx context.Context, userID uuid.UUID, code string) (*model.Pantry, error)

	// Get retrieves a pantry the user is a member of.
	Get(ctx context.Context, userID uuid.UUID, code string) (*model.Pantry, error)

	// Update applies field-level pantry changes.
	Update(ctx context.Context, userID uuid.UUID, code string, req *model.UpdatePantryRequest) (*model.Pantry, error)

	// Delete removes the pantry with all of its items and shopping list.
	Delete(ctx context.Context, userID uuid.UUID, code string) error

	// Leave removes the user from the pantry, deleting it when nobody remains.
	Leave(ctx context.Context, userID uuid.UUID, code string) error
}

// ItemService defines pantry item operations.
type ItemService interface {
	// List retrieves the pantry's items with derived freshness, optionally
	// filtered by status. An empty status returns every item.
	List(ctx context.Context, userID uuid.UUID, code string, status string) ([]model.Item, error)

	// Create adds an item to the pantry.
	Create(ctx context.Context, userID uuid.UUID, code string, req *model.CreateItemRequest) (*model.Item, error)

	// Update applies field-level item changes.
	Update(ctx context.Context, userID uuid.UUID, code string, id uuid.UUID, req *model.UpdateItemRequest) (*model.Item, error)

	// Delete removes an item.
	Delete(ctx context.Context, userID uuid.UUID, code string, id uuid.UUID) error
}

// ShoppingService defines shopping list operations.
type ShoppingService interface {
	// List retrieves the pantry's shopping list.
	List(ctx context.Context, userID uuid.UUID, code string) ([]model.ShoppingListItem, error)

	// Create adds an entry to the shopping list.
	Create(ctx context.Context, userID uuid.UUID, code string, req *model.CreateShoppingItemRequest) (*model.ShoppingListItem, error)

	// Update applies field-level entry changes.
	Update(ctx context.Context, userID uuid.UUID, code string, id uuid.UUID, req *model.UpdateShoppingItemRequest) (*model.ShoppingListItem, error)

	// Delete removes an entry.
	Delete(ctx context.Context, userID uuid.UUID, code string, id uuid.UUID) error

	// Purchase moves an entry from the shopping list into the pantry's items.
	Purchase(ctx context.Context, userID uuid.UUID, code string, id uuid.UUID, req *model.PurchaseRequest) (*model.Item, error)
}

// RecipeService defines recipe search operations.
type RecipeService interface {
	// Search runs a free-text recipe search.
	Search(ctx context.Context, query string) ([]model.Recipe, error)

	// Suggest searches recipes using the pantry's items, preferring those
	// that are about to expire.
	Suggest(ctx context.Context, userID uuid.UUID, code string) ([]model.Recipe, error)
}

// NotificationService defines notification inbox and schedule operations.
type NotificationService interface {
	// List retrieves the user's notifications, newest first.
	List(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]model.Notification, error)

	// MarkRead marks one of the user's notifications read.
	MarkRead(ctx context.Context, userID, id uuid.UUID) error

	// GetSchedule returns the daily delivery time.
	GetSchedule(ctx context.Context) (model.Schedule, error)

	// SetSchedule stores a new daily delivery time and re-arms the scheduler.
	SetSchedule(ctx context.Context, schedule model.Schedule) (model.Schedule, error)
}

// RecipeSearcher is the external recipe search backend.
type RecipeSearcher interface {
	Search(ctx context.Context, query string) ([]model.Recipe, error)
}

// ScheduleStore persists the daily notification time.
type ScheduleStore interface {
	Get(ctx context.Context) (model.Schedule, error)
	Set(ctx context.Context, schedule model.Schedule) error
}

// Rescheduler replaces the armed notification timer after a schedule change.
type Rescheduler interface {
	Reschedule()
}

// normalizeCode canonicalises a user-entered join code.
func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
