package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"pantry-hub/internal/freshness"
	"pantry-hub/internal/model"
	"pantry-hub/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// shoppingService implements ShoppingService.
type shoppingService struct {
	shoppingRepo repository.ShoppingRepository
	itemRepo     repository.ItemRepository
	pantryRepo   repository.PantryRepository
	now          func() time.Time
	logger       zerolog.Logger
}

// NewShoppingService creates a new shopping list service.
func NewShoppingService(
	shoppingRepo repository.ShoppingRepository,
	itemRepo repository.ItemRepository,
	pantryRepo repository.PantryRepository,
	logger zerolog.Logger,
) ShoppingService {
	return &shoppingService{
		shoppingRepo: shoppingRepo,
		itemRepo:     itemRepo,
		pantryRepo:   pantryRepo,
		now:          time.Now,
		logger:       logger.With().Str("service", "shopping").Logger(),
	}
}

// List retrieves the pantry's shopping list.
func (s *shoppingService) List(ctx context.Context, userID uuid.UUID, code string) ([]model.ShoppingListItem, error) {
	code = normalizeCode(code)

	if err := requireMember(ctx, s.pantryRepo, code, userID); err != nil {
		return nil, err
	}

	entries, err := s.shoppingRepo.ListByPantry(ctx, code)
	if err != nil {
		s.logger.Error().Err(err).Str("pantry_code", code).Msg("failed to list shopping items")
		return nil, fmt.Errorf("failed to list shopping items: %w", err)
	}
	return entries, nil
}

// Create adds an entry to the shopping list.
func (s *shoppingService) Create(ctx context.Context, userID uuid.UUID, code string, req *model.CreateShoppingItemRequest) (*model.ShoppingListItem, error) {
	code = normalizeCode(code)

	if req == nil {
		return nil, model.NewValidationError("shopping item details are required")
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, model.NewValidationError("item name is required")
	}
	if req.Quantity < 0 {
		return nil, model.NewValidationError("quantity cannot be negative")
	}

	if err := requireMember(ctx, s.pantryRepo, code, userID); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	entry := &model.ShoppingListItem{
		ID:         uuid.New(),
		PantryCode: code,
		Name:       name,
		Quantity:   req.Quantity,
		Unit:       strings.TrimSpace(req.Unit),
		Notes:      strings.TrimSpace(req.Notes),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.shoppingRepo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to create shopping item: %w", err)
	}

	s.logger.Info().
		Str("pantry_code", code).
		Str("shopping_item_id", entry.ID.String()).
		Msg("shopping item created")

	return entry, nil
}

// Update applies field-level entry changes.
func (s *shoppingService) Update(ctx context.Context, userID uuid.UUID, code string, id uuid.UUID, req *model.UpdateShoppingItemRequest) (*model.ShoppingListItem, error) {
	code = normalizeCode(code)

	if req == nil {
		return nil, model.NewValidationError("shopping item update is required")
	}

	entry, err := s.get(ctx, userID, code, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, model.NewValidationError("item name cannot be empty")
		}
		entry.Name = name
	}
	if req.Quantity != nil {
		if *req.Quantity < 0 {
			return nil, model.NewValidationError("quantity cannot be negative")
		}
		entry.Quantity = *req.Quantity
	}
	if req.Unit != nil {
		entry.Unit = strings.TrimSpace(*req.Unit)
	}
	if req.Notes != nil {
		entry.Notes = strings.TrimSpace(*req.Notes)
	}
	entry.UpdatedAt = s.now().UTC()

	if err := s.shoppingRepo.Update(ctx, entry); err != nil {
		if err == model.ErrShoppingItemNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update shopping item: %w", err)
	}
	return entry, nil
}

// Delete removes an entry.
func (s *shoppingService) Delete(ctx context.Context, userID uuid.UUID, code string, id uuid.UUID) error {
	code = normalizeCode(code)

	if err := requireMember(ctx, s.pantryRepo, code, userID); err != nil {
		return err
	}

	deleted, err := s.shoppingRepo.Delete(ctx, nil, code, id)
	if err != nil {
		return fmt.Errorf("failed to delete shopping item: %w", err)
	}
	if !deleted {
		return model.ErrShoppingItemNotFound
	}
	return nil
}

// Purchase moves an entry from the shopping list into the pantry's items.
// The insert and delete commit together.
func (s *shoppingService) Purchase(ctx context.Context, userID uuid.UUID, code string, id uuid.UUID, req *model.PurchaseRequest) (*model.Item, error) {
	code = normalizeCode(code)

	entry, err := s.get(ctx, userID, code, id)
	if err != nil {
		return nil, err
	}

	var expiry string
	if req != nil {
		expiry = freshness.Normalize(req.ExpiryDate)
	}

	now := s.now()
	item := &model.Item{
		ID:         uuid.New(),
		PantryCode: code,
		Name:       entry.Name,
		Quantity:   entry.Quantity,
		Unit:       entry.Unit,
		ExpiryDate: expiry,
		CreatedAt:  now.UTC(),
		UpdatedAt:  now.UTC(),
	}

	tx, err := s.shoppingRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to purchase shopping item: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if err = s.itemRepo.Create(ctx, tx, item); err != nil {
		return nil, fmt.Errorf("failed to purchase shopping item: %w", err)
	}

	deleted, err := s.shoppingRepo.Delete(ctx, tx, code, id)
	if err != nil {
		return nil, fmt.Errorf("failed to purchase shopping item: %w", err)
	}
	if !deleted {
		// Someone else purchased or removed it first.
		err = model.ErrShoppingItemNotFound
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("shopping_item_id", id.String()).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to purchase shopping item: %w", err)
	}

	annotate(item, now)

	s.logger.Info().
		Str("pantry_code", code).
		Str("shopping_item_id", id.String()).
		Str("item_id", item.ID.String()).
		Msg("shopping item purchased")

	return item, nil
}

func (s *shoppingService) get(ctx context.Context, userID uuid.UUID, code string, id uuid.UUID) (*model.ShoppingListItem, error) {
	if err := requireMember(ctx, s.pantryRepo, code, userID); err != nil {
		return nil, err
	}

	entry, err := s.shoppingRepo.GetByID(ctx, code, id)
	if err != nil {
		s.logger.Error().Err(err).Str("shopping_item_id", id.String()).Msg("failed to get shopping item")
		return nil, fmt.Errorf("failed to get shopping item: %w", err)
	}
	if entry == nil {
		return nil, model.ErrShoppingItemNotFound
	}
	return entry, nil
}
