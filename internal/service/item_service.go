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

// itemService implements ItemService.
type itemService struct {
	itemRepo   repository.ItemRepository
	pantryRepo repository.PantryRepository
	now        func() time.Time
	logger     zerolog.Logger
}

// NewItemService creates a new item service.
func NewItemService(itemRepo repository.ItemRepository, pantryRepo repository.PantryRepository, logger zerolog.Logger) ItemService {
	return &itemService{
		itemRepo:   itemRepo,
		pantryRepo: pantryRepo,
		now:        time.Now,
		logger:     logger.With().Str("service", "item").Logger(),
	}
}

// List retrieves the pantry's items with derived freshness.
func (s *itemService) List(ctx context.Context, userID uuid.UUID, code string, status string) ([]model.Item, error) {
	code = normalizeCode(code)

	filter := freshness.Status(strings.TrimSpace(status))
	if filter != "" && !filter.Valid() {
		return nil, model.NewValidationError("status must be one of fine, expiring_soon or expired")
	}

	if err := requireMember(ctx, s.pantryRepo, code, userID); err != nil {
		return nil, err
	}

	items, err := s.itemRepo.ListByPantry(ctx, code)
	if err != nil {
		s.logger.Error().Err(err).Str("pantry_code", code).Msg("failed to list items")
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	now := s.now()
	result := make([]model.Item, 0, len(items))
	for i := range items {
		annotate(&items[i], now)
		if filter != "" && items[i].Status != filter {
			continue
		}
		result = append(result, items[i])
	}
	return result, nil
}

// Create adds an item to the pantry.
func (s *itemService) Create(ctx context.Context, userID uuid.UUID, code string, req *model.CreateItemRequest) (*model.Item, error) {
	code = normalizeCode(code)

	if req == nil {
		return nil, model.NewValidationError("item details are required")
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

	now := s.now()
	item := &model.Item{
		ID:         uuid.New(),
		PantryCode: code,
		Name:       name,
		Quantity:   req.Quantity,
		Unit:       strings.TrimSpace(req.Unit),
		ExpiryDate: freshness.Normalize(req.ExpiryDate),
		CreatedAt:  now.UTC(),
		UpdatedAt:  now.UTC(),
	}

	if item.ExpiryDate == "" && strings.TrimSpace(req.ExpiryDate) != "" {
		s.logger.Debug().
			Str("pantry_code", code).
			Str("expiry_date", req.ExpiryDate).
			Msg("unparsable expiry date stored as no expiry")
	}

	if err := s.itemRepo.Create(ctx, nil, item); err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	annotate(item, now)

	s.logger.Info().
		Str("pantry_code", code).
		Str("item_id", item.ID.String()).
		Msg("item created")

	return item, nil
}

// Update applies field-level item changes.
func (s *itemService) Update(ctx context.Context, userID uuid.UUID, code string, id uuid.UUID, req *model.UpdateItemRequest) (*model.Item, error) {
	code = normalizeCode(code)

	if req == nil {
		return nil, model.NewValidationError("item update is required")
	}

	if err := requireMember(ctx, s.pantryRepo, code, userID); err != nil {
		return nil, err
	}

	item, err := s.itemRepo.GetByID(ctx, code, id)
	if err != nil {
		s.logger.Error().Err(err).Str("item_id", id.String()).Msg("failed to get item")
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	if item == nil {
		return nil, model.ErrItemNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, model.NewValidationError("item name cannot be empty")
		}
		item.Name = name
	}
	if req.Quantity != nil {
		if *req.Quantity < 0 {
			return nil, model.NewValidationError("quantity cannot be negative")
		}
		item.Quantity = *req.Quantity
	}
	if req.Unit != nil {
		item.Unit = strings.TrimSpace(*req.Unit)
	}
	if req.ExpiryDate != nil {
		item.ExpiryDate = freshness.Normalize(*req.ExpiryDate)
	}

	now := s.now()
	item.UpdatedAt = now.UTC()

	if err := s.itemRepo.Update(ctx, item); err != nil {
		if err == model.ErrItemNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update item: %w", err)
	}

	annotate(item, now)
	return item, nil
}

// Delete removes an item.
func (s *itemService) Delete(ctx context.Context, userID uuid.UUID, code string, id uuid.UUID) error {
	code = normalizeCode(code)

	if err := requireMember(ctx, s.pantryRepo, code, userID); err != nil {
		return err
	}

	deleted, err := s.itemRepo.Delete(ctx, code, id)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	if !deleted {
		return model.ErrItemNotFound
	}

	s.logger.Info().
		Str("pantry_code", code).
		Str("item_id", id.String()).
		Msg("item deleted")
	return nil
}

// annotate fills the derived freshness fields of an item as of now.
func annotate(item *model.Item, now time.Time) {
	item.Status = freshness.Classify(item.ExpiryDate, now)
	item.DaysUntilExpiry = nil
	if days, ok := freshness.Days(item.ExpiryDate, now); ok {
		item.DaysUntilExpiry = &days
	}
}
