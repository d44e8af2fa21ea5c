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

// maxSuggestionIngredients bounds how many item names go into a suggestion query.
const maxSuggestionIngredients = 3

// recipeService implements RecipeService.
type recipeService struct {
	searcher   RecipeSearcher
	itemRepo   repository.ItemRepository
	pantryRepo repository.PantryRepository
	now        func() time.Time
	logger     zerolog.Logger
}

// NewRecipeService creates a new recipe service.
func NewRecipeService(
	searcher RecipeSearcher,
	itemRepo repository.ItemRepository,
	pantryRepo repository.PantryRepository,
	logger zerolog.Logger,
) RecipeService {
	return &recipeService{
		searcher:   searcher,
		itemRepo:   itemRepo,
		pantryRepo: pantryRepo,
		now:        time.Now,
		logger:     logger.With().Str("service", "recipe").Logger(),
	}
}

// Search runs a free-text recipe search.
func (s *recipeService) Search(ctx context.Context, query string) ([]model.Recipe, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, model.NewValidationError("search query is required")
	}
	return s.search(ctx, query)
}

// Suggest searches recipes using up to three expiring-soon item names, or
// any item names when nothing is about to expire.
func (s *recipeService) Suggest(ctx context.Context, userID uuid.UUID, code string) ([]model.Recipe, error) {
	code = normalizeCode(code)

	if err := requireMember(ctx, s.pantryRepo, code, userID); err != nil {
		return nil, err
	}

	items, err := s.itemRepo.ListByPantry(ctx, code)
	if err != nil {
		s.logger.Error().Err(err).Str("pantry_code", code).Msg("failed to list items")
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	query := suggestionQuery(items, s.now())
	if query == "" {
		return []model.Recipe{}, nil
	}

	s.logger.Debug().Str("pantry_code", code).Str("query", query).Msg("suggesting recipes")
	return s.search(ctx, query)
}

func (s *recipeService) search(ctx context.Context, query string) ([]model.Recipe, error) {
	recipes, err := s.searcher.Search(ctx, query)
	if err != nil {
		s.logger.Error().Err(err).Str("query", query).Msg("recipe search failed")
		return nil, model.ErrRecipeAPIUnavailable
	}
	if recipes == nil {
		recipes = []model.Recipe{}
	}
	return recipes, nil
}

// suggestionQuery joins distinct item names, preferring expiring-soon items.
func suggestionQuery(items []model.Item, now time.Time) string {
	var soon, all []string
	seenSoon := make(map[string]bool)
	seenAll := make(map[string]bool)

	for _, item := range items {
		name := strings.ToLower(strings.TrimSpace(item.Name))
		if name == "" {
			continue
		}
		if !seenAll[name] {
			seenAll[name] = true
			all = append(all, name)
		}
		if freshness.Classify(item.ExpiryDate, now) == freshness.StatusExpiringSoon && !seenSoon[name] {
			seenSoon[name] = true
			soon = append(soon, name)
		}
	}

	names := soon
	if len(names) == 0 {
		names = all
	}
	if len(names) > maxSuggestionIngredients {
		names = names[:maxSuggestionIngredients]
	}
	return strings.Join(names, " ")
}
