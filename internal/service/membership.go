package service

import (
	"context"
	"fmt"

	"pantry-hub/internal/model"
	"pantry-hub/internal/repository"

	"github.com/google/uuid"
)

// requireMember returns nil when the user belongs to the pantry,
// ErrPantryNotFound for an unknown code and ErrNotMember otherwise.
func requireMember(ctx context.Context, pantries repository.PantryRepository, code string, userID uuid.UUID) error {
	ok, err := pantries.IsMember(ctx, code, userID)
	if err != nil {
		return fmt.Errorf("failed to check pantry membership: %w", err)
	}
	if ok {
		return nil
	}

	exists, err := pantries.CodeExists(ctx, code)
	if err != nil {
		return fmt.Errorf("failed to look up pantry: %w", err)
	}
	if !exists {
		return model.ErrPantryNotFound
	}
	return model.ErrNotMember
}
