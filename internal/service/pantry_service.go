package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"time"

	"pantry-hub/internal/model"
	"pantry-hub/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	// codeAlphabet omits glyphs that are easy to confuse when read aloud (0/O, 1/I/L).
	codeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"
	codeLength   = 6
	codeAttempts = 5
)

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// pantryService implements PantryService.
type pantryService struct {
	pantryRepo repository.PantryRepository
	memberCap  int
	newCode    func() (string, error)
	logger     zerolog.Logger
}

// NewPantryService creates a new pantry service. memberCap bounds how many
// users may share a pantry.
func NewPantryService(pantryRepo repository.PantryRepository, memberCap int, logger zerolog.Logger) PantryService {
	return &pantryService{
		pantryRepo: pantryRepo,
		memberCap:  memberCap,
		newCode:    generateCode,
		logger:     logger.With().Str("service", "pantry").Logger(),
	}
}

// List retrieves the pantries the user is a member of.
func (s *pantryService) List(ctx context.Context, userID uuid.UUID) ([]model.Pantry, error) {
	pantries, err := s.pantryRepo.ListByMember(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to list pantries")
		return nil, fmt.Errorf("failed to list pantries: %w", err)
	}
	return pantries, nil
}

// Create creates a pantry with a fresh join code; the creator is its first member.
func (s *pantryService) Create(ctx context.Context, userID uuid.UUID, req *model.CreatePantryRequest) (*model.Pantry, error) {
	if req == nil {
		return nil, model.NewValidationError("pantry details are required")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, model.NewValidationError("pantry name is required")
	}

	color := strings.TrimSpace(req.Color)
	if color == "" {
		color = model.DefaultPantryColor
	}
	if !colorPattern.MatchString(color) {
		return nil, model.NewValidationError("color must be a hex value like #4CAF50")
	}

	now := time.Now().UTC()
	pantry := &model.Pantry{
		Name:        name,
		Members:     []uuid.UUID{userID},
		Color:       color,
		Description: strings.TrimSpace(req.Description),
		CreatedBy:   userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	// CodeExists only narrows the odds; the insert itself settles a race.
	for attempt := 1; attempt <= codeAttempts; attempt++ {
		code, err := s.unusedCode(ctx)
		if err != nil {
			return nil, err
		}
		pantry.Code = code

		err = s.insert(ctx, pantry)
		if err == nil {
			s.logger.Info().
				Str("pantry_code", code).
				Str("user_id", userID.String()).
				Msg("pantry created")
			return pantry, nil
		}
		if !errors.Is(err, repository.ErrCodeTaken) {
			return nil, err
		}

		s.logger.Debug().Str("pantry_code", code).Int("attempt", attempt).Msg("join code collision")
	}
	return nil, fmt.Errorf("failed to generate a unique join code after %d attempts", codeAttempts)
}

// insert writes the pantry and its creator's membership in one transaction.
func (s *pantryService) insert(ctx context.Context, pantry *model.Pantry) (err error) {
	tx, err := s.pantryRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return fmt.Errorf("failed to create pantry: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if err = s.pantryRepo.Create(ctx, tx, pantry); err != nil {
		if errors.Is(err, repository.ErrCodeTaken) {
			return err
		}
		return fmt.Errorf("failed to create pantry: %w", err)
	}

	if err = s.pantryRepo.AddMember(ctx, tx, pantry.Code, pantry.CreatedBy); err != nil {
		return fmt.Errorf("failed to add pantry creator: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("pantry_code", pantry.Code).Msg("failed to commit transaction")
		return fmt.Errorf("failed to create pantry: %w", err)
	}
	return nil
}

// unusedCode draws a join code that no pantry holds at the time of the check.
func (s *pantryService) unusedCode(ctx context.Context) (string, error) {
	for attempt := 1; attempt <= codeAttempts; attempt++ {
		code, err := s.newCode()
		if err != nil {
			return "", fmt.Errorf("failed to generate join code: %w", err)
		}

		exists, err := s.pantryRepo.CodeExists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("failed to generate join code: %w", err)
		}
		if !exists {
			return code, nil
		}

		s.logger.Debug().Str("pantry_code", code).Int("attempt", attempt).Msg("join code in use")
	}
	return "", fmt.Errorf("failed to generate a unique join code after %d attempts", codeAttempts)
}

// Join adds the user to the pantry with the given code. The membership check
// and insert happen under a row lock so concurrent joins respect the cap.
func (s *pantryService) Join(ctx context.Context, userID uuid.UUID, code string) (*model.Pantry, error) {
	code = normalizeCode(code)
	if code == "" {
		return nil, model.NewValidationError("join code is required")
	}

	tx, err := s.pantryRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to join pantry: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	pantry, err := s.pantryRepo.GetForUpdate(ctx, tx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to join pantry: %w", err)
	}

	switch {
	case pantry == nil:
		err = model.ErrPantryNotFound
	case pantry.HasMember(userID):
		err = model.ErrAlreadyMember
	case len(pantry.Members) >= s.memberCap:
		err = model.ErrPantryFull
	}
	if err != nil {
		s.logger.Debug().
			Err(err).
			Str("pantry_code", code).
			Str("user_id", userID.String()).
			Msg("join rejected")
		return nil, err
	}

	if err = s.pantryRepo.AddMember(ctx, tx, code, userID); err != nil {
		if err == model.ErrAlreadyMember {
			return nil, err
		}
		return nil, fmt.Errorf("failed to join pantry: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("pantry_code", code).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to join pantry: %w", err)
	}

	pantry.Members = append(pantry.Members, userID)

	s.logger.Info().
		Str("pantry_code", code).
		Str("user_id", userID.String()).
		Int("members", len(pantry.Members)).
		Msg("user joined pantry")

	return pantry, nil
}

// Get retrieves a pantry the user is a member of.
func (s *pantryService) Get(ctx context.Context, userID uuid.UUID, code string) (*model.Pantry, error) {
	code = normalizeCode(code)

	pantry, err := s.pantryRepo.GetByCode(ctx, code)
	if err != nil {
		s.logger.Error().Err(err).Str("pantry_code", code).Msg("failed to get pantry")
		return nil, fmt.Errorf("failed to get pantry: %w", err)
	}
	if pantry == nil {
		return nil, model.ErrPantryNotFound
	}
	if !pantry.HasMember(userID) {
		return nil, model.ErrNotMember
	}
	return pantry, nil
}

// Update applies field-level pantry changes.
func (s *pantryService) Update(ctx context.Context, userID uuid.UUID, code string, req *model.UpdatePantryRequest) (*model.Pantry, error) {
	if req == nil {
		return nil, model.NewValidationError("pantry update is required")
	}

	pantry, err := s.Get(ctx, userID, code)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, model.NewValidationError("pantry name cannot be empty")
		}
		pantry.Name = name
	}
	if req.Color != nil {
		color := strings.TrimSpace(*req.Color)
		if !colorPattern.MatchString(color) {
			return nil, model.NewValidationError("color must be a hex value like #4CAF50")
		}
		pantry.Color = color
	}
	if req.Description != nil {
		pantry.Description = strings.TrimSpace(*req.Description)
	}
	pantry.UpdatedAt = time.Now().UTC()

	if err := s.pantryRepo.Update(ctx, pantry); err != nil {
		if err == model.ErrPantryNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update pantry: %w", err)
	}

	s.logger.Info().Str("pantry_code", pantry.Code).Msg("pantry updated")
	return pantry, nil
}

// Delete removes the pantry with all of its items and shopping list.
func (s *pantryService) Delete(ctx context.Context, userID uuid.UUID, code string) error {
	code = normalizeCode(code)
	if err := requireMember(ctx, s.pantryRepo, code, userID); err != nil {
		return err
	}

	if err := s.pantryRepo.Delete(ctx, nil, code); err != nil {
		if err == model.ErrPantryNotFound {
			return err
		}
		return fmt.Errorf("failed to delete pantry: %w", err)
	}

	s.logger.Info().
		Str("pantry_code", code).
		Str("user_id", userID.String()).
		Msg("pantry deleted")
	return nil
}

// Leave removes the user from the pantry, deleting it when nobody remains.
func (s *pantryService) Leave(ctx context.Context, userID uuid.UUID, code string) error {
	code = normalizeCode(code)

	tx, err := s.pantryRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return fmt.Errorf("failed to leave pantry: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	pantry, err := s.pantryRepo.GetForUpdate(ctx, tx, code)
	if err != nil {
		return fmt.Errorf("failed to leave pantry: %w", err)
	}
	if pantry == nil {
		err = model.ErrPantryNotFound
		return err
	}

	remaining, err := s.pantryRepo.RemoveMember(ctx, tx, code, userID)
	if err != nil {
		if err == model.ErrNotMember {
			return err
		}
		return fmt.Errorf("failed to leave pantry: %w", err)
	}

	if remaining == 0 {
		if err = s.pantryRepo.Delete(ctx, tx, code); err != nil {
			return fmt.Errorf("failed to delete empty pantry: %w", err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("pantry_code", code).Msg("failed to commit transaction")
		return fmt.Errorf("failed to leave pantry: %w", err)
	}

	s.logger.Info().
		Str("pantry_code", code).
		Str("user_id", userID.String()).
		Int("remaining", remaining).
		Bool("deleted", remaining == 0).
		Msg("user left pantry")
	return nil
}

// generateCode draws a join code from codeAlphabet using crypto/rand.
func generateCode() (string, error) {
	max := big.NewInt(int64(len(codeAlphabet)))
	b := make([]byte, codeLength)
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = codeAlphabet[n.Int64()]
	}
	return string(b), nil
}
