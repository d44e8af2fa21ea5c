package model

import (
	"time"

	"github.com/google/uuid"
)

// DefaultPantryColor is used when a pantry is created without a color.
const DefaultPantryColor = "#4CAF50"

// Pantry is a shared household inventory identified by its join code.
type Pantry struct {
	Code        string      `json:"code" db:"code"`
	Name        string      `json:"name" db:"name"`
	Members     []uuid.UUID `json:"members" db:"-"`
	Color       string      `json:"color" db:"color"`
	Description string      `json:"description" db:"description"`
	CreatedBy   uuid.UUID   `json:"createdBy" db:"created_by"`
	CreatedAt   time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time   `json:"updatedAt" db:"updated_at"`
}

// HasMember reports whether the user belongs to the pantry.
func (p *Pantry) HasMember(userID uuid.UUID) bool {
	for _, m := range p.Members {
		if m == userID {
			return true
		}
	}
	return false
}

// CreatePantryRequest represents the pantry creation form.
type CreatePantryRequest struct {
	Name        string `json:"name"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

// UpdatePantryRequest carries field-level pantry updates. Nil fields are left unchanged.
type UpdatePantryRequest struct {
	Name        *string `json:"name,omitempty"`
	Color       *string `json:"color,omitempty"`
	Description *string `json:"description,omitempty"`
}

// JoinPantryRequest carries the join code entered by the user.
type JoinPantryRequest struct {
	Code string `json:"code"`
}
