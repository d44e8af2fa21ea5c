package model

import (
	"time"

	"pantry-hub/internal/freshness"

	"github.com/google/uuid"
)

// Item is a tracked grocery product inside a pantry.
// Status and DaysUntilExpiry are derived on read and never stored.
type Item struct {
	ID              uuid.UUID        `json:"id" db:"id"`
	PantryCode      string           `json:"pantryCode" db:"pantry_code"`
	Name            string           `json:"name" db:"name"`
	Quantity        float64          `json:"quantity" db:"quantity"`
	Unit            string           `json:"unit" db:"unit"`
	ExpiryDate      string           `json:"expiryDate,omitempty" db:"expiry_date"`
	Status          freshness.Status `json:"status" db:"-"`
	DaysUntilExpiry *int             `json:"daysUntilExpiry,omitempty" db:"-"`
	CreatedAt       time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time        `json:"updatedAt" db:"updated_at"`
}

// CreateItemRequest represents the add-item form.
type CreateItemRequest struct {
	Name       string  `json:"name"`
	Quantity   float64 `json:"quantity"`
	Unit       string  `json:"unit"`
	ExpiryDate string  `json:"expiryDate"`
}

// UpdateItemRequest carries field-level item updates. Nil fields are left unchanged;
// an empty expiry date clears it.
type UpdateItemRequest struct {
	Name       *string  `json:"name,omitempty"`
	Quantity   *float64 `json:"quantity,omitempty"`
	Unit       *string  `json:"unit,omitempty"`
	ExpiryDate *string  `json:"expiryDate,omitempty"`
}
