package model

import (
	"time"

	"github.com/google/uuid"
)

// ShoppingListItem is an entry on a pantry's shopping list.
type ShoppingListItem struct {
	ID         uuid.UUID `json:"id" db:"id"`
	PantryCode string    `json:"pantryCode" db:"pantry_code"`
	Name       string    `json:"name" db:"name"`
	Quantity   float64   `json:"quantity" db:"quantity"`
	Unit       string    `json:"unit" db:"unit"`
	Notes      string    `json:"notes" db:"notes"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
}

// CreateShoppingItemRequest represents the add-to-list form.
type CreateShoppingItemRequest struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Notes    string  `json:"notes"`
}

// UpdateShoppingItemRequest carries field-level shopping list updates.
type UpdateShoppingItemRequest struct {
	Name     *string  `json:"name,omitempty"`
	Quantity *float64 `json:"quantity,omitempty"`
	Unit     *string  `json:"unit,omitempty"`
	Notes    *string  `json:"notes,omitempty"`
}

// PurchaseRequest moves a shopping list entry into the pantry.
type PurchaseRequest struct {
	ExpiryDate string `json:"expiryDate"`
}
