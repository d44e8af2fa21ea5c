package model

import (
	"time"

	"pantry-hub/internal/freshness"

	"github.com/google/uuid"
)

// Notification tells a pantry member that an item changed freshness status.
type Notification struct {
	ID         uuid.UUID        `json:"id" db:"id"`
	UserID     uuid.UUID        `json:"-" db:"user_id"`
	PantryCode string           `json:"pantryCode" db:"pantry_code"`
	ItemID     uuid.UUID        `json:"itemId" db:"item_id"`
	ItemName   string           `json:"itemName" db:"item_name"`
	Status     freshness.Status `json:"status" db:"status"`
	ExpiryDate string           `json:"expiryDate" db:"expiry_date"`
	Text       string           `json:"message" db:"-"`
	CreatedAt  time.Time        `json:"createdAt" db:"created_at"`
	ReadAt     *time.Time       `json:"readAt,omitempty" db:"read_at"`
}

// Message renders the notification text shown to the user.
func (n *Notification) Message() string {
	switch n.Status {
	case freshness.StatusExpired:
		return n.ItemName + " has expired"
	case freshness.StatusExpiringSoon:
		return n.ItemName + " is expiring soon (" + n.ExpiryDate + ")"
	default:
		return n.ItemName + " changed status"
	}
}

// Schedule is the daily time expiry notifications are delivered.
type Schedule struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}
