package tables

import (
	"time"

	"github.com/google/uuid"
)

// ItineraryItemTable represents the itinerary_items table
type ItineraryItemTable struct {
	ID          uuid.UUID  `db:"id,omitempty"`
	TripID      uuid.UUID  `db:"trip_id"`
	Title       string     `db:"title"`
	Description *string    `db:"description"`
	Date        time.Time  `db:"date"`
	Time        *string    `db:"time"`
	Location    *string    `db:"location"`
	CreatedBy   uuid.UUID  `db:"created_by"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   *time.Time `db:"updated_at,omitempty"`
}

// BudgetItemTable represents the budget_items table
type BudgetItemTable struct {
	ID          uuid.UUID  `db:"id,omitempty"`
	TripID      uuid.UUID  `db:"trip_id"`
	Description string     `db:"description"`
	Amount      float64    `db:"amount"`
	Category    string     `db:"category"`
	PaidBy      *uuid.UUID `db:"paid_by"`
	Paid        bool       `db:"paid"`
	ReceiptURL  *string    `db:"receipt_url"`
	CreatedBy   uuid.UUID  `db:"created_by"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   *time.Time `db:"updated_at,omitempty"`
}

// PackingItemTable represents the packing_items table
type PackingItemTable struct {
	ID         uuid.UUID  `db:"id,omitempty"`
	TripID     uuid.UUID  `db:"trip_id"`
	Item       string     `db:"item"`
	Category   string     `db:"category"`
	AssignedTo *uuid.UUID `db:"assigned_to"`
	Checked    bool       `db:"checked"`
	CreatedBy  uuid.UUID  `db:"created_by"`
	CreatedAt  time.Time  `db:"created_at"`
	UpdatedAt  *time.Time `db:"updated_at,omitempty"`
}

// OutfitTable represents the outfits table, each entry is one
// member's planned look for an itinerary event
type OutfitTable struct {
	ID          uuid.UUID  `db:"id,omitempty"`
	TripID      uuid.UUID  `db:"trip_id"`
	EventID     uuid.UUID  `db:"event_id"`
	UserID      uuid.UUID  `db:"user_id"`
	Description *string    `db:"description"`
	PhotoURL    *string    `db:"photo_url"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   *time.Time `db:"updated_at,omitempty"`
}

// MessageTable represents the messages table
type MessageTable struct {
	ID      uuid.UUID `db:"id,omitempty"`
	TripID  uuid.UUID `db:"trip_id"`
	UserID  uuid.UUID `db:"user_id"`
	Content string    `db:"content"`
	SentAt  time.Time `db:"sent_at"`
}

// PhotoTable represents the photos table, photos are kept as url records only
type PhotoTable struct {
	ID         uuid.UUID `db:"id,omitempty"`
	TripID     uuid.UUID `db:"trip_id"`
	URL        string    `db:"url"`
	Caption    *string   `db:"caption"`
	UploadedBy uuid.UUID `db:"uploaded_by"`
	UploadedAt time.Time `db:"uploaded_at"`
}
