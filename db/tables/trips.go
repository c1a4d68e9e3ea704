package tables

import (
	"time"

	"github.com/google/uuid"
)

// TripTable represents the trips table
type TripTable struct {
	ID          uuid.UUID  `db:"id,omitempty"`
	Name        string     `db:"name"`
	Description *string    `db:"description"`
	StartDate   time.Time  `db:"start_date"`
	EndDate     time.Time  `db:"end_date"`
	CreatedBy   uuid.UUID  `db:"created_by"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   *time.Time `db:"updated_at,omitempty"`
}

// TripMemberTable represents the trip_members table,
// binding a user to a trip with a role
type TripMemberTable struct {
	ID          int        `db:"id"`
	TripID      uuid.UUID  `db:"trip_id"`
	UserID      uuid.UUID  `db:"user_id"`
	Role        string     `db:"role"`
	RSVPStatus  string     `db:"rsvp_status"`
	InvitedAt   time.Time  `db:"invited_at"`
	RespondedAt *time.Time `db:"responded_at"`
}
