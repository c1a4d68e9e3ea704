package tables

import (
	"time"

	"github.com/google/uuid"
)

// InviteTokenTable represents the invite_tokens table.
// A token is usable as long as used_at is null and expires_at lies in the future.
type InviteTokenTable struct {
	ID        uuid.UUID  `db:"id,omitempty"`
	TripID    uuid.UUID  `db:"trip_id"`
	Token     string     `db:"token"`
	Email     string     `db:"email"`
	ExpiresAt time.Time  `db:"expires_at"`
	UsedAt    *time.Time `db:"used_at"`
	CreatedBy uuid.UUID  `db:"created_by"`
	CreatedAt time.Time  `db:"created_at"`
}
