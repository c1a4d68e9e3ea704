package tables

import (
	"time"

	"github.com/google/uuid"
)

// UserTable represents the users table
type UserTable struct {
	ID                  uuid.UUID  `db:"id,omitempty"`
	Email               string     `db:"email"`
	FullName            *string    `db:"full_name"`
	AvatarURL           *string    `db:"avatar_url"`
	Password            string     `db:"password"              json:"-"`
	GoogleSubject       *string    `db:"google_subject"        json:"-"`
	LockoutTill         *time.Time `db:"lockout_till"`
	CurrentFailureCount int        `db:"current_failure_count"`
	CreatedAt           time.Time  `db:"created_at"`
	UpdatedAt           *time.Time `db:"updated_at,omitempty"`
}
