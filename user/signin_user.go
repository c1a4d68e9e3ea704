package user

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/triptogether/triptogether/db"
)

type userSignin struct {
	ud *db.UserData
}

// CanLogin returs true if the user is eligble for login
func (p *userSignin) CanLogin() bool {
	return !p.IsLocked()
}

// IsLocked returns true if the user is locked
// this means there were too many failed login attempts recently
func (p *userSignin) IsLocked() bool {
	return p.ud.LockoutTill != nil && time.Now().UTC().Before(*p.ud.LockoutTill)
}

// ValidatePassword validates the users password
func (p *userSignin) ValidatePassword(password string) bool {
	res := bcrypt.CompareHashAndPassword(p.ud.PasswordHash, []byte(password))
	return res == nil
}

// Gets the current failed login count
func (p *userSignin) CurrentFailureCount() int {
	return p.ud.CurrentFailureCount
}

// Id - User ID
func (p *userSignin) ID() uuid.UUID {
	return p.ud.ID
}

func (p *userSignin) displayName() string {
	if p.ud.FullName != nil {
		return *p.ud.FullName
	}
	return p.ud.Email
}
