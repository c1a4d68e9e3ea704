package user

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"github.com/triptogether/triptogether/db"
)

func signinUser(t *testing.T, mutate func(*db.UserData)) *userSignin {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	assert.NoError(t, err)
	ud := &db.UserData{
		ID:           uuid.New(),
		Email:        "mika@example.com",
		PasswordHash: hash,
	}
	if mutate != nil {
		mutate(ud)
	}
	return &userSignin{ud: ud}
}

func TestValidatePassword(t *testing.T) {
	assert := assert.New(t)
	p := signinUser(t, nil)
	assert.True(p.ValidatePassword("correct horse"))
	assert.False(p.ValidatePassword("wrong horse"))
	assert.False(p.ValidatePassword(""))
}

func TestIsLocked(t *testing.T) {
	assert := assert.New(t)

	p := signinUser(t, nil)
	assert.False(p.IsLocked())
	assert.True(p.CanLogin())

	future := time.Now().UTC().Add(10 * time.Minute)
	p = signinUser(t, func(ud *db.UserData) { ud.LockoutTill = &future })
	assert.True(p.IsLocked())
	assert.False(p.CanLogin())

	past := time.Now().UTC().Add(-time.Minute)
	p = signinUser(t, func(ud *db.UserData) { ud.LockoutTill = &past })
	assert.False(p.IsLocked())
	assert.True(p.CanLogin())
}

func TestDisplayNameFallsBackToEmail(t *testing.T) {
	assert := assert.New(t)

	p := signinUser(t, nil)
	assert.Equal("mika@example.com", p.displayName())

	name := "Mika Example"
	p = signinUser(t, func(ud *db.UserData) { ud.FullName = &name })
	assert.Equal("Mika Example", p.displayName())
}
