package onboarding

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validForm() SignupForm {
	return SignupForm{
		FullName:        "Mika Example",
		Email:           "mika@example.com",
		Password:        "secret123",
		ConfirmPassword: "secret123",
	}
}

func TestSignupFormValid(t *testing.T) {
	form := validForm()
	assert.Nil(t, form.Validate())
}

func TestSignupFormFirstViolationWins(t *testing.T) {
	assert := assert.New(t)
	// everything is wrong, the name comes back first
	form := SignupForm{
		FullName:        "  ",
		Email:           "",
		Password:        "a",
		ConfirmPassword: "b",
	}
	verr := form.Validate()
	if assert.NotNil(verr) {
		assert.Equal("full_name", verr.Field)
	}
}

func TestSignupFormEmptyEmail(t *testing.T) {
	assert := assert.New(t)
	form := validForm()
	form.Email = ""
	verr := form.Validate()
	if assert.NotNil(verr) {
		assert.Equal("email", verr.Field)
	}
}

func TestSignupFormEmptyPassword(t *testing.T) {
	assert := assert.New(t)
	form := validForm()
	form.Password = ""
	form.ConfirmPassword = ""
	verr := form.Validate()
	if assert.NotNil(verr) {
		assert.Equal("password", verr.Field)
	}
}

func TestSignupFormShortPassword(t *testing.T) {
	assert := assert.New(t)
	form := validForm()
	form.Password = "abc12"
	form.ConfirmPassword = "abc12"
	verr := form.Validate()
	if assert.NotNil(verr) {
		assert.Equal("password", verr.Field)
	}
}

func TestSignupFormConfirmMismatch(t *testing.T) {
	assert := assert.New(t)
	form := validForm()
	form.ConfirmPassword = "different1"
	verr := form.Validate()
	if assert.NotNil(verr) {
		assert.Equal("confirm_password", verr.Field)
	}
}
