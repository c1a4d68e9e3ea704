package onboarding

import (
	"fmt"
	"strings"
)

// SignupForm is the new account form of the invite landing page
type SignupForm struct {
	FullName        string
	Email           string
	Password        string
	ConfirmPassword string
}

// ValidationError is a local form violation, it never leaves the
// process and no network call is made for it.
type ValidationError struct {
	Field   string
	Message string
}

func (v *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

// Validate checks the form rules in order, the first violation wins.
func (f *SignupForm) Validate() *ValidationError {
	if strings.TrimSpace(f.FullName) == "" {
		return &ValidationError{Field: "full_name", Message: "please enter your full name"}
	}
	if f.Email == "" {
		return &ValidationError{Field: "email", Message: "please enter your email"}
	}
	if f.Password == "" {
		return &ValidationError{Field: "password", Message: "please enter a password"}
	}
	if len(f.Password) < 6 {
		return &ValidationError{Field: "password", Message: "password must be at least 6 characters"}
	}
	if f.Password != f.ConfirmPassword {
		return &ValidationError{Field: "confirm_password", Message: "passwords do not match"}
	}
	return nil
}
