package model

import (
	"regexp"

	apperrors "shipping-admin/internal/shared/errors"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// User is a dashboard-managed account record. Status and Role are free-form
// display labels; no transition rules are enforced.
type User struct {
	Meta
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role,omitempty"`
	Status    string `json:"status,omitempty"`
	LastLogin string `json:"lastLogin,omitempty"`
}

// Validate checks the presence rules applied before create.
func (u *User) Validate() *apperrors.ValidationErrors {
	ve := apperrors.NewValidationErrors()
	if u.Name == "" {
		ve.Add("name", "missing required field", u.Name)
	}
	if u.Email == "" {
		ve.Add("email", "missing required field", u.Email)
	} else if !emailRegex.MatchString(u.Email) {
		ve.Add("email", "invalid email format", u.Email)
	}
	if ve.HasErrors() {
		return ve
	}
	return nil
}
