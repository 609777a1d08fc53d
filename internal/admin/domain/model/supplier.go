package model

import apperrors "shipping-admin/internal/shared/errors"

// Supplier is a vendor contact record. ProductsSupplied holds denormalized
// product names.
type Supplier struct {
	Meta
	Name             string   `json:"name"`
	ContactPerson    string   `json:"contactPerson"`
	Email            string   `json:"email"`
	Phone            string   `json:"phone,omitempty"`
	Address          string   `json:"address,omitempty"`
	ProductsSupplied []string `json:"productsSupplied,omitempty"`
	Status           string   `json:"status,omitempty"`
}

// Validate checks the presence rules applied before create.
func (s *Supplier) Validate() *apperrors.ValidationErrors {
	ve := apperrors.NewValidationErrors()
	if s.Name == "" {
		ve.Add("name", "missing required field", s.Name)
	}
	if s.ContactPerson == "" {
		ve.Add("contactPerson", "missing required field", s.ContactPerson)
	}
	if s.Email == "" {
		ve.Add("email", "missing required field", s.Email)
	} else if !emailRegex.MatchString(s.Email) {
		ve.Add("email", "invalid email format", s.Email)
	}
	if ve.HasErrors() {
		return ve
	}
	return nil
}
