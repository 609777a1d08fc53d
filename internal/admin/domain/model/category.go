package model

import apperrors "shipping-admin/internal/shared/errors"

// Category groups products for display. ProductCount is maintained by the
// dashboard aggregation, not by foreign-key enforcement.
type Category struct {
	Meta
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	ProductCount int    `json:"productCount"`
}

// Validate checks the presence rules applied before create.
func (c *Category) Validate() *apperrors.ValidationErrors {
	ve := apperrors.NewValidationErrors()
	if c.Name == "" {
		ve.Add("name", "missing required field", c.Name)
	}
	if ve.HasErrors() {
		return ve
	}
	return nil
}
