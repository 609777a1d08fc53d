package model

import apperrors "shipping-admin/internal/shared/errors"

// Product is a catalog record. Category is a denormalized name string, not a
// reference to the categories collection.
type Product struct {
	Meta
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Stock    int     `json:"stock"`
	Status   string  `json:"status,omitempty"`
}

// Validate checks the presence and numeric rules applied before create.
func (p *Product) Validate() *apperrors.ValidationErrors {
	ve := apperrors.NewValidationErrors()
	if p.Name == "" {
		ve.Add("name", "missing required field", p.Name)
	}
	if p.Category == "" {
		ve.Add("category", "missing required field", p.Category)
	}
	if p.Price < 0 {
		ve.Add("price", "invalid numeric value", p.Price)
	}
	if p.Stock < 0 {
		ve.Add("stock", "invalid numeric value", p.Stock)
	}
	if ve.HasErrors() {
		return ve
	}
	return nil
}
