package model

import (
	"fmt"

	apperrors "shipping-admin/internal/shared/errors"
)

// Order references its product by denormalized name. Total is a snapshot of
// unit price times quantity taken when the order is created or updated; a
// later product reprice does not retroactively alter stored totals.
type Order struct {
	Meta
	OrderNumber string  `json:"orderNumber,omitempty"`
	Customer    string  `json:"customer"`
	Product     string  `json:"product"`
	Quantity    int     `json:"quantity"`
	Total       float64 `json:"total"`
	Status      string  `json:"status,omitempty"`
	Date        string  `json:"date,omitempty"`
}

// Validate checks the presence and numeric rules applied before create.
func (o *Order) Validate() *apperrors.ValidationErrors {
	ve := apperrors.NewValidationErrors()
	if o.Customer == "" {
		ve.Add("customer", "missing required field", o.Customer)
	}
	if o.Product == "" {
		ve.Add("product", "missing required field", o.Product)
	}
	if o.Quantity <= 0 {
		ve.Add("quantity", "invalid numeric value", o.Quantity)
	}
	if ve.HasErrors() {
		return ve
	}
	return nil
}

// FormatOrderNumber derives the display number assigned at creation.
func FormatOrderNumber(position int) string {
	return fmt.Sprintf("ORD-%03d", position)
}
