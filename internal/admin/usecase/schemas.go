package usecase

import (
	"context"
	"math"

	"shipping-admin/internal/admin/domain/model"
)

// PriceLookup resolves a product's current unit price by denormalized name.
// Orders reference products by name only, so a missing product is not an
// error: it prices at zero, matching the absence of foreign-key enforcement.
type PriceLookup interface {
	UnitPrice(ctx context.Context, productName string) (float64, bool)
}

// ProductPricer adapts the product repository to the PriceLookup interface.
type ProductPricer struct {
	Products *Repository[*model.Product]
}

// UnitPrice returns the current price of the named product.
func (p *ProductPricer) UnitPrice(ctx context.Context, productName string) (float64, bool) {
	for _, product := range p.Products.List(ctx) {
		if product.Name == productName {
			return product.Price, true
		}
	}
	return 0, false
}

// UserSchema describes the users collection.
func UserSchema() Schema[*model.User] {
	return Schema[*model.User]{
		Collection: model.CollectionUsers,
		Singular:   "user",
		Validate:   (*model.User).Validate,
		Describe:   func(u *model.User) string { return u.Name },
	}
}

// ProductSchema describes the products collection.
func ProductSchema() Schema[*model.Product] {
	return Schema[*model.Product]{
		Collection: model.CollectionProducts,
		Singular:   "product",
		Validate:   (*model.Product).Validate,
		Describe:   func(p *model.Product) string { return p.Name },
	}
}

// CategorySchema describes the categories collection.
func CategorySchema() Schema[*model.Category] {
	return Schema[*model.Category]{
		Collection: model.CollectionCategories,
		Singular:   "category",
		Validate:   (*model.Category).Validate,
		Describe:   func(c *model.Category) string { return c.Name },
	}
}

// SupplierSchema describes the suppliers collection.
func SupplierSchema() Schema[*model.Supplier] {
	return Schema[*model.Supplier]{
		Collection: model.CollectionSuppliers,
		Singular:   "supplier",
		Validate:   (*model.Supplier).Validate,
		Describe:   func(s *model.Supplier) string { return s.Name },
	}
}

// OrderSchema describes the orders collection. Totals are snapshots of unit
// price times quantity taken at create and at updates touching product or
// quantity; later product reprices never rewrite stored totals.
func OrderSchema(prices PriceLookup) Schema[*model.Order] {
	return Schema[*model.Order]{
		Collection: model.CollectionOrders,
		Singular:   "order",
		Validate:   (*model.Order).Validate,
		Describe:   func(o *model.Order) string { return o.OrderNumber },
		OnCreate: func(ctx context.Context, o *model.Order, existing []*model.Order) error {
			o.OrderNumber = model.FormatOrderNumber(len(existing) + 1)
			if o.Date == "" {
				o.Date = model.Today()
			}
			o.Total = orderTotal(ctx, prices, o.Product, o.Quantity)
			return nil
		},
		OnUpdate: func(ctx context.Context, o *model.Order, fields map[string]interface{}) error {
			_, productChanged := fields["product"]
			_, quantityChanged := fields["quantity"]
			if productChanged || quantityChanged {
				o.Total = orderTotal(ctx, prices, o.Product, o.Quantity)
			}
			return nil
		},
	}
}

func orderTotal(ctx context.Context, prices PriceLookup, product string, quantity int) float64 {
	price, _ := prices.UnitPrice(ctx, product)
	return math.Round(price*float64(quantity)*100) / 100
}
