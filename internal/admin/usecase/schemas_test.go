package usecase

import (
	"context"
	"testing"

	"shipping-admin/internal/admin/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrderFixture(t *testing.T) (*harness, *Repository[*model.Product], *Repository[*model.Order]) {
	t.Helper()
	h := newHarness(t)

	products := NewRepository(ProductSchema(), h.store, h.changes, h.notifier, h.gate(), h.log)
	products.today = func() string { return "2026-09-01" }

	orders := NewRepository(OrderSchema(&ProductPricer{Products: products}), h.store, h.changes, h.notifier, h.gate(), h.log)
	orders.today = func() string { return "2026-09-01" }

	return h, products, orders
}

func TestOrderSchema_TotalSnapshotsUnitPrice(t *testing.T) {
	_, products, orders := newOrderFixture(t)
	ctx := context.Background()

	_, err := products.Create(ctx, &model.Product{Name: "Mooring Rope", Category: "Deck Equipment", Price: 10.00, Stock: 40})
	require.NoError(t, err)

	order, err := orders.Create(ctx, &model.Order{Customer: "Harbor Freight Co", Product: "Mooring Rope", Quantity: 3})
	require.NoError(t, err)

	assert.Equal(t, "ORD-001", order.OrderNumber)
	assert.Equal(t, 30.00, order.Total)
	assert.Equal(t, "2026-09-01", order.Date)
}

func TestOrderSchema_OrderNumbersAreSequential(t *testing.T) {
	_, products, orders := newOrderFixture(t)
	ctx := context.Background()

	_, err := products.Create(ctx, &model.Product{Name: "Pallet Jack", Category: "Warehouse", Price: 250, Stock: 5})
	require.NoError(t, err)

	first, err := orders.Create(ctx, &model.Order{Customer: "Dockside Ltd", Product: "Pallet Jack", Quantity: 1})
	require.NoError(t, err)
	second, err := orders.Create(ctx, &model.Order{Customer: "Quayside SA", Product: "Pallet Jack", Quantity: 2})
	require.NoError(t, err)

	assert.Equal(t, "ORD-001", first.OrderNumber)
	assert.Equal(t, "ORD-002", second.OrderNumber)
}

func TestOrderSchema_RepriceDoesNotRewriteStoredTotals(t *testing.T) {
	_, products, orders := newOrderFixture(t)
	ctx := context.Background()

	product, err := products.Create(ctx, &model.Product{Name: "Mooring Rope", Category: "Deck Equipment", Price: 19.99, Stock: 40})
	require.NoError(t, err)

	order, err := orders.Create(ctx, &model.Order{Customer: "Harbor Freight Co", Product: "Mooring Rope", Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, 39.98, order.Total)

	_, err = products.Update(ctx, product.EntityID(), map[string]interface{}{"price": 25.00})
	require.NoError(t, err)

	// An update not touching product or quantity keeps the snapshot.
	updated, err := orders.Update(ctx, order.EntityID(), map[string]interface{}{"status": "shipped"})
	require.NoError(t, err)
	assert.Equal(t, 39.98, updated.Total)

	// Changing quantity recomputes against the current price.
	repriced, err := orders.Update(ctx, order.EntityID(), map[string]interface{}{"quantity": 3})
	require.NoError(t, err)
	assert.Equal(t, 75.00, repriced.Total)
}

func TestOrderSchema_UnknownProductPricesAtZero(t *testing.T) {
	_, _, orders := newOrderFixture(t)
	ctx := context.Background()

	order, err := orders.Create(ctx, &model.Order{Customer: "Dockside Ltd", Product: "Ghost Cargo", Quantity: 5})
	require.NoError(t, err)
	assert.Equal(t, 0.00, order.Total)
}

func TestOrderSchema_ExplicitDateIsKept(t *testing.T) {
	_, _, orders := newOrderFixture(t)
	ctx := context.Background()

	order, err := orders.Create(ctx, &model.Order{Customer: "Dockside Ltd", Product: "Ghost Cargo", Quantity: 1, Date: "2026-08-15"})
	require.NoError(t, err)
	assert.Equal(t, "2026-08-15", order.Date)
}

func TestProductSchema_CreateUpdateDeleteLifecycle(t *testing.T) {
	h, products, _ := newOrderFixture(t)
	ctx := context.Background()

	created, err := products.Create(ctx, &model.Product{Name: "Mooring Rope", Category: "Deck Equipment", Price: 19.99, Stock: 50})
	require.NoError(t, err)
	assert.Equal(t, 1, created.EntityID())

	updated, err := products.Update(ctx, created.EntityID(), map[string]interface{}{"stock": 40})
	require.NoError(t, err)
	assert.Equal(t, 40, updated.Stock)
	assert.Equal(t, 19.99, updated.Price)

	h.confirm = true
	require.NoError(t, products.Delete(ctx, created.EntityID()))
	assert.Empty(t, products.List(ctx))
}

func TestProductPricer_LooksUpByName(t *testing.T) {
	_, products, _ := newOrderFixture(t)
	ctx := context.Background()

	_, err := products.Create(ctx, &model.Product{Name: "Cargo Net", Category: "Deck Equipment", Price: 45.50, Stock: 12})
	require.NoError(t, err)

	pricer := &ProductPricer{Products: products}
	price, ok := pricer.UnitPrice(ctx, "Cargo Net")
	assert.True(t, ok)
	assert.Equal(t, 45.50, price)

	_, ok = pricer.UnitPrice(ctx, "Unknown")
	assert.False(t, ok)
}
